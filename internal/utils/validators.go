package utils

import (
	"strings"

	"flashfit_back_end/internal/models"

	"github.com/gocql/gocql"
)

func inList(value string, list []string) bool {
	for _, v := range list {
		if v == value {
			return true
		}
	}
	return false
}

// ValidateProduct checks a product before create/update. Returns a field →
// message map; empty map means valid.
func ValidateProduct(p *models.Product) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(p.Name) == "" {
		errs["name"] = "Product name is required"
	} else if len(p.Name) < 3 {
		errs["name"] = "Product name must be at least 3 characters long"
	}

	if p.Price <= 0 {
		errs["price"] = "Product price must be a positive number"
	}

	if p.Stock < 0 {
		errs["stock"] = "Stock quantity must be a non-negative number"
	}

	if p.Category == "" {
		errs["category"] = "Product category is required"
	} else if !inList(p.Category, models.ProductCategories) {
		errs["category"] = "Unknown product category"
	}

	if p.Gender == "" {
		errs["gender"] = "Gender is required"
	} else if !inList(p.Gender, models.ProductGenders) {
		errs["gender"] = "Gender must be male, female or unisex"
	}

	for _, color := range p.Colors {
		if !inList(color, models.ProductColors) {
			errs["colors"] = "Unknown color: " + color
			break
		}
	}

	return errs
}

// ValidateOrder checks the checkout payload before anything is persisted.
func ValidateOrder(info models.CustomerInfo, snap models.ProductSnapshot, payment models.PaymentMethod, customerID gocql.UUID) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(info.FullName) == "" {
		errs["customerInfo.fullName"] = "Full name is required"
	}
	if strings.TrimSpace(info.Address) == "" {
		errs["customerInfo.address"] = "Address is required"
	}
	if strings.TrimSpace(info.PhoneNumber) == "" {
		errs["customerInfo.phoneNumber"] = "Phone number is required"
	}

	if snap.ProductID == (gocql.UUID{}) {
		errs["product.productId"] = "Product id is required"
	}
	if snap.Price <= 0 {
		errs["product.price"] = "Product price is required"
	}
	if snap.Quantity < 1 {
		errs["product.quantity"] = "Quantity must be at least 1"
	}

	if !payment.Valid() {
		errs["paymentMethod"] = "Payment method must be one of: Cash on Delivery, Credit Card, PayPal"
	}

	if customerID == (gocql.UUID{}) {
		errs["customerId"] = "Customer id is required"
	}

	return errs
}
