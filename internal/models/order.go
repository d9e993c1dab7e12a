package models

import (
	"time"

	"github.com/gocql/gocql"
)

type OrderStatus string

const (
	OrderPending    OrderStatus = "Pending"
	OrderProcessing OrderStatus = "Processing"
	OrderShipped    OrderStatus = "Shipped"
	OrderDelivered  OrderStatus = "Delivered"
	OrderCancelled  OrderStatus = "Cancelled"
)

// OrderStatuses lists every status accepted by the status-update endpoint.
// Any status may follow any other; only membership is enforced.
var OrderStatuses = []OrderStatus{OrderPending, OrderProcessing, OrderShipped, OrderDelivered, OrderCancelled}

func (s OrderStatus) Valid() bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "Cash on Delivery"
	PaymentCreditCard     PaymentMethod = "Credit Card"
	PaymentPayPal         PaymentMethod = "PayPal"
)

var PaymentMethods = []PaymentMethod{PaymentCashOnDelivery, PaymentCreditCard, PaymentPayPal}

func (m PaymentMethod) Valid() bool {
	for _, v := range PaymentMethods {
		if m == v {
			return true
		}
	}
	return false
}

// CustomerInfo is the delivery snapshot taken at checkout. It is stored with
// the order and never re-synced to the customer profile.
type CustomerInfo struct {
	FullName    string `json:"fullName"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProductSnapshot is a frozen copy of the product at order time, so later
// product edits or deletion do not corrupt historical orders.
type ProductSnapshot struct {
	ProductID     gocql.UUID `json:"productId"`
	Name          string     `json:"name"`
	Price         float64    `json:"price"`
	SelectedColor string     `json:"selectedColor,omitempty"`
	SelectedSize  string     `json:"selectedSize,omitempty"`
	Quantity      int        `json:"quantity"`
	Image         string     `json:"image,omitempty"`
}

type Order struct {
	ID            gocql.UUID      `json:"id" db:"order_id"`
	CustomerInfo  CustomerInfo    `json:"customerInfo" db:"customer_info"`
	CustomerID    gocql.UUID      `json:"customerId" db:"customer_id"`
	Product       ProductSnapshot `json:"product" db:"product"`
	TotalPrice    float64         `json:"totalPrice" db:"total_price"`
	PaymentMethod PaymentMethod   `json:"paymentMethod" db:"payment_method"`
	OrderStatus   OrderStatus     `json:"orderStatus" db:"order_status"`
	OrderDate     time.Time       `json:"orderDate" db:"order_date"`
	DeliveryDate  *time.Time      `json:"deliveryDate,omitempty" db:"delivery_date"`
	CreatedAt     time.Time       `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time       `json:"updatedAt" db:"updated_at"`
}
