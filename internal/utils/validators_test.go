package utils

import (
	"testing"

	"flashfit_back_end/internal/models"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
)

func validProduct() models.Product {
	return models.Product{
		Name:     "Embroidered Kurta",
		Price:    80,
		Stock:    10,
		Category: "men_kurta",
		Gender:   "male",
		Colors:   []string{"white", "navy_blue"},
	}
}

func TestValidateProduct(t *testing.T) {
	p := validProduct()
	assert.Empty(t, ValidateProduct(&p))

	p = validProduct()
	p.Name = "ab"
	assert.Contains(t, ValidateProduct(&p), "name")

	p = validProduct()
	p.Name = "   "
	assert.Contains(t, ValidateProduct(&p), "name")

	p = validProduct()
	p.Price = 0
	assert.Contains(t, ValidateProduct(&p), "price")

	p = validProduct()
	p.Stock = -1
	assert.Contains(t, ValidateProduct(&p), "stock")

	p = validProduct()
	p.Category = "hats"
	assert.Contains(t, ValidateProduct(&p), "category")

	p = validProduct()
	p.Gender = "other"
	assert.Contains(t, ValidateProduct(&p), "gender")

	p = validProduct()
	p.Colors = []string{"white", "neon_pink"}
	assert.Equal(t, "Unknown color: neon_pink", ValidateProduct(&p)["colors"])
}

func TestValidateOrder(t *testing.T) {
	info := models.CustomerInfo{FullName: "Ali Raza", Address: "12 Mall Road", PhoneNumber: "+92-300-1234567"}
	snap := models.ProductSnapshot{ProductID: gocql.TimeUUID(), Price: 80, Quantity: 2}

	assert.Empty(t, ValidateOrder(info, snap, models.PaymentCashOnDelivery, gocql.TimeUUID()))

	errs := ValidateOrder(models.CustomerInfo{}, models.ProductSnapshot{}, "Bitcoin", gocql.UUID{})
	assert.Contains(t, errs, "customerInfo.fullName")
	assert.Contains(t, errs, "customerInfo.address")
	assert.Contains(t, errs, "customerInfo.phoneNumber")
	assert.Contains(t, errs, "product.productId")
	assert.Contains(t, errs, "product.price")
	assert.Contains(t, errs, "product.quantity")
	assert.Contains(t, errs, "paymentMethod")
	assert.Contains(t, errs, "customerId")
}

func TestGenerateVerificationCode(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		code := GenerateVerificationCode()
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
		seen[code] = true
	}
	// 100 draws from 900k values collide occasionally, but never all of them
	assert.Greater(t, len(seen), 1)
}
