package models

import (
	"time"

	"github.com/gocql/gocql"
)

// Account roles. Brands own products and fulfill orders, customers place
// them, riders deliver them.
const (
	RoleCustomer = "customer"
	RoleBrand    = "brand"
	RoleRider    = "rider"
)

// Account is a brand, customer or rider identity. The three roles share one
// shape; the verification code itself lives in Redis with a TTL, only the
// verified flag is persisted here.
type Account struct {
	ID         gocql.UUID `json:"id" db:"account_id"`
	Role       string     `json:"role" db:"role"`
	Name       string     `json:"name" db:"name"`
	Email      string     `json:"email" db:"email"`
	Password   string     `json:"-" db:"password"`
	Phone      string     `json:"phone,omitempty" db:"phone"`
	IsVerified bool       `json:"isVerified" db:"is_verified"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}
