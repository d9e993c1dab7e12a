// Package store defines the persistence interfaces consumed by the HTTP
// handlers. The ScyllaDB implementations live in store/scylla; tests plug in
// in-memory fakes.
package store

import (
	"context"
	"errors"

	"flashfit_back_end/internal/models"

	"github.com/gocql/gocql"
)

// ErrNotFound covers both "record does not exist" and "record exists but is
// outside the caller's scope". Scoped reads deliberately do not distinguish
// the two.
var ErrNotFound = errors.New("not found")

// DecrementResult reports the outcome of an atomic stock decrement.
type DecrementResult struct {
	Found      bool
	Sufficient bool
	NewStock   int
}

type ProductStore interface {
	Insert(ctx context.Context, p *models.Product) error
	// GetByID is unscoped; used for order-side lookups.
	GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error)
	// GetForBrand returns ErrNotFound when the product does not exist OR is
	// owned by another brand.
	GetForBrand(ctx context.Context, id, brandID gocql.UUID) (*models.Product, error)
	ListByBrand(ctx context.Context, brandID gocql.UUID) ([]models.Product, error)
	Update(ctx context.Context, p *models.Product) error
	Delete(ctx context.Context, id, brandID gocql.UUID) error
	SetStock(ctx context.Context, id, brandID gocql.UUID, stock int) (*models.Product, error)
	// DecrementStock atomically performs "stock -= qty if stock >= qty".
	// It never drives stock below zero, even under concurrent calls.
	DecrementStock(ctx context.Context, id gocql.UUID, qty int) (DecrementResult, error)
}

type OrderStore interface {
	Insert(ctx context.Context, o *models.Order) error
	GetByID(ctx context.Context, id gocql.UUID) (*models.Order, error)
	// ListAll and ListByCustomer return orders newest first.
	ListAll(ctx context.Context) ([]models.Order, error)
	ListByCustomer(ctx context.Context, customerID gocql.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id gocql.UUID, status models.OrderStatus) (*models.Order, error)
}

type AccountStore interface {
	Insert(ctx context.Context, a *models.Account) error
	GetByID(ctx context.Context, role string, id gocql.UUID) (*models.Account, error)
	GetByEmail(ctx context.Context, role, email string) (*models.Account, error)
	Update(ctx context.Context, a *models.Account) error
	MarkVerified(ctx context.Context, role string, id gocql.UUID) error
	// ListVerified returns verified accounts of a role sorted by name.
	ListVerified(ctx context.Context, role string) ([]models.Account, error)
}
