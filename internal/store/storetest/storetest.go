// Package storetest provides in-memory store implementations for handler
// and middleware tests.
package storetest

import (
	"context"
	"sort"
	"sync"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"

	"github.com/gocql/gocql"
)

// Products is an in-memory store.ProductStore. Safe for concurrent use, so
// decrement tests can hammer it from multiple goroutines.
type Products struct {
	mu    sync.Mutex
	items map[gocql.UUID]models.Product

	// Err, when set, is returned by every method.
	Err error
}

func NewProducts() *Products {
	return &Products{items: make(map[gocql.UUID]models.Product)}
}

// Add seeds a product without going through Insert.
func (s *Products) Add(p models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = p
}

func (s *Products) Insert(_ context.Context, p *models.Product) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = *p
	return nil
}

func (s *Products) GetByID(_ context.Context, id gocql.UUID) (*models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Products) GetForBrand(_ context.Context, id, brandID gocql.UUID) (*models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok || p.Brand != brandID {
		return nil, store.ErrNotFound
	}
	return &p, nil
}

func (s *Products) ListByBrand(_ context.Context, brandID gocql.UUID) ([]models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Product
	for _, p := range s.items {
		if p.Brand == brandID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Products) Update(_ context.Context, p *models.Product) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID]; !ok {
		return store.ErrNotFound
	}
	s.items[p.ID] = *p
	return nil
}

func (s *Products) Delete(_ context.Context, id, brandID gocql.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok || p.Brand != brandID {
		return store.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *Products) SetStock(_ context.Context, id, brandID gocql.UUID, stock int) (*models.Product, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok || p.Brand != brandID {
		return nil, store.ErrNotFound
	}
	p.Stock = stock
	s.items[id] = p
	return &p, nil
}

func (s *Products) DecrementStock(_ context.Context, id gocql.UUID, qty int) (store.DecrementResult, error) {
	if s.Err != nil {
		return store.DecrementResult{}, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.items[id]
	if !ok {
		return store.DecrementResult{}, nil
	}
	if p.Stock < qty {
		return store.DecrementResult{Found: true, NewStock: p.Stock}, nil
	}
	p.Stock -= qty
	s.items[id] = p
	return store.DecrementResult{Found: true, Sufficient: true, NewStock: p.Stock}, nil
}

// Stock reads the current stock of a seeded product.
func (s *Products) Stock(id gocql.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.items[id].Stock
}

// Orders is an in-memory store.OrderStore.
type Orders struct {
	mu    sync.Mutex
	items []models.Order

	Err error
}

func NewOrders() *Orders {
	return &Orders{}
}

func (s *Orders) Add(o models.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, o)
}

func (s *Orders) Insert(_ context.Context, o *models.Order) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, *o)
	return nil
}

func (s *Orders) GetByID(_ context.Context, id gocql.UUID) (*models.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.items {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Orders) ListAll(_ context.Context) ([]models.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]models.Order(nil), s.items...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Orders) ListByCustomer(_ context.Context, customerID gocql.UUID) ([]models.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Order
	for _, o := range s.items {
		if o.CustomerID == customerID {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Orders) UpdateStatus(_ context.Context, id gocql.UUID, status models.OrderStatus) (*models.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].OrderStatus = status
			o := s.items[i]
			return &o, nil
		}
	}
	return nil, store.ErrNotFound
}

// Accounts is an in-memory store.AccountStore.
type Accounts struct {
	mu    sync.Mutex
	items map[string]models.Account // role + id

	Err error
}

func NewAccounts() *Accounts {
	return &Accounts{items: make(map[string]models.Account)}
}

func accountKey(role string, id gocql.UUID) string {
	return role + ":" + id.String()
}

func (s *Accounts) Add(a models.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[accountKey(a.Role, a.ID)] = a
}

func (s *Accounts) Insert(_ context.Context, a *models.Account) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[accountKey(a.Role, a.ID)] = *a
	return nil
}

func (s *Accounts) GetByID(_ context.Context, role string, id gocql.UUID) (*models.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[accountKey(role, id)]
	if !ok {
		return nil, store.ErrNotFound
	}
	return &a, nil
}

func (s *Accounts) GetByEmail(_ context.Context, role, email string) (*models.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.items {
		if a.Role == role && a.Email == email {
			a := a
			return &a, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Accounts) Update(_ context.Context, a *models.Account) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[accountKey(a.Role, a.ID)]; !ok {
		return store.ErrNotFound
	}
	s.items[accountKey(a.Role, a.ID)] = *a
	return nil
}

func (s *Accounts) MarkVerified(_ context.Context, role string, id gocql.UUID) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.items[accountKey(role, id)]
	if !ok {
		return store.ErrNotFound
	}
	a.IsVerified = true
	s.items[accountKey(role, id)] = a
	return nil
}

func (s *Accounts) ListVerified(_ context.Context, role string) ([]models.Account, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Account
	for _, a := range s.items {
		if a.Role == role && a.IsVerified {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}
