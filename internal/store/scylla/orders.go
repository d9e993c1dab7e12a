package scylla

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"

	"github.com/gocql/gocql"
)

// OrderStore persists orders in the ks_orders keyspace. The customerInfo and
// product snapshots are stored as JSON text columns; orders_by_customer keeps
// a full copy clustered newest-first for the customer history screen.
type OrderStore struct {
	session *gocql.Session
}

func NewOrderStore(session *gocql.Session) *OrderStore {
	return &OrderStore{session: session}
}

const orderColumns = `order_id, customer_id, customer_info, product, total_price, payment_method, order_status, order_date, delivery_date, created_at, updated_at`

func (s *OrderStore) Insert(ctx context.Context, o *models.Order) error {
	infoJSON, err := json.Marshal(o.CustomerInfo)
	if err != nil {
		return err
	}
	productJSON, err := json.Marshal(o.Product)
	if err != nil {
		return err
	}

	var delivery time.Time
	if o.DeliveryDate != nil {
		delivery = *o.DeliveryDate
	}

	args := []interface{}{
		o.ID, o.CustomerID, string(infoJSON), string(productJSON), o.TotalPrice,
		string(o.PaymentMethod), string(o.OrderStatus), o.OrderDate, delivery,
		o.CreatedAt, o.UpdatedAt,
	}

	if err := s.session.Query(`INSERT INTO orders (`+orderColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		args...).WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.session.Query(`INSERT INTO orders_by_customer (customer_id, created_at, order_id, customer_info, product, total_price, payment_method, order_status, order_date, delivery_date, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.CustomerID, o.CreatedAt, o.ID, string(infoJSON), string(productJSON), o.TotalPrice,
		string(o.PaymentMethod), string(o.OrderStatus), o.OrderDate, delivery, o.UpdatedAt,
	).WithContext(ctx).Exec()
}

func scanOrder(dest *models.Order, infoJSON, productJSON string, delivery time.Time) error {
	if err := json.Unmarshal([]byte(infoJSON), &dest.CustomerInfo); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(productJSON), &dest.Product); err != nil {
		return err
	}
	if !delivery.IsZero() {
		d := delivery
		dest.DeliveryDate = &d
	}
	return nil
}

func (s *OrderStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Order, error) {
	var (
		o                     models.Order
		infoJSON, productJSON string
		payment, status       string
		delivery              time.Time
	)
	err := s.session.Query(`SELECT `+orderColumns+` FROM orders WHERE order_id = ?`, id).
		WithContext(ctx).
		Scan(&o.ID, &o.CustomerID, &infoJSON, &productJSON, &o.TotalPrice, &payment,
			&status, &o.OrderDate, &delivery, &o.CreatedAt, &o.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	o.PaymentMethod = models.PaymentMethod(payment)
	o.OrderStatus = models.OrderStatus(status)
	if err := scanOrder(&o, infoJSON, productJSON, delivery); err != nil {
		return nil, err
	}
	return &o, nil
}

// ListAll scans the whole orders table. The brand order list is a post-filter
// over this set; production-size catalogs would want a dedicated
// orders_by_brand table maintained at write time.
func (s *OrderStore) ListAll(ctx context.Context) ([]models.Order, error) {
	iter := s.session.Query(`SELECT ` + orderColumns + ` FROM orders`).WithContext(ctx).Iter()

	var orders []models.Order
	var (
		o                     models.Order
		infoJSON, productJSON string
		payment, status       string
		delivery              time.Time
	)
	for iter.Scan(&o.ID, &o.CustomerID, &infoJSON, &productJSON, &o.TotalPrice, &payment,
		&status, &o.OrderDate, &delivery, &o.CreatedAt, &o.UpdatedAt) {
		o.PaymentMethod = models.PaymentMethod(payment)
		o.OrderStatus = models.OrderStatus(status)
		if err := scanOrder(&o, infoJSON, productJSON, delivery); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(orders, func(i, j int) bool {
		return orders[i].CreatedAt.After(orders[j].CreatedAt)
	})
	return orders, nil
}

func (s *OrderStore) ListByCustomer(ctx context.Context, customerID gocql.UUID) ([]models.Order, error) {
	// Clustered on created_at DESC, so rows already come back newest first.
	iter := s.session.Query(`SELECT order_id, created_at, customer_info, product, total_price, payment_method, order_status, order_date, delivery_date, updated_at FROM orders_by_customer WHERE customer_id = ?`,
		customerID).WithContext(ctx).Iter()

	var orders []models.Order
	var (
		o                     models.Order
		infoJSON, productJSON string
		payment, status       string
		delivery              time.Time
	)
	for iter.Scan(&o.ID, &o.CreatedAt, &infoJSON, &productJSON, &o.TotalPrice, &payment,
		&status, &o.OrderDate, &delivery, &o.UpdatedAt) {
		o.CustomerID = customerID
		o.PaymentMethod = models.PaymentMethod(payment)
		o.OrderStatus = models.OrderStatus(status)
		if err := scanOrder(&o, infoJSON, productJSON, delivery); err != nil {
			return nil, err
		}
		orders = append(orders, o)
		o = models.Order{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}
	return orders, nil
}

// UpdateStatus mutates only the status column; nothing else on the order is
// re-validated or touched.
func (s *OrderStore) UpdateStatus(ctx context.Context, id gocql.UUID, status models.OrderStatus) (*models.Order, error) {
	o, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.session.Query(`UPDATE orders SET order_status = ?, updated_at = ? WHERE order_id = ?`,
		string(status), now, id).WithContext(ctx).Exec(); err != nil {
		return nil, err
	}
	if err := s.session.Query(`UPDATE orders_by_customer SET order_status = ?, updated_at = ? WHERE customer_id = ? AND created_at = ? AND order_id = ?`,
		string(status), now, o.CustomerID, o.CreatedAt, o.ID).WithContext(ctx).Exec(); err != nil {
		return nil, err
	}

	o.OrderStatus = status
	o.UpdatedAt = now
	return o, nil
}
