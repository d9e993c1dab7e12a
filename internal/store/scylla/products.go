package scylla

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"

	"github.com/gocql/gocql"
)

// ProductStore persists products in the ks_products keyspace. Besides the
// main table it maintains products_by_brand, the lookup table behind every
// brand-scoped query.
type ProductStore struct {
	session *gocql.Session
}

func NewProductStore(session *gocql.Session) *ProductStore {
	return &ProductStore{session: session}
}

const productColumns = `product_id, name, description, price, stock, category, colors, sizes, gender, stitched, images, brand_id, created_at, updated_at`

func (s *ProductStore) Insert(ctx context.Context, p *models.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	if err := s.session.Query(query,
		p.ID, p.Name, p.Description, p.Price, p.Stock, p.Category, p.Colors, p.Sizes,
		p.Gender, p.Stitched, p.Images, p.Brand, p.CreatedAt, p.UpdatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.session.Query(`INSERT INTO products_by_brand (brand_id, product_id) VALUES (?, ?)`,
		p.Brand, p.ID).WithContext(ctx).Exec()
}

func (s *ProductStore) GetByID(ctx context.Context, id gocql.UUID) (*models.Product, error) {
	var p models.Product
	err := s.session.Query(`SELECT `+productColumns+` FROM products WHERE product_id = ?`, id).
		WithContext(ctx).
		Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Category, &p.Colors,
			&p.Sizes, &p.Gender, &p.Stitched, &p.Images, &p.Brand, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProductStore) GetForBrand(ctx context.Context, id, brandID gocql.UUID) (*models.Product, error) {
	p, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Another brand's product is reported exactly like a missing one.
	if p.Brand != brandID {
		return nil, store.ErrNotFound
	}
	return p, nil
}

func (s *ProductStore) ListByBrand(ctx context.Context, brandID gocql.UUID) ([]models.Product, error) {
	iter := s.session.Query(`SELECT product_id FROM products_by_brand WHERE brand_id = ?`, brandID).
		WithContext(ctx).Iter()

	var ids []gocql.UUID
	var id gocql.UUID
	for iter.Scan(&id) {
		ids = append(ids, id)
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	var products []models.Product
	for _, pid := range ids {
		p, err := s.GetByID(ctx, pid)
		if errors.Is(err, store.ErrNotFound) {
			continue // stale index row
		}
		if err != nil {
			return nil, err
		}
		products = append(products, *p)
	}

	sort.Slice(products, func(i, j int) bool {
		return products[i].CreatedAt.After(products[j].CreatedAt)
	})
	return products, nil
}

func (s *ProductStore) Update(ctx context.Context, p *models.Product) error {
	p.UpdatedAt = time.Now()
	query := `UPDATE products SET name = ?, description = ?, price = ?, stock = ?, category = ?, colors = ?, sizes = ?, gender = ?, stitched = ?, images = ?, updated_at = ? WHERE product_id = ?`
	return s.session.Query(query,
		p.Name, p.Description, p.Price, p.Stock, p.Category, p.Colors, p.Sizes,
		p.Gender, p.Stitched, p.Images, p.UpdatedAt, p.ID,
	).WithContext(ctx).Exec()
}

func (s *ProductStore) Delete(ctx context.Context, id, brandID gocql.UUID) error {
	if _, err := s.GetForBrand(ctx, id, brandID); err != nil {
		return err
	}
	if err := s.session.Query(`DELETE FROM products WHERE product_id = ?`, id).WithContext(ctx).Exec(); err != nil {
		return err
	}
	return s.session.Query(`DELETE FROM products_by_brand WHERE brand_id = ? AND product_id = ?`,
		brandID, id).WithContext(ctx).Exec()
}

func (s *ProductStore) SetStock(ctx context.Context, id, brandID gocql.UUID, stock int) (*models.Product, error) {
	p, err := s.GetForBrand(ctx, id, brandID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.session.Query(`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ?`,
		stock, now, id).WithContext(ctx).Exec(); err != nil {
		return nil, err
	}

	p.Stock = stock
	p.UpdatedAt = now
	return p, nil
}

// maxDecrementRetries bounds the CAS loop under heavy contention on one
// product.
const maxDecrementRetries = 5

// DecrementStock runs a compare-and-set loop so two concurrent orders can
// never both consume the same units: the write only applies when the stock
// read in this round is still the stored value.
func (s *ProductStore) DecrementStock(ctx context.Context, id gocql.UUID, qty int) (store.DecrementResult, error) {
	for attempt := 0; attempt < maxDecrementRetries; attempt++ {
		var stock int
		err := s.session.Query(`SELECT stock FROM products WHERE product_id = ?`, id).
			WithContext(ctx).Scan(&stock)
		if errors.Is(err, gocql.ErrNotFound) {
			return store.DecrementResult{Found: false}, nil
		}
		if err != nil {
			return store.DecrementResult{}, err
		}

		if stock < qty {
			return store.DecrementResult{Found: true, Sufficient: false, NewStock: stock}, nil
		}

		var prev int
		applied, err := s.session.Query(
			`UPDATE products SET stock = ?, updated_at = ? WHERE product_id = ? IF stock = ?`,
			stock-qty, time.Now(), id, stock,
		).WithContext(ctx).ScanCAS(&prev)
		if err != nil {
			return store.DecrementResult{}, err
		}
		if applied {
			return store.DecrementResult{Found: true, Sufficient: true, NewStock: stock - qty}, nil
		}
		// Someone else won the round; re-read and try again.
	}
	return store.DecrementResult{}, fmt.Errorf("stock update contention on product %s", id)
}
