package scylla

import (
	"context"
	"errors"
	"sort"
	"time"

	"flashfit_back_end/internal/models"
	"flashfit_back_end/internal/store"

	"github.com/gocql/gocql"
)

// AccountStore persists brand, customer and rider identities in the ks_users
// keyspace. One table partitioned by role, plus accounts_by_email for login
// lookups.
type AccountStore struct {
	session *gocql.Session
}

func NewAccountStore(session *gocql.Session) *AccountStore {
	return &AccountStore{session: session}
}

const accountColumns = `role, account_id, name, email, password, phone, is_verified, created_at, updated_at`

func (s *AccountStore) Insert(ctx context.Context, a *models.Account) error {
	if err := s.session.Query(`INSERT INTO accounts (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.Role, a.ID, a.Name, a.Email, a.Password, a.Phone, a.IsVerified, a.CreatedAt, a.UpdatedAt,
	).WithContext(ctx).Exec(); err != nil {
		return err
	}

	return s.session.Query(`INSERT INTO accounts_by_email (role, email, account_id) VALUES (?, ?, ?)`,
		a.Role, a.Email, a.ID).WithContext(ctx).Exec()
}

func (s *AccountStore) GetByID(ctx context.Context, role string, id gocql.UUID) (*models.Account, error) {
	var a models.Account
	err := s.session.Query(`SELECT `+accountColumns+` FROM accounts WHERE role = ? AND account_id = ?`, role, id).
		WithContext(ctx).
		Scan(&a.Role, &a.ID, &a.Name, &a.Email, &a.Password, &a.Phone, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AccountStore) GetByEmail(ctx context.Context, role, email string) (*models.Account, error) {
	var id gocql.UUID
	err := s.session.Query(`SELECT account_id FROM accounts_by_email WHERE role = ? AND email = ?`, role, email).
		WithContext(ctx).Scan(&id)
	if errors.Is(err, gocql.ErrNotFound) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, role, id)
}

func (s *AccountStore) Update(ctx context.Context, a *models.Account) error {
	current, err := s.GetByID(ctx, a.Role, a.ID)
	if err != nil {
		return err
	}

	a.UpdatedAt = time.Now()
	if err := s.session.Query(`UPDATE accounts SET name = ?, email = ?, phone = ?, updated_at = ? WHERE role = ? AND account_id = ?`,
		a.Name, a.Email, a.Phone, a.UpdatedAt, a.Role, a.ID).WithContext(ctx).Exec(); err != nil {
		return err
	}

	// Keep the email lookup table in step when the address changes.
	if current.Email != a.Email {
		if err := s.session.Query(`DELETE FROM accounts_by_email WHERE role = ? AND email = ?`,
			a.Role, current.Email).WithContext(ctx).Exec(); err != nil {
			return err
		}
		return s.session.Query(`INSERT INTO accounts_by_email (role, email, account_id) VALUES (?, ?, ?)`,
			a.Role, a.Email, a.ID).WithContext(ctx).Exec()
	}
	return nil
}

func (s *AccountStore) MarkVerified(ctx context.Context, role string, id gocql.UUID) error {
	return s.session.Query(`UPDATE accounts SET is_verified = true, updated_at = ? WHERE role = ? AND account_id = ?`,
		time.Now(), role, id).WithContext(ctx).Exec()
}

func (s *AccountStore) ListVerified(ctx context.Context, role string) ([]models.Account, error) {
	iter := s.session.Query(`SELECT `+accountColumns+` FROM accounts WHERE role = ? AND is_verified = true ALLOW FILTERING`,
		role).WithContext(ctx).Iter()

	var accounts []models.Account
	var a models.Account
	for iter.Scan(&a.Role, &a.ID, &a.Name, &a.Email, &a.Password, &a.Phone, &a.IsVerified, &a.CreatedAt, &a.UpdatedAt) {
		accounts = append(accounts, a)
		a = models.Account{}
	}
	if err := iter.Close(); err != nil {
		return nil, err
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Name < accounts[j].Name
	})
	return accounts, nil
}
