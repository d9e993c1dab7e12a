// Package cache holds the Redis-backed short-lived state: the email
// verification codes issued at signup.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeTTL is how long a verification code stays usable. Matches the
// "expires in 3 minutes" wording of the verification email.
const CodeTTL = 3 * time.Minute

var (
	ErrCodeExpired  = errors.New("verification code expired or never issued")
	ErrCodeMismatch = errors.New("verification code mismatch")
)

// CodeStore issues and checks single-use verification codes.
type CodeStore interface {
	Save(ctx context.Context, role, accountID, code string) error
	// Verify consumes the code on success, so a code can never be replayed.
	Verify(ctx context.Context, role, accountID, code string) error
}

// RedisCodeStore keeps codes under otp:<role>:<id> with a TTL, so expiry
// needs no sweeper.
type RedisCodeStore struct {
	rdb *redis.Client
}

func NewRedisCodeStore(rdb *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{rdb: rdb}
}

func key(role, accountID string) string {
	return "otp:" + role + ":" + accountID
}

func (s *RedisCodeStore) Save(ctx context.Context, role, accountID, code string) error {
	return s.rdb.Set(ctx, key(role, accountID), code, CodeTTL).Err()
}

func (s *RedisCodeStore) Verify(ctx context.Context, role, accountID, code string) error {
	stored, err := s.rdb.Get(ctx, key(role, accountID)).Result()
	if errors.Is(err, redis.Nil) {
		return ErrCodeExpired
	}
	if err != nil {
		return err
	}
	if stored != code {
		return ErrCodeMismatch
	}
	return s.rdb.Del(ctx, key(role, accountID)).Err()
}
