package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/otp-login-api/internal/domain"
)

const sessionKeyPrefix = "session:"

// SessionStore keeps session:<token> -> identity with a store-enforced TTL.
// Note the inverse indexing direction from the OTP store: the token is the
// key and the identity is the value.
type SessionStore struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewSessionStore(rdb *redis.Client, timeout time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, timeout: timeout}
}

func (s *SessionStore) key(tok string) string {
	return sessionKeyPrefix + tok
}

// Put binds a token to an identity for the given TTL.
func (s *SessionStore) Put(ctx context.Context, tok, identityVal string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.key(tok), identityVal, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// GetIdentity resolves a token to its identity. Read-only; a miss (never
// issued or expired) is domain.ErrNotFound.
func (s *SessionStore) GetIdentity(ctx context.Context, tok string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	identityVal, err := s.rdb.Get(ctx, s.key(tok)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return identityVal, nil
}
