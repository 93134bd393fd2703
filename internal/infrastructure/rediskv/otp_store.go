package rediskv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/otp-login-api/internal/domain"
)

const otpKeyPrefix = "otp:"

// compareAndDelete consumes the stored code only when it matches the
// submitted one. GET, compare and DEL run as a single atomic step so two
// concurrent verifies of the same correct code cannot both succeed.
// Returns -1 when the key is absent, 0 on mismatch, 1 on consume.
var compareAndDelete = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v == false then
  return -1
end
if v == ARGV[1] then
  redis.call("DEL", KEYS[1])
  return 1
end
return 0
`)

// OTPStore keeps one-time codes under otp:<identity> with a store-enforced TTL.
type OTPStore struct {
	rdb     *redis.Client
	timeout time.Duration
}

func NewOTPStore(rdb *redis.Client, timeout time.Duration) *OTPStore {
	return &OTPStore{rdb: rdb, timeout: timeout}
}

func (s *OTPStore) key(identity string) string {
	return otpKeyPrefix + identity
}

// Put stores a code for the identity, overwriting any prior unconsumed code.
func (s *OTPStore) Put(ctx context.Context, identityKey, code string, ttl time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if err := s.rdb.Set(ctx, s.key(identityKey), code, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return nil
}

// Get returns the live code for the identity, or domain.ErrNotFound when no
// code was issued or the store already expired it.
func (s *OTPStore) Get(ctx context.Context, identityKey string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	code, err := s.rdb.Get(ctx, s.key(identityKey)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return code, nil
}

// CompareAndDelete verifies and consumes the stored code in one atomic step.
// A mismatch leaves the stored code intact so the caller may retry within
// the TTL window.
func (s *OTPStore) CompareAndDelete(ctx context.Context, identityKey, code string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := compareAndDelete.Run(ctx, s.rdb, []string{s.key(identityKey)}, code).Int()
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	switch res {
	case 1:
		return nil
	case 0:
		return domain.ErrMismatch
	default:
		return domain.ErrNotFound
	}
}
