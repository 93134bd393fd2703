package rediskv

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/otp-login-api/internal/domain"
)

func newOTPStoreTest(t *testing.T) (*OTPStore, *miniredis.Miniredis, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	store := NewOTPStore(rdb, time.Second)
	return store, mr, func() {
		_ = rdb.Close()
		mr.Close()
	}
}

func TestOTPStore_PutGet(t *testing.T) {
	store, mr, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", "123456", 5*time.Minute))

	code, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", code)

	// key layout and store-enforced TTL
	got, err := mr.Get("otp:user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "123456", got)
	assert.Equal(t, 5*time.Minute, mr.TTL("otp:user@example.com"))
}

func TestOTPStore_GetMissing(t *testing.T) {
	store, _, done := newOTPStoreTest(t)
	defer done()

	_, err := store.Get(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestOTPStore_PutOverwrites(t *testing.T) {
	store, _, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", "111111", 5*time.Minute))
	require.NoError(t, store.Put(ctx, "user@example.com", "222222", 5*time.Minute))

	// The earlier code is permanently unusable once overwritten.
	assert.ErrorIs(t, store.CompareAndDelete(ctx, "user@example.com", "111111"), domain.ErrMismatch)

	code, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "222222", code)
}

func TestOTPStore_ConcurrentPutLastWriteWins(t *testing.T) {
	store, _, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	// Concurrent issuances for one identity race; whichever write lands
	// last must be stored whole, never a partial or garbled value.
	codes := make([]string, 8)
	for i := range codes {
		codes[i] = fmt.Sprintf("%06d", 100000+i)
	}

	var wg sync.WaitGroup
	for _, code := range codes {
		wg.Add(1)
		go func(code string) {
			defer wg.Done()
			assert.NoError(t, store.Put(ctx, "user@example.com", code, 5*time.Minute))
		}(code)
	}
	wg.Wait()

	stored, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Contains(t, codes, stored)
}

func TestOTPStore_CompareAndDelete(t *testing.T) {
	store, _, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", "654321", 5*time.Minute))

	// wrong guess leaves the code intact
	require.ErrorIs(t, store.CompareAndDelete(ctx, "user@example.com", "000000"), domain.ErrMismatch)
	code, err := store.Get(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, "654321", code)

	// correct code consumes exactly once
	require.NoError(t, store.CompareAndDelete(ctx, "user@example.com", "654321"))
	require.ErrorIs(t, store.CompareAndDelete(ctx, "user@example.com", "654321"), domain.ErrNotFound)

	// never issued
	require.ErrorIs(t, store.CompareAndDelete(ctx, "other@example.com", "654321"), domain.ErrNotFound)
}

func TestOTPStore_TTLExpiry(t *testing.T) {
	store, mr, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", "123456", 5*time.Minute))

	mr.FastForward(5*time.Minute + time.Second)

	_, err := store.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, store.CompareAndDelete(ctx, "user@example.com", "123456"), domain.ErrNotFound)
}

func TestOTPStore_ConcurrentConsume(t *testing.T) {
	store, _, done := newOTPStoreTest(t)
	defer done()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "user@example.com", "777777", 5*time.Minute))

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- store.CompareAndDelete(ctx, "user@example.com", "777777")
		}()
	}
	wg.Wait()
	close(results)

	var ok, notFound int
	for err := range results {
		switch {
		case err == nil:
			ok++
		case errors.Is(err, domain.ErrNotFound):
			notFound++
		default:
			t.Fatalf("unexpected verify error: %v", err)
		}
	}
	assert.Equal(t, 1, ok, "exactly one concurrent verify may consume the code")
	assert.Equal(t, workers-1, notFound)
}

func TestOTPStore_Unavailable(t *testing.T) {
	store, mr, done := newOTPStoreTest(t)
	defer done()
	mr.Close()
	ctx := context.Background()

	assert.ErrorIs(t, store.Put(ctx, "user@example.com", "123456", 5*time.Minute), domain.ErrStoreUnavailable)
	_, err := store.Get(ctx, "user@example.com")
	assert.ErrorIs(t, err, domain.ErrStoreUnavailable)
	assert.ErrorIs(t, store.CompareAndDelete(ctx, "user@example.com", "123456"), domain.ErrStoreUnavailable)
}
