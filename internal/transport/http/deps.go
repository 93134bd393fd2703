package http

import (
	"context"
	"time"

	"github.com/otp-login-api/internal/domain"
)

// OTPRepository is the minimal interface the router requires from the
// one-time-code store.
type OTPRepository interface {
	Put(ctx context.Context, identityKey, code string, ttl time.Duration) error
	CompareAndDelete(ctx context.Context, identityKey, code string) error
}

// SessionRepository is the minimal interface the router requires from the
// session store.
type SessionRepository interface {
	Put(ctx context.Context, tok, identityVal string, ttl time.Duration) error
	GetIdentity(ctx context.Context, tok string) (string, error)
}

// EventPublisher is the minimal interface the router requires from the
// notification sink.
type EventPublisher interface {
	Publish(ev domain.Event)
}

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	OTPRepo     OTPRepository
	SessionRepo SessionRepository
	Events      EventPublisher
}
