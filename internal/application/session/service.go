package session

import (
	"context"
	"fmt"
	"time"

	"github.com/otp-login-api/internal/domain"
	"github.com/otp-login-api/internal/pkg/id"
	"github.com/otp-login-api/internal/pkg/token"
)

// Repository is the minimal store interface the session manager requires.
type Repository interface {
	Put(ctx context.Context, tok, identityVal string, ttl time.Duration) error
	GetIdentity(ctx context.Context, tok string) (string, error)
}

// Publisher emits best-effort notification events.
type Publisher interface {
	Publish(ev domain.Event)
}

type Service interface {
	// Create mints an opaque token and binds it to the identity for the
	// session TTL. Called only after successful code verification.
	Create(ctx context.Context, identityVal string) (*domain.Session, error)
	// Resolve looks up the identity for a token. Read-only, no side effects;
	// a miss is domain.ErrNotFound.
	Resolve(ctx context.Context, tok string) (string, error)
}

type service struct {
	repo   Repository
	events Publisher
	ttl    time.Duration
}

func NewService(repo Repository, events Publisher) Service {
	return &service{repo: repo, events: events, ttl: domain.SessionTTL}
}

func (s *service) Create(ctx context.Context, identityVal string) (*domain.Session, error) {
	tok, err := token.NewSessionToken()
	if err != nil {
		return nil, fmt.Errorf("generate session token: %w", err)
	}

	if err := s.repo.Put(ctx, tok, identityVal, s.ttl); err != nil {
		// A failed write must not treat the user as authenticated.
		return nil, err
	}

	sess := &domain.Session{Token: tok, Identity: identityVal, IssuedAt: time.Now().UTC()}
	s.events.Publish(domain.Event{
		ID:       id.New(),
		Kind:     domain.EventSessionCreated,
		Identity: identityVal,
		At:       sess.IssuedAt,
	})
	return sess, nil
}

func (s *service) Resolve(ctx context.Context, tok string) (string, error) {
	return s.repo.GetIdentity(ctx, tok)
}
