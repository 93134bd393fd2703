package otp

import (
	"context"
	"fmt"
	"time"

	"github.com/otp-login-api/internal/domain"
	"github.com/otp-login-api/internal/pkg/id"
	"github.com/otp-login-api/internal/pkg/identity"
	"github.com/otp-login-api/internal/pkg/otpcode"
)

// Repository is the minimal store interface the OTP manager requires.
type Repository interface {
	Put(ctx context.Context, identityKey, code string, ttl time.Duration) error
	CompareAndDelete(ctx context.Context, identityKey, code string) error
}

// Publisher emits best-effort notification events. Implementations must not
// block the caller.
type Publisher interface {
	Publish(ev domain.Event)
}

type Service interface {
	// Issue generates a code and stores it for the identity with a 5-minute
	// TTL, overwriting any prior unconsumed code. The code is returned for
	// out-of-band delivery only; it is never shown to the client.
	Issue(ctx context.Context, rawIdentity, provider string) (*domain.OneTimeCode, error)
	// Resend is issue semantics under a different event kind: re-invoking
	// before expiry simply replaces the outstanding code.
	Resend(ctx context.Context, rawIdentity, provider string) (*domain.OneTimeCode, error)
	// Verify checks and consumes the stored code in one atomic step.
	// A wrong guess leaves the stored code intact for retry within the TTL.
	Verify(ctx context.Context, rawIdentity, code string) (normalized string, err error)
}

type service struct {
	repo   Repository
	events Publisher
	ttl    time.Duration
}

func NewService(repo Repository, events Publisher) Service {
	return &service{repo: repo, events: events, ttl: domain.OTPTTL}
}

func (s *service) Issue(ctx context.Context, rawIdentity, provider string) (*domain.OneTimeCode, error) {
	return s.issue(ctx, rawIdentity, provider, domain.EventOTPIssued)
}

func (s *service) Resend(ctx context.Context, rawIdentity, provider string) (*domain.OneTimeCode, error) {
	return s.issue(ctx, rawIdentity, provider, domain.EventOTPResent)
}

func (s *service) issue(ctx context.Context, rawIdentity, provider, kind string) (*domain.OneTimeCode, error) {
	ident := identity.Normalize(rawIdentity)
	if ident == "" {
		return nil, fmt.Errorf("identity required: %w", domain.ErrBadRequest)
	}

	code, err := otpcode.New()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Put(ctx, ident, code, s.ttl); err != nil {
		// A failed write must not proceed to notification: the user never
		// received a usable code.
		return nil, err
	}

	otc := &domain.OneTimeCode{Code: code, Identity: ident, IssuedAt: time.Now().UTC()}
	s.events.Publish(domain.Event{
		ID:       id.New(),
		Kind:     kind,
		Identity: ident,
		Provider: provider,
		Code:     code,
		At:       otc.IssuedAt,
	})
	return otc, nil
}

func (s *service) Verify(ctx context.Context, rawIdentity, code string) (string, error) {
	ident := identity.Normalize(rawIdentity)
	if ident == "" {
		return "", fmt.Errorf("identity required: %w", domain.ErrBadRequest)
	}
	if err := s.repo.CompareAndDelete(ctx, ident, code); err != nil {
		return "", err
	}
	return ident, nil
}
