package token

import (
	"context"
	"fmt"
	"time"

	"github.com/uniform-shop-api/internal/domain"
	pkgtoken "github.com/uniform-shop-api/internal/pkg/token"
)

// Consumed is the identity a successfully consumed token proves: that this
// (user, email, purpose) intent was authorized. Applying the effect — marking
// verified, swapping the email, allowing a password change — is the caller's
// job, not this service's.
type Consumed struct {
	UserID string
	Email  string
}

type Service interface {
	// Issue persists a hashed single-use record and returns the raw secret
	// for out-of-band delivery. The raw secret is never stored or logged.
	Issue(ctx context.Context, userID, email string, purpose domain.TokenPurpose) (string, error)
	// Consume atomically validates and marks the token used. Any failure —
	// unknown, expired, already used, wrong purpose — is
	// domain.ErrTokenInvalidOrExpired; store faults are ErrStoreUnavailable.
	Consume(ctx context.Context, rawToken string, purpose domain.TokenPurpose) (*Consumed, error)
}

// tokenStore is the persisted-store contract this service relies on. Consume
// must be a single atomic conditional update: check and mark-used in one
// indivisible step.
type tokenStore interface {
	Put(ctx context.Context, t *domain.EmailToken) error
	Consume(ctx context.Context, tokenHash string, purpose domain.TokenPurpose, now time.Time) (*domain.EmailToken, error)
}

// ServiceDeps carries the store handle and per-purpose lifetimes.
type ServiceDeps struct {
	Store            tokenStore
	VerifyEmailTTL   time.Duration
	ChangeEmailTTL   time.Duration
	ResetPasswordTTL time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Issue(ctx context.Context, userID, email string, purpose domain.TokenPurpose) (string, error) {
	ttl, err := s.ttlFor(purpose)
	if err != nil {
		return "", err
	}
	raw, err := pkgtoken.New()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	rec := &domain.EmailToken{
		TokenHash: pkgtoken.Hash(raw),
		UserID:    userID,
		Email:     email,
		Purpose:   purpose,
		ExpiresAt: now.Add(ttl).Unix(),
		CreatedAt: now,
	}
	if err := s.deps.Store.Put(ctx, rec); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *service) Consume(ctx context.Context, rawToken string, purpose domain.TokenPurpose) (*Consumed, error) {
	rec, err := s.deps.Store.Consume(ctx, pkgtoken.Hash(rawToken), purpose, time.Now())
	if err != nil {
		return nil, err
	}
	return &Consumed{UserID: rec.UserID, Email: rec.Email}, nil
}

func (s *service) ttlFor(purpose domain.TokenPurpose) (time.Duration, error) {
	switch purpose {
	case domain.PurposeVerifyEmail:
		return s.deps.VerifyEmailTTL, nil
	case domain.PurposeChangeEmail:
		return s.deps.ChangeEmailTTL, nil
	case domain.PurposeResetPassword:
		return s.deps.ResetPasswordTTL, nil
	default:
		return 0, fmt.Errorf("unknown token purpose %q: %w", purpose, domain.ErrBadRequest)
	}
}
