package invite

import (
	"context"
	"time"

	"github.com/uniform-shop-api/internal/domain"
	pkgtoken "github.com/uniform-shop-api/internal/pkg/token"
)

// Options controls what an issued invite binds to. SupplierID, when set,
// attaches the consuming account to that existing supplier; Email records the
// intended recipient but is advisory only and not enforced at acceptance.
type Options struct {
	SupplierID *string
	Email      *string
}

// Result is what a consumed invite grants the caller: the role elevation is
// implied, and SupplierID tells the caller whether to bind to an existing
// supplier entity (non-nil) or create a fresh one (nil).
type Result struct {
	SupplierID *string
	Email      *string
}

type Service interface {
	Issue(ctx context.Context, opts Options) (string, error)
	Consume(ctx context.Context, rawToken, consumingUserID string) (*Result, error)
}

type inviteStore interface {
	Put(ctx context.Context, inv *domain.SupplierInvite) error
	Consume(ctx context.Context, tokenHash, usedBy string, now time.Time) (*domain.SupplierInvite, error)
}

type ServiceDeps struct {
	Store inviteStore
	TTL   time.Duration
}

type service struct {
	deps ServiceDeps
}

func NewService(deps ServiceDeps) Service {
	return &service{deps: deps}
}

func (s *service) Issue(ctx context.Context, opts Options) (string, error) {
	raw, err := pkgtoken.New()
	if err != nil {
		return "", err
	}
	now := time.Now().UTC()
	rec := &domain.SupplierInvite{
		TokenHash:  pkgtoken.Hash(raw),
		SupplierID: opts.SupplierID,
		Email:      opts.Email,
		Role:       domain.RoleSupplier,
		ExpiresAt:  now.Add(s.deps.TTL).Unix(),
		CreatedAt:  now,
	}
	if err := s.deps.Store.Put(ctx, rec); err != nil {
		return "", err
	}
	return raw, nil
}

func (s *service) Consume(ctx context.Context, rawToken, consumingUserID string) (*Result, error) {
	rec, err := s.deps.Store.Consume(ctx, pkgtoken.Hash(rawToken), consumingUserID, time.Now())
	if err != nil {
		return nil, err
	}
	return &Result{SupplierID: rec.SupplierID, Email: rec.Email}, nil
}
