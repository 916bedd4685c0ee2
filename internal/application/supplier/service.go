package supplier

import (
	"context"
	"time"

	"github.com/uniform-shop-api/internal/domain"
	"github.com/uniform-shop-api/internal/pkg/id"
)

type Service interface {
	Create(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error)
	Get(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

type supplierStore interface {
	Put(ctx context.Context, s *domain.Supplier) error
	Get(ctx context.Context, supplierID string) (*domain.Supplier, error)
}

type service struct {
	repo supplierStore
}

func NewService(repo supplierStore) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, input domain.SupplierInput) (*domain.Supplier, error) {
	now := time.Now().UTC()
	sup := &domain.Supplier{
		SupplierID:   id.New(),
		Name:         input.Name,
		ContactEmail: input.ContactEmail,
		Enable:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Put(ctx, sup); err != nil {
		return nil, err
	}
	return sup, nil
}

func (s *service) Get(ctx context.Context, supplierID string) (*domain.Supplier, error) {
	return s.repo.Get(ctx, supplierID)
}
