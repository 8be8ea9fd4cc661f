package service

import (
	"context"
	"fmt"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
)

// CatalogService is the read-only product listing.
type CatalogService struct {
	tx port.Transactor
}

func NewCatalogService(tx port.Transactor) *CatalogService {
	return &CatalogService{tx: tx}
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product

	err := s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		var err error
		products, err = r.Products.List(ctx)
		if err != nil {
			return fmt.Errorf("Products.List: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	return products, nil
}
