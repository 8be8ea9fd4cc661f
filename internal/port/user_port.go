package port

import (
	"context"

	"github.com/nikolayk812/shopping/internal/domain"
)

type UserRepository interface {
	Get(ctx context.Context, id int64) (domain.User, error)
	GetByEmail(ctx context.Context, email string) (domain.User, error)
	Create(ctx context.Context, user domain.User) (int64, error)
}

type ProductRepository interface {
	Get(ctx context.Context, id int64) (domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
}
