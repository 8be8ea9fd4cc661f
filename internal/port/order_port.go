package port

import (
	"context"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/shopspring/decimal"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (int64, error)
	Get(ctx context.Context, id int64) (domain.Order, error)
	// ListByUser returns orders newest first.
	ListByUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

// ExchangeRateProvider quotes how many KRW one USD buys.
type ExchangeRateProvider interface {
	CurrentUSDToKRW(ctx context.Context) (decimal.Decimal, error)
}
