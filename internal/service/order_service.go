package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/metrics"
	"github.com/nikolayk812/shopping/internal/port"
	"go.uber.org/zap"
)

type OrderService struct {
	tx     port.Transactor
	rates  port.ExchangeRateProvider
	logger *zap.Logger
	now    func() time.Time
}

func NewOrderService(tx port.Transactor, rates port.ExchangeRateProvider, logger *zap.Logger) *OrderService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &OrderService{
		tx:     tx,
		rates:  rates,
		logger: logger,
		now:    time.Now,
	}
}

// Place turns the user's cart into an order priced at the current USD to KRW rate
// and empties the cart. The rate is fetched outside of the write transaction.
func (s *OrderService) Place(ctx context.Context, userID int64) (int64, error) {
	err := s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		lines, err := r.CartItems.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("CartItems.ListByUser: %w", err)
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	rate, err := s.rates.CurrentUSDToKRW(ctx)
	if err != nil {
		return 0, fmt.Errorf("rates.CurrentUSDToKRW: %w", err)
	}

	var orderID int64

	err = s.tx.ReadWrite(ctx, func(r port.Repositories) error {
		// a concurrent Place for the same user blocks here and then sees an empty cart
		lines, err := r.CartItems.ListByUserForUpdate(ctx, userID)
		if err != nil {
			return fmt.Errorf("CartItems.ListByUserForUpdate: %w", err)
		}

		cart, err := domain.NewCartItems(userID, lines)
		if err != nil {
			return fmt.Errorf("domain.NewCartItems: %w", err)
		}

		order, err := domain.NewOrder(cart, rate, s.now().UTC())
		if err != nil {
			return fmt.Errorf("domain.NewOrder: %w", err)
		}

		orderID, err = r.Orders.Create(ctx, order)
		if err != nil {
			return fmt.Errorf("Orders.Create: %w", err)
		}

		// lines added after the lock was taken are not part of the order and stay in the cart
		ids := make([]int64, 0, len(lines))
		for _, line := range lines {
			ids = append(ids, line.ID)
		}

		deleted, err := r.CartItems.DeleteByIDs(ctx, userID, ids)
		if err != nil {
			return fmt.Errorf("CartItems.DeleteByIDs: %w", err)
		}
		if deleted != int64(len(ids)) {
			return fmt.Errorf("deleted %d of %d cart items: %w", deleted, len(ids), domain.ErrCartItemConflict)
		}

		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("tx.ReadWrite: %w", err)
	}

	metrics.RecordOrderPlaced()
	s.logger.Info("order placed",
		zap.Int64("user_id", userID), zap.Int64("order_id", orderID), zap.String("usd_krw", rate.String()))

	return orderID, nil
}

func (s *OrderService) Find(ctx context.Context, userID, orderID int64) (domain.Order, error) {
	var order domain.Order

	err := s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		var err error
		order, err = r.Orders.Get(ctx, orderID)
		if err != nil {
			return fmt.Errorf("Orders.Get: %w", err)
		}

		return order.ValidateOwner(userID)
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	return order, nil
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	var orders []domain.Order

	err := s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		var err error
		orders, err = r.Orders.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("Orders.ListByUser: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	return orders, nil
}
