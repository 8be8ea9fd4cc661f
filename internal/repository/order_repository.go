package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopping/internal/db"
	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
)

type orderRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewOrder(pool *pgxpool.Pool) port.OrderRepository {
	return &orderRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewOrderWithTx(tx pgx.Tx) port.OrderRepository {
	return &orderRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *orderRepository) Create(ctx context.Context, order domain.Order) (int64, error) {
	if order.UserID <= 0 {
		return 0, fmt.Errorf("userID[%d] is not valid", order.UserID)
	}
	if len(order.Items) == 0 {
		return 0, fmt.Errorf("order has no items")
	}
	if !order.ExchangeRate.IsPositive() {
		return 0, fmt.Errorf("exchange rate[%s] is not positive", order.ExchangeRate)
	}

	return withTx(ctx, r.pool, r.q, func(q *db.Queries) (int64, error) {
		orderID, err := q.CreateOrder(ctx, db.CreateOrderParams{
			UserID:       order.UserID,
			CreatedAt:    order.CreatedAt,
			ExchangeRate: order.ExchangeRate,
		})
		if err != nil {
			return 0, fmt.Errorf("q.CreateOrder: %w", err)
		}

		for i, item := range order.Items {
			if item.ProductPrice.Currency != usd {
				return 0, fmt.Errorf("item %d: price currency[%s] is not USD", i, item.ProductPrice.Currency)
			}

			_, err := q.AddOrderItem(ctx, db.AddOrderItemParams{
				OrderID:         orderID,
				ProductName:     item.ProductName,
				ProductImageUrl: item.ProductImageURL,
				ProductPriceUsd: item.ProductPrice.Amount,
				Quantity:        int32(item.Quantity),
			})
			if err != nil {
				return 0, fmt.Errorf("q.AddOrderItem[%d]: %w", i, err)
			}
		}

		return orderID, nil
	})
}

func (r *orderRepository) Get(ctx context.Context, id int64) (domain.Order, error) {
	row, err := r.q.GetOrder(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Order{}, fmt.Errorf("order[%d]: %w", id, domain.ErrOrderNotFound)
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("q.GetOrder: %w", err)
	}

	orders, err := r.withItems(ctx, []db.Order{row})
	if err != nil {
		return domain.Order{}, fmt.Errorf("r.withItems: %w", err)
	}

	return orders[0], nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("userID[%d] is not valid", userID)
	}

	rows, err := r.q.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrdersByUser: %w", err)
	}

	orders, err := r.withItems(ctx, rows)
	if err != nil {
		return nil, fmt.Errorf("r.withItems: %w", err)
	}

	return orders, nil
}

// withItems loads the lines of all given orders in one query, keeping the order of rows.
func (r *orderRepository) withItems(ctx context.Context, rows []db.Order) ([]domain.Order, error) {
	if len(rows) == 0 {
		return []domain.Order{}, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	itemRows, err := r.q.ListOrderItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("q.ListOrderItems: %w", err)
	}

	itemsByOrder := make(map[int64][]domain.OrderItem, len(rows))
	for _, itemRow := range itemRows {
		item, err := mapOrderItemToDomain(itemRow)
		if err != nil {
			return nil, fmt.Errorf("mapOrderItemToDomain: %w", err)
		}
		itemsByOrder[item.OrderID] = append(itemsByOrder[item.OrderID], item)
	}

	orders := make([]domain.Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, domain.Order{
			ID:           row.ID,
			UserID:       row.UserID,
			ExchangeRate: row.ExchangeRate,
			Items:        itemsByOrder[row.ID],
			CreatedAt:    row.CreatedAt,
		})
	}

	return orders, nil
}

func mapOrderItemToDomain(row db.OrderItem) (domain.OrderItem, error) {
	quantity, err := domain.NewQuantity(int(row.Quantity))
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("order item[%d]: %w", row.ID, err)
	}

	price, err := domain.NewMoney(row.ProductPriceUsd, usd)
	if err != nil {
		return domain.OrderItem{}, fmt.Errorf("order item[%d]: %w", row.ID, err)
	}

	return domain.OrderItem{
		ID:              row.ID,
		OrderID:         row.OrderID,
		ProductName:     row.ProductName,
		ProductImageURL: row.ProductImageUrl,
		ProductPrice:    price,
		Quantity:        quantity,
	}, nil
}
