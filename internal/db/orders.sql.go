// source: orders.sql

package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const addOrderItem = `-- name: AddOrderItem :one
INSERT INTO order_items (order_id, product_name, product_image_url, product_price_usd, quantity)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type AddOrderItemParams struct {
	OrderID         int64
	ProductName     string
	ProductImageUrl string
	ProductPriceUsd decimal.Decimal
	Quantity        int32
}

func (q *Queries) AddOrderItem(ctx context.Context, arg AddOrderItemParams) (int64, error) {
	row := q.db.QueryRow(ctx, addOrderItem,
		arg.OrderID,
		arg.ProductName,
		arg.ProductImageUrl,
		arg.ProductPriceUsd,
		arg.Quantity,
	)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const createOrder = `-- name: CreateOrder :one
INSERT INTO orders (user_id, created_at, exchange_rate)
VALUES ($1, $2, $3)
RETURNING id
`

type CreateOrderParams struct {
	UserID       int64
	CreatedAt    time.Time
	ExchangeRate decimal.Decimal
}

func (q *Queries) CreateOrder(ctx context.Context, arg CreateOrderParams) (int64, error) {
	row := q.db.QueryRow(ctx, createOrder, arg.UserID, arg.CreatedAt, arg.ExchangeRate)
	var id int64
	err := row.Scan(&id)
	return id, err
}

const getOrder = `-- name: GetOrder :one
SELECT id, user_id, created_at, exchange_rate
FROM orders
WHERE id = $1
`

func (q *Queries) GetOrder(ctx context.Context, id int64) (Order, error) {
	row := q.db.QueryRow(ctx, getOrder, id)
	var i Order
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.CreatedAt,
		&i.ExchangeRate,
	)
	return i, err
}

const listOrderItems = `-- name: ListOrderItems :many
SELECT id, order_id, product_name, product_image_url, product_price_usd, quantity
FROM order_items
WHERE order_id = ANY ($1::BIGINT[])
ORDER BY order_id, id
`

func (q *Queries) ListOrderItems(ctx context.Context, orderIds []int64) ([]OrderItem, error) {
	rows, err := q.db.Query(ctx, listOrderItems, orderIds)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []OrderItem
	for rows.Next() {
		var i OrderItem
		if err := rows.Scan(
			&i.ID,
			&i.OrderID,
			&i.ProductName,
			&i.ProductImageUrl,
			&i.ProductPriceUsd,
			&i.Quantity,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const listOrdersByUser = `-- name: ListOrdersByUser :many
SELECT id, user_id, created_at, exchange_rate
FROM orders
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListOrdersByUser(ctx context.Context, userID int64) ([]Order, error) {
	rows, err := q.db.Query(ctx, listOrdersByUser, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Order
	for rows.Next() {
		var i Order
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.CreatedAt,
			&i.ExchangeRate,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
