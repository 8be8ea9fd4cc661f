// source: cart_items.sql

package db

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

const addCartItem = `-- name: AddCartItem :one
INSERT INTO cart_items (user_id, product_id, quantity)
VALUES ($1, $2, $3)
RETURNING id, created_at
`

type AddCartItemParams struct {
	UserID    int64
	ProductID int64
	Quantity  int32
}

type AddCartItemRow struct {
	ID        int64
	CreatedAt time.Time
}

func (q *Queries) AddCartItem(ctx context.Context, arg AddCartItemParams) (AddCartItemRow, error) {
	row := q.db.QueryRow(ctx, addCartItem, arg.UserID, arg.ProductID, arg.Quantity)
	var i AddCartItemRow
	err := row.Scan(&i.ID, &i.CreatedAt)
	return i, err
}

const deleteCartItem = `-- name: DeleteCartItem :execrows
DELETE
FROM cart_items
WHERE id = $1
  AND user_id = $2
`

type DeleteCartItemParams struct {
	ID     int64
	UserID int64
}

func (q *Queries) DeleteCartItem(ctx context.Context, arg DeleteCartItemParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItem, arg.ID, arg.UserID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const deleteCartItemsByIDs = `-- name: DeleteCartItemsByIDs :execrows
DELETE
FROM cart_items
WHERE user_id = $1
  AND id = ANY ($2::BIGINT[])
`

type DeleteCartItemsByIDsParams struct {
	UserID int64
	Ids    []int64
}

func (q *Queries) DeleteCartItemsByIDs(ctx context.Context, arg DeleteCartItemsByIDsParams) (int64, error) {
	result, err := q.db.Exec(ctx, deleteCartItemsByIDs, arg.UserID, arg.Ids)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getCartItem = `-- name: GetCartItem :one
SELECT ci.id, ci.user_id, ci.quantity, ci.created_at,
       p.id AS product_id, p.name AS product_name, p.image_url AS product_image_url, p.price_usd AS product_price_usd
FROM cart_items ci
         JOIN products p ON p.id = ci.product_id
WHERE ci.id = $1
`

type GetCartItemRow struct {
	ID              int64
	UserID          int64
	Quantity        int32
	CreatedAt       time.Time
	ProductID       int64
	ProductName     string
	ProductImageUrl string
	ProductPriceUsd decimal.Decimal
}

func (q *Queries) GetCartItem(ctx context.Context, id int64) (GetCartItemRow, error) {
	row := q.db.QueryRow(ctx, getCartItem, id)
	var i GetCartItemRow
	err := row.Scan(
		&i.ID,
		&i.UserID,
		&i.Quantity,
		&i.CreatedAt,
		&i.ProductID,
		&i.ProductName,
		&i.ProductImageUrl,
		&i.ProductPriceUsd,
	)
	return i, err
}

const listCartItems = `-- name: ListCartItems :many
SELECT ci.id, ci.user_id, ci.quantity, ci.created_at,
       p.id AS product_id, p.name AS product_name, p.image_url AS product_image_url, p.price_usd AS product_price_usd
FROM cart_items ci
         JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.id
`

type ListCartItemsRow struct {
	ID              int64
	UserID          int64
	Quantity        int32
	CreatedAt       time.Time
	ProductID       int64
	ProductName     string
	ProductImageUrl string
	ProductPriceUsd decimal.Decimal
}

func (q *Queries) ListCartItems(ctx context.Context, userID int64) ([]ListCartItemsRow, error) {
	rows, err := q.db.Query(ctx, listCartItems, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCartItemsRow
	for rows.Next() {
		var i ListCartItemsRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Quantity,
			&i.CreatedAt,
			&i.ProductID,
			&i.ProductName,
			&i.ProductImageUrl,
			&i.ProductPriceUsd,
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

const listCartItemsForUpdate = `-- name: ListCartItemsForUpdate :many
SELECT ci.id, ci.user_id, ci.quantity, ci.created_at,
       p.id AS product_id, p.name AS product_name, p.image_url AS product_image_url, p.price_usd AS product_price_usd
FROM cart_items ci
         JOIN products p ON p.id = ci.product_id
WHERE ci.user_id = $1
ORDER BY ci.id
FOR UPDATE OF ci
`

type ListCartItemsForUpdateRow struct {
	ID              int64
	UserID          int64
	Quantity        int32
	CreatedAt       time.Time
	ProductID       int64
	ProductName     string
	ProductImageUrl string
	ProductPriceUsd decimal.Decimal
}

func (q *Queries) ListCartItemsForUpdate(ctx context.Context, userID int64) ([]ListCartItemsForUpdateRow, error) {
	rows, err := q.db.Query(ctx, listCartItemsForUpdate, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []ListCartItemsForUpdateRow
	for rows.Next() {
		var i ListCartItemsForUpdateRow
		if err := rows.Scan(
			&i.ID,
			&i.UserID,
			&i.Quantity,
			&i.CreatedAt,
			&i.ProductID,
			&i.ProductName,
			&i.ProductImageUrl,
			&i.ProductPriceUsd,
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

const updateCartItemQuantity = `-- name: UpdateCartItemQuantity :execrows
UPDATE cart_items
SET quantity = $3
WHERE id = $1
  AND user_id = $2
`

type UpdateCartItemQuantityParams struct {
	ID       int64
	UserID   int64
	Quantity int32
}

func (q *Queries) UpdateCartItemQuantity(ctx context.Context, arg UpdateCartItemQuantityParams) (int64, error) {
	result, err := q.db.Exec(ctx, updateCartItemQuantity, arg.ID, arg.UserID, arg.Quantity)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}
