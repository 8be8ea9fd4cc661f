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

type cartRepository struct {
	q    *db.Queries
	pool *pgxpool.Pool
}

func NewCart(pool *pgxpool.Pool) port.CartItemRepository {
	return &cartRepository{
		q:    db.New(pool),
		pool: pool,
	}
}

func NewCartWithTx(tx pgx.Tx) port.CartItemRepository {
	return &cartRepository{
		q:    db.New(tx),
		pool: nil, // use provided transaction instead
	}
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("userID[%d] is not valid", userID)
	}

	rows, err := r.q.ListCartItems(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCartItems: %w", err)
	}

	items, err := mapCartItemRowsToDomain(rows)
	if err != nil {
		return nil, fmt.Errorf("mapCartItemRowsToDomain: %w", err)
	}

	return items, nil
}

func (r *cartRepository) ListByUserForUpdate(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("userID[%d] is not valid", userID)
	}

	rows, err := r.q.ListCartItemsForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("q.ListCartItemsForUpdate: %w", err)
	}

	converted := make([]db.ListCartItemsRow, 0, len(rows))
	for _, row := range rows {
		converted = append(converted, db.ListCartItemsRow(row))
	}

	items, err := mapCartItemRowsToDomain(converted)
	if err != nil {
		return nil, fmt.Errorf("mapCartItemRowsToDomain: %w", err)
	}

	return items, nil
}

func (r *cartRepository) Get(ctx context.Context, id int64) (domain.CartItem, error) {
	row, err := r.q.GetCartItem(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.CartItem{}, fmt.Errorf("cart item[%d]: %w", id, domain.ErrCartItemNotFound)
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.GetCartItem: %w", err)
	}

	item, err := mapCartItemRowToDomain(db.ListCartItemsRow(row))
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("mapCartItemRowToDomain: %w", err)
	}

	return item, nil
}

func (r *cartRepository) Add(ctx context.Context, item domain.CartItem) (domain.CartItem, error) {
	if item.UserID <= 0 {
		return domain.CartItem{}, fmt.Errorf("userID[%d] is not valid", item.UserID)
	}

	row, err := r.q.AddCartItem(ctx, db.AddCartItemParams{
		UserID:    item.UserID,
		ProductID: item.Product.ID,
		Quantity:  int32(item.Quantity),
	})
	if isUniqueViolation(err, cartItemsUserProductKey) {
		return domain.CartItem{}, fmt.Errorf("product[%d]: %w", item.Product.ID, domain.ErrCartItemConflict)
	}
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("q.AddCartItem: %w", err)
	}

	item.ID = row.ID
	item.CreatedAt = row.CreatedAt

	return item, nil
}

func (r *cartRepository) UpdateQuantity(ctx context.Context, userID, id int64, quantity domain.Quantity) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("userID[%d] is not valid", userID)
	}

	rowsAffected, err := r.q.UpdateCartItemQuantity(ctx, db.UpdateCartItemQuantityParams{
		ID:       id,
		UserID:   userID,
		Quantity: int32(quantity),
	})
	if err != nil {
		return false, fmt.Errorf("q.UpdateCartItemQuantity: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) Delete(ctx context.Context, userID, id int64) (bool, error) {
	if userID <= 0 {
		return false, fmt.Errorf("userID[%d] is not valid", userID)
	}

	rowsAffected, err := r.q.DeleteCartItem(ctx, db.DeleteCartItemParams{
		ID:     id,
		UserID: userID,
	})
	if err != nil {
		return false, fmt.Errorf("q.DeleteCartItem: %w", err)
	}

	return rowsAffected > 0, nil
}

func (r *cartRepository) DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error) {
	if userID <= 0 {
		return 0, fmt.Errorf("userID[%d] is not valid", userID)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	rowsAffected, err := r.q.DeleteCartItemsByIDs(ctx, db.DeleteCartItemsByIDsParams{
		UserID: userID,
		Ids:    ids,
	})
	if err != nil {
		return 0, fmt.Errorf("q.DeleteCartItemsByIDs: %w", err)
	}

	return rowsAffected, nil
}

func mapCartItemRowToDomain(row db.ListCartItemsRow) (domain.CartItem, error) {
	quantity, err := domain.NewQuantity(int(row.Quantity))
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("cart item[%d]: %w", row.ID, err)
	}

	price, err := domain.NewMoney(row.ProductPriceUsd, usd)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("product[%d]: %w", row.ProductID, err)
	}

	return domain.CartItem{
		ID:     row.ID,
		UserID: row.UserID,
		Product: domain.Product{
			ID:       row.ProductID,
			Name:     row.ProductName,
			ImageURL: row.ProductImageUrl,
			Price:    price,
		},
		Quantity:  quantity,
		CreatedAt: row.CreatedAt,
	}, nil
}

func mapCartItemRowsToDomain(rows []db.ListCartItemsRow) ([]domain.CartItem, error) {
	items := make([]domain.CartItem, 0, len(rows))

	for _, row := range rows {
		item, err := mapCartItemRowToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapCartItemRowToDomain: %w", err)
		}

		items = append(items, item)
	}

	return items, nil
}
