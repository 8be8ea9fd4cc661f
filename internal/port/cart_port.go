package port

import (
	"context"

	"github.com/nikolayk812/shopping/internal/domain"
)

type CartItemRepository interface {
	// ListByUser returns the user's cart ordered by cart item id.
	ListByUser(ctx context.Context, userID int64) ([]domain.CartItem, error)
	// ListByUserForUpdate is ListByUser that also row-locks the lines until the transaction ends.
	ListByUserForUpdate(ctx context.Context, userID int64) ([]domain.CartItem, error)
	Get(ctx context.Context, id int64) (domain.CartItem, error)
	Add(ctx context.Context, item domain.CartItem) (domain.CartItem, error)
	UpdateQuantity(ctx context.Context, userID, id int64, quantity domain.Quantity) (bool, error)
	Delete(ctx context.Context, userID, id int64) (bool, error)
	// DeleteByIDs removes only the listed lines of the user's cart.
	DeleteByIDs(ctx context.Context, userID int64, ids []int64) (int64, error)
}
