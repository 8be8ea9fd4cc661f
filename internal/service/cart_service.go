package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/port"
	"go.uber.org/zap"
)

// maxAddAttempts bounds retries of AddProduct after a concurrent insert of the same line.
const maxAddAttempts = 3

type CartService struct {
	tx     port.Transactor
	logger *zap.Logger
}

func NewCartService(tx port.Transactor, logger *zap.Logger) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &CartService{tx: tx, logger: logger}
}

// AddProduct puts one unit of the product into the user's cart, merging with an existing line.
func (s *CartService) AddProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	for attempt := 1; ; attempt++ {
		item, err := s.addProduct(ctx, userID, productID)
		if errors.Is(err, domain.ErrCartItemConflict) && attempt < maxAddAttempts {
			s.logger.Debug("cart item conflict, retrying",
				zap.Int64("user_id", userID), zap.Int64("product_id", productID), zap.Int("attempt", attempt))
			continue
		}
		if err != nil {
			return domain.CartItem{}, err
		}

		return item, nil
	}
}

func (s *CartService) addProduct(ctx context.Context, userID, productID int64) (domain.CartItem, error) {
	var result domain.CartItem

	err := s.tx.ReadWrite(ctx, func(r port.Repositories) error {
		if _, err := r.Users.Get(ctx, userID); err != nil {
			return fmt.Errorf("Users.Get: %w", err)
		}

		product, err := r.Products.Get(ctx, productID)
		if err != nil {
			return fmt.Errorf("Products.Get: %w", err)
		}

		cart, err := loadCart(ctx, r, userID)
		if err != nil {
			return err
		}

		line, isNew, err := cart.Add(domain.NewCartItem(userID, product))
		if err != nil {
			return fmt.Errorf("cart.Add: %w", err)
		}

		if isNew {
			result, err = r.CartItems.Add(ctx, line)
			if err != nil {
				return fmt.Errorf("CartItems.Add: %w", err)
			}
			return nil
		}

		updated, err := r.CartItems.UpdateQuantity(ctx, userID, line.ID, line.Quantity)
		if err != nil {
			return fmt.Errorf("CartItems.UpdateQuantity: %w", err)
		}
		if !updated {
			// deleted between read and write
			return fmt.Errorf("cart item[%d]: %w", line.ID, domain.ErrCartItemConflict)
		}
		result = line

		return nil
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("tx.ReadWrite: %w", err)
	}

	return result, nil
}

// ListAll returns the user's cart ordered by cart item id.
func (s *CartService) ListAll(ctx context.Context, userID int64) ([]domain.CartItem, error) {
	var items []domain.CartItem

	err := s.tx.ReadOnly(ctx, func(r port.Repositories) error {
		var err error
		items, err = r.CartItems.ListByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("CartItems.ListByUser: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("tx.ReadOnly: %w", err)
	}

	return items, nil
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID, cartItemID int64, quantity int) (domain.CartItem, error) {
	var result domain.CartItem

	err := s.tx.ReadWrite(ctx, func(r port.Repositories) error {
		item, err := loadOwnedItem(ctx, r, userID, cartItemID)
		if err != nil {
			return err
		}

		q, err := domain.NewQuantity(quantity)
		if err != nil {
			return err
		}

		updated, err := r.CartItems.UpdateQuantity(ctx, userID, item.ID, q)
		if err != nil {
			return fmt.Errorf("CartItems.UpdateQuantity: %w", err)
		}
		if !updated {
			return fmt.Errorf("cart item[%d]: %w", cartItemID, domain.ErrCartItemNotFound)
		}

		item.Quantity = q
		result = item

		return nil
	})
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("tx.ReadWrite: %w", err)
	}

	return result, nil
}

func (s *CartService) Delete(ctx context.Context, userID, cartItemID int64) error {
	err := s.tx.ReadWrite(ctx, func(r port.Repositories) error {
		item, err := loadOwnedItem(ctx, r, userID, cartItemID)
		if err != nil {
			return err
		}

		deleted, err := r.CartItems.Delete(ctx, userID, item.ID)
		if err != nil {
			return fmt.Errorf("CartItems.Delete: %w", err)
		}
		if !deleted {
			return fmt.Errorf("cart item[%d]: %w", cartItemID, domain.ErrCartItemNotFound)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("tx.ReadWrite: %w", err)
	}

	return nil
}

// loadCart locks the user's lines, so concurrent writers of the same cart apply one after another.
func loadCart(ctx context.Context, r port.Repositories, userID int64) (*domain.CartItems, error) {
	lines, err := r.CartItems.ListByUserForUpdate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("CartItems.ListByUserForUpdate: %w", err)
	}

	cart, err := domain.NewCartItems(userID, lines)
	if err != nil {
		return nil, fmt.Errorf("domain.NewCartItems: %w", err)
	}

	return cart, nil
}

// loadOwnedItem fails with ErrCartItemNotFound for unknown ids and
// ErrCartItemOwnership for lines outside the user's cart.
func loadOwnedItem(ctx context.Context, r port.Repositories, userID, cartItemID int64) (domain.CartItem, error) {
	cart, err := loadCart(ctx, r, userID)
	if err != nil {
		return domain.CartItem{}, err
	}

	item, err := r.CartItems.Get(ctx, cartItemID)
	if err != nil {
		return domain.CartItem{}, fmt.Errorf("CartItems.Get: %w", err)
	}

	if err := cart.ValidateContains(item); err != nil {
		return domain.CartItem{}, err
	}

	return item, nil
}
