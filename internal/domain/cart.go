package domain

import (
	"fmt"
	"time"
)

type CartItem struct {
	ID       int64
	UserID   int64
	Product  Product
	Quantity Quantity

	CreatedAt time.Time
}

func NewCartItem(userID int64, product Product) CartItem {
	return CartItem{
		UserID:   userID,
		Product:  product,
		Quantity: QuantityOne,
	}
}

func (c CartItem) sameLine(other CartItem) bool {
	return c.UserID == other.UserID && c.Product.ID == other.Product.ID
}

// CartItems is the in-memory cart of a single user. It is never persisted
// as a whole; repositories persist individual lines.
type CartItems struct {
	OwnerID int64
	Items   []CartItem
}

func NewCartItems(ownerID int64, items []CartItem) (*CartItems, error) {
	for _, item := range items {
		if item.UserID != ownerID {
			return nil, fmt.Errorf("cart item[%d] of user[%d] in cart of user[%d]: %w",
				item.ID, item.UserID, ownerID, ErrCartItemOwnership)
		}
	}

	return &CartItems{OwnerID: ownerID, Items: items}, nil
}

// Add merges item into an existing line of the same product or appends it.
// It returns the resulting line and whether that line is new.
func (c *CartItems) Add(item CartItem) (CartItem, bool, error) {
	if item.UserID != c.OwnerID {
		return CartItem{}, false, ErrCartItemOwnership
	}

	for i := range c.Items {
		if !c.Items[i].sameLine(item) {
			continue
		}

		quantity, err := c.Items[i].Quantity.Add(item.Quantity)
		if err != nil {
			return CartItem{}, false, fmt.Errorf("product[%d]: %w", item.Product.ID, err)
		}
		c.Items[i].Quantity = quantity

		return c.Items[i], false, nil
	}

	c.Items = append(c.Items, item)

	return item, true, nil
}

func (c *CartItems) Contains(item CartItem) bool {
	for _, existing := range c.Items {
		if existing.sameLine(item) {
			return true
		}
	}

	return false
}

func (c *CartItems) ValidateContains(item CartItem) error {
	if !c.Contains(item) {
		return fmt.Errorf("cart item[%d]: %w", item.ID, ErrCartItemOwnership)
	}

	return nil
}

func (c *CartItems) IsEmpty() bool {
	return len(c.Items) == 0
}
