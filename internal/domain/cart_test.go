package domain_test

import (
	"testing"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int64, price int64) domain.Product {
	return domain.Product{
		ID:       id,
		Name:     "product",
		ImageURL: "https://example.com/p.png",
		Price:    domain.USD(decimal.NewFromInt(price)),
	}
}

func TestCartItems_Add(t *testing.T) {
	cart, err := domain.NewCartItems(1, nil)
	require.NoError(t, err)

	line, isNew, err := cart.Add(domain.NewCartItem(1, product(1, 10)))
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, domain.QuantityOne, line.Quantity)

	line, isNew, err = cart.Add(domain.NewCartItem(1, product(1, 10)))
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, domain.Quantity(2), line.Quantity)

	line, isNew, err = cart.Add(domain.NewCartItem(1, product(1, 10)))
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, domain.Quantity(3), line.Quantity)

	_, isNew, err = cart.Add(domain.NewCartItem(1, product(2, 5)))
	require.NoError(t, err)
	assert.True(t, isNew)

	require.Len(t, cart.Items, 2)
	assert.Equal(t, domain.Quantity(3), cart.Items[0].Quantity)
	assert.Equal(t, domain.QuantityOne, cart.Items[1].Quantity)
}

func TestCartItems_AddForeignUser(t *testing.T) {
	cart, err := domain.NewCartItems(1, nil)
	require.NoError(t, err)

	_, _, err = cart.Add(domain.NewCartItem(2, product(1, 10)))
	require.ErrorIs(t, err, domain.ErrCartItemOwnership)
	assert.True(t, cart.IsEmpty())
}

func TestCartItems_AddBeyondMax(t *testing.T) {
	item := domain.NewCartItem(1, product(1, 10))
	item.Quantity = domain.MaxQuantity

	cart, err := domain.NewCartItems(1, []domain.CartItem{item})
	require.NoError(t, err)

	_, _, err = cart.Add(domain.NewCartItem(1, product(1, 10)))
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.Equal(t, domain.Quantity(domain.MaxQuantity), cart.Items[0].Quantity)
}

func TestNewCartItems_ForeignLine(t *testing.T) {
	_, err := domain.NewCartItems(1, []domain.CartItem{domain.NewCartItem(2, product(1, 10))})
	require.ErrorIs(t, err, domain.ErrCartItemOwnership)
}

func TestCartItems_ValidateContains(t *testing.T) {
	own := domain.NewCartItem(1, product(1, 10))
	own.ID = 7

	cart, err := domain.NewCartItems(1, []domain.CartItem{own})
	require.NoError(t, err)

	tests := []struct {
		name    string
		item    domain.CartItem
		wantErr error
	}{
		{name: "own line: ok", item: own},
		{
			name:    "same product, other user: ownership",
			item:    domain.CartItem{ID: 7, UserID: 2, Product: product(1, 10), Quantity: 1},
			wantErr: domain.ErrCartItemOwnership,
		},
		{
			name:    "other product: ownership",
			item:    domain.CartItem{ID: 8, UserID: 1, Product: product(3, 10), Quantity: 1},
			wantErr: domain.ErrCartItemOwnership,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := cart.ValidateContains(tt.item)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.False(t, cart.Contains(tt.item))
				return
			}
			require.NoError(t, err)
			assert.True(t, cart.Contains(tt.item))
		})
	}
}
