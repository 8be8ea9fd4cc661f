package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

type Order struct {
	ID           int64
	UserID       int64
	ExchangeRate decimal.Decimal // USD -> KRW, fixed at creation
	Items        []OrderItem

	CreatedAt time.Time
}

// OrderItem is a copy of the product at order time, so later catalog edits
// never change a placed order.
type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductName     string
	ProductImageURL string
	ProductPrice    Money
	Quantity        Quantity
}

// NewOrder snapshots every cart line at rate.
func NewOrder(cart *CartItems, rate decimal.Decimal, now time.Time) (Order, error) {
	if cart.IsEmpty() {
		return Order{}, ErrEmptyCart
	}
	if !rate.IsPositive() {
		return Order{}, fmt.Errorf("rate[%s] is not positive", rate)
	}

	items := make([]OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, OrderItem{
			ProductName:     line.Product.Name,
			ProductImageURL: line.Product.ImageURL,
			ProductPrice:    line.Product.Price,
			Quantity:        line.Quantity,
		})
	}

	return Order{
		UserID:       cart.OwnerID,
		ExchangeRate: rate,
		Items:        items,
		CreatedAt:    now,
	}, nil
}

func (o Order) ValidateOwner(userID int64) error {
	if o.UserID != userID {
		return fmt.Errorf("order[%d]: %w", o.ID, ErrOrderOwnership)
	}

	return nil
}

func (o Order) TotalUSD() (Money, error) {
	total := USD(decimal.Zero)

	for _, item := range o.Items {
		var err error
		total, err = total.Add(item.ProductPrice.Mul(item.Quantity))
		if err != nil {
			return Money{}, fmt.Errorf("order item[%d]: %w", item.ID, err)
		}
	}

	return total, nil
}

func (o Order) TotalKRW() (Money, error) {
	usd, err := o.TotalUSD()
	if err != nil {
		return Money{}, err
	}

	return usd.Convert(o.ExchangeRate, currency.KRW)
}
