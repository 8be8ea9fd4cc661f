package db

import (
	"time"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID        int64
	UserID    int64
	ProductID int64
	Quantity  int32
	CreatedAt time.Time
}

type Order struct {
	ID           int64
	UserID       int64
	CreatedAt    time.Time
	ExchangeRate decimal.Decimal
}

type OrderItem struct {
	ID              int64
	OrderID         int64
	ProductName     string
	ProductImageUrl string
	ProductPriceUsd decimal.Decimal
	Quantity        int32
}

type Product struct {
	ID       int64
	Name     string
	ImageUrl string
	PriceUsd decimal.Decimal
}

type User struct {
	ID           int64
	Email        string
	PasswordHash string
}
