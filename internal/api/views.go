package api

import (
	"encoding/json"
	"time"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/shopspring/decimal"
)

type ProductView struct {
	ID       int64       `json:"id"`
	Name     string      `json:"name"`
	ImageURL string      `json:"imageUrl"`
	PriceUSD json.Number `json:"priceUsd"`
}

type CartItemView struct {
	ID       int64       `json:"id"`
	Product  ProductView `json:"product"`
	Quantity int         `json:"quantity"`
}

type OrderItemView struct {
	ProductName     string      `json:"productName"`
	ProductImageURL string      `json:"productImageUrl"`
	ProductPriceUSD json.Number `json:"productPriceUsd"`
	Quantity        int         `json:"quantity"`
}

type OrderView struct {
	ID           int64           `json:"id"`
	CreatedAt    time.Time       `json:"createdAt"`
	ExchangeRate json.Number     `json:"exchangeRate"`
	TotalUSD     json.Number     `json:"totalUsd"`
	TotalKRW     json.Number     `json:"totalKrw"`
	Items        []OrderItemView `json:"items"`
}

type tokenView struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
	ExpiresIn   int64  `json:"expiresIn"`
}

type idView struct {
	ID int64 `json:"id"`
}

// number renders d as a JSON number without going through float64.
func number(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

func toProductView(p domain.Product) ProductView {
	return ProductView{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		PriceUSD: number(p.Price.Amount),
	}
}

func toProductViews(products []domain.Product) []ProductView {
	views := make([]ProductView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}
	return views
}

func toCartItemView(item domain.CartItem) CartItemView {
	return CartItemView{
		ID:       item.ID,
		Product:  toProductView(item.Product),
		Quantity: item.Quantity.Int(),
	}
}

func toCartItemViews(items []domain.CartItem) []CartItemView {
	views := make([]CartItemView, 0, len(items))
	for _, item := range items {
		views = append(views, toCartItemView(item))
	}
	return views
}

func toOrderView(order domain.Order) (OrderView, error) {
	totalUSD, err := order.TotalUSD()
	if err != nil {
		return OrderView{}, err
	}

	totalKRW, err := order.TotalKRW()
	if err != nil {
		return OrderView{}, err
	}

	items := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, OrderItemView{
			ProductName:     item.ProductName,
			ProductImageURL: item.ProductImageURL,
			ProductPriceUSD: number(item.ProductPrice.Amount),
			Quantity:        item.Quantity.Int(),
		})
	}

	return OrderView{
		ID:           order.ID,
		CreatedAt:    order.CreatedAt,
		ExchangeRate: number(order.ExchangeRate),
		TotalUSD:     number(totalUSD.Amount),
		TotalKRW:     number(totalKRW.Amount),
		Items:        items,
	}, nil
}

func toOrderViews(orders []domain.Order) ([]OrderView, error) {
	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		view, err := toOrderView(order)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
