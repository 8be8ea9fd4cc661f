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
	"golang.org/x/text/currency"
)

// Product prices are stored in USD only.
var usd = currency.USD

type productRepository struct {
	q *db.Queries
}

func NewProduct(pool *pgxpool.Pool) port.ProductRepository {
	return &productRepository{q: db.New(pool)}
}

func NewProductWithTx(tx pgx.Tx) port.ProductRepository {
	return &productRepository{q: db.New(tx)}
}

func (r *productRepository) Get(ctx context.Context, id int64) (domain.Product, error) {
	row, err := r.q.GetProduct(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", id, domain.ErrProductNotFound)
	}
	if err != nil {
		return domain.Product{}, fmt.Errorf("q.GetProduct: %w", err)
	}

	return mapProductToDomain(row)
}

func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.q.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("q.ListProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(rows))
	for _, row := range rows {
		p, err := mapProductToDomain(row)
		if err != nil {
			return nil, fmt.Errorf("mapProductToDomain: %w", err)
		}
		products = append(products, p)
	}

	return products, nil
}

func mapProductToDomain(row db.Product) (domain.Product, error) {
	price, err := domain.NewMoney(row.PriceUsd, usd)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product[%d]: %w", row.ID, err)
	}

	return domain.Product{
		ID:       row.ID,
		Name:     row.Name,
		ImageURL: row.ImageUrl,
		Price:    price,
	}, nil
}
