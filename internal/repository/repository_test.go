package repository_test

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

func startPostgres(ctx context.Context) (*postgres.PostgresContainer, string, error) {
	postgresContainer, err := postgres.Run(ctx, "postgres:17.6-alpine3.22",
		postgres.BasicWaitStrategies(),
		postgres.WithInitScripts(
			"../migrations/000001_schema.up.sql",
			"../migrations/000002_products.up.sql",
			"../migrations/000003_exchange_rate_scale.up.sql"),
	)
	if err != nil {
		return nil, "", fmt.Errorf("postgres.Run: %w", err)
	}

	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("pc.ConnectionString: %w", err)
	}

	return postgresContainer, connStr, nil
}

// postgresSuite owns one container per test suite.
type postgresSuite struct {
	suite.Suite

	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
}

// before all tests in the suite
func (s *postgresSuite) SetupSuite() {
	ctx := s.T().Context()

	var (
		connStr string
		err     error
	)

	s.container, connStr, err = startPostgres(ctx)
	s.Require().NoError(err)

	s.pool, err = pgxpool.New(ctx, connStr)
	s.Require().NoError(err)
}

// after all tests in the suite
func (s *postgresSuite) TearDownSuite() {
	if s.pool != nil {
		s.pool.Close()
	}
	if s.container != nil {
		s.NoError(testcontainers.TerminateContainer(s.container))
	}
}

func (s *postgresSuite) deleteAll() {
	_, err := s.pool.Exec(s.T().Context(), "TRUNCATE TABLE order_items, orders, cart_items, users CASCADE")
	s.NoError(err)
}

func (s *postgresSuite) createUser() int64 {
	var id int64
	err := s.pool.QueryRow(s.T().Context(),
		"INSERT INTO users (email, password_hash) VALUES ($1, $2) RETURNING id",
		gofakeit.Email(), gofakeit.Password(true, true, true, false, false, 16),
	).Scan(&id)
	s.Require().NoError(err)

	return id
}

func (s *postgresSuite) createProduct(price decimal.Decimal) int64 {
	var id int64
	err := s.pool.QueryRow(s.T().Context(),
		"INSERT INTO products (name, image_url, price_usd) VALUES ($1, $2, $3) RETURNING id",
		gofakeit.ProductName(), gofakeit.URL(), price,
	).Scan(&id)
	s.Require().NoError(err)

	return id
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(1, 100)).Round(2)
}
