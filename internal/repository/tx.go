package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopping/internal/db"
	"github.com/nikolayk812/shopping/internal/port"
)

func withTx[T any](ctx context.Context, pool *pgxpool.Pool, q *db.Queries, fn func(q *db.Queries) (T, error)) (T, error) {
	// If we're already in a transaction (pool is nil), just use the existing queries
	if pool == nil {
		return fn(q)
	}

	return inTx(ctx, pool, pgx.TxOptions{}, func(tx pgx.Tx) (T, error) {
		return fn(db.New(tx))
	})
}

func inTx[T any](ctx context.Context, pool *pgxpool.Pool, opts pgx.TxOptions, fn func(tx pgx.Tx) (T, error)) (_ T, txErr error) {
	var zero T

	tx, err := pool.BeginTx(ctx, opts)
	if err != nil {
		return zero, fmt.Errorf("pool.BeginTx: %w", err)
	}

	// Ensure proper rollback handling
	defer func() {
		if txErr != nil {
			rollbackErr := tx.Rollback(ctx)
			if rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
				txErr = errors.Join(txErr, fmt.Errorf("tx.Rollback: %w", rollbackErr))
			}
		}
	}()

	result, err := fn(tx)
	if err != nil {
		return zero, err
	}

	if err := tx.Commit(ctx); err != nil {
		return zero, fmt.Errorf("tx.Commit: %w", err)
	}

	return result, nil
}

type transactor struct {
	pool *pgxpool.Pool
}

func NewTransactor(pool *pgxpool.Pool) port.Transactor {
	return &transactor{pool: pool}
}

func (t *transactor) ReadWrite(ctx context.Context, fn func(r port.Repositories) error) error {
	return t.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadWrite}, fn)
}

func (t *transactor) ReadOnly(ctx context.Context, fn func(r port.Repositories) error) error {
	return t.run(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted, AccessMode: pgx.ReadOnly}, fn)
}

func (t *transactor) run(ctx context.Context, opts pgx.TxOptions, fn func(r port.Repositories) error) error {
	_, err := inTx(ctx, t.pool, opts, func(tx pgx.Tx) (struct{}, error) {
		return struct{}{}, fn(RepositoriesWithTx(tx))
	})

	return err
}

// RepositoriesWithTx binds every repository to tx.
func RepositoriesWithTx(tx pgx.Tx) port.Repositories {
	return port.Repositories{
		Users:     NewUserWithTx(tx),
		Products:  NewProductWithTx(tx),
		CartItems: NewCartWithTx(tx),
		Orders:    NewOrderWithTx(tx),
	}
}
