package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nikolayk812/shopping/internal/api"
	"github.com/nikolayk812/shopping/internal/auth"
	"github.com/nikolayk812/shopping/internal/config"
	"github.com/nikolayk812/shopping/internal/exchangerate"
	"github.com/nikolayk812/shopping/internal/migrations"
	"github.com/nikolayk812/shopping/internal/repository"
	"github.com/nikolayk812/shopping/internal/service"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

// NewHandler wires repositories, services and the HTTP router on top of pool.
func NewHandler(pool *pgxpool.Pool, cfg config.Config, logger *zap.Logger) (http.Handler, error) {
	tokens, err := auth.NewTokens(cfg.Auth.TokenSecret, cfg.Auth.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("auth.NewTokens: %w", err)
	}

	rates := exchangerate.NewCached(
		exchangerate.NewClient(cfg.ExchangeRate.EndpointBaseURL, cfg.ExchangeRate.AccessKey, cfg.ExchangeRate.Timeout(), logger),
		cfg.ExchangeRate.CacheTTL(),
	)

	tx := repository.NewTransactor(pool)

	handler := api.NewHandler(
		service.NewCartService(tx, logger),
		service.NewOrderService(tx, rates, logger),
		service.NewUserService(tx, tokens, logger),
		service.NewCatalogService(tx),
		logger,
	)

	return api.NewRouter(handler, tokens, pool.Ping, logger), nil
}

// Run migrates the database and serves HTTP until ctx is done.
func Run(ctx context.Context, cfg config.Config, logger *zap.Logger) error {
	connString, err := cfg.DB.ConnString()
	if err != nil {
		return fmt.Errorf("cfg.DB.ConnString: %w", err)
	}

	if err := migrations.Up(connString); err != nil {
		return fmt.Errorf("migrations.Up: %w", err)
	}
	logger.Info("migrations applied")

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return fmt.Errorf("pgxpool.New: %w", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("pool.Ping: %w", err)
	}

	handler, err := NewHandler(pool, cfg, logger)
	if err != nil {
		return fmt.Errorf("NewHandler: %w", err)
	}

	server := &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(cfg.HTTPPort)),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server starting", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server.ListenAndServe: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("http server shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server.Shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
