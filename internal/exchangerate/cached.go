package exchangerate

import (
	"context"
	"sync"
	"time"

	"github.com/nikolayk812/shopping/internal/metrics"
	"github.com/nikolayk812/shopping/internal/port"
	"github.com/shopspring/decimal"
)

// Cached reuses the last successful rate while it is younger than ttl.
// Failures are never cached.
type Cached struct {
	next port.ExchangeRateProvider
	ttl  time.Duration
	now  func() time.Time

	mu        sync.Mutex
	rate      decimal.Decimal
	fetchedAt time.Time
}

// NewCached wraps next. A non-positive ttl disables caching and returns next as is.
func NewCached(next port.ExchangeRateProvider, ttl time.Duration) port.ExchangeRateProvider {
	if ttl <= 0 {
		return next
	}

	return &Cached{next: next, ttl: ttl, now: time.Now}
}

func (c *Cached) CurrentUSDToKRW(ctx context.Context) (decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.fetchedAt.IsZero() && c.now().Sub(c.fetchedAt) < c.ttl {
		metrics.RecordExchangeRateFetch(metrics.OutcomeCacheHit, 0)
		return c.rate, nil
	}

	rate, err := c.next.CurrentUSDToKRW(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	c.rate = rate
	c.fetchedAt = c.now()

	return rate, nil
}
