package exchangerate

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/nikolayk812/shopping/internal/domain"
	"github.com/nikolayk812/shopping/internal/metrics"
	"github.com/shopspring/decimal"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "http://apilayer.net"
	DefaultTimeout = 5 * time.Second

	livePath = "/api/live"
	quoteKey = "quotes.USDKRW"

	// upstream bodies are tiny; anything larger is not a quote
	maxBodyBytes = 64 << 10
)

// Client queries a currencylayer-compatible "live" endpoint for the USD to KRW rate.
type Client struct {
	baseURL    string
	accessKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, accessKey string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL:    baseURL,
		accessKey:  accessKey,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// CurrentUSDToKRW returns how many KRW one USD buys right now.
// Every failure is reported as domain.ErrExchangeRateUnavailable.
func (c *Client) CurrentUSDToKRW(ctx context.Context) (decimal.Decimal, error) {
	start := time.Now()

	rate, err := c.fetch(ctx)
	if err != nil {
		metrics.RecordExchangeRateFetch(metrics.OutcomeError, time.Since(start))
		c.logger.Warn("exchange rate fetch failed", zap.Error(err))
		return decimal.Zero, fmt.Errorf("%w: %w", domain.ErrExchangeRateUnavailable, err)
	}

	metrics.RecordExchangeRateFetch(metrics.OutcomeSuccess, time.Since(start))
	c.logger.Debug("exchange rate fetched", zap.String("usd_krw", rate.String()))

	return rate, nil
}

func (c *Client) fetch(ctx context.Context) (decimal.Decimal, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.liveURL(), nil)
	if err != nil {
		return decimal.Zero, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return decimal.Zero, fmt.Errorf("httpClient.Do: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decimal.Zero, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return decimal.Zero, fmt.Errorf("io.ReadAll: %w", err)
	}

	return parseQuote(body)
}

func (c *Client) liveURL() string {
	query := url.Values{}
	query.Set("access_key", c.accessKey)
	query.Set("currencies", "KRW")
	query.Set("source", "USD")
	query.Set("format", "1")

	return c.baseURL + livePath + "?" + query.Encode()
}

func parseQuote(body []byte) (decimal.Decimal, error) {
	if !gjson.ValidBytes(body) {
		return decimal.Zero, fmt.Errorf("response is not valid JSON")
	}

	// only the JSON literal true counts, not "true" or 1
	if gjson.GetBytes(body, "success").Type != gjson.True {
		info := gjson.GetBytes(body, "error.info").String()
		return decimal.Zero, fmt.Errorf("upstream reported failure: %q", info)
	}

	quote := gjson.GetBytes(body, quoteKey)
	if quote.Type != gjson.Number {
		return decimal.Zero, fmt.Errorf("%s is missing or not a number", quoteKey)
	}

	// Raw keeps every digit the upstream sent, float64 would not.
	rate, err := decimal.NewFromString(quote.Raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("decimal.NewFromString[%s]: %w", quote.Raw, err)
	}
	if !rate.IsPositive() {
		return decimal.Zero, fmt.Errorf("rate[%s] is not positive", rate)
	}

	return rate, nil
}
