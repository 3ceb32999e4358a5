// Package foodgramapi is an HTTP client for the Foodgram REST API.
//
// Every call passes through a token bucket rate limiter, a retry loop with
// exponential backoff and a circuit breaker, and is traced and measured.
package foodgramapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"

	"foodgram-client/internal/common/pagination"
	"foodgram-client/internal/domain/entity"
	"foodgram-client/internal/observability/logging"
	"foodgram-client/internal/observability/metrics"
	"foodgram-client/internal/observability/requestid"
	"foodgram-client/internal/observability/tracing"
	"foodgram-client/internal/resilience/circuitbreaker"
	"foodgram-client/internal/resilience/retry"
)

// maxBodySize caps how much of a response body is read.
const maxBodySize = 1 << 20

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. "http://localhost:8000/api".
	BaseURL string
	// Token is the DRF auth token. Empty means anonymous.
	Token string
	// Timeout bounds a single HTTP request.
	Timeout time.Duration
	// RateLimit is requests per second; <= 0 disables limiting.
	RateLimit float64
	// RateBurst is the token bucket size.
	RateBurst int
	// ListRetry applies to recipe page fetches.
	ListRetry retry.Config
	// ActionRetry applies to favorite, shopping cart and short link calls.
	ActionRetry retry.Config
	// Breaker configures the circuit breaker around the transport.
	Breaker circuitbreaker.Config
	// Pagination bounds the accepted page parameters.
	Pagination pagination.Config
	// Transport is the base transport; nil means http.DefaultTransport.
	Transport http.RoundTripper
	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns a Config for baseURL with production defaults.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:     baseURL,
		Timeout:     10 * time.Second,
		RateLimit:   5,
		RateBurst:   10,
		ListRetry:   retry.RecipeListConfig(),
		ActionRetry: retry.ActionConfig(),
		Breaker:     circuitbreaker.FoodgramAPIConfig(),
		Pagination:  pagination.DefaultConfig(),
	}
}

// Client talks to the Foodgram API. It is safe for concurrent use.
type Client struct {
	baseURL     *url.URL
	token       string
	httpClient  *http.Client
	limiter     *RateLimiter
	breaker     *circuitbreaker.CircuitBreaker
	listRetry   retry.Config
	actionRetry retry.Config
	pageCfg     pagination.Config
	pages       singleflight.Group
	flights     flights
	logger      *slog.Logger
}

// New creates a Client from cfg.
func New(cfg Config) (*Client, error) {
	if err := entity.ValidateBaseURL(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("foodgram api base url: %w", err)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Pagination.MaxLimit == 0 {
		cfg.Pagination = pagination.DefaultConfig()
	}
	cfg.Pagination = cfg.Pagination.Normalized()

	breakerCfg := cfg.Breaker
	if breakerCfg.Name == "" {
		breakerCfg = circuitbreaker.FoodgramAPIConfig()
	}
	breaker := circuitbreaker.New(breakerCfg)

	return &Client{
		baseURL: base,
		token:   cfg.Token,
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: tracing.NewTransport(circuitbreaker.NewTransport(cfg.Transport, breaker)),
		},
		limiter:     NewRateLimiter(cfg.RateLimit, cfg.RateBurst),
		breaker:     breaker,
		listRetry:   withDefaultAttempts(cfg.ListRetry, retry.RecipeListConfig()),
		actionRetry: withDefaultAttempts(cfg.ActionRetry, retry.ActionConfig()),
		pageCfg:     cfg.Pagination,
		logger:      logger,
	}, nil
}

func withDefaultAttempts(cfg, def retry.Config) retry.Config {
	if cfg.MaxAttempts <= 0 {
		return def
	}
	return cfg
}

// CircuitBreaker exposes the breaker for health reporting.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// call runs fn under the retry policy cfg, counting retries for operation.
func (c *Client) call(ctx context.Context, operation string, cfg retry.Config, fn func() error) error {
	cfg.OnRetry = func(attempt int, err error, delay time.Duration) {
		metrics.RecordRetry(operation)
	}
	return retry.WithBackoff(ctx, cfg, fn)
}

// do performs one HTTP request and decodes a JSON response into out.
// out may be nil when the response body is not needed.
func (c *Client) do(ctx context.Context, operation, method, path string, query url.Values, out any) error {
	waited, err := c.limiter.Wait(ctx)
	metrics.RecordRateLimitWait(waited)
	if err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	ctx, reqID := requestid.Ensure(ctx)
	logger := logging.WithRequestID(ctx, c.logger).With(slog.String("operation", operation))

	endpoint := c.baseURL.ResolveReference(&url.URL{Path: path})
	if len(query) > 0 {
		endpoint.RawQuery = query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestid.RequestIDHeader, reqID)
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(start)
	if err != nil {
		metrics.RecordAPIRequest(operation, 0, duration)
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			metrics.RecordCircuitOpen(c.breaker.Name())
			return fmt.Errorf("%s: %w", operation, ErrCircuitOpen)
		}
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	metrics.RecordAPIRequest(operation, resp.StatusCode, duration)

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%s: read body: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := errorFromResponse(resp, body)
		logger.Warn("foodgram api request failed",
			slog.Int("status", resp.StatusCode),
			slog.Any("error", apiErr))
		return apiErr
	}

	logger.Debug("foodgram api request completed",
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", duration))

	if out == nil || resp.StatusCode == http.StatusNoContent || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
