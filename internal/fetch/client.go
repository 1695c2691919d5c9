package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/verte-zerg/jackpot/internal/model"
)

const (
	// DefaultEndpoint serves the latest Eurojackpot draws.
	DefaultEndpoint = "https://eurojackpot-api.svein.dev/latest"
	// DefaultLimit is the number of draws requested.
	DefaultLimit   = 100
	DefaultTimeout = 30 * time.Second

	retrySpacing = 2 * time.Second
	userAgent    = "jackpot/1.0"
)

// Client fetches draws from the endpoint. It never retries on its own;
// the limiter only spaces out retries requested by the user.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	endpoint    string
	limit       int
}

// NewClient creates a client from a resolved fetch config.
func NewClient(cfg model.FetchConfig, logger *zap.Logger) *Client {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Limit <= 0 {
		cfg.Limit = DefaultLimit
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.Timeout},
		rateLimiter: rate.NewLimiter(rate.Every(retrySpacing), 1),
		logger:      logger,
		endpoint:    cfg.Endpoint,
		limit:       cfg.Limit,
	}
}

// Ready reports whether a fetch may start now without exceeding the retry spacing.
func (c *Client) Ready() bool {
	return c.rateLimiter.Tokens() >= 1
}

// Close releases idle connections held by the client.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// FetchDraws performs one request and returns the normalized draws.
func (c *Client) FetchDraws(ctx context.Context) ([]model.Draw, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	reqURL, err := c.requestURL()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	c.logger.Debug("fetching draws", zap.String("url", reqURL))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrUnavailable, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("draw request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: request failed: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("draw response", zap.Int("status", resp.StatusCode))
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: unexpected status: %s", ErrUnavailable, resp.Status)
	}

	var raw []RawDraw
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: failed to decode draws: %w", ErrUnavailable, err)
	}
	draws, err := Normalize(raw)
	if err != nil {
		c.logger.Warn("rejected draw payload", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	c.logger.Info("fetched draws", zap.Int("count", len(draws)))
	return draws, nil
}

func (c *Client) requestURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", c.endpoint, err)
	}
	q := u.Query()
	q.Set("limit", strconv.Itoa(c.limit))
	u.RawQuery = q.Encode()
	return u.String(), nil
}
