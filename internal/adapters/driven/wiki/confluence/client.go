// Package confluence provides the wiki source adapter for Confluence
// Cloud. It speaks the REST API with basic auth and handles pagination
// internally: listings fetch fixed-size pages until a short page signals
// the end, since the API does not reliably report totals.
package confluence

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kognita-labs/kognita-cli/internal/core/domain"
	"github.com/kognita-labs/kognita-cli/internal/core/ports/driven"
)

// Ensure Client implements the interface.
var _ driven.WikiSource = (*Client)(nil)

// Default configuration values.
const (
	// DefaultTimeout is the per-request transport timeout.
	DefaultTimeout = 30 * time.Second

	// PageSize is the fixed page size for listing operations.
	PageSize = 100

	// SearchLimit caps structured search results per request.
	SearchLimit = 20

	apiPrefix = "/wiki/rest/api"
)

// Config holds configuration for the Confluence client.
type Config struct {
	// BaseURL is the site URL, e.g. https://your-domain.atlassian.net (required).
	BaseURL string

	// Email is the account email for basic auth (required).
	Email string

	// APIToken is the API token paired with the email (required).
	APIToken string

	// Timeout is the per-request timeout (default: 30s).
	Timeout time.Duration

	// RateLimit overrides the default request rate limit.
	RateLimit *RateLimitConfig
}

// Client talks to the Confluence Cloud REST API.
type Client struct {
	client      *http.Client
	baseURL     string
	email       string
	apiToken    string
	rateLimiter *RateLimiter
}

// New creates a new Confluence client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("confluence: base URL is required")
	}
	if cfg.Email == "" || cfg.APIToken == "" {
		return nil, fmt.Errorf("confluence: email and API token are required")
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}

	limiter := NewRateLimiter()
	if cfg.RateLimit != nil {
		limiter = NewRateLimiterWithConfig(*cfg.RateLimit)
	}

	return &Client{
		client:      &http.Client{Timeout: cfg.Timeout},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		email:       cfg.Email,
		apiToken:    cfg.APIToken,
		rateLimiter: limiter,
	}, nil
}

// Close releases resources.
func (c *Client) Close() error {
	return nil
}

// get performs a rate-limited GET against the REST API and decodes the
// JSON response into out.
func (c *Client) get(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + apiPrefix + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.SetBasicAuth(c.email, c.apiToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, endpoint)
	case resp.StatusCode == http.StatusTooManyRequests:
		c.rateLimiter.RecordRateLimitError(retryAfterSeconds(resp))
		return fmt.Errorf("%w: %s", domain.ErrRateLimited, endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("confluence error (status %d): %s", resp.StatusCode, truncateBody(body))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// retryAfterSeconds parses the Retry-After header, zero when absent.
func retryAfterSeconds(resp *http.Response) int {
	header := resp.Header.Get("Retry-After")
	if header == "" {
		return 0
	}
	var seconds int
	if _, err := fmt.Sscanf(header, "%d", &seconds); err != nil {
		return 0
	}
	return seconds
}

// truncateBody keeps error messages readable for HTML error pages.
func truncateBody(body []byte) string {
	const maxLen = 200
	s := string(body)
	if len(s) > maxLen {
		return s[:maxLen] + "..."
	}
	return s
}
