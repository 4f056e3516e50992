package confluence

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig holds rate limiting configuration.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultRateLimit is a conservative default well below Atlassian's
// published limits, leaving headroom for other API consumers.
var DefaultRateLimit = RateLimitConfig{RequestsPerSecond: 5.0, BurstSize: 10}

// RateLimiter provides rate limiting for Confluence API requests.
// It uses a token bucket with a backoff window for 429 responses.
type RateLimiter struct {
	mu      sync.Mutex
	limiter *rate.Limiter
	retryAt time.Time
}

// NewRateLimiter creates a rate limiter with the default configuration.
func NewRateLimiter() *RateLimiter {
	return NewRateLimiterWithConfig(DefaultRateLimit)
}

// NewRateLimiterWithConfig creates a rate limiter with custom configuration.
func NewRateLimiterWithConfig(cfg RateLimitConfig) *RateLimiter {
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Wait blocks until a request can be made without exceeding the rate
// limit, respecting any backoff set by RecordRateLimitError.
func (r *RateLimiter) Wait(ctx context.Context) error {
	r.mu.Lock()
	retryAt := r.retryAt
	r.mu.Unlock()

	if time.Now().Before(retryAt) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(retryAt)):
		}
	}

	return r.limiter.Wait(ctx)
}

// RecordRateLimitError records a 429 response and sets a backoff period.
func (r *RateLimiter) RecordRateLimitError(retryAfterSeconds int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if retryAfterSeconds <= 0 {
		// Default backoff: 60 seconds
		retryAfterSeconds = 60
	}

	r.retryAt = time.Now().Add(time.Duration(retryAfterSeconds) * time.Second)
}
