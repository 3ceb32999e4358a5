package foodgramapi

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// RateLimiter implements a token bucket in front of the API.
// It keeps a busy pager from flooding the backend.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter creates a RateLimiter allowing requestsPerSecond with the
// given burst. A non-positive rate disables limiting.
//
// Example:
//
//	limiter := NewRateLimiter(5.0, 10) // 5 req/s with burst of 10
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	limit := rate.Limit(requestsPerSecond)
	if requestsPerSecond <= 0 {
		limit = rate.Inf
	}
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{limiter: rate.NewLimiter(limit, burst)}
}

// Wait blocks until a token is available or ctx is done.
// It returns how long the caller waited.
func (r *RateLimiter) Wait(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	err := r.limiter.Wait(ctx)
	return time.Since(start), err
}
