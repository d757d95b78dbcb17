package huggingface

import (
	"context"

	"golang.org/x/time/rate"
)

// RateLimiter is a token bucket shared by all calls of one client, keeping the
// service under the Inference API quota.
type RateLimiter struct {
	limiter *rate.Limiter
}

// NewRateLimiter allows burst requests immediately, then refills at requestsPerSecond.
//
//	limiter := NewRateLimiter(2.0, 4) // 2 req/s with burst of 4
func NewRateLimiter(requestsPerSecond float64, burst int) *RateLimiter {
	return &RateLimiter{limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burst)}
}

// Allow blocks until a token is available or the context is done.
func (r *RateLimiter) Allow(ctx context.Context) error {
	return r.limiter.Wait(ctx)
}
