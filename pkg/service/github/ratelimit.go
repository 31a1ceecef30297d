package github

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// authenticatedQuota is the hourly request quota for token auth
	authenticatedQuota = 5000

	// proactiveRate keeps steady-state usage under the hourly quota
	proactiveRate = 1.2

	// reserveRequests is kept unspent before waiting for quota reset
	reserveRequests = 100
)

// rateLimiter throttles API calls two ways: a token bucket keeps the
// steady rate below the hourly quota, and response headers drive a
// reactive wait when the remaining quota runs low.
type rateLimiter struct {
	mu        sync.Mutex
	remaining int
	reset     time.Time
	bucket    *rate.Limiter
}

func newRateLimiter() *rateLimiter {
	return &rateLimiter{
		remaining: authenticatedQuota,
		bucket:    rate.NewLimiter(rate.Limit(proactiveRate), 1),
	}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	reset := r.reset
	r.mu.Unlock()

	if remaining < reserveRequests && time.Now().Before(reset) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Until(reset)):
		}
	}

	return nil
}

func (r *rateLimiter) update(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if v := resp.Header.Get("X-RateLimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			r.remaining = n
		}
	}
	if v := resp.Header.Get("X-RateLimit-Reset"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			r.reset = time.Unix(n, 0)
		}
	}
}
