package magento

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/ptchr/magento2-rest-client/internal/metrics"
)

// RateLimiter caps the rate of outbound API calls so batch jobs do not
// overwhelm a Magento instance. It is a token bucket; calls beyond the burst
// block until a token is available or the context is done.
type RateLimiter struct {
	limiter *rate.Limiter
	calls   atomic.Int64
}

// NewRateLimiter creates a limiter allowing perSecond calls on average with
// bursts of up to burst calls. A burst below 1 is treated as 1.
func NewRateLimiter(perSecond float64, burst int) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
	}
}

// Wait blocks until the limiter admits one call.
func (r *RateLimiter) Wait(ctx context.Context) error {
	start := time.Now()
	if err := r.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	metrics.RateLimitWaitDuration.Observe(time.Since(start).Seconds())
	r.calls.Add(1)
	return nil
}

// Calls returns the number of calls admitted so far.
func (r *RateLimiter) Calls() int64 {
	return r.calls.Load()
}
