package crawl

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer enforces a fixed interval between requests using a token bucket
// with burst 1: the first request passes immediately, every subsequent
// one waits until a full interval has elapsed since the previous. This
// paces skip and error paths the same as successful fetches, so the
// remote server sees a uniform request rate regardless of outcome.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer with the given interval between requests.
// A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	p := &Pacer{}
	if interval > 0 {
		p.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
	return p
}

// Wait blocks until the next request is allowed.
// Returns an error if the context is canceled before then.
func (p *Pacer) Wait(ctx context.Context) error {
	if p == nil || p.limiter == nil {
		return ctx.Err()
	}
	return p.limiter.Wait(ctx)
}
