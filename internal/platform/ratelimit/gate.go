package ratelimit

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Gate throttles sequential calls against a rate-limited dependency.
// Callers block on Wait before each call; the zero-cost NopGate disables
// throttling where a job issues a single aggregate request.
type Gate interface {
	Wait(ctx context.Context) error
}

// IntervalGate releases one call per interval via a token bucket with
// burst 1: the first call passes immediately, each later call waits out
// the remainder of the interval.
type IntervalGate struct {
	limiter *rate.Limiter
}

func NewIntervalGate(interval time.Duration) *IntervalGate {
	if interval <= 0 {
		interval = 7 * time.Second
	}
	return &IntervalGate{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

func (g *IntervalGate) Wait(ctx context.Context) error {
	return g.limiter.Wait(ctx)
}

type NopGate struct{}

func (NopGate) Wait(context.Context) error { return nil }
