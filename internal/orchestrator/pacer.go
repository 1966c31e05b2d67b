package orchestrator

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces successive dispatches so a batch respects API rate limits.
// The orchestrator calls Wait before every dispatch regardless of how the
// previous task ended.
type Pacer interface {
	// Wait blocks until the next dispatch may proceed or ctx is done.
	Wait(ctx context.Context) error
}

// ratePacer implements Pacer with a token bucket.
type ratePacer struct {
	limiter *rate.Limiter
}

// NewRatePacer returns a Pacer sustaining dispatchesPerSecond with the
// given burst. A burst less than 1 is coerced to 1, which makes the first
// dispatch immediate and spaces every subsequent one. A rate of zero or
// below disables pacing entirely.
func NewRatePacer(dispatchesPerSecond float64, burst int) Pacer {
	if dispatchesPerSecond <= 0 {
		return NopPacer{}
	}
	if burst < 1 {
		burst = 1
	}
	return &ratePacer{limiter: rate.NewLimiter(rate.Limit(dispatchesPerSecond), burst)}
}

func (p *ratePacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

// NopPacer never waits. It backs disabled pacing and keeps tests off the
// wall clock.
type NopPacer struct{}

// Wait returns immediately.
func (NopPacer) Wait(context.Context) error { return nil }
