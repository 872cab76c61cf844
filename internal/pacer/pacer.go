// internal/pacer/pacer.go
package pacer

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// Pacer defines the interface for pacing repeated browser interactions.
//
// Implementations should block callers so that consecutive actions keep a
// minimum spacing, giving the page time to settle between interactions.
type Pacer interface {
	// Wait blocks until the next action may proceed.
	// If the context is cancelled before the pacer allows, an error is returned.
	Wait(ctx context.Context) error

	// Allow checks if an action may proceed immediately without blocking.
	Allow() bool
}

// Interval paces actions to a fixed minimum spacing. It uses a token bucket
// with a burst of one, so the first action is never delayed.
type Interval struct {
	limiter *rate.Limiter
}

// NewInterval creates a pacer that keeps at least every between actions
func NewInterval(every time.Duration) *Interval {
	if every <= 0 {
		every = 500 * time.Millisecond // Default spacing
	}

	return &Interval{
		limiter: rate.NewLimiter(rate.Every(every), 1),
	}
}

// Wait blocks until the spacing since the previous action has elapsed
func (p *Interval) Wait(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return p.limiter.Wait(ctx)
}

// Allow checks whether an action may proceed immediately
func (p *Interval) Allow() bool {
	return p.limiter.Allow()
}
