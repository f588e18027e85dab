package scheduler

import (
	"context"
	"time"
)

// RetryPolicy is a bounded fixed-delay polling policy. It replaces
// nested timeout callbacks with an explicit success/exhausted result
// so cancellation and failure paths stay testable.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Poll calls check up to MaxAttempts times, waiting Delay between
// attempts. It returns true as soon as check does, false when the
// attempts are exhausted or the context is cancelled.
func (p RetryPolicy) Poll(ctx context.Context, check func() bool) bool {
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(p.Delay):
			}
		}

		if check() {
			return true
		}
	}
	return false
}
