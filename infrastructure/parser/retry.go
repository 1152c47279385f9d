package parser

import (
	"context"
	"math"
	"time"
)

// RetryPolicy bounds a polling loop: the delay before attempt i grows as
// Base^i seconds, capped at Cap, and the loop never runs more than
// MaxAttempts times.
type RetryPolicy struct {
	MaxAttempts int
	Base        float64
	Cap         time.Duration
}

// Delay returns the wait before the given zero-based attempt.
func (p RetryPolicy) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}
	d := time.Duration(math.Pow(p.Base, float64(attempt)) * float64(time.Second))
	if p.Cap > 0 && d > p.Cap {
		return p.Cap
	}
	return d
}

// sleep waits for d or until the context is cancelled.
func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
