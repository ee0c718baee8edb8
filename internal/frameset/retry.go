package frameset

import (
	"math"
	"time"
)

// RetryPolicy bounds how long DoPost waits for the post frame's form to appear.
type RetryPolicy struct {
	InitialDelay time.Duration
	Multiplier   float64
	MaxDelay     time.Duration
	MaxAttempts  int
}

// DefaultRetryPolicy polls every 500ms for up to 50 attempts.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		InitialDelay: 500 * time.Millisecond,
		Multiplier:   1.0,
		MaxAttempts:  50,
	}
}

// NextDelay returns the wait before retry attempt N (1-based).
func (p RetryPolicy) NextDelay(attempt int) time.Duration {
	if attempt <= 1 || p.InitialDelay <= 0 {
		return max(p.InitialDelay, 0)
	}
	mult := p.Multiplier
	if mult < 1.0 {
		mult = 1.0
	}
	delay := float64(p.InitialDelay) * math.Pow(mult, float64(attempt-1))
	if p.MaxDelay > 0 && delay > float64(p.MaxDelay) {
		delay = float64(p.MaxDelay)
	}
	return time.Duration(delay)
}

// Exhausted reports whether attempt is past the limit. A zero limit never retries.
func (p RetryPolicy) Exhausted(attempt int) bool {
	return attempt > p.MaxAttempts
}
