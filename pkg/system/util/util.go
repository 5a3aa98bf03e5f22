package util

import (
	"math"
	"time"
)

// EMA is an exponential moving average with a fixed smoothing factor.
// An alpha of 0 is treated as "no smoothing": Next returns its input.
type EMA struct {
	alpha, prev float64
	ok          bool
}

func NewEMA(alpha float64) *EMA { return &EMA{alpha: clamp01(alpha)} }

func (e *EMA) Next(v float64) float64 {
	if e.alpha == 0 {
		return v
	}
	if !e.ok {
		e.prev, e.ok = v, true
		return v
	}
	e.prev = e.alpha*v + (1-e.alpha)*e.prev
	return e.prev
}

// DeltaDuration returns now-prev, or zero if the counter went backwards.
func DeltaDuration(now, prev time.Duration) time.Duration {
	if now >= prev {
		return now - prev
	}
	// counter reset (pid reuse) or prev unset
	return 0
}

func SafeDiv(n, d float64) float64 {
	const eps = 1e-12
	if d > eps || d < -eps {
		return n / d
	}
	return 0
}

// Millis returns d in fractional milliseconds.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func clamp01(x float64) float64 {
	if x < 0 || math.IsNaN(x) {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
