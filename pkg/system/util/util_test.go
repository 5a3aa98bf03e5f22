package util

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEMA_FirstSampleSetsState(t *testing.T) {
	e := NewEMA(0.5)
	assert.Equal(t, 10.0, e.Next(10), "first output should equal first input")
	assert.InDelta(t, 15.0, e.Next(20), 1e-9, "EMA(0.5) of 10 then 20 should be 15")
}

func TestEMA_SequenceAlphaPointFive(t *testing.T) {
	e := NewEMA(0.5)
	got := []float64{e.Next(10), e.Next(20), e.Next(20), e.Next(40)}
	want := []float64{10, 15, 17.5, 28.75}
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, want[i], got[i], 1e-9, "i=%d", i)
	}
}

func TestEMA_AlphaZero_PassesThrough(t *testing.T) {
	e := NewEMA(0)
	assert.Equal(t, 10.0, e.Next(10))
	assert.Equal(t, 20.0, e.Next(20))
	assert.Equal(t, -5.0, e.Next(-5))
}

func TestEMA_AlphaOutOfRange(t *testing.T) {
	t.Run("above_one_clamps", func(t *testing.T) {
		e := NewEMA(7)
		assert.Equal(t, 10.0, e.Next(10))
		assert.Equal(t, 20.0, e.Next(20))
	})
	t.Run("nan_disables", func(t *testing.T) {
		e := NewEMA(math.NaN())
		assert.Equal(t, 3.0, e.Next(3))
		assert.Equal(t, 9.0, e.Next(9))
	})
}

func TestDeltaDuration(t *testing.T) {
	t.Run("normal_increase", func(t *testing.T) {
		assert.Equal(t, 500*time.Millisecond, DeltaDuration(1500*time.Millisecond, time.Second))
	})
	t.Run("no_change", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), DeltaDuration(time.Second, time.Second))
	})
	t.Run("counter_went_backwards", func(t *testing.T) {
		assert.Equal(t, time.Duration(0), DeltaDuration(time.Second, 2*time.Second))
	})
}

func TestSafeDiv(t *testing.T) {
	t.Run("regular", func(t *testing.T) {
		require.InDelta(t, 2.5, SafeDiv(5, 2), 1e-12)
		require.InDelta(t, -2.5, SafeDiv(5, -2), 1e-12)
	})
	t.Run("zero_denominator", func(t *testing.T) {
		assert.Equal(t, 0.0, SafeDiv(123, 0))
	})
	t.Run("tiny_denominator", func(t *testing.T) {
		assert.Equal(t, 0.0, SafeDiv(1, 1e-13))
	})
}

func TestMillis(t *testing.T) {
	assert.InDelta(t, 1000.0, Millis(time.Second), 1e-12)
	assert.InDelta(t, 0.5, Millis(500*time.Microsecond), 1e-12)
}
