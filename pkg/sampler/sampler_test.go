package sampler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/sysmon/pkg/types"
)

// fakeClock advances only when Sleep is called.
type fakeClock struct {
	now    time.Time
	slept  []time.Duration
	jitter time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }
func (c *fakeClock) Sleep(d time.Duration) {
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d + c.jitter)
}

// scriptedReader returns the next scripted reading on every call.
type scriptedReader struct {
	times []time.Duration
	errs  []error
	calls int
}

func (r *scriptedReader) CPUTime(context.Context, int32) (time.Duration, error) {
	i := r.calls
	r.calls++
	if i < len(r.errs) && r.errs[i] != nil {
		return 0, r.errs[i]
	}
	return r.times[i], nil
}

func TestPercent(t *testing.T) {
	assert.InDelta(t, 50.0, Percent(500*time.Millisecond, time.Second), 1e-9)
	assert.InDelta(t, 200.0, Percent(2*time.Second, time.Second), 1e-9, "multi-core work is not normalized")
	assert.Equal(t, 0.0, Percent(time.Second, 0), "zero wall time yields zero")
}

func TestSampleCPUUsage_HalfCore(t *testing.T) {
	clk := newFakeClock()
	r := &scriptedReader{times: []time.Duration{3 * time.Second, 3*time.Second + 500*time.Millisecond}}

	got, err := SampleCPUUsage(context.Background(), r, clk, 42, time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-9)
	assert.Equal(t, []time.Duration{time.Second}, clk.slept)
	assert.Equal(t, 2, r.calls)
}

func TestSampleCPUUsage_UsesMeasuredWallTime(t *testing.T) {
	// timer overshoot: asked for 1s, slept 1.25s
	clk := newFakeClock()
	clk.jitter = 250 * time.Millisecond
	r := &scriptedReader{times: []time.Duration{0, 500 * time.Millisecond}}

	got, err := SampleCPUUsage(context.Background(), r, clk, 1, time.Second)
	require.NoError(t, err)
	assert.InDelta(t, 40.0, got, 1e-9)
}

func TestSampleCPUUsage_ProcessGone(t *testing.T) {
	gone := errors.New("no such process")

	t.Run("first_read", func(t *testing.T) {
		r := &scriptedReader{errs: []error{gone}}
		clk := newFakeClock()
		_, err := SampleCPUUsage(context.Background(), r, clk, 7, time.Second)
		require.ErrorIs(t, err, types.ErrProcessUnavailable)
		require.ErrorIs(t, err, gone)
		assert.Empty(t, clk.slept, "must not wait when the first read fails")
	})
	t.Run("second_read", func(t *testing.T) {
		r := &scriptedReader{times: []time.Duration{time.Second, 0}, errs: []error{nil, gone}}
		_, err := SampleCPUUsage(context.Background(), r, newFakeClock(), 7, time.Second)
		require.ErrorIs(t, err, types.ErrProcessUnavailable)
	})
}

func TestSampleCPUUsage_BadWindow(t *testing.T) {
	_, err := SampleCPUUsage(context.Background(), &scriptedReader{}, newFakeClock(), 1, 0)
	require.ErrorIs(t, err, ErrBadWindow)
}

func TestSampleCPUUsage_CounterReset(t *testing.T) {
	r := &scriptedReader{times: []time.Duration{5 * time.Second, time.Second}}
	got, err := SampleCPUUsage(context.Background(), r, newFakeClock(), 1, time.Second)
	require.NoError(t, err)
	assert.Equal(t, 0.0, got)
}

func TestWindow_Options(t *testing.T) {
	clk := newFakeClock()
	r := &scriptedReader{times: []time.Duration{0, 250 * time.Millisecond}}

	w := NewWindow(r, 9, WithClock(clk), WithWindow(500*time.Millisecond))
	assert.Equal(t, 500*time.Millisecond, w.Period())

	got, err := w.Sample(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 50.0, got, 1e-9)

	assert.Equal(t, DefaultWindow, NewWindow(r, 9, WithWindow(-time.Second)).Period())
}
