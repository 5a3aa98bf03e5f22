// Package sampler estimates CPU utilization of a process from two readings of
// its cumulative processor time taken one window apart.
//
// The reference Window sampler blocks the caller for the whole window, so a
// monitoring cycle with CPU enabled can never run faster than one window.
// Background moves that wait to its own goroutine and serves the latest value.
package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/ja7ad/sysmon/pkg/system/util"
	"github.com/ja7ad/sysmon/pkg/types"
)

// DefaultWindow is the wait between the two processor-time readings.
const DefaultWindow = time.Second

// TimesReader returns the cumulative processor time (user+system) of a pid.
type TimesReader interface {
	CPUTime(ctx context.Context, pid int32) (time.Duration, error)
}

// Clock abstracts wall time so tests can drive synthetic windows.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type systemClock struct{}

func (systemClock) Now() time.Time        { return time.Now() }
func (systemClock) Sleep(d time.Duration) { time.Sleep(d) }

// SystemClock is the real wall clock.
var SystemClock Clock = systemClock{}

// Sampler yields a CPU utilization percentage.
type Sampler interface {
	Sample(ctx context.Context) (float64, error)
}

// Percent converts a processor-time delta over a wall-time delta into a
// percentage. It is not normalized by core count: a process keeping two
// cores busy reports 200.
func Percent(cpu, wall time.Duration) float64 {
	return util.SafeDiv(util.Millis(cpu), util.Millis(wall)) * 100
}

// SampleCPUUsage reads pid's processor time, sleeps for window, reads it
// again and returns the utilization over the measured wall time. The sleep
// is not interrupted by ctx.
func SampleCPUUsage(ctx context.Context, r TimesReader, clk Clock, pid int32, window time.Duration) (float64, error) {
	if window <= 0 {
		return 0, ErrBadWindow
	}

	cpu0, err := r.CPUTime(ctx, pid)
	if err != nil {
		return 0, unavailable(pid, err)
	}
	t0 := clk.Now()

	clk.Sleep(window)

	cpu1, err := r.CPUTime(ctx, pid)
	if err != nil {
		return 0, unavailable(pid, err)
	}
	t1 := clk.Now()

	return Percent(util.DeltaDuration(cpu1, cpu0), t1.Sub(t0)), nil
}

func unavailable(pid int32, err error) error {
	return fmt.Errorf("%w: pid %d: %w", types.ErrProcessUnavailable, pid, err)
}

// Window is the synchronous reference sampler for one process.
type Window struct {
	reader TimesReader
	clock  Clock
	pid    int32
	window time.Duration
}

// Option configures a Window.
type Option func(*Window)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option {
	return func(w *Window) { w.clock = c }
}

// WithWindow sets the wait between readings. Non-positive values keep
// DefaultWindow.
func WithWindow(d time.Duration) Option {
	return func(w *Window) {
		if d > 0 {
			w.window = d
		}
	}
}

// NewWindow returns a blocking sampler for pid.
func NewWindow(r TimesReader, pid int32, opts ...Option) *Window {
	w := &Window{
		reader: r,
		clock:  SystemClock,
		pid:    pid,
		window: DefaultWindow,
	}
	for _, o := range opts {
		o(w)
	}
	return w
}

// Period is the blocking duration of one Sample call.
func (w *Window) Period() time.Duration { return w.window }

func (w *Window) Sample(ctx context.Context) (float64, error) {
	return SampleCPUUsage(ctx, w.reader, w.clock, w.pid, w.window)
}
