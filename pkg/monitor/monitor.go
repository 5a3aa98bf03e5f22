// Package monitor runs the metric collection cycle. A Controller owns the
// metric selection and the activity logger, so every piece of mutable
// session state lives in one place and is passed explicitly.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ja7ad/sysmon/pkg/activitylog"
	"github.com/ja7ad/sysmon/pkg/metrics"
	"github.com/ja7ad/sysmon/pkg/sampler"
	"github.com/ja7ad/sysmon/pkg/types"
)

// Provider is the subset of OS metrics the collectors read.
type Provider interface {
	NumCPU() int
	ProcessMemory(ctx context.Context) (types.Bytes, error)
	Memory(ctx context.Context) (types.Memory, error)
	Volumes(ctx context.Context) ([]types.Volume, error)
}

// Chooser asks for a metric choice and an interval in seconds. It is only
// called when logging is being enabled. An error means no answer was given.
type Chooser func() (choice, interval string, err error)

type Controller struct {
	provider Provider
	cpu      sampler.Sampler
	activity *activitylog.Logger
	sel      metrics.Selection

	now   func() time.Time
	pause func(ctx context.Context, d time.Duration) error
	log   *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSelection sets the initial selection.
func WithSelection(sel metrics.Selection) Option {
	return func(c *Controller) { c.sel = sel }
}

// WithPause replaces the inter-cycle wait.
func WithPause(pause func(ctx context.Context, d time.Duration) error) Option {
	return func(c *Controller) { c.pause = pause }
}

// WithClock replaces time.Now for report timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) { c.log = log }
}

func New(p Provider, cpu sampler.Sampler, activity *activitylog.Logger, opts ...Option) *Controller {
	c := &Controller{
		provider: p,
		cpu:      cpu,
		activity: activity,
		sel:      metrics.DefaultSelection(),
		now:      time.Now,
		pause:    sleepCtx,
		log:      slog.Default(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *Controller) Selection() metrics.Selection { return c.sel }

// SetSelection replaces metric set and interval together.
func (c *Controller) SetSelection(sel metrics.Selection) { c.sel = sel }

func (c *Controller) Activity() *activitylog.Logger { return c.activity }

// LogAction forwards to the activity logger.
func (c *Controller) LogAction(message string) { c.activity.LogAction(message) }

// ToggleLogging flips the logging state. Enabling runs the metric selector
// first, then writes the start marker. If the selector fails, the selection
// and the logging state are left as they were and the error is returned.
func (c *Controller) ToggleLogging(choose Chooser) (activitylog.State, error) {
	if c.activity.Enabled() {
		return c.activity.Toggle(), nil
	}

	choice, interval := "", ""
	if choose != nil {
		var err error
		if choice, interval, err = choose(); err != nil {
			return c.activity.State(), fmt.Errorf("metric selection: %w", err)
		}
	}
	c.sel = metrics.Configure(choice, interval, c.sel)
	c.log.Info("metric selection changed", "metrics", c.sel.Metrics.String(), "interval", c.sel.Interval)

	return c.activity.Toggle(), nil
}

// Collect runs the enabled collectors once, in CPU, RAM, Disk order.
func (c *Controller) Collect(ctx context.Context) Report {
	rep := Report{At: c.now(), Selection: c.sel}

	for _, cat := range c.sel.Metrics.Categories() {
		b := Block{Category: cat}
		var skipped []error

		switch cat {
		case metrics.CPU:
			skipped = c.collectCPU(ctx, &b)
		case metrics.RAM:
			skipped = c.collectRAM(ctx, &b)
		case metrics.Disk:
			skipped = c.collectDisk(ctx, &b)
		}

		rep.Blocks = append(rep.Blocks, b)
		for _, err := range skipped {
			c.log.Debug("metric skipped", "category", cat.String(), "err", err)
			rep.Skipped = append(rep.Skipped, Skip{Category: cat, Err: err})
		}
	}
	return rep
}

// Cycle is one "system info" request: it logs the request, collects, hands
// the report to fn and then waits for the selection interval.
func (c *Controller) Cycle(ctx context.Context, fn func(Report)) error {
	return c.cycle(ctx, fn, true)
}

// Run repeats cycles until ctx is done or, when cycles > 0, that many have
// run. Cancellation is checked between cycles and during the wait, never
// inside a collector.
func (c *Controller) Run(ctx context.Context, cycles int, fn func(Report)) error {
	for i := 0; cycles <= 0 || i < cycles; i++ {
		if ctx.Err() != nil {
			return nil
		}
		last := cycles > 0 && i == cycles-1
		if err := c.cycle(ctx, fn, !last); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
	return nil
}

func (c *Controller) cycle(ctx context.Context, fn func(Report), wait bool) error {
	c.activity.LogAction("system info requested")

	rep := c.Collect(ctx)
	if fn != nil {
		fn(rep)
	}

	if !wait || c.sel.Interval <= 0 {
		return nil
	}
	return c.pause(ctx, c.sel.Interval)
}

func (c *Controller) emit(b *Block, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	b.Lines = append(b.Lines, line)
	c.activity.LogAction(line)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
