package sampler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/ja7ad/sysmon/pkg/system/util"
)

// Background runs an inner Sampler continuously and publishes the latest
// value. Sample never blocks.
type Background struct {
	inner Sampler
	retry time.Duration
	clock Clock
	log   *slog.Logger

	mu     sync.Mutex
	ema    *util.EMA
	latest float64
	err    error
	ok     bool
}

// NewBackground wraps inner. alpha in (0,1] enables EMA smoothing of the
// published value; 0 publishes raw samples. retry is the pause after a
// failed sample so a dead target does not spin.
func NewBackground(inner Sampler, alpha float64, retry time.Duration, log *slog.Logger) *Background {
	if log == nil {
		log = slog.Default()
	}
	if retry <= 0 {
		retry = DefaultWindow
	}
	return &Background{
		inner: inner,
		retry: retry,
		clock: SystemClock,
		log:   log,
		ema:   util.NewEMA(alpha),
	}
}

// Run samples until ctx is done. Cancellation is observed between samples,
// so Run may return up to one window after ctx is cancelled.
func (b *Background) Run(ctx context.Context) error {
	b.log.Debug("background cpu sampler started")
	for {
		if err := ctx.Err(); err != nil {
			b.log.Debug("background cpu sampler stopped")
			return nil
		}

		v, err := b.inner.Sample(ctx)
		b.publish(v, err)
		if err != nil {
			b.log.Debug("cpu sample failed", "err", err)
			b.clock.Sleep(b.retry)
		}
	}
}

func (b *Background) publish(v float64, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.err = err
		return
	}
	b.latest = b.ema.Next(v)
	b.err = nil
	b.ok = true
}

// Sample returns the latest published value. Before the first success it
// returns ErrNoSample, or the last sampling error if there was one.
func (b *Background) Sample(context.Context) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.ok {
		if b.err != nil {
			return 0, b.err
		}
		return 0, ErrNoSample
	}
	return b.latest, nil
}
