package monitor

import (
	"context"
	"errors"
	"fmt"

	"github.com/ja7ad/sysmon/pkg/types"
)

// ErrNoSampler indicates CPU was selected without a sampler configured.
var ErrNoSampler = errors.New("monitor: no cpu sampler")

func (c *Controller) collectCPU(ctx context.Context, b *Block) []error {
	c.emit(b, "Cores: %d", c.provider.NumCPU())

	if c.cpu == nil {
		return []error{ErrNoSampler}
	}
	pct, err := c.cpu.Sample(ctx)
	if err != nil {
		return []error{fmt.Errorf("cpu usage: %w", err)}
	}
	c.emit(b, "CPU usage: %.2f%%", pct)
	return nil
}

func (c *Controller) collectRAM(ctx context.Context, b *Block) []error {
	var skipped []error

	if used, err := c.provider.ProcessMemory(ctx); err != nil {
		skipped = append(skipped, fmt.Errorf("used ram: %w", err))
	} else {
		c.emit(b, "Used RAM: %d MB", used.WholeMB())
	}

	if m, err := c.provider.Memory(ctx); err != nil {
		skipped = append(skipped, fmt.Errorf("system ram: %w", err))
	} else {
		c.emit(b, "Total RAM: %d MB", m.Total.WholeMB())
		c.emit(b, "Free RAM: %d MB", m.Available.WholeMB())
	}
	return skipped
}

func (c *Controller) collectDisk(ctx context.Context, b *Block) []error {
	vols, err := c.provider.Volumes(ctx)
	if err != nil {
		return []error{fmt.Errorf("volumes: %w", err)}
	}

	results := make([]types.Result[types.Volume], 0, len(vols))
	for _, v := range vols {
		if !v.Ready {
			results = append(results, types.Skip[types.Volume](fmt.Errorf("%w: %s", types.ErrVolumeNotReady, v.Name)))
			continue
		}
		results = append(results, types.Ok(v))
	}

	ready, skipped := types.Kept(results)
	for _, v := range ready {
		c.emit(b, "Disk: %s, total: %d GB, used: %d GB, free: %d GB",
			v.Name, v.Total.WholeGB(), v.Used().WholeGB(), v.Free.WholeGB())
	}
	return skipped
}
