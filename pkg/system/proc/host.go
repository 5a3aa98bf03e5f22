package proc

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"

	"github.com/ja7ad/sysmon/pkg/types"
)

// Provider reads host and process metrics through gopsutil.
type Provider struct {
	self int32
}

func New() *Provider {
	return &Provider{self: selfPID()}
}

// NumCPU returns the logical core count, falling back to the Go runtime's
// view when the OS query fails.
func (p *Provider) NumCPU() int {
	n, err := cpu.Counts(true)
	if err != nil || n <= 0 {
		return runtime.NumCPU()
	}
	return n
}

// ProcessMemory returns the resident set of the monitor process itself.
func (p *Provider) ProcessMemory(ctx context.Context) (types.Bytes, error) {
	proc, err := process.NewProcessWithContext(ctx, p.self)
	if err != nil {
		return 0, unavailable(p.self, err)
	}
	mi, err := proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, unavailable(p.self, err)
	}
	return types.ToBytes(mi.RSS), nil
}

// Memory returns system total and available physical memory.
func (p *Provider) Memory(ctx context.Context) (types.Memory, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return types.Memory{}, fmt.Errorf("%w: %w", ErrNoMemory, err)
	}
	return types.Memory{
		Total:     types.ToBytes(vm.Total),
		Available: types.ToBytes(vm.Available),
	}, nil
}

// Volumes lists physical partitions. A partition whose usage cannot be read
// or reports zero capacity comes back with Ready=false.
func (p *Provider) Volumes(ctx context.Context) ([]types.Volume, error) {
	parts, err := disk.PartitionsWithContext(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPartitions, err)
	}

	seen := make(map[string]struct{}, len(parts))
	out := make([]types.Volume, 0, len(parts))
	for _, part := range parts {
		if _, dup := seen[part.Mountpoint]; dup {
			continue
		}
		seen[part.Mountpoint] = struct{}{}

		vol := types.Volume{Name: part.Mountpoint}
		if usage, err := disk.UsageWithContext(ctx, part.Mountpoint); err == nil && usage.Total > 0 {
			vol.Ready = true
			vol.Total = types.ToBytes(usage.Total)
			vol.Free = types.ToBytes(usage.Free)
		}
		out = append(out, vol)
	}
	return out, nil
}
