package proc

import (
	"context"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	pr "github.com/ja7ad/sysmon/pkg/process"
)

// Processes enumerates every visible process. Names and memory are read
// later through the returned handles, so a process that exits in between
// surfaces as a per-handle error.
func (p *Provider) Processes(ctx context.Context) ([]pr.Handle, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]pr.Handle, 0, len(procs))
	for _, proc := range procs {
		if proc == nil || proc.Pid <= 0 {
			continue
		}
		out = append(out, handle{proc: proc})
	}
	return out, nil
}

// CPUTime returns user+system processor time consumed by pid so far.
func (p *Provider) CPUTime(ctx context.Context, pid int32) (time.Duration, error) {
	proc, err := process.NewProcessWithContext(ctx, pid)
	if err != nil {
		return 0, unavailable(pid, err)
	}
	times, err := proc.TimesWithContext(ctx)
	if err != nil {
		return 0, unavailable(pid, err)
	}
	secs := times.User + times.System
	return time.Duration(secs * float64(time.Second)), nil
}

// SelfPID is the pid of the running monitor.
func (p *Provider) SelfPID() int32 { return p.self }

func selfPID() int32 { return int32(os.Getpid()) }

type handle struct {
	proc *process.Process
}

func (h handle) PID() int32 { return h.proc.Pid }

func (h handle) Name(ctx context.Context) (string, error) {
	name, err := h.proc.NameWithContext(ctx)
	if err != nil {
		return "", unavailable(h.proc.Pid, err)
	}
	if name == "" {
		name = "<unknown>"
	}
	return name, nil
}

func (h handle) MemoryBytes(ctx context.Context) (uint64, error) {
	mi, err := h.proc.MemoryInfoWithContext(ctx)
	if err != nil {
		return 0, unavailable(h.proc.Pid, err)
	}
	return mi.RSS, nil
}
