package monitor

import (
	"fmt"

	"github.com/ja7ad/sysmon/pkg/process"
)

// MemoryLine renders a process with its memory in whole megabytes.
func MemoryLine(r process.Record) string {
	return fmt.Sprintf("%s - memory: %d MB", r.Name, r.Memory.WholeMB())
}

// CPULine renders a process with its CPU estimate.
func CPULine(r process.Ranked) string {
	return fmt.Sprintf("%s - CPU: %.2f%%", r.Name, r.CPUPercent)
}

// LogProcesses writes one memory line per record to the activity log and
// returns the lines for display.
func (c *Controller) LogProcesses(recs []process.Record) []string {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = MemoryLine(r)
		c.activity.LogAction(lines[i])
	}
	return lines
}

// LogRanked is LogProcesses for CPU-ranked views.
func (c *Controller) LogRanked(recs []process.Ranked) []string {
	lines := make([]string, len(recs))
	for i, r := range recs {
		lines[i] = CPULine(r)
		c.activity.LogAction(lines[i])
	}
	return lines
}
