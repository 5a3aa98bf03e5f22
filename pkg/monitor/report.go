package monitor

import (
	"time"

	"github.com/ja7ad/sysmon/pkg/metrics"
)

// Block holds the lines emitted by one metric category in one cycle.
type Block struct {
	Category metrics.Set
	Lines    []string
}

// Skip records an item (a reading, a volume) left out of a cycle.
type Skip struct {
	Category metrics.Set
	Err      error
}

// Report is the outcome of one collection cycle.
type Report struct {
	At        time.Time
	Selection metrics.Selection
	Blocks    []Block
	Skipped   []Skip
}

// Categories is the union of the categories that emitted a block.
func (r Report) Categories() metrics.Set {
	var s metrics.Set
	for _, b := range r.Blocks {
		s |= b.Category
	}
	return s
}

// Lines flattens every block in order.
func (r Report) Lines() []string {
	var out []string
	for _, b := range r.Blocks {
		out = append(out, b.Lines...)
	}
	return out
}
