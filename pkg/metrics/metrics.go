// Package metrics holds the metric selection: which collectors run on each
// monitoring cycle and how long to pause between cycles.
package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ja7ad/sysmon/pkg/types"
)

// Set is a combination of metric categories.
type Set uint8

const (
	CPU Set = 1 << iota
	RAM
	Disk

	None Set = 0
	All      = CPU | RAM | Disk
)

// DefaultInterval is the pause between collection cycles.
const DefaultInterval = 5 * time.Second

// Has reports whether every flag in f is enabled in s.
func (s Set) Has(f Set) bool { return f != None && s&f == f }

// Categories returns the enabled single-flag categories in collection order.
func (s Set) Categories() []Set {
	out := make([]Set, 0, 3)
	for _, f := range []Set{CPU, RAM, Disk} {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s Set) String() string {
	if s == None {
		return "none"
	}
	names := make([]string, 0, 3)
	for _, f := range s.Categories() {
		switch f {
		case CPU:
			names = append(names, "cpu")
		case RAM:
			names = append(names, "ram")
		case Disk:
			names = append(names, "disk")
		}
	}
	return strings.Join(names, ",")
}

// Selection is the metric set together with the sampling interval.
// The two are always replaced as a pair.
type Selection struct {
	Metrics  Set
	Interval time.Duration
}

// DefaultSelection collects nothing and pauses DefaultInterval.
func DefaultSelection() Selection {
	return Selection{Metrics: None, Interval: DefaultInterval}
}

// ParseChoice maps a menu choice to a metric set. It accepts the menu
// numbers 1-4 and the names cpu, ram, disk, all. Anything else yields None
// and ErrInvalidSelection.
func ParseChoice(choice string) (Set, error) {
	switch strings.ToLower(strings.TrimSpace(choice)) {
	case "1", "cpu":
		return CPU, nil
	case "2", "ram":
		return RAM, nil
	case "3", "disk":
		return Disk, nil
	case "4", "all":
		return All, nil
	default:
		return None, fmt.Errorf("%w: %q", types.ErrInvalidSelection, choice)
	}
}

// ParseSet parses a comma separated list such as "cpu,disk", "all" or
// "none". Empty input is None.
func ParseSet(list string) (Set, error) {
	var out Set
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		switch part {
		case "", "none":
			continue
		case "cpu":
			out |= CPU
		case "ram", "mem", "memory":
			out |= RAM
		case "disk":
			out |= Disk
		case "all":
			out |= All
		default:
			return None, fmt.Errorf("%w: %q", types.ErrInvalidSelection, part)
		}
	}
	return out, nil
}

// ParseInterval parses whole seconds. ok is false for non-numeric or
// negative input.
func ParseInterval(seconds string) (time.Duration, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(seconds))
	if err != nil || n < 0 {
		return 0, false
	}
	return time.Duration(n) * time.Second, true
}

// Configure builds the next selection. An unrecognized choice disables all
// collection instead of failing; an unusable interval keeps prev.Interval.
func Configure(choice, interval string, prev Selection) Selection {
	set, _ := ParseChoice(choice)

	next := Selection{Metrics: set, Interval: prev.Interval}
	if d, ok := ParseInterval(interval); ok {
		next.Interval = d
	}
	return next
}
