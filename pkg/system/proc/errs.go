package proc

import (
	"errors"
	"fmt"

	"github.com/ja7ad/sysmon/pkg/types"
)

var (
	// ErrNoPartitions indicates the partition table could not be read.
	ErrNoPartitions = errors.New("proc: no partitions")

	// ErrNoMemory indicates system memory counters were unavailable.
	ErrNoMemory = errors.New("proc: no memory counters")
)

// unavailable tags a per-process read failure. Exited processes, missing
// /proc entries and permission errors all mean "skip this one".
func unavailable(pid int32, err error) error {
	return fmt.Errorf("%w: pid %d: %w", types.ErrProcessUnavailable, pid, err)
}
