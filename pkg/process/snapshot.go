// Package process captures the running process set at one instant and
// derives ranked or filtered views of it.
//
// A snapshot is a plain slice of Records. Ranking and search never reorder
// or modify the slice they are given; they return new slices.
package process

import (
	"context"
	"fmt"

	"github.com/ja7ad/sysmon/pkg/types"
)

// Record is one process as seen at snapshot time.
type Record struct {
	PID    int32
	Name   string
	Memory types.Bytes // working set / resident bytes
}

// Handle is an enumerated process that may disappear before it is read.
type Handle interface {
	PID() int32
	Name(ctx context.Context) (string, error)
	MemoryBytes(ctx context.Context) (uint64, error)
}

// Lister enumerates the currently visible processes.
type Lister interface {
	Processes(ctx context.Context) ([]Handle, error)
}

// Capture reads one handle. A failed read yields a skipped result.
func Capture(ctx context.Context, h Handle) types.Result[Record] {
	name, err := h.Name(ctx)
	if err != nil {
		return types.Skip[Record](fmt.Errorf("pid %d name: %w", h.PID(), err))
	}
	mem, err := h.MemoryBytes(ctx)
	if err != nil {
		return types.Skip[Record](fmt.Errorf("pid %d memory: %w", h.PID(), err))
	}
	return types.Ok(Record{PID: h.PID(), Name: name, Memory: types.ToBytes(mem)})
}

// Snapshot enumerates processes once and reads each of them. Processes that
// exited or cannot be introspected are left out; only a failed enumeration
// is an error.
func Snapshot(ctx context.Context, l Lister) ([]Record, error) {
	recs, _, err := SnapshotWithSkips(ctx, l)
	return recs, err
}

// SnapshotWithSkips is Snapshot that also returns why records were left out.
func SnapshotWithSkips(ctx context.Context, l Lister) ([]Record, []error, error) {
	handles, err := l.Processes(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("process: enumerate: %w", err)
	}

	results := make([]types.Result[Record], 0, len(handles))
	for _, h := range handles {
		if h == nil {
			continue
		}
		results = append(results, Capture(ctx, h))
	}

	recs, skipped := types.Kept(results)
	return recs, skipped, nil
}
