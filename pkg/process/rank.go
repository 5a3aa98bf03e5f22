package process

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"time"

	"github.com/ja7ad/sysmon/pkg/sampler"
	"github.com/ja7ad/sysmon/pkg/system/util"
)

// CPURanking names how RankByCPU orders processes.
type CPURanking string

const (
	// CPURankingPlaceholder orders by memory and reports 0% for every
	// process. Per-process CPU is not computed.
	CPURankingPlaceholder CPURanking = "placeholder"

	// CPURankingSampled measures every process over one window, see
	// RankByCPUSampled.
	CPURankingSampled CPURanking = "sampled"
)

// Ranked is a Record with a CPU utilization estimate.
type Ranked struct {
	Record
	CPUPercent float64
}

// RankByMemory returns a copy ordered by descending memory. Equal values
// keep their snapshot order.
func RankByMemory(recs []Record) []Record {
	out := slices.Clone(recs)
	slices.SortStableFunc(out, func(a, b Record) int {
		return cmp.Compare(b.Memory, a.Memory)
	})
	return out
}

// RankByCPU implements CPURankingPlaceholder: memory ordering with a zero
// CPU figure for every process.
func RankByCPU(recs []Record) []Ranked {
	byMem := RankByMemory(recs)
	out := make([]Ranked, len(byMem))
	for i, r := range byMem {
		out[i] = Ranked{Record: r}
	}
	return out
}

// RankByCPUSampled reads the processor time of every record, waits one
// window, reads again, and orders by the resulting percentage (descending,
// ties in snapshot order). Processes that cannot be read at either instant
// are left out. The call blocks for the whole window.
func RankByCPUSampled(ctx context.Context, recs []Record, r sampler.TimesReader, clk sampler.Clock, window time.Duration) []Ranked {
	if window <= 0 {
		window = sampler.DefaultWindow
	}

	type baseline struct {
		rec Record
		cpu time.Duration
	}
	before := make([]baseline, 0, len(recs))
	for _, rec := range recs {
		cpu, err := r.CPUTime(ctx, rec.PID)
		if err != nil {
			continue
		}
		before = append(before, baseline{rec: rec, cpu: cpu})
	}
	t0 := clk.Now()

	clk.Sleep(window)

	after := make(map[int32]time.Duration, len(before))
	for _, b := range before {
		if cpu, err := r.CPUTime(ctx, b.rec.PID); err == nil {
			after[b.rec.PID] = cpu
		}
	}
	wall := clk.Now().Sub(t0)

	out := make([]Ranked, 0, len(before))
	for _, b := range before {
		cpu, ok := after[b.rec.PID]
		if !ok {
			continue
		}
		out = append(out, Ranked{
			Record:     b.rec,
			CPUPercent: sampler.Percent(util.DeltaDuration(cpu, b.cpu), wall),
		})
	}

	slices.SortStableFunc(out, func(a, b Ranked) int {
		return cmp.Compare(b.CPUPercent, a.CPUPercent)
	})
	return out
}

// RankCPU orders recs by CPU using the given policy. Unknown policies fall
// back to CPURankingPlaceholder.
func RankCPU(ctx context.Context, policy CPURanking, recs []Record, r sampler.TimesReader, clk sampler.Clock, window time.Duration) []Ranked {
	if policy == CPURankingSampled {
		return RankByCPUSampled(ctx, recs, r, clk, window)
	}
	return RankByCPU(recs)
}

// Search returns the records whose name contains term, ignoring case. An
// empty term matches everything. When nothing matches it returns an empty
// slice and ErrNotFound.
func Search(recs []Record, term string) ([]Record, error) {
	needle := strings.ToLower(term)
	out := make([]Record, 0)
	for _, r := range recs {
		if strings.Contains(strings.ToLower(r.Name), needle) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return out, ErrNotFound
	}
	return out, nil
}

// Limit returns at most n leading elements; n <= 0 means no limit.
func Limit[T any](s []T, n int) []T {
	if n <= 0 || n >= len(s) {
		return s
	}
	return s[:n]
}
