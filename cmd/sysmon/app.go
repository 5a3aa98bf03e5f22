package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ja7ad/sysmon/pkg/activitylog"
	"github.com/ja7ad/sysmon/pkg/config"
	"github.com/ja7ad/sysmon/pkg/metrics"
	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/process"
	"github.com/ja7ad/sysmon/pkg/sampler"
)

// host is everything the commands need from the operating system.
type host interface {
	monitor.Provider
	process.Lister
	sampler.TimesReader
	SelfPID() int32
}

// Process views offered by the ps command and the processes menu.
const (
	viewList   = "list"
	viewMemory = "memory"
	viewCPU    = "cpu"
)

var errUnknownView = errors.New("unknown process view")

// cpuRanking maps the --sampled flag to a CPU ranking policy.
func cpuRanking(sampled bool) process.CPURanking {
	if sampled {
		return process.CPURankingSampled
	}
	return process.CPURankingPlaceholder
}

type app struct {
	cfg  config.Config
	log  *slog.Logger
	host host
	out  io.Writer
	sink activitylog.Sink
}

// window is the blocking sampler for the monitor's own process.
func (a *app) window() *sampler.Window {
	return sampler.NewWindow(a.host, a.host.SelfPID(), sampler.WithWindow(a.cfg.CPUWindow))
}

func (a *app) controller(cpu sampler.Sampler, sel metrics.Selection) *monitor.Controller {
	activity := activitylog.New(a.sink, activitylog.WithLogger(a.log))
	return monitor.New(a.host, cpu, activity,
		monitor.WithSelection(sel),
		monitor.WithLogger(a.log),
	)
}

// processView captures a snapshot, narrows it by term and renders the chosen
// view. Lines are also sent to the activity log through ctrl.
func (a *app) processView(ctx context.Context, ctrl *monitor.Controller, view, term string, ranking process.CPURanking, limit int) error {
	recs, skipped, err := process.SnapshotWithSkips(ctx, a.host)
	if err != nil {
		return err
	}
	if len(skipped) > 0 {
		a.log.Debug("processes skipped", "count", len(skipped))
	}

	if term != "" {
		ctrl.Activity().LogActionf("process search: %s", term)
		recs, err = process.Search(recs, term)
		if errors.Is(err, process.ErrNotFound) {
			ctrl.LogAction("process not found")
			renderNotFound(a.out, term)
			return nil
		}
	}

	switch view {
	case viewList, "":
		recs = process.Limit(recs, limit)
		ctrl.LogProcesses(recs)
		renderRecords(a.out, "Running processes", recs)
	case viewMemory:
		recs = process.Limit(process.RankByMemory(recs), limit)
		ctrl.LogProcesses(recs)
		renderRecords(a.out, "Processes by memory", recs)
	case viewCPU:
		ranked := process.RankCPU(ctx, ranking, recs, a.host, sampler.SystemClock, a.cfg.CPUWindow)
		ranked = process.Limit(ranked, limit)
		ctrl.LogRanked(ranked)
		renderRanked(a.out, "Processes by CPU", ranked)
	default:
		return errUnknownView
	}
	return nil
}
