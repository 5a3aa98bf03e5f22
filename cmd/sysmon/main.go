package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/ja7ad/sysmon/pkg/activitylog"
	"github.com/ja7ad/sysmon/pkg/config"
	"github.com/ja7ad/sysmon/pkg/metrics"
	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/process"
	"github.com/ja7ad/sysmon/pkg/sampler"
	"github.com/ja7ad/sysmon/pkg/system/proc"
)

type rootOpts struct {
	envFile     string
	activityLog string
}

type infoOpts struct {
	metrics    string
	interval   time.Duration
	cycles     int
	log        bool
	background bool
}

type psOpts struct {
	sort    string
	sampled bool
	search  string
	limit   int
	log     bool
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	var (
		ro      rootOpts
		sampled bool
	)

	root := &cobra.Command{
		Use:   "sysmon",
		Short: "Local host monitor: CPU, RAM, disks and processes",
		Long: `sysmon samples CPU, memory and disk utilization, lists and ranks running
processes, and can keep a time-stamped activity log while it runs.

Without a subcommand it opens the interactive menu.

Examples:
  sysmon
  sysmon info --metrics cpu,ram --interval 2s --cycles 10 --log
  sysmon ps --sort memory --limit 15
  sysmon ps --search chrome`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(ro, out)
			if err != nil {
				return err
			}
			return runMenu(cmd.Context(), a, huhPrompter{}, cpuRanking(sampled))
		},
	}
	root.PersistentFlags().StringVar(&ro.envFile, "env-file", config.DefaultEnvFile, "optional .env file with SYSMON_* settings")
	root.PersistentFlags().StringVar(&ro.activityLog, "activity-log", "", "activity log file (overrides SYSMON_ACTIVITY_LOG)")
	root.Flags().BoolVar(&sampled, "sampled", false, "measure per-process CPU when sorting by CPU")

	menuCmd := &cobra.Command{
		Use:   "menu",
		Short: "Open the interactive menu",
		RunE:  root.RunE,
	}
	menuCmd.Flags().BoolVar(&sampled, "sampled", false, "measure per-process CPU when sorting by CPU")

	root.AddCommand(menuCmd, newInfoCmd(&ro, out), newPsCmd(&ro, out))
	return root
}

func newInfoCmd(ro *rootOpts, out io.Writer) *cobra.Command {
	var o infoOpts

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Collect system metrics in a loop",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*ro, out)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("metrics") {
				o.metrics = a.cfg.Metrics
			}
			if !cmd.Flags().Changed("interval") {
				o.interval = a.cfg.Interval
			}
			if !cmd.Flags().Changed("background-cpu") {
				o.background = a.cfg.Background
			}
			return runInfo(cmd.Context(), a, o)
		},
	}
	cmd.Flags().StringVarP(&o.metrics, "metrics", "m", "all", "metrics to collect: cpu, ram, disk, all (comma separated)")
	cmd.Flags().DurationVarP(&o.interval, "interval", "i", metrics.DefaultInterval, "pause between cycles")
	cmd.Flags().IntVarP(&o.cycles, "cycles", "n", 1, "number of cycles (0 = run until Ctrl-C)")
	cmd.Flags().BoolVar(&o.log, "log", false, "write collected lines to the activity log")
	cmd.Flags().BoolVar(&o.background, "background-cpu", false, "sample CPU in the background instead of blocking each cycle")
	return cmd
}

func newPsCmd(ro *rootOpts, out io.Writer) *cobra.Command {
	var o psOpts

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "List, sort and search running processes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(*ro, out)
			if err != nil {
				return err
			}
			return runPs(cmd.Context(), a, o)
		},
	}
	cmd.Flags().StringVarP(&o.sort, "sort", "s", viewList, "view: list, memory or cpu")
	cmd.Flags().BoolVar(&o.sampled, "sampled", false, "measure per-process CPU over one window (with --sort cpu)")
	cmd.Flags().StringVarP(&o.search, "search", "q", "", "case-insensitive name filter")
	cmd.Flags().IntVarP(&o.limit, "limit", "l", 0, "show at most N processes (0 = all)")
	cmd.Flags().BoolVar(&o.log, "log", false, "write listed processes to the activity log")
	return cmd
}

// newApp loads configuration and wires the host provider.
func newApp(ro rootOpts, out io.Writer) (*app, error) {
	cfg, err := config.Load(ro.envFile)
	if err != nil {
		return nil, err
	}
	if ro.activityLog != "" {
		cfg.ActivityLog = ro.activityLog
	}

	logger, err := cfg.Logger(os.Stderr)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)

	if cfg.NoColor {
		color.NoColor = true
	}

	return &app{
		cfg:  cfg,
		log:  logger,
		host: proc.New(),
		out:  out,
		sink: activitylog.NewFileSink(cfg.ActivityPath()),
	}, nil
}

func runMenu(ctx context.Context, a *app, p prompter, ranking process.CPURanking) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sel := metrics.DefaultSelection()
	sel.Interval = a.cfg.Interval

	m := &menu{
		app:     a,
		ctrl:    a.controller(a.window(), sel),
		prompt:  p,
		ranking: ranking,
	}
	return m.run(ctx)
}

func runInfo(ctx context.Context, a *app, o infoOpts) error {
	set, err := metrics.ParseSet(o.metrics)
	if err != nil {
		return err
	}
	if o.interval < 0 {
		return config.ErrBadInterval
	}
	sel := metrics.Selection{Metrics: set, Interval: o.interval}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)

	var cpu sampler.Sampler = a.window()
	if o.background && set.Has(metrics.CPU) {
		bg := sampler.NewBackground(cpu, a.cfg.CPUEMA, a.cfg.CPUWindow, a.log)
		g.Go(func() error { return bg.Run(ctx) })
		cpu = bg
	}

	ctrl := a.controller(cpu, sel)
	if o.log {
		ctrl.Activity().Enable()
		defer ctrl.Activity().Disable()
	}

	g.Go(func() error {
		defer cancel()
		return ctrl.Run(ctx, o.cycles, func(rep monitor.Report) {
			renderReport(a.out, rep)
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if n := ctrl.Activity().Dropped(); n > 0 {
		a.log.Warn("activity log lines dropped", "count", n, "path", a.cfg.ActivityPath())
	}
	return nil
}

func runPs(ctx context.Context, a *app, o psOpts) error {
	ctrl := a.controller(a.window(), metrics.DefaultSelection())
	if o.log {
		ctrl.Activity().Enable()
		defer ctrl.Activity().Disable()
	}
	err := a.processView(ctx, ctrl, o.sort, o.search, cpuRanking(o.sampled), o.limit)
	if errors.Is(err, errUnknownView) {
		return fmt.Errorf("%w: %q", err, o.sort)
	}
	return err
}

// ensure the concrete provider satisfies host.
var _ host = (*proc.Provider)(nil)
