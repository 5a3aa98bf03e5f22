package main

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/ja7ad/sysmon/pkg/activitylog"
	"github.com/ja7ad/sysmon/pkg/metrics"
	"github.com/ja7ad/sysmon/pkg/monitor"
	"github.com/ja7ad/sysmon/pkg/process"
)

// Main menu options. The values match the numbers the menu shows.
const (
	optSystemInfo = "1"
	optProcesses  = "2"
	optToggleLog  = "3"
	optExit       = "4"
)

// Processes submenu options.
const (
	optSortMemory = "1"
	optSortCPU    = "2"
	optSearch     = "3"
	optBack       = "4"
)

// prompter asks the user for menu input.
type prompter interface {
	Main(ctx context.Context) (string, error)
	Processes(ctx context.Context) (string, error)
	SearchTerm(ctx context.Context) (string, error)
	// Metrics asks for a metric choice and an interval in seconds; current
	// is the interval in effect, offered as the default answer.
	Metrics(ctx context.Context, current time.Duration) (choice, interval string, err error)
}

type huhPrompter struct{}

// ask runs a single field as a one-group form.
func ask(ctx context.Context, field huh.Field) error {
	return huh.NewForm(huh.NewGroup(field)).RunWithContext(ctx)
}

func (huhPrompter) Main(ctx context.Context) (string, error) {
	var v string
	err := ask(ctx, huh.NewSelect[string]().
		Title("Choose an option").
		Options(
			huh.NewOption("1. CPU, RAM and disk info", optSystemInfo),
			huh.NewOption("2. Processes (sort and search)", optProcesses),
			huh.NewOption("3. Toggle logging", optToggleLog),
			huh.NewOption("4. Exit", optExit),
		).
		Value(&v))
	return v, err
}

func (huhPrompter) Processes(ctx context.Context) (string, error) {
	var v string
	err := ask(ctx, huh.NewSelect[string]().
		Title("Processes").
		Options(
			huh.NewOption("1. Sort by memory", optSortMemory),
			huh.NewOption("2. Sort by CPU", optSortCPU),
			huh.NewOption("3. Search by name", optSearch),
			huh.NewOption("4. Back", optBack),
		).
		Value(&v))
	return v, err
}

func (huhPrompter) SearchTerm(ctx context.Context) (string, error) {
	var v string
	err := ask(ctx, huh.NewInput().
		Title("Process name").
		Value(&v))
	return v, err
}

func (huhPrompter) Metrics(ctx context.Context, current time.Duration) (string, string, error) {
	var choice string
	interval := seconds(current)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Metrics to log").
				Options(
					huh.NewOption("1. CPU", "1"),
					huh.NewOption("2. RAM", "2"),
					huh.NewOption("3. Disk", "3"),
					huh.NewOption("4. All", "4"),
				).
				Value(&choice),
			huh.NewInput().
				Title("Interval in seconds").
				Description("Non-numeric input keeps the current interval.").
				Value(&interval),
		),
	)
	err := form.RunWithContext(ctx)
	return choice, interval, err
}

// seconds renders d as whole seconds for the interval prompt.
func seconds(d time.Duration) string {
	return strconv.FormatInt(int64(d/time.Second), 10)
}

// menu is the interactive loop. It returns nil on exit or when the user
// aborts a prompt. Logging is always switched off on the way out.
type menu struct {
	app     *app
	ctrl    *monitor.Controller
	prompt  prompter
	ranking process.CPURanking
}

func (m *menu) run(ctx context.Context) error {
	defer m.ctrl.Activity().Disable()

	for {
		if ctx.Err() != nil {
			return nil
		}

		choice, err := m.prompt.Main(ctx)
		if err != nil {
			return quitErr(err)
		}
		m.ctrl.LogAction("user selected option: " + choice)

		switch choice {
		case optSystemInfo:
			err = m.ctrl.Cycle(ctx, func(rep monitor.Report) {
				renderReport(m.app.out, rep)
			})
			if err != nil {
				return quitErr(err)
			}
		case optProcesses:
			if err := m.processes(ctx); err != nil {
				return err
			}
		case optToggleLog:
			if err := m.toggle(ctx); err != nil {
				return err
			}
		case optExit:
			return nil
		default:
			warnColor.Fprintln(m.app.out, "Invalid choice, try again.")
		}
	}
}

// processes lists every process, then offers the submenu, until Back.
func (m *menu) processes(ctx context.Context) error {
	for {
		if err := m.app.processView(ctx, m.ctrl, viewList, "", m.ranking, 0); err != nil {
			return err
		}

		choice, err := m.prompt.Processes(ctx)
		if err != nil {
			return quitErr(err)
		}
		m.ctrl.LogAction("user selected process option: " + choice)

		switch choice {
		case optSortMemory:
			err = m.app.processView(ctx, m.ctrl, viewMemory, "", m.ranking, 0)
		case optSortCPU:
			err = m.app.processView(ctx, m.ctrl, viewCPU, "", m.ranking, 0)
		case optSearch:
			var term string
			if term, err = m.prompt.SearchTerm(ctx); err != nil {
				return quitErr(err)
			}
			if term == "" {
				warnColor.Fprintln(m.app.out, "Empty search matches every process.")
			}
			err = m.app.processView(ctx, m.ctrl, viewList, term, m.ranking, 0)
		case optBack:
			return nil
		default:
			warnColor.Fprintln(m.app.out, "Invalid choice, try again.")
		}
		if err != nil {
			return err
		}
	}
}

func (m *menu) toggle(ctx context.Context) error {
	current := m.ctrl.Selection().Interval
	state, err := m.ctrl.ToggleLogging(func() (string, string, error) {
		return m.prompt.Metrics(ctx, current)
	})
	if err != nil {
		warnColor.Fprintln(m.app.out, "Logging unchanged.")
		return quitErr(err)
	}

	activity := m.ctrl.Activity()
	switch state {
	case activitylog.Enabled:
		sel := m.ctrl.Selection()
		renderNotice(m.app.out, "Logging enabled: "+sel.Metrics.String()+" every "+sel.Interval.String()+
			" (session "+activity.Session()+")")
		if sel.Metrics == metrics.None {
			warnColor.Fprintln(m.app.out, "No metrics selected, system info will be empty.")
		}
	case activitylog.Disabled:
		renderNotice(m.app.out, "Logging disabled (session "+activity.Session()+").")
	}
	return nil
}

// quitErr treats an aborted prompt as a normal exit.
func quitErr(err error) error {
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
