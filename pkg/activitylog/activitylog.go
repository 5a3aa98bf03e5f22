// Package activitylog records user actions and emitted metric lines to an
// append-only sink while logging is enabled.
package activitylog

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// TimeLayout is the local timestamp prefix of every line.
const TimeLayout = "2006-01-02 15:04:05"

// State is the logging toggle.
type State int

const (
	Disabled State = iota
	Enabled
)

func (s State) String() string {
	if s == Enabled {
		return "enabled"
	}
	return "disabled"
}

// Logger gates writes to a Sink. It has a single writer and no locking.
// Sink failures never propagate: the line is dropped, counted and reported
// through slog.
type Logger struct {
	sink    Sink
	state   State
	session string
	dropped int

	now   func() time.Time
	newID func() string
	log   *slog.Logger
}

// Option configures a Logger.
type Option func(*Logger)

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// WithSessionIDs replaces the session id generator used by Enable.
func WithSessionIDs(gen func() string) Option {
	return func(l *Logger) { l.newID = gen }
}

// WithLogger sets the diagnostics logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Logger) { l.log = log }
}

// New returns a Logger in the Disabled state.
func New(sink Sink, opts ...Option) *Logger {
	l := &Logger{
		sink:  sink,
		state: Disabled,
		now:   time.Now,
		newID: uuid.NewString,
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(l)
	}
	return l
}

func (l *Logger) State() State { return l.state }

// Enabled reports whether LogAction currently writes.
func (l *Logger) Enabled() bool { return l.state == Enabled }

// Session is the id of the current (or last) enabled period.
func (l *Logger) Session() string { return l.session }

// Dropped is the number of lines lost to sink failures.
func (l *Logger) Dropped() int { return l.dropped }

// Enable writes the start marker and turns gating on. Enabling twice is a no-op.
func (l *Logger) Enable() {
	if l.state == Enabled {
		return
	}
	l.session = l.newID()
	l.write(fmt.Sprintf("logging started (session %s)", l.session))
	l.state = Enabled
	l.log.Info("activity logging enabled", "session", l.session)
}

// Disable writes the stop marker and turns gating off. Disabling twice is a no-op.
func (l *Logger) Disable() {
	if l.state == Disabled {
		return
	}
	l.write(fmt.Sprintf("logging stopped (session %s)", l.session))
	l.state = Disabled
	l.log.Info("activity logging disabled", "session", l.session, "dropped", l.dropped)
}

// Toggle flips the state and returns the new one.
func (l *Logger) Toggle() State {
	if l.state == Enabled {
		l.Disable()
	} else {
		l.Enable()
	}
	return l.state
}

// LogAction appends "<timestamp>: <message>" when Enabled and does nothing
// otherwise.
func (l *Logger) LogAction(message string) {
	if l.state != Enabled {
		return
	}
	l.write(message)
}

// LogActionf is LogAction with fmt.Sprintf formatting.
func (l *Logger) LogActionf(format string, args ...any) {
	if l.state != Enabled {
		return
	}
	l.write(fmt.Sprintf(format, args...))
}

func (l *Logger) write(message string) {
	line := l.now().Format(TimeLayout) + ": " + message
	if err := l.sink.WriteLine(line); err != nil {
		l.dropped++
		l.log.Warn("activity log line dropped", "err", err)
	}
}
