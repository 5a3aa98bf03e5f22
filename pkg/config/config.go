// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/ja7ad/sysmon/pkg/activitylog"
	"github.com/ja7ad/sysmon/pkg/metrics"
)

// DefaultEnvFile is read when present and no other file is given.
const DefaultEnvFile = ".env"

var (
	ErrBadInterval  = errors.New("config: interval must be >= 0")
	ErrBadWindow    = errors.New("config: cpu window must be > 0")
	ErrBadSmoothing = errors.New("config: cpu ema must be in [0,1]")
	ErrBadLogFormat = errors.New("config: log format must be text or json")
)

type Config struct {
	LogLevel    string        `env:"SYSMON_LOG_LEVEL"      envDefault:"info"`
	LogFormat   string        `env:"SYSMON_LOG_FORMAT"     envDefault:"text"`
	ActivityLog string        `env:"SYSMON_ACTIVITY_LOG"   envDefault:"system_log.txt"`
	Metrics     string        `env:"SYSMON_METRICS"        envDefault:"all"`
	Interval    time.Duration `env:"SYSMON_INTERVAL"       envDefault:"5s"`
	CPUWindow   time.Duration `env:"SYSMON_CPU_WINDOW"     envDefault:"1s"`
	Background  bool          `env:"SYSMON_BACKGROUND_CPU" envDefault:"false"`
	CPUEMA      float64       `env:"SYSMON_CPU_EMA"        envDefault:"0"`
	NoColor     bool          `env:"NO_COLOR"`
}

// Load reads envFile (DefaultEnvFile when empty) if it exists, then parses
// the environment. Variables already set win over the file.
func Load(envFile string) (Config, error) {
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return Config{}, fmt.Errorf("config: load %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Interval < 0 {
		return ErrBadInterval
	}
	if c.CPUWindow <= 0 {
		return ErrBadWindow
	}
	if c.CPUEMA < 0 || c.CPUEMA > 1 {
		return ErrBadSmoothing
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return ErrBadLogFormat
	}
	if _, err := metrics.ParseSet(c.Metrics); err != nil {
		return fmt.Errorf("config: metrics: %w", err)
	}
	return nil
}

// Selection is the configured metric set and interval.
func (c Config) Selection() metrics.Selection {
	set, _ := metrics.ParseSet(c.Metrics)
	return metrics.Selection{Metrics: set, Interval: c.Interval}
}

// ActivityPath is the activity log file path.
func (c Config) ActivityPath() string {
	if c.ActivityLog == "" {
		return activitylog.DefaultPath
	}
	return c.ActivityLog
}

// Logger builds the diagnostics logger writing to w.
func (c Config) Logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return nil, fmt.Errorf("config: log level: %w", err)
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	}
	return slog.New(slog.NewTextHandler(w, opts)), nil
}
