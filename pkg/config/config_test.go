package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ja7ad/sysmon/pkg/metrics"
	"github.com/ja7ad/sysmon/pkg/types"
)

var allKeys = []string{
	"SYSMON_LOG_LEVEL", "SYSMON_LOG_FORMAT", "SYSMON_ACTIVITY_LOG", "SYSMON_METRICS",
	"SYSMON_INTERVAL", "SYSMON_CPU_WINDOW", "SYSMON_BACKGROUND_CPU", "SYSMON_CPU_EMA", "NO_COLOR",
}

// clearEnv registers every key with t.Setenv so it is restored afterwards,
// then unsets it so envDefault applies.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "system_log.txt", cfg.ActivityPath())
	assert.Equal(t, 5*time.Second, cfg.Interval)
	assert.Equal(t, time.Second, cfg.CPUWindow)
	assert.False(t, cfg.Background)
	assert.Equal(t, metrics.Selection{Metrics: metrics.All, Interval: metrics.DefaultInterval}, cfg.Selection())
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYSMON_INTERVAL", "2s")
	t.Setenv("SYSMON_METRICS", "cpu,disk")
	t.Setenv("SYSMON_BACKGROUND_CPU", "true")
	t.Setenv("SYSMON_CPU_EMA", "0.25")

	cfg, err := Load(missingFile(t))
	require.NoError(t, err)
	assert.Equal(t, metrics.Selection{Metrics: metrics.CPU | metrics.Disk, Interval: 2 * time.Second}, cfg.Selection())
	assert.True(t, cfg.Background)
	assert.InDelta(t, 0.25, cfg.CPUEMA, 1e-12)
}

func TestLoad_DotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "sysmon.env")
	require.NoError(t, os.WriteFile(path, []byte("SYSMON_ACTIVITY_LOG=/tmp/act.txt\nSYSMON_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/act.txt", cfg.ActivityPath())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string][2]string{
		"negative_interval": {"SYSMON_INTERVAL", "-1s"},
		"zero_window":       {"SYSMON_CPU_WINDOW", "0s"},
		"ema_out_of_range":  {"SYSMON_CPU_EMA", "1.5"},
		"bad_format":        {"SYSMON_LOG_FORMAT", "xml"},
		"bad_metrics":       {"SYSMON_METRICS", "gpu"},
		"unparsable":        {"SYSMON_INTERVAL", "soon"},
	}
	for name, kv := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(kv[0], kv[1])
			_, err := Load(missingFile(t))
			require.Error(t, err)
		})
	}
}

func TestValidate_MetricsError(t *testing.T) {
	cfg := Config{LogFormat: "text", CPUWindow: time.Second, Metrics: "gpu"}
	require.ErrorIs(t, cfg.Validate(), types.ErrInvalidSelection)
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer

	log, err := Config{LogLevel: "warn", LogFormat: "json"}.Logger(&buf)
	require.NoError(t, err)
	log.Info("hidden")
	log.Warn("shown", "k", 1)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	_, err = Config{LogLevel: "loud"}.Logger(&buf)
	require.Error(t, err)
}
