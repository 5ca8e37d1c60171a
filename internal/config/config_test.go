package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv unsets every variable Load reads for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, env := range append([]string{"CONFIG_FILE"}, envNames()...) {
		t.Setenv(env, "")
		require.NoError(t, os.Unsetenv(env))
	}
}

func envNames() []string {
	names := make([]string, 0, len(keys))
	for _, env := range keys {
		names = append(names, env)
	}
	return names
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.ProbeTimeout)
	assert.Equal(t, "TechStack-Analyzer/1.0", cfg.UserAgent)
	assert.Equal(t, 30, cfg.DetectionThreshold)
	assert.Equal(t, 8, cfg.ScoreConcurrency)
	assert.Zero(t, cfg.ProbeRate)
	assert.Equal(t, int64(5<<20), cfg.MaxBodyBytes)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Empty(t, cfg.LogFile)
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("REQUEST_TIMEOUT", "2500")
	t.Setenv("PROBE_TIMEOUT", "750")
	t.Setenv("USER_AGENT", "custom/2.0")
	t.Setenv("DETECTION_THRESHOLD", "45")
	t.Setenv("PROBE_RATE", "2.5")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 2500*time.Millisecond, cfg.RequestTimeout)
	assert.Equal(t, 750*time.Millisecond, cfg.ProbeTimeout)
	assert.Equal(t, "custom/2.0", cfg.UserAgent)
	assert.Equal(t, 45, cfg.DetectionThreshold)
	assert.Equal(t, 2.5, cfg.ProbeRate)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFromFileWithEnvOverride(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 7000\nlog_level: debug\nscore_concurrency: 2\n"), 0o600))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "7100")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7100, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2, cfg.ScoreConcurrency)
}

func TestLoadMissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		env   string
		value string
	}{
		{"PORT", "0"},
		{"PORT", "70000"},
		{"REQUEST_TIMEOUT", "0"},
		{"PROBE_TIMEOUT", "-5"},
		{"DETECTION_THRESHOLD", "0"},
		{"PROBE_RATE", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.env+"="+tt.value, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.env, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
