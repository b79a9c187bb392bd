package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/powerdesk/powerdesk/internal/config"
)

func TestSettingsExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pac]\ntimeout_seconds = 45\n"), 0o644))

	a := &app{configFlag: path}
	cfg, resolved, err := a.settings()
	require.NoError(t, err)
	require.Equal(t, path, resolved)
	require.Equal(t, 45, cfg.Pac.TimeoutSeconds)
}

func TestSettingsExplicitMissingPathFails(t *testing.T) {
	a := &app{configFlag: filepath.Join(t.TempDir(), "absent.toml")}
	_, _, err := a.settings()
	require.ErrorContains(t, err, "missing settings file")
}

func TestSettingsDefaultPathFallsBackToDefaults(t *testing.T) {
	orig := defaultPathFunc
	t.Cleanup(func() { defaultPathFunc = orig })
	missing := filepath.Join(t.TempDir(), "settings.toml")
	defaultPathFunc = func() (string, error) { return missing, nil }

	a := &app{}
	cfg, resolved, err := a.settings()
	require.NoError(t, err)
	require.Equal(t, missing, resolved)
	require.Equal(t, config.Default(), cfg)
}

func TestSettingsInvalidFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("[pac]\ntimeout_seconds = -1\n"), 0o644))

	a := &app{configFlag: path}
	_, _, err := a.settings()
	require.ErrorContains(t, err, "timeout_seconds")
}

func TestLoggerDiscardsByDefault(t *testing.T) {
	var stderr bytes.Buffer
	a := &app{}
	logger := a.logger(config.Default(), &stderr)
	logger.Info("hello")
	require.Empty(t, stderr.String())
}

func TestLoggerDebugWritesToStderr(t *testing.T) {
	var stderr bytes.Buffer
	cfg := config.Default()
	cfg.Logging.Level = "debug"

	a := &app{}
	logger := a.logger(cfg, &stderr)
	logger.Debug("tracing pac call")
	require.Contains(t, stderr.String(), "tracing pac call")
}

func TestLoggerWritesToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ppd.log")
	cfg := config.Default()
	cfg.Logging.File = path

	var stderr bytes.Buffer
	a := &app{}
	logger := a.logger(cfg, &stderr)
	logger.Info("refreshed environments")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "refreshed environments")
	require.Empty(t, stderr.String())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCmd()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"env", "solution", "auth", "whoami", "doctor", "dash", "mcp", "config"} {
		require.True(t, names[want], "missing subcommand %s", want)
	}
}
