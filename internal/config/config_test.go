package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTemplateMatchesDefaults(t *testing.T) {
	cfg, err := Parse(Template(), "template settings.toml")
	require.NoError(t, err)
	require.Equal(t, Default(), *cfg)
}

func TestParseOverrides(t *testing.T) {
	data := []byte("[pac]\nexecutable = \"/opt/pac/pac\"\ntimeout_seconds = 60\n")
	cfg, err := Parse(data, "settings.toml")
	require.NoError(t, err)
	require.Equal(t, "/opt/pac/pac", cfg.Pac.Executable)
	require.Equal(t, 60*time.Second, cfg.Timeout())
	// Untouched sections keep defaults.
	require.Equal(t, "info", cfg.Logging.Level)
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	data := []byte("[pac]\nexecutible = \"pac\"\n")
	_, err := Parse(data, "settings.toml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unrecognized keys")
}

func TestParseLenientAcceptsUnknownKeys(t *testing.T) {
	data := []byte("[pac]\nexecutible = \"typo\"\ntimeout_seconds = 5\n")
	cfg, err := ParseLenient(data, "settings.toml")
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Pac.TimeoutSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "zero timeout", mutate: func(c *Config) { c.Pac.TimeoutSeconds = 0 }, wantErr: "timeout_seconds"},
		{name: "negative retries", mutate: func(c *Config) { c.Pac.RetryAttempts = -1 }, wantErr: "retry_attempts"},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "logging.level"},
		{name: "bad geometry", mutate: func(c *Config) { c.UI.Width = 0 }, wantErr: "ui.width"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.toml")
	cfg := Default()
	cfg.Pac.TimeoutSeconds = 45
	cfg.Logging.Level = "debug"

	require.NoError(t, Save(cfg, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, *loaded)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.toml")
	require.NoError(t, os.WriteFile(path, []byte("not toml ["), 0o644))
	_, err := Load(path)
	require.Error(t, err)
}

func TestDiffTemplate(t *testing.T) {
	require.Empty(t, DiffTemplate(Template()))

	modified := strings.Replace(string(Template()), "timeout_seconds = 30", "timeout_seconds = 90", 1)
	diff := DiffTemplate([]byte(modified))
	require.Contains(t, diff, "-timeout_seconds = 90")
	require.Contains(t, diff, "+timeout_seconds = 30")
}

func TestDefaultPath(t *testing.T) {
	path, err := DefaultPath()
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(path, filepath.Join(".config", "powerdesk", "settings.toml")))
}
