// Package config loads and persists powerdesk settings.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/powerdesk/powerdesk/internal/messages"
)

// Config is the full settings document backing settings.toml.
type Config struct {
	Pac     PacConfig     `toml:"pac"`
	UI      UIConfig      `toml:"ui"`
	Logging LoggingConfig `toml:"logging"`
}

// PacConfig controls how the pac CLI is invoked.
type PacConfig struct {
	Executable     string `toml:"executable"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	// RetryAttempts is consumed by no code path yet; it is carried so
	// existing settings files round-trip.
	RetryAttempts int `toml:"retry_attempts"`
}

// UIConfig carries dashboard geometry.
type UIConfig struct {
	Width        int  `toml:"width"`
	Height       int  `toml:"height"`
	RememberSize bool `toml:"remember_size"`
}

// LoggingConfig controls the slog setup.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Default returns the built-in settings, matching the embedded template.
func Default() Config {
	return Config{
		Pac: PacConfig{
			Executable:     "pac",
			TimeoutSeconds: 30,
			RetryAttempts:  3,
		},
		UI: UIConfig{
			Width:        120,
			Height:       40,
			RememberSize: true,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}

// Timeout returns the metadata-command timeout as a duration.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.Pac.TimeoutSeconds) * time.Second
}

var logLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks field constraints. It does not touch the filesystem.
func (c Config) Validate() error {
	var errs []error
	if c.Pac.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New(messages.ConfigTimeoutPositive))
	}
	if c.Pac.RetryAttempts < 0 {
		errs = append(errs, errors.New(messages.ConfigRetryNegative))
	}
	if _, ok := logLevels[c.Logging.Level]; !ok {
		errs = append(errs, fmt.Errorf(messages.ConfigBadLevelFmt, c.Logging.Level))
	}
	if c.UI.Width <= 0 || c.UI.Height <= 0 {
		errs = append(errs, errors.New(messages.ConfigBadGeometry))
	}
	return errors.Join(errs...)
}
