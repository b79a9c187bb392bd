package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"

	"github.com/powerdesk/powerdesk/internal/messages"
)

//go:embed template/settings.toml
var templateSettings []byte

// Template returns the embedded default settings file.
func Template() []byte {
	return append([]byte(nil), templateSettings...)
}

// DefaultPath resolves the settings path under the user's config directory.
func DefaultPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", fmt.Errorf(messages.ConfigResolveHomeFmt, err)
	}
	return filepath.Join(home, ".config", "powerdesk", "settings.toml"), nil
}

// Load reads and validates the settings file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigMissingFileFmt, path, err)
	}
	return Parse(data, path)
}

// Parse parses and validates settings TOML data. data is the TOML content;
// source is used in error messages.
func Parse(data []byte, source string) (*Config, error) {
	cfg, err := ParseLenient(data, source)
	if err != nil {
		return nil, err
	}
	if err := decodeStrict(data); err != nil {
		return nil, fmt.Errorf(messages.ConfigUnknownKeysFmt, source, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFileFmt, source, err)
	}
	return cfg, nil
}

// ParseLenient parses settings TOML without validation, suitable for repair
// tools that need to read partially valid files. Fields the file omits keep
// their defaults.
func ParseLenient(data []byte, source string) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidFileFmt, source, err)
	}
	return &cfg, nil
}

// decodeStrict re-decodes with unknown-field rejection to catch keys that
// toml.Unmarshal silently ignores.
func decodeStrict(data []byte) error {
	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(&cfg)
}

// Save writes cfg to path, creating parent directories as needed.
func Save(cfg Config, path string) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
	}
	return nil
}
