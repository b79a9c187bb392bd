package config

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
)

// DiffTemplate returns a unified diff from the current settings file content
// to the embedded template, or "" when they already match.
func DiffTemplate(current []byte) string {
	if string(current) == string(templateSettings) {
		return ""
	}
	return strings.TrimSpace(udiff.Unified(
		"settings.toml (current)",
		"settings.toml (template)",
		string(current),
		string(templateSettings),
	))
}
