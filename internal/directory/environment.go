package directory

import (
	"time"

	"github.com/powerdesk/powerdesk/internal/paccli"
)

// Environment is one addressable Power Platform workspace. Instances are
// immutable and constructed only from a catalog refresh.
type Environment struct {
	// Name is the stable internal identifier, unique within one refresh.
	Name string
	// DisplayName is the human-facing name; not guaranteed unique.
	DisplayName string
	URL         string
	Region      string
	Type        string
	State       string
	// CreatedAt is nil when pac reported no timestamp or one in an
	// unrecognized format.
	CreatedAt *time.Time
}

// createdTimeLayouts are tried in order; the first match wins.
var createdTimeLayouts = []string{
	"2006-01-02T15:04:05.999999Z",
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// environmentFromRecord maps one raw pac record onto an Environment.
// Missing fields default to empty strings rather than failing the batch.
func environmentFromRecord(record paccli.Record) Environment {
	return Environment{
		Name:        stringField(record, "EnvironmentName"),
		DisplayName: stringField(record, "FriendlyName"),
		URL:         stringField(record, "EnvironmentUrl"),
		Region:      stringField(record, "Region"),
		Type:        stringField(record, "EnvironmentType"),
		State:       stringField(record, "State"),
		CreatedAt:   parseCreatedTime(stringField(record, "CreatedTime")),
	}
}

func stringField(record paccli.Record, key string) string {
	value, ok := record[key].(string)
	if !ok {
		return ""
	}
	return value
}

// parseCreatedTime parses a pac timestamp against the accepted layouts.
// Unparsable or absent values become nil; they never error the refresh.
func parseCreatedTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range createdTimeLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return &parsed
		}
	}
	return nil
}
