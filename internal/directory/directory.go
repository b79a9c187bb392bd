package directory

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/powerdesk/powerdesk/internal/paccli"
)

// unknownBucket labels summary entries whose source field was empty.
const unknownBucket = "Unknown"

// Platform is the slice of the pac client the directory consumes.
type Platform interface {
	ListEnvironments(ctx context.Context) ([]paccli.Record, error)
	SelectEnvironment(ctx context.Context, url string) (bool, error)
}

// Directory owns the in-memory environment catalog and the currently
// selected environment. The catalog is replaced wholesale on each refresh;
// there is no incremental merge. Safe for concurrent use.
type Directory struct {
	client Platform
	logger *slog.Logger

	mu           sync.RWMutex
	environments []Environment
	current      *Environment
}

// New builds a Directory over client. A nil logger falls back to slog.Default().
func New(client Platform, logger *slog.Logger) *Directory {
	if logger == nil {
		logger = slog.Default()
	}
	return &Directory{client: client, logger: logger}
}

// Refresh replaces the catalog with the current pac listing. When the
// underlying call fails the previous catalog is left fully intact and false
// is returned; a successful call always replaces, even with an empty list.
func (d *Directory) Refresh(ctx context.Context) bool {
	records, err := d.client.ListEnvironments(ctx)
	if err != nil {
		d.logger.Error("failed to refresh environments", "error", err)
		return false
	}

	environments := make([]Environment, 0, len(records))
	for _, record := range records {
		environments = append(environments, environmentFromRecord(record))
	}

	d.mu.Lock()
	d.environments = environments
	d.mu.Unlock()

	d.logger.Info("refreshed environments", "count", len(environments))
	return true
}

// Environments returns a copy of the current catalog.
func (d *Directory) Environments() []Environment {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]Environment, len(d.environments))
	copy(out, d.environments)
	return out
}

// Select makes env the current environment after a successful remote
// selection. Membership in the latest catalog is not checked, and a later
// refresh that omits env does not clear the selection.
func (d *Directory) Select(ctx context.Context, env Environment) bool {
	ok, err := d.client.SelectEnvironment(ctx, env.URL)
	if err != nil {
		d.logger.Error("error selecting environment", "display_name", env.DisplayName, "error", err)
		return false
	}
	if !ok {
		d.logger.Error("failed to select environment", "display_name", env.DisplayName)
		return false
	}

	d.mu.Lock()
	selected := env
	d.current = &selected
	d.mu.Unlock()

	d.logger.Info("selected environment", "display_name", env.DisplayName)
	return true
}

// Current returns the selected environment, if any.
func (d *Directory) Current() (Environment, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.current == nil {
		return Environment{}, false
	}
	return *d.current, true
}

// Summary aggregates the catalog by type, region, and state.
type Summary struct {
	Total    int
	ByType   map[string]int
	ByRegion map[string]int
	ByState  map[string]int
}

// Summary computes counts over the current catalog. Empty fields are
// bucketed under "Unknown".
func (d *Directory) Summary() Summary {
	d.mu.RLock()
	defer d.mu.RUnlock()

	summary := Summary{
		Total:    len(d.environments),
		ByType:   make(map[string]int),
		ByRegion: make(map[string]int),
		ByState:  make(map[string]int),
	}
	for _, env := range d.environments {
		summary.ByType[orUnknown(env.Type)]++
		summary.ByRegion[orUnknown(env.Region)]++
		summary.ByState[orUnknown(env.State)]++
	}
	return summary
}

func orUnknown(value string) string {
	if value == "" {
		return unknownBucket
	}
	return value
}

// Search returns environments whose name or display name contains query,
// case-insensitively. An empty query matches everything.
func (d *Directory) Search(query string) []Environment {
	needle := strings.ToLower(query)

	d.mu.RLock()
	defer d.mu.RUnlock()

	var matches []Environment
	for _, env := range d.environments {
		if strings.Contains(strings.ToLower(env.Name), needle) ||
			strings.Contains(strings.ToLower(env.DisplayName), needle) {
			matches = append(matches, env)
		}
	}
	return matches
}
