package paccli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/powerdesk/powerdesk/internal/messages"
)

// Default per-capability timeouts. Listing and selection share the default;
// solution transfers run for minutes and get their own budgets.
const (
	ProbeTimeout   = 10 * time.Second
	DefaultTimeout = 30 * time.Second
	ExportTimeout  = 5 * time.Minute
	ImportTimeout  = 10 * time.Minute
)

// Record is one loosely structured object decoded from pac's JSON output.
// Individual fields are read opportunistically; missing fields degrade to
// zero values at the call site.
type Record = map[string]any

// Client translates domain operations into pac invocations and decodes the
// results. Construction verifies the executable answers a version probe;
// every other operation assumes that precondition still holds.
type Client struct {
	runner  Runner
	logger  *slog.Logger
	timeout time.Duration
	version string
}

// Option configures a Client before the construction-time probe runs.
type Option func(*clientConfig)

type clientConfig struct {
	runner     Runner
	logger     *slog.Logger
	timeout    time.Duration
	executable string
}

// WithRunner injects the process runner. Useful for substituting a fake in
// tests; overrides WithExecutable.
func WithRunner(r Runner) Option {
	return func(c *clientConfig) {
		if r != nil {
			c.runner = r
		}
	}
}

// WithExecutable sets the pac binary path used by the default runner.
func WithExecutable(path string) Option {
	return func(c *clientConfig) {
		c.executable = path
	}
}

// WithLogger injects the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTimeout overrides the default timeout applied to metadata commands.
// Zero or negative durations are ignored.
func WithTimeout(d time.Duration) Option {
	return func(c *clientConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// New builds a Client and probes the pac executable with --version. An
// unreachable or unresponsive executable fails construction with an error
// wrapping ErrToolNotFound.
func New(opts ...Option) (*Client, error) {
	cfg := clientConfig{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.runner == nil {
		cfg.runner = ExecRunner{Executable: cfg.executable}
	}
	name := cfg.executable
	if name == "" {
		name = DefaultExecutable
	}

	client := &Client{
		runner:  cfg.runner,
		logger:  cfg.logger,
		timeout: cfg.timeout,
	}

	result, err := client.runner.Run(context.Background(), []string{"--version"}, ProbeTimeout)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		return nil, fmt.Errorf(messages.PacProbeFailedFmt, name, result.ExitCode, ErrToolNotFound)
	}
	client.version = strings.TrimSpace(result.Stdout)
	client.logger.Info("pac CLI found", "version", client.version)
	return client, nil
}

// Version returns the version string reported by the construction-time probe.
func (c *Client) Version() string {
	return c.version
}

// ListEnvironments returns the raw environment records from `pac org list`.
// A failed command or undecodable output degrades to an empty slice; the
// error return is reserved for runner-level failures.
func (c *Client) ListEnvironments(ctx context.Context) ([]Record, error) {
	return c.listRecords(ctx, []string{"org", "list", "--json"}, "environments")
}

// SelectEnvironment points pac at the environment behind url. The returned
// flag mirrors the command's success.
func (c *Client) SelectEnvironment(ctx context.Context, url string) (bool, error) {
	result, err := c.runner.Run(ctx, []string{"org", "select", "--environment", url}, c.timeout)
	if err != nil {
		return false, err
	}
	if result.Success {
		c.logger.Info("selected environment", "url", url)
	} else {
		c.logger.Error("failed to select environment", "url", url, "stderr", result.Stderr)
	}
	return result.Success, nil
}

// ListSolutions returns the raw solution records from `pac solution list`.
// Same degradation contract as ListEnvironments.
func (c *Client) ListSolutions(ctx context.Context) ([]Record, error) {
	return c.listRecords(ctx, []string{"solution", "list", "--json"}, "solutions")
}

// ExportSolution exports the named solution to path. The managed flag is
// appended only when requested.
func (c *Client) ExportSolution(ctx context.Context, name, path string, managed bool) (bool, error) {
	args := []string{"solution", "export", "--name", name, "--path", path}
	if managed {
		args = append(args, "--managed")
	}
	result, err := c.runner.Run(ctx, args, ExportTimeout)
	if err != nil {
		return false, err
	}
	if result.Success {
		c.logger.Info("exported solution", "name", name, "path", path)
	} else {
		c.logger.Error("failed to export solution", "name", name, "stderr", result.Stderr)
	}
	return result.Success, nil
}

// ImportSolution imports the solution archive at path. The publish flag is
// appended only when requested.
func (c *Client) ImportSolution(ctx context.Context, path string, publishChanges bool) (bool, error) {
	args := []string{"solution", "import", "--path", path}
	if publishChanges {
		args = append(args, "--publish-changes")
	}
	result, err := c.runner.Run(ctx, args, ImportTimeout)
	if err != nil {
		return false, err
	}
	if result.Success {
		c.logger.Info("imported solution", "path", path)
	} else {
		c.logger.Error("failed to import solution", "path", path, "stderr", result.Stderr)
	}
	return result.Success, nil
}

// WhoAmI returns the current identity record from `pac org who`, or nil when
// the command fails or its output does not decode.
func (c *Client) WhoAmI(ctx context.Context) (Record, error) {
	result, err := c.runner.Run(ctx, []string{"org", "who", "--json"}, c.timeout)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		c.logger.Error("failed to get current identity", "stderr", result.Stderr)
		return nil, nil
	}
	var record Record
	if err := json.Unmarshal([]byte(result.Stdout), &record); err != nil {
		c.logger.Error("failed to parse identity JSON", "command", result.Command, "error", err)
		return nil, nil
	}
	return record, nil
}

// Authenticate runs `pac auth create`. When the runner supports it the child
// is attached to the caller's terminal so interactive flows can complete;
// success is the exit code alone.
func (c *Client) Authenticate(ctx context.Context) (bool, error) {
	args := []string{"auth", "create"}

	var result Result
	var err error
	if interactive, ok := c.runner.(InteractiveRunner); ok {
		result, err = interactive.RunInteractive(ctx, args)
	} else {
		result, err = c.runner.Run(ctx, args, c.timeout)
	}
	if err != nil {
		return false, err
	}
	if result.Success {
		c.logger.Info("authenticated with Power Platform")
	} else {
		c.logger.Error("authentication failed", "stderr", result.Stderr)
	}
	return result.Success, nil
}

// listRecords runs a JSON-array-producing command and decodes stdout.
// Decode failures and unsuccessful commands are logged and swallowed: an
// empty, still-usable list beats crashing the caller chain. Only the log
// channel distinguishes empty-due-to-error from truly empty.
func (c *Client) listRecords(ctx context.Context, args []string, what string) ([]Record, error) {
	result, err := c.runner.Run(ctx, args, c.timeout)
	if err != nil {
		return nil, err
	}
	if !result.Success {
		c.logger.Error("command failed", "what", what, "command", result.Command, "stderr", result.Stderr)
		return []Record{}, nil
	}
	var records []Record
	if err := json.Unmarshal([]byte(result.Stdout), &records); err != nil {
		c.logger.Error("failed to parse JSON response", "what", what, "command", result.Command, "error", err)
		return []Record{}, nil
	}
	c.logger.Debug("decoded records", "what", what, "count", len(records))
	return records, nil
}
