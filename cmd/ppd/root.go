package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/directory"
	"github.com/powerdesk/powerdesk/internal/messages"
	"github.com/powerdesk/powerdesk/internal/paccli"
	"github.com/powerdesk/powerdesk/internal/terminal"
)

// Test seams.
var (
	defaultPathFunc = config.DefaultPath
	isTerminal      = terminal.IsInteractive
	newClientFunc   = func(cfg config.Config, logger *slog.Logger) (*paccli.Client, error) {
		return paccli.New(
			paccli.WithExecutable(cfg.Pac.Executable),
			paccli.WithTimeout(cfg.Timeout()),
			paccli.WithLogger(logger),
		)
	}
)

// app carries the state shared by every subcommand: the --config flag and
// lazily built client plumbing.
type app struct {
	configFlag string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.PersistentFlags().StringVar(&a.configFlag, "config", "", messages.FlagConfig)

	cmd.AddCommand(
		newEnvCmd(a),
		newSolutionCmd(a),
		newAuthCmd(a),
		newWhoAmICmd(a),
		newDoctorCmd(a),
		newDashCmd(a),
		newMCPCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

// settingsPath resolves the settings file location: the --config flag when
// given, the user config directory otherwise.
func (a *app) settingsPath() (string, error) {
	if a.configFlag != "" {
		return a.configFlag, nil
	}
	return defaultPathFunc()
}

// settings loads the active configuration. A missing file at the default
// location falls back to built-in defaults; a missing file named explicitly
// via --config is an error.
func (a *app) settings() (config.Config, string, error) {
	path, err := a.settingsPath()
	if err != nil {
		return config.Config{}, "", err
	}
	if _, statErr := os.Stat(path); statErr != nil {
		if a.configFlag != "" {
			return config.Config{}, path, fmt.Errorf(messages.ConfigMissingFileFmt, path, statErr)
		}
		return config.Default(), path, nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, path, err
	}
	return *cfg, path, nil
}

// logger builds the slog logger described by the logging settings. Logs go
// to the configured file when one is set and to stderr when the level is
// debug; otherwise they are discarded so command output stays clean.
func (a *app) logger(cfg config.Config, stderr io.Writer) *slog.Logger {
	var level slog.Level
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer
	switch {
	case cfg.Logging.File != "":
		f, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return slog.New(slog.DiscardHandler)
		}
		w = f
	case level == slog.LevelDebug:
		w = stderr
	default:
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// session is the wired-up core shared by the pac-facing commands.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	client *paccli.Client
	dir    *directory.Directory
}

// connect loads settings, builds the logger, and probes the pac CLI.
func (a *app) connect(cmd *cobra.Command) (*session, error) {
	cfg, _, err := a.settings()
	if err != nil {
		return nil, err
	}
	logger := a.logger(cfg, cmd.ErrOrStderr())
	client, err := newClientFunc(cfg, logger)
	if err != nil {
		return nil, err
	}
	return &session{
		cfg:    cfg,
		logger: logger,
		client: client,
		dir:    directory.New(client, logger),
	}, nil
}
