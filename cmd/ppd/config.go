package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/config"
	"github.com/powerdesk/powerdesk/internal/messages"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.ConfigUse,
		Short: messages.ConfigShort,
	}
	cmd.AddCommand(newConfigInitCmd(a), newConfigShowCmd(a))
	return cmd
}

func newConfigInitCmd(a *app) *cobra.Command {
	var force bool
	var preview bool

	cmd := &cobra.Command{
		Use:   messages.ConfigInitUse,
		Short: messages.ConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			path, err := a.settingsPath()
			if err != nil {
				return err
			}

			existing, readErr := os.ReadFile(path)
			exists := readErr == nil

			if preview {
				if !exists {
					_, _ = fmt.Fprint(out, string(config.Template()))
					return nil
				}
				diff := config.DiffTemplate(existing)
				if diff == "" {
					_, _ = fmt.Fprintln(out, messages.ConfigUpToDate)
					return nil
				}
				_, _ = fmt.Fprintln(out, diff)
				return nil
			}

			if exists && !force {
				return errors.New(messages.ConfigInitExists)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
			}
			if err := os.WriteFile(path, config.Template(), 0o644); err != nil {
				return fmt.Errorf(messages.ConfigWriteFailedFmt, path, err)
			}
			_, _ = fmt.Fprintf(out, messages.ConfigWrittenFmt, path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, messages.ConfigFlagForce)
	cmd.Flags().BoolVar(&preview, "preview", false, messages.ConfigFlagPreview)
	return cmd
}

func newConfigShowCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.ConfigShowUse,
		Short: messages.ConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			cfg, path, err := a.settings()
			if err != nil {
				return err
			}

			if _, statErr := os.Stat(path); statErr != nil {
				_, _ = fmt.Fprint(out, messages.ConfigDefaults)
			} else {
				_, _ = fmt.Fprintf(out, messages.ConfigSourceFmt, path)
			}

			data, err := toml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, _ = out.Write(data)
			return nil
		},
	}
}
