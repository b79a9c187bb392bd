package main

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/directory"
	"github.com/powerdesk/powerdesk/internal/messages"
)

var runSelectForm = func(form *huh.Form) error { return form.Run() }

func newEnvCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.EnvUse,
		Short: messages.EnvShort,
	}
	cmd.AddCommand(
		newEnvListCmd(a),
		newEnvRefreshCmd(a),
		newEnvSelectCmd(a),
		newEnvSearchCmd(a),
		newEnvSummaryCmd(a),
	)
	return cmd
}

func newEnvListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvListUse,
		Short: messages.EnvListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !sess.dir.Refresh(cmd.Context()) {
				return errors.New(messages.EnvRefreshFail)
			}
			printEnvironments(cmd.OutOrStdout(), sess.dir.Environments(), sess.dir)
			return nil
		},
	}
}

func newEnvRefreshCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvRefreshUse,
		Short: messages.EnvRefreshShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !sess.dir.Refresh(cmd.Context()) {
				return errors.New(messages.EnvRefreshFail)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.EnvRefreshedFmt, len(sess.dir.Environments()))
			return nil
		},
	}
}

func newEnvSelectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvSelectUse,
		Short: messages.EnvSelectShort,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !sess.dir.Refresh(cmd.Context()) {
				return errors.New(messages.EnvRefreshFail)
			}
			catalog := sess.dir.Environments()
			if len(catalog) == 0 {
				return errors.New(messages.EnvSelectCatalogEmpty)
			}

			var target directory.Environment
			if len(args) == 1 {
				env, ok := matchEnvironment(catalog, args[0])
				if !ok {
					return fmt.Errorf(messages.EnvSelectNoMatchFmt, args[0])
				}
				target = env
			} else {
				env, err := promptEnvironment(catalog)
				if err != nil {
					return err
				}
				target = env
			}

			if !sess.dir.Select(cmd.Context(), target) {
				return fmt.Errorf(messages.EnvSelectFailedFmt, target.DisplayName)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.EnvSelectedFmt, target.DisplayName)
			return nil
		},
	}
}

func newEnvSearchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvSearchUse,
		Short: messages.EnvSearchShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !sess.dir.Refresh(cmd.Context()) {
				return errors.New(messages.EnvRefreshFail)
			}
			matches := sess.dir.Search(args[0])
			if len(matches) == 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.EnvSearchNoneFmt, args[0])
				return nil
			}
			printEnvironments(cmd.OutOrStdout(), matches, sess.dir)
			return nil
		},
	}
}

func newEnvSummaryCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.EnvSummaryUse,
		Short: messages.EnvSummaryShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			if !sess.dir.Refresh(cmd.Context()) {
				return errors.New(messages.EnvRefreshFail)
			}
			printSummary(cmd.OutOrStdout(), sess.dir.Summary())
			return nil
		},
	}
}

// matchEnvironment finds the catalog entry for a URL or a name. URL matches
// are exact; name and display name matches are case-insensitive.
func matchEnvironment(catalog []directory.Environment, arg string) (directory.Environment, bool) {
	for _, env := range catalog {
		if env.URL == arg {
			return env, true
		}
	}
	for _, env := range catalog {
		if strings.EqualFold(env.Name, arg) || strings.EqualFold(env.DisplayName, arg) {
			return env, true
		}
	}
	return directory.Environment{}, false
}

// promptEnvironment renders an interactive picker over the catalog.
func promptEnvironment(catalog []directory.Environment) (directory.Environment, error) {
	if !isTerminal() {
		return directory.Environment{}, errors.New(messages.EnvSelectNeedsTerminal)
	}

	opts := make([]huh.Option[int], len(catalog))
	for i, env := range catalog {
		label := env.DisplayName
		if label == "" {
			label = env.Name
		}
		if env.Type != "" {
			label = fmt.Sprintf("%s (%s)", label, env.Type)
		}
		opts[i] = huh.NewOption(label, i)
	}

	var picked int
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title(messages.EnvSelectPrompt).
			Options(opts...).
			Value(&picked),
	))
	if err := runSelectForm(form); err != nil {
		return directory.Environment{}, err
	}
	return catalog[picked], nil
}

func printEnvironments(out io.Writer, envs []directory.Environment, dir *directory.Directory) {
	current, hasCurrent := dir.Current()

	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "  NAME\tDISPLAY NAME\tTYPE\tREGION\tSTATE\tCREATED")
	for _, env := range envs {
		marker := " "
		if hasCurrent && env.URL == current.URL {
			marker = color.GreenString("*")
		}
		created := ""
		if env.CreatedAt != nil {
			created = env.CreatedAt.Format(time.DateOnly)
		}
		_, _ = fmt.Fprintf(w, "%s %s\t%s\t%s\t%s\t%s\t%s\n",
			marker, env.Name, env.DisplayName, env.Type, env.Region, env.State, created)
	}
	_ = w.Flush()
}

func printSummary(out io.Writer, summary directory.Summary) {
	_, _ = fmt.Fprintf(out, messages.EnvSummaryTotalFmt, summary.Total)
	printBuckets(out, messages.EnvSummaryByTypeHeader, summary.ByType)
	printBuckets(out, messages.EnvSummaryByRegionHdr, summary.ByRegion)
	printBuckets(out, messages.EnvSummaryByStateHeader, summary.ByState)
}

func printBuckets(out io.Writer, header string, buckets map[string]int) {
	if len(buckets) == 0 {
		return
	}
	keys := make([]string, 0, len(buckets))
	for key := range buckets {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	_, _ = fmt.Fprintln(out, header)
	for _, key := range keys {
		_, _ = fmt.Fprintf(out, "  %s: %d\n", key, buckets[key])
	}
}
