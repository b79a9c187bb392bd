package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/messages"
	"github.com/powerdesk/powerdesk/internal/paccli"
)

func newSolutionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   messages.SolutionUse,
		Short: messages.SolutionShort,
	}
	cmd.AddCommand(
		newSolutionListCmd(a),
		newSolutionExportCmd(a),
		newSolutionImportCmd(a),
	)
	return cmd
}

func newSolutionListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.SolutionListUse,
		Short: messages.SolutionListShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			records, err := sess.client.ListSolutions(cmd.Context())
			if err != nil {
				return err
			}
			printSolutions(cmd.OutOrStdout(), records)
			return nil
		},
	}
}

func newSolutionExportCmd(a *app) *cobra.Command {
	var name string
	var path string
	var managed bool

	cmd := &cobra.Command{
		Use:   messages.SolutionExportUse,
		Short: messages.SolutionExportShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if name == "" || path == "" {
				if !isTerminal() {
					return fmt.Errorf(messages.SolutionExportNeedsArgs)
				}
				if err := promptExportArgs(&name, &path); err != nil {
					return err
				}
			}

			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ok, err := sess.client.ExportSolution(cmd.Context(), name, path, managed)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf(messages.SolutionExportFailedFmt, name)
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.SolutionExportedFmt, name, path)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", messages.SolutionFlagName)
	cmd.Flags().StringVar(&path, "path", "", messages.SolutionFlagPath)
	cmd.Flags().BoolVar(&managed, "managed", false, messages.SolutionFlagManaged)
	return cmd
}

func newSolutionImportCmd(a *app) *cobra.Command {
	var publishChanges bool

	cmd := &cobra.Command{
		Use:   messages.SolutionImportUse,
		Short: messages.SolutionImportShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ok, err := sess.client.ImportSolution(cmd.Context(), args[0], publishChanges)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf(messages.SolutionImportFailedFmt, args[0])
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), messages.SolutionImportedFmt, args[0])
			return nil
		},
	}

	cmd.Flags().BoolVar(&publishChanges, "publish-changes", false, messages.SolutionFlagPublish)
	return cmd
}

// promptExportArgs fills in missing export arguments interactively.
func promptExportArgs(name, path *string) error {
	var fields []huh.Field
	if *name == "" {
		fields = append(fields, huh.NewInput().Title(messages.SolutionExportPromptName).Value(name))
	}
	if *path == "" {
		fields = append(fields, huh.NewInput().Title(messages.SolutionExportPromptPath).Value(path))
	}
	return runSelectForm(huh.NewForm(huh.NewGroup(fields...)))
}

func printSolutions(out io.Writer, records []paccli.Record) {
	w := tabwriter.NewWriter(out, 0, 8, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "UNIQUE NAME\tDISPLAY NAME\tVERSION\tMANAGED")
	for _, record := range records {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			stringField(record, "SolutionUniqueName"),
			stringField(record, "FriendlyName"),
			stringField(record, "VersionNumber"),
			stringField(record, "IsManaged"),
		)
	}
	_ = w.Flush()
	_, _ = fmt.Fprintf(out, messages.SolutionLoadedFmt, len(records))
}

// stringField renders a record field for display, tolerating missing keys
// and non-string JSON values.
func stringField(record paccli.Record, key string) string {
	value, ok := record[key]
	if !ok || value == nil {
		return ""
	}
	if s, ok := value.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", value)
}
