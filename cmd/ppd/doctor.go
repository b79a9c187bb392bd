package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/doctor"
	"github.com/powerdesk/powerdesk/internal/messages"
)

func newDoctorCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DoctorUse,
		Short: messages.DoctorShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprint(out, messages.DoctorHeader)

			path, err := a.settingsPath()
			if err != nil {
				return err
			}

			var results []doctor.Result

			settingsResult, cfg := doctor.CheckSettings(path)
			results = append(results, settingsResult)

			toolResult := doctor.CheckTool(cmd.Context(), cfg.Pac.Executable)
			results = append(results, toolResult)

			// Auth is only meaningful once the tool answers.
			if toolResult.Status == doctor.StatusOK {
				client, err := newClientFunc(cfg, a.logger(cfg, cmd.ErrOrStderr()))
				if err != nil {
					results = append(results, doctor.Result{
						Status:         doctor.StatusWarn,
						CheckName:      messages.DoctorCheckNameAuth,
						Message:        fmt.Sprintf(messages.DoctorToolMissingFmt, err),
						Recommendation: messages.DoctorToolRecommend,
					})
				} else {
					results = append(results, doctor.CheckAuth(cmd.Context(), client))
				}
			}

			problems := 0
			for _, result := range results {
				printResult(out, result)
				if result.Status == doctor.StatusFail {
					problems++
				}
			}
			_, _ = fmt.Fprintln(out)

			if problems > 0 {
				_, _ = fmt.Fprint(out, color.RedString(messages.DoctorProblemsFmt, problems))
				return &SilentExitError{Code: 1}
			}
			_, _ = fmt.Fprint(out, color.GreenString(messages.DoctorAllClear))
			return nil
		},
	}
}

func printResult(out io.Writer, r doctor.Result) {
	var status string
	switch r.Status {
	case doctor.StatusOK:
		status = color.GreenString(messages.DoctorStatusOKLabel)
	case doctor.StatusWarn:
		status = color.YellowString(messages.DoctorStatusWarnLabel)
	case doctor.StatusFail:
		status = color.RedString(messages.DoctorStatusFailLabel)
	}

	_, _ = fmt.Fprintf(out, "%s %s: %s\n", status, r.CheckName, r.Message)
	if r.Recommendation != "" {
		_, _ = fmt.Fprintf(out, messages.DoctorRecommendFmt, r.Recommendation)
	}
}
