package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/dash"
	"github.com/powerdesk/powerdesk/internal/messages"
	"github.com/powerdesk/powerdesk/internal/tasks"
)

var runDash = dash.Run

func newDashCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.DashUse,
		Short: messages.DashShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !isTerminal() {
				return errors.New(messages.DashNeedsTerminal)
			}
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			return runDash(cmd.Context(), sess.dir, tasks.NewRunner(0), sess.cfg.UI)
		},
	}
}
