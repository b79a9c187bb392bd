package main

import (
	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/mcpserver"
	"github.com/powerdesk/powerdesk/internal/messages"
)

func newMCPCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.MCPUse,
		Short: messages.MCPShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			return mcpserver.New(versionString(), sess.dir, sess.client).Run(cmd.Context())
		},
	}
}
