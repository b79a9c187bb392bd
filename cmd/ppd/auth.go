package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/powerdesk/powerdesk/internal/messages"
)

func newAuthCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.AuthUse,
		Short: messages.AuthShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			ok, err := sess.client.Authenticate(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(messages.AuthFailed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), messages.AuthOK)
			return nil
		},
	}
}

func newWhoAmICmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   messages.WhoAmIUse,
		Short: messages.WhoAmIShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := a.connect(cmd)
			if err != nil {
				return err
			}
			record, err := sess.client.WhoAmI(cmd.Context())
			if err != nil {
				return err
			}
			if record == nil {
				return errors.New(messages.WhoAmIFailed)
			}

			out := cmd.OutOrStdout()
			fields := []struct {
				label string
				key   string
			}{
				{"User", "FriendlyName"},
				{"Principal", "UserPrincipalName"},
				{"User ID", "UserId"},
				{"Organization", "OrganizationFriendlyName"},
				{"Environment", "EnvironmentId"},
				{"URL", "OrganizationUrl"},
			}
			for _, field := range fields {
				if value := stringField(record, field.key); value != "" {
					_, _ = fmt.Fprintf(out, messages.WhoAmIFieldFmt, field.label, value)
				}
			}
			return nil
		},
	}
}
