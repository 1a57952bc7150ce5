package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"larknotify/internal/notifier"
)

func newTestNotifyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "test-notify",
		Short: "Send a test card to the configured webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := ctx.notifierService()
			if err != nil {
				return err
			}
			if err := svc.Test(cmd.Context()); err != nil {
				if errors.Is(err, notifier.ErrNotConfigured) {
					fmt.Fprintln(cmd.OutOrStdout(), "No webhook configured; set webhook.url in the config file")
				}
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Test notification sent")
			return nil
		},
	}
}
