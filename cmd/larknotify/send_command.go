package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSendCommand(ctx *commandContext) *cobra.Command {
	flags := &cardFlags{}

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Build a card from flags and deliver it to the configured webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c, err := flags.buildCard(cfg.Card.Language)
			if err != nil {
				return err
			}
			svc, err := ctx.notifierService()
			if err != nil {
				return err
			}
			if err := svc.Send(cmd.Context(), c); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Card sent")
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
