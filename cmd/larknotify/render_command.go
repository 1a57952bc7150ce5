package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newRenderCommand(ctx *commandContext) *cobra.Command {
	flags := &cardFlags{}
	var pretty bool

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Build a card from flags and print its JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			c, err := flags.buildCard(cfg.Card.Language)
			if err != nil {
				return err
			}

			indent := pretty || isTerminal(os.Stdout.Fd())
			var raw []byte
			if indent {
				raw, err = c.JSONIndent()
			} else {
				raw, err = c.JSON()
			}
			if err != nil {
				return fmt.Errorf("serialize card: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(raw))
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent the JSON output even when stdout is not a terminal")
	return cmd
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
