package main

import (
	"fmt"
	"strings"

	"assistant/internal/app/command"

	"github.com/spf13/cobra"
)

func newAskCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ask <command...>",
		Short: "Run one natural-language command and print the response",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := buildServices(cmd.Context(), opts.cfg, opts.logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			resp, err := svc.Command.Execute(cmd.Context(), command.Request{Input: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), resp.Text)
			return nil
		},
	}
}
