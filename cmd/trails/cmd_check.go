package main

import (
	"fmt"

	"github.com/dhamidi/trails/query/lang"

	"github.com/spf13/cobra"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a query and report diagnostics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			engine := lang.NewEngine(lang.Default(), nil)
			diagnostics := engine.Diagnostics(string(data))
			for _, d := range diagnostics {
				fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d: %s\n",
					args[0], d.Span.Start.Line, d.Span.Start.Column, d.Message)
			}
			if len(diagnostics) > 0 {
				return fmt.Errorf("%d problem(s) found", len(diagnostics))
			}
			return nil
		},
	}

	return cmd
}
