package main

import (
	"fmt"

	"github.com/dhamidi/trails/query/lang"

	"github.com/spf13/cobra"
)

func newHighlightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Print highlight classes for every token in a query",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			engine := lang.NewEngine(lang.Default(), nil)
			for _, h := range engine.Highlights(string(data)) {
				text := string(data[h.Span.Start.Offset:h.Span.End.Offset])
				fmt.Fprintf(cmd.OutOrStdout(), "%d-%d\t%s\t%s\n",
					h.Span.Start.Offset, h.Span.End.Offset, h.Class, text)
			}
			return nil
		},
	}

	return cmd
}
