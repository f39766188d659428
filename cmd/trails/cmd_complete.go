package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dhamidi/trails/query/lang"
	"github.com/dhamidi/trails/query/langserver"

	"github.com/spf13/cobra"
)

func newCompleteCmd() *cobra.Command {
	var relations []string
	var format string

	cmd := &cobra.Command{
		Use:   "complete <file> <offset>",
		Short: "List completions at a byte offset in a query",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}
			offset, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("parsing offset %q: %w", args[1], err)
			}
			if offset < 0 || offset > len(data) {
				return fmt.Errorf("offset %d out of range [0, %d]", offset, len(data))
			}

			source := langserver.EnvRelations
			if len(relations) > 0 {
				source = func() []string { return relations }
			}

			engine := lang.NewEngine(lang.Default(), source)
			completions := engine.Complete(string(data), offset)
			if completions == nil {
				return nil
			}

			if format == "json" {
				out, err := json.MarshalIndent(completions.Items, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding completions: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
				return nil
			}

			for _, item := range completions.Items {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", item.Label, item.Category, item.Detail)
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVarP(&relations, "relations", "r", nil, "relation names available to 'from' (default: TRAILS_RELATIONS)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")

	return cmd
}
