package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dhamidi/trails/query/parser"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var format string
	var positions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a query and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			root := parser.ParseQuery(bytes.NewReader(data), parser.WithFile(args[0])).Finish()
			if root == nil {
				return fmt.Errorf("parsing %s failed", args[0])
			}

			switch format {
			case "json":
				out, err := json.MarshalIndent(root, "", "  ")
				if err != nil {
					return fmt.Errorf("encoding tree: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(out))
			case "text":
				if positions {
					fmt.Fprint(cmd.OutOrStdout(), root.StringWithPositions())
				} else {
					fmt.Fprint(cmd.OutOrStdout(), root.String())
				}
			default:
				return fmt.Errorf("unknown format %q (want text or json)", format)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text or json")
	cmd.Flags().BoolVarP(&positions, "positions", "p", false, "include byte offsets in text output")

	return cmd
}
