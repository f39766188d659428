package main

import (
	"fmt"
	"os"

	"github.com/dhamidi/trails/query/lang"

	"github.com/spf13/cobra"
)

func newRenameCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "rename <file> <old> <new>",
		Short: "Rename a relation identifier throughout a query",
		Long: `Rename rewrites every use of a relation identifier in the query's
from clauses. Queries with syntax errors are left untouched so a
broken parse never corrupts the file.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(args[0])
			if err != nil {
				return fmt.Errorf("reading %s: %w", args[0], err)
			}

			rewritten := lang.RenameRelation(string(data), args[1], args[2])
			if rewritten == string(data) {
				fmt.Fprintln(cmd.ErrOrStderr(), "no changes")
				return nil
			}

			if write && args[0] != "-" {
				if err := os.WriteFile(args[0], []byte(rewritten), 0o644); err != nil {
					return fmt.Errorf("writing %s: %w", args[0], err)
				}
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), rewritten)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "rewrite the file in place instead of printing")

	return cmd
}
