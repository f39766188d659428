package main

import (
	"fmt"

	"github.com/dhamidi/trails/query/lang"

	"github.com/spf13/cobra"
)

func newDocCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doc <word>",
		Short: "Show documentation for a keyword, function, or property",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine := lang.NewEngine(lang.Default(), nil)
			doc, ok := engine.Doc(args[0])
			if !ok {
				return fmt.Errorf("no documentation for %q", args[0])
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, doc.Title)
			fmt.Fprintln(out)
			fmt.Fprintln(out, doc.Description)
			if doc.Syntax != "" {
				fmt.Fprintf(out, "\nSyntax: %s\n", doc.Syntax)
			}
			if len(doc.Examples) > 0 {
				fmt.Fprintln(out, "\nExamples:")
				for _, example := range doc.Examples {
					fmt.Fprintf(out, "  %s\n", example)
				}
			}
			if doc.ResultType != "" {
				fmt.Fprintf(out, "\nResult: %s\n", doc.ResultType)
			}
			return nil
		},
	}

	return cmd
}
