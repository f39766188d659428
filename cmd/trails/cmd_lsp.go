package main

import (
	"github.com/dhamidi/trails/query/lang"
	"github.com/dhamidi/trails/query/langserver"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

const version = "0.1.0"

func newLSPCmd() *cobra.Command {
	var relations []string
	var verbose int

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server on stdin/stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(verbose, nil)

			var source lang.RelationSource
			if len(relations) > 0 {
				source = func() []string { return relations }
			}

			return langserver.NewServer(version, source).RunStdio()
		},
	}

	cmd.Flags().StringSliceVarP(&relations, "relations", "r", nil, "relation names available to 'from' (default: TRAILS_RELATIONS)")
	cmd.Flags().IntVarP(&verbose, "verbose", "v", 0, "log verbosity")

	return cmd
}
