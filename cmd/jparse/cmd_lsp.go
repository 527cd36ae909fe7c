package main

import (
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/jparse/java/lsp"
)

func newLSPCmd() *cobra.Command {
	var verbosity int
	var logFile string

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start the Language Server Protocol server on stdin and stdout.

The server publishes syntax diagnostics for every .java file in the
workspace and answers hover and document symbol requests from doc
comments.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var path *string
			if logFile != "" {
				path = &logFile
			}
			commonlog.Configure(verbosity, path)

			opts, err := settings.ParserOptions()
			if err != nil {
				return err
			}
			server := lsp.NewServer(version,
				lsp.WithParser(opts...),
				lsp.WithWatch(settings.Watch))
			return server.RunStdio()
		},
	}

	cmd.Flags().IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")
	cmd.Flags().StringVar(&logFile, "log", "", "log to this file instead of stderr")
	cmd.Flags().Bool("watch", false, "reparse files changed outside the editor")

	return cmd
}
