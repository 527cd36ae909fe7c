package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/config"
	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/lsp"
)

func newCheckCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "check <path>...",
		Short: "Report syntax errors in .java files",
		Long: `Report syntax errors in .java files.

Each path is a .java file or a directory searched for .java files. Files are
parsed concurrently. With --watch, files are checked again whenever they
change.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := settings.ParserOptions()
			if err != nil {
				return err
			}

			var workspaces []*lsp.Workspace
			for _, path := range args {
				workspaces = append(workspaces, lsp.NewWorkspace(config.AppFs, path,
					lsp.WithParserOptions(opts...),
					lsp.WithConcurrency(settings.Concurrency)))
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			var files []*lsp.File
			for _, w := range workspaces {
				if err := w.ScanAll(ctx); err != nil {
					return err
				}
				files = append(files, w.Files()...)
			}
			out := cmd.OutOrStdout()
			errors := printFiles(out, files, asJSON)
			fmt.Fprintf(cmd.ErrOrStderr(), "%d files checked, %d errors\n", len(files), errors)

			if !settings.Watch {
				if errors > 0 {
					return fmt.Errorf("%d syntax errors", errors)
				}
				return nil
			}
			return watch(ctx, out, workspaces, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print diagnostics as JSON")
	cmd.Flags().Bool("watch", false, "check files again when they change")
	cmd.Flags().Int("concurrency", 8, "number of files parsed at once")

	return cmd
}

// printFiles prints the diagnostics of files and returns the number of
// errors among them.
func printFiles(w io.Writer, files []*lsp.File, asJSON bool) int {
	errors := 0
	var all []diag.Diagnostic
	for _, f := range files {
		for _, d := range f.Diagnostics {
			if d.Severity == diag.Error {
				errors++
			}
			if !asJSON {
				diag.PrettyPrint(w, f.Content, d)
			}
		}
		all = append(all, f.Diagnostics...)
	}
	if asJSON {
		if err := format.EncodeDiagnostics(w, all); err != nil {
			fmt.Fprintf(os.Stderr, "encode diagnostics: %s\n", err)
		}
	}
	return errors
}

func watch(ctx context.Context, out io.Writer, workspaces []*lsp.Workspace, asJSON bool) error {
	changed := make(chan []*lsp.File)
	for _, w := range workspaces {
		watcher, err := lsp.NewWatcher(w.Root(), func(paths []string) {
			var files []*lsp.File
			for _, path := range paths {
				f, err := w.ScanFile(path)
				if err != nil {
					w.Remove(path)
					continue
				}
				files = append(files, f)
			}
			select {
			case changed <- files:
			case <-ctx.Done():
			}
		})
		if err != nil {
			return err
		}
		watcher.Start()
		defer watcher.Stop()
	}

	for {
		select {
		case files := <-changed:
			errors := printFiles(out, files, asJSON)
			fmt.Fprintf(os.Stderr, "%d files changed, %d errors\n", len(files), errors)
		case <-ctx.Done():
			return nil
		}
	}
}
