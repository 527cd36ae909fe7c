package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

func newTokensCmd() *cobra.Command {
	var asJSON bool
	var withLines bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the tokens of a .java file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]
			src, err := readJavaFile(filename)
			if err != nil {
				return err
			}

			opts, err := settings.ParserOptions()
			if err != nil {
				return err
			}
			log := diag.NewLog(filename)
			opts = append(opts, parser.WithFile(filename), parser.WithHandler(log))
			tokens := parser.Tokens(src, opts...)

			var fopts []format.Option
			if withLines {
				fopts = append(fopts, format.WithLines(parser.NewLineMap(src)))
			}
			out := cmd.OutOrStdout()
			if asJSON {
				err = format.EncodeTokens(out, tokens, fopts...)
			} else {
				err = format.NewTokenLineEncoder(out, fopts...).Encode(tokens)
			}
			if err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}

			return report(cmd.ErrOrStderr(), src, log)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print tokens as JSON")
	cmd.Flags().BoolVarP(&withLines, "lines", "l", false, "print line and column positions")

	return cmd
}

func readJavaFile(filename string) (string, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return "", fmt.Errorf("read java file: %w", err)
	}
	return string(data), nil
}
