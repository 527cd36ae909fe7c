package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/format"
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

func newParseCmd() *cobra.Command {
	var outputFormat string
	var includePositions bool
	var what string

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a .java file and dump the syntax tree",
		Long: `Parse a .java file and dump the syntax tree.

With --as, the file holds a single expression, type or statement instead of
a compilation unit.`,
		Args: cobra.ExactArgs(1),
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
			if includePositions {
				opts = append(opts, parser.WithEndPositions())
			}

			var unit *parser.Unit
			switch what {
			case "unit":
				unit = parser.Parse(src, opts...)
			case "expression":
				unit = parser.ParseExpression(src, opts...)
			case "type":
				unit = parser.ParseType(src, opts...)
			case "statement":
				unit = parser.ParseStatement(src, opts...)
			default:
				return fmt.Errorf("unknown input kind: %s", what)
			}

			if err := writeTree(cmd.OutOrStdout(), unit, outputFormat, includePositions); err != nil {
				return err
			}
			return report(cmd.ErrOrStderr(), src, log)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "format", "f", "json", "output format (json, tree)")
	cmd.Flags().BoolVar(&includePositions, "positions", false, "include end positions and line spans")
	cmd.Flags().StringVar(&what, "as", "unit", "input kind (unit, expression, type, statement)")

	return cmd
}

func writeTree(w io.Writer, unit *parser.Unit, outputFormat string, positions bool) error {
	switch outputFormat {
	case "json":
		opts := []format.Option{format.WithIndent("  ")}
		if positions {
			opts = append(opts, format.WithEndPositions(unit.EndPos), format.WithLines(unit.Lines))
		}
		if err := format.EncodeTree(w, unit.Tree, opts...); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	case "tree":
		if positions {
			fmt.Fprintln(w, unit.Tree.StringWithPositions(unit.EndPos))
		} else {
			fmt.Fprintln(w, unit.Tree.String())
		}
	default:
		return fmt.Errorf("unknown format: %s", outputFormat)
	}
	return nil
}

// report prints the diagnostics in log and returns an error when any of
// them is an error.
func report(w io.Writer, src string, log *diag.Log) error {
	for _, d := range log.Sorted() {
		diag.PrettyPrint(w, src, d)
	}
	return log.Result()
}
