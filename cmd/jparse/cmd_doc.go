package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/javadoc"
	"github.com/dhamidi/jparse/java/parser"
)

func newDocCmd() *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "doc <file> [name]",
		Short: "Show the doc comments of a .java file",
		Long: `Show the doc comments of a .java file.

With no name, lists every documented declaration with its summary. The name
selects a declaration by its dotted path, for example List.add for the
method add of the type List. A nested declaration can also be named by its
simple name.`,
		Args: cobra.RangeArgs(1, 2),
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
			opts = append(opts, parser.WithFile(filename), parser.WithHandler(log), parser.WithDocComments())
			unit := parser.Parse(src, opts...)
			docs := javadoc.NewTable(unit.DocComments, javadoc.WithHandler(log))

			decls := documented(unit.Tree, docs, "")
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				for _, d := range decls {
					fmt.Fprintf(out, "%s\t%s\n", d.path, javadoc.FormatSummary(docs.Get(d.node)))
				}
				return report(cmd.ErrOrStderr(), src, log)
			}

			d := lookupDecl(decls, args[1])
			if d == nil {
				return fmt.Errorf("no documented declaration %s in %s", args[1], filename)
			}
			text := "# " + d.path + "\n\n" + javadoc.Format(docs.Get(d.node)) + "\n"
			if err := printMarkdown(out, text, raw || settings.NoColor); err != nil {
				return err
			}
			return report(cmd.ErrOrStderr(), src, log)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "print Markdown without rendering it")

	return cmd
}

type docDecl struct {
	path string
	node *parser.Node
}

// documented lists the declarations below n that have a doc comment, in
// source order, named by their dotted path from the outermost type.
func documented(n *parser.Node, docs *javadoc.Table, prefix string) []docDecl {
	var out []docDecl
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		name := declName(c)
		if name == "" {
			continue
		}
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}
		if docs.HasComment(c) {
			out = append(out, docDecl{path: path, node: c})
		}
		if c.Kind.IsTypeDecl() {
			out = append(out, documented(c, docs, path)...)
		}
	}
	return out
}

func declName(n *parser.Node) string {
	switch n.Kind {
	case parser.KindMethodDecl, parser.KindVarDecl:
		return n.Name
	case parser.KindModuleDecl:
		return parser.QualifiedName(n.Child(1))
	case parser.KindPackageDecl:
		return parser.QualifiedName(n.Child(0))
	}
	if n.Kind.IsTypeDecl() {
		return n.Name
	}
	return ""
}

func lookupDecl(decls []docDecl, name string) *docDecl {
	for i := range decls {
		if decls[i].path == name {
			return &decls[i]
		}
	}
	for i := range decls {
		if strings.HasSuffix(decls[i].path, "."+name) {
			return &decls[i]
		}
	}
	return nil
}

func printMarkdown(w io.Writer, text string, raw bool) error {
	if raw {
		_, err := io.WriteString(w, text)
		return err
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return err
	}
	rendered, err := r.Render(text)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, rendered)
	return err
}
