package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jparse/java/parser"
)

// documentSymbols lists the type, module, method and field declarations of
// f as a tree.
func documentSymbols(f *File) []protocol.DocumentSymbol {
	if f.Unit.Tree == nil {
		return nil
	}
	return symbolsOf(f, f.Unit.Tree.Children, "")
}

func symbolsOf(f *File, nodes []*parser.Node, owner string) []protocol.DocumentSymbol {
	var symbols []protocol.DocumentSymbol
	for _, n := range nodes {
		if n == nil {
			continue
		}
		kind, ok := symbolKind(n)
		if !ok {
			continue
		}
		name := symbolName(n, owner)
		if name == "" {
			continue
		}

		start, end := parser.Span(f.Unit.EndPos, n)
		rng := toRange(f.Unit.Lines, f.Content, start, end)
		sym := protocol.DocumentSymbol{
			Name:           name,
			Kind:           kind,
			Range:          rng,
			SelectionRange: rng,
		}
		if detail := symbolDetail(n); detail != "" {
			sym.Detail = &detail
		}
		if hasFlag(n, parser.FlagDeprecated) {
			deprecated := true
			sym.Deprecated = &deprecated
		}
		if n.Kind.IsTypeDecl() {
			sym.Children = symbolsOf(f, n.Children, n.Name)
		}
		symbols = append(symbols, sym)
	}
	return symbols
}

func symbolKind(n *parser.Node) (protocol.SymbolKind, bool) {
	switch n.Kind {
	case parser.KindClassDecl:
		return protocol.SymbolKindClass, true
	case parser.KindInterfaceDecl, parser.KindAnnotationDecl:
		return protocol.SymbolKindInterface, true
	case parser.KindEnumDecl:
		return protocol.SymbolKindEnum, true
	case parser.KindRecordDecl:
		return protocol.SymbolKindStruct, true
	case parser.KindModuleDecl:
		return protocol.SymbolKindModule, true
	case parser.KindMethodDecl:
		if n.Name == "<init>" {
			return protocol.SymbolKindConstructor, true
		}
		return protocol.SymbolKindMethod, true
	case parser.KindVarDecl:
		if hasFlag(n, parser.FlagEnum) {
			return protocol.SymbolKindEnumMember, true
		}
		return protocol.SymbolKindField, true
	}
	return 0, false
}

func symbolName(n *parser.Node, owner string) string {
	switch {
	case n.Kind == parser.KindModuleDecl && len(n.Children) > 1:
		return parser.QualifiedName(n.Children[1])
	case n.Kind == parser.KindMethodDecl && n.Name == "<init>":
		return owner
	}
	return n.Name
}

// symbolDetail describes the declaration's keyword, for example
// "interface" or "record".
func symbolDetail(n *parser.Node) string {
	switch n.Kind {
	case parser.KindClassDecl:
		return "class"
	case parser.KindInterfaceDecl:
		return "interface"
	case parser.KindEnumDecl:
		return "enum"
	case parser.KindRecordDecl:
		return "record"
	case parser.KindAnnotationDecl:
		return "@interface"
	case parser.KindModuleDecl:
		return "module"
	}
	return ""
}

// hasFlag reports whether the modifiers of declaration n carry flag.
func hasFlag(n *parser.Node, flag parser.Flags) bool {
	if len(n.Children) == 0 || n.Children[0] == nil || n.Children[0].Kind != parser.KindModifiers {
		return false
	}
	return n.Children[0].Flags&flag != 0
}

// hoverLabel names a declaration for display, for example "class A" or
// "method size".
func hoverLabel(n *parser.Node) string {
	switch n.Kind {
	case parser.KindMethodDecl:
		if n.Name == "<init>" {
			return "constructor"
		}
		return "method " + n.Name
	case parser.KindVarDecl:
		if hasFlag(n, parser.FlagEnum) {
			return "enum constant " + n.Name
		}
		return "field " + n.Name
	case parser.KindPackageDecl:
		return "package " + parser.QualifiedName(n.Children[0])
	case parser.KindModuleDecl:
		return "module " + symbolName(n, "")
	}
	return symbolDetail(n) + " " + n.Name
}
