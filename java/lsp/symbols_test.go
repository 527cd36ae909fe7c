package lsp

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type symbolSummary struct {
	Name       string
	Kind       protocol.SymbolKind
	Detail     string
	Deprecated bool
	Children   []symbolSummary
}

func summarize(symbols []protocol.DocumentSymbol) []symbolSummary {
	var out []symbolSummary
	for _, s := range symbols {
		sum := symbolSummary{Name: s.Name, Kind: s.Kind, Children: summarize(s.Children)}
		if s.Detail != nil {
			sum.Detail = *s.Detail
		}
		if s.Deprecated != nil {
			sum.Deprecated = *s.Deprecated
		}
		out = append(out, sum)
	}
	return out
}

func TestDocumentSymbols(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []symbolSummary
	}{
		{
			name:  "class members",
			input: "class A { int x, y; A() {} void m() {} interface I {} }",
			want: []symbolSummary{{
				Name: "A", Kind: protocol.SymbolKindClass, Detail: "class",
				Children: []symbolSummary{
					{Name: "x", Kind: protocol.SymbolKindField},
					{Name: "y", Kind: protocol.SymbolKindField},
					{Name: "A", Kind: protocol.SymbolKindConstructor},
					{Name: "m", Kind: protocol.SymbolKindMethod},
					{Name: "I", Kind: protocol.SymbolKindInterface, Detail: "interface"},
				},
			}},
		},
		{
			name:  "deprecated enum",
			input: "/** @deprecated */\nenum E { A, B }",
			want: []symbolSummary{{
				Name: "E", Kind: protocol.SymbolKindEnum, Detail: "enum", Deprecated: true,
				Children: []symbolSummary{
					{Name: "A", Kind: protocol.SymbolKindEnumMember},
					{Name: "B", Kind: protocol.SymbolKindEnumMember},
				},
			}},
		},
		{
			name:  "record and annotation",
			input: "record R(int a) {} @interface N {}",
			want: []symbolSummary{
				{
					Name: "R", Kind: protocol.SymbolKindStruct, Detail: "record",
					Children: []symbolSummary{{Name: "a", Kind: protocol.SymbolKindField}},
				},
				{Name: "N", Kind: protocol.SymbolKindInterface, Detail: "@interface"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseFile("A.java", tt.input)
			got := summarize(documentSymbols(f))
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("documentSymbols(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestDocumentSymbolsModule(t *testing.T) {
	f := ParseFile("module-info.java", "module com.example.app { requires java.base; }")
	got := summarize(documentSymbols(f))
	want := []symbolSummary{{Name: "com.example.app", Kind: protocol.SymbolKindModule, Detail: "module"}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("documentSymbols mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentSymbolRanges(t *testing.T) {
	f := ParseFile("A.java", "class A {\n  int x;\n}\n")
	symbols := documentSymbols(f)
	if len(symbols) != 1 || len(symbols[0].Children) != 1 {
		t.Fatalf("documentSymbols = %+v, want one class with one field", symbols)
	}
	wantClass := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 0},
		End:   protocol.Position{Line: 2, Character: 1},
	}
	if symbols[0].Range != wantClass {
		t.Errorf("class Range = %+v, want %+v", symbols[0].Range, wantClass)
	}
	wantField := protocol.Range{
		Start: protocol.Position{Line: 1, Character: 2},
		End:   protocol.Position{Line: 1, Character: 8},
	}
	if got := symbols[0].Children[0].Range; got != wantField {
		t.Errorf("field Range = %+v, want %+v", got, wantField)
	}
}
