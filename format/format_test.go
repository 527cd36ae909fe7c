package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
	"github.com/google/go-cmp/cmp"
)

func binaryTree() *parser.Node {
	return &parser.Node{
		Kind: parser.KindBinaryExpr,
		Pos:  2,
		Op:   parser.TokenPlus,
		Children: []*parser.Node{
			{Kind: parser.KindIdentifier, Pos: 0, Name: "a"},
			{Kind: parser.KindLiteral, Pos: 4, Op: parser.TokenIntLiteral, Value: int32(1)},
			nil,
		},
	}
}

func TestEncodeTree(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTree(&buf, binaryTree(), WithIndent("")); err != nil {
		t.Fatalf("EncodeTree() error = %v", err)
	}
	want := `{"kind":"BinaryExpr","pos":2,"op":"+","children":[` +
		`{"kind":"Identifier","pos":0,"name":"a"},` +
		`{"kind":"Literal","pos":4,"op":"IntLiteral","value":1},` +
		`null]}` + "\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("EncodeTree mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeTreeLiteralValues(t *testing.T) {
	tests := []struct {
		name string
		node *parser.Node
		want any
	}{
		{"char", &parser.Node{Kind: parser.KindLiteral, Op: parser.TokenCharLiteral, Value: 'x'}, "x"},
		{"string", &parser.Node{Kind: parser.KindLiteral, Op: parser.TokenStringLiteral, Value: "hi"}, "hi"},
		{"false", &parser.Node{Kind: parser.KindLiteral, Op: parser.TokenFalse, Value: false}, false},
		{"long", &parser.Node{Kind: parser.KindLiteral, Op: parser.TokenLongLiteral, Value: int64(7)}, float64(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := NewASTJSONEncoder(nil).MarshalText(tt.node)
			if err != nil {
				t.Fatalf("MarshalText() error = %v", err)
			}
			var got map[string]any
			if err := json.Unmarshal(text, &got); err != nil {
				t.Fatalf("Unmarshal() error = %v", err)
			}
			if got["value"] != tt.want {
				t.Errorf("value = %#v, want %#v", got["value"], tt.want)
			}
		})
	}
}

func TestEncodeTreePositions(t *testing.T) {
	tree := binaryTree()
	table := parser.NewSimpleEndPosTable()
	table.StoreEnd(tree.Children[0], 1)
	table.StoreEnd(tree.Children[1], 5)

	text, err := NewASTJSONEncoder(nil,
		WithEndPositions(table),
		WithLines(parser.NewLineMap("a + 1")),
	).MarshalText(tree)
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}

	var got astJSONNode
	if err := json.Unmarshal(text, &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if got.End == nil || *got.End != 5 {
		t.Errorf("End = %v, want 5", got.End)
	}
	wantSpan := &jsonSpan{Start: jsonPosition{1, 1}, End: jsonPosition{1, 6}}
	if diff := cmp.Diff(wantSpan, got.Span); diff != "" {
		t.Errorf("Span mismatch (-want +got):\n%s", diff)
	}
	if got.Children[0].End == nil || *got.Children[0].End != 1 {
		t.Errorf("Children[0].End = %v, want 1", got.Children[0].End)
	}
}

func TestEncodeTreeError(t *testing.T) {
	n := &parser.Node{Kind: parser.KindError, Pos: 3, Error: &parser.Error{Key: diag.IllegalStartOfExpr}}
	text, err := NewASTJSONEncoder(nil, WithIndent("")).MarshalText(n)
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if !strings.Contains(string(text), `"error":{"key":"illegal.start.of.expr","message":"illegal start of expression"}`) {
		t.Errorf("MarshalText() = %s, want an error object", text)
	}
}

func TestEncodeTokens(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeTokens(&buf, parser.Tokens("x = 0x1F;"), WithIndent("")); err != nil {
		t.Fatalf("EncodeTokens() error = %v", err)
	}
	var got []jsonToken
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []jsonToken{
		{Kind: "Identifier", Pos: 0, End: 1, Name: "x"},
		{Kind: "=", Pos: 2, End: 3},
		{Kind: "IntLiteral", Pos: 4, End: 8, Value: "1F", Radix: 16},
		{Kind: ";", Pos: 8, End: 9},
		{Kind: "EOF", Pos: 9, End: 9},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenLineEncoder(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTokenLineEncoder(&buf).Encode(parser.Tokens("int x = 'c';")); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	want := "int\t0-3\t\n" +
		"Identifier\t4-5\tx\n" +
		"=\t6-7\t\n" +
		"CharLiteral\t8-11\t\"c\"\n" +
		";\t11-12\t\n" +
		"EOF\t12-12\t\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("Encode mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenLineEncoderLines(t *testing.T) {
	src := "a\n  b"
	var buf bytes.Buffer
	if err := NewTokenLineEncoder(&buf, WithLines(parser.NewLineMap(src))).Encode(parser.Tokens(src)); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if want := "Identifier\t2:3-2:4\tb"; lines[1] != want {
		t.Errorf("lines[1] = %q, want %q", lines[1], want)
	}
}

func TestEncodeDiagnostics(t *testing.T) {
	src := "class A {\n  int x\n}"
	ds := []diag.Diagnostic{
		diag.Errorf(17, diag.Expected, "';'").WithFlags(diag.Syntax),
		{File: "A.java", Pos: diag.NoPos, Severity: diag.Warning, Key: diag.Key("custom")},
	}

	var buf bytes.Buffer
	if err := EncodeDiagnostics(&buf, ds, WithLines(parser.NewLineMap(src))); err != nil {
		t.Fatalf("EncodeDiagnostics() error = %v", err)
	}
	var got []jsonDiagnostic
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	want := []jsonDiagnostic{
		{Pos: 17, Position: &jsonPosition{Line: 2, Column: 8}, Severity: "error", Key: "expected", Message: "';' expected", Syntax: true},
		{File: "A.java", Pos: -1, Severity: "warning", Key: "custom", Message: "custom"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diagnostics mismatch (-want +got):\n%s", diff)
	}
}
