package format

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

type ASTJSONEncoder struct {
	w    io.Writer
	opts *options
}

func NewASTJSONEncoder(w io.Writer, opts ...Option) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *ASTJSONEncoder) Encode(node *parser.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(node *parser.Node) ([]byte, error) {
	return marshal(e.nodeToJSON(node), e.opts.indent)
}

// EncodeTree writes n to w as JSON.
func EncodeTree(w io.Writer, n *parser.Node, opts ...Option) error {
	return NewASTJSONEncoder(w, opts...).Encode(n)
}

type astJSONNode struct {
	Kind     string         `json:"kind"`
	Pos      int            `json:"pos"`
	End      *int           `json:"end,omitempty"`
	Span     *jsonSpan      `json:"span,omitempty"`
	Name     string         `json:"name,omitempty"`
	Op       string         `json:"op,omitempty"`
	Value    any            `json:"value,omitempty"`
	Flags    string         `json:"flags,omitempty"`
	Error    *astJSONError  `json:"error,omitempty"`
	Children []*astJSONNode `json:"children,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

type astJSONError struct {
	Key     string `json:"key"`
	Message string `json:"message"`
}

// nodeToJSON converts n. Absent children stay in place as null so that
// child positions keep their meaning.
func (e *ASTJSONEncoder) nodeToJSON(n *parser.Node) *astJSONNode {
	if n == nil {
		return nil
	}
	jn := &astJSONNode{
		Kind:  n.Kind.String(),
		Pos:   n.Pos,
		Name:  n.Name,
		Value: literalValue(n),
		Flags: n.Flags.String(),
	}
	if n.Op != parser.TokenEOF {
		jn.Op = n.Op.String()
	}

	if e.opts.ends != nil {
		end := parser.EndPos(e.opts.ends, n)
		jn.End = &end
	}
	if lines := e.opts.lines; lines != nil && n.Pos != diag.NoPos {
		start, end := parser.Span(e.opts.ends, n)
		jn.Span = spanOf(lines, start, end)
	}

	if n.Error != nil {
		jn.Error = &astJSONError{Key: string(n.Error.Key), Message: n.Error.Message()}
	}

	if len(n.Children) > 0 {
		jn.Children = make([]*astJSONNode, len(n.Children))
		for i, child := range n.Children {
			jn.Children[i] = e.nodeToJSON(child)
		}
	}

	return jn
}

// literalValue returns the constant of a literal in a form JSON can hold.
// Characters are written as one-character strings.
func literalValue(n *parser.Node) any {
	if n.Kind != parser.KindLiteral || n.Value == nil {
		return nil
	}
	switch v := n.Value.(type) {
	case rune:
		if n.Op == parser.TokenCharLiteral {
			return string(v)
		}
		return v
	case float32:
		if math.IsInf(float64(v), 0) || math.IsNaN(float64(v)) {
			return fmt.Sprint(v)
		}
	case float64:
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return fmt.Sprint(v)
		}
	}
	return n.Value
}

func spanOf(lines *parser.LineMap, start, end int) *jsonSpan {
	return &jsonSpan{
		Start: jsonPosition{Line: lines.Line(start), Column: lines.Column(start)},
		End:   jsonPosition{Line: lines.Line(end), Column: lines.Column(end)},
	}
}

func marshal(v any, indent string) ([]byte, error) {
	if indent == "" {
		return json.Marshal(v)
	}
	return json.MarshalIndent(v, "", indent)
}
