package format

import (
	"io"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

type TokenJSONEncoder struct {
	w    io.Writer
	opts *options
}

func NewTokenJSONEncoder(w io.Writer, opts ...Option) *TokenJSONEncoder {
	return &TokenJSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *TokenJSONEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *TokenJSONEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	data := make([]jsonToken, len(tokens))
	for i := range tokens {
		data[i] = e.tokenToJSON(&tokens[i])
	}
	return marshal(data, e.opts.indent)
}

// EncodeTokens writes tokens to w as a JSON array.
func EncodeTokens(w io.Writer, tokens []parser.Token, opts ...Option) error {
	return NewTokenJSONEncoder(w, opts...).Encode(tokens)
}

type jsonToken struct {
	Kind      string    `json:"kind"`
	Pos       int       `json:"pos"`
	End       int       `json:"end"`
	Span      *jsonSpan `json:"span,omitempty"`
	Name      string    `json:"name,omitempty"`
	Value     string    `json:"value,omitempty"`
	Radix     int       `json:"radix,omitempty"`
	TextBlock bool      `json:"textBlock,omitempty"`
	Comments  []string  `json:"comments,omitempty"`
}

func (e *TokenJSONEncoder) tokenToJSON(t *parser.Token) jsonToken {
	jt := jsonToken{
		Kind:      t.Kind.String(),
		Pos:       t.Pos,
		End:       t.EndPos,
		Name:      t.Name,
		TextBlock: t.TextBlock,
	}
	if t.Kind.IsLiteral() {
		jt.Value = t.StringVal
		if t.Radix != 10 {
			jt.Radix = t.Radix
		}
	}
	if e.opts.lines != nil {
		jt.Span = spanOf(e.opts.lines, t.Pos, t.EndPos)
	}
	for _, c := range t.Comments {
		jt.Comments = append(jt.Comments, c.Style.String())
	}
	return jt
}

type DiagnosticJSONEncoder struct {
	w    io.Writer
	opts *options
}

func NewDiagnosticJSONEncoder(w io.Writer, opts ...Option) *DiagnosticJSONEncoder {
	return &DiagnosticJSONEncoder{w: w, opts: newOptions(opts)}
}

func (e *DiagnosticJSONEncoder) Encode(ds []diag.Diagnostic) error {
	text, err := e.MarshalText(ds)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *DiagnosticJSONEncoder) MarshalText(ds []diag.Diagnostic) ([]byte, error) {
	data := make([]jsonDiagnostic, len(ds))
	for i, d := range ds {
		data[i] = e.diagnosticToJSON(d)
	}
	return marshal(data, e.opts.indent)
}

// EncodeDiagnostics writes ds to w as a JSON array.
func EncodeDiagnostics(w io.Writer, ds []diag.Diagnostic, opts ...Option) error {
	return NewDiagnosticJSONEncoder(w, opts...).Encode(ds)
}

type jsonDiagnostic struct {
	File     string        `json:"file,omitempty"`
	Pos      int           `json:"pos"`
	End      int           `json:"end,omitempty"`
	Position *jsonPosition `json:"position,omitempty"`
	Severity string        `json:"severity"`
	Key      string        `json:"key"`
	Message  string        `json:"message"`
	Syntax   bool          `json:"syntax,omitempty"`
	Level    bool          `json:"sourceLevel,omitempty"`
}

func (e *DiagnosticJSONEncoder) diagnosticToJSON(d diag.Diagnostic) jsonDiagnostic {
	jd := jsonDiagnostic{
		File:     d.File,
		Pos:      d.Pos,
		End:      d.End,
		Severity: d.Severity.String(),
		Key:      string(d.Key),
		Message:  d.Message(),
		Syntax:   d.Flags.Has(diag.Syntax),
		Level:    d.Flags.Has(diag.SourceLevel),
	}
	if e.opts.lines != nil && d.Pos != diag.NoPos {
		jd.Position = &jsonPosition{Line: e.opts.lines.Line(d.Pos), Column: e.opts.lines.Column(d.Pos)}
	}
	return jd
}
