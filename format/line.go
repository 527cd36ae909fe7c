package format

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/jparse/java/parser"
)

// TokenLineEncoder writes one token per line: kind, span and payload,
// separated by tabs.
type TokenLineEncoder struct {
	w    io.Writer
	opts *options
}

func NewTokenLineEncoder(w io.Writer, opts ...Option) *TokenLineEncoder {
	return &TokenLineEncoder{w: w, opts: newOptions(opts)}
}

func (e *TokenLineEncoder) Encode(tokens []parser.Token) error {
	text, err := e.MarshalText(tokens)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *TokenLineEncoder) MarshalText(tokens []parser.Token) ([]byte, error) {
	var sb strings.Builder
	for i := range tokens {
		t := &tokens[i]
		fmt.Fprintf(&sb, "%s\t%s\t%s\n", t.Kind, e.span(t), payload(t))
	}
	return []byte(sb.String()), nil
}

func (e *TokenLineEncoder) span(t *parser.Token) string {
	if lines := e.opts.lines; lines != nil {
		return fmt.Sprintf("%d:%d-%d:%d",
			lines.Line(t.Pos), lines.Column(t.Pos),
			lines.Line(t.EndPos), lines.Column(t.EndPos))
	}
	return strconv.Itoa(t.Pos) + "-" + strconv.Itoa(t.EndPos)
}

func payload(t *parser.Token) string {
	switch {
	case t.Kind == parser.TokenIdent:
		return t.Name
	case t.Kind == parser.TokenStringLiteral || t.Kind == parser.TokenCharLiteral:
		return strconv.Quote(t.StringVal)
	case t.Kind.IsLiteral() && t.Kind < parser.TokenTrue:
		if t.Radix != 10 {
			return t.StringVal + " radix=" + strconv.Itoa(t.Radix)
		}
		return t.StringVal
	}
	return ""
}
