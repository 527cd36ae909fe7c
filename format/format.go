// Package format encodes syntax trees, token streams and diagnostics for
// display and for consumption by other tools.
package format

import (
	"github.com/dhamidi/jparse/java/parser"
)

// Option configures an encoder.
type Option func(*options)

type options struct {
	ends   parser.EndPosTable
	lines  *parser.LineMap
	indent string
}

// WithEndPositions adds the end offset of every node, taken from table.
func WithEndPositions(table parser.EndPosTable) Option {
	return func(o *options) {
		o.ends = table
	}
}

// WithLines adds 1-based line and column spans computed with lines.
func WithLines(lines *parser.LineMap) Option {
	return func(o *options) {
		o.lines = lines
	}
}

// WithIndent sets the indentation of JSON output. An empty indent
// produces compact output.
func WithIndent(indent string) Option {
	return func(o *options) {
		o.indent = indent
	}
}

func newOptions(opts []Option) *options {
	o := &options{indent: "  "}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
