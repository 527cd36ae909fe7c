package parser

import (
	"path/filepath"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// Option configures a Lexer or Parser.
type Option func(*config)

type config struct {
	file          string
	level         source.Level
	preview       bool
	handler       diag.Handler
	docComments   bool
	endPositions  bool
	moduleInfo    bool
	stringFolding bool
}

func newConfig(opts []Option) *config {
	c := &config{
		level:         source.DefaultLevel,
		handler:       diag.Discard,
		stringFolding: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithFile names the source file. A file named module-info.java is parsed
// with the module declaration grammar.
func WithFile(path string) Option {
	return func(c *config) {
		c.file = path
		if filepath.Base(path) == "module-info.java" {
			c.moduleInfo = true
		}
	}
}

// WithLevel sets the language level used to gate features.
func WithLevel(l source.Level) Option {
	return func(c *config) {
		c.level = l
	}
}

// WithPreview enables preview language features.
func WithPreview(enabled bool) Option {
	return func(c *config) {
		c.preview = enabled
	}
}

// WithHandler sets the receiver of lexical and syntax diagnostics.
func WithHandler(h diag.Handler) Option {
	return func(c *config) {
		c.handler = h
	}
}

// WithDocComments records the doc comment of every declaration.
func WithDocComments() Option {
	return func(c *config) {
		c.docComments = true
	}
}

// WithEndPositions records the end position of every node.
func WithEndPositions() Option {
	return func(c *config) {
		c.endPositions = true
	}
}

// WithModuleInfo parses the input as a module-info compilation unit.
func WithModuleInfo() Option {
	return func(c *config) {
		c.moduleInfo = true
	}
}

// WithStringFolding controls folding of concatenated string literals.
// Folding is on by default.
func WithStringFolding(enabled bool) Option {
	return func(c *config) {
		c.stringFolding = enabled
	}
}

func (c *config) previewGate() *source.Preview {
	return &source.Preview{Enabled: c.preview, Level: c.level, Handler: c.handler}
}
