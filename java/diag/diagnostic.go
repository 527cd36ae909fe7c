// Package diag defines the diagnostics reported by the Java scanner, parser
// and doc-comment parser, and the handlers that receive them.
package diag

import (
	"fmt"
	"strings"
)

// NoPos marks a diagnostic that is not tied to a source position.
const NoPos = -1

// Severity classifies a diagnostic.
type Severity int

const (
	Error Severity = iota
	Warning
	Note
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Note:
		return "note"
	}
	return "unknown"
}

// Flag is a set of category bits attached to a diagnostic.
type Flag int

const (
	// Syntax marks diagnostics produced by the lexer and parser.
	Syntax Flag = 1 << iota
	// SourceLevel marks diagnostics caused by a construct that the
	// configured language level or preview setting does not allow.
	SourceLevel
)

func (f Flag) Has(other Flag) bool {
	return f&other == other
}

// Diagnostic is a single report. Pos and End are byte offsets into the
// source; End is zero when the diagnostic covers a single point.
type Diagnostic struct {
	File     string
	Pos      int
	End      int
	Severity Severity
	Flags    Flag
	Key      Key
	Args     []any
}

// Errorf builds an error diagnostic.
func Errorf(pos int, key Key, args ...any) Diagnostic {
	return Diagnostic{Pos: pos, Severity: Error, Key: key, Args: args}
}

// Warnf builds a warning diagnostic.
func Warnf(pos int, key Key, args ...any) Diagnostic {
	return Diagnostic{Pos: pos, Severity: Warning, Key: key, Args: args}
}

// WithFlags returns a copy of d with flags added.
func (d Diagnostic) WithFlags(f Flag) Diagnostic {
	d.Flags |= f
	return d
}

// Message formats the diagnostic's message from its key and arguments.
func (d Diagnostic) Message() string {
	return d.Key.Format(d.Args...)
}

func (d Diagnostic) Error() string {
	var b strings.Builder
	if d.File != "" {
		b.WriteString(d.File)
		b.WriteString(":")
	}
	if d.Pos != NoPos {
		fmt.Fprintf(&b, "%d:", d.Pos)
	}
	if b.Len() > 0 {
		b.WriteString(" ")
	}
	b.WriteString(d.Severity.String())
	b.WriteString(": ")
	b.WriteString(d.Message())
	return b.String()
}

// Handler receives diagnostics.
type Handler interface {
	Report(d Diagnostic)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(Diagnostic)

func (f HandlerFunc) Report(d Diagnostic) {
	f(d)
}

type discard struct{}

func (discard) Report(Diagnostic) {}

// Discard drops every diagnostic.
var Discard Handler = discard{}
