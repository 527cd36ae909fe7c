// Package parser scans and parses Java source code.
//
// # Overview
//
// Source text flows through three stages:
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   reader    │────▶│   Lexer     │────▶│   Parser    │
//	│ (\u escapes)│     │  (tokens)   │     │   (tree)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                           │                   │
//	                           ▼                   ▼
//	                    ┌─────────────┐     ┌─────────────┐
//	                    │  Comments   │     │ EndPosTable │
//	                    │ (doc text)  │     │ DocComments │
//	                    └─────────────┘     └─────────────┘
//
// The reader translates Unicode escapes, the Lexer produces tokens with
// their preceding comments, and the Scanner buffers tokens so the Parser
// can look ahead. The Parser is a recursive-descent parser for the Java
// language up to release 17, with the preview features of that release.
//
// # Parsing
//
// Parse reads a compilation unit:
//
//	unit := parser.Parse(src,
//	    parser.WithFile("Main.java"),
//	    parser.WithEndPositions(),
//	    parser.WithDocComments(),
//	    parser.WithHandler(log),
//	)
//
// ParseExpression, ParseType and ParseStatement parse smaller fragments.
// The returned Unit holds the tree, the end position table, the doc
// comment table and a LineMap for converting offsets to lines.
//
// # Positions
//
// Every Node has a Pos, the byte offset diagnostics report for it:
// the operator of a binary expression, the dot of a field access, the
// first token of a declaration. StartPos computes the leftmost offset a
// node covers. End positions are kept only when WithEndPositions is given;
// EndPos falls back to the children of a node when no entry was stored.
//
// # Errors
//
// Lexical and syntax errors are reported to the diag.Handler given with
// WithHandler. The parser never stops at the first error: it records a
// KindError node, skips to a plausible restart point and continues. At
// most one error is reported per source position.
//
// # Language levels
//
// WithLevel selects the release whose grammar is accepted. Constructs from
// later releases are parsed anyway and reported with a "not supported in
// -source" diagnostic. Contextual keywords such as var, yield, record,
// sealed and permits are scanned as identifiers and recognized by the
// parser in context.
//
// # References
//
// ParseReference parses the signature of a {@link} or @see reference,
// for example java.util.List#add(int, Object).
package parser
