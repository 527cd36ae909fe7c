package lsp

import (
	"net/url"
	"path/filepath"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/jparse/java/parser"
)

// Protocol positions are zero-based lines and UTF-16 code unit columns.

func toPosition(lines *parser.LineMap, src string, pos int) protocol.Position {
	pos = max(0, min(pos, len(src)))
	line := lines.Line(pos)
	start := lines.LineStart(line)
	units := 0
	for _, r := range src[start:pos] {
		units += utf16Len(r)
	}
	return protocol.Position{Line: protocol.UInteger(line - 1), Character: protocol.UInteger(units)}
}

func toOffset(lines *parser.LineMap, src string, p protocol.Position) int {
	line := int(p.Line) + 1
	if line > lines.Lines() {
		return len(src)
	}
	pos := lines.LineStart(line)
	for units := 0; pos < len(src) && units < int(p.Character); {
		r, size := utf8.DecodeRuneInString(src[pos:])
		if r == '\n' || r == '\r' {
			break
		}
		units += utf16Len(r)
		pos += size
	}
	return pos
}

func toRange(lines *parser.LineMap, src string, start, end int) protocol.Range {
	if end < start {
		end = start
	}
	return protocol.Range{Start: toPosition(lines, src, start), End: toPosition(lines, src, end)}
}

func utf16Len(r rune) int {
	if n := utf16.RuneLen(r); n > 0 {
		return n
	}
	return 1
}

func uriToPath(uri string) (string, error) {
	if strings.HasPrefix(uri, "file://") {
		parsed, err := url.Parse(uri)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return uri, nil
}

func pathToURI(path string) protocol.DocumentUri {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
