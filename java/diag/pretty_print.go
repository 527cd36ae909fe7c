package diag

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	titleColor    = color.New(color.Bold)
	arrowColor    = color.New(color.FgCyan, color.Bold)
	filePathColor = color.New(color.Underline)
	lineNumColor  = color.New(color.FgCyan, color.Bold)
)

func severityColor(s Severity) *color.Color {
	switch s {
	case Error:
		return color.New(color.FgRed, color.Bold)
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	}
	return color.New(color.FgBlue, color.Bold)
}

// PrettyPrint writes d with the offending source line and a caret under the
// reported position. Colors are disabled when NO_COLOR is set.
func PrettyPrint(w io.Writer, src string, d Diagnostic) {
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
	sev := severityColor(d.Severity)

	sev.Fprintf(w, "%s", d.Severity)
	titleColor.Fprintf(w, ": %s\n", d.Message())

	if d.Pos == NoPos || d.Pos > len(src) {
		if d.File != "" {
			arrowColor.Fprintf(w, "  --> ")
			filePathColor.Fprintf(w, "%s\n", d.File)
		}
		return
	}

	line, col := LineColumn(src, d.Pos)
	arrowColor.Fprintf(w, "  --> ")
	filePathColor.Fprintf(w, "%s:%d:%d\n", d.File, line, col)

	lines := strings.Split(src, "\n")
	text := strings.TrimRight(lines[line-1], "\r")
	width := len(fmt.Sprint(line))

	lineNumColor.Fprintf(w, "%s | \n", strings.Repeat(" ", width))
	lineNumColor.Fprintf(w, "%*d | ", width, line)
	fmt.Fprintf(w, "%s\n", text)

	n := 1
	if d.End > d.Pos {
		endLine, endCol := LineColumn(src, d.End)
		if endLine == line {
			n = endCol - col
		}
	}
	lineNumColor.Fprintf(w, "%s | ", strings.Repeat(" ", width))
	fmt.Fprint(w, caretIndent(text, col-1))
	sev.Fprintf(w, "%s\n", strings.Repeat("^", n))
}

// caretIndent reproduces tabs from the source line so the caret lines up.
func caretIndent(line string, n int) string {
	if n > len(line) {
		n = len(line)
	}
	var b strings.Builder
	for _, c := range line[:n] {
		if c == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

// LineColumn converts a byte offset to a 1-based line and column.
func LineColumn(src string, pos int) (line, col int) {
	if pos > len(src) {
		pos = len(src)
	}
	line = 1 + strings.Count(src[:pos], "\n")
	start := strings.LastIndexByte(src[:pos], '\n') + 1
	return line, pos - start + 1
}
