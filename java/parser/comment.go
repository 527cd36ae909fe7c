package parser

import (
	"strings"
	"sync"
)

type CommentStyle int

const (
	CommentLine CommentStyle = iota
	CommentBlock
	CommentJavadoc
)

func (s CommentStyle) String() string {
	switch s {
	case CommentLine:
		return "LINE"
	case CommentBlock:
		return "BLOCK"
	case CommentJavadoc:
		return "JAVADOC"
	}
	return "UNKNOWN"
}

// Comment is a comment captured by the lexer. Its body text, with the
// comment delimiters and leading '*' adornments removed, is computed on
// first use. A Comment may be read from several goroutines.
type Comment struct {
	Style  CommentStyle
	Pos    int
	EndPos int

	raw string

	once       sync.Once
	text       string
	offsets    []int
	deprecated bool
}

func newComment(style CommentStyle, src string, pos, end int) *Comment {
	return &Comment{Style: style, Pos: pos, EndPos: end, raw: src[pos:end]}
}

// Raw returns the comment exactly as it appears in the source.
func (c *Comment) Raw() string {
	return c.raw
}

// Text returns the comment body.
func (c *Comment) Text() string {
	c.once.Do(c.scan)
	return c.text
}

// SourcePos maps an offset in Text to an offset in the source. Offsets at
// or past the end of the body map to the end of the comment.
func (c *Comment) SourcePos(i int) int {
	c.once.Do(c.scan)
	if i < 0 {
		return c.Pos
	}
	if i >= len(c.offsets) {
		return c.EndPos
	}
	return c.Pos + c.offsets[i]
}

// Deprecated reports whether a line of a Javadoc comment begins with the
// @deprecated tag.
func (c *Comment) Deprecated() bool {
	c.once.Do(c.scan)
	return c.deprecated
}

func (c *Comment) scan() {
	var b strings.Builder
	var offsets []int
	emit := func(ch byte, at int) {
		b.WriteByte(ch)
		offsets = append(offsets, at)
	}

	s := c.raw
	switch c.Style {
	case CommentLine:
		for i := 2; i < len(s); i++ {
			emit(s[i], i)
		}
	case CommentBlock:
		end := len(s)
		if strings.HasSuffix(s, "*/") && len(s) >= 4 {
			end -= 2
		}
		for i := 2; i < end; i++ {
			emit(s[i], i)
		}
	case CommentJavadoc:
		scanJavadocBody(s, emit)
	}

	c.text = b.String()
	c.offsets = offsets
	c.deprecated = c.Style == CommentJavadoc && hasDeprecatedTag(c.text)
}

// scanJavadocBody strips "/**", "*/" and the leading white space and '*'
// run of every line after the first. Line terminators are normalized to
// '\n'.
func scanJavadocBody(s string, emit func(byte, int)) {
	end := len(s)
	if strings.HasSuffix(s, "*/") {
		end -= 2
	}
	i := 3
	for i < end && s[i] == '*' {
		i++
	}
	// Leading white space on the first line is dropped, and so is the
	// first line terminator when nothing else is on that line.
	j := i
	for j < end && isHorizontalSpace(s[j]) {
		j++
	}
	if j < end && (s[j] == '\n' || s[j] == '\r') {
		if s[j] == '\r' && j+1 < end && s[j+1] == '\n' {
			j++
		}
		i = j + 1
		i = skipAdornment(s, i, end)
	} else {
		i = j
	}

	for i < end {
		switch s[i] {
		case '\r':
			emit('\n', i)
			i++
			if i < end && s[i] == '\n' {
				i++
			}
			i = skipAdornment(s, i, end)
		case '\n':
			emit('\n', i)
			i++
			i = skipAdornment(s, i, end)
		default:
			emit(s[i], i)
			i++
		}
	}
}

// skipAdornment skips white space and then a run of '*' at the start of
// a line. When the line has no '*', the white space is kept.
func skipAdornment(s string, i, end int) int {
	j := i
	for j < end && isHorizontalSpace(s[j]) {
		j++
	}
	if j < end && s[j] == '*' {
		for j < end && s[j] == '*' {
			j++
		}
		return j
	}
	if j == end {
		return j
	}
	return i
}

func isHorizontalSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\f'
}

func hasDeprecatedTag(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimLeft(line, " \t\f")
		if !strings.HasPrefix(line, "@deprecated") {
			continue
		}
		rest := line[len("@deprecated"):]
		if rest == "" || strings.IndexByte(" \t\f", rest[0]) >= 0 {
			return true
		}
	}
	return false
}
