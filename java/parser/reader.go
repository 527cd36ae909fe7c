package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/jparse/java/diag"
)

// eoi is the character reported past the end of input.
const eoi rune = -1

// reader walks a source string one logical character at a time, translating
// \uXXXX escapes as it goes. Offsets are byte offsets into buf.
type reader struct {
	buf string

	pos  int  // offset of ch
	next int  // offset after ch, including any escape
	ch   rune // current code point, eoi at end of input

	// unit is the UTF-16 code unit for ch when ch came from an escape that
	// produced a lone surrogate; it equals ch otherwise.
	unit rune

	escaped   bool // ch was produced by a unicode escape
	oddSlash  bool // ch is a raw backslash that escapes the next backslash
	errs      func(pos int, key diag.Key, args ...any)
	sb        []byte
}

func newReader(buf string, errs func(pos int, key diag.Key, args ...any)) *reader {
	r := &reader{buf: buf, errs: errs}
	r.read()
	return r
}

// current returns the character under the cursor.
func (r *reader) current() rune {
	return r.ch
}

// position returns the offset of the current character.
func (r *reader) position() int {
	return r.pos
}

// advance moves to the next logical character and returns it.
func (r *reader) advance() rune {
	r.pos = r.next
	r.read()
	return r.ch
}

// reset repositions the cursor at offset pos, which must be the start of
// a character previously returned by the reader.
func (r *reader) reset(pos int) {
	r.next = pos
	r.oddSlash = false
	r.pos = pos
	r.read()
}

func (r *reader) read() {
	prevOdd := r.oddSlash
	r.escaped = false
	r.oddSlash = false
	if r.next >= len(r.buf) {
		r.pos = len(r.buf)
		r.ch = eoi
		r.unit = eoi
		return
	}
	r.pos = r.next
	c, w := rune(r.buf[r.pos]), 1
	if c >= utf8.RuneSelf {
		c, w = utf8.DecodeRuneInString(r.buf[r.pos:])
	}
	r.next = r.pos + w
	r.ch = c
	r.unit = c
	if c != '\\' {
		return
	}
	if prevOdd {
		// A backslash escaped by the raw backslash before it.
		return
	}
	if !r.unicodeEscape() {
		r.oddSlash = true
	}
}

// unicodeEscape tries to read \u+XXXX starting at r.pos. It reports false
// when no 'u' follows the backslash. A malformed escape is reported and
// consumed; ch stays a backslash.
func (r *reader) unicodeEscape() bool {
	i := r.pos + 1
	for i < len(r.buf) && r.buf[i] == 'u' {
		i++
	}
	if i == r.pos+1 {
		return false
	}
	code := 0
	for k := 0; k < 4; k++ {
		d := -1
		if i < len(r.buf) {
			d = hexDigit(rune(r.buf[i]))
		}
		if d < 0 {
			r.next = i
			r.errs(i, diag.IllegalUnicodeEsc)
			return true
		}
		code = code<<4 | d
		i++
	}
	r.next = i
	r.escaped = true
	r.ch = rune(code)
	r.unit = rune(code)
	if utf16IsHigh(r.ch) {
		r.combineSurrogate()
	}
	return true
}

// combineSurrogate merges an escaped high surrogate with an escaped low
// surrogate that immediately follows it.
func (r *reader) combineSurrogate() {
	i := r.next
	if i+1 >= len(r.buf) || r.buf[i] != '\\' || r.buf[i+1] != 'u' {
		return
	}
	j := i + 1
	for j < len(r.buf) && r.buf[j] == 'u' {
		j++
	}
	if j+4 > len(r.buf) {
		return
	}
	code := 0
	for k := 0; k < 4; k++ {
		d := hexDigit(rune(r.buf[j+k]))
		if d < 0 {
			return
		}
		code = code<<4 | d
	}
	if !utf16IsLow(rune(code)) {
		return
	}
	r.ch = (r.ch-0xD800)<<10 + (rune(code) - 0xDC00) + 0x10000
	r.next = j + 4
}

// peek returns the character after the current one without moving.
func (r *reader) peek() rune {
	saved := *r
	c := r.advance()
	*r = saved
	return c
}

// is reports whether the current character is c.
func (r *reader) is(c rune) bool {
	return r.ch == c
}

// accept advances past c when it is current.
func (r *reader) accept(c rune) bool {
	if r.ch == c {
		r.advance()
		return true
	}
	return false
}

// acceptString advances past s when each of its characters follows.
func (r *reader) acceptString(s string) bool {
	saved := *r
	for _, c := range s {
		if r.ch != c {
			*r = saved
			return false
		}
		r.advance()
	}
	return true
}

// isSurrogate reports whether the current character is a lone surrogate
// produced by an escape.
func (r *reader) isSurrogate() bool {
	return r.unit >= 0xD800 && r.unit <= 0xDFFF && r.ch == r.unit
}

// put appends the current character to the literal buffer.
func (r *reader) put() {
	r.putChar(r.ch)
}

func (r *reader) putChar(c rune) {
	r.sb = utf8.AppendRune(r.sb, c)
}

// putThenNext appends the current character and advances.
func (r *reader) putThenNext() rune {
	r.put()
	return r.advance()
}

func (r *reader) literal() string {
	return string(r.sb)
}

func (r *reader) resetLiteral() {
	r.sb = r.sb[:0]
}

func (r *reader) isEOLN() bool {
	return r.ch == '\n' || r.ch == '\r'
}

func (r *reader) isWhitespace() bool {
	return r.ch == ' ' || r.ch == '\t' || r.ch == '\f'
}

func (r *reader) skipWhitespace() {
	for r.isWhitespace() {
		r.advance()
	}
}

// skipLineTerminator consumes \n, \r or \r\n.
func (r *reader) skipLineTerminator() {
	if r.accept('\r') {
		r.accept('\n')
		return
	}
	r.accept('\n')
}

func hexDigit(c rune) int {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10
	}
	return -1
}

// digitValue returns the value of c in radix, or -1.
func digitValue(c rune, radix int) int {
	var d int
	switch {
	case c >= '0' && c <= '9':
		d = int(c - '0')
	case c >= 'a' && c <= 'z':
		d = int(c-'a') + 10
	case c >= 'A' && c <= 'Z':
		d = int(c-'A') + 10
	case c >= utf8.RuneSelf && unicode.IsDigit(c):
		d = nonASCIIDigit(c)
	default:
		return -1
	}
	if d < radix {
		return d
	}
	return -1
}

func nonASCIIDigit(c rune) int {
	// Unicode decimal digits come in contiguous runs of ten starting at 0.
	for base := c; base > c-10; base-- {
		if unicode.IsDigit(base) && !unicode.IsDigit(base-1) {
			return int(c - base)
		}
	}
	return -1
}

func utf16IsHigh(c rune) bool { return c >= 0xD800 && c <= 0xDBFF }
func utf16IsLow(c rune) bool { return c >= 0xDC00 && c <= 0xDFFF }

// isIdentifierStart reports whether c may begin a Java identifier.
func isIdentifierStart(c rune) bool {
	if c < utf8.RuneSelf {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$'
	}
	return unicode.In(c, unicode.L, unicode.Nl, unicode.Sc, unicode.Pc)
}

// isIdentifierPart reports whether c may continue a Java identifier.
func isIdentifierPart(c rune) bool {
	if c < utf8.RuneSelf {
		return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c == '$' ||
			c >= '0' && c <= '9' || isIdentifierIgnorable(c)
	}
	return unicode.In(c, unicode.L, unicode.Nl, unicode.Sc, unicode.Pc,
		unicode.Nd, unicode.Mn, unicode.Mc, unicode.Cf) || isIdentifierIgnorable(c)
}

// IsIdentifierStart reports whether c may begin a Java identifier.
func IsIdentifierStart(c rune) bool { return isIdentifierStart(c) }

// IsIdentifierPart reports whether c may continue a Java identifier.
func IsIdentifierPart(c rune) bool { return isIdentifierPart(c) }

func isIdentifierIgnorable(c rune) bool {
	return c >= 0 && c <= 8 || c >= 0xE && c <= 0x1B || c >= 0x7F && c <= 0x9F
}
