package parser

import (
	"strings"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// Lexer turns Java source text into tokens. Lexical errors are reported to
// the configured handler; the offending token becomes TokenError and
// scanning continues after it.
type Lexer struct {
	src     string
	cfg     *config
	preview *source.Preview
	r       *reader

	errPos   int
	reported map[int]bool

	// State of the token being scanned.
	tk         TokenKind
	radix      int
	hasEscapes bool
	textBlock  bool
	comments   []*Comment
}

// NewLexer creates a lexer over src.
func NewLexer(src string, opts ...Option) *Lexer {
	return newLexer(src, newConfig(opts))
}

func newLexer(src string, cfg *config) *Lexer {
	l := &Lexer{
		src:      src,
		cfg:      cfg,
		preview:  cfg.previewGate(),
		errPos:   diag.NoPos,
		reported: make(map[int]bool),
	}
	l.r = newReader(src, l.lexError)
	return l
}

// ErrPos returns the position of the last reported error.
func (l *Lexer) ErrPos() int {
	return l.errPos
}

// SetErrPos records pos as the last error position.
func (l *Lexer) SetErrPos(pos int) {
	l.errPos = pos
}

func (l *Lexer) lexError(pos int, key diag.Key, args ...any) {
	l.tk = TokenError
	l.errPos = pos
	if l.reported[pos] {
		return
	}
	l.reported[pos] = true
	d := diag.Errorf(pos, key, args...).WithFlags(diag.Syntax)
	d.File = l.cfg.file
	l.cfg.handler.Report(d)
}

func (l *Lexer) lexWarning(pos int, key diag.Key, args ...any) {
	d := diag.Warnf(pos, key, args...).WithFlags(diag.Syntax)
	d.File = l.cfg.file
	l.cfg.handler.Report(d)
}

func (l *Lexer) checkSourceLevel(pos int, f source.Feature) {
	if l.preview.IsPreview(f) && !l.preview.IsEnabled() {
		l.lexError(pos, diag.PreviewFeatureDisabled, f)
	} else if !f.AllowedInSource(l.cfg.level) {
		min := f.MinLevel()
		l.lexError(pos, diag.FeatureNotSupported, f, l.cfg.level.Name(), min.Name())
	} else if l.preview.IsPreview(f) {
		l.preview.WarnPreview(pos, f)
	}
}

// NextToken scans and returns the next token. At end of input it keeps
// returning TokenEOF.
func (l *Lexer) NextToken() Token {
	r := l.r
	r.resetLiteral()
	l.comments = nil
	l.hasEscapes = false
	l.textBlock = false
	l.radix = 0

	var pos int
	var name string

loop:
	for {
		pos = r.position()
		switch c := r.current(); {
		case c == ' ' || c == '\t' || c == '\f':
			r.skipWhitespace()
		case c == '\n' || c == '\r':
			r.skipLineTerminator()
		case c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '$' || c == '_':
			name = l.scanIdent()
			break loop
		case c == '0':
			r.advance()
			switch {
			case r.is('x') || r.is('X'):
				r.advance()
				l.skipIllegalUnderscores()
				l.scanNumber(pos, 16)
			case r.is('b') || r.is('B'):
				r.advance()
				l.checkSourceLevel(pos, source.BinaryLiterals)
				l.skipIllegalUnderscores()
				l.scanNumber(pos, 2)
			default:
				r.putChar('0')
				if r.is('_') {
					under := r.position()
					for r.is('_') {
						r.advance()
					}
					if l.digit(pos, 10) < 0 {
						l.lexError(under, diag.IllegalUnderscore)
					}
				}
				l.scanNumber(pos, 8)
			}
			break loop
		case c >= '1' && c <= '9':
			l.scanNumber(pos, 10)
			break loop
		case c == '.':
			if r.acceptString("...") {
				l.tk = TokenEllipsis
			} else {
				r.advance()
				if r.is('.') {
					l.lexError(r.position(), diag.IllegalDotDefault)
					r.advance()
				} else if l.digit(pos, 10) >= 0 {
					r.putChar('.')
					l.scanFractionAndSuffix(pos)
				} else {
					l.tk = TokenDot
				}
			}
			break loop
		case c == ',':
			r.advance()
			l.tk = TokenComma
			break loop
		case c == ';':
			r.advance()
			l.tk = TokenSemicolon
			break loop
		case c == '(':
			r.advance()
			l.tk = TokenLParen
			break loop
		case c == ')':
			r.advance()
			l.tk = TokenRParen
			break loop
		case c == '[':
			r.advance()
			l.tk = TokenLBracket
			break loop
		case c == ']':
			r.advance()
			l.tk = TokenRBracket
			break loop
		case c == '{':
			r.advance()
			l.tk = TokenLBrace
			break loop
		case c == '}':
			r.advance()
			l.tk = TokenRBrace
			break loop
		case c == '/':
			r.advance()
			if r.accept('/') {
				for !r.is(eoi) && !r.isEOLN() {
					r.advance()
				}
				l.addComment(CommentLine, pos, r.position())
				continue
			}
			if r.accept('*') {
				style := CommentBlock
				empty := false
				if r.is('*') {
					if r.peek() == '/' {
						empty = true
						r.advance()
					} else {
						style = CommentJavadoc
					}
				}
				if !empty {
					for !r.is(eoi) {
						if r.accept('*') {
							if r.is('/') {
								break
							}
						} else {
							r.advance()
						}
					}
				}
				if r.accept('/') {
					l.addComment(style, pos, r.position())
					continue
				}
				l.lexError(pos, diag.UnclosedComment)
				break loop
			}
			if r.accept('=') {
				l.tk = TokenSlashAssign
			} else {
				l.tk = TokenSlash
			}
			break loop
		case c == '\'':
			r.advance()
			if r.accept('\'') {
				l.lexError(pos, diag.EmptyCharLit)
			} else {
				if r.isEOLN() {
					l.lexError(pos, diag.IllegalLineEndInCharLit)
				}
				if !r.is(eoi) {
					// A char holds one UTF-16 unit; the second half of a
					// surrogate pair sits where the closing quote belongs.
					wide := r.current() > 0xFFFF
					l.scanLitChar(pos)
					if wide {
						l.lexError(pos, diag.UnclosedCharLit)
						break loop
					}
				}
				if r.accept('\'') {
					l.tk = TokenCharLiteral
				} else {
					l.lexError(pos, diag.UnclosedCharLit)
				}
			}
			break loop
		case c == '"':
			l.scanString(pos)
			break loop
		case isSpecial(c):
			l.scanOperator()
			break loop
		case c == eoi:
			l.tk = TokenEOF
			pos = r.position()
			break loop
		case isIdentifierStart(c):
			name = l.scanIdent()
			break loop
		case l.digit(pos, 10) >= 0:
			l.scanNumber(pos, 10)
			break loop
		default:
			arg := string(c)
			if c < ' ' || r.isSurrogate() {
				arg = "\\u" + hex4(r.unit)
			}
			l.lexError(pos, diag.IllegalChar, arg)
			r.advance()
			break loop
		}
	}

	tok := Token{
		Kind:     l.tk,
		Pos:      pos,
		EndPos:   r.position(),
		Comments: l.comments,
	}
	switch {
	case l.tk == TokenIdent, l.tk.IsKeyword():
		tok.Name = name
	case l.tk == TokenStringLiteral, l.tk == TokenCharLiteral:
		tok.StringVal = l.stringValue(pos)
		tok.TextBlock = l.textBlock
	case l.tk >= TokenIntLiteral && l.tk <= TokenDoubleLiteral:
		tok.StringVal = r.literal()
		tok.Radix = l.radix
	case l.tk == TokenError:
		tok.StringVal = r.literal()
	}
	return tok
}

func (l *Lexer) addComment(style CommentStyle, pos, end int) {
	l.comments = append(l.comments, newComment(style, l.src, pos, end))
}

func isSpecial(c rune) bool {
	switch c {
	case '!', '%', '&', '*', '?', '+', '-', ':', '<', '=', '>', '^', '|', '~', '@':
		return true
	}
	return false
}

func hex4(c rune) string {
	const digits = "0123456789abcdef"
	b := []byte{'0', '0', '0', '0'}
	for i := 3; i >= 0; i-- {
		b[i] = digits[c&0xF]
		c >>= 4
	}
	return string(b)
}

// scanOperator reads the longest operator spelling starting at the
// current character.
func (l *Lexer) scanOperator() {
	r := l.r
	var sb strings.Builder
	for {
		sb.WriteRune(r.current())
		k, ok := lookupOperator(sb.String())
		if !ok {
			break
		}
		l.tk = k
		r.advance()
		if !isSpecial(r.current()) {
			break
		}
	}
}

func (l *Lexer) scanIdent() string {
	r := l.r
	for {
		c := r.current()
		switch {
		case isIdentifierIgnorable(c) && c != eoi:
			r.advance()
		case c != eoi && isIdentifierPart(c):
			r.putThenNext()
		default:
			name := r.literal()
			l.tk = LookupKeyword(name)
			r.resetLiteral()
			return name
		}
	}
}

// digit returns the value of the current character in base, or -1. A
// non-ASCII digit is reported but still yields its value.
func (l *Lexer) digit(pos, base int) int {
	c := l.r.current()
	if c == eoi {
		return -1
	}
	d := digitValue(c, base)
	if d >= 0 && c > 0x7f {
		l.lexError(pos+1, diag.IllegalNonASCIIDigit)
	}
	return d
}

func (l *Lexer) skipIllegalUnderscores() {
	r := l.r
	if r.is('_') {
		l.lexError(r.position(), diag.IllegalUnderscore)
		for r.is('_') {
			r.advance()
		}
	}
}

// putDigit appends the current digit, normalizing non-ASCII digits.
func (l *Lexer) putDigit(base int) {
	r := l.r
	c := r.current()
	if c > 0x7f {
		if d := digitValue(c, base); d >= 0 {
			r.putChar(rune("0123456789abcdefghijklmnopqrstuvwxyz"[d]))
			return
		}
	}
	r.put()
}

func (l *Lexer) scanDigits(pos, digitRadix int) {
	r := l.r
	leading := diag.NoPos
	if r.is('_') {
		leading = r.position()
	}
	trailing := diag.NoPos
	for {
		if !r.is('_') {
			l.putDigit(digitRadix)
			trailing = diag.NoPos
		} else {
			trailing = r.position()
		}
		r.advance()
		if l.digit(pos, digitRadix) < 0 && !r.is('_') {
			break
		}
	}
	if leading != diag.NoPos {
		l.lexError(leading, diag.IllegalUnderscore)
	} else if trailing != diag.NoPos {
		l.lexError(trailing, diag.IllegalUnderscore)
	}
	if strings.ContainsRune(l.src[pos:r.position()], '_') {
		if !source.UnderscoresInLiterals.AllowedInSource(l.cfg.level) {
			l.checkSourceLevel(pos, source.UnderscoresInLiterals)
		}
	}
}

// scanNumber scans a numeric literal whose prefix has been consumed. Octal
// literals are scanned with decimal digits so that a following fraction or
// exponent turns them into a decimal floating-point literal; otherwise
// the digits are kept with radix 8 and converted by the parser.
func (l *Lexer) scanNumber(pos, radix int) {
	r := l.r
	l.radix = radix
	digitRadix := radix
	if radix == 8 {
		digitRadix = 10
	}
	first := l.digit(pos, max(10, digitRadix))
	seenDigit := first >= 0
	seenValidDigit := first >= 0 && first < digitRadix
	if seenDigit {
		l.scanDigits(pos, digitRadix)
	}
	switch {
	case radix == 16 && r.is('.'):
		l.scanHexFractionAndSuffix(pos, seenDigit)
	case seenDigit && radix == 16 && (r.is('p') || r.is('P')):
		l.scanHexExponentAndSuffix(pos)
	case digitRadix == 10 && r.is('.'):
		r.putThenNext()
		l.scanFractionAndSuffix(pos)
	case digitRadix == 10 && isOneOf(r.current(), 'e', 'E', 'f', 'F', 'd', 'D'):
		l.scanFractionAndSuffix(pos)
	default:
		if !seenValidDigit {
			switch radix {
			case 2:
				l.lexError(pos, diag.InvalidBinaryNumber)
			case 16:
				l.lexError(pos, diag.InvalidHexNumber)
			}
		}
		if r.accept('l') || r.accept('L') {
			l.tk = TokenLongLiteral
		} else {
			l.tk = TokenIntLiteral
		}
	}
}

func isOneOf(c rune, set ...rune) bool {
	for _, s := range set {
		if c == s {
			return true
		}
	}
	return false
}

func (l *Lexer) acceptOneOfThenPut(set ...rune) bool {
	r := l.r
	if isOneOf(r.current(), set...) {
		r.putThenNext()
		return true
	}
	return false
}

func (l *Lexer) scanFraction(pos int) {
	r := l.r
	l.skipIllegalUnderscores()
	if l.digit(pos, 10) >= 0 {
		l.scanDigits(pos, 10)
	}
	mark := len(r.sb)
	if l.acceptOneOfThenPut('e', 'E') {
		l.skipIllegalUnderscores()
		l.acceptOneOfThenPut('+', '-')
		l.skipIllegalUnderscores()
		if l.digit(pos, 10) >= 0 {
			l.scanDigits(pos, 10)
			return
		}
		l.lexError(pos, diag.MalformedFpLit)
		r.sb = r.sb[:mark]
	}
}

func (l *Lexer) scanFractionAndSuffix(pos int) {
	l.radix = 10
	l.scanFraction(pos)
	if l.acceptOneOfThenPut('f', 'F') {
		l.tk = TokenFloatLiteral
	} else {
		l.acceptOneOfThenPut('d', 'D')
		l.tk = TokenDoubleLiteral
	}
}

func (l *Lexer) scanHexExponentAndSuffix(pos int) {
	if l.acceptOneOfThenPut('p', 'P') {
		l.skipIllegalUnderscores()
		l.acceptOneOfThenPut('+', '-')
		l.skipIllegalUnderscores()
		if l.digit(pos, 10) >= 0 {
			l.scanDigits(pos, 10)
		} else {
			l.lexError(pos, diag.MalformedFpLit)
		}
	} else {
		l.lexError(pos, diag.MalformedFpLit)
	}
	if l.acceptOneOfThenPut('f', 'F') {
		l.tk = TokenFloatLiteral
	} else {
		l.acceptOneOfThenPut('d', 'D')
		l.tk = TokenDoubleLiteral
	}
	l.radix = 16
}

func (l *Lexer) scanHexFractionAndSuffix(pos int, seenDigit bool) {
	l.radix = 16
	l.r.putThenNext()
	l.skipIllegalUnderscores()
	if l.digit(pos, 16) >= 0 {
		seenDigit = true
		l.scanDigits(pos, 16)
	}
	if !seenDigit {
		l.lexError(pos, diag.InvalidHexNumber)
	} else {
		l.scanHexExponentAndSuffix(pos)
	}
}

// scanLitChar copies one character of a character or string literal into
// the literal buffer. Escape sequences are copied verbatim and translated
// once the literal is complete.
func (l *Lexer) scanLitChar(pos int) {
	r := l.r
	if !r.is('\\') {
		r.putThenNext()
		return
	}
	r.putThenNext()
	l.hasEscapes = true
	switch c := r.current(); {
	case c >= '0' && c <= '7':
		lead := c
		r.putThenNext()
		if isOctal(r.current()) {
			r.putThenNext()
			if lead <= '3' && isOctal(r.current()) {
				r.putThenNext()
			}
		}
	case isOneOf(c, 'b', 't', 'n', 'f', 'r', '\'', '"', '\\'):
		r.putThenNext()
	case c == 's':
		l.checkSourceLevel(r.position(), source.TextBlocks)
		r.putThenNext()
	case c == '\n' || c == '\r':
		if l.textBlock {
			r.skipLineTerminator()
			r.putChar('\n')
		} else {
			l.lexError(r.position(), diag.IllegalEscChar)
		}
	default:
		l.lexError(r.position(), diag.IllegalEscChar)
	}
}

func isOctal(c rune) bool {
	return c >= '0' && c <= '7'
}

func (l *Lexer) scanString(pos int) {
	r := l.r
	l.tk = TokenStringLiteral
	firstEOLN := diag.NoPos
	l.textBlock = r.acceptString(`"""`)
	if l.textBlock {
		l.checkSourceLevel(pos, source.TextBlocks)
		r.skipWhitespace()
		if !r.isEOLN() {
			l.lexError(r.position(), diag.IllegalTextBlockOpen)
			return
		}
		r.skipLineTerminator()
		for !r.is(eoi) {
			if r.acceptString(`"""`) {
				return
			}
			if r.isEOLN() {
				r.skipLineTerminator()
				r.putChar('\n')
				if firstEOLN == diag.NoPos {
					firstEOLN = r.position()
				}
			} else if r.is('\\') {
				l.scanLitChar(pos)
			} else {
				r.putThenNext()
			}
		}
	} else {
		r.accept('"')
		for !r.is(eoi) {
			if r.accept('"') {
				return
			}
			if r.isEOLN() {
				break
			}
			l.scanLitChar(pos)
		}
	}
	if l.textBlock {
		l.lexError(pos, diag.UnclosedTextBlock)
	} else {
		l.lexError(pos, diag.UnclosedStrLit)
	}
	if firstEOLN != diag.NoPos {
		r.reset(firstEOLN)
	}
}

// stringValue finishes a character or string literal: text blocks have
// their indentation stripped, then escapes are translated.
func (l *Lexer) stringValue(pos int) string {
	s := l.r.literal()
	if l.textBlock {
		s = l.stripIndent(pos, s)
	}
	if l.hasEscapes {
		s = translateEscapes(s)
	}
	return s
}

// stripIndent removes the common leading white space of a text block's
// lines and the trailing white space of every line. The closing delimiter
// line takes part in the indentation even when it is blank.
func (l *Lexer) stripIndent(pos int, s string) string {
	lines := strings.Split(s, "\n")
	last := len(lines) - 1

	min := -1
	var ref string
	inconsistent, trailing := false, false
	for i, line := range lines {
		blank := strings.TrimLeft(line, " \t\f") == ""
		if blank && i != last {
			continue
		}
		indent := leadingSpace(line)
		if blank {
			indent = len(line)
		}
		if min < 0 || indent < min {
			min = indent
		}
		prefix := line[:indent]
		if ref == "" {
			ref = prefix
		} else if !inconsistent {
			n := len(prefix)
			if len(ref) < n {
				n = len(ref)
			}
			if prefix[:n] != ref[:n] {
				inconsistent = true
			}
		}
		if !blank && len(strings.TrimRight(line, " \t\f")) < len(line) {
			trailing = true
		}
	}
	if trailing {
		l.lexWarning(pos, diag.TrailingWhiteSpaceWillBeRemoved)
	}
	if inconsistent {
		l.lexWarning(pos, diag.InconsistentWhiteSpace)
	}
	if min < 0 {
		min = 0
	}

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		line = strings.TrimRight(line, " \t\f")
		if len(line) >= min {
			line = line[min:]
		} else {
			line = ""
		}
		b.WriteString(line)
	}
	return b.String()
}

func leadingSpace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\f') {
		i++
	}
	return i
}

// translateEscapes replaces escape sequences in s by the characters they
// denote. Unknown escapes are dropped; they were reported while
// scanning.
func translateEscapes(s string) string {
	if !strings.ContainsRune(s, '\\') {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch c = s[i]; c {
		case 'b':
			b.WriteByte('\b')
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 's':
			b.WriteByte(' ')
		case '\'', '"', '\\':
			b.WriteByte(c)
		case '\n':
			// line continuation
		case '0', '1', '2', '3', '4', '5', '6', '7':
			code := int(c - '0')
			limit := 2
			if c > '3' {
				limit = 1
			}
			for k := 0; k < limit && i+1 < len(s) && isOctal(rune(s[i+1])); k++ {
				i++
				code = code*8 + int(s[i]-'0')
			}
			b.WriteRune(rune(code))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
