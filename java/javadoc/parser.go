package javadoc

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

// Option configures Parse.
type Option func(*config)

type config struct {
	handler   diag.Handler
	refOpts   []parser.Option
	sourcePos func(int) int
}

// WithHandler reports the errors found in a comment to h, in addition to
// DocComment.Errors.
func WithHandler(h diag.Handler) Option {
	return func(c *config) {
		c.handler = h
	}
}

// WithReferenceOptions passes opts to parser.ParseReference when
// signatures in @see, @throws and {@link} tags are parsed.
func WithReferenceOptions(opts ...parser.Option) Option {
	return func(c *config) {
		c.refOpts = opts
	}
}

// Parse parses the body of a declaration's documentation comment, as
// returned by parser.Comment.Text.
func Parse(text string, opts ...Option) *DocComment {
	return parse(text, false, opts)
}

// ParseFile parses a standalone HTML documentation file such as
// package.html. Content before <body> or <main> becomes the preamble and
// content after the matching end tag the postamble.
func ParseFile(text string, opts ...Option) *DocComment {
	return parse(text, true, opts)
}

// ParseComment parses the body of c. Errors reported to the handler carry
// source positions.
func ParseComment(c *parser.Comment, opts ...Option) *DocComment {
	opts = append(append([]Option(nil), opts...), func(cfg *config) {
		cfg.sourcePos = c.SourcePos
	})
	return parse(c.Text(), false, opts)
}

func parse(text string, fileContent bool, opts []Option) *DocComment {
	cfg := &config{handler: diag.Discard}
	for _, opt := range opts {
		opt(cfg)
	}
	p := &docParser{
		buf:         text,
		cfg:         cfg,
		fileContent: fileContent,
		newline:     true,
		textStart:   -1,
	}
	p.read()

	dc := &DocComment{At: At{diag.NoPos}}
	if fileContent {
		p.phase = phasePreamble
		dc.Preamble = p.blockContent()
	}
	p.phase = phaseBody
	dc.Body = p.blockContent()
	dc.BlockTags = p.blockTags()
	if fileContent {
		p.phase = phasePostamble
		dc.Postamble = p.blockContent()
	}
	dc.FirstSentence = firstSentence(dc.Body)

	for _, part := range [][]Node{dc.Preamble, dc.Body, dc.BlockTags, dc.Postamble} {
		if len(part) > 0 {
			dc.Offset = part[0].Pos()
			break
		}
	}

	dc.Errors = p.errs
	for _, d := range p.errs {
		if cfg.sourcePos != nil {
			d.Pos = cfg.sourcePos(d.Pos)
		}
		cfg.handler.Report(d)
	}
	return dc
}

type phase int

const (
	phasePreamble phase = iota
	phaseBody
	phasePostamble
)

const eoi = -1

// parseError aborts a tag. Pos is the position to report, or diag.NoPos
// to report at the start of the tag.
type parseError struct {
	pos  int
	key  diag.Key
	args []any
}

func errAt(key diag.Key, args ...any) *parseError {
	return &parseError{pos: diag.NoPos, key: key, args: args}
}

type docParser struct {
	buf   string
	bp    int
	ch    rune
	width int

	// newline is set when only white space has been seen since the last
	// line terminator. An '@' in that state starts a block tag.
	newline bool

	// textStart is the start of the pending text run, or -1.
	// lastNonWhite is the end of its last non-white character, or -1.
	textStart    int
	lastNonWhite int

	fileContent bool
	phase       phase
	cfg         *config
	errs        []diag.Diagnostic
}

func (p *docParser) read() {
	if p.bp >= len(p.buf) {
		p.bp = len(p.buf)
		p.ch, p.width = eoi, 0
		return
	}
	p.ch, p.width = utf8.DecodeRuneInString(p.buf[p.bp:])
	switch p.ch {
	case '\f', '\n', '\r':
		p.newline = true
	}
}

func (p *docParser) nextChar() {
	p.bp += p.width
	p.read()
}

// reset moves the cursor back to pos.
func (p *docParser) reset(pos int, newline bool) {
	p.bp = pos
	p.read()
	p.newline = newline
}

func (p *docParser) more() bool {
	return p.bp < len(p.buf)
}

// blockContent reads text, HTML, entities and inline tags up to a block
// tag, the end of the buffer, or the end of the current file phase.
func (p *docParser) blockContent() []Node {
	var trees []Node
	p.textStart = -1
	p.lastNonWhite = -1

loop:
	for p.more() {
		switch p.ch {
		case '\n', '\r', '\f':
			p.newline = true
			p.nextChar()
		case ' ', '\t':
			p.nextChar()
		case '&':
			trees = p.entityInto(trees)
		case '<':
			p.newline = false
			if p.fileContent {
				if p.phase == phasePreamble && p.isEndPreamble() || p.phase == phaseBody && p.isEndBody() {
					break loop
				}
			}
			trees = p.addPendingText(trees, p.bp)
			trees = append(trees, p.html())
			if p.phase == phasePreamble || p.phase == phasePostamble {
				// white space between elements of the file header is dropped
				break
			}
			if p.textStart == -1 {
				p.textStart = p.bp
				p.lastNonWhite = -1
			}
		case '>':
			p.newline = false
			trees = p.addPendingText(trees, p.bp)
			trees = append(trees, p.erroneousText(diag.DocBadGT, p.bp, p.bp+1))
			p.nextChar()
			if p.textStart == -1 {
				p.textStart = p.bp
				p.lastNonWhite = -1
			}
		case '{':
			trees = p.inlineTagInto(trees)
		case '@':
			if p.newline {
				trees = p.addPendingText(trees, p.lastNonWhite)
				break loop
			}
			fallthrough
		default:
			p.newline = false
			if p.textStart == -1 {
				p.textStart = p.bp
			}
			p.nextChar()
			p.lastNonWhite = p.bp
		}
	}

	if p.lastNonWhite != -1 {
		trees = p.addPendingText(trees, p.lastNonWhite)
	}
	return trees
}

func (p *docParser) addPendingText(list []Node, end int) []Node {
	if p.textStart != -1 {
		if p.textStart < end {
			list = append(list, Text{At: At{p.textStart}, Content: p.buf[p.textStart:end]})
		}
		p.textStart = -1
	}
	return list
}

func (p *docParser) blockTags() []Node {
	var tags []Node
	for p.ch == '@' {
		tags = append(tags, p.blockTag())
	}
	return tags
}

func (p *docParser) blockTag() Node {
	pos := p.bp
	p.nextChar()
	if !parser.IsIdentifierStart(p.ch) {
		p.blockContent()
		return p.erroneous(errAt(diag.DocNoTagName), pos)
	}
	name := p.readTagName()
	tp, ok := tagParsers[name]
	if !ok {
		return UnknownBlockTag{At: At{pos}, Name: name, Content: p.blockContent()}
	}
	if tp.kind == tagInline {
		p.blockContent()
		return p.erroneous(errAt(diag.DocTagNotSupported, name), pos)
	}
	n, err := tp.parse(p, pos, tagBlock)
	if err != nil {
		p.blockContent()
		return p.erroneous(err, pos)
	}
	return n
}

// inlineTagInto is called at '{'. It appends the inline tag starting
// there, or treats the brace as text.
func (p *docParser) inlineTagInto(list []Node) []Node {
	p.newline = false
	p.nextChar()
	if p.ch == '@' {
		list = p.addPendingText(list, p.bp-1)
		list = append(list, p.inlineTag())
		p.textStart = p.bp
		p.lastNonWhite = -1
	} else {
		if p.textStart == -1 {
			p.textStart = p.bp - 1
		}
		p.lastNonWhite = p.bp
	}
	return list
}

// inlineTag is called at the '@' of "{@". It consumes the closing brace.
func (p *docParser) inlineTag() Node {
	pos := p.bp - 1
	p.nextChar()
	if !parser.IsIdentifierStart(p.ch) {
		return p.erroneous(errAt(diag.DocNoTagName), pos)
	}
	name := p.readTagName()
	tp, ok := tagParsers[name]
	if !ok {
		p.skipWhitespace()
		text, err := p.inlineText(removeAll)
		if err != nil {
			return p.erroneous(err, pos)
		}
		p.nextChar()
		return UnknownInlineTag{At: At{pos}, Name: name, Content: text}
	}
	if !tp.retainWhitespace {
		p.skipWhitespace()
	}
	if tp.kind == tagBlock {
		if _, err := p.inlineText(removeAll); err != nil {
			return p.erroneous(err, pos)
		}
		p.nextChar()
		return p.erroneous(errAt(diag.DocTagNotSupported, name), pos)
	}
	n, err := tp.parse(p, pos, tagInline)
	if err != nil {
		return p.erroneous(err, pos)
	}
	return n
}

type whitespacePolicy int

const (
	removeAll whitespacePolicy = iota
	removeFirstSpace
	retainAll
)

// inlineText reads raw text up to the brace that closes the current
// inline tag. The brace is not consumed.
func (p *docParser) inlineText(policy whitespacePolicy) (string, *parseError) {
	switch policy {
	case removeAll:
		p.skipWhitespace()
	case removeFirstSpace:
		if p.ch == ' ' {
			p.nextChar()
		}
	}
	pos := p.bp
	depth := 1

loop:
	for p.more() {
		switch p.ch {
		case '\n', '\r', '\f':
			p.newline = true
		case ' ', '\t':
		case '{':
			p.newline = false
			depth++
		case '}':
			depth--
			if depth == 0 {
				return p.buf[pos:p.bp], nil
			}
			p.newline = false
		case '@':
			if p.newline {
				break loop
			}
			p.newline = false
		default:
			p.newline = false
		}
		p.nextChar()
	}
	return "", errAt(diag.DocUnterminatedInlineTag)
}

// inlineContent reads rich content up to and including the brace that
// closes the current inline tag.
func (p *docParser) inlineContent() []Node {
	var trees []Node
	p.skipWhitespace()
	pos := p.bp
	depth := 1
	p.textStart = -1

loop:
	for p.more() {
		switch p.ch {
		case '\n', '\r', '\f':
			p.newline = true
			p.nextChar()
		case ' ', '\t':
			p.nextChar()
		case '&':
			trees = p.entityInto(trees)
		case '<':
			p.newline = false
			trees = p.addPendingText(trees, p.bp)
			trees = append(trees, p.html())
		case '{':
			if p.textStart == -1 {
				p.textStart = p.bp
			}
			p.newline = false
			p.nextChar()
			if p.ch == '@' {
				trees = p.addPendingText(trees, p.bp-1)
				trees = append(trees, p.inlineTag())
				p.textStart = p.bp
				p.lastNonWhite = -1
			} else {
				depth++
			}
		case '}':
			p.newline = false
			depth--
			if depth == 0 {
				trees = p.addPendingText(trees, p.bp)
				p.nextChar()
				return trees
			}
			p.nextChar()
		case '@':
			if p.newline {
				break loop
			}
			fallthrough
		default:
			if p.textStart == -1 {
				p.textStart = p.bp
			}
			p.nextChar()
		}
	}
	return []Node{p.erroneous(errAt(diag.DocUnterminatedInlineTag), pos)}
}

// reference reads a signature up to the first white space outside
// parentheses and angle brackets. It returns nil when the tag ends
// immediately.
func (p *docParser) reference(allowMember bool) (*Reference, *parseError) {
	pos := p.bp
	depth := 0

loop:
	for p.more() {
		switch p.ch {
		case '\n', '\r', '\f':
			p.newline = true
			fallthrough
		case ' ', '\t':
			if depth == 0 {
				break loop
			}
		case '(', '<':
			p.newline = false
			depth++
		case ')', '>':
			p.newline = false
			depth--
		case '}':
			if p.bp == pos {
				return nil, nil
			}
			p.newline = false
			break loop
		case '@':
			if p.newline {
				break loop
			}
			p.newline = false
		default:
			p.newline = false
		}
		p.nextChar()
	}

	if depth != 0 {
		return nil, errAt(diag.DocUnterminatedSignature)
	}

	sig := p.buf[pos:p.bp]
	ref, err := parser.ParseReference(sig, p.cfg.refOpts...)
	if err != nil {
		perr := &parseError{pos: pos, key: diag.DocBadReference}
		var rerr *parser.ReferenceError
		if errors.As(err, &rerr) {
			perr.key = rerr.Key
			if rerr.Pos != diag.NoPos {
				perr.pos = pos + rerr.Pos
			}
		}
		return nil, perr
	}
	if !allowMember && ref.Member != nil {
		return nil, &parseError{pos: pos + ref.Member.Pos, key: diag.DocRefUnexpectedInput}
	}
	return &Reference{At: At{pos}, Signature: sig, Ref: ref}, nil
}

func (p *docParser) identifier() (string, *parseError) {
	p.skipWhitespace()
	if !parser.IsIdentifierStart(p.ch) {
		return "", errAt(diag.DocIdentifierExpected)
	}
	return p.readIdentifier(), nil
}

// quotedString reads a double-quoted string. It reports false when the
// string is not closed before the next block tag.
func (p *docParser) quotedString() (Text, bool) {
	pos := p.bp
	p.nextChar()

	for p.more() {
		switch p.ch {
		case '\n', '\r', '\f':
			p.newline = true
		case ' ', '\t':
		case '"':
			p.nextChar()
			return Text{At: At{pos}, Content: p.buf[pos:p.bp]}, true
		case '@':
			if p.newline {
				return Text{}, false
			}
		}
		p.nextChar()
	}
	return Text{}, false
}

// inlineWord reads a word up to white space or the end of the tag.
func (p *docParser) inlineWord() (Text, bool) {
	pos := p.bp
	depth := 0

	for p.more() {
		switch p.ch {
		case '\n':
			p.newline = true
			fallthrough
		case '\r', '\f', ' ', '\t':
			return Text{At: At{pos}, Content: p.buf[pos:p.bp]}, true
		case '@':
			if p.newline {
				return Text{}, false
			}
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return Text{At: At{pos}, Content: p.buf[pos:p.bp]}, true
			}
			depth--
		}
		p.newline = false
		p.nextChar()
	}
	return Text{}, false
}

func (p *docParser) entityInto(list []Node) []Node {
	p.newline = false
	list = p.addPendingText(list, p.bp)
	list = append(list, p.entity())
	if p.textStart == -1 {
		p.textStart = p.bp
		p.lastNonWhite = -1
	}
	return list
}

func (p *docParser) entity() Node {
	pos := p.bp
	p.nextChar()
	var name string
	switch {
	case p.ch == '#':
		start := p.bp
		p.nextChar()
		switch {
		case isDecimalDigit(p.ch):
			for p.more() && isDecimalDigit(p.ch) {
				p.nextChar()
			}
			name = p.buf[start:p.bp]
		case p.ch == 'x' || p.ch == 'X':
			p.nextChar()
			if isHexDigit(p.ch) {
				for p.more() && isHexDigit(p.ch) {
					p.nextChar()
				}
				name = p.buf[start:p.bp]
			}
		}
	case parser.IsIdentifierStart(p.ch):
		name = p.readIdentifier()
	}

	if name == "" {
		return p.erroneous(errAt(diag.DocBadEntity), pos)
	}
	if p.ch != ';' {
		return p.erroneous(errAt(diag.DocMissingSemicolon), pos)
	}
	p.nextChar()
	return Entity{At: At{pos}, Name: name}
}

// isEndPreamble reports whether the '<' at the cursor starts <main>, or
// a <body> that is not followed by <main>.
func (p *docParser) isEndPreamble() bool {
	defer p.reset(p.bp, p.newline)

	p.nextChar()
	if !parser.IsIdentifierStart(p.ch) {
		return false
	}
	switch strings.ToLower(p.readIdentifier()) {
	case "body":
		for p.more() && p.ch != '>' {
			p.nextChar()
		}
		if p.ch == '>' {
			p.nextChar()
		}
		p.skipWhitespace()
		if p.ch == '<' {
			p.nextChar()
			if parser.IsIdentifierStart(p.ch) && strings.EqualFold(p.readIdentifier(), "main") {
				return false
			}
		}
		return true
	case "main":
		return true
	}
	return false
}

// isEndBody reports whether the '<' at the cursor starts </body> or
// </main>.
func (p *docParser) isEndBody() bool {
	defer p.reset(p.bp, p.newline)

	p.nextChar()
	if p.ch != '/' {
		return false
	}
	p.nextChar()
	if !parser.IsIdentifierStart(p.ch) {
		return false
	}
	switch strings.ToLower(p.readIdentifier()) {
	case "body", "main":
		return true
	}
	return false
}

// html reads a start tag, an end tag, a comment or a doctype at '<'.
func (p *docParser) html() Node {
	pos := p.bp
	p.nextChar()
	switch {
	case parser.IsIdentifierStart(p.ch):
		name := p.readIdentifier()
		attrs, ok := p.htmlAttrs()
		if ok {
			selfClose := false
			if p.ch == '/' {
				p.nextChar()
				selfClose = true
			}
			if p.ch == '>' {
				p.nextChar()
				return StartElement{At: At{pos}, Name: name, Attributes: attrs, SelfClose: selfClose}
			}
		}
	case p.ch == '/':
		p.nextChar()
		if parser.IsIdentifierStart(p.ch) {
			name := p.readIdentifier()
			p.skipWhitespace()
			if p.ch == '>' {
				p.nextChar()
				return EndElement{At: At{pos}, Name: name}
			}
		}
	case p.ch == '!':
		p.nextChar()
		if p.ch == '-' {
			p.nextChar()
			if p.ch == '-' {
				p.nextChar()
				for p.more() {
					dashes := 0
					for p.more() && p.ch == '-' {
						dashes++
						p.nextChar()
					}
					if dashes >= 2 && p.ch == '>' {
						p.nextChar()
						return Comment{At: At{pos}, Body: p.buf[pos:p.bp]}
					}
					p.nextChar()
				}
			}
		} else if parser.IsIdentifierStart(p.ch) && p.peekFold("doctype") {
			p.readIdentifier()
			p.skipWhitespace()
			start := p.bp
			for p.more() && p.ch != '>' {
				p.nextChar()
			}
			if p.ch == '>' {
				end := p.bp
				p.nextChar()
				return DocType{At: At{start}, Text: p.buf[start:end]}
			}
		}
	}

	p.reset(pos+1, false)
	return p.erroneous(errAt(diag.DocMalformedHTML), pos)
}

// htmlAttrs reads the attributes of a start tag. It reports false when an
// attribute value runs into a block tag.
func (p *docParser) htmlAttrs() ([]Attribute, bool) {
	var attrs []Attribute
	p.skipWhitespace()

	for p.more() && parser.IsIdentifierStart(p.ch) {
		pos := p.bp
		name := p.readAttributeName()
		p.skipWhitespace()
		attr := Attribute{At: At{pos}, Name: name}
		if p.ch == '=' {
			p.nextChar()
			p.skipWhitespace()
			if p.ch == '\'' || p.ch == '"' {
				p.newline = false
				attr.Kind = ValueDouble
				if p.ch == '\'' {
					attr.Kind = ValueSingle
				}
				quote := p.ch
				p.nextChar()
				start := p.bp
				for p.more() && p.ch != quote {
					if p.newline && p.ch == '@' {
						p.errs = append(p.errs, diag.Errorf(pos, diag.DocUnterminatedString))
						return nil, false
					}
					if !isWhitespace(p.ch) {
						p.newline = false
					}
					p.nextChar()
				}
				attr.Value = p.buf[start:p.bp]
				p.nextChar()
			} else {
				attr.Kind = ValueUnquoted
				start := p.bp
				for p.more() && !isUnquotedAttrValueTerminator(p.ch) {
					p.nextChar()
				}
				attr.Value = p.buf[start:p.bp]
			}
			p.skipWhitespace()
		}
		attrs = append(attrs, attr)
	}
	return attrs, true
}

// erroneous records err and returns the content from pos to the cursor,
// without trailing white space, as an Erroneous node.
func (p *docParser) erroneous(err *parseError, pos int) Node {
	i := p.bp
	for i > pos && isWhitespace(rune(p.buf[i-1])) {
		if p.buf[i-1] == '\n' || p.buf[i-1] == '\r' || p.buf[i-1] == '\f' {
			p.newline = true
		}
		i--
	}
	p.textStart = -1
	at := err.pos
	if at == diag.NoPos {
		at = pos
	}
	p.errs = append(p.errs, diag.Errorf(at, err.key, err.args...))
	return Erroneous{At: At{pos}, Content: p.buf[pos:i], Key: err.key}
}

func (p *docParser) erroneousText(key diag.Key, pos, end int) Node {
	p.errs = append(p.errs, diag.Errorf(pos, key))
	return Erroneous{At: At{pos}, Content: p.buf[pos:end], Key: key}
}

func (p *docParser) skipWhitespace() {
	for p.more() && isWhitespace(p.ch) {
		p.nextChar()
	}
}

// peekFold reports whether the input at the cursor starts with s, ignoring
// case.
func (p *docParser) peekFold(s string) bool {
	return len(p.buf)-p.bp >= len(s) && strings.EqualFold(p.buf[p.bp:p.bp+len(s)], s)
}

func (p *docParser) readIdentifier() string {
	start := p.bp
	p.nextChar()
	for p.more() && parser.IsIdentifierPart(p.ch) {
		p.nextChar()
	}
	return p.buf[start:p.bp]
}

func (p *docParser) readTagName() string {
	start := p.bp
	p.nextChar()
	for p.more() && (parser.IsIdentifierPart(p.ch) || p.ch == '.' || p.ch == '-' || p.ch == ':') {
		p.nextChar()
	}
	return p.buf[start:p.bp]
}

func (p *docParser) readAttributeName() string {
	start := p.bp
	p.nextChar()
	for p.more() && (parser.IsIdentifierPart(p.ch) || p.ch == '-') {
		p.nextChar()
	}
	return p.buf[start:p.bp]
}

func (p *docParser) readSystemPropertyName() string {
	start := p.bp
	p.nextChar()
	for p.more() && (parser.IsIdentifierPart(p.ch) || p.ch == '.') {
		p.nextChar()
	}
	return p.buf[start:p.bp]
}

func isWhitespace(ch rune) bool {
	switch ch {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isUnquotedAttrValueTerminator(ch rune) bool {
	switch ch {
	case '\f', '\n', '\r', '\t', ' ', '"', '\'', '`', '=', '<', '>':
		return true
	}
	return false
}

func isDecimalDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDecimalDigit(ch) || ch >= 'a' && ch <= 'f' || ch >= 'A' && ch <= 'F'
}

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"dd": true, "div": true, "dl": true, "dt": true, "figure": true,
	"footer": true, "h1": true, "h2": true, "h3": true, "h4": true,
	"h5": true, "h6": true, "header": true, "hr": true, "li": true,
	"main": true, "nav": true, "ol": true, "p": true, "pre": true,
	"section": true, "table": true, "ul": true,
}

// firstSentence returns the leading summary of body: everything up to the
// first period followed by white space, or up to the first block-level
// HTML element. A body that begins with {@summary} is summarized by it.
func firstSentence(body []Node) []Node {
	var out []Node
	for _, n := range body {
		switch n := n.(type) {
		case Summary:
			if len(out) == 0 {
				return []Node{n}
			}
		case Text:
			if i := sentenceEnd(n.Content); i >= 0 {
				return append(out, Text{At: n.At, Content: n.Content[:i]})
			}
		case StartElement:
			if blockElements[strings.ToLower(n.Name)] && len(out) > 0 {
				return out
			}
		case EndElement:
			if blockElements[strings.ToLower(n.Name)] && len(out) > 0 {
				return out
			}
		}
		out = append(out, n)
	}
	return out
}

// sentenceEnd returns the offset just after the first period that is
// followed by white space, or -1.
func sentenceEnd(s string) int {
	for i := 0; i+1 < len(s); i++ {
		if s[i] == '.' && isWhitespace(rune(s[i+1])) {
			return i + 1
		}
	}
	return -1
}
