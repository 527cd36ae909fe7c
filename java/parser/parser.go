package parser

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// Term modes select what a term may be.
const (
	modeExpr     = 0x1
	modeType     = 0x2
	modeNoParams = 0x4
	modeTypeArg  = 0x8
	modeDiamond  = 0x10
	modeNoLambda = 0x20
)

// errorName is the name given to identifiers that could not be parsed.
const errorName = "<error>"

// The parser panics after this many error reports at one token position
// without progress.
const recoveryThreshold = 50

// Unit is the result of parsing one source file.
type Unit struct {
	File        string
	Tree        *Node
	EndPos      EndPosTable
	DocComments DocComments
	Lines       *LineMap
}

// DocComments maps declarations to the doc comment written before them.
type DocComments map[*Node]*Comment

// Parser is a recursive-descent parser for Java source. A Parser reads a
// single input and must not be shared between goroutines.
type Parser struct {
	cfg     *config
	src     string
	s       *Scanner
	token   Token
	log     diag.Handler
	preview *source.Preview
	level   source.Level

	endPos      EndPosTable
	docComments DocComments

	mode     int
	lastmode int

	allowThisIdent      bool
	allowYieldStatement bool
	allowRecords        bool
	allowSealedTypes    bool

	receiverParam *Node

	typeAnnotationsPushedBack     []*Node
	permitTypeAnnotationsPushBack bool

	errorPos int
	count    int
}

// NewParser creates a parser over src and reads its first token.
func NewParser(src string, opts ...Option) *Parser {
	cfg := newConfig(opts)
	p := &Parser{
		cfg:      cfg,
		src:      src,
		level:    cfg.level,
		errorPos: diag.NoPos,
	}
	p.log = diag.HandlerFunc(func(d diag.Diagnostic) {
		if d.File == "" {
			d.File = cfg.file
		}
		cfg.handler.Report(d)
	})
	p.preview = &source.Preview{Enabled: cfg.preview, Level: cfg.level, Handler: p.log}
	lexCfg := *cfg
	lexCfg.handler = p.log
	p.s = newScanner(newLexer(src, &lexCfg))
	p.token = p.s.Token()
	if cfg.endPositions {
		p.endPos = NewSimpleEndPosTable()
	} else {
		p.endPos = NewEmptyEndPosTable()
	}
	if cfg.docComments {
		p.docComments = make(DocComments)
	}
	p.allowYieldStatement = source.SwitchExpression.AllowedInSource(cfg.level)
	p.allowRecords = source.Records.AllowedInSource(cfg.level)
	p.allowSealedTypes = source.SealedClasses.AllowedInSource(cfg.level)
	return p
}

// Parse parses src as a compilation unit.
func Parse(src string, opts ...Option) *Unit {
	p := NewParser(src, opts...)
	return p.unit(p.ParseCompilationUnit())
}

// ParseExpression parses src as a single expression.
func ParseExpression(src string, opts ...Option) *Unit {
	p := NewParser(src, opts...)
	t := p.ParseExpression()
	p.expectEOF()
	return p.unit(t)
}

// ParseType parses src as a type.
func ParseType(src string, opts ...Option) *Unit {
	p := NewParser(src, opts...)
	t := p.ParseType()
	p.expectEOF()
	return p.unit(t)
}

// ParseStatement parses src as a block statement.
func ParseStatement(src string, opts ...Option) *Unit {
	p := NewParser(src, opts...)
	t := p.ParseStatement()
	p.expectEOF()
	return p.unit(t)
}

func (p *Parser) unit(tree *Node) *Unit {
	return &Unit{
		File:        p.cfg.file,
		Tree:        tree,
		EndPos:      p.endPos,
		DocComments: p.docComments,
		Lines:       NewLineMap(p.src),
	}
}

func (p *Parser) expectEOF() {
	if p.token.Kind != TokenEOF {
		p.reportSyntaxError(p.token.Pos, diag.Expected, TokenEOF.Describe())
	}
}

// EndPositions returns the parser's end position table.
func (p *Parser) EndPositions() EndPosTable {
	return p.endPos
}

// DocComments returns the doc comments recorded so far, or nil when they
// are not kept.
func (p *Parser) DocComments() DocComments {
	return p.docComments
}

// Token returns the current token.
func (p *Parser) Token() Token {
	return p.token
}

func (p *Parser) selectExprMode() {
	p.mode = p.mode&modeNoLambda | modeExpr
}

func (p *Parser) selectTypeMode() {
	p.mode = p.mode&modeNoLambda | modeType
}

func (p *Parser) nextToken() {
	p.s.NextToken()
	p.token = p.s.Token()
}

// peekToken reports whether the tokens following the current one have the
// given kinds, starting lookahead+1 tokens ahead.
func (p *Parser) peekToken(lookahead int, kinds ...func(TokenKind) bool) bool {
	for _, kind := range kinds {
		lookahead++
		if !kind(p.s.TokenAt(lookahead).Kind) {
			return false
		}
	}
	return true
}

func is(k TokenKind) func(TokenKind) bool {
	return func(t TokenKind) bool { return t == k }
}

func isIdentOrUnderscore(t TokenKind) bool {
	return t == TokenIdent || t == TokenUnderscore
}

func isLaxIdentifier(t TokenKind) bool {
	return t == TokenIdent || t == TokenUnderscore || t == TokenAssert || t == TokenEnum
}

// skip discards tokens until one of the selected stop sets is reached.
func (p *Parser) skip(stopAtImport, stopAtMemberDecl, stopAtIdentifier, stopAtStatement bool) {
	for {
		switch p.token.Kind {
		case TokenSemicolon:
			p.nextToken()
			return
		case TokenPublic, TokenFinal, TokenAbstract, TokenAt, TokenEOF,
			TokenClass, TokenInterface, TokenEnum:
			return
		case TokenImport:
			if stopAtImport {
				return
			}
		case TokenLBrace, TokenRBrace, TokenPrivate, TokenProtected, TokenStatic,
			TokenTransient, TokenNative, TokenVolatile, TokenSynchronized,
			TokenStrictfp, TokenLT, TokenByte, TokenShort, TokenChar, TokenInt,
			TokenLong, TokenFloat, TokenDouble, TokenBoolean, TokenVoid:
			if stopAtMemberDecl {
				return
			}
		case TokenUnderscore, TokenIdent:
			if stopAtIdentifier {
				return
			}
		case TokenCase, TokenDefault, TokenIf, TokenFor, TokenWhile, TokenDo,
			TokenTry, TokenSwitch, TokenReturn, TokenThrow, TokenBreak,
			TokenContinue, TokenElse, TokenFinally, TokenCatch, TokenThis,
			TokenSuper, TokenNew, TokenAssert:
			if stopAtStatement {
				return
			}
		}
		p.nextToken()
	}
}

// syntaxError reports key at pos and returns an error node wrapping errs.
func (p *Parser) syntaxError(pos int, errs []*Node, key diag.Key, args ...any) *Node {
	p.setErrorEndPos(pos)
	err := &Node{Kind: KindError, Pos: pos, Children: errs, Error: &Error{Key: key, Args: args}}
	p.reportSyntaxError(pos, key, args...)
	if len(errs) > 0 {
		if last := errs[len(errs)-1]; last != nil {
			p.storeEnd(last, pos)
		}
	}
	return p.toP(err)
}

// reportSyntaxError reports key unless an error was already reported at
// or after pos.
func (p *Parser) reportSyntaxError(pos int, key diag.Key, args ...any) {
	if pos > p.s.ErrPos() || pos == diag.NoPos {
		if p.token.Kind == TokenEOF {
			p.log.Report(diag.Errorf(pos, diag.PrematureEOF).WithFlags(diag.Syntax))
		} else {
			p.log.Report(diag.Errorf(pos, key, args...).WithFlags(diag.Syntax))
		}
	}
	p.s.SetErrPos(pos)
	if p.token.Pos == p.errorPos && p.token.Kind != TokenEOF {
		p.count++
		if p.count >= recoveryThreshold {
			panic(fmt.Sprintf("parser: no progress at offset %d after repeated syntax errors", p.token.Pos))
		}
	} else {
		p.count = 0
		p.errorPos = p.token.Pos
	}
}

func (p *Parser) error(pos int, key diag.Key, args ...any) {
	p.log.Report(diag.Errorf(pos, key, args...).WithFlags(diag.Syntax))
}

func (p *Parser) warning(pos int, key diag.Key, args ...any) {
	p.log.Report(diag.Warnf(pos, key, args...))
}

// accept consumes a token of kind k or reports that it was expected.
func (p *Parser) accept(k TokenKind) {
	p.acceptWith(k, diag.Expected)
}

func (p *Parser) acceptWith(k TokenKind, key diag.Key) {
	if p.token.Kind == k {
		p.nextToken()
		return
	}
	p.setErrorEndPos(p.token.Pos)
	p.reportSyntaxError(p.s.PrevToken().EndPos, key, k.Describe())
}

func (p *Parser) illegalAt(pos int) *Node {
	p.setErrorEndPos(pos)
	if p.mode&modeExpr != 0 {
		return p.syntaxError(pos, nil, diag.IllegalStartOfExpr)
	}
	return p.syntaxError(pos, nil, diag.IllegalStartOfType)
}

func (p *Parser) illegal() *Node {
	return p.illegalAt(p.token.Pos)
}

func (p *Parser) checkNoMods(pos int, mods Flags) {
	if mods != 0 {
		lowest := mods & -mods
		p.error(pos, diag.ModNotAllowedHere, lowest.Lowest())
	}
}

func (p *Parser) checkSourceLevel(pos int, f source.Feature) {
	if p.preview.IsPreview(f) && !p.preview.IsEnabled() {
		p.log.Report(p.preview.DisabledError(pos, f))
	} else if !f.AllowedInSource(p.level) {
		min := f.MinLevel()
		p.log.Report(diag.Errorf(pos, diag.FeatureNotSupported, f, p.level.Name(), min.Name()).WithFlags(diag.SourceLevel))
	} else if p.preview.IsPreview(f) {
		p.preview.WarnPreview(pos, f)
	}
}

func (p *Parser) checkFeature(f source.Feature) {
	p.checkSourceLevel(p.token.Pos, f)
}

// attach records dc as the doc comment of tree.
func (p *Parser) attach(tree *Node, dc *Comment) {
	if p.docComments != nil && dc != nil {
		p.docComments[tree] = dc
	}
}

func (p *Parser) setErrorEndPos(pos int) {
	p.endPos.SetErrorEndPos(pos)
}

func (p *Parser) storeEnd(n *Node, end int) {
	p.endPos.StoreEnd(n, end)
}

// to records the end of the current token as the end of n.
func (p *Parser) to(n *Node) *Node {
	p.endPos.StoreEnd(n, p.token.EndPos)
	return n
}

// toP records the end of the previous token as the end of n.
func (p *Parser) toP(n *Node) *Node {
	p.endPos.StoreEnd(n, p.s.PrevToken().EndPos)
	return n
}

func (p *Parser) at(kind NodeKind, pos int, children ...*Node) *Node {
	return &Node{Kind: kind, Pos: pos, Children: children}
}

func (p *Parser) identNode(pos int, name string) *Node {
	return &Node{Kind: KindIdentifier, Pos: pos, Name: name}
}

func (p *Parser) selectNode(pos int, selected *Node, name string) *Node {
	return &Node{Kind: KindFieldAccess, Pos: pos, Name: name, Children: []*Node{selected}}
}

func (p *Parser) erroneous(pos int, errs ...*Node) *Node {
	return &Node{Kind: KindError, Pos: pos, Children: errs}
}

// ident parses an identifier. On failure it returns errorName.
func (p *Parser) ident() string {
	return p.identAllowClass(false)
}

func (p *Parser) identAllowClass(allowClass bool) string {
	switch p.token.Kind {
	case TokenIdent:
		name := p.token.Name
		p.nextToken()
		return name
	case TokenAssert:
		p.error(p.token.Pos, diag.AssertAsIdentifier)
		p.nextToken()
		return errorName
	case TokenEnum:
		p.error(p.token.Pos, diag.EnumAsIdentifier)
		p.nextToken()
		return errorName
	case TokenThis:
		if p.allowThisIdent {
			p.checkFeature(source.TypeAnnotations)
			name := p.token.Name
			p.nextToken()
			return name
		}
		p.error(p.token.Pos, diag.ThisAsIdentifier)
		p.nextToken()
		return errorName
	case TokenUnderscore:
		if source.UnderscoreIdentifier.AllowedInSource(p.level) {
			p.warning(p.token.Pos, diag.UnderscoreAsIdentifier)
		} else {
			p.error(p.token.Pos, diag.UnderscoreAsIdentifier)
		}
		name := p.token.Name
		p.nextToken()
		return name
	}
	p.accept(TokenIdent)
	if allowClass && p.token.Kind == TokenClass {
		p.nextToken()
		return "class"
	}
	return errorName
}

// qualident parses Ident { "." [Annotations] Ident }.
func (p *Parser) qualident(allowAnnos bool) *Node {
	pos := p.token.Pos
	t := p.toP(p.identNode(pos, p.ident()))
	for p.token.Kind == TokenDot {
		pos := p.token.Pos
		p.nextToken()
		var tyannos []*Node
		if allowAnnos {
			tyannos = p.typeAnnotationsOpt()
		}
		t = p.toP(p.selectNode(pos, t, p.ident()))
		if len(tyannos) > 0 {
			t = p.toP(p.annotatedType(tyannos[0].Pos, tyannos, t))
		}
	}
	return t
}

func (p *Parser) annotatedType(pos int, annos []*Node, underlying *Node) *Node {
	n := p.at(KindAnnotatedType, pos, underlying)
	n.Children = append(n.Children, annos...)
	return n
}

// literal converts the current literal token. prefix is "-" for negated
// decimal integers.
func (p *Parser) literal(prefix string, pos int) *Node {
	tok := p.token
	var t *Node
	lit := func(value any) *Node {
		return &Node{Kind: KindLiteral, Pos: pos, Op: tok.Kind, Value: value}
	}
	switch tok.Kind {
	case TokenIntLiteral:
		if v, ok := parseInt(prefix+tok.StringVal, tok.Radix, 32); ok {
			t = lit(int32(v))
		} else {
			p.error(tok.Pos, diag.IntNumberTooLarge, prefix+tok.StringVal)
		}
	case TokenLongLiteral:
		if v, ok := parseInt(prefix+tok.StringVal, tok.Radix, 64); ok {
			t = lit(v)
		} else {
			p.error(tok.Pos, diag.IntNumberTooLarge, prefix+tok.StringVal)
		}
	case TokenFloatLiteral, TokenDoubleLiteral:
		proper := tok.StringVal
		if tok.Radix == 16 {
			proper = "0x" + proper
		}
		bits := 64
		if tok.Kind == TokenFloatLiteral {
			bits = 32
		}
		n := parseFloat(proper, bits)
		switch {
		case n == 0 && !isZero(proper):
			p.error(tok.Pos, diag.FpNumberTooSmall)
		case math.IsInf(n, 1):
			p.error(tok.Pos, diag.FpNumberTooLarge)
		case bits == 32:
			t = lit(float32(n))
		default:
			t = lit(n)
		}
	case TokenCharLiteral:
		r, _ := utf8.DecodeRuneInString(tok.StringVal)
		t = lit(r)
	case TokenStringLiteral:
		t = lit(tok.StringVal)
	case TokenTrue, TokenFalse:
		t = lit(tok.Kind == TokenTrue)
	case TokenNull:
		t = lit(nil)
	default:
		panic("parser: literal called on " + tok.Kind.String())
	}
	if t == nil {
		t = p.erroneous(pos)
	}
	p.storeEnd(t, tok.EndPos)
	p.nextToken()
	return t
}

// parseInt converts an integer literal. Decimal literals are signed;
// other radixes may use every bit of the type.
func parseInt(s string, radix, bits int) (int64, bool) {
	if radix == 10 {
		v, err := strconv.ParseInt(s, 10, bits)
		return v, err == nil
	}
	v, err := strconv.ParseUint(s, radix, bits)
	if err != nil {
		return 0, false
	}
	if bits == 32 {
		return int64(int32(uint32(v))), true
	}
	return int64(v), true
}

func parseFloat(s string, bits int) float64 {
	s = strings.TrimRight(s, "fFdD")
	n, err := strconv.ParseFloat(s, bits)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	return n
}

// isZero reports whether s spells zero: only zeros and dots before the
// first significant digit.
func isZero(s string) bool {
	base := 10
	i := 0
	if len(s) > 1 && (s[1] == 'x' || s[1] == 'X') {
		base = 16
		i = 2
	}
	for i < len(s) && (s[i] == '0' || s[i] == '.') {
		i++
	}
	return !(i < len(s) && digitValue(rune(s[i]), base) > 0)
}
