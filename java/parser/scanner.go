package parser

// Scanner buffers tokens from a Lexer so the parser can look several
// tokens ahead without consuming them.
type Scanner struct {
	lexer     *Lexer
	token     Token
	prevToken Token
	saved     []Token
}

// NewScanner creates a scanner over src and reads the first token.
func NewScanner(src string, opts ...Option) *Scanner {
	return newScanner(newLexer(src, newConfig(opts)))
}

func newScanner(l *Lexer) *Scanner {
	s := &Scanner{lexer: l}
	s.NextToken()
	return s
}

// Token returns the current token.
func (s *Scanner) Token() Token {
	return s.token
}

// TokenAt returns the token k positions ahead; TokenAt(0) is the current
// token.
func (s *Scanner) TokenAt(k int) Token {
	if k == 0 {
		return s.token
	}
	s.ensureLookahead(k)
	return s.saved[k-1]
}

func (s *Scanner) ensureLookahead(k int) {
	for len(s.saved) < k {
		s.saved = append(s.saved, s.lexer.NextToken())
	}
}

// PrevToken returns the last consumed token.
func (s *Scanner) PrevToken() Token {
	return s.prevToken
}

// NextToken consumes the current token.
func (s *Scanner) NextToken() {
	s.prevToken = s.token
	if len(s.saved) > 0 {
		s.token = s.saved[0]
		s.saved = s.saved[1:]
	} else {
		s.token = s.lexer.NextToken()
	}
}

// Split breaks a compound token starting with '>' into '>' and the rest.
// The '>' becomes the previous token and the rest becomes current.
func (s *Scanner) Split() {
	first, rest := splitToken(s.token)
	s.prevToken = first
	s.token = rest
}

func splitToken(t Token) (Token, Token) {
	var rest TokenKind
	switch t.Kind {
	case TokenShr:
		rest = TokenGT
	case TokenUShr:
		rest = TokenShr
	case TokenGE:
		rest = TokenAssign
	case TokenShrAssign:
		rest = TokenGE
	case TokenUShrAssign:
		rest = TokenShrAssign
	default:
		panic("split of non-splittable token " + t.Kind.String())
	}
	first := Token{Kind: TokenGT, Pos: t.Pos, EndPos: t.Pos + 1, Comments: t.Comments}
	second := Token{Kind: rest, Pos: t.Pos + 1, EndPos: t.EndPos}
	return first, second
}

// ErrPos returns the position of the last reported error.
func (s *Scanner) ErrPos() int {
	return s.lexer.ErrPos()
}

// SetErrPos records pos as the last error position.
func (s *Scanner) SetErrPos(pos int) {
	s.lexer.SetErrPos(pos)
}

// Tokens scans src completely and returns its tokens, ending with
// TokenEOF.
func Tokens(src string, opts ...Option) []Token {
	l := NewLexer(src, opts...)
	var out []Token
	for {
		tok := l.NextToken()
		out = append(out, tok)
		if tok.Kind == TokenEOF {
			return out
		}
	}
}
