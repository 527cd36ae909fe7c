package parser

import "strings"

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError
	TokenIdent
	TokenUnderscore

	// Literals
	TokenIntLiteral
	TokenLongLiteral
	TokenFloatLiteral
	TokenDoubleLiteral
	TokenCharLiteral
	TokenStringLiteral
	TokenTrue
	TokenFalse
	TokenNull

	// Keywords
	TokenAbstract
	TokenAssert
	TokenBoolean
	TokenBreak
	TokenByte
	TokenCase
	TokenCatch
	TokenChar
	TokenClass
	TokenConst
	TokenContinue
	TokenDefault
	TokenDo
	TokenDouble
	TokenElse
	TokenEnum
	TokenExtends
	TokenFinal
	TokenFinally
	TokenFloat
	TokenFor
	TokenGoto
	TokenIf
	TokenImplements
	TokenImport
	TokenInstanceof
	TokenInt
	TokenInterface
	TokenLong
	TokenNative
	TokenNew
	TokenPackage
	TokenPrivate
	TokenProtected
	TokenPublic
	TokenReturn
	TokenShort
	TokenStatic
	TokenStrictfp
	TokenSuper
	TokenSwitch
	TokenSynchronized
	TokenThis
	TokenThrow
	TokenThrows
	TokenTransient
	TokenTry
	TokenVoid
	TokenVolatile
	TokenWhile

	// Operators and punctuation
	TokenArrow
	TokenColonColon
	TokenLParen
	TokenRParen
	TokenLBrace
	TokenRBrace
	TokenLBracket
	TokenRBracket
	TokenSemicolon
	TokenComma
	TokenDot
	TokenEllipsis
	TokenAt

	TokenAssign
	TokenGT
	TokenLT
	TokenNot
	TokenBitNot
	TokenQuestion
	TokenColon
	TokenEQ
	TokenLE
	TokenGE
	TokenNE
	TokenAnd
	TokenOr
	TokenIncrement
	TokenDecrement
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenBitAnd
	TokenBitOr
	TokenBitXor
	TokenPercent
	TokenShl
	TokenShr
	TokenUShr
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenAndAssign
	TokenOrAssign
	TokenXorAssign
	TokenPercentAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign

	tokenKindCount
)

var tokenKindNames = [tokenKindCount]string{
	TokenEOF:           "EOF",
	TokenError:         "Error",
	TokenIdent:         "Identifier",
	TokenUnderscore:    "_",
	TokenIntLiteral:    "IntLiteral",
	TokenLongLiteral:   "LongLiteral",
	TokenFloatLiteral:  "FloatLiteral",
	TokenDoubleLiteral: "DoubleLiteral",
	TokenCharLiteral:   "CharLiteral",
	TokenStringLiteral: "StringLiteral",
	TokenTrue:          "true",
	TokenFalse:         "false",
	TokenNull:          "null",
	TokenAbstract:      "abstract",
	TokenAssert:        "assert",
	TokenBoolean:       "boolean",
	TokenBreak:         "break",
	TokenByte:          "byte",
	TokenCase:          "case",
	TokenCatch:         "catch",
	TokenChar:          "char",
	TokenClass:         "class",
	TokenConst:         "const",
	TokenContinue:      "continue",
	TokenDefault:       "default",
	TokenDo:            "do",
	TokenDouble:        "double",
	TokenElse:          "else",
	TokenEnum:          "enum",
	TokenExtends:       "extends",
	TokenFinal:         "final",
	TokenFinally:       "finally",
	TokenFloat:         "float",
	TokenFor:           "for",
	TokenGoto:          "goto",
	TokenIf:            "if",
	TokenImplements:    "implements",
	TokenImport:        "import",
	TokenInstanceof:    "instanceof",
	TokenInt:           "int",
	TokenInterface:     "interface",
	TokenLong:          "long",
	TokenNative:        "native",
	TokenNew:           "new",
	TokenPackage:       "package",
	TokenPrivate:       "private",
	TokenProtected:     "protected",
	TokenPublic:        "public",
	TokenReturn:        "return",
	TokenShort:         "short",
	TokenStatic:        "static",
	TokenStrictfp:      "strictfp",
	TokenSuper:         "super",
	TokenSwitch:        "switch",
	TokenSynchronized:  "synchronized",
	TokenThis:          "this",
	TokenThrow:         "throw",
	TokenThrows:        "throws",
	TokenTransient:     "transient",
	TokenTry:           "try",
	TokenVoid:          "void",
	TokenVolatile:      "volatile",
	TokenWhile:         "while",
	TokenArrow:         "->",
	TokenColonColon:    "::",
	TokenLParen:        "(",
	TokenRParen:        ")",
	TokenLBrace:        "{",
	TokenRBrace:        "}",
	TokenLBracket:      "[",
	TokenRBracket:      "]",
	TokenSemicolon:     ";",
	TokenComma:         ",",
	TokenDot:           ".",
	TokenEllipsis:      "...",
	TokenAt:            "@",
	TokenAssign:        "=",
	TokenGT:            ">",
	TokenLT:            "<",
	TokenNot:           "!",
	TokenBitNot:        "~",
	TokenQuestion:      "?",
	TokenColon:         ":",
	TokenEQ:            "==",
	TokenLE:            "<=",
	TokenGE:            ">=",
	TokenNE:            "!=",
	TokenAnd:           "&&",
	TokenOr:            "||",
	TokenIncrement:     "++",
	TokenDecrement:     "--",
	TokenPlus:          "+",
	TokenMinus:         "-",
	TokenStar:          "*",
	TokenSlash:         "/",
	TokenBitAnd:        "&",
	TokenBitOr:         "|",
	TokenBitXor:        "^",
	TokenPercent:       "%",
	TokenShl:           "<<",
	TokenShr:           ">>",
	TokenUShr:          ">>>",
	TokenPlusAssign:    "+=",
	TokenMinusAssign:   "-=",
	TokenStarAssign:    "*=",
	TokenSlashAssign:   "/=",
	TokenAndAssign:     "&=",
	TokenOrAssign:      "|=",
	TokenXorAssign:     "^=",
	TokenPercentAssign: "%=",
	TokenShlAssign:     "<<=",
	TokenShrAssign:     ">>=",
	TokenUShrAssign:    ">>>=",
}

func (k TokenKind) String() string {
	if k >= 0 && k < tokenKindCount {
		return tokenKindNames[k]
	}
	return "Unknown"
}

// Describe returns the spelling used for k in diagnostics: quoted for
// keywords and punctuation, a placeholder for names and literals.
func (k TokenKind) Describe() string {
	switch k {
	case TokenEOF:
		return "<EOF>"
	case TokenError:
		return "<error>"
	case TokenIdent:
		return "<identifier>"
	case TokenIntLiteral:
		return "<int literal>"
	case TokenLongLiteral:
		return "<long literal>"
	case TokenFloatLiteral:
		return "<float literal>"
	case TokenDoubleLiteral:
		return "<double literal>"
	case TokenCharLiteral:
		return "<char literal>"
	case TokenStringLiteral:
		return "<string literal>"
	}
	return "'" + k.String() + "'"
}

// IsKeyword reports whether k is a reserved word, including the literals
// true, false and null.
func (k TokenKind) IsKeyword() bool {
	return k == TokenUnderscore || k >= TokenTrue && k <= TokenWhile
}

// IsOperator reports whether k is an operator or punctuation token.
func (k TokenKind) IsOperator() bool {
	return k >= TokenArrow && k < tokenKindCount
}

// IsLiteral reports whether k is a literal token.
func (k TokenKind) IsLiteral() bool {
	return k >= TokenIntLiteral && k <= TokenNull
}

// Token is one lexical unit. Pos and EndPos are byte offsets of the first
// character and one past the last character in the source.
type Token struct {
	Kind   TokenKind
	Pos    int
	EndPos int

	// Name holds the identifier or keyword spelling for named tokens.
	Name string
	// StringVal holds the literal payload: digits without underscores for
	// numbers, the translated value for characters and strings.
	StringVal string
	// Radix is 2, 8, 10 or 16 for numeric literals.
	Radix int
	// TextBlock is set on string literals written with """ delimiters.
	TextBlock bool

	// Comments lists the comments that precede the token, in source order.
	Comments []*Comment
}

// DocComment returns the last Javadoc comment preceding the token.
func (t *Token) DocComment() *Comment {
	for i := len(t.Comments) - 1; i >= 0; i-- {
		if t.Comments[i].Style == CommentJavadoc {
			return t.Comments[i]
		}
	}
	return nil
}

// Deprecated reports whether the token's doc comment carries @deprecated.
func (t *Token) Deprecated() bool {
	c := t.DocComment()
	return c != nil && c.Deprecated()
}

func (t *Token) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	switch {
	case t.Kind == TokenIdent:
		b.WriteString(" " + t.Name)
	case t.Kind.IsLiteral() && t.Kind < TokenTrue:
		b.WriteString(" " + t.StringVal)
	}
	return b.String()
}

var (
	keywords  map[string]TokenKind
	operators map[string]TokenKind
)

func init() {
	keywords = make(map[string]TokenKind)
	for k := TokenTrue; k <= TokenWhile; k++ {
		keywords[tokenKindNames[k]] = k
	}
	keywords["_"] = TokenUnderscore

	operators = make(map[string]TokenKind)
	for k := TokenArrow; k < tokenKindCount; k++ {
		operators[tokenKindNames[k]] = k
	}
}

// LookupKeyword returns the keyword kind spelled ident, or TokenIdent.
// Contextual words such as var, record and sealed are identifiers.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

// lookupOperator returns the operator spelled s and whether one exists.
func lookupOperator(s string) (TokenKind, bool) {
	k, ok := operators[s]
	return k, ok
}
