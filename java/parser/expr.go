package parser

import (
	"strings"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// Operator precedences, lowest first.
const (
	precNone = iota
	precAssign
	precAssignOp
	precCond
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEq
	precOrd
	precShift
	precAdd
	precMul
	precPrefix
	precPostfix
)

const infixPrecedenceLevels = 10

// prec returns the binary precedence of k, or -1 when k is not a binary
// operator.
func prec(k TokenKind) int {
	switch k {
	case TokenOr:
		return precOr
	case TokenAnd:
		return precAnd
	case TokenBitOr:
		return precBitOr
	case TokenBitXor:
		return precBitXor
	case TokenBitAnd:
		return precBitAnd
	case TokenEQ, TokenNE:
		return precEq
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof:
		return precOrd
	case TokenShl, TokenShr, TokenUShr:
		return precShift
	case TokenPlus, TokenMinus:
		return precAdd
	case TokenStar, TokenSlash, TokenPercent:
		return precMul
	}
	return -1
}

func isAssignOp(k TokenKind) bool {
	return k >= TokenPlusAssign && k <= TokenUShrAssign
}

// ParseExpression parses an expression starting at the current token.
func (p *Parser) ParseExpression() *Node {
	return p.termMode(modeExpr)
}

// parsePattern parses a binding, parenthesized or guarded pattern.
func (p *Parser) parsePattern(pos int, mods, parsedType *Node, inInstanceOf bool) *Node {
	var pattern *Node
	if p.token.Kind == TokenLParen && parsedType == nil {
		startPos := p.token.Pos
		p.accept(TokenLParen)
		inner := p.parsePattern(p.token.Pos, nil, nil, false)
		p.accept(TokenRParen)
		pattern = p.toP(p.at(KindParenthesizedPattern, startPos, inner))
	} else {
		if mods == nil {
			mods = p.optFinal(0)
		}
		e := parsedType
		if e == nil {
			e = p.termMode(modeType | modeNoLambda)
		}
		varPos := p.token.Pos
		v := p.toP(p.varDef(varPos, mods, p.ident(), e, nil))
		pattern = p.toP(p.at(KindBindingPattern, pos, v))
	}
	if !inInstanceOf && p.token.Kind == TokenAnd {
		p.checkFeature(source.PatternSwitch)
		p.nextToken()
		guard := p.termMode(modeExpr | modeNoLambda)
		pattern = p.at(KindGuardPattern, pos, pattern, guard)
	}
	return pattern
}

// ParseType parses a type, with optional leading type annotations.
func (p *Parser) ParseType() *Node {
	return p.parseTypeVar(false)
}

func (p *Parser) parseTypeVar(allowVar bool) *Node {
	annotations := p.typeAnnotationsOpt()
	return p.parseTypeAnnotated(allowVar, annotations)
}

func (p *Parser) parseTypeAnnotated(allowVar bool, annotations []*Node) *Node {
	result := p.unannotatedType(allowVar)
	if len(annotations) > 0 {
		result = p.insertAnnotationsToMostInner(result, annotations, false)
	}
	return result
}

func (p *Parser) unannotatedType(allowVar bool) *Node {
	result := p.termMode(modeType)
	name := p.restrictedTypeName(result, !allowVar)
	if name != "" && (!allowVar || name != "var") {
		p.syntaxError(result.Pos, nil, diag.RestrictedTypeNotAllowedHere, name)
	}
	return result
}

func (p *Parser) termMode(newmode int) *Node {
	prevmode := p.mode
	p.mode = newmode
	t := p.term()
	p.lastmode = p.mode
	p.mode = prevmode
	return t
}

// term parses Expression1 [AssignmentOperator Expression1].
func (p *Parser) term() *Node {
	t := p.term1()
	if p.mode&modeExpr != 0 && (p.token.Kind == TokenAssign || isAssignOp(p.token.Kind)) {
		return p.termRest(t)
	}
	return t
}

func (p *Parser) termRest(t *Node) *Node {
	switch k := p.token.Kind; {
	case k == TokenAssign:
		pos := p.token.Pos
		p.nextToken()
		p.selectExprMode()
		t1 := p.term()
		return p.toP(p.at(KindAssignExpr, pos, t, t1))
	case isAssignOp(k):
		pos := p.token.Pos
		p.nextToken()
		p.selectExprMode()
		t1 := p.term()
		n := p.at(KindCompoundAssignExpr, pos, t, t1)
		n.Op = k
		return n
	}
	return t
}

// term1 parses Expression2 ["?" Expression ":" Expression1].
func (p *Parser) term1() *Node {
	t := p.term2()
	if p.mode&modeExpr != 0 && p.token.Kind == TokenQuestion {
		p.selectExprMode()
		return p.term1Rest(t)
	}
	return t
}

func (p *Parser) term1Rest(t *Node) *Node {
	if p.token.Kind != TokenQuestion {
		return t
	}
	pos := p.token.Pos
	p.nextToken()
	t1 := p.term()
	p.accept(TokenColon)
	t2 := p.term1()
	return p.at(KindTernaryExpr, pos, t, t1, t2)
}

// term2 parses Expression3 {infixop Expression3}.
func (p *Parser) term2() *Node {
	t := p.term3()
	if p.mode&modeExpr != 0 && prec(p.token.Kind) >= precOr {
		p.selectExprMode()
		return p.term2Rest(t, precOr)
	}
	return t
}

// term2Rest folds a chain of binary operators with an operand stack and an
// operator stack.
func (p *Parser) term2Rest(t *Node, minprec int) *Node {
	var odStack [infixPrecedenceLevels + 1]*Node
	var opStack [infixPrecedenceLevels + 1]Token
	top := 0
	odStack[0] = t
	topOp := Token{Kind: TokenError}
	for prec(p.token.Kind) >= minprec {
		opStack[top] = topOp

		if p.token.Kind == TokenInstanceof {
			pos := p.token.Pos
			p.nextToken()
			var pattern *Node
			if p.token.Kind == TokenLParen {
				p.checkSourceLevel(p.token.Pos, source.PatternSwitch)
				pattern = p.parsePattern(p.token.Pos, nil, nil, true)
			} else {
				patternPos := p.token.Pos
				mods := p.optFinal(0)
				typePos := p.token.Pos
				typ := p.unannotatedType(false)
				if p.token.Kind == TokenIdent {
					p.checkSourceLevel(p.token.Pos, source.PatternMatchingInInstanceof)
					pattern = p.parsePattern(patternPos, mods, typ, true)
				} else {
					p.checkNoMods(typePos, mods.Flags&^FlagDeprecated)
					if len(mods.Children) > 0 {
						p.checkSourceLevel(mods.Children[0].Pos, source.TypeAnnotations)
						typeAnnos := make([]*Node, len(mods.Children))
						for i, decl := range mods.Children {
							typeAnno := &Node{Kind: KindTypeAnnotation, Pos: decl.Pos, Children: decl.Children}
							p.endPos.ReplaceTree(decl, typeAnno)
							typeAnnos[i] = typeAnno
						}
						typ = p.insertAnnotationsToMostInner(typ, typeAnnos, false)
					}
					pattern = typ
				}
			}
			odStack[top] = p.at(KindInstanceofExpr, pos, odStack[top], pattern)
		} else {
			topOp = p.token
			p.nextToken()
			top++
			odStack[top] = p.term3()
		}
		for top > 0 && prec(topOp.Kind) >= prec(p.token.Kind) {
			bin := p.at(KindBinaryExpr, topOp.Pos, odStack[top-1], odStack[top])
			bin.Op = topOp.Kind
			odStack[top-1] = bin
			top--
			topOp = opStack[top]
		}
	}
	if top != 0 {
		panic("parser: unbalanced operator stack")
	}
	t = odStack[0]
	if isBinary(t, TokenPlus) {
		t = p.foldStrings(t)
	}
	return t
}

func isBinary(n *Node, op TokenKind) bool {
	return n != nil && n.Kind == KindBinaryExpr && n.Op == op
}

func isStringLiteral(n *Node) bool {
	return n != nil && n.Kind == KindLiteral && n.Op == TokenStringLiteral
}

// foldStrings replaces runs of concatenated string literals in tree by
// single literals.
func (p *Parser) foldStrings(tree *Node) *Node {
	if !p.cfg.stringFolding {
		return tree
	}
	var ops, lits []*Node
	needsFolding := false
	curr := tree
	for {
		if isBinary(curr, TokenPlus) {
			needsFolding = p.foldIfNeeded(curr.Children[1], &lits, &ops, false) || needsFolding
			curr = curr.Children[0]
		} else {
			needsFolding = p.foldIfNeeded(curr, &lits, &ops, true) || needsFolding
			break
		}
	}
	if !needsFolding {
		return tree
	}
	res := ops[0]
	for _, op := range ops[1:] {
		bin := p.at(KindBinaryExpr, StartPos(op), res, op)
		bin.Op = TokenPlus
		res = bin
		p.storeEnd(res, EndPos(p.endPos, op))
	}
	return res
}

func (p *Parser) foldIfNeeded(tree *Node, lits, ops *[]*Node, last bool) bool {
	if isStringLiteral(tree) {
		*lits = prepend(*lits, tree)
		return last && p.merge(*lits, ops)
	}
	res := p.merge(*lits, ops)
	*lits = nil
	*ops = prepend(*ops, tree)
	return res
}

func (p *Parser) merge(lits []*Node, ops *[]*Node) bool {
	switch len(lits) {
	case 0:
		return false
	case 1:
		*ops = prepend(*ops, lits[0])
		return false
	}
	var b strings.Builder
	for _, lit := range lits {
		b.WriteString(lit.Value.(string))
	}
	t := &Node{Kind: KindLiteral, Pos: StartPos(lits[0]), Op: TokenStringLiteral, Value: b.String()}
	p.storeEnd(t, EndPos(p.endPos, lits[len(lits)-1]))
	*ops = prepend(*ops, t)
	return true
}

func prepend(list []*Node, n *Node) []*Node {
	return append([]*Node{n}, list...)
}

// term3 parses prefix expressions, casts, lambdas, primaries and their
// selectors.
func (p *Parser) term3() *Node {
	pos := p.token.Pos
	var t *Node
	typeArgs := p.typeArgumentsOptMode(modeExpr)
	switch p.token.Kind {
	case TokenQuestion:
		if p.mode&modeType != 0 && p.mode&(modeTypeArg|modeNoParams) == modeTypeArg {
			p.selectTypeMode()
			return p.typeArgument()
		}
		return p.illegal()
	case TokenIncrement, TokenDecrement, TokenNot, TokenBitNot, TokenPlus, TokenMinus:
		if typeArgs != nil || p.mode&modeExpr == 0 {
			return p.illegal()
		}
		tk := p.token.Kind
		p.nextToken()
		p.selectExprMode()
		if tk == TokenMinus &&
			(p.token.Kind == TokenIntLiteral || p.token.Kind == TokenLongLiteral) &&
			p.token.Radix == 10 {
			p.selectExprMode()
			t = p.literal("-", pos)
		} else {
			t = p.term3()
			n := p.at(KindUnaryExpr, pos, t)
			n.Op = tk
			return n
		}
	case TokenLParen:
		if typeArgs != nil || p.mode&modeExpr == 0 {
			return p.illegal()
		}
		switch pres := p.analyzeParens(); pres {
		case parensCast:
			p.accept(TokenLParen)
			p.selectTypeMode()
			t = p.ParseType()
			targets := []*Node{t}
			for p.token.Kind == TokenBitAnd {
				p.checkFeature(source.IntersectionTypesInCast)
				p.accept(TokenBitAnd)
				targets = append(targets, p.ParseType())
			}
			if len(targets) > 1 {
				t = p.toP(p.at(KindIntersectionType, pos, targets...))
			}
			p.accept(TokenRParen)
			p.selectExprMode()
			t1 := p.term3()
			return p.at(KindCastExpr, pos, t, t1)
		case parensImplicitLambda, parensExplicitLambda:
			t = p.lambdaExpressionOrStatement(true, pres == parensExplicitLambda, pos)
		default:
			p.accept(TokenLParen)
			p.selectExprMode()
			t = p.termRest(p.term1Rest(p.term2Rest(p.term3(), precOr)))
			p.accept(TokenRParen)
			t = p.toP(p.at(KindParenExpr, pos, t))
		}
	case TokenThis:
		if p.mode&modeExpr == 0 {
			return p.illegal()
		}
		p.selectExprMode()
		t = p.to(p.identNode(pos, "this"))
		p.nextToken()
		if typeArgs == nil {
			t = p.argumentsOpt(nil, t)
		} else {
			t = p.arguments(typeArgs, t)
		}
		typeArgs = nil
	case TokenSuper:
		if p.mode&modeExpr == 0 {
			return p.illegal()
		}
		p.selectExprMode()
		t = p.to(p.identNode(pos, "super"))
		t = p.superSuffix(typeArgs, t)
		typeArgs = nil
	case TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral, TokenDoubleLiteral,
		TokenCharLiteral, TokenStringLiteral, TokenTrue, TokenFalse, TokenNull:
		if typeArgs != nil || p.mode&modeExpr == 0 {
			return p.illegal()
		}
		p.selectExprMode()
		t = p.literal("", p.token.Pos)
	case TokenNew:
		if typeArgs != nil {
			return p.illegal()
		}
		if p.mode&modeExpr == 0 {
			return p.illegal()
		}
		p.selectExprMode()
		p.nextToken()
		if p.token.Kind == TokenLT {
			typeArgs = p.typeArguments(false)
		}
		t = p.creator(pos, typeArgs)
		typeArgs = nil
	case TokenAt:
		typeAnnos := p.typeAnnotationsOpt()
		if len(typeAnnos) == 0 {
			panic("parser: expected type annotations")
		}
		expr := p.term3()
		if p.mode&modeType == 0 {
			switch expr.Kind {
			case KindMethodRef:
				expr.Children[0] = p.toP(p.annotatedType(pos, typeAnnos, expr.Children[0]))
				t = expr
			case KindFieldAccess:
				if expr.Name != "class" {
					return p.illegal()
				}
				p.error(p.token.Pos, diag.NoAnnotationsOnDotClass)
				return expr
			default:
				return p.illegalAt(typeAnnos[0].Pos)
			}
		} else {
			t = p.insertAnnotationsToMostInner(expr, typeAnnos, false)
		}
	case TokenUnderscore, TokenIdent, TokenAssert, TokenEnum:
		if typeArgs != nil {
			return p.illegal()
		}
		if p.mode&modeExpr != 0 && p.mode&modeNoLambda == 0 && p.peekToken(0, is(TokenArrow)) {
			t = p.lambdaExpressionOrStatement(false, false, pos)
		} else {
			identPos := p.token.Pos
			t = p.toP(p.identNode(identPos, p.ident()))
		loop:
			for {
				pos = p.token.Pos
				annos := p.typeAnnotationsOpt()

				if len(annos) > 0 && p.token.Kind != TokenLBracket && p.token.Kind != TokenEllipsis {
					return p.illegalAt(annos[0].Pos)
				}

				switch p.token.Kind {
				case TokenLBracket:
					p.nextToken()
					if p.token.Kind == TokenRBracket {
						p.nextToken()
						t = p.bracketsOpt(t, nil)
						t = p.toP(p.at(KindArrayType, pos, t))
						if len(annos) > 0 {
							t = p.toP(p.annotatedType(pos, annos, t))
						}
						t = p.bracketsSuffix(t)
					} else {
						if p.mode&modeExpr != 0 {
							p.selectExprMode()
							t1 := p.term()
							if len(annos) > 0 {
								t = p.illegalAt(annos[0].Pos)
							}
							t = p.to(p.at(KindArrayAccess, pos, t, t1))
						}
						p.accept(TokenRBracket)
					}
					break loop
				case TokenLParen:
					if p.mode&modeExpr != 0 {
						p.selectExprMode()
						t = p.arguments(typeArgs, t)
						if len(annos) > 0 {
							t = p.illegalAt(annos[0].Pos)
						}
						typeArgs = nil
					}
					break loop
				case TokenDot:
					p.nextToken()
					if p.token.Kind == TokenIdent && typeArgs != nil {
						return p.illegal()
					}
					oldmode := p.mode
					p.mode &^= modeNoParams
					typeArgs = p.typeArgumentsOptMode(modeExpr)
					p.mode = oldmode
					if p.mode&modeExpr != 0 {
						switch p.token.Kind {
						case TokenClass:
							if typeArgs != nil {
								return p.illegal()
							}
							p.selectExprMode()
							t = p.to(p.selectNode(pos, t, "class"))
							p.nextToken()
							break loop
						case TokenThis:
							if typeArgs != nil {
								return p.illegal()
							}
							p.selectExprMode()
							t = p.to(p.selectNode(pos, t, "this"))
							p.nextToken()
							break loop
						case TokenSuper:
							p.selectExprMode()
							t = p.to(p.selectNode(pos, t, "super"))
							t = p.superSuffix(typeArgs, t)
							typeArgs = nil
							break loop
						case TokenNew:
							if typeArgs != nil {
								return p.illegal()
							}
							p.selectExprMode()
							pos1 := p.token.Pos
							p.nextToken()
							if p.token.Kind == TokenLT {
								typeArgs = p.typeArguments(false)
							}
							t = p.innerCreator(pos1, typeArgs, t)
							typeArgs = nil
							break loop
						}
					}

					var tyannos []*Node
					if p.mode&modeType != 0 && p.token.Kind == TokenAt {
						tyannos = p.typeAnnotationsOpt()
					}
					t = p.toP(p.selectNode(pos, t, p.ident()))
					if p.token.Pos <= p.endPos.ErrorEndPos() && p.token.Kind == TokenAt {
						// int i = expr.<missing-ident>
						// @Deprecated
						if typeArgs != nil {
							p.illegal()
						}
						return p.toP(t)
					}
					if len(tyannos) > 0 {
						t = p.toP(p.annotatedType(tyannos[0].Pos, tyannos, t))
					}
				case TokenEllipsis:
					if p.permitTypeAnnotationsPushBack {
						p.typeAnnotationsPushedBack = annos
					} else if len(annos) > 0 {
						p.illegalAt(annos[0].Pos)
					}
					break loop
				case TokenLT:
					if p.mode&modeType == 0 && p.isUnboundMemberRef() {
						// A<S>::m
						pos1 := p.token.Pos
						p.accept(TokenLT)
						args := []*Node{t, p.typeArgument()}
						for p.token.Kind == TokenComma {
							p.nextToken()
							args = append(args, p.typeArgument())
						}
						p.accept(TokenGT)
						t = p.toP(p.at(KindParameterizedType, pos1, args...))
						for p.token.Kind == TokenDot {
							p.nextToken()
							p.selectTypeMode()
							selPos := p.token.Pos
							t = p.toP(p.selectNode(selPos, t, p.ident()))
							t = p.typeArgumentsOptTree(t)
						}
						t = p.bracketsOpt(t, nil)
						if p.token.Kind != TokenColonColon {
							t = p.illegal()
						}
						p.selectExprMode()
						return p.term3Rest(t, typeArgs)
					}
					break loop
				default:
					break loop
				}
			}
		}
		if typeArgs != nil {
			p.illegal()
		}
		t = p.typeArgumentsOptTree(t)
	case TokenByte, TokenShort, TokenChar, TokenInt, TokenLong, TokenFloat,
		TokenDouble, TokenBoolean:
		if typeArgs != nil {
			p.illegal()
		}
		t = p.bracketsSuffix(p.bracketsOpt(p.basicType(), nil))
	case TokenVoid:
		if typeArgs != nil {
			p.illegal()
		}
		if p.mode&modeExpr != 0 {
			p.nextToken()
			if p.token.Kind != TokenDot {
				return p.illegalAt(pos)
			}
			ti := p.toP(&Node{Kind: KindPrimitiveType, Pos: pos, Op: TokenVoid})
			t = p.bracketsSuffix(ti)
		} else {
			// void is passed on as a type so that m.<void>invoke() parses.
			ti := p.to(&Node{Kind: KindPrimitiveType, Pos: pos, Op: TokenVoid})
			p.nextToken()
			return ti
		}
	case TokenSwitch:
		p.checkFeature(source.SwitchExpression)
		p.allowYieldStatement = true
		switchPos := p.token.Pos
		p.nextToken()
		selector := p.parExpression()
		p.accept(TokenLBrace)
		e := p.at(KindSwitchExpr, switchPos, selector)
		for {
			pos = p.token.Pos
			switch p.token.Kind {
			case TokenCase, TokenDefault:
				e.Children = append(e.Children, p.switchExpressionStatementGroup())
			case TokenRBrace, TokenEOF:
				p.to(e)
				p.accept(TokenRBrace)
				return e
			default:
				p.nextToken()
				p.syntaxError(pos, nil, diag.Expected3,
					TokenCase.Describe(), TokenDefault.Describe(), TokenRBrace.Describe())
			}
		}
	default:
		return p.illegal()
	}
	return p.term3Rest(t, typeArgs)
}

func (p *Parser) switchExpressionStatementGroup() *Node {
	casePos := p.token.Pos
	labels := p.at(KindCaseLabels, casePos)

	if p.token.Kind == TokenDefault {
		p.nextToken()
		labels.AddChild(p.toP(p.at(KindDefaultCaseLabel, casePos)))
	} else {
		p.accept(TokenCase)
		for {
			labels.AddChild(p.parseCaseLabel())
			if p.token.Kind != TokenComma {
				break
			}
			p.checkFeature(source.SwitchMultipleCaseLabels)
			p.nextToken()
		}
	}
	c := &Node{Kind: KindSwitchCase, Pos: casePos}
	if p.token.Kind == TokenArrow {
		p.checkFeature(source.SwitchRule)
		p.nextToken()
		c.Op = TokenArrow
		if p.token.Kind == TokenThrow || p.token.Kind == TokenLBrace {
			stat := p.ParseStatement()
			c.Children = []*Node{labels, stat, stat}
		} else {
			value := p.ParseExpression()
			yield := p.to(p.at(KindYieldStmt, StartPos(value), value))
			c.Children = []*Node{labels, value, yield}
			p.accept(TokenSemicolon)
		}
	} else {
		p.acceptExpected2(TokenColon, TokenArrow)
		c.Op = TokenColon
		c.Children = append([]*Node{labels, nil}, p.blockStatements()...)
	}
	return p.toP(c)
}

// acceptExpected2 consumes k or reports that k or alt was expected.
func (p *Parser) acceptExpected2(k, alt TokenKind) {
	if p.token.Kind == k {
		p.nextToken()
		return
	}
	p.setErrorEndPos(p.token.Pos)
	p.reportSyntaxError(p.s.PrevToken().EndPos, diag.Expected2, k.Describe(), alt.Describe())
}

// term3Rest parses selectors, array accesses, method references and
// postfix operators following a primary.
func (p *Parser) term3Rest(t, typeArgs *Node) *Node {
	if typeArgs != nil {
		p.illegal()
	}
	for {
		pos1 := p.token.Pos
		annos := p.typeAnnotationsOpt()

		if p.token.Kind == TokenLBracket {
			p.nextToken()
			if p.mode&modeType != 0 {
				oldmode := p.mode
				p.selectTypeMode()
				if p.token.Kind == TokenRBracket {
					p.nextToken()
					t = p.bracketsOpt(t, nil)
					t = p.toP(p.at(KindArrayType, pos1, t))
					if p.token.Kind == TokenColonColon {
						p.selectExprMode()
						continue
					}
					if len(annos) > 0 {
						t = p.toP(p.annotatedType(pos1, annos, t))
					}
					return t
				}
				p.mode = oldmode
			}
			if p.mode&modeExpr != 0 {
				p.selectExprMode()
				t1 := p.term()
				t = p.to(p.at(KindArrayAccess, pos1, t, t1))
			}
			p.accept(TokenRBracket)
		} else if p.token.Kind == TokenDot {
			p.nextToken()
			typeArgs = p.typeArgumentsOptMode(modeExpr)
			if p.token.Kind == TokenSuper && p.mode&modeExpr != 0 {
				p.selectExprMode()
				t = p.to(p.selectNode(pos1, t, "super"))
				p.nextToken()
				t = p.arguments(typeArgs, t)
				typeArgs = nil
			} else if p.token.Kind == TokenNew && p.mode&modeExpr != 0 {
				if typeArgs != nil {
					return p.illegal()
				}
				p.selectExprMode()
				pos2 := p.token.Pos
				p.nextToken()
				if p.token.Kind == TokenLT {
					typeArgs = p.typeArguments(false)
				}
				t = p.innerCreator(pos2, typeArgs, t)
				typeArgs = nil
			} else {
				var tyannos []*Node
				if p.mode&modeType != 0 && p.token.Kind == TokenAt {
					tyannos = p.typeAnnotationsOpt()
				}
				t = p.toP(p.selectNode(pos1, t, p.identAllowClass(true)))
				if p.token.Pos <= p.endPos.ErrorEndPos() && p.token.Kind == TokenAt {
					// int i = expr.<missing-ident>
					// @Deprecated
					break
				}
				if len(tyannos) > 0 {
					t = p.toP(p.annotatedType(tyannos[0].Pos, tyannos, t))
				}
				t = p.argumentsOpt(typeArgs, p.typeArgumentsOptTree(t))
				typeArgs = nil
			}
		} else if p.mode&modeExpr != 0 && p.token.Kind == TokenColonColon {
			p.selectExprMode()
			if typeArgs != nil {
				return p.illegal()
			}
			p.accept(TokenColonColon)
			t = p.memberReferenceSuffixAt(pos1, t)
		} else {
			if len(annos) > 0 {
				if p.permitTypeAnnotationsPushBack {
					p.typeAnnotationsPushedBack = annos
				} else {
					return p.illegalAt(annos[0].Pos)
				}
			}
			break
		}
	}
	for (p.token.Kind == TokenIncrement || p.token.Kind == TokenDecrement) && p.mode&modeExpr != 0 {
		p.selectExprMode()
		n := p.to(p.at(KindPostfixExpr, p.token.Pos, t))
		n.Op = p.token.Kind
		t = n
		p.nextToken()
	}
	return p.toP(t)
}

// isUnboundMemberRef decides whether an identifier followed by '<' starts
// a generic method reference qualifier such as A<S>::m. It looks for the
// matching '>' and checks that '.', '[' or '::' follows.
func (p *Parser) isUnboundMemberRef() bool {
	pos, depth := 0, 0
outer:
	for t := p.s.TokenAt(pos); ; pos++ {
		t = p.s.TokenAt(pos)
		switch t.Kind {
		case TokenIdent, TokenUnderscore, TokenQuestion, TokenExtends, TokenSuper,
			TokenDot, TokenRBracket, TokenLBracket, TokenComma,
			TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar, TokenAt:
		case TokenLParen:
			// skip annotation values
			nesting := 0
			for ; ; pos++ {
				switch p.s.TokenAt(pos).Kind {
				case TokenEOF:
					return false
				case TokenLParen:
					nesting++
				case TokenRParen:
					nesting--
					if nesting == 0 {
						continue outer
					}
				}
			}
		case TokenLT:
			depth++
		case TokenUShr, TokenShr, TokenGT:
			switch t.Kind {
			case TokenUShr:
				depth -= 3
			case TokenShr:
				depth -= 2
			default:
				depth--
			}
			if depth == 0 {
				next := p.s.TokenAt(pos + 1).Kind
				return next == TokenDot || next == TokenLBracket || next == TokenColonColon
			}
		default:
			return false
		}
	}
}

type parensResult int

const (
	parensCast parensResult = iota
	parensExplicitLambda
	parensImplicitLambda
	parensParens
)

// analyzeParens classifies the parenthesized construct at the current
// token as a cast, a lambda with explicit or implicit parameters, or a
// parenthesized expression, without consuming any tokens.
func (p *Parser) analyzeParens() parensResult {
	depth := 0
	isType := false
	defaultResult := parensParens
	for lookahead := 0; ; lookahead++ {
		tk := p.s.TokenAt(lookahead).Kind
		switch tk {
		case TokenComma, TokenExtends, TokenSuper, TokenDot, TokenBitAnd:
			if tk == TokenComma {
				isType = true
			}
		case TokenQuestion:
			if p.peekToken(lookahead, is(TokenExtends)) || p.peekToken(lookahead, is(TokenSuper)) {
				// wildcards
				isType = true
			}
		case TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar, TokenVoid:
			if p.peekToken(lookahead, is(TokenRParen)) {
				// Type, ')' -> cast
				return parensCast
			} else if p.peekToken(lookahead, isLaxIdentifier) {
				// Type, Identifier -> explicit lambda
				return parensExplicitLambda
			}
		case TokenLParen:
			if lookahead != 0 {
				// '(' in a non-starting position -> parens
				return parensParens
			} else if p.peekToken(lookahead, is(TokenRParen)) {
				// '(', ')' -> explicit lambda
				return parensExplicitLambda
			}
		case TokenRParen:
			// something that looks like a type makes this a cast
			if isType {
				return parensCast
			}
			switch p.s.TokenAt(lookahead + 1).Kind {
			case TokenNot, TokenBitNot,
				TokenLParen, TokenThis, TokenSuper,
				TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral,
				TokenDoubleLiteral, TokenCharLiteral, TokenStringLiteral,
				TokenTrue, TokenFalse, TokenNull,
				TokenNew, TokenIdent, TokenAssert, TokenEnum, TokenUnderscore,
				TokenSwitch,
				TokenByte, TokenShort, TokenChar, TokenInt,
				TokenLong, TokenFloat, TokenDouble, TokenBoolean, TokenVoid:
				return parensCast
			default:
				return defaultResult
			}
		case TokenUnderscore, TokenAssert, TokenEnum, TokenIdent:
			if p.peekToken(lookahead, isLaxIdentifier) {
				// Identifier, Identifier -> explicit lambda
				return parensExplicitLambda
			} else if p.peekToken(lookahead, is(TokenRParen), is(TokenArrow)) {
				// Identifier, ')' '->' -> implicit lambda
				if p.mode&modeNoLambda == 0 {
					return parensImplicitLambda
				}
				return parensParens
			} else if depth == 0 && p.peekToken(lookahead, is(TokenComma)) {
				defaultResult = parensImplicitLambda
			}
			isType = false
		case TokenFinal, TokenEllipsis:
			// only explicit lambdas have these
			return parensExplicitLambda
		case TokenAt:
			isType = true
			lookahead = p.skipAnnotation(lookahead)
		case TokenLBracket:
			if p.peekToken(lookahead, is(TokenRBracket), isLaxIdentifier) {
				// '[', ']', Identifier -> explicit lambda
				return parensExplicitLambda
			} else if p.peekToken(lookahead, is(TokenRBracket), is(TokenRParen)) ||
				p.peekToken(lookahead, is(TokenRBracket), is(TokenBitAnd)) {
				// '[', ']', ')' -> cast
				// '[', ']', '&' -> cast (intersection type)
				return parensCast
			} else if p.peekToken(lookahead, is(TokenRBracket)) {
				isType = true
				lookahead++
			} else {
				return parensParens
			}
		case TokenLT:
			depth++
		case TokenUShr, TokenShr, TokenGT:
			switch tk {
			case TokenUShr:
				depth -= 3
			case TokenShr:
				depth -= 2
			default:
				depth--
			}
			if depth == 0 {
				if p.peekToken(lookahead, is(TokenRParen)) || p.peekToken(lookahead, is(TokenBitAnd)) {
					// '>', ')' -> cast
					// '>', '&' -> cast
					return parensCast
				} else if p.peekToken(lookahead, isLaxIdentifier, is(TokenComma)) ||
					p.peekToken(lookahead, isLaxIdentifier, is(TokenRParen), is(TokenArrow)) ||
					p.peekToken(lookahead, is(TokenEllipsis)) {
					// '>', Identifier, ',' -> explicit lambda
					// '>', Identifier, ')', '->' -> explicit lambda
					// '>', '...' -> explicit lambda
					return parensExplicitLambda
				}
				// a generic cast, an unbound method reference or an
				// explicit lambda
				isType = true
			} else if depth < 0 {
				// unbalanced '<', '>'
				return parensParens
			}
		default:
			// includes EOF
			return defaultResult
		}
	}
}

func (p *Parser) skipAnnotation(lookahead int) int {
	lookahead++ // '@'
	for p.peekToken(lookahead, is(TokenDot)) {
		lookahead += 2
	}
	if p.peekToken(lookahead, is(TokenLParen)) {
		lookahead++
		// skip annotation values
		nesting := 0
		for ; ; lookahead++ {
			switch p.s.TokenAt(lookahead).Kind {
			case TokenEOF:
				return lookahead
			case TokenLParen:
				nesting++
			case TokenRParen:
				nesting--
				if nesting == 0 {
					return lookahead
				}
			}
		}
	}
	return lookahead
}

func (p *Parser) lambdaExpressionOrStatement(hasParens, explicitParams bool, pos int) *Node {
	var params []*Node
	if explicitParams {
		params = p.formalParameters(true, false)
	} else {
		params = p.implicitParameters(hasParens)
	}
	if explicitParams {
		var classifier lambdaClassifier
		for _, param := range params {
			vartype := param.Child(1)
			if vartype != nil && vartype.Kind == KindArrayType {
				if name := p.restrictedTypeName(vartype, false); name != "" {
					if source.VarSyntaxImplicitLambdas.AllowedInSource(p.level) {
						p.error(param.Pos, diag.RestrictedTypeNotAllowedArray, name)
					} else {
						p.error(param.Pos, diag.RestrictedTypeNotAllowedHere, name)
					}
				}
			}
			classifier.addParameter(p, param)
			if classifier.kind == lambdaParamError {
				break
			}
		}
		if classifier.fragment != "" {
			p.error(pos, diag.InvalidLambdaParameterDeclaration, classifier.fragment)
		}
		for _, param := range params {
			if vartype := param.Child(1); vartype != nil && p.restrictedTypeName(vartype, true) != "" {
				p.checkSourceLevel(param.Pos, source.VarSyntaxImplicitLambdas)
				param.Children[1] = nil
				param.Flags |= FlagImplicitType
			}
		}
	}
	return p.lambdaExpressionOrStatementRest(params, pos)
}

type lambdaParamKind int

const (
	lambdaParamNone lambdaParamKind = iota
	lambdaParamVar
	lambdaParamExplicit
	lambdaParamImplicit
	lambdaParamError
)

// lambdaMixing gives the diagnostic fragment for mixing two kinds of
// lambda parameter, indexed by var, explicit and implicit.
var lambdaMixing = [3][3]string{
	{"", "cannot mix 'var' and explicitly-typed parameters", "cannot mix 'var' and implicitly-typed parameters"},
	{"cannot mix 'var' and explicitly-typed parameters", "", "cannot mix implicitly-typed and explicitly-typed parameters"},
	{"cannot mix 'var' and implicitly-typed parameters", "cannot mix implicitly-typed and explicitly-typed parameters", ""},
}

type lambdaClassifier struct {
	kind     lambdaParamKind
	fragment string
}

func (c *lambdaClassifier) addParameter(p *Parser, param *Node) {
	vartype := param.Child(1)
	if vartype != nil && param.Name != "" {
		if p.restrictedTypeName(vartype, false) != "" {
			c.reduce(p, lambdaParamVar)
		} else {
			c.reduce(p, lambdaParamExplicit)
		}
	}
	if vartype == nil && param.Name != "" || vartype != nil && param.Name == "" {
		c.reduce(p, lambdaParamImplicit)
	}
}

func (c *lambdaClassifier) reduce(p *Parser, newKind lambdaParamKind) {
	if c.kind == lambdaParamNone {
		c.kind = newKind
		return
	}
	if c.kind != newKind && c.kind != lambdaParamError {
		current := c.kind
		c.kind = lambdaParamError
		involvesVar := current == lambdaParamVar || newKind == lambdaParamVar
		if source.VarSyntaxImplicitLambdas.AllowedInSource(p.level) || !involvesVar {
			c.fragment = lambdaMixing[current-lambdaParamVar][newKind-lambdaParamVar]
		}
	}
}

func (p *Parser) lambdaExpressionOrStatementRest(params []*Node, pos int) *Node {
	p.checkFeature(source.Lambda)
	p.accept(TokenArrow)
	if p.token.Kind == TokenLBrace {
		return p.lambdaStatement(params, pos, p.token.Pos)
	}
	return p.lambdaExpression(params, pos)
}

func (p *Parser) lambdaStatement(params []*Node, pos, pos2 int) *Node {
	block := p.block(pos2, 0)
	return p.toP(p.at(KindLambdaExpr, pos, p.at(KindParameters, pos, params...), block))
}

func (p *Parser) lambdaExpression(params []*Node, pos int) *Node {
	expr := p.ParseExpression()
	return p.toP(p.at(KindLambdaExpr, pos, p.at(KindParameters, pos, params...), expr))
}

// superSuffix parses Arguments | "::" ... | "." [TypeArguments] Ident [Arguments].
func (p *Parser) superSuffix(typeArgs, t *Node) *Node {
	p.nextToken()
	if p.token.Kind == TokenLParen || typeArgs != nil {
		t = p.arguments(typeArgs, t)
	} else if p.token.Kind == TokenColonColon {
		if typeArgs != nil {
			return p.illegal()
		}
		t = p.memberReferenceSuffix(t)
	} else {
		pos := p.token.Pos
		p.accept(TokenDot)
		if p.token.Kind == TokenLT {
			typeArgs = p.typeArguments(false)
		} else {
			typeArgs = nil
		}
		t = p.toP(p.selectNode(pos, t, p.ident()))
		t = p.argumentsOpt(typeArgs, t)
	}
	return t
}

func (p *Parser) basicType() *Node {
	t := p.to(&Node{Kind: KindPrimitiveType, Pos: p.token.Pos, Op: p.token.Kind})
	p.nextToken()
	return t
}

func (p *Parser) argumentsOpt(typeArgs, t *Node) *Node {
	if p.mode&modeExpr != 0 && p.token.Kind == TokenLParen || typeArgs != nil {
		p.selectExprMode()
		return p.arguments(typeArgs, t)
	}
	return t
}

// argumentList parses "(" [Expression {"," Expression}] ")".
func (p *Parser) argumentList() []*Node {
	var args []*Node
	if p.token.Kind == TokenLParen {
		p.nextToken()
		if p.token.Kind != TokenRParen {
			args = append(args, p.ParseExpression())
			for p.token.Kind == TokenComma {
				p.nextToken()
				args = append(args, p.ParseExpression())
			}
		}
		p.accept(TokenRParen)
	} else {
		p.syntaxError(p.token.Pos, nil, diag.Expected, TokenLParen.Describe())
	}
	return args
}

func (p *Parser) arguments(typeArgs, t *Node) *Node {
	pos := p.token.Pos
	args := p.argumentList()
	mi := p.at(KindCallExpr, pos, append([]*Node{t, typeArgs}, args...)...)
	if t.Kind == KindIdentifier && p.isInvalidUnqualifiedMethodIdentifier(t.Pos, t.Name) {
		p.error(t.Pos, diag.InvalidYield)
		mi = p.erroneous(pos, mi)
	}
	return p.toP(mi)
}

func (p *Parser) isInvalidUnqualifiedMethodIdentifier(pos int, name string) bool {
	if name == "yield" {
		if p.allowYieldStatement {
			return true
		}
		p.warning(pos, diag.InvalidYield)
	}
	return false
}

// typeArgumentsOptTree parses optional type arguments applied to t.
func (p *Parser) typeArgumentsOptTree(t *Node) *Node {
	if p.token.Kind == TokenLT && p.mode&modeType != 0 && p.mode&modeNoParams == 0 {
		p.selectTypeMode()
		return p.typeArgumentsTree(t, false)
	}
	return t
}

// typeArgumentsOptMode parses optional type arguments allowed in useMode
// and returns nil when there are none.
func (p *Parser) typeArgumentsOptMode(useMode int) *Node {
	if p.token.Kind == TokenLT {
		if p.mode&useMode == 0 || p.mode&modeNoParams != 0 {
			p.illegal()
		}
		p.mode = useMode
		return p.typeArguments(false)
	}
	return nil
}

// typeArguments parses "<" TypeArgument {"," TypeArgument} ">". With
// diamondAllowed, "<>" yields an empty TypeArguments node.
func (p *Parser) typeArguments(diamondAllowed bool) *Node {
	pos := p.token.Pos
	if p.token.Kind != TokenLT {
		return p.at(KindTypeArguments, pos, p.syntaxError(pos, nil, diag.Expected, TokenLT.Describe()))
	}
	p.nextToken()
	if p.token.Kind == TokenGT && diamondAllowed {
		p.checkFeature(source.Diamond)
		p.mode |= modeDiamond
		p.nextToken()
		return p.toP(p.at(KindTypeArguments, pos))
	}
	args := p.at(KindTypeArguments, pos)
	next := func() *Node {
		if p.mode&modeExpr == 0 {
			return p.typeArgument()
		}
		return p.ParseType()
	}
	args.AddChild(next())
	for p.token.Kind == TokenComma {
		p.nextToken()
		args.AddChild(next())
	}
	switch p.token.Kind {
	case TokenUShrAssign, TokenShrAssign, TokenGE, TokenUShr, TokenShr:
		p.s.Split()
		p.token = p.s.Token()
	case TokenGT:
		p.nextToken()
	default:
		args.AddChild(p.syntaxError(p.token.Pos, nil, diag.Expected, TokenGT.Describe()))
	}
	return p.toP(args)
}

// typeArgument parses a type or a wildcard.
func (p *Parser) typeArgument() *Node {
	annotations := p.typeAnnotationsOpt()
	if p.token.Kind != TokenQuestion {
		return p.parseTypeAnnotated(false, annotations)
	}
	pos := p.token.Pos
	p.nextToken()
	var result *Node
	switch {
	case p.token.Kind == TokenExtends || p.token.Kind == TokenSuper:
		kind := p.token.Kind
		p.nextToken()
		bound := p.ParseType()
		result = &Node{Kind: KindWildcard, Pos: pos, Op: kind, Children: []*Node{bound}}
	case isLaxIdentifier(p.token.Kind):
		// error recovery
		wc := p.toP(&Node{Kind: KindWildcard, Pos: pos, Op: TokenQuestion, Children: []*Node{nil}})
		idPos := p.token.Pos
		id := p.toP(p.identNode(idPos, p.ident()))
		err := p.erroneous(pos, wc, id)
		err.Error = &Error{Key: diag.Expected3, Args: []any{TokenGT.Describe(), TokenExtends.Describe(), TokenSuper.Describe()}}
		p.reportSyntaxError(pos, diag.Expected3, TokenGT.Describe(), TokenExtends.Describe(), TokenSuper.Describe())
		result = err
	default:
		result = p.toP(&Node{Kind: KindWildcard, Pos: pos, Op: TokenQuestion, Children: []*Node{nil}})
	}
	if len(annotations) > 0 {
		result = p.toP(p.annotatedType(annotations[0].Pos, annotations, result))
	}
	return result
}

func (p *Parser) typeArgumentsTree(t *Node, diamondAllowed bool) *Node {
	pos := p.token.Pos
	args := p.typeArguments(diamondAllowed)
	return p.toP(p.at(KindParameterizedType, pos, append([]*Node{t}, args.Children...)...))
}

// bracketsOpt parses { [Annotations] "[" "]" }. annotations target t.
func (p *Parser) bracketsOpt(t *Node, annotations []*Node) *Node {
	nextLevelAnnotations := p.typeAnnotationsOpt()

	if p.token.Kind == TokenLBracket {
		pos := p.token.Pos
		p.nextToken()
		t = p.bracketsOptCont(t, pos, nextLevelAnnotations)
	} else if len(nextLevelAnnotations) > 0 {
		if p.permitTypeAnnotationsPushBack {
			p.typeAnnotationsPushedBack = nextLevelAnnotations
		} else {
			return p.illegalAt(nextLevelAnnotations[0].Pos)
		}
	}

	if len(annotations) > 0 {
		t = p.toP(p.annotatedType(p.token.Pos, annotations, t))
	}
	return t
}

func (p *Parser) bracketsOptCont(t *Node, pos int, annotations []*Node) *Node {
	p.accept(TokenRBracket)
	t = p.bracketsOpt(t, nil)
	t = p.toP(p.at(KindArrayType, pos, t))
	if len(annotations) > 0 {
		t = p.toP(p.annotatedType(pos, annotations, t))
	}
	return t
}

// bracketsSuffix parses the ".class" of a class literal in expression mode.
func (p *Parser) bracketsSuffix(t *Node) *Node {
	if p.mode&modeExpr != 0 && p.token.Kind == TokenDot {
		p.selectExprMode()
		pos := p.token.Pos
		p.nextToken()
		p.accept(TokenClass)
		if p.token.Pos == p.endPos.ErrorEndPos() {
			// error recovery
			name := errorName
			if isLaxIdentifier(p.token.Kind) {
				name = p.token.Name
				p.nextToken()
			}
			t = p.erroneous(pos, p.toP(p.selectNode(pos, t, name)))
		} else {
			if t.Kind == KindArrayType && containsTypeAnnotation(t) || t.Kind == KindAnnotatedType {
				p.syntaxError(p.token.Pos, nil, diag.NoAnnotationsOnDotClass)
			}
			t = p.toP(p.selectNode(pos, t, "class"))
		}
	} else if p.mode&modeType != 0 {
		if p.token.Kind != TokenColonColon {
			p.selectTypeMode()
		}
	} else if p.token.Kind != TokenColonColon {
		p.syntaxError(p.token.Pos, nil, diag.DotClassExpected)
	}
	return t
}

func containsTypeAnnotation(t *Node) bool {
	found := false
	Inspect(t, func(n *Node) bool {
		if n.Kind == KindAnnotatedType {
			found = true
		}
		return !found
	})
	return found
}

func (p *Parser) memberReferenceSuffix(t *Node) *Node {
	pos1 := p.token.Pos
	p.accept(TokenColonColon)
	return p.memberReferenceSuffixAt(pos1, t)
}

// memberReferenceSuffixAt parses [TypeArguments] (Ident | "new") after "::".
func (p *Parser) memberReferenceSuffixAt(pos1 int, t *Node) *Node {
	p.checkFeature(source.MethodReferences)
	p.selectExprMode()
	var typeArgs *Node
	if p.token.Kind == TokenLT {
		typeArgs = p.typeArguments(false)
	}
	var name string
	if p.token.Kind == TokenNew {
		name = "<init>"
		p.nextToken()
	} else {
		name = p.ident()
	}
	return p.toP(&Node{Kind: KindMethodRef, Pos: StartPos(t), Name: name, Children: []*Node{t, typeArgs}})
}

// creator parses [Annotations] Qualident [TypeArguments] followed by an
// array or class creator.
func (p *Parser) creator(newpos int, typeArgs *Node) *Node {
	newAnnotations := p.typeAnnotationsOpt()

	switch p.token.Kind {
	case TokenByte, TokenShort, TokenChar, TokenInt, TokenLong, TokenFloat,
		TokenDouble, TokenBoolean:
		if typeArgs == nil {
			if len(newAnnotations) == 0 {
				return p.arrayCreatorRest(newpos, p.basicType())
			}
			return p.arrayCreatorRest(newpos, p.toP(p.annotatedType(newAnnotations[0].Pos, newAnnotations, p.basicType())))
		}
	}
	t := p.qualident(true)

	oldmode := p.mode
	p.selectTypeMode()
	diamondFound := false
	lastTypeargsPos := -1
	if p.token.Kind == TokenLT {
		lastTypeargsPos = p.token.Pos
		t = p.typeArgumentsTree(t, true)
		diamondFound = p.mode&modeDiamond != 0
	}
	for p.token.Kind == TokenDot {
		if diamondFound {
			// cannot select after a diamond
			p.illegal()
		}
		pos := p.token.Pos
		p.nextToken()
		tyannos := p.typeAnnotationsOpt()
		t = p.toP(p.selectNode(pos, t, p.ident()))

		if len(tyannos) > 0 {
			t = p.toP(p.annotatedType(tyannos[0].Pos, tyannos, t))
		}

		if p.token.Kind == TokenLT {
			lastTypeargsPos = p.token.Pos
			t = p.typeArgumentsTree(t, true)
			diamondFound = p.mode&modeDiamond != 0
		}
	}
	p.mode = oldmode
	switch p.token.Kind {
	case TokenLBracket, TokenAt:
		// type annotations for non primitive arrays
		if len(newAnnotations) > 0 {
			t = p.insertAnnotationsToMostInner(t, newAnnotations, false)
		}

		e := p.arrayCreatorRest(newpos, t)
		if diamondFound {
			p.reportSyntaxError(lastTypeargsPos, diag.CannotCreateArrayWithDiamond)
			err := p.erroneous(newpos, e)
			err.Error = &Error{Key: diag.CannotCreateArrayWithDiamond}
			return p.toP(err)
		} else if typeArgs != nil {
			pos := newpos
			if len(typeArgs.Children) > 0 && typeArgs.Children[0].Pos != diag.NoPos {
				pos = typeArgs.Children[0].Pos
			}
			p.setErrorEndPos(p.s.PrevToken().EndPos)
			err := p.erroneous(pos, append([]*Node{e}, typeArgs.Children...)...)
			err.Error = &Error{Key: diag.CannotCreateArrayWithTypeArguments}
			p.reportSyntaxError(pos, diag.CannotCreateArrayWithTypeArguments)
			return p.toP(err)
		}
		return e
	case TokenLParen:
		// type annotations for instantiations and anonymous classes
		if len(newAnnotations) > 0 {
			t = p.insertAnnotationsToMostInner(t, newAnnotations, false)
		}
		return p.classCreatorRest(newpos, nil, typeArgs, t)
	}
	p.setErrorEndPos(p.token.Pos)
	p.reportSyntaxError(p.token.Pos, diag.Expected2, TokenLParen.Describe(), TokenLBracket.Describe())
	t = p.toP(p.at(KindNewExpr, newpos, nil, typeArgs, t, nil))
	err := p.erroneous(newpos, t)
	err.Error = &Error{Key: diag.Expected2, Args: []any{TokenLParen.Describe(), TokenLBracket.Describe()}}
	return p.toP(err)
}

// innerCreator parses [Annotations] Ident [TypeArguments] ClassCreatorRest
// after "outer.new".
func (p *Parser) innerCreator(newpos int, typeArgs, encl *Node) *Node {
	newAnnotations := p.typeAnnotationsOpt()

	identPos := p.token.Pos
	t := p.toP(p.identNode(identPos, p.ident()))

	if len(newAnnotations) > 0 {
		t = p.toP(p.annotatedType(newAnnotations[0].Pos, newAnnotations, t))
	}

	if p.token.Kind == TokenLT {
		oldmode := p.mode
		t = p.typeArgumentsTree(t, true)
		p.mode = oldmode
	}
	return p.classCreatorRest(newpos, encl, typeArgs, t)
}

// arrayCreatorRest parses the dimensions or initializer of an array
// creation expression.
func (p *Parser) arrayCreatorRest(newpos int, elemtype *Node) *Node {
	annos := p.typeAnnotationsOpt()

	p.accept(TokenLBracket)
	if p.token.Kind == TokenRBracket {
		p.accept(TokenRBracket)
		elemtype = p.bracketsOpt(elemtype, annos)
		if p.token.Kind == TokenLBrace {
			na := p.arrayInitializer(newpos, elemtype)
			if len(annos) > 0 {
				// the annotations target the new array, not the element type
				annotated := elemtype
				na.Children[0] = annotated.Children[0]
				na.Children = append(na.Children, annos...)
			}
			return na
		}
		t := p.toP(p.at(KindNewArrayExpr, newpos, elemtype, p.at(KindDimensions, newpos), nil))
		return p.syntaxError(p.token.Pos, []*Node{t}, diag.ArrayDimensionMissing)
	}

	dims := p.at(KindDimensions, p.token.Pos)
	dims.AddChild(p.ParseExpression())
	p.accept(TokenRBracket)
	for p.token.Kind == TokenLBracket || p.token.Kind == TokenAt {
		maybeDimAnnos := p.typeAnnotationsOpt()
		pos := p.token.Pos
		p.nextToken()
		if p.token.Kind == TokenRBracket {
			// no dimension
			elemtype = p.bracketsOptCont(elemtype, pos, maybeDimAnnos)
		} else {
			dim := p.ParseExpression()
			if len(maybeDimAnnos) > 0 {
				dim = p.annotatedType(maybeDimAnnos[0].Pos, maybeDimAnnos, dim)
			}
			dims.AddChild(dim)
			p.accept(TokenRBracket)
		}
	}

	var elems *Node
	errpos := p.token.Pos

	if p.token.Kind == TokenLBrace {
		elems = p.arrayInitializerElements(newpos)
	}

	na := p.toP(p.at(KindNewArrayExpr, newpos, elemtype, dims, elems))
	na.Children = append(na.Children, annos...)

	if elems != nil {
		return p.syntaxError(errpos, []*Node{na}, diag.IllegalArrayCreationBothDimAndInit)
	}
	return na
}

// classCreatorRest parses Arguments [ClassBody].
func (p *Parser) classCreatorRest(newpos int, encl, typeArgs, t *Node) *Node {
	args := p.argumentList()
	var body *Node
	if p.token.Kind == TokenLBrace {
		pos := p.token.Pos
		defs := p.classInterfaceOrRecordBody("", false, false)
		mods := &Node{Kind: KindModifiers, Pos: diag.NoPos}
		body = p.toP(p.at(KindClassDecl, pos, append([]*Node{mods, nil, nil, nil, nil}, defs...)...))
	}
	return p.toP(p.at(KindNewExpr, newpos, append([]*Node{encl, typeArgs, t, body}, args...)...))
}

// arrayInitializer parses "{" [VariableInitializer {"," VariableInitializer}] [","] "}".
func (p *Parser) arrayInitializer(newpos int, t *Node) *Node {
	elems := p.arrayInitializerElements(newpos)
	return p.toP(p.at(KindNewArrayExpr, newpos, t, p.at(KindDimensions, newpos), elems))
}

func (p *Parser) arrayInitializerElements(newpos int) *Node {
	elems := p.at(KindElements, p.token.Pos)
	p.accept(TokenLBrace)
	if p.token.Kind == TokenComma {
		p.nextToken()
	} else if p.token.Kind != TokenRBrace {
		elems.AddChild(p.variableInitializer())
		for p.token.Kind == TokenComma {
			p.nextToken()
			if p.token.Kind == TokenRBrace {
				break
			}
			elems.AddChild(p.variableInitializer())
		}
	}
	p.accept(TokenRBrace)
	return p.toP(elems)
}

func (p *Parser) variableInitializer() *Node {
	if p.token.Kind == TokenLBrace {
		return p.arrayInitializer(p.token.Pos, nil)
	}
	return p.ParseExpression()
}

// parExpression parses "(" Expression ")".
func (p *Parser) parExpression() *Node {
	pos := p.token.Pos
	p.accept(TokenLParen)
	t := p.ParseExpression()
	p.accept(TokenRParen)
	return p.toP(p.at(KindParenExpr, pos, t))
}
