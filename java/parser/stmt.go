package parser

import (
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// ParseStatement parses a statement. Declarations are accepted for error
// recovery and reported.
func (p *Parser) ParseStatement() *Node {
	return p.parseStatementAsBlock()
}

// block parses "{" BlockStatements "}" into a Block at pos.
func (p *Parser) block(pos int, flags Flags) *Node {
	p.accept(TokenLBrace)
	stats := p.blockStatements()
	t := p.at(KindBlock, pos, stats...)
	t.Flags = flags
	for p.token.Kind == TokenCase || p.token.Kind == TokenDefault {
		p.syntaxError(p.token.Pos, nil, diag.Orphaned, p.token.Kind.Describe())
		p.switchBlockStatementGroups()
	}
	p.accept(TokenRBrace)
	return p.toP(t)
}

func (p *Parser) blockHere() *Node {
	return p.block(p.token.Pos, 0)
}

// blockStatements parses statements up to a closing brace, case label or
// end of input.
func (p *Parser) blockStatements() []*Node {
	lastErrPos := -1
	var stats []*Node
	for {
		stat := p.blockStatement()
		if len(stat) == 0 {
			return stats
		}
		// error recovery
		if p.token.Pos == lastErrPos {
			return stats
		}
		if p.token.Pos <= p.endPos.ErrorEndPos() {
			p.skip(false, true, true, true)
			lastErrPos = p.token.Pos
		}
		stats = append(stats, stat...)
	}
}

func (p *Parser) parseStatementAsBlock() *Node {
	pos := p.token.Pos
	stats := p.blockStatement()
	if len(stats) == 0 {
		e := p.syntaxError(pos, nil, diag.IllegalStartOfStmt)
		return p.toP(p.at(KindExprStmt, pos, e))
	}
	first := stats[0]
	var key diag.Key
	switch {
	case first.Kind.IsTypeDecl():
		key = diag.ClassNotAllowed
	case first.Kind == KindVarDecl:
		key = diag.VariableNotAllowed
	}
	if key != "" {
		p.error(first.Pos, key)
		blist := p.at(KindBlock, first.Pos, stats...)
		return p.toP(p.at(KindExprStmt, pos, p.erroneous(first.Pos, blist)))
	}
	return first
}

// blockStatement parses one statement, local variable declaration or
// local class. It returns nil at the end of a block.
func (p *Parser) blockStatement() []*Node {
	pos := p.token.Pos
	switch p.token.Kind {
	case TokenRBrace, TokenCase, TokenDefault, TokenEOF:
		return nil
	case TokenLBrace, TokenIf, TokenFor, TokenWhile, TokenDo, TokenTry,
		TokenSwitch, TokenSynchronized, TokenReturn, TokenThrow, TokenBreak,
		TokenContinue, TokenSemicolon, TokenElse, TokenFinally, TokenCatch,
		TokenAssert:
		return []*Node{p.parseSimpleStatement()}
	case TokenAt, TokenFinal:
		dc := p.token.DocComment()
		mods := p.modifiersOpt(nil)
		if p.token.Kind == TokenInterface || p.token.Kind == TokenClass ||
			p.token.Kind == TokenEnum || p.isRecordStart() {
			return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(mods, dc)}
		}
		t := p.parseTypeVar(true)
		return p.localVariableDeclarations(mods, t)
	case TokenAbstract, TokenStrictfp:
		dc := p.token.DocComment()
		mods := p.modifiersOpt(nil)
		return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(mods, dc)}
	case TokenInterface, TokenClass:
		dc := p.token.DocComment()
		return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), dc)}
	case TokenEnum:
		if !p.allowRecords {
			p.error(p.token.Pos, diag.LocalEnum)
		}
		dc := p.token.DocComment()
		return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), dc)}
	case TokenIdent:
		if p.token.Name == "yield" && p.allowYieldStatement {
			if p.isYieldStatement() {
				p.nextToken()
				t := p.termMode(modeExpr)
				p.accept(TokenSemicolon)
				return []*Node{p.toP(p.at(KindYieldStmt, pos, t))}
			}
		} else if p.isNonSealedClassStart(true) {
			p.error(p.token.Pos, diag.SealedOrNonSealedLocalClasses)
			p.nextToken()
			p.nextToken()
			p.nextToken()
			return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), p.token.DocComment())}
		} else if p.isSealedClassStart(true) {
			p.checkFeature(source.SealedClasses)
			p.error(p.token.Pos, diag.SealedOrNonSealedLocalClasses)
			p.nextToken()
			return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(p.modifiersOpt(nil), p.token.DocComment())}
		}
	}
	if p.isRecordStart() && p.allowRecords {
		dc := p.token.DocComment()
		return []*Node{p.recordDeclaration(&Node{Kind: KindModifiers, Pos: diag.NoPos}, dc)}
	}
	prevToken := p.token
	t := p.termMode(modeExpr | modeType)
	if p.token.Kind == TokenColon && t.Kind == KindIdentifier {
		p.nextToken()
		stat := p.parseStatementAsBlock()
		lbl := p.at(KindLabeledStmt, pos, stat)
		lbl.Name = prevToken.Name
		return []*Node{lbl}
	} else if p.lastmode&modeType != 0 && isLaxIdentifier(p.token.Kind) {
		mods := &Node{Kind: KindModifiers, Pos: diag.NoPos}
		return p.localVariableDeclarations(mods, t)
	}
	// the expression statement subsumes its semicolon
	t = p.checkExprStat(t)
	p.accept(TokenSemicolon)
	return []*Node{p.toP(p.at(KindExprStmt, pos, t))}
}

// isYieldStatement decides whether the identifier yield at the current
// token starts a yield statement.
func (p *Parser) isYieldStatement() bool {
	next := p.s.TokenAt(1)
	switch next.Kind {
	case TokenPlus, TokenMinus, TokenStringLiteral, TokenCharLiteral,
		TokenIntLiteral, TokenLongLiteral, TokenFloatLiteral, TokenDoubleLiteral,
		TokenNull, TokenIdent, TokenTrue, TokenFalse,
		TokenNew, TokenSwitch, TokenThis, TokenSuper:
		return true
	case TokenIncrement, TokenDecrement:
		return p.s.TokenAt(2).Kind != TokenSemicolon
	case TokenNot, TokenBitNot:
		return p.s.TokenAt(1).Kind != TokenSemicolon
	case TokenLParen:
		lookahead := 2
		balance := 1
		hasComma := false
		var l Token
		for l = p.s.TokenAt(lookahead); l.Kind != TokenEOF && balance != 0; l = p.s.TokenAt(lookahead) {
			switch l.Kind {
			case TokenLParen:
				balance++
			case TokenRParen:
				balance--
			case TokenComma:
				if balance == 1 {
					hasComma = true
				}
			}
			lookahead++
		}
		return !hasComma && lookahead != 3 || l.Kind == TokenArrow
	case TokenSemicolon:
		// error recovery: this is not a valid statement
		return true
	}
	return false
}

func (p *Parser) localVariableDeclarations(mods, typ *Node) []*Node {
	stats := p.variableDeclarators(mods, typ, nil, true)
	// the declaration statement subsumes its semicolon
	p.accept(TokenSemicolon)
	p.storeEnd(stats[len(stats)-1], p.s.PrevToken().EndPos)
	return stats
}

// parseSimpleStatement parses a statement that starts with a keyword, a
// block or a semicolon.
func (p *Parser) parseSimpleStatement() *Node {
	pos := p.token.Pos
	switch p.token.Kind {
	case TokenLBrace:
		return p.blockHere()
	case TokenIf:
		p.nextToken()
		cond := p.parExpression()
		thenpart := p.parseStatementAsBlock()
		var elsepart *Node
		if p.token.Kind == TokenElse {
			p.nextToken()
			elsepart = p.parseStatementAsBlock()
		}
		return p.at(KindIfStmt, pos, cond, thenpart, elsepart)
	case TokenFor:
		p.nextToken()
		p.accept(TokenLParen)
		var inits []*Node
		if p.token.Kind != TokenSemicolon {
			inits = p.forInit()
		}
		if len(inits) == 1 && inits[0].Kind == KindVarDecl && inits[0].Child(2) == nil &&
			p.token.Kind == TokenColon {
			v := inits[0]
			p.accept(TokenColon)
			expr := p.ParseExpression()
			p.accept(TokenRParen)
			body := p.parseStatementAsBlock()
			return p.at(KindEnhancedForStmt, pos, v, expr, body)
		}
		p.accept(TokenSemicolon)
		var cond *Node
		if p.token.Kind != TokenSemicolon {
			cond = p.ParseExpression()
		}
		p.accept(TokenSemicolon)
		var steps []*Node
		if p.token.Kind != TokenRParen {
			steps = p.forUpdate()
		}
		p.accept(TokenRParen)
		body := p.parseStatementAsBlock()
		initNode := p.at(KindForInit, pos, inits...)
		updateNode := p.at(KindForUpdate, pos, steps...)
		return p.at(KindForStmt, pos, initNode, cond, updateNode, body)
	case TokenWhile:
		p.nextToken()
		cond := p.parExpression()
		body := p.parseStatementAsBlock()
		return p.at(KindWhileStmt, pos, cond, body)
	case TokenDo:
		p.nextToken()
		body := p.parseStatementAsBlock()
		p.accept(TokenWhile)
		cond := p.parExpression()
		p.accept(TokenSemicolon)
		return p.toP(p.at(KindDoStmt, pos, body, cond))
	case TokenTry:
		p.nextToken()
		var resources *Node
		if p.token.Kind == TokenLParen {
			rpos := p.token.Pos
			p.nextToken()
			resources = p.at(KindResources, rpos, p.resources()...)
			p.accept(TokenRParen)
			p.toP(resources)
		}
		body := p.blockHere()
		var catchers []*Node
		var finalizer *Node
		if p.token.Kind == TokenCatch || p.token.Kind == TokenFinally {
			for p.token.Kind == TokenCatch {
				catchers = append(catchers, p.catchClause())
			}
			if p.token.Kind == TokenFinally {
				p.nextToken()
				finalizer = p.blockHere()
			}
		} else if resources == nil || len(resources.Children) == 0 {
			p.error(pos, diag.TryWithoutCatchFinallyOrResourceDecls)
		}
		return p.at(KindTryStmt, pos, append([]*Node{resources, body, finalizer}, catchers...)...)
	case TokenSwitch:
		p.nextToken()
		selector := p.parExpression()
		p.accept(TokenLBrace)
		cases := p.switchBlockStatementGroups()
		t := p.to(p.at(KindSwitchStmt, pos, append([]*Node{selector}, cases...)...))
		p.accept(TokenRBrace)
		return t
	case TokenSynchronized:
		p.nextToken()
		lock := p.parExpression()
		body := p.blockHere()
		return p.at(KindSynchronizedStmt, pos, lock, body)
	case TokenReturn:
		p.nextToken()
		var result *Node
		if p.token.Kind != TokenSemicolon {
			result = p.ParseExpression()
		}
		p.accept(TokenSemicolon)
		return p.toP(p.at(KindReturnStmt, pos, result))
	case TokenThrow:
		p.nextToken()
		exc := p.ParseExpression()
		p.accept(TokenSemicolon)
		return p.toP(p.at(KindThrowStmt, pos, exc))
	case TokenBreak, TokenContinue:
		kind := KindBreakStmt
		if p.token.Kind == TokenContinue {
			kind = KindContinueStmt
		}
		p.nextToken()
		var label string
		if isLaxIdentifier(p.token.Kind) {
			label = p.ident()
		}
		p.accept(TokenSemicolon)
		t := p.toP(p.at(kind, pos))
		t.Name = label
		return t
	case TokenSemicolon:
		p.nextToken()
		return p.toP(p.at(KindEmptyStmt, pos))
	case TokenElse:
		elsePos := p.token.Pos
		p.nextToken()
		return p.doRecover(elsePos, p.blockStatementRecovery, diag.ElseWithoutIf)
	case TokenFinally:
		finallyPos := p.token.Pos
		p.nextToken()
		return p.doRecover(finallyPos, p.blockStatementRecovery, diag.FinallyWithoutTry)
	case TokenCatch:
		return p.doRecover(p.token.Pos, p.catchClause, diag.CatchWithoutTry)
	case TokenAssert:
		p.nextToken()
		assertion := p.ParseExpression()
		var message *Node
		if p.token.Kind == TokenColon {
			p.nextToken()
			message = p.ParseExpression()
		}
		p.accept(TokenSemicolon)
		return p.toP(p.at(KindAssertStmt, pos, assertion, message))
	}
	panic("parser: unexpected statement token " + p.token.Kind.String())
}

func (p *Parser) blockStatementRecovery() *Node {
	return p.parseStatementAsBlock()
}

// doRecover parses with action after a misplaced keyword and wraps the
// result in an error statement. Reporting position is restored so that
// errors inside the recovered tree are still reported.
func (p *Parser) doRecover(startPos int, action func() *Node, key diag.Key) *Node {
	errPos := p.s.ErrPos()
	stm := action()
	p.s.SetErrPos(errPos)
	err := p.syntaxError(startPos, []*Node{stm}, key)
	return p.toP(p.at(KindExprStmt, startPos, err))
}

// catchClause parses "catch" "(" CatchType Ident ")" Block.
func (p *Parser) catchClause() *Node {
	pos := p.token.Pos
	p.accept(TokenCatch)
	p.accept(TokenLParen)
	mods := p.optFinal(FlagParameter)
	catchTypes := p.catchTypes()
	paramType := catchTypes[0]
	if len(catchTypes) > 1 {
		paramType = p.toP(p.at(KindUnionType, StartPos(catchTypes[0]), catchTypes...))
	}
	formal := p.variableDeclaratorID(mods, paramType, false, false)
	p.accept(TokenRParen)
	body := p.blockHere()
	return p.at(KindCatchClause, pos, formal, body)
}

func (p *Parser) catchTypes() []*Node {
	types := []*Node{p.ParseType()}
	for p.token.Kind == TokenBitOr {
		p.nextToken()
		types = append(types, p.ParseType())
	}
	return types
}

// switchBlockStatementGroups parses the cases of a switch statement.
func (p *Parser) switchBlockStatementGroups() []*Node {
	var cases []*Node
	for {
		pos := p.token.Pos
		switch p.token.Kind {
		case TokenCase, TokenDefault:
			cases = append(cases, p.switchBlockStatementGroup())
		case TokenRBrace, TokenEOF:
			return cases
		default:
			p.nextToken() // ensure progress
			p.syntaxError(pos, nil, diag.Expected3,
				TokenCase.Describe(), TokenDefault.Describe(), TokenRBrace.Describe())
		}
	}
}

func (p *Parser) switchBlockStatementGroup() *Node {
	pos := p.token.Pos
	labels := p.at(KindCaseLabels, pos)
	if p.token.Kind == TokenCase {
		p.nextToken()
		for {
			labels.AddChild(p.parseCaseLabel())
			if p.token.Kind != TokenComma {
				break
			}
			p.nextToken()
			p.checkFeature(source.SwitchMultipleCaseLabels)
		}
	} else {
		p.nextToken()
		labels.AddChild(p.toP(p.at(KindDefaultCaseLabel, p.token.Pos)))
	}
	c := &Node{Kind: KindSwitchCase, Pos: pos}
	var stats []*Node
	if p.token.Kind == TokenArrow {
		p.checkFeature(source.SwitchRule)
		p.accept(TokenArrow)
		c.Op = TokenArrow
		statement := p.parseStatementAsBlock()
		switch statement.Kind {
		case KindExprStmt, KindBlock, KindThrowStmt:
		default:
			p.error(statement.Pos, diag.SwitchCaseUnexpectedStatement)
		}
		stats = []*Node{statement}
		c.Children = []*Node{labels, statement, statement}
	} else {
		p.acceptExpected2(TokenColon, TokenArrow)
		c.Op = TokenColon
		stats = p.blockStatements()
		c.Children = append([]*Node{labels, nil}, stats...)
	}
	if len(stats) == 0 {
		p.storeEnd(c, p.s.PrevToken().EndPos)
	}
	return c
}

// parseCaseLabel parses a constant expression, a pattern or default.
func (p *Parser) parseCaseLabel() *Node {
	patternPos := p.token.Pos
	if p.token.Kind == TokenDefault {
		p.checkSourceLevel(p.token.Pos, source.PatternSwitch)
		p.nextToken()
		return p.toP(p.at(KindDefaultCaseLabel, patternPos))
	}
	lookahead := 0
	for p.s.TokenAt(lookahead).Kind == TokenLParen {
		lookahead++
	}
	mods := p.optFinal(0)
	pattern := mods.Flags != 0 || len(mods.Children) > 0 || p.analyzePattern(lookahead)
	if pattern {
		p.checkSourceLevel(p.token.Pos, source.PatternSwitch)
		return p.parsePattern(patternPos, mods, nil, false)
	}
	return p.termMode(modeExpr | modeNoLambda)
}

// analyzePattern reports whether the tokens from lookahead on form a type
// followed by an identifier.
func (p *Parser) analyzePattern(lookahead int) bool {
	depth := 0
	for ; ; lookahead++ {
		switch tk := p.s.TokenAt(lookahead).Kind; tk {
		case TokenByte, TokenShort, TokenInt, TokenLong, TokenFloat,
			TokenDouble, TokenBoolean, TokenChar, TokenVoid,
			TokenAssert, TokenEnum, TokenIdent, TokenUnderscore:
			if depth == 0 && p.peekToken(lookahead, isLaxIdentifier) {
				return true
			}
		case TokenDot, TokenQuestion, TokenExtends, TokenSuper, TokenComma:
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
				return p.peekToken(lookahead, isLaxIdentifier)
			} else if depth < 0 {
				return false
			}
		case TokenAt:
			lookahead = p.skipAnnotation(lookahead)
		case TokenLBracket:
			if p.peekToken(lookahead, is(TokenRBracket), isLaxIdentifier) {
				return true
			} else if p.peekToken(lookahead, is(TokenRBracket)) {
				lookahead++
			} else {
				return false
			}
		default:
			return false
		}
	}
}

// moreStatementExpressions parses { "," StatementExpression } after first.
func (p *Parser) moreStatementExpressions(pos int, first *Node, stats []*Node) []*Node {
	// these expression statements subsume no terminating token
	stats = append(stats, p.toP(p.at(KindExprStmt, pos, p.checkExprStat(first))))
	for p.token.Kind == TokenComma {
		p.nextToken()
		pos = p.token.Pos
		t := p.ParseExpression()
		stats = append(stats, p.toP(p.at(KindExprStmt, pos, p.checkExprStat(t))))
	}
	return stats
}

func (p *Parser) forInit() []*Node {
	pos := p.token.Pos
	if p.token.Kind == TokenFinal || p.token.Kind == TokenAt {
		mods := p.optFinal(0)
		return p.variableDeclarators(mods, p.parseTypeVar(true), nil, true)
	}
	t := p.termMode(modeExpr | modeType)
	switch {
	case p.lastmode&modeType != 0 && isLaxIdentifier(p.token.Kind):
		return p.variableDeclarators(p.modifiersOpt(nil), t, nil, true)
	case p.lastmode&modeType != 0 && p.token.Kind == TokenColon:
		p.error(pos, diag.BadInitializer, "for-loop")
		return []*Node{p.varDef(pos, p.modifiersOpt(nil), errorName, t, nil)}
	}
	return p.moreStatementExpressions(pos, t, nil)
}

func (p *Parser) forUpdate() []*Node {
	pos := p.token.Pos
	return p.moreStatementExpressions(pos, p.ParseExpression(), nil)
}

// resources parses Resource { ";" Resource } [";"].
func (p *Parser) resources() []*Node {
	defs := []*Node{p.resource()}
	for p.token.Kind == TokenSemicolon {
		// all but the last resource subsume a semicolon
		p.storeEnd(defs[len(defs)-1], p.token.EndPos)
		p.nextToken()
		if p.token.Kind == TokenRParen {
			break
		}
		defs = append(defs, p.resource())
	}
	return defs
}

func (p *Parser) resource() *Node {
	startPos := p.token.Pos
	if p.token.Kind == TokenFinal || p.token.Kind == TokenAt {
		mods := p.optFinal(FlagFinal)
		t := p.parseTypeVar(true)
		pos := p.token.Pos
		return p.variableDeclaratorRest(pos, mods, t, p.ident(), true, nil, true, false)
	}
	t := p.termMode(modeExpr | modeType)
	if p.lastmode&modeType != 0 && isLaxIdentifier(p.token.Kind) {
		mods := p.toP(&Node{Kind: KindModifiers, Pos: startPos, Flags: FlagFinal})
		pos := p.token.Pos
		return p.variableDeclaratorRest(pos, mods, t, p.ident(), true, nil, true, false)
	}
	p.checkFeature(source.EffectivelyFinalInTryWithResources)
	if t.Kind != KindIdentifier && t.Kind != KindFieldAccess {
		p.error(t.Pos, diag.TryWithResourcesExprNeedsVar)
	}
	return t
}

// checkExprStat wraps t in an error node unless it may stand as a
// statement.
func (p *Parser) checkExprStat(t *Node) *Node {
	if isExpressionStatement(t) {
		return t
	}
	ret := p.erroneous(t.Pos, t)
	p.error(ret.Pos, diag.NotStmt)
	return ret
}

func isExpressionStatement(t *Node) bool {
	switch t.Kind {
	case KindAssignExpr, KindCompoundAssignExpr, KindCallExpr, KindNewExpr, KindError:
		return true
	case KindUnaryExpr:
		return t.Op == TokenIncrement || t.Op == TokenDecrement
	case KindPostfixExpr:
		return true
	}
	return false
}
