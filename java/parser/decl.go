package parser

import (
	"strings"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
)

// ParseCompilationUnit parses
//
//	[ { "@" Annotation } "package" Qualident ";" ] { ImportDeclaration } { TypeDeclaration }
//
// or a module declaration.
func (p *Parser) ParseCompilationUnit() *Node {
	firstToken := p.token
	var mods *Node
	consumedToplevelDoc := false
	seenImport := false
	seenPackage := false
	var defs []*Node
	if p.token.Kind == TokenAt {
		mods = p.modifiersOpt(nil)
	}

	if p.token.Kind == TokenPackage {
		packagePos := p.token.Pos
		var annotations []*Node
		seenPackage = true
		if mods != nil {
			p.checkNoMods(p.token.Pos, mods.Flags&^FlagDeprecated)
			annotations = mods.Children
			mods = nil
		}
		p.nextToken()
		pid := p.qualident(false)
		p.accept(TokenSemicolon)
		pd := p.toP(p.at(KindPackageDecl, packagePos, append([]*Node{pid}, annotations...)...))
		p.attach(pd, firstToken.DocComment())
		consumedToplevelDoc = true
		defs = append(defs, pd)
	}

	checkForImports := true
	firstTypeDecl := true
	for p.token.Kind != TokenEOF {
		if p.token.Pos <= p.endPos.ErrorEndPos() {
			// error recovery
			p.skip(checkForImports, false, false, false)
			if p.token.Kind == TokenEOF {
				break
			}
		}
		if checkForImports && mods == nil && p.token.Kind == TokenImport {
			seenImport = true
			defs = append(defs, p.importDeclaration())
			continue
		}
		docComment := p.token.DocComment()
		if firstTypeDecl && !seenImport && !seenPackage {
			docComment = firstToken.DocComment()
			consumedToplevelDoc = true
		}
		if mods != nil || p.token.Kind != TokenSemicolon {
			mods = p.modifiersOpt(mods)
		}
		if firstTypeDecl && p.token.Kind == TokenIdent {
			open := false
			if p.token.Name == "open" {
				open = true
				p.nextToken()
			}
			if p.token.Kind == TokenIdent && p.token.Name == "module" {
				if mods != nil {
					p.checkNoMods(p.token.Pos, mods.Flags&^FlagDeprecated)
				}
				defs = append(defs, p.moduleDecl(mods, open, docComment))
				consumedToplevelDoc = true
				break
			} else if open {
				p.reportSyntaxError(p.token.Pos, diag.ExpectedModuleOrOpen)
			}
		}
		def := p.typeDeclaration(mods, docComment)
		if def.Kind == KindExprStmt {
			def = def.Children[0]
		}
		defs = append(defs, def)
		if def.Kind.IsTypeDecl() {
			checkForImports = false
		}
		mods = nil
		firstTypeDecl = false
	}
	toplevel := p.at(KindCompilationUnit, firstToken.Pos, defs...)
	if !consumedToplevelDoc {
		p.attach(toplevel, firstToken.DocComment())
	}
	if len(defs) == 0 {
		p.storeEnd(toplevel, p.s.PrevToken().EndPos)
	}
	return toplevel
}

func (p *Parser) moduleDecl(mods *Node, open bool, dc *Comment) *Node {
	pos := p.token.Pos
	p.checkFeature(source.Modules)

	p.nextToken()
	name := p.qualident(false)

	p.accept(TokenLBrace)
	directives := p.moduleDirectiveList()
	p.accept(TokenRBrace)
	p.accept(TokenEOF)

	if mods == nil {
		mods = &Node{Kind: KindModifiers, Pos: diag.NoPos}
	}
	result := p.toP(p.at(KindModuleDecl, pos, append([]*Node{mods, name}, directives...)...))
	if open {
		result.Flags |= FlagOpen
	}
	p.attach(result, dc)
	return result
}

func (p *Parser) moduleDirectiveList() []*Node {
	var defs []*Node
	for p.token.Kind == TokenIdent {
		pos := p.token.Pos
		switch p.token.Name {
		case "requires":
			p.nextToken()
			var flags Flags
		loop:
			for {
				switch p.token.Kind {
				case TokenIdent:
					if p.token.Name == "transitive" && flags&FlagTransitive == 0 {
						t1 := p.s.TokenAt(1)
						if t1.Kind == TokenSemicolon || t1.Kind == TokenDot {
							break loop
						}
						flags |= FlagTransitive
					} else {
						break loop
					}
				case TokenStatic:
					if flags&FlagStatic != 0 {
						p.error(p.token.Pos, diag.RepeatedModifier)
					}
					flags |= FlagStatic
				default:
					break loop
				}
				p.nextToken()
			}
			moduleName := p.qualident(false)
			p.accept(TokenSemicolon)
			d := p.toP(p.at(KindRequiresDirective, pos, moduleName))
			d.Flags = flags
			defs = append(defs, d)
		case "exports", "opens":
			kind := KindExportsDirective
			if p.token.Name == "opens" {
				kind = KindOpensDirective
			}
			p.nextToken()
			pkgName := p.qualident(false)
			var moduleNames []*Node
			if p.token.Kind == TokenIdent && p.token.Name == "to" {
				p.nextToken()
				moduleNames = p.qualidentList(false)
			}
			p.accept(TokenSemicolon)
			defs = append(defs, p.toP(p.at(kind, pos, append([]*Node{pkgName}, moduleNames...)...)))
		case "provides":
			p.nextToken()
			serviceName := p.qualident(false)
			if p.token.Kind == TokenIdent && p.token.Name == "with" {
				p.nextToken()
				implNames := p.qualidentList(false)
				p.accept(TokenSemicolon)
				defs = append(defs, p.toP(p.at(KindProvidesDirective, pos, append([]*Node{serviceName}, implNames...)...)))
			} else {
				p.error(p.token.Pos, diag.ExpectedStr, "'with'")
				p.skip(false, false, false, false)
			}
		case "uses":
			p.nextToken()
			service := p.qualident(false)
			p.accept(TokenSemicolon)
			defs = append(defs, p.toP(p.at(KindUsesDirective, pos, service)))
		default:
			p.setErrorEndPos(pos)
			p.reportSyntaxError(pos, diag.InvalidModuleDirective)
			return defs
		}
	}
	return defs
}

// importDeclaration parses "import" [ "static" ] Ident { "." Ident } [ "." "*" ] ";".
func (p *Parser) importDeclaration() *Node {
	pos := p.token.Pos
	p.nextToken()
	importStatic := false
	if p.token.Kind == TokenStatic {
		importStatic = true
		p.nextToken()
	}
	identPos := p.token.Pos
	pid := p.toP(p.identNode(identPos, p.ident()))
	for {
		pos1 := p.token.Pos
		p.accept(TokenDot)
		if p.token.Kind == TokenStar {
			pid = p.to(p.selectNode(pos1, pid, "*"))
			p.nextToken()
			break
		}
		pid = p.toP(p.selectNode(pos1, pid, p.ident()))
		if p.token.Kind != TokenDot {
			break
		}
	}
	p.accept(TokenSemicolon)
	imp := p.toP(p.at(KindImportDecl, pos, pid))
	if importStatic {
		imp.Flags |= FlagStatic
	}
	return imp
}

func (p *Parser) typeDeclaration(mods *Node, dc *Comment) *Node {
	pos := p.token.Pos
	if mods == nil && p.token.Kind == TokenSemicolon {
		p.nextToken()
		return p.toP(p.at(KindEmptyStmt, pos))
	}
	return p.classOrRecordOrInterfaceOrEnumDeclaration(p.modifiersOpt(mods), dc)
}

func (p *Parser) classOrRecordOrInterfaceOrEnumDeclaration(mods *Node, dc *Comment) *Node {
	switch {
	case p.token.Kind == TokenClass:
		return p.classDeclaration(mods, dc)
	case p.isRecordStart():
		return p.recordDeclaration(mods, dc)
	case p.token.Kind == TokenInterface:
		return p.interfaceDeclaration(mods, dc)
	case p.token.Kind == TokenEnum:
		return p.enumDeclaration(mods, dc)
	}
	pos := p.token.Pos
	if p.token.Kind == TokenIdent && p.token.Name == "record" {
		p.checkFeature(source.Records)
		err := p.syntaxError(p.token.Pos, []*Node{mods}, diag.RecordHeaderExpected)
		return p.toP(p.at(KindExprStmt, pos, err))
	}
	var errs []*Node
	if isLaxIdentifier(p.token.Kind) {
		errs = []*Node{mods, p.toP(p.identNode(pos, p.ident()))}
		p.setErrorEndPos(p.token.Pos)
	} else {
		errs = []*Node{mods}
	}
	var err *Node
	switch {
	case p.cfg.moduleInfo:
		err = p.syntaxError(pos, errs, diag.ExpectedModuleOrOpen)
	case p.allowRecords:
		err = p.syntaxError(pos, errs, diag.Expected4,
			TokenClass.Describe(), TokenInterface.Describe(), TokenEnum.Describe(), "record")
	default:
		err = p.syntaxError(pos, errs, diag.Expected3,
			TokenClass.Describe(), TokenInterface.Describe(), TokenEnum.Describe())
	}
	return p.toP(p.at(KindExprStmt, pos, err))
}

// typeDecl builds a type declaration node in the common layout.
func (p *Parser) typeDecl(kind NodeKind, pos int, mods *Node, name string, typarams, extending, implementing, permitting *Node, defs []*Node) *Node {
	n := p.at(kind, pos, append([]*Node{mods, typarams, extending, implementing, permitting}, defs...)...)
	n.Name = name
	return n
}

// clause wraps types in a node of kind, or returns nil when types is empty.
func (p *Parser) clause(kind NodeKind, types []*Node) *Node {
	if len(types) == 0 {
		return nil
	}
	return p.at(kind, StartPos(types[0]), types...)
}

// classDeclaration parses "class" Ident TypeParametersOpt ["extends" Type]
// ["implements" TypeList] ["permits" TypeList] ClassBody.
func (p *Parser) classDeclaration(mods *Node, dc *Comment) *Node {
	pos := p.token.Pos
	p.accept(TokenClass)
	name := p.typeName()

	typarams := p.typeParametersOpt()

	var extending *Node
	if p.token.Kind == TokenExtends {
		p.nextToken()
		extending = p.clause(KindExtendsClause, []*Node{p.ParseType()})
	}
	var implementing *Node
	if p.token.Kind == TokenImplements {
		p.nextToken()
		implementing = p.clause(KindImplementsClause, p.typeList())
	}
	permitting := p.clause(KindPermitsClause, p.permitsClause(mods, "class"))
	defs := p.classInterfaceOrRecordBody(name, false, false)
	result := p.toP(p.typeDecl(KindClassDecl, pos, mods, name, typarams, extending, implementing, permitting, defs))
	p.attach(result, dc)
	return result
}

// recordDeclaration parses "record" Ident TypeParametersOpt RecordHeader
// ["implements" TypeList] RecordBody. The header components become the
// leading members.
func (p *Parser) recordDeclaration(mods *Node, dc *Comment) *Node {
	pos := p.token.Pos
	p.nextToken()
	mods.Flags |= FlagRecord
	name := p.typeName()

	typarams := p.typeParametersOpt()

	headerFields := p.formalParameters(false, true)

	var implementing *Node
	if p.token.Kind == TokenImplements {
		p.nextToken()
		implementing = p.clause(KindImplementsClause, p.typeList())
	}
	defs := p.classInterfaceOrRecordBody(name, false, true)
	for _, def := range defs {
		if def.Kind != KindMethodDecl || def.Name != "<init>" {
			continue
		}
		methMods := def.Children[0]
		params := def.Children[4]
		if len(params.Children) > 0 || !methMods.Flags.Has(FlagCompactConstructor) {
			continue
		}
		for _, param := range headerFields {
			paramMods := param.Children[0]
			flags := FlagParameter | FlagGenerated | paramMods.Flags&FlagVarargs
			m := &Node{Kind: KindModifiers, Pos: diag.NoPos, Flags: flags, Children: paramMods.Children}
			v := p.varDef(param.Pos, m, param.Name, param.Child(1), nil)
			params.AddChild(v)
		}
	}
	defs = append(headerFields, defs...)
	result := p.toP(p.typeDecl(KindRecordDecl, pos, mods, name, typarams, nil, implementing, nil, defs))
	p.attach(result, dc)
	return result
}

func (p *Parser) typeName() string {
	pos := p.token.Pos
	name := p.ident()
	if lvl, ok := p.restrictedTypeNameStartingAtSource(name, pos, true); ok {
		p.reportSyntaxError(pos, diag.RestrictedTypeNotAllowed, name, lvl.Name(), name)
	}
	return name
}

// interfaceDeclaration parses "interface" Ident TypeParametersOpt
// ["extends" TypeList] ["permits" TypeList] InterfaceBody. Annotation
// interfaces arrive here with FlagAnnotation set on mods.
func (p *Parser) interfaceDeclaration(mods *Node, dc *Comment) *Node {
	pos := p.token.Pos
	p.accept(TokenInterface)

	name := p.typeName()

	typarams := p.typeParametersOpt()

	var extending *Node
	if p.token.Kind == TokenExtends {
		p.nextToken()
		extending = p.clause(KindExtendsClause, p.typeList())
	}
	permitting := p.clause(KindPermitsClause, p.permitsClause(mods, "interface"))
	defs := p.classInterfaceOrRecordBody(name, true, false)
	kind := KindInterfaceDecl
	if mods.Flags.Has(FlagAnnotation) {
		kind = KindAnnotationDecl
	}
	result := p.toP(p.typeDecl(kind, pos, mods, name, typarams, extending, nil, permitting, defs))
	p.attach(result, dc)
	return result
}

func (p *Parser) permitsClause(mods *Node, classOrInterface string) []*Node {
	if p.allowSealedTypes && p.token.Kind == TokenIdent && p.token.Name == "permits" {
		p.checkFeature(source.SealedClasses)
		if !mods.Flags.Has(FlagSealed) {
			p.error(p.token.Pos, diag.InvalidPermitsClause, classOrInterface+" must be sealed")
		}
		p.nextToken()
		return p.qualidentList(false)
	}
	return nil
}

// enumDeclaration parses "enum" Ident ["implements" TypeList] EnumBody.
func (p *Parser) enumDeclaration(mods *Node, dc *Comment) *Node {
	pos := p.token.Pos
	p.accept(TokenEnum)

	name := p.typeName()

	var implementing *Node
	if p.token.Kind == TokenImplements {
		p.nextToken()
		implementing = p.clause(KindImplementsClause, p.typeList())
	}

	defs := p.enumBody(name)
	mods.Flags |= FlagEnum
	result := p.toP(p.typeDecl(KindEnumDecl, pos, mods, name, nil, nil, implementing, nil, defs))
	p.attach(result, dc)
	return result
}

type enumeratorEstimate int

const (
	estimateEnumerator enumeratorEstimate = iota
	estimateMember
	estimateUnknown
)

// enumBody parses "{" { EnumeratorDeclarationList } [","] [ ";" {ClassBodyDeclaration} ] "}".
func (p *Parser) enumBody(enumName string) []*Node {
	p.accept(TokenLBrace)
	var defs []*Node
	wasSemi := false
	hasStructuralErrors := false
	wasError := false
	if p.token.Kind == TokenComma {
		p.nextToken()
		if p.token.Kind == TokenSemicolon {
			wasSemi = true
			p.nextToken()
		} else if p.token.Kind != TokenRBrace {
			p.reportSyntaxError(p.s.PrevToken().EndPos, diag.Expected2,
				TokenRBrace.Describe(), TokenSemicolon.Describe())
			wasError = true
		}
	}
	for p.token.Kind != TokenRBrace && p.token.Kind != TokenEOF {
		if p.token.Kind == TokenSemicolon {
			p.accept(TokenSemicolon)
			wasSemi = true
			if p.token.Kind == TokenRBrace || p.token.Kind == TokenEOF {
				break
			}
		}
		memberType := p.estimateEnumeratorOrMember(enumName)
		if memberType == estimateUnknown {
			if wasSemi {
				memberType = estimateMember
			} else {
				memberType = estimateEnumerator
			}
		}
		if memberType == estimateEnumerator {
			wasError = false
			if wasSemi && !hasStructuralErrors {
				p.reportSyntaxError(p.token.Pos, diag.EnumConstantNotExpected)
				hasStructuralErrors = true
			}
			defs = append(defs, p.enumeratorDeclaration(enumName))
			if p.token.Pos <= p.endPos.ErrorEndPos() {
				// error recovery
				p.skip(false, true, true, false)
			} else if p.token.Kind != TokenRBrace && p.token.Kind != TokenSemicolon && p.token.Kind != TokenEOF {
				if p.token.Kind == TokenComma {
					p.nextToken()
				} else {
					p.setErrorEndPos(p.token.Pos)
					p.reportSyntaxError(p.s.PrevToken().EndPos, diag.Expected3,
						TokenComma.Describe(), TokenRBrace.Describe(), TokenSemicolon.Describe())
					wasError = true
				}
			}
		} else {
			if !wasSemi && !hasStructuralErrors && !wasError {
				p.reportSyntaxError(p.token.Pos, diag.EnumConstantExpected)
				hasStructuralErrors = true
			}
			wasError = false
			defs = append(defs, p.classOrInterfaceOrRecordBodyDeclaration(enumName, false, false)...)
			if p.token.Pos <= p.endPos.ErrorEndPos() {
				// error recovery
				p.skip(false, true, true, false)
			}
		}
	}
	p.accept(TokenRBrace)
	return defs
}

func (p *Parser) estimateEnumeratorOrMember(enumName string) enumeratorEstimate {
	// a record inside an enum is reported like any other member type
	if p.token.Kind == TokenIdent && p.token.Name != enumName && (!p.allowRecords || !p.isRecordStart()) {
		switch p.s.TokenAt(1).Kind {
		case TokenLParen, TokenLBrace, TokenComma, TokenSemicolon:
			return estimateEnumerator
		}
	}
	switch p.token.Kind {
	case TokenIdent, TokenAt, TokenLT, TokenUnderscore:
		if p.token.Kind == TokenIdent && p.allowRecords && p.isRecordStart() {
			return estimateMember
		}
		return estimateUnknown
	}
	return estimateMember
}

// enumeratorDeclaration parses AnnotationsOpt [TypeArguments] Ident
// [Arguments] [ClassBody] into a variable initialized with a NewExpr.
func (p *Parser) enumeratorDeclaration(enumName string) *Node {
	dc := p.token.DocComment()
	flags := FlagPublic | FlagStatic | FlagFinal | FlagEnum
	if p.token.Deprecated() {
		flags |= FlagDeprecated
	}
	pos := p.token.Pos
	annotations := p.annotationsOpt(KindAnnotation)
	modsPos := pos
	if len(annotations) == 0 {
		modsPos = diag.NoPos
	}
	mods := &Node{Kind: KindModifiers, Pos: modsPos, Flags: flags, Children: annotations}
	typeArgs := p.typeArgumentsOptMode(modeExpr)
	identPos := p.token.Pos
	name := p.ident()
	createPos := p.token.Pos
	var args []*Node
	if p.token.Kind == TokenLParen {
		args = p.argumentList()
	}
	var body *Node
	if p.token.Kind == TokenLBrace {
		mods1 := &Node{Kind: KindModifiers, Pos: diag.NoPos, Flags: FlagEnum}
		defs := p.classInterfaceOrRecordBody("", false, false)
		body = p.toP(p.typeDecl(KindClassDecl, identPos, mods1, "", nil, nil, nil, nil, defs))
	}
	if len(args) == 0 && body == nil {
		createPos = identPos
	}
	create := p.at(KindNewExpr, createPos, append([]*Node{nil, typeArgs, p.identNode(identPos, enumName), body}, args...)...)
	if createPos != identPos {
		p.storeEnd(create, p.s.PrevToken().EndPos)
	}
	result := p.toP(p.varDef(pos, mods, name, p.identNode(identPos, enumName), create))
	p.attach(result, dc)
	return result
}

// typeList parses Type {"," Type}.
func (p *Parser) typeList() []*Node {
	ts := []*Node{p.ParseType()}
	for p.token.Kind == TokenComma {
		p.nextToken()
		ts = append(ts, p.ParseType())
	}
	return ts
}

// classInterfaceOrRecordBody parses "{" {ClassBodyDeclaration} "}".
func (p *Parser) classInterfaceOrRecordBody(className string, isInterface, isRecord bool) []*Node {
	p.accept(TokenLBrace)
	if p.token.Pos <= p.endPos.ErrorEndPos() {
		// error recovery
		p.skip(false, true, false, false)
		if p.token.Kind != TokenLBrace {
			return nil
		}
		p.nextToken()
	}
	var defs []*Node
	for p.token.Kind != TokenRBrace && p.token.Kind != TokenEOF {
		defs = append(defs, p.classOrInterfaceOrRecordBodyDeclaration(className, isInterface, isRecord)...)
		if p.token.Pos <= p.endPos.ErrorEndPos() {
			// error recovery
			p.skip(false, true, true, false)
		}
	}
	p.accept(TokenRBrace)
	return defs
}

// classOrInterfaceOrRecordBodyDeclaration parses a member: a nested type,
// an initializer block, a constructor, a method or field declarators.
func (p *Parser) classOrInterfaceOrRecordBodyDeclaration(className string, isInterface, isRecord bool) []*Node {
	if p.token.Kind == TokenSemicolon {
		p.nextToken()
		return nil
	}
	dc := p.token.DocComment()
	pos := p.token.Pos
	mods := p.modifiersOpt(nil)
	if p.token.Kind == TokenClass ||
		p.allowRecords && p.isRecordStart() ||
		p.token.Kind == TokenInterface ||
		p.token.Kind == TokenEnum {
		return []*Node{p.classOrRecordOrInterfaceOrEnumDeclaration(mods, dc)}
	}
	if p.token.Kind == TokenLBrace && mods.Flags&ModifierFlags&^FlagStatic == 0 && len(mods.Children) == 0 {
		if isInterface {
			p.error(p.token.Pos, diag.InitializerNotAllowed)
		} else if isRecord && !mods.Flags.Has(FlagStatic) {
			p.error(p.token.Pos, diag.InstanceInitializerNotAllowedInRecord)
		}
		return []*Node{p.block(pos, mods.Flags)}
	}

	pos = p.token.Pos
	typarams := p.typeParametersOpt()
	// with type parameters but no modifiers, the method starts at the
	// type parameters
	if typarams != nil && mods.Pos == diag.NoPos {
		mods.Pos = pos
		p.storeEnd(mods, pos)
	}
	annosAfterParams := p.annotationsOpt(KindAnnotation)

	if len(annosAfterParams) > 0 {
		p.checkSourceLevel(annosAfterParams[0].Pos, source.AnnotationsAfterTypeParams)
		mods.Children = append(mods.Children, annosAfterParams...)
		if mods.Pos == diag.NoPos {
			mods.Pos = mods.Children[0].Pos
		}
	}

	tk := p.token
	pos = p.token.Pos
	var typ *Node
	isVoid := p.token.Kind == TokenVoid
	if isVoid {
		typ = p.to(&Node{Kind: KindPrimitiveType, Pos: pos, Op: TokenVoid})
		p.nextToken()
	} else {
		// method result types are unannotated
		typ = p.unannotatedType(false)
	}
	if (p.token.Kind == TokenLParen && !isInterface || isRecord && p.token.Kind == TokenLBrace) && typ.Kind == KindIdentifier {
		if isInterface || tk.Name != className {
			p.error(pos, diag.InvalidMethDeclRetTypeReq)
		} else if len(annosAfterParams) > 0 {
			p.illegalAt(annosAfterParams[0].Pos)
		}
		if isRecord && p.token.Kind == TokenLBrace {
			mods.Flags |= FlagCompactConstructor
		}
		return []*Node{p.methodDeclaratorRest(pos, mods, nil, "<init>", typarams, isInterface, true, isRecord, dc)}
	}
	if isRecord && typ.Kind == KindIdentifier && p.token.Kind == TokenThrows {
		// a compact constructor with a throws clause
		p.error(p.token.Pos, diag.InvalidCanonicalConstructorInRecord, className)
		p.skip(false, true, false, false)
		return []*Node{p.methodDeclaratorRest(pos, mods, nil, "<init>", typarams, isInterface, true, isRecord, dc)}
	}
	pos = p.token.Pos
	name := p.ident()
	if p.token.Kind == TokenLParen {
		return []*Node{p.methodDeclaratorRest(pos, mods, typ, name, typarams, isInterface, isVoid, false, dc)}
	}
	if !isVoid && typarams == nil {
		if !isRecord || mods.Flags.Has(FlagStatic) {
			defs := p.variableDeclaratorsRest(pos, mods, typ, name, isInterface, dc, nil, false)
			p.accept(TokenSemicolon)
			p.storeEnd(defs[len(defs)-1], p.s.PrevToken().EndPos)
			return defs
		}
		errPos := pos
		p.variableDeclaratorsRest(pos, mods, typ, name, isInterface, dc, nil, false)
		p.accept(TokenSemicolon)
		return []*Node{p.syntaxError(errPos, nil, diag.RecordCannotDeclareInstanceFields)}
	}
	pos = p.token.Pos
	var errs []*Node
	if isVoid || typarams != nil {
		params := p.at(KindParameters, pos)
		m := p.toP(p.methodDecl(pos, mods, typ, name, typarams, nil, params, nil, nil, nil))
		p.attach(m, dc)
		errs = []*Node{m}
	}
	return []*Node{p.syntaxError(p.token.Pos, errs, diag.Expected, TokenLParen.Describe())}
}

func (p *Parser) methodDecl(pos int, mods, result *Node, name string, typarams, receiver, params, thrown, body, defaultValue *Node) *Node {
	m := p.at(KindMethodDecl, pos, mods, result, typarams, receiver, params, thrown, body, defaultValue)
	m.Name = name
	return m
}

func (p *Parser) isRecordStart() bool {
	if p.token.Kind == TokenIdent && p.token.Name == "record" &&
		(p.peekToken(0, is(TokenIdent), is(TokenLParen)) ||
			p.peekToken(0, is(TokenIdent), is(TokenEOF)) ||
			p.peekToken(0, is(TokenIdent), is(TokenLT))) {
		p.checkFeature(source.Records)
		return true
	}
	return false
}

func (p *Parser) isNonSealedClassStart(local bool) bool {
	if p.isNonSealedIdentifier(p.token, 0) {
		next := p.s.TokenAt(3)
		return p.allowedAfterSealedOrNonSealed(next, local, true)
	}
	return false
}

// isNonSealedIdentifier reports whether t starts the three adjacent tokens
// non - sealed.
func (p *Parser) isNonSealedIdentifier(t Token, lookAheadOffset int) bool {
	if t.Kind == TokenIdent && t.Name == "non" && p.peekToken(lookAheadOffset, is(TokenMinus), is(TokenIdent)) {
		tokenSub := p.s.TokenAt(lookAheadOffset + 1)
		tokenSealed := p.s.TokenAt(lookAheadOffset + 2)
		if t.EndPos == tokenSub.Pos && tokenSub.EndPos == tokenSealed.Pos && tokenSealed.Name == "sealed" {
			p.checkFeature(source.SealedClasses)
			return true
		}
	}
	return false
}

func (p *Parser) isSealedClassStart(local bool) bool {
	if p.token.Kind == TokenIdent && p.token.Name == "sealed" {
		next := p.s.TokenAt(1)
		if p.allowedAfterSealedOrNonSealed(next, local, false) {
			p.checkFeature(source.SealedClasses)
			return true
		}
	}
	return false
}

func (p *Parser) allowedAfterSealedOrNonSealed(next Token, local, currentIsNonSealed bool) bool {
	switch next.Kind {
	case TokenAt:
		afterNext := p.s.TokenAt(2)
		return afterNext.Kind != TokenInterface || currentIsNonSealed
	case TokenAbstract, TokenFinal, TokenStrictfp, TokenClass, TokenInterface, TokenEnum:
		return true
	}
	if local {
		return false
	}
	switch next.Kind {
	case TokenPublic, TokenProtected, TokenPrivate, TokenStatic:
		return true
	case TokenIdent:
		offset := 1
		if currentIsNonSealed {
			offset = 3
		}
		return p.isNonSealedIdentifier(next, offset) || next.Name == "sealed"
	}
	return false
}

// methodDeclaratorRest parses FormalParameters BracketsOpt ["throws"
// TypeList] ( MethodBody | ["default" AnnotationValue] ";" ).
func (p *Parser) methodDeclaratorRest(pos int, mods, typ *Node, name string, typarams *Node, isInterface, isVoid, isRecord bool, dc *Comment) *Node {
	if isInterface {
		if mods.Flags.Has(FlagStatic) {
			p.checkFeature(source.StaticInterfaceMethods)
		}
		if mods.Flags.Has(FlagPrivate) {
			p.checkFeature(source.PrivateInterfaceMethods)
		}
	}
	prevReceiverParam := p.receiverParam
	defer func() { p.receiverParam = prevReceiverParam }()
	p.receiverParam = nil

	// formalParameters sets receiverParam when there is one
	params := p.at(KindParameters, p.token.Pos)
	var thrown *Node
	if !isRecord || name != "<init>" || p.token.Kind == TokenLParen {
		params.Children = p.formalParameters(false, false)
		p.toP(params)
		if !isVoid {
			typ = p.bracketsOpt(typ, nil)
		}
		if p.token.Kind == TokenThrows {
			throwsPos := p.token.Pos
			p.nextToken()
			thrown = p.toP(p.at(KindThrowsList, throwsPos, p.qualidentList(true)...))
		}
	}
	var body, defaultValue *Node
	if p.token.Kind == TokenLBrace {
		body = p.blockHere()
	} else {
		if p.token.Kind == TokenDefault {
			defaultPos := p.token.Pos
			p.accept(TokenDefault)
			defaultValue = p.toP(p.at(KindDefaultValue, defaultPos, p.annotationValue()))
		}
		p.accept(TokenSemicolon)
		if p.token.Pos <= p.endPos.ErrorEndPos() {
			// error recovery
			p.skip(false, true, false, false)
			if p.token.Kind == TokenLBrace {
				body = p.blockHere()
			}
		}
	}

	result := p.toP(p.methodDecl(pos, mods, typ, name, typarams, p.receiverParam, params, thrown, body, defaultValue))
	p.attach(result, dc)
	return result
}

// qualidentList parses [Annotations] Qualident {"," [Annotations] Qualident}.
func (p *Parser) qualidentList(allowAnnos bool) []*Node {
	var ts []*Node
	for {
		var typeAnnos []*Node
		if allowAnnos {
			typeAnnos = p.typeAnnotationsOpt()
		}
		qi := p.qualident(allowAnnos)
		if len(typeAnnos) > 0 {
			qi = p.insertAnnotationsToMostInner(qi, typeAnnos, false)
		}
		ts = append(ts, qi)
		if p.token.Kind != TokenComma {
			return ts
		}
		p.nextToken()
	}
}

// typeParametersOpt parses ["<" TypeParameter {"," TypeParameter} ">"]
// and returns nil when there are none.
func (p *Parser) typeParametersOpt() *Node {
	if p.token.Kind != TokenLT {
		return nil
	}
	typarams := p.at(KindTypeParameters, p.token.Pos)
	p.nextToken()
	typarams.AddChild(p.typeParameter())
	for p.token.Kind == TokenComma {
		p.nextToken()
		typarams.AddChild(p.typeParameter())
	}
	p.accept(TokenGT)
	return p.toP(typarams)
}

// typeParameter parses [Annotations] Ident ["extends" Type {"&" Type}].
func (p *Parser) typeParameter() *Node {
	pos := p.token.Pos
	annos := p.typeAnnotationsOpt()
	name := p.typeName()
	var mods *Node
	if len(annos) > 0 {
		mods = p.at(KindModifiers, annos[0].Pos, annos...)
	}
	tp := p.at(KindTypeParameter, pos, mods)
	tp.Name = name
	if p.token.Kind == TokenExtends {
		p.nextToken()
		tp.AddChild(p.ParseType())
		for p.token.Kind == TokenBitAnd {
			p.nextToken()
			tp.AddChild(p.ParseType())
		}
	}
	return p.toP(tp)
}

// formalParameters parses "(" [FormalParameterList] ")". A receiver
// parameter is stored in receiverParam instead of the result.
func (p *Parser) formalParameters(lambdaParameters, recordComponents bool) []*Node {
	var params []*Node
	p.accept(TokenLParen)
	if p.token.Kind != TokenRParen {
		p.allowThisIdent = !lambdaParameters && !recordComponents
		lastParam := p.formalParameter(lambdaParameters, recordComponents)
		if isReceiver(lastParam) {
			p.receiverParam = lastParam
		} else {
			params = append(params, lastParam)
		}
		p.allowThisIdent = false
		for p.token.Kind == TokenComma {
			if lastParam.Children[0].Flags.Has(FlagVarargs) {
				p.error(lastParam.Pos, diag.VarargsMustBeLast)
			}
			p.nextToken()
			lastParam = p.formalParameter(lambdaParameters, recordComponents)
			params = append(params, lastParam)
		}
	}
	if p.token.Kind == TokenRParen {
		p.nextToken()
	} else {
		p.setErrorEndPos(p.token.Pos)
		p.reportSyntaxError(p.s.PrevToken().EndPos, diag.Expected3,
			TokenComma.Describe(), TokenRParen.Describe(), TokenLBracket.Describe())
	}
	return params
}

// isReceiver reports whether v is a receiver parameter such as
// Outer.this.
func isReceiver(v *Node) bool {
	return v != nil && v.Kind == KindVarDecl && (v.Name == "this" || strings.HasSuffix(v.Name, ".this"))
}

func (p *Parser) implicitParameters(hasParens bool) []*Node {
	if hasParens {
		p.accept(TokenLParen)
	}
	var params []*Node
	if p.token.Kind != TokenRParen && p.token.Kind != TokenArrow {
		params = append(params, p.implicitParameter())
		for p.token.Kind == TokenComma {
			p.nextToken()
			params = append(params, p.implicitParameter())
		}
	}
	if hasParens {
		p.accept(TokenRParen)
	}
	return params
}

// optFinal parses modifiers where only final and annotations are allowed.
func (p *Parser) optFinal(flags Flags) *Node {
	mods := p.modifiersOpt(nil)
	p.checkNoMods(p.token.Pos, mods.Flags&^(FlagFinal|FlagDeprecated))
	mods.Flags |= flags
	return mods
}

// typeIn strips an annotated type down to its underlying type.
func typeIn(t *Node) *Node {
	if t != nil && t.Kind == KindAnnotatedType {
		return t.Children[0]
	}
	return t
}

// insertAnnotationsToMostInner attaches annos to the innermost element
// type of an array or the outermost qualifier of a nested type. With
// createNewLevel a new array level carrying the annotations is inserted
// innermost, as for the annotations before a varargs ellipsis.
func (p *Parser) insertAnnotationsToMostInner(typ *Node, annos []*Node, createNewLevel bool) *Node {
	origEndPos := EndPos(p.endPos, typ)
	mostInnerType := typ
	var mostInnerArrayType *Node
	for typeIn(mostInnerType).Kind == KindArrayType {
		mostInnerArrayType = typeIn(mostInnerType)
		mostInnerType = mostInnerArrayType.Children[0]
	}

	if createNewLevel {
		mostInnerType = p.to(p.at(KindArrayType, p.token.Pos, mostInnerType))
		origEndPos = EndPos(p.endPos, mostInnerType)
	}

	mostInnerTypeToReturn := mostInnerType
	if len(annos) > 0 {
		lastToModify := mostInnerType

		for k := typeIn(mostInnerType).Kind; k == KindFieldAccess || k == KindParameterizedType; k = typeIn(mostInnerType).Kind {
			for typeIn(mostInnerType).Kind == KindFieldAccess {
				lastToModify = mostInnerType
				mostInnerType = typeIn(mostInnerType).Children[0]
			}
			for typeIn(mostInnerType).Kind == KindParameterizedType {
				lastToModify = mostInnerType
				mostInnerType = typeIn(mostInnerType).Children[0]
			}
		}

		mostInnerType = p.annotatedType(annos[0].Pos, annos, mostInnerType)

		switch last := typeIn(lastToModify); last.Kind {
		case KindParameterizedType, KindFieldAccess:
			last.Children[0] = mostInnerType
		default:
			// no selection or type application was seen
			mostInnerTypeToReturn = mostInnerType
		}
	}

	if mostInnerArrayType == nil {
		return mostInnerTypeToReturn
	}
	mostInnerArrayType.Children[0] = mostInnerTypeToReturn
	p.storeEnd(typ, origEndPos)
	return typ
}

// formalParameter parses { "final" | Annotation } Type [ "..." ] VariableDeclaratorId.
func (p *Parser) formalParameter(lambdaParameter, recordComponent bool) *Node {
	var mods *Node
	if recordComponent {
		mods = p.modifiersOpt(nil)
		if mods.Flags != 0 {
			p.error(mods.Pos, diag.RecordCantDeclareFieldModifiers)
		}
		mods.Flags |= FlagRecord | FlagFinal | FlagPrivate | FlagGenerated
	} else {
		mods = p.optFinal(FlagParameter)
	}
	// annotations before "..." belong to the varargs level and are
	// pushed back by the type parser
	p.permitTypeAnnotationsPushBack = true
	typ := p.parseTypeVar(lambdaParameter)
	p.permitTypeAnnotationsPushBack = false

	if p.token.Kind == TokenEllipsis {
		varargsAnnos := p.typeAnnotationsPushedBack
		p.typeAnnotationsPushedBack = nil
		mods.Flags |= FlagVarargs
		typ = p.insertAnnotationsToMostInner(typ, varargsAnnos, true)
		p.nextToken()
	} else {
		if len(p.typeAnnotationsPushedBack) > 0 {
			p.reportSyntaxError(p.typeAnnotationsPushedBack[0].Pos, diag.IllegalStartOfType)
		}
		p.typeAnnotationsPushedBack = nil
	}
	return p.variableDeclaratorID(mods, typ, lambdaParameter, recordComponent)
}

func (p *Parser) implicitParameter() *Node {
	mods := &Node{Kind: KindModifiers, Pos: p.token.Pos, Flags: FlagParameter}
	return p.variableDeclaratorID(mods, nil, true, false)
}

// variableDeclaratorID parses Ident BracketsOpt, or a receiver parameter
// when this is allowed as an identifier.
func (p *Parser) variableDeclaratorID(mods, typ *Node, lambdaParameter, recordComponent bool) *Node {
	pos := p.token.Pos
	var name string
	if lambdaParameter && p.token.Kind == TokenUnderscore {
		p.error(pos, diag.UnderscoreAsIdentifierInLambda)
		name = p.token.Name
		p.nextToken()
	} else if p.allowThisIdent || !lambdaParameter || isLaxIdentifier(p.token.Kind) ||
		mods.Flags != FlagParameter || len(mods.Children) > 0 {
		pn := p.qualident(false)
		if pn.Kind == KindIdentifier && pn.Name != "this" {
			name = pn.Name
		} else {
			if p.allowThisIdent {
				if mods.Flags.Has(FlagVarargs) {
					p.error(p.token.Pos, diag.VarargsAndReceiver)
				}
				if p.token.Kind == TokenLBracket {
					p.error(p.token.Pos, diag.ArrayAndReceiver)
				}
				if pn.Kind == KindFieldAccess && pn.Name != "this" {
					p.error(p.token.Pos, diag.WrongReceiver)
				}
			}
			return p.toP(p.varDef(pos, mods, QualifiedName(pn), typ, nil))
		}
	} else {
		// an explicit lambda parameter without a name; the lambda is
		// classified as a whole later
		name = ""
	}
	if mods.Flags.Has(FlagVarargs) && p.token.Kind == TokenLBracket {
		p.error(p.token.Pos, diag.VarargsAndOldArraySyntax)
	}
	if recordComponent && p.token.Kind == TokenLBracket {
		p.error(p.token.Pos, diag.RecordComponentAndOldArraySyntax)
	}
	typ = p.bracketsOpt(typ, nil)

	return p.toP(p.varDef(pos, mods, name, typ, nil))
}

// QualifiedName renders an identifier or a chain of field accesses as a
// dotted name. Other nodes yield "".
func QualifiedName(n *Node) string {
	switch {
	case n == nil:
		return ""
	case n.Kind == KindIdentifier:
		return n.Name
	case n.Kind == KindFieldAccess:
		if q := QualifiedName(n.Child(0)); q != "" {
			return q + "." + n.Name
		}
		return n.Name
	case n.Kind == KindAnnotatedType:
		return QualifiedName(n.Child(0))
	}
	return ""
}

func (p *Parser) varDef(pos int, mods *Node, name string, vartype, init *Node) *Node {
	if mods == nil {
		mods = &Node{Kind: KindModifiers, Pos: diag.NoPos}
	}
	v := p.at(KindVarDecl, pos, mods, vartype, init)
	v.Name = name
	return v
}

// annotationsOpt parses { "@" Annotation } into nodes of kind.
func (p *Parser) annotationsOpt(kind NodeKind) []*Node {
	if p.token.Kind != TokenAt {
		return nil
	}
	var buf []*Node
	prevmode := p.mode
	for p.token.Kind == TokenAt {
		pos := p.token.Pos
		p.nextToken()
		buf = append(buf, p.annotation(pos, kind))
	}
	p.lastmode = p.mode
	p.mode = prevmode
	return buf
}

func (p *Parser) typeAnnotationsOpt() []*Node {
	return p.annotationsOpt(KindTypeAnnotation)
}

// modifiersOpt parses { Modifier }, continuing partial when it is not nil.
func (p *Parser) modifiersOpt(partial *Node) *Node {
	var flags Flags
	var annotations []*Node
	var pos int
	if partial == nil {
		pos = p.token.Pos
	} else {
		flags = partial.Flags
		annotations = append(annotations, partial.Children...)
		pos = partial.Pos
	}
	if p.token.Deprecated() {
		flags |= FlagDeprecated
	}
loop:
	for {
		var flag Flags
		switch p.token.Kind {
		case TokenPrivate, TokenProtected, TokenPublic, TokenStatic, TokenTransient,
			TokenFinal, TokenAbstract, TokenNative, TokenVolatile, TokenSynchronized,
			TokenStrictfp:
			flag = modifierTokens[p.token.Kind]
		case TokenAt:
			flag = FlagAnnotation
		case TokenDefault:
			p.checkFeature(source.DefaultMethods)
			flag = FlagDefault
		case TokenError:
			flag = 0
			p.nextToken()
		case TokenIdent:
			if p.isNonSealedClassStart(false) {
				flag = FlagNonSealed
				p.nextToken()
				p.nextToken()
				break
			}
			if p.isSealedClassStart(false) {
				p.checkFeature(source.SealedClasses)
				flag = FlagSealed
				break
			}
			break loop
		default:
			break loop
		}
		if flags&flag != 0 {
			p.error(p.token.Pos, diag.RepeatedModifier)
		}
		lastPos := p.token.Pos
		p.nextToken()
		if flag == FlagAnnotation && p.token.Kind != TokenInterface {
			ann := p.annotation(lastPos, KindAnnotation)
			// a leading annotation positions the modifiers
			if flags == 0 && len(annotations) == 0 {
				pos = ann.Pos
			}
			annotations = append(annotations, ann)
			flag = 0
		}
		flags |= flag
	}
	switch p.token.Kind {
	case TokenEnum:
		flags |= FlagEnum
	case TokenInterface:
		flags |= FlagInterface
	}

	// modifiers without tokens or annotations have no position
	if flags&(ModifierFlags|FlagAnnotation) == 0 && len(annotations) == 0 {
		pos = diag.NoPos
	}

	mods := &Node{Kind: KindModifiers, Pos: pos, Flags: flags, Children: annotations}
	if pos != diag.NoPos {
		p.storeEnd(mods, p.s.PrevToken().EndPos)
	}
	return mods
}

// annotation parses Qualident [ "(" AnnotationFieldValues ")" ] after the
// "@" at pos.
func (p *Parser) annotation(pos int, kind NodeKind) *Node {
	if kind == KindTypeAnnotation {
		p.checkFeature(source.TypeAnnotations)
	}
	ident := p.qualident(false)
	fieldValues := p.annotationFieldValuesOpt()
	ann := p.at(kind, pos, append([]*Node{ident}, fieldValues...)...)
	p.storeEnd(ann, p.s.PrevToken().EndPos)
	return ann
}

func (p *Parser) annotationFieldValuesOpt() []*Node {
	if p.token.Kind == TokenLParen {
		return p.annotationFieldValues()
	}
	return nil
}

// annotationFieldValues parses "(" [ AnnotationFieldValue { "," AnnotationFieldValue } ] ")".
func (p *Parser) annotationFieldValues() []*Node {
	p.accept(TokenLParen)
	var buf []*Node
	if p.token.Kind != TokenRParen {
		buf = append(buf, p.annotationFieldValue())
		for p.token.Kind == TokenComma {
			p.nextToken()
			buf = append(buf, p.annotationFieldValue())
		}
	}
	p.accept(TokenRParen)
	return buf
}

// annotationFieldValue parses AnnotationValue | Ident "=" AnnotationValue.
func (p *Parser) annotationFieldValue() *Node {
	if isLaxIdentifier(p.token.Kind) {
		p.selectExprMode()
		t1 := p.term1()
		if t1.Kind == KindIdentifier && p.token.Kind == TokenAssign {
			pos := p.token.Pos
			p.accept(TokenAssign)
			v := p.annotationValue()
			return p.toP(p.at(KindAssignExpr, pos, t1, v))
		}
		return t1
	}
	return p.annotationValue()
}

// annotationValue parses a conditional expression, a nested annotation or
// "{" [ AnnotationValue { "," AnnotationValue } ] [","] "}".
func (p *Parser) annotationValue() *Node {
	switch p.token.Kind {
	case TokenAt:
		pos := p.token.Pos
		p.nextToken()
		return p.annotation(pos, KindAnnotation)
	case TokenLBrace:
		pos := p.token.Pos
		elems := p.at(KindElements, pos)
		p.accept(TokenLBrace)
		if p.token.Kind == TokenComma {
			p.nextToken()
		} else if p.token.Kind != TokenRBrace {
			elems.AddChild(p.annotationValue())
			for p.token.Kind == TokenComma {
				p.nextToken()
				if p.token.Kind == TokenRBrace {
					break
				}
				elems.AddChild(p.annotationValue())
			}
		}
		p.accept(TokenRBrace)
		p.toP(elems)
		return p.toP(p.at(KindNewArrayExpr, pos, nil, p.at(KindDimensions, pos), elems))
	}
	p.selectExprMode()
	return p.term1()
}

// variableDeclarators parses VariableDeclarator { "," VariableDeclarator }.
func (p *Parser) variableDeclarators(mods, typ *Node, vdefs []*Node, localDecl bool) []*Node {
	pos := p.token.Pos
	return p.variableDeclaratorsRest(pos, mods, typ, p.ident(), false, nil, vdefs, localDecl)
}

func (p *Parser) variableDeclaratorsRest(pos int, mods, typ *Node, name string, reqInit bool, dc *Comment, vdefs []*Node, localDecl bool) []*Node {
	head := p.variableDeclaratorRest(pos, mods, typ, name, reqInit, dc, localDecl, false)
	vdefs = append(vdefs, head)
	for p.token.Kind == TokenComma {
		// all but the last declarator subsume a comma
		p.storeEnd(vdefs[len(vdefs)-1], p.token.EndPos)
		p.nextToken()
		vdefs = append(vdefs, p.variableDeclarator(mods, typ, reqInit, dc, localDecl))
	}
	return vdefs
}

func (p *Parser) variableDeclarator(mods, typ *Node, reqInit bool, dc *Comment, localDecl bool) *Node {
	pos := p.token.Pos
	return p.variableDeclaratorRest(pos, mods, typ, p.ident(), reqInit, dc, localDecl, true)
}

// variableDeclaratorRest parses BracketsOpt ["=" VariableInitializer].
// A var type is dropped and the declaration marked FlagImplicitType.
func (p *Parser) variableDeclaratorRest(pos int, mods, typ *Node, name string, reqInit bool, dc *Comment, localDecl, compound bool) *Node {
	declaredUsingVar := false
	typ = p.bracketsOpt(typ, nil)
	var init *Node
	if p.token.Kind == TokenAssign {
		p.nextToken()
		init = p.variableInitializer()
	} else if reqInit {
		p.syntaxError(p.token.Pos, nil, diag.Expected, TokenAssign.Describe())
	}
	elemType := innermostType(typ)
	if elemType != nil && elemType.Kind == KindIdentifier {
		typeName := elemType.Name
		if _, ok := p.restrictedTypeNameStartingAtSource(typeName, pos, !compound && localDecl); ok {
			switch {
			case typeName != "var":
				p.reportSyntaxError(elemType.Pos, diag.RestrictedTypeNotAllowedHere, typeName)
			case typ.Kind == KindArrayType && !compound:
				// var and arrays
				p.reportSyntaxError(elemType.Pos, diag.RestrictedTypeNotAllowedArray, typeName)
			default:
				declaredUsingVar = true
				if compound {
					// var in a compound declaration
					p.reportSyntaxError(elemType.Pos, diag.RestrictedTypeNotAllowedCompound, typeName)
				}
				// implicit type
				typ = nil
			}
		}
	}
	result := p.toP(p.varDef(pos, mods, name, typ, init))
	if declaredUsingVar {
		result.Flags |= FlagImplicitType
	}
	p.attach(result, dc)
	return result
}

// innermostType returns the element type of an array type, skipping
// annotations.
func innermostType(t *Node) *Node {
	for t != nil {
		switch t.Kind {
		case KindArrayType, KindAnnotatedType:
			t = t.Children[0]
		default:
			return t
		}
	}
	return nil
}

// restrictedTypeName returns the restricted name a type is written with,
// such as var or yield, or "" when it has none.
func (p *Parser) restrictedTypeName(e *Node, shouldWarn bool) string {
	switch e.Kind {
	case KindIdentifier:
		if _, ok := p.restrictedTypeNameStartingAtSource(e.Name, e.Pos, shouldWarn); ok {
			return e.Name
		}
	case KindArrayType:
		return p.restrictedTypeName(e.Children[0], shouldWarn)
	}
	return ""
}

// restrictedTypeNameStartingAtSource returns the level from which name is
// restricted as a type name, when it is restricted at the current level.
func (p *Parser) restrictedTypeNameStartingAtSource(name string, pos int, shouldWarn bool) (source.Level, bool) {
	var lvl source.Level
	var allowed bool
	switch name {
	case "var":
		lvl, allowed = source.JDK10, source.LocalVariableTypeInference.AllowedInSource(p.level)
	case "yield":
		lvl, allowed = source.JDK14, p.allowYieldStatement
	case "record":
		lvl, allowed = source.JDK14, p.allowRecords
	case "sealed", "permits":
		lvl, allowed = source.JDK15, p.allowSealedTypes
	default:
		return 0, false
	}
	if allowed {
		return lvl, true
	}
	if shouldWarn {
		p.warning(pos, diag.RestrictedTypeNotAllowedWarning, name, lvl.Name())
	}
	return 0, false
}
