package diag

import "fmt"

// Key identifies a kind of diagnostic. Keys are stable and may be matched
// by tools; the message text is derived from the key.
type Key string

// Lexical errors.
const (
	IllegalChar                     Key = "illegal.char"
	IllegalUnicodeEsc               Key = "illegal.unicode.esc"
	IllegalUnderscore               Key = "illegal.underscore"
	IllegalEscChar                  Key = "illegal.esc.char"
	IllegalNonASCIIDigit            Key = "illegal.nonascii.digit"
	UnclosedStrLit                  Key = "unclosed.str.lit"
	UnclosedCharLit                 Key = "unclosed.char.lit"
	EmptyCharLit                    Key = "empty.char.lit"
	IllegalLineEndInCharLit         Key = "illegal.line.end.in.char.lit"
	UnclosedComment                 Key = "unclosed.comment"
	UnclosedTextBlock               Key = "unclosed.text.block"
	IllegalTextBlockOpen            Key = "illegal.text.block.open"
	MalformedFpLit                  Key = "malformed.fp.lit"
	InvalidHexNumber                Key = "invalid.hex.number"
	InvalidBinaryNumber             Key = "invalid.binary.number"
	InconsistentWhiteSpace          Key = "inconsistent.white.space.indentation"
	TrailingWhiteSpaceWillBeRemoved Key = "trailing.white.space.will.be.removed"
	IntNumberTooLarge               Key = "int.number.too.large"
	FpNumberTooLarge                Key = "fp.number.too.large"
	FpNumberTooSmall                Key = "fp.number.too.small"
)

// Syntax errors.
const (
	Expected                              Key = "expected"
	Expected2                             Key = "expected2"
	Expected3                             Key = "expected3"
	Expected4                             Key = "expected4"
	ExpectedStr                           Key = "expected.str"
	PrematureEOF                          Key = "premature.eof"
	IllegalStartOfExpr                    Key = "illegal.start.of.expr"
	IllegalStartOfType                    Key = "illegal.start.of.type"
	IllegalStartOfStmt                    Key = "illegal.start.of.stmt"
	Orphaned                              Key = "orphaned"
	ElseWithoutIf                         Key = "else.without.if"
	CatchWithoutTry                       Key = "catch.without.try"
	FinallyWithoutTry                     Key = "finally.without.try"
	TryWithoutCatchFinallyOrResourceDecls Key = "try.without.catch.finally.or.resource.decls"
	RepeatedModifier                      Key = "repeated.modifier"
	ModNotAllowedHere                     Key = "mod.not.allowed.here"
	NotStmt                               Key = "not.stmt"
	InvalidLambdaParameterDeclaration     Key = "invalid.lambda.parameter.declaration"
	RestrictedTypeNotAllowed              Key = "restricted.type.not.allowed"
	RestrictedTypeNotAllowedHere          Key = "restricted.type.not.allowed.here"
	RestrictedTypeNotAllowedArray         Key = "restricted.type.not.allowed.array"
	RestrictedTypeNotAllowedCompound      Key = "restricted.type.not.allowed.compound"
	RestrictedTypeNotAllowedWarning       Key = "restricted.type.not.allowed.warning"
	DotClassExpected                      Key = "dot.class.expected"
	NoAnnotationsOnDotClass               Key = "no.annotations.on.dot.class"
	ArrayDimensionMissing                 Key = "array.dimension.missing"
	IllegalArrayCreationBothDimAndInit    Key = "illegal.array.creation.both.dimension.and.initialization"
	CannotCreateArrayWithDiamond          Key = "cannot.create.array.with.diamond"
	CannotCreateArrayWithTypeArguments    Key = "cannot.create.array.with.type.arguments"
	VariableNotAllowed                    Key = "variable.not.allowed"
	ClassNotAllowed                       Key = "class.not.allowed"
	InvalidMethDeclRetTypeReq             Key = "invalid.meth.decl.ret.type.req"
	VarargsMustBeLast                     Key = "varargs.must.be.last"
	VarargsAndOldArraySyntax              Key = "varargs.and.old.array.syntax"
	VarargsAndReceiver                    Key = "varargs.and.receiver"
	ArrayAndReceiver                      Key = "array.and.receiver"
	WrongReceiver                         Key = "wrong.receiver"
	EnumConstantExpected                  Key = "enum.constant.expected"
	EnumConstantNotExpected               Key = "enum.constant.not.expected"
	RecordHeaderExpected                  Key = "record.header.expected"
	RecordCannotDeclareInstanceFields     Key = "record.cannot.declare.instance.fields"
	RecordCantDeclareFieldModifiers       Key = "record.cant.declare.field.modifiers"
	RecordComponentAndOldArraySyntax      Key = "record.component.and.old.array.syntax"
	InstanceInitializerNotAllowedInRecord Key = "instance.initializer.not.allowed.in.records"
	InvalidCanonicalConstructorInRecord   Key = "invalid.canonical.constructor.in.record"
	InitializerNotAllowed                 Key = "initializer.not.allowed"
	ExpectedModuleOrOpen                  Key = "expected.module.or.open"
	InvalidModuleDirective                Key = "invalid.module.directive"
	InvalidPermitsClause                  Key = "invalid.permits.clause"
	SealedOrNonSealedLocalClasses         Key = "sealed.or.non.sealed.local.classes.not.allowed"
	LocalEnum                             Key = "local.enum"
	InvalidYield                          Key = "invalid.yield"
	NoSwitchExpression                    Key = "no.switch.expression"
	NoSwitchExpressionQualify             Key = "no.switch.expression.qualify"
	SwitchCaseUnexpectedStatement         Key = "switch.case.unexpected.statement"
	SwitchMixingCaseTypes                 Key = "switch.mixing.case.types"
	BadInitializer                        Key = "bad.initializer"
	TryWithResourcesExprNeedsVar          Key = "try.with.resources.expr.needs.var"
	UnderscoreAsIdentifier                Key = "underscore.as.identifier"
	UnderscoreAsIdentifierInLambda        Key = "underscore.as.identifier.in.lambda"
	UseOfUnderscoreNotAllowed             Key = "use.of.underscore.not.allowed"
	AssertAsIdentifier                    Key = "assert.as.identifier"
	EnumAsIdentifier                      Key = "enum.as.identifier"
	ThisAsIdentifier                      Key = "this.as.identifier"
	IllegalUnicodeEscapeInReference       Key = "illegal.ref"
	ConstantExpressionExpected            Key = "const.expr.req"
	DefaultAllowedInIntfAnnotationMember  Key = "default.allowed.in.intf.annotation.member"
	AnnotationMissingElementValue         Key = "annotation.missing.element.value"
	IllegalDotDefault                     Key = "illegal.dot"
)

// Source level and preview diagnostics.
const (
	FeatureNotSupported    Key = "feature.not.supported.in.source"
	PreviewFeatureDisabled Key = "preview.feature.disabled"
	PreviewFeatureUse      Key = "preview.feature.use"
)

// Doc comment diagnostics.
const (
	DocUnterminatedInlineTag Key = "dc.unterminated.inline.tag"
	DocUnterminatedString    Key = "dc.unterminated.string"
	DocMalformedHTML         Key = "dc.malformed.html"
	DocMissingSemicolon      Key = "dc.missing.semicolon"
	DocBadEntity             Key = "dc.bad.entity"
	DocUnexpectedContent     Key = "dc.unexpected.content"
	DocNoTagName             Key = "dc.no.tag.name"
	DocGTExpected            Key = "dc.gt.expected"
	DocIdentifierExpected    Key = "dc.identifier.expected"
	DocNoContent             Key = "dc.no.content"
	DocTagNotSupported       Key = "dc.tag.not.supported"
	DocRefBadParens          Key = "dc.ref.bad.parens"
	DocRefSyntaxError        Key = "dc.ref.syntax.error"
	DocRefUnexpectedInput    Key = "dc.ref.unexpected.input"
	DocRefAnnotationsInParam Key = "dc.ref.annotations.not.allowed"
	DocBadReference          Key = "dc.bad.reference"
	DocBadGT                 Key = "dc.bad.gt"
	DocUnterminatedSignature Key = "dc.unterminated.signature"
)

var messages = map[Key]string{
	IllegalChar:                     "illegal character: '%s'",
	IllegalUnicodeEsc:               "illegal unicode escape",
	IllegalUnderscore:               "illegal underscore",
	IllegalEscChar:                  "illegal escape character",
	IllegalNonASCIIDigit:            "illegal non-ASCII digit",
	UnclosedStrLit:                  "unclosed string literal",
	UnclosedCharLit:                 "unclosed character literal",
	EmptyCharLit:                    "empty character literal",
	IllegalLineEndInCharLit:         "illegal line end in character literal",
	UnclosedComment:                 "unclosed comment",
	UnclosedTextBlock:               "unclosed text block",
	IllegalTextBlockOpen:            "illegal text block open delimiter sequence, missing line terminator",
	MalformedFpLit:                  "malformed floating-point literal",
	InvalidHexNumber:                "hexadecimal numbers must contain at least one hexadecimal digit",
	InvalidBinaryNumber:             "binary numbers must contain at least one binary digit",
	InconsistentWhiteSpace:          "inconsistent white space indentation",
	TrailingWhiteSpaceWillBeRemoved: "trailing white space will be removed",
	IntNumberTooLarge:               "integer number too large: %s",
	FpNumberTooLarge:                "floating-point number too large",
	FpNumberTooSmall:                "floating-point number too small",

	Expected:                              "%s expected",
	Expected2:                             "%s or %s expected",
	Expected3:                             "%s, %s, or %s expected",
	Expected4:                             "%s, %s, %s, or %s expected",
	ExpectedStr:                           "%s expected",
	PrematureEOF:                          "reached end of file while parsing",
	IllegalStartOfExpr:                    "illegal start of expression",
	IllegalStartOfType:                    "illegal start of type",
	IllegalStartOfStmt:                    "illegal start of statement",
	Orphaned:                              "orphaned %s",
	ElseWithoutIf:                         "'else' without 'if'",
	CatchWithoutTry:                       "'catch' without 'try'",
	FinallyWithoutTry:                     "'finally' without 'try'",
	TryWithoutCatchFinallyOrResourceDecls: "'try' without 'catch', 'finally' or resource declarations",
	RepeatedModifier:                      "repeated modifier",
	ModNotAllowedHere:                     "modifier %s not allowed here",
	NotStmt:                               "not a statement",
	InvalidLambdaParameterDeclaration:     "invalid lambda parameter declaration (%s)",
	RestrictedTypeNotAllowed:              "'%s' not allowed here, as of release %s, '%s' is a restricted type name",
	RestrictedTypeNotAllowedHere:          "'%s' is not allowed here",
	RestrictedTypeNotAllowedArray:         "'%s' is not allowed as an element type of an array",
	RestrictedTypeNotAllowedCompound:      "'%s' is not allowed in a compound declaration",
	RestrictedTypeNotAllowedWarning:       "as of release %[2]s, '%[1]s' is a restricted type name and cannot be used for type declarations",
	DotClassExpected:                      "'.class' expected",
	NoAnnotationsOnDotClass:               "no annotations are allowed in the type of a class literal",
	ArrayDimensionMissing:                 "array dimension missing",
	IllegalArrayCreationBothDimAndInit:    "array creation with both dimension expression and initialization is illegal",
	CannotCreateArrayWithDiamond:          "cannot create array with '<>'",
	CannotCreateArrayWithTypeArguments:    "cannot create array with type arguments",
	VariableNotAllowed:                    "variable declaration not allowed here",
	ClassNotAllowed:                       "class, interface or enum declaration not allowed here",
	InvalidMethDeclRetTypeReq:             "invalid method declaration; return type required",
	VarargsMustBeLast:                     "varargs parameter must be the last parameter",
	VarargsAndOldArraySyntax:              "legacy array notation not allowed on variable-arity parameter",
	VarargsAndReceiver:                    "varargs notation not allowed on receiver parameter",
	ArrayAndReceiver:                      "legacy array notation not allowed on receiver parameter",
	WrongReceiver:                         "wrong receiver parameter name",
	EnumConstantExpected:                  "enum constant expected here",
	EnumConstantNotExpected:               "enum constant not expected here",
	RecordHeaderExpected:                  "record header expected",
	RecordCannotDeclareInstanceFields:     "field declaration must be static (consider replacing field with record component)",
	RecordCantDeclareFieldModifiers:       "record components cannot have modifiers",
	RecordComponentAndOldArraySyntax:      "legacy array notation not allowed on record components",
	InstanceInitializerNotAllowedInRecord: "instance initializers not allowed in records",
	InvalidCanonicalConstructorInRecord:   "invalid compact constructor in record %s (throws clause not allowed)",
	InitializerNotAllowed:                 "initializers not allowed in interfaces",
	ExpectedModuleOrOpen:                  "'module' or 'open' expected",
	InvalidModuleDirective:                "module directive keyword or '}' expected",
	InvalidPermitsClause:                  "invalid permits clause (%s)",
	SealedOrNonSealedLocalClasses:         "sealed or non-sealed local classes not allowed",
	LocalEnum:                             "enum classes must not be local",
	InvalidYield:                          "invalid use of a restricted identifier 'yield'",
	NoSwitchExpression:                    "yield outside of switch expression",
	NoSwitchExpressionQualify:             "yield outside of switch expression (to invoke a method called yield, qualify the yield with a receiver or type name)",
	SwitchCaseUnexpectedStatement:         "unexpected statement in case, expected is an expression, a block or a throw statement",
	SwitchMixingCaseTypes:                 "different case kinds used in the switch",
	BadInitializer:                        "bad initializer for %s",
	TryWithResourcesExprNeedsVar:          "the try-with-resources resource must either be a variable declaration or an expression denoting a reference to a final or effectively final variable",
	UnderscoreAsIdentifier:                "as of release 9, '_' is a keyword, and may not be used as an identifier",
	UnderscoreAsIdentifierInLambda:        "'_' used as an identifier (use of '_' as an identifier is forbidden for lambda parameters)",
	UseOfUnderscoreNotAllowed:             "as of release 9, '_' is a keyword, and may not be used as an identifier",
	AssertAsIdentifier:                    "as of release 1.4, 'assert' is a keyword, and may not be used as an identifier",
	EnumAsIdentifier:                      "as of release 5, 'enum' is a keyword, and may not be used as an identifier",
	ThisAsIdentifier:                      "as of release 8, 'this' is allowed as the parameter name for the receiver type only",
	IllegalUnicodeEscapeInReference:       "illegal reference",
	ConstantExpressionExpected:            "constant expression required",
	DefaultAllowedInIntfAnnotationMember:  "default value only allowed in an annotation interface declaration",
	AnnotationMissingElementValue:         "annotation is missing element value",
	IllegalDotDefault:                     "illegal '.'",

	FeatureNotSupported:    "%s are not supported in -source %s (use -source %s or higher)",
	PreviewFeatureDisabled: "%s are a preview feature and are disabled by default (use --enable-preview)",
	PreviewFeatureUse:      "%s are a preview feature and may be removed in a future release",

	DocUnterminatedInlineTag: "unterminated inline tag",
	DocUnterminatedString:    "unterminated string",
	DocMalformedHTML:         "malformed HTML",
	DocMissingSemicolon:      "semicolon missing",
	DocBadEntity:             "bad HTML entity",
	DocUnexpectedContent:     "unexpected content",
	DocNoTagName:             "no tag name after '@'",
	DocGTExpected:            "'>' expected",
	DocIdentifierExpected:    "identifier expected",
	DocNoContent:             "no content",
	DocTagNotSupported:       "tag not supported in this context: @%s",
	DocRefBadParens:          "unexpected text after parenthesis",
	DocRefSyntaxError:        "syntax error in reference",
	DocRefUnexpectedInput:    "unexpected text",
	DocRefAnnotationsInParam: "annotations not allowed in reference parameters",
	DocBadReference:          "bad reference syntax",
	DocBadGT:                 "bad use of '>'",
	DocUnterminatedSignature: "unterminated signature",
}

// Format renders the message for k with args.
func (k Key) Format(args ...any) string {
	tmpl, ok := messages[k]
	if !ok {
		return string(k)
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}
