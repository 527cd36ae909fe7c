package parser

import (
	"strconv"
	"strings"

	"github.com/dhamidi/jparse/java/diag"
)

type NodeKind int

// Children of each kind, in order. "?" marks an operand that is nil when
// absent; "..." marks a variable-length tail.
//
//	CompilationUnit       decls...
//	PackageDecl           name, annotations...
//	ImportDecl            name (Flags: Static)
//	ClassDecl etc.        Modifiers, TypeParameters?, ExtendsClause?, ImplementsClause?, PermitsClause?, members...
//	ModuleDecl            Modifiers, name, directives... (Flags: Open)
//	RequiresDirective     name (Flags: Transitive, Static)
//	ExportsDirective      package, modules...
//	OpensDirective        package, modules...
//	ProvidesDirective     service, implementations...
//	UsesDirective         service
//	MethodDecl            Modifiers, result?, TypeParameters?, receiver?, Parameters, ThrowsList?, body?, DefaultValue?
//	VarDecl               Modifiers, type?, init?
//	Block                 statements... (Flags: Static)
//	IfStmt                cond, then, else?
//	ForStmt               ForInit, cond?, ForUpdate, body
//	EnhancedForStmt       var, expr, body
//	WhileStmt             cond, body
//	DoStmt                body, cond
//	LabeledStmt           body
//	SwitchStmt            selector, cases...
//	SwitchExpr            selector, cases...
//	SwitchCase            CaseLabels, body?, statements... (Op: Colon or Arrow)
//	TryStmt               Resources?, body, finally?, catches...
//	CatchClause           param, body
//	SynchronizedStmt      lock, body
//	ReturnStmt            expr?
//	YieldStmt             expr
//	ThrowStmt             expr
//	AssertStmt            cond, detail?
//	ExprStmt              expr
//	AssignExpr            lhs, rhs
//	CompoundAssignExpr    lhs, rhs (Op)
//	TernaryExpr           cond, then, else
//	BinaryExpr            lhs, rhs (Op)
//	UnaryExpr             operand (Op)
//	PostfixExpr           operand (Op)
//	CastExpr              type, expr
//	InstanceofExpr        expr, type or pattern
//	CallExpr              method, TypeArguments?, args...
//	NewExpr               outer?, TypeArguments?, type, body?, args...
//	NewArrayExpr          elemType?, Dimensions, Elements?, annotations...
//	MethodRef             expr, TypeArguments? (Name is "<init>" for ::new)
//	FieldAccess           selected
//	ArrayAccess           array, index
//	LambdaExpr            Parameters, body
//	ParenExpr             expr
//	BindingPattern        var
//	ParenthesizedPattern  pattern
//	GuardPattern          pattern, guard
//	ArrayType             elemType
//	ParameterizedType     type, args...
//	Wildcard              bound? (Op: Question, Extends or Super)
//	UnionType             alternatives...
//	IntersectionType      bounds...
//	AnnotatedType         type, annotations...
//	TypeParameter         Modifiers?, bounds...
//	Annotation            type, args...
//	Modifiers             annotations...
//	Error                 partial trees...
const (
	KindError NodeKind = iota

	// Compilation unit level
	KindCompilationUnit
	KindPackageDecl
	KindImportDecl

	// Type declarations
	KindClassDecl
	KindInterfaceDecl
	KindEnumDecl
	KindRecordDecl
	KindAnnotationDecl
	KindModuleDecl
	KindRequiresDirective
	KindExportsDirective
	KindOpensDirective
	KindUsesDirective
	KindProvidesDirective

	// Members
	KindMethodDecl
	KindVarDecl

	// Type and modifiers
	KindModifiers
	KindTypeParameters
	KindTypeParameter
	KindTypeArguments
	KindPrimitiveType
	KindArrayType
	KindParameterizedType
	KindWildcard
	KindUnionType
	KindIntersectionType
	KindAnnotatedType
	KindAnnotation
	KindTypeAnnotation

	// Clauses
	KindExtendsClause
	KindImplementsClause
	KindPermitsClause
	KindParameters
	KindThrowsList
	KindDefaultValue

	// Statements
	KindBlock
	KindEmptyStmt
	KindExprStmt
	KindIfStmt
	KindForStmt
	KindForInit
	KindForUpdate
	KindEnhancedForStmt
	KindWhileStmt
	KindDoStmt
	KindSwitchStmt
	KindSwitchCase
	KindCaseLabels
	KindDefaultCaseLabel
	KindReturnStmt
	KindBreakStmt
	KindContinueStmt
	KindYieldStmt
	KindThrowStmt
	KindTryStmt
	KindResources
	KindCatchClause
	KindSynchronizedStmt
	KindAssertStmt
	KindLabeledStmt

	// Patterns
	KindBindingPattern
	KindParenthesizedPattern
	KindGuardPattern

	// Expressions
	KindAssignExpr
	KindCompoundAssignExpr
	KindTernaryExpr
	KindBinaryExpr
	KindUnaryExpr
	KindPostfixExpr
	KindCastExpr
	KindInstanceofExpr
	KindCallExpr
	KindMethodRef
	KindFieldAccess
	KindArrayAccess
	KindNewExpr
	KindNewArrayExpr
	KindDimensions
	KindElements
	KindLambdaExpr
	KindParenExpr
	KindLiteral
	KindIdentifier
	KindSwitchExpr
)

var nodeKindNames = map[NodeKind]string{
	KindError:                "Error",
	KindCompilationUnit:      "CompilationUnit",
	KindPackageDecl:          "PackageDecl",
	KindImportDecl:           "ImportDecl",
	KindClassDecl:            "ClassDecl",
	KindInterfaceDecl:        "InterfaceDecl",
	KindEnumDecl:             "EnumDecl",
	KindRecordDecl:           "RecordDecl",
	KindAnnotationDecl:       "AnnotationDecl",
	KindModuleDecl:           "ModuleDecl",
	KindRequiresDirective:    "RequiresDirective",
	KindExportsDirective:     "ExportsDirective",
	KindOpensDirective:       "OpensDirective",
	KindUsesDirective:        "UsesDirective",
	KindProvidesDirective:    "ProvidesDirective",
	KindMethodDecl:           "MethodDecl",
	KindVarDecl:              "VarDecl",
	KindModifiers:            "Modifiers",
	KindTypeParameters:       "TypeParameters",
	KindTypeParameter:        "TypeParameter",
	KindTypeArguments:        "TypeArguments",
	KindPrimitiveType:        "PrimitiveType",
	KindArrayType:            "ArrayType",
	KindParameterizedType:    "ParameterizedType",
	KindWildcard:             "Wildcard",
	KindUnionType:            "UnionType",
	KindIntersectionType:     "IntersectionType",
	KindAnnotatedType:        "AnnotatedType",
	KindAnnotation:           "Annotation",
	KindTypeAnnotation:       "TypeAnnotation",
	KindExtendsClause:        "ExtendsClause",
	KindImplementsClause:     "ImplementsClause",
	KindPermitsClause:        "PermitsClause",
	KindParameters:           "Parameters",
	KindThrowsList:           "ThrowsList",
	KindDefaultValue:         "DefaultValue",
	KindBlock:                "Block",
	KindEmptyStmt:            "EmptyStmt",
	KindExprStmt:             "ExprStmt",
	KindIfStmt:               "IfStmt",
	KindForStmt:              "ForStmt",
	KindForInit:              "ForInit",
	KindForUpdate:            "ForUpdate",
	KindEnhancedForStmt:      "EnhancedForStmt",
	KindWhileStmt:            "WhileStmt",
	KindDoStmt:               "DoStmt",
	KindSwitchStmt:           "SwitchStmt",
	KindSwitchCase:           "SwitchCase",
	KindCaseLabels:           "CaseLabels",
	KindDefaultCaseLabel:     "DefaultCaseLabel",
	KindReturnStmt:           "ReturnStmt",
	KindBreakStmt:            "BreakStmt",
	KindContinueStmt:         "ContinueStmt",
	KindYieldStmt:            "YieldStmt",
	KindThrowStmt:            "ThrowStmt",
	KindTryStmt:              "TryStmt",
	KindResources:            "Resources",
	KindCatchClause:          "CatchClause",
	KindSynchronizedStmt:     "SynchronizedStmt",
	KindAssertStmt:           "AssertStmt",
	KindLabeledStmt:          "LabeledStmt",
	KindBindingPattern:       "BindingPattern",
	KindParenthesizedPattern: "ParenthesizedPattern",
	KindGuardPattern:         "GuardPattern",
	KindAssignExpr:           "AssignExpr",
	KindCompoundAssignExpr:   "CompoundAssignExpr",
	KindTernaryExpr:          "TernaryExpr",
	KindBinaryExpr:           "BinaryExpr",
	KindUnaryExpr:            "UnaryExpr",
	KindPostfixExpr:          "PostfixExpr",
	KindCastExpr:             "CastExpr",
	KindInstanceofExpr:       "InstanceofExpr",
	KindCallExpr:             "CallExpr",
	KindMethodRef:            "MethodRef",
	KindFieldAccess:          "FieldAccess",
	KindArrayAccess:          "ArrayAccess",
	KindNewExpr:              "NewExpr",
	KindNewArrayExpr:         "NewArrayExpr",
	KindDimensions:           "Dimensions",
	KindElements:             "Elements",
	KindLambdaExpr:           "LambdaExpr",
	KindParenExpr:            "ParenExpr",
	KindLiteral:              "Literal",
	KindIdentifier:           "Identifier",
	KindSwitchExpr:           "SwitchExpr",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsTypeDecl reports whether k declares a class, interface, enum, record
// or annotation interface.
func (k NodeKind) IsTypeDecl() bool {
	return k >= KindClassDecl && k <= KindAnnotationDecl
}

// Error describes why a KindError node was produced.
type Error struct {
	Key  diag.Key
	Args []any
}

func (e *Error) Message() string {
	return e.Key.Format(e.Args...)
}

// Node is a syntax tree node. Pos is the byte offset of the node's first
// token; end positions live in an EndPosTable.
type Node struct {
	Kind NodeKind
	Pos  int
	// Name is the identifier of declarations, selections, labels and
	// identifiers.
	Name string
	// Op is the operator of unary, binary and compound assignment
	// expressions, the literal kind of literals, the keyword of primitive
	// types and the bound kind of wildcards.
	Op TokenKind
	// Value is the constant of a literal: int32, int64, float32, float64,
	// rune, string, bool or nil.
	Value    any
	Flags    Flags
	Error    *Error
	Children []*Node
}

func newNode(kind NodeKind, pos int, children ...*Node) *Node {
	return &Node{Kind: kind, Pos: pos, Children: children}
}

// AddChild appends child, skipping nil.
func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

// Child returns the i-th child, or nil when there is none.
func (n *Node) Child(i int) *Node {
	if n == nil || i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

// Tail returns the children from index i on.
func (n *Node) Tail(i int) []*Node {
	if n == nil || i >= len(n.Children) {
		return nil
	}
	return n.Children[i:]
}

func (n *Node) IsError() bool {
	return n.Kind == KindError
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child != nil && child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child != nil && child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// Inspect traverses the tree rooted at n in depth-first order. If f
// returns false, the children of the node are skipped.
func Inspect(n *Node, f func(*Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, child := range n.Children {
		Inspect(child, f)
	}
}

// HasErrors reports whether the tree contains an error node.
func HasErrors(n *Node) bool {
	found := false
	Inspect(n, func(c *Node) bool {
		if c.Kind == KindError {
			found = true
		}
		return !found
	})
	return found
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0, nil)
	return b.String()
}

// StringWithPositions renders the tree with [start-end] offsets taken
// from table.
func (n *Node) StringWithPositions(table EndPosTable) string {
	var b strings.Builder
	n.write(&b, 0, table)
	return b.String()
}

func (n *Node) write(b *strings.Builder, indent int, table EndPosTable) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if table != nil {
		b.WriteString(" [" + strconv.Itoa(n.Pos) + "-" + strconv.Itoa(EndPos(table, n)) + "]")
	}
	if n.Name != "" {
		b.WriteString(" " + n.Name)
	}
	if n.Flags != 0 {
		b.WriteString(" " + n.Flags.String())
	}
	switch n.Kind {
	case KindUnaryExpr, KindPostfixExpr, KindBinaryExpr, KindCompoundAssignExpr, KindWildcard:
		b.WriteString(" " + n.Op.String())
	case KindPrimitiveType:
		if n.Name == "" {
			b.WriteString(" " + n.Op.String())
		}
	case KindLiteral:
		b.WriteString(" " + FormatValue(n))
	}
	if n.Error != nil {
		b.WriteString(" ERROR: " + n.Error.Message())
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		if child != nil {
			child.write(b, indent+1, table)
		}
	}
}

// FormatValue renders a literal's value the way it would be written in
// source.
func FormatValue(n *Node) string {
	switch v := n.Value.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(v)
	case bool:
		return strconv.FormatBool(v)
	case int32:
		if n.Op == TokenCharLiteral {
			return strconv.QuoteRune(v)
		}
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10) + "L"
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32) + "f"
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return "?"
}
