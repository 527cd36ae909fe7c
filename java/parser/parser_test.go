package parser

import (
	"testing"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/source"
	"github.com/google/go-cmp/cmp"
)

// find returns the first node of kind in depth-first order.
func find(n *Node, kind NodeKind) *Node {
	var found *Node
	Inspect(n, func(c *Node) bool {
		if found != nil {
			return false
		}
		if c.Kind == kind {
			found = c
			return false
		}
		return true
	})
	return found
}

func findAll(n *Node, kind NodeKind) []*Node {
	var out []*Node
	Inspect(n, func(c *Node) bool {
		if c.Kind == kind {
			out = append(out, c)
		}
		return true
	})
	return out
}

func childKinds(nodes []*Node) []NodeKind {
	out := make([]NodeKind, 0, len(nodes))
	for _, n := range nodes {
		if n != nil {
			out = append(out, n.Kind)
		}
	}
	return out
}

func parseClean(t *testing.T, src string, opts ...Option) *Unit {
	t.Helper()
	log := diag.NewLog("Test.java")
	unit := Parse(src, append(opts, WithHandler(log))...)
	if log.HasErrors() {
		t.Fatalf("Parse(%q) errors: %v", src, log.Errors())
	}
	return unit
}

func TestParseExpression(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"a", "Identifier a\n"},
		{"a + b * c", "BinaryExpr +\n  Identifier a\n  BinaryExpr *\n    Identifier b\n    Identifier c\n"},
		{"a - b - c", "BinaryExpr -\n  BinaryExpr -\n    Identifier a\n    Identifier b\n  Identifier c\n"},
		{"!a && b", "BinaryExpr &&\n  UnaryExpr !\n    Identifier a\n  Identifier b\n"},
		{"x = y = 1", "AssignExpr\n  Identifier x\n  AssignExpr\n    Identifier y\n    Literal 1\n"},
		{"x += 1", "CompoundAssignExpr +=\n  Identifier x\n  Literal 1\n"},
		{"a ? b : c", "TernaryExpr\n  Identifier a\n  Identifier b\n  Identifier c\n"},
		{"-x", "UnaryExpr -\n  Identifier x\n"},
		{"i++", "PostfixExpr ++\n  Identifier i\n"},
		{"(a)", "ParenExpr\n  Identifier a\n"},
		{"(int) x", "CastExpr\n  PrimitiveType int\n  Identifier x\n"},
		{"(Foo) bar", "CastExpr\n  Identifier Foo\n  Identifier bar\n"},
		{"(foo) -> bar", "LambdaExpr\n  Parameters\n    VarDecl foo\n      Modifiers parameter\n  Identifier bar\n"},
		{"a[i]", "ArrayAccess\n  Identifier a\n  Identifier i\n"},
		{"this.x", "FieldAccess x\n  Identifier this\n"},
		{"String.class", "FieldAccess class\n  Identifier String\n"},
		{"foo.bar(1, 2)", "CallExpr\n  FieldAccess bar\n    Identifier foo\n  Literal 1\n  Literal 2\n"},
		{"new Foo(1)", "NewExpr\n  Identifier Foo\n  Literal 1\n"},
		{"new int[3]", "NewArrayExpr\n  PrimitiveType int\n  Dimensions\n    Literal 3\n"},
		{"String::valueOf", "MethodRef valueOf\n  Identifier String\n"},
		{"ArrayList::new", "MethodRef <init>\n  Identifier ArrayList\n"},
		{"o instanceof String", "InstanceofExpr\n  Identifier o\n  Identifier String\n"},
		{"o instanceof String s", "InstanceofExpr\n  Identifier o\n  BindingPattern\n    VarDecl s\n      Modifiers\n      Identifier String\n"},
		{"x -> x + 1", "LambdaExpr\n  Parameters\n    VarDecl x\n      Modifiers parameter\n  BinaryExpr +\n    Identifier x\n    Literal 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := &diag.Deferred{}
			unit := ParseExpression(tt.input, WithHandler(d))
			if ds := d.Diagnostics(); len(ds) > 0 {
				t.Fatalf("unexpected diagnostics: %v", ds)
			}
			if diff := cmp.Diff(tt.want, unit.Tree.String()); diff != "" {
				t.Errorf("ParseExpression(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}

func TestParseExplicitLambda(t *testing.T) {
	unit := ParseExpression("(Foo x) -> bar")
	if unit.Tree.Kind != KindLambdaExpr {
		t.Fatalf("Kind = %v, want %v", unit.Tree.Kind, KindLambdaExpr)
	}
	param := find(unit.Tree, KindVarDecl)
	if param == nil || param.Name != "x" {
		t.Fatalf("parameter = %v, want VarDecl x", param)
	}
	if typ := find(param, KindIdentifier); typ == nil || typ.Name != "Foo" {
		t.Errorf("parameter type = %v, want Identifier Foo", typ)
	}
}

func TestParseLambdaMixedParameters(t *testing.T) {
	d := &diag.Deferred{}
	unit := ParseExpression("(int x, var y) -> x", WithHandler(d))
	ds := d.Diagnostics()
	if len(ds) == 0 {
		t.Fatalf("no diagnostics, want %s", diag.InvalidLambdaParameterDeclaration)
	}
	if ds[0].Key != diag.InvalidLambdaParameterDeclaration {
		t.Errorf("Key = %s, want %s", ds[0].Key, diag.InvalidLambdaParameterDeclaration)
	}
	if unit.Tree.Kind != KindLambdaExpr {
		t.Errorf("Kind = %v, want %v", unit.Tree.Kind, KindLambdaExpr)
	}
}

func TestParseNestedTypeArguments(t *testing.T) {
	tests := []struct {
		input string
		kind  NodeKind
	}{
		{"List<List<String>>::size", KindMethodRef},
		{"(List<List<String>>) o", KindCastExpr},
		{"new HashMap<String, List<List<Integer>>>()", KindNewExpr},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := &diag.Deferred{}
			unit := ParseExpression(tt.input, WithHandler(d))
			if ds := d.Diagnostics(); len(ds) > 0 {
				t.Fatalf("unexpected diagnostics: %v", ds)
			}
			if unit.Tree.Kind != tt.kind {
				t.Errorf("Kind = %v, want %v", unit.Tree.Kind, tt.kind)
			}
			if got := len(findAll(unit.Tree, KindParameterizedType)); got < 2 {
				t.Errorf("ParameterizedType count = %d, want at least 2", got)
			}
		})
	}
}

func TestParseLiterals(t *testing.T) {
	tests := []struct {
		input string
		want  any
		out   string
	}{
		{"42", int32(42), "42"},
		{"-2147483648", int32(-2147483648), "-2147483648"},
		{"0xFFFFFFFF", int32(-1), "-1"},
		{"017", int32(15), "15"},
		{"0777", int32(511), "511"},
		{"42L", int64(42), "42L"},
		{"-9223372036854775808L", int64(-9223372036854775808), "-9223372036854775808L"},
		{"1.5f", float32(1.5), "1.5f"},
		{"2.5", 2.5, "2.5"},
		{"'a'", 'a', "'a'"},
		{`"hi"`, "hi", `"hi"`},
		{"true", true, "true"},
		{"null", nil, "null"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			n := ParseExpression(tt.input).Tree
			if n.Kind != KindLiteral {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindLiteral)
			}
			if n.Value != tt.want {
				t.Errorf("Value = %#v, want %#v", n.Value, tt.want)
			}
			if got := FormatValue(n); got != tt.out {
				t.Errorf("FormatValue() = %q, want %q", got, tt.out)
			}
		})
	}
}

func TestParseLiteralTooLarge(t *testing.T) {
	tests := []string{"2147483648", "9223372036854775808L", "1e999"}
	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			d := &diag.Deferred{}
			n := ParseExpression(input, WithHandler(d)).Tree
			if n.Kind != KindError {
				t.Errorf("Kind = %v, want %v", n.Kind, KindError)
			}
			ds := d.Diagnostics()
			if len(ds) != 1 {
				t.Fatalf("got %d diagnostics, want 1: %v", len(ds), ds)
			}
			if ds[0].Key != diag.IntNumberTooLarge && ds[0].Key != diag.FpNumberTooLarge {
				t.Errorf("Key = %s, want a too-large error", ds[0].Key)
			}
		})
	}
}

func TestStringFolding(t *testing.T) {
	tests := []struct {
		input   string
		folding bool
		want    string
	}{
		{`"a" + "b"`, true, "Literal \"ab\"\n"},
		{`"a" + "b" + c`, true, "BinaryExpr +\n  Literal \"ab\"\n  Identifier c\n"},
		{`"a" + "b"`, false, "BinaryExpr +\n  Literal \"a\"\n  Literal \"b\"\n"},
		{`c + "a"`, true, "BinaryExpr +\n  Identifier c\n  Literal \"a\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			unit := ParseExpression(tt.input, WithStringFolding(tt.folding))
			if diff := cmp.Diff(tt.want, unit.Tree.String()); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseSwitchExpression(t *testing.T) {
	unit := ParseExpression(`switch (x) { case 1, 2 -> "a"; default -> { yield "b"; } }`)
	sw := unit.Tree
	if sw.Kind != KindSwitchExpr {
		t.Fatalf("Kind = %v, want %v", sw.Kind, KindSwitchExpr)
	}
	if got := sw.Child(0).Kind; got != KindParenExpr {
		t.Errorf("selector = %v, want %v", got, KindParenExpr)
	}
	cases := sw.Tail(1)
	if len(cases) != 2 {
		t.Fatalf("got %d cases, want 2", len(cases))
	}
	for i, c := range cases {
		if c.Op != TokenArrow {
			t.Errorf("case %d Op = %v, want %v", i, c.Op, TokenArrow)
		}
	}
	if got := len(cases[0].Child(0).Children); got != 2 {
		t.Errorf("first case has %d labels, want 2", got)
	}
	if got := cases[1].Child(0).Child(0).Kind; got != KindDefaultCaseLabel {
		t.Errorf("second case label = %v, want %v", got, KindDefaultCaseLabel)
	}
	if find(cases[1], KindYieldStmt) == nil {
		t.Errorf("default case has no yield statement")
	}
}

func TestParseStatements(t *testing.T) {
	tests := []struct {
		input string
		check func(t *testing.T, n *Node)
	}{
		{"for (int i = 0; i < n; i++) {}", func(t *testing.T, n *Node) {
			if n.Kind != KindForStmt {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindForStmt)
			}
			if got := len(n.Child(0).Children); got != 1 {
				t.Errorf("init has %d statements, want 1", got)
			}
			if got := n.Child(1).Op; got != TokenLT {
				t.Errorf("cond Op = %v, want %v", got, TokenLT)
			}
		}},
		{"for (String s : xs) {}", func(t *testing.T, n *Node) {
			if n.Kind != KindEnhancedForStmt {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindEnhancedForStmt)
			}
			if got := n.Child(0).Name; got != "s" {
				t.Errorf("var Name = %q, want %q", got, "s")
			}
		}},
		{"outer: while (true) break outer;", func(t *testing.T, n *Node) {
			if n.Kind != KindLabeledStmt || n.Name != "outer" {
				t.Fatalf("got %v %q, want LabeledStmt outer", n.Kind, n.Name)
			}
			brk := find(n, KindBreakStmt)
			if brk == nil || brk.Name != "outer" {
				t.Errorf("break label = %v, want outer", brk)
			}
		}},
		{"try (var r = open()) {} catch (A | B e) {} finally {}", func(t *testing.T, n *Node) {
			if n.Kind != KindTryStmt {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindTryStmt)
			}
			if got := len(n.Child(0).Children); got != 1 {
				t.Errorf("got %d resources, want 1", got)
			}
			if n.Child(2) == nil {
				t.Errorf("finally block missing")
			}
			if got := len(n.Tail(3)); got != 1 {
				t.Errorf("got %d catch clauses, want 1", got)
			}
		}},
		{"{ var x = 1; }", func(t *testing.T, n *Node) {
			v := find(n, KindVarDecl)
			if v == nil {
				t.Fatal("no variable declaration")
			}
			if !v.Flags.Has(FlagImplicitType) {
				t.Errorf("Flags = %v, want implicit", v.Flags)
			}
			if v.Child(1) != nil {
				t.Errorf("type = %v, want nil", v.Child(1))
			}
		}},
		{"switch (x) { case 1, 2 -> f(); default -> {} }", func(t *testing.T, n *Node) {
			if n.Kind != KindSwitchStmt {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindSwitchStmt)
			}
			if got := len(n.Tail(1)); got != 2 {
				t.Errorf("got %d cases, want 2", got)
			}
		}},
		{"if (a) b(); else c();", func(t *testing.T, n *Node) {
			if n.Kind != KindIfStmt {
				t.Fatalf("Kind = %v, want %v", n.Kind, KindIfStmt)
			}
			want := []NodeKind{KindParenExpr, KindExprStmt, KindExprStmt}
			if diff := cmp.Diff(want, childKinds(n.Children)); diff != "" {
				t.Errorf("children mismatch (-want +got):\n%s", diff)
			}
		}},
		{"assert x : \"msg\";", func(t *testing.T, n *Node) {
			if n.Kind != KindAssertStmt || n.Child(1) == nil {
				t.Errorf("got %v with detail %v, want AssertStmt with detail", n.Kind, n.Child(1))
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := &diag.Deferred{}
			unit := ParseStatement(tt.input, WithHandler(d))
			if d.HasErrors() {
				t.Fatalf("unexpected errors: %v", d.Diagnostics())
			}
			tt.check(t, unit.Tree)
		})
	}
}

func TestParseClass(t *testing.T) {
	src := `package p;
import java.util.List;
import static java.lang.Math.*;
/** Doc. */
public final class A<T> extends B implements C, D {
  private int x = 1, y;
  A() {}
  static <U> U m(U u) throws E { return u; }
}
`
	unit := parseClean(t, src, WithDocComments())
	defs := unit.Tree.Children
	want := []NodeKind{KindPackageDecl, KindImportDecl, KindImportDecl, KindClassDecl}
	if diff := cmp.Diff(want, childKinds(defs)); diff != "" {
		t.Fatalf("top-level mismatch (-want +got):\n%s", diff)
	}

	if got := QualifiedName(defs[0].Child(0)); got != "p" {
		t.Errorf("package = %q, want %q", got, "p")
	}
	if got := QualifiedName(defs[1].Child(0)); got != "java.util.List" {
		t.Errorf("import = %q, want %q", got, "java.util.List")
	}
	if got := QualifiedName(defs[2].Child(0)); got != "java.lang.Math.*" {
		t.Errorf("static import = %q, want %q", got, "java.lang.Math.*")
	}
	if !defs[2].Flags.Has(FlagStatic) {
		t.Errorf("static import Flags = %v, want static", defs[2].Flags)
	}

	class := defs[3]
	if class.Name != "A" {
		t.Errorf("Name = %q, want %q", class.Name, "A")
	}
	if mods := class.Child(0); !mods.Flags.Has(FlagPublic) || !mods.Flags.Has(FlagFinal) {
		t.Errorf("modifiers = %v, want public final", mods.Flags)
	}
	if tp := class.Child(1); tp == nil || tp.Child(0).Name != "T" {
		t.Errorf("type parameters = %v, want T", tp)
	}
	if ext := class.Child(2); ext == nil || ext.Kind != KindExtendsClause || ext.Child(0).Name != "B" {
		t.Errorf("extends = %v, want B", ext)
	}
	if impl := class.Child(3); impl == nil || len(impl.Children) != 2 {
		t.Errorf("implements = %v, want C, D", impl)
	}

	members := class.Tail(5)
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"x", "y", "<init>", "m"}, names); diff != "" {
		t.Errorf("members mismatch (-want +got):\n%s", diff)
	}
	if got := members[0].Child(2); got == nil || got.Value != int32(1) {
		t.Errorf("x init = %v, want 1", got)
	}
	if members[1].Child(2) != nil {
		t.Errorf("y init = %v, want nil", members[1].Child(2))
	}
	if members[2].Child(1) != nil {
		t.Errorf("constructor result = %v, want nil", members[2].Child(1))
	}

	m := members[3]
	if m.Child(2) == nil {
		t.Errorf("m has no type parameters")
	}
	if got := len(m.Child(4).Children); got != 1 {
		t.Errorf("m has %d parameters, want 1", got)
	}
	if thrown := m.Child(5); thrown == nil || thrown.Child(0).Name != "E" {
		t.Errorf("throws = %v, want E", thrown)
	}
	if find(m.Child(6), KindReturnStmt) == nil {
		t.Errorf("m body has no return statement")
	}

	dc := unit.DocComments[class]
	if dc == nil {
		t.Fatal("class has no doc comment")
	}
	if got := dc.Text(); got != "Doc. " {
		t.Errorf("doc comment Text() = %q, want %q", got, "Doc. ")
	}
}

func TestParseDeprecatedFlag(t *testing.T) {
	unit := parseClean(t, "/** @deprecated */ class A {}")
	class := unit.Tree.Child(0)
	if !class.Child(0).Flags.Has(FlagDeprecated) {
		t.Errorf("Flags = %v, want deprecated", class.Child(0).Flags)
	}
}

func TestParseEnum(t *testing.T) {
	unit := parseClean(t, "enum Color { RED, GREEN(1) { }, BLUE; int v; }")
	enum := unit.Tree.Child(0)
	if enum.Kind != KindEnumDecl || enum.Name != "Color" {
		t.Fatalf("got %v %q, want EnumDecl Color", enum.Kind, enum.Name)
	}
	if !enum.Child(0).Flags.Has(FlagEnum) {
		t.Errorf("Flags = %v, want enum", enum.Child(0).Flags)
	}
	members := enum.Tail(5)
	if len(members) != 4 {
		t.Fatalf("got %d members, want 4", len(members))
	}
	constFlags := FlagPublic | FlagStatic | FlagFinal | FlagEnum
	for _, c := range members[:3] {
		if got := c.Child(0).Flags; got != constFlags {
			t.Errorf("%s Flags = %v, want %v", c.Name, got, constFlags)
		}
		if got := c.Child(1).Name; got != "Color" {
			t.Errorf("%s type = %q, want Color", c.Name, got)
		}
		if got := c.Child(2).Kind; got != KindNewExpr {
			t.Errorf("%s init = %v, want NewExpr", c.Name, got)
		}
	}
	green := members[1].Child(2)
	if green.Child(3) == nil || green.Child(3).Kind != KindClassDecl {
		t.Errorf("GREEN body = %v, want ClassDecl", green.Child(3))
	}
	if got := green.Child(4); got == nil || got.Value != int32(1) {
		t.Errorf("GREEN arg = %v, want 1", got)
	}
	if members[3].Name != "v" || members[3].Child(0).Flags.Has(FlagEnum) {
		t.Errorf("last member = %v, want field v", members[3])
	}
}

func TestParseRecord(t *testing.T) {
	unit := parseClean(t, "record Point(int x, int y) implements Shape { Point { } static int z; }")
	rec := unit.Tree.Child(0)
	if rec.Kind != KindRecordDecl || rec.Name != "Point" {
		t.Fatalf("got %v %q, want RecordDecl Point", rec.Kind, rec.Name)
	}
	if !rec.Child(0).Flags.Has(FlagRecord) {
		t.Errorf("Flags = %v, want record", rec.Child(0).Flags)
	}
	members := rec.Tail(5)
	var names []string
	for _, m := range members {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"x", "y", "<init>", "z"}, names); diff != "" {
		t.Fatalf("members mismatch (-want +got):\n%s", diff)
	}
	for _, c := range members[:2] {
		if f := c.Child(0).Flags; !f.Has(FlagRecord) || !f.Has(FlagPrivate) || !f.Has(FlagFinal) {
			t.Errorf("component %s Flags = %v, want private final record", c.Name, f)
		}
	}
	ctor := members[2]
	if !ctor.Child(0).Flags.Has(FlagCompactConstructor) {
		t.Errorf("constructor Flags = %v, want compact", ctor.Child(0).Flags)
	}
	params := ctor.Child(4).Children
	if len(params) != 2 {
		t.Fatalf("compact constructor has %d parameters, want 2", len(params))
	}
	for _, param := range params {
		if f := param.Child(0).Flags; !f.Has(FlagParameter) || !f.Has(FlagGenerated) {
			t.Errorf("parameter %s Flags = %v, want parameter generated", param.Name, f)
		}
	}
}

func TestParseInterface(t *testing.T) {
	unit := parseClean(t, "interface I extends J { void a(); default int b() { return 1; } static void c() {} }")
	iface := unit.Tree.Child(0)
	if iface.Kind != KindInterfaceDecl {
		t.Fatalf("Kind = %v, want %v", iface.Kind, KindInterfaceDecl)
	}
	if !iface.Child(0).Flags.Has(FlagInterface) {
		t.Errorf("Flags = %v, want interface", iface.Child(0).Flags)
	}
	members := iface.Tail(5)
	if len(members) != 3 {
		t.Fatalf("got %d members, want 3", len(members))
	}
	if members[0].Child(6) != nil {
		t.Errorf("a has a body, want none")
	}
	if !members[1].Child(0).Flags.Has(FlagDefault) {
		t.Errorf("b Flags = %v, want default", members[1].Child(0).Flags)
	}
	if !members[2].Child(0).Flags.Has(FlagStatic) {
		t.Errorf("c Flags = %v, want static", members[2].Child(0).Flags)
	}
}

func TestParseAnnotationDecl(t *testing.T) {
	unit := parseClean(t, `@Retention(RUNTIME) @interface Tag { String value() default ""; int[] ids() default {1, 2}; }`)
	decl := unit.Tree.Child(0)
	if decl.Kind != KindAnnotationDecl || decl.Name != "Tag" {
		t.Fatalf("got %v %q, want AnnotationDecl Tag", decl.Kind, decl.Name)
	}
	if got := len(decl.Child(0).Children); got != 1 {
		t.Errorf("got %d annotations, want 1", got)
	}
	members := decl.Tail(5)
	if len(members) != 2 {
		t.Fatalf("got %d members, want 2", len(members))
	}
	for _, m := range members {
		if m.Child(7) == nil {
			t.Errorf("%s has no default value", m.Name)
		}
	}
	if got := members[1].Child(7).Child(0).Kind; got != KindNewArrayExpr {
		t.Errorf("ids default = %v, want NewArrayExpr", got)
	}
}

func TestParseModule(t *testing.T) {
	src := `open module com.example {
  requires transitive java.base;
  exports com.example.api to a, b;
  uses com.example.Service;
  provides com.example.Service with com.example.Impl;
}`
	unit := parseClean(t, src, WithFile("src/module-info.java"))
	mod := unit.Tree.Child(0)
	if mod.Kind != KindModuleDecl {
		t.Fatalf("Kind = %v, want %v", mod.Kind, KindModuleDecl)
	}
	if !mod.Flags.Has(FlagOpen) {
		t.Errorf("Flags = %v, want open", mod.Flags)
	}
	if got := QualifiedName(mod.Child(1)); got != "com.example" {
		t.Errorf("name = %q, want %q", got, "com.example")
	}
	want := []NodeKind{KindRequiresDirective, KindExportsDirective, KindUsesDirective, KindProvidesDirective}
	directives := mod.Tail(2)
	if diff := cmp.Diff(want, childKinds(directives)); diff != "" {
		t.Fatalf("directives mismatch (-want +got):\n%s", diff)
	}
	if !directives[0].Flags.Has(FlagTransitive) {
		t.Errorf("requires Flags = %v, want transitive", directives[0].Flags)
	}
	if got := len(directives[1].Children); got != 3 {
		t.Errorf("exports has %d names, want 3", got)
	}
	if unit.File != "src/module-info.java" {
		t.Errorf("File = %q, want %q", unit.File, "src/module-info.java")
	}
}

func TestParseSealed(t *testing.T) {
	src := `sealed interface S permits A, B {}
non-sealed class A implements S {}
final class B implements S {}`
	unit := parseClean(t, src)
	decls := unit.Tree.Children
	if len(decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(decls))
	}
	if !decls[0].Child(0).Flags.Has(FlagSealed) {
		t.Errorf("S Flags = %v, want sealed", decls[0].Child(0).Flags)
	}
	if permits := decls[0].Child(4); permits == nil || len(permits.Children) != 2 {
		t.Errorf("permits = %v, want A, B", permits)
	}
	if !decls[1].Child(0).Flags.Has(FlagNonSealed) {
		t.Errorf("A Flags = %v, want non-sealed", decls[1].Child(0).Flags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   diag.Key
		pos   int
	}{
		{"missing initializer", "class A { void m() { int x = ; } }", diag.IllegalStartOfExpr, 29},
		{"missing semicolon", "class A { int x }", diag.Expected, 15},
		{"permits without sealed", "class A permits B {}", diag.InvalidPermitsClause, 8},
		{"else without if", "class A { void m() { else {} } }", diag.ElseWithoutIf, 21},
		{"no type declaration", "int x;", diag.Expected4, 0},
		{"class without name", "class { }", diag.Expected, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := diag.NewLog("")
			unit := Parse(tt.input, WithHandler(log))
			errs := log.Errors()
			if len(errs) == 0 {
				t.Fatalf("no errors, want %s", tt.key)
			}
			if errs[0].Key != tt.key || errs[0].Pos != tt.pos {
				t.Errorf("first error = %s at %d, want %s at %d", errs[0].Key, errs[0].Pos, tt.key, tt.pos)
			}
			if unit.Tree == nil || unit.Tree.Kind != KindCompilationUnit {
				t.Errorf("Tree = %v, want a compilation unit", unit.Tree)
			}
		})
	}
}

func TestParseRecovery(t *testing.T) {
	src := "class A { void m() { int x = ; } void n() {} }"
	unit := Parse(src)
	if !HasErrors(unit.Tree) {
		t.Errorf("HasErrors() = false, want true")
	}
	var names []string
	for _, m := range findAll(unit.Tree, KindMethodDecl) {
		names = append(names, m.Name)
	}
	if diff := cmp.Diff([]string{"m", "n"}, names); diff != "" {
		t.Errorf("methods mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMalformedInput(t *testing.T) {
	inputs := []string{
		"class {",
		"class A { void m( }",
		"}}}",
		"class A { int[] x = new int[]; }",
		"@",
		"import ;",
		"class A { void m() { switch (x) { foo } } }",
		"enum E { A B }",
		"class A extends {}",
		"record R {}",
		"class A { void m() { for (;;) } }",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			log := diag.NewLog("")
			unit := Parse(input, WithHandler(log), WithEndPositions())
			if unit.Tree == nil {
				t.Fatal("Tree = nil")
			}
			if !log.HasErrors() {
				t.Errorf("no errors reported")
			}
		})
	}
}

func TestParseSourceLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		level source.Level
		key   diag.Key
	}{
		{"lambda", "class A { Object f = x -> x; }", source.JDK7, diag.FeatureNotSupported},
		{"switch expression", "class A { int f = switch (x) { default -> 1; }; }", source.JDK11, diag.FeatureNotSupported},
		{"record", "record R(int x) {}", source.JDK8, diag.FeatureNotSupported},
		{"pattern switch", "class A { void m(Object o) { switch (o) { case String s -> f(); default -> g(); } } }", source.JDK17, diag.PreviewFeatureDisabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := diag.NewLog("")
			Parse(tt.input, WithHandler(log), WithLevel(tt.level))
			found := false
			for _, d := range log.Diagnostics() {
				if d.Key == tt.key && d.Flags.Has(diag.SourceLevel) {
					found = true
				}
			}
			if !found {
				t.Errorf("no %s diagnostic in %v", tt.key, log.Diagnostics())
			}
		})
	}
}

func TestParsePreviewEnabled(t *testing.T) {
	log := diag.NewLog("")
	src := "class A { void m(Object o) { switch (o) { case String s -> f(); default -> g(); } } }"
	Parse(src, WithHandler(log), WithPreview(true))
	if log.HasErrors() {
		t.Fatalf("unexpected errors: %v", log.Errors())
	}
	warnings := log.Warnings()
	if len(warnings) == 0 || warnings[0].Key != diag.PreviewFeatureUse {
		t.Errorf("warnings = %v, want a %s warning", warnings, diag.PreviewFeatureUse)
	}
}
