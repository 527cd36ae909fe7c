package parser

import (
	"testing"

	"github.com/dhamidi/jparse/java/diag"
)

func TestEndPositions(t *testing.T) {
	unit := ParseExpression("a + b", WithEndPositions())
	if start, end := Span(unit.EndPos, unit.Tree); start != 0 || end != 5 {
		t.Errorf("Span(a + b) = (%d, %d), want (0, 5)", start, end)
	}

	unit = Parse("class A { int x; }", WithEndPositions())
	class := find(unit.Tree, KindClassDecl)
	if got := EndPos(unit.EndPos, class); got != 18 {
		t.Errorf("EndPos(class) = %d, want 18", got)
	}
	field := find(unit.Tree, KindVarDecl)
	if start, end := Span(unit.EndPos, field); start != 10 || end != 16 {
		t.Errorf("Span(field) = (%d, %d), want (10, 16)", start, end)
	}
}

func TestEndPosWithoutTable(t *testing.T) {
	unit := ParseExpression("a + b")
	if got := unit.EndPos.EndPos(unit.Tree); got != diag.NoPos {
		t.Errorf("EndPos() without end positions = %d, want NoPos", got)
	}
	// The fallback walks the children.
	if got := EndPos(unit.EndPos, unit.Tree); got != 4 {
		t.Errorf("EndPos(a + b) fallback = %d, want 4", got)
	}
}

func TestSimpleEndPosTable(t *testing.T) {
	table := NewSimpleEndPosTable()
	old := &Node{Kind: KindIdentifier, Pos: 3}
	table.StoreEnd(old, 7)
	if got := table.EndPos(old); got != 7 {
		t.Errorf("EndPos() = %d, want 7", got)
	}

	replacement := &Node{Kind: KindParenExpr, Pos: 2}
	if got := table.ReplaceTree(old, replacement); got != 7 {
		t.Errorf("ReplaceTree() = %d, want 7", got)
	}
	if got := table.EndPos(old); got != diag.NoPos {
		t.Errorf("EndPos(old) after ReplaceTree = %d, want NoPos", got)
	}
	if got := table.EndPos(replacement); got != 7 {
		t.Errorf("EndPos(replacement) = %d, want 7", got)
	}

	table.SetErrorEndPos(10)
	table.SetErrorEndPos(4)
	if got := table.ErrorEndPos(); got != 10 {
		t.Errorf("ErrorEndPos() = %d, want 10", got)
	}
	n := &Node{Kind: KindIdentifier, Pos: 0}
	table.StoreEnd(n, 5)
	if got := table.EndPos(n); got != 10 {
		t.Errorf("EndPos() below error end = %d, want 10", got)
	}
	if got := table.Len(); got != 2 {
		t.Errorf("Len() = %d, want 2", got)
	}
}

func TestStartPos(t *testing.T) {
	unit := ParseExpression("foo.bar(1)")
	call := unit.Tree
	if call.Kind != KindCallExpr {
		t.Fatalf("Kind = %v, want %v", call.Kind, KindCallExpr)
	}
	if got := StartPos(call); got != 0 {
		t.Errorf("StartPos(call) = %d, want 0", got)
	}
	if got := StartPos(nil); got != diag.NoPos {
		t.Errorf("StartPos(nil) = %d, want NoPos", got)
	}
}
