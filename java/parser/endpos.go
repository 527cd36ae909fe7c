package parser

import "github.com/dhamidi/jparse/java/diag"

// EndPosTable records where nodes end. The parser writes to it while
// building the tree; consumers read it through EndPos.
type EndPosTable interface {
	// StoreEnd records end as the end of n. The stored value is never
	// lower than the table's error end position.
	StoreEnd(n *Node, end int)
	// EndPos returns the recorded end of n, or diag.NoPos.
	EndPos(n *Node) int
	// ReplaceTree moves the entry of old to replacement and returns it.
	ReplaceTree(old, replacement *Node) int
	ErrorEndPos() int
	// SetErrorEndPos raises the error end position to pos. It never
	// lowers it.
	SetErrorEndPos(pos int)
}

// EmptyEndPosTable tracks only the error end position.
type EmptyEndPosTable struct {
	errorEndPos int
}

func NewEmptyEndPosTable() *EmptyEndPosTable {
	return &EmptyEndPosTable{errorEndPos: diag.NoPos}
}

func (t *EmptyEndPosTable) StoreEnd(n *Node, end int) {}

func (t *EmptyEndPosTable) EndPos(n *Node) int {
	return diag.NoPos
}

func (t *EmptyEndPosTable) ReplaceTree(old, replacement *Node) int {
	return diag.NoPos
}

func (t *EmptyEndPosTable) ErrorEndPos() int {
	return t.errorEndPos
}

func (t *EmptyEndPosTable) SetErrorEndPos(pos int) {
	if pos > t.errorEndPos {
		t.errorEndPos = pos
	}
}

// SimpleEndPosTable keeps the end position of every node in a map keyed
// by node identity.
type SimpleEndPosTable struct {
	EmptyEndPosTable
	ends map[*Node]int
}

func NewSimpleEndPosTable() *SimpleEndPosTable {
	return &SimpleEndPosTable{
		EmptyEndPosTable: EmptyEndPosTable{errorEndPos: diag.NoPos},
		ends:             make(map[*Node]int),
	}
}

func (t *SimpleEndPosTable) StoreEnd(n *Node, end int) {
	if n == nil {
		return
	}
	t.ends[n] = max(t.errorEndPos, end)
}

func (t *SimpleEndPosTable) EndPos(n *Node) int {
	if end, ok := t.ends[n]; ok {
		return end
	}
	return diag.NoPos
}

func (t *SimpleEndPosTable) ReplaceTree(old, replacement *Node) int {
	end, ok := t.ends[old]
	if !ok {
		return diag.NoPos
	}
	delete(t.ends, old)
	t.ends[replacement] = end
	return end
}

// Len returns the number of recorded nodes.
func (t *SimpleEndPosTable) Len() int {
	return len(t.ends)
}

// EndPos returns the end of n: the recorded entry when there is one,
// otherwise the largest end among its children, otherwise n.Pos.
func EndPos(table EndPosTable, n *Node) int {
	if n == nil {
		return diag.NoPos
	}
	if table != nil {
		if end := table.EndPos(n); end != diag.NoPos {
			return end
		}
	}
	end := n.Pos
	for _, child := range n.Children {
		if child != nil {
			end = max(end, EndPos(table, child))
		}
	}
	return end
}

// StartPos returns the offset of the first character covered by n. For
// operators and selections Pos is the operator position, so the start is
// taken from the leftmost child.
func StartPos(n *Node) int {
	if n == nil {
		return diag.NoPos
	}
	start := n.Pos
	for _, child := range n.Children {
		if child == nil {
			continue
		}
		if s := StartPos(child); s != diag.NoPos && (start == diag.NoPos || s < start) {
			start = s
		}
	}
	return start
}

// Span returns the source range [start, end) covered by n.
func Span(table EndPosTable, n *Node) (start, end int) {
	return StartPos(n), EndPos(table, n)
}
