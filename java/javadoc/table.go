package javadoc

import (
	"sync"

	"github.com/dhamidi/jparse/java/parser"
)

// Table gives access to the parsed doc comments of a compilation unit.
// Comments are parsed on first access and cached. A Table is safe for
// concurrent use.
type Table struct {
	comments parser.DocComments
	opts     []Option

	mu    sync.Mutex
	trees map[*parser.Node]*DocComment
}

func NewTable(comments parser.DocComments, opts ...Option) *Table {
	return &Table{
		comments: comments,
		opts:     opts,
		trees:    make(map[*parser.Node]*DocComment),
	}
}

// HasComment reports whether decl has a doc comment.
func (t *Table) HasComment(decl *parser.Node) bool {
	_, ok := t.comments[decl]
	return ok
}

// Comment returns the raw doc comment of decl, or nil.
func (t *Table) Comment(decl *parser.Node) *parser.Comment {
	return t.comments[decl]
}

// Get returns the parsed doc comment of decl, or nil when it has none.
func (t *Table) Get(decl *parser.Node) *DocComment {
	c, ok := t.comments[decl]
	if !ok || c == nil {
		return nil
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if dc, ok := t.trees[decl]; ok {
		return dc
	}
	dc := ParseComment(c, t.opts...)
	t.trees[decl] = dc
	return dc
}

// Len returns the number of declarations with a doc comment.
func (t *Table) Len() int {
	return len(t.comments)
}

// Parsed returns the number of comments parsed so far.
func (t *Table) Parsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.trees)
}
