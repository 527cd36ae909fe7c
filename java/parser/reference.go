package parser

import (
	"fmt"
	"strings"

	"github.com/dhamidi/jparse/java/diag"
)

// Reference is a parsed doc-comment reference such as
// java.base/java.util.List#add(int, Object). Absent parts are nil; Params
// is nil when the reference has no parameter list. Node positions are
// offsets into the signature.
type Reference struct {
	Module    *Node
	Qualifier *Node
	Member    *Node
	Params    []*Node
}

// ReferenceError reports a signature that is not a valid reference.
type ReferenceError struct {
	// Pos is the offset into the signature, or diag.NoPos.
	Pos int
	Key diag.Key
	// Diagnostics are the syntax errors found in the parts of the
	// signature.
	Diagnostics []diag.Diagnostic
}

func (e *ReferenceError) Error() string {
	msg := diag.DocBadReference.Format()
	if e.Key != diag.DocBadReference {
		msg += ": " + e.Key.Format()
	}
	if len(e.Diagnostics) > 0 {
		msg += ": " + e.Diagnostics[0].Message()
	}
	if e.Pos != diag.NoPos {
		return fmt.Sprintf("%d: %s", e.Pos, msg)
	}
	return msg
}

// ParseReference parses sig with the grammar
//
//	[ Module "/" ] [ Type ] [ "#" Member [ "(" [ Type [Ident] { "," Type [Ident] } ] ")" ] ]
//
// Each part is parsed on its own. Syntax errors in a part are never
// reported to the handler in opts; they are returned as a
// *ReferenceError instead.
func ParseReference(sig string, opts ...Option) (*Reference, error) {
	deferred := &diag.Deferred{}
	defer deferred.Discard()
	rp := &referenceParser{opts: opts, deferred: deferred}

	ref := &Reference{}
	var err error
	slash := strings.Index(sig, "/")
	hash := indexFrom(sig, "#", slash+1)
	lparen := indexFrom(sig, "(", max(slash, hash)+1)
	if slash > -1 {
		if ref.Module, err = rp.module(sig[:slash], 0); err != nil {
			return nil, err
		}
	}
	switch {
	case slash > 0 && len(sig) == slash+1:
		// module only
	case hash == -1:
		if lparen == -1 {
			ref.Qualifier, err = rp.typ(sig[slash+1:], slash+1)
		} else {
			ref.Member, err = rp.member(sig[slash+1:lparen], slash+1)
		}
	default:
		if hash != slash+1 {
			ref.Qualifier, err = rp.typ(sig[slash+1:hash], slash+1)
		}
		if err == nil {
			end := len(sig)
			if lparen != -1 {
				end = lparen
			}
			ref.Member, err = rp.member(sig[hash+1:end], hash+1)
		}
	}
	if err != nil {
		return nil, err
	}

	if lparen >= 0 {
		rparen := indexFrom(sig, ")", lparen)
		if rparen != len(sig)-1 {
			return nil, &ReferenceError{Pos: max(rparen, lparen), Key: diag.DocRefBadParens}
		}
		ref.Params, err = rp.params(sig[lparen+1:rparen], lparen+1)
		if err != nil {
			return nil, err
		}
		if ref.Params == nil {
			ref.Params = []*Node{}
		}
	}

	if ds := deferred.Diagnostics(); len(ds) > 0 {
		return nil, &ReferenceError{Pos: ds[0].Pos, Key: diag.DocRefSyntaxError, Diagnostics: ds}
	}
	return ref, nil
}

func indexFrom(s, sub string, from int) int {
	if from > len(s) {
		return -1
	}
	i := strings.Index(s[from:], sub)
	if i < 0 {
		return -1
	}
	return i + from
}

type referenceParser struct {
	opts     []Option
	deferred *diag.Deferred
}

// parser returns a parser over the part s of a signature that starts at
// offset. Diagnostics are buffered with positions relative to the
// signature.
func (rp *referenceParser) parser(s string, offset int) *Parser {
	h := diag.HandlerFunc(func(d diag.Diagnostic) {
		if d.Pos != diag.NoPos {
			d.Pos += offset
		}
		rp.deferred.Report(d)
	})
	return NewParser(s, append(append([]Option(nil), rp.opts...), WithHandler(h))...)
}

func (rp *referenceParser) done(p *Parser, offset int) error {
	if p.token.Kind != TokenEOF {
		return &ReferenceError{Pos: offset + p.token.Pos, Key: diag.DocRefUnexpectedInput}
	}
	return nil
}

func (rp *referenceParser) module(s string, offset int) (*Node, error) {
	p := rp.parser(s, offset)
	expr := p.qualident(false)
	if err := rp.done(p, offset); err != nil {
		return nil, err
	}
	return shift(expr, offset), nil
}

func (rp *referenceParser) typ(s string, offset int) (*Node, error) {
	p := rp.parser(s, offset)
	t := p.ParseType()
	if err := rp.done(p, offset); err != nil {
		return nil, err
	}
	return shift(t, offset), nil
}

func (rp *referenceParser) member(s string, offset int) (*Node, error) {
	p := rp.parser(s, offset)
	pos := p.token.Pos
	name := p.ident()
	if err := rp.done(p, offset); err != nil {
		return nil, err
	}
	return shift(p.identNode(pos, name), offset), nil
}

// params parses a parameter type list. A name may follow each type.
func (rp *referenceParser) params(s string, offset int) ([]*Node, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	p := rp.parser(strings.ReplaceAll(s, "...", "[]"), offset)
	var types []*Node
	for {
		types = append(types, p.ParseType())
		if p.token.Kind == TokenIdent {
			p.nextToken()
		}
		if p.token.Kind != TokenComma {
			break
		}
		p.nextToken()
	}
	if err := rp.done(p, offset); err != nil {
		return nil, err
	}
	for _, t := range types {
		if anno := findTypeAnnotation(t); anno != nil {
			return nil, &ReferenceError{Pos: offset + StartPos(anno), Key: diag.DocRefAnnotationsInParam}
		}
		shift(t, offset)
	}
	return types, nil
}

func findTypeAnnotation(t *Node) *Node {
	var found *Node
	Inspect(t, func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == KindAnnotatedType || n.Kind == KindTypeAnnotation {
			found = n
			return false
		}
		return true
	})
	return found
}

// shift moves the positions of every node in t by offset.
func shift(t *Node, offset int) *Node {
	if offset == 0 {
		return t
	}
	Inspect(t, func(n *Node) bool {
		if n.Pos != diag.NoPos {
			n.Pos += offset
		}
		return true
	})
	return t
}
