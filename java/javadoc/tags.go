package javadoc

import (
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

type tagKind int

const (
	tagBlock tagKind = iota
	tagInline
	tagEither
)

// tagParser parses the content of one tag, starting after its name.
// Inline tag parsers consume the closing brace.
type tagParser struct {
	kind             tagKind
	retainWhitespace bool
	parse            func(p *docParser, pos int, kind tagKind) (Node, *parseError)
}

var tagParsers map[string]tagParser

func init() {
	tagParsers = map[string]tagParser{
		"author": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			return Author{At: At{pos}, Name: p.blockContent()}, nil
		}},
		"code": {kind: tagInline, retainWhitespace: true, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			text, err := p.inlineText(removeFirstSpace)
			if err != nil {
				return nil, err
			}
			p.nextChar()
			return Code{At: At{pos}, Content: text}, nil
		}},
		"deprecated": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			return Deprecated{At: At{pos}, Description: p.blockContent()}, nil
		}},
		"docRoot": {kind: tagInline, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			if err := p.emptyTag(); err != nil {
				return nil, err
			}
			return DocRoot{At{pos}}, nil
		}},
		"exception": {kind: tagBlock, parse: parseThrows("exception")},
		"hidden": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			return Hidden{At: At{pos}, Description: p.blockContent()}, nil
		}},
		"index": {kind: tagInline, parse: parseIndex},
		"inheritDoc": {kind: tagInline, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			if err := p.emptyTag(); err != nil {
				return nil, err
			}
			return InheritDoc{At{pos}}, nil
		}},
		"link":      {kind: tagInline, parse: parseLink(false)},
		"linkplain": {kind: tagInline, parse: parseLink(true)},
		"literal": {kind: tagInline, retainWhitespace: true, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			text, err := p.inlineText(removeFirstSpace)
			if err != nil {
				return nil, err
			}
			p.nextChar()
			return Literal{At: At{pos}, Content: text}, nil
		}},
		"param": {kind: tagBlock, parse: parseParam},
		"provides": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			p.skipWhitespace()
			ref, err := p.reference(true)
			if err != nil {
				return nil, err
			}
			return Provides{At: At{pos}, ServiceType: ref, Description: p.blockContent()}, nil
		}},
		"return": {kind: tagEither, parse: func(p *docParser, pos int, kind tagKind) (Node, *parseError) {
			if kind == tagInline {
				return Return{At: At{pos}, Description: p.inlineContent(), Inline: true}, nil
			}
			return Return{At: At{pos}, Description: p.blockContent()}, nil
		}},
		"see": {kind: tagBlock, parse: parseSee},
		"serial": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			p.skipWhitespace()
			return Serial{At: At{pos}, Description: p.blockContent()}, nil
		}},
		"serialData": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			return SerialData{At: At{pos}, Description: p.blockContent()}, nil
		}},
		"serialField": {kind: tagBlock, parse: parseSerialField},
		"since": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			p.skipWhitespace()
			return Since{At: At{pos}, Version: p.blockContent()}, nil
		}},
		"snippet": {kind: tagInline, parse: parseSnippet},
		"summary": {kind: tagInline, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			return Summary{At: At{pos}, Content: p.inlineContent()}, nil
		}},
		"systemProperty": {kind: tagInline, parse: parseSystemProperty},
		"throws":         {kind: tagBlock, parse: parseThrows("throws")},
		"uses": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			p.skipWhitespace()
			ref, err := p.reference(true)
			if err != nil {
				return nil, err
			}
			return Uses{At: At{pos}, ServiceType: ref, Description: p.blockContent()}, nil
		}},
		"value": {kind: tagInline, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			ref, err := p.reference(true)
			if err != nil {
				return nil, err
			}
			p.skipWhitespace()
			if p.ch != '}' {
				p.nextChar()
				return nil, errAt(diag.DocUnexpectedContent)
			}
			p.nextChar()
			return Value{At: At{pos}, Ref: ref}, nil
		}},
		"version": {kind: tagBlock, parse: func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
			p.skipWhitespace()
			return Version{At: At{pos}, Version: p.blockContent()}, nil
		}},
	}
}

// emptyTag consumes the closing brace of a tag that takes no content.
func (p *docParser) emptyTag() *parseError {
	if p.ch == '}' {
		p.nextChar()
		return nil
	}
	if _, err := p.inlineText(removeAll); err != nil {
		return err
	}
	p.nextChar()
	return errAt(diag.DocUnexpectedContent)
}

func parseThrows(name string) func(*docParser, int, tagKind) (Node, *parseError) {
	return func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
		p.skipWhitespace()
		ref, err := p.reference(false)
		if err != nil {
			return nil, err
		}
		return Throws{At: At{pos}, TagName: name, Exception: ref, Description: p.blockContent()}, nil
	}
}

func parseLink(plain bool) func(*docParser, int, tagKind) (Node, *parseError) {
	return func(p *docParser, pos int, _ tagKind) (Node, *parseError) {
		ref, err := p.reference(true)
		if err != nil {
			return nil, err
		}
		return Link{At: At{pos}, Ref: ref, Label: p.inlineContent(), Plain: plain}, nil
	}
}

func parseIndex(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	p.skipWhitespace()
	if p.ch == '}' {
		return nil, errAt(diag.DocNoContent)
	}
	var term Text
	var ok bool
	if p.ch == '"' {
		term, ok = p.quotedString()
	} else {
		term, ok = p.inlineWord()
	}
	if !ok {
		return nil, errAt(diag.DocNoContent)
	}
	p.skipWhitespace()
	var desc []Node
	if p.ch != '}' {
		desc = p.inlineContent()
	} else {
		p.nextChar()
	}
	return Index{At: At{pos}, Term: term.Content, Description: desc}, nil
}

func parseParam(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	p.skipWhitespace()
	typeParam := false
	if p.ch == '<' {
		typeParam = true
		p.nextChar()
	}
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	if typeParam {
		if p.ch != '>' {
			return nil, errAt(diag.DocGTExpected)
		}
		p.nextChar()
	}
	p.skipWhitespace()
	return Param{At: At{pos}, Name: name, IsTypeParam: typeParam, Description: p.blockContent()}, nil
}

// parseSee accepts a quoted string, HTML content, or a reference followed
// by a label.
func parseSee(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	p.skipWhitespace()
	switch {
	case p.ch == '"':
		s, ok := p.quotedString()
		if !ok {
			return nil, errAt(diag.DocUnterminatedString)
		}
		p.skipWhitespace()
		if p.ch == '@' || !p.more() {
			return See{At: At{pos}, Reference: []Node{s}}, nil
		}
	case p.ch == '<':
		return See{At: At{pos}, Reference: p.blockContent()}, nil
	case p.ch == '@' && p.newline, !p.more():
		return nil, errAt(diag.DocNoContent)
	case parser.IsIdentifierStart(p.ch) || p.ch == '#':
		ref, err := p.reference(true)
		if err != nil {
			return nil, err
		}
		return See{At: At{pos}, Reference: append([]Node{*ref}, p.blockContent()...)}, nil
	}
	return nil, errAt(diag.DocUnexpectedContent)
}

func parseSerialField(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	name, err := p.identifier()
	if err != nil {
		return nil, err
	}
	p.skipWhitespace()
	typ, err := p.reference(false)
	if err != nil {
		return nil, err
	}
	var desc []Node
	if isWhitespace(p.ch) {
		p.skipWhitespace()
		desc = p.blockContent()
	}
	return SerialField{At: At{pos}, Name: name, Type: typ, Description: desc}, nil
}

func parseSystemProperty(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	p.skipWhitespace()
	if p.ch == '}' || !parser.IsIdentifierStart(p.ch) {
		return nil, errAt(diag.DocNoContent)
	}
	name := p.readSystemPropertyName()
	p.skipWhitespace()
	if p.ch != '}' {
		p.nextChar()
		return nil, errAt(diag.DocUnexpectedContent)
	}
	p.nextChar()
	return SystemProperty{At: At{pos}, Name: name}, nil
}

// parseSnippet reads name=value attributes, then an optional ':' after
// which the body starts on the next line.
func parseSnippet(p *docParser, pos int, _ tagKind) (Node, *parseError) {
	var attrs []Attribute
	for p.more() && parser.IsIdentifierStart(p.ch) {
		apos := p.bp
		attr := Attribute{At: At{apos}, Name: p.readAttributeName()}
		p.skipWhitespace()
		if p.ch == '=' {
			p.nextChar()
			p.skipWhitespace()
			if p.ch == '"' || p.ch == '\'' {
				quote := p.ch
				attr.Kind = ValueDouble
				if quote == '\'' {
					attr.Kind = ValueSingle
				}
				p.nextChar()
				start := p.bp
				for p.more() && p.ch != quote {
					p.nextChar()
				}
				if !p.more() {
					return nil, &parseError{pos: apos, key: diag.DocUnterminatedString}
				}
				attr.Value = p.buf[start:p.bp]
				p.nextChar()
			} else {
				attr.Kind = ValueUnquoted
				start := p.bp
				for p.more() && !isWhitespace(p.ch) && p.ch != ':' && p.ch != '}' {
					p.nextChar()
				}
				attr.Value = p.buf[start:p.bp]
			}
		}
		attrs = append(attrs, attr)
		p.skipWhitespace()
	}

	var body string
	if p.ch == ':' {
		p.nextChar()
		for p.more() && p.ch != '\n' && p.ch != '\r' && p.ch != '}' {
			p.nextChar()
		}
		if p.ch == '\r' {
			p.nextChar()
		}
		if p.ch == '\n' {
			p.nextChar()
		}
		text, err := p.inlineText(retainAll)
		if err != nil {
			return nil, err
		}
		body = text
	}
	if p.ch != '}' {
		if _, err := p.inlineText(removeAll); err != nil {
			return nil, err
		}
		p.nextChar()
		return nil, errAt(diag.DocUnexpectedContent)
	}
	p.nextChar()
	return Snippet{At: At{pos}, Attributes: attrs, Body: body}, nil
}
