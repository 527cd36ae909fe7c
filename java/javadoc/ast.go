// Package javadoc parses the text of Java documentation comments into a
// tree of HTML, inline tags and block tags.
package javadoc

import (
	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
)

// Node is the interface implemented by all doc-tree nodes. Pos is a byte
// offset into the comment body; parser.Comment.SourcePos maps it back to
// the source file.
type Node interface {
	Pos() int
	node()
}

// At holds the position of a node.
type At struct {
	Offset int
}

func (a At) Pos() int { return a.Offset }

// DocComment is a parsed documentation comment. Body holds the full main
// description and FirstSentence its leading summary. Preamble and
// Postamble are only set for standalone HTML files.
type DocComment struct {
	At
	FirstSentence []Node
	Body          []Node
	BlockTags     []Node
	Preamble      []Node
	Postamble     []Node
	// Errors lists the problems found while parsing, in source order.
	// Each one also appears in the tree as an Erroneous node.
	Errors []diag.Diagnostic
}

func (DocComment) node() {}

// Tag returns the first block tag named name, or nil.
func (d *DocComment) Tag(name string) Node {
	for _, t := range d.BlockTags {
		if TagName(t) == name {
			return t
		}
	}
	return nil
}

// Text is a run of plain text.
type Text struct {
	At
	Content string
}

func (Text) node() {}

// Entity is an HTML character reference such as &lt; or &#160;.
type Entity struct {
	At
	Name string // without '&' and ';'
}

func (Entity) node() {}

// ValueKind describes how an HTML attribute value was written.
type ValueKind int

const (
	ValueEmpty ValueKind = iota
	ValueUnquoted
	ValueSingle
	ValueDouble
)

// Attribute is an attribute of an HTML start tag.
type Attribute struct {
	At
	Name  string
	Kind  ValueKind
	Value string
}

// StartElement is an HTML start tag.
type StartElement struct {
	At
	Name       string
	Attributes []Attribute
	SelfClose  bool
}

func (StartElement) node() {}

// EndElement is an HTML end tag.
type EndElement struct {
	At
	Name string
}

func (EndElement) node() {}

// Comment is an HTML comment, including its delimiters.
type Comment struct {
	At
	Body string
}

func (Comment) node() {}

// DocType is a <!doctype ...> declaration.
type DocType struct {
	At
	Text string
}

func (DocType) node() {}

// Erroneous is content that could not be parsed.
type Erroneous struct {
	At
	Content string
	Key     diag.Key
}

func (Erroneous) node() {}

// Reference is the signature of a program element, as written in @see,
// @throws or {@link}. Ref is the parsed form.
type Reference struct {
	At
	Signature string
	Ref       *parser.Reference
}

func (Reference) node() {}

// Code is an {@code ...} inline tag.
type Code struct {
	At
	Content string
}

func (Code) node() {}

// Literal is an {@literal ...} inline tag.
type Literal struct {
	At
	Content string
}

func (Literal) node() {}

// Link is an {@link ...} or {@linkplain ...} inline tag.
type Link struct {
	At
	Ref   *Reference
	Label []Node
	Plain bool
}

func (Link) node() {}

// Value is an {@value} inline tag. Ref is nil when no field is named.
type Value struct {
	At
	Ref *Reference
}

func (Value) node() {}

type DocRoot struct{ At }

func (DocRoot) node() {}

type InheritDoc struct{ At }

func (InheritDoc) node() {}

// Index is an {@index term description} inline tag.
type Index struct {
	At
	Term        string
	Description []Node
}

func (Index) node() {}

// Summary is an {@summary ...} inline tag.
type Summary struct {
	At
	Content []Node
}

func (Summary) node() {}

// Return is the {@return ...} inline tag or the @return block tag.
type Return struct {
	At
	Description []Node
	Inline      bool
}

func (Return) node() {}

// SystemProperty is an {@systemProperty name} inline tag.
type SystemProperty struct {
	At
	Name string
}

func (SystemProperty) node() {}

// Snippet is an {@snippet attributes : body} inline tag.
type Snippet struct {
	At
	Attributes []Attribute
	Body       string
}

func (Snippet) node() {}

// UnknownInlineTag is an inline tag with a name that is not recognized.
type UnknownInlineTag struct {
	At
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Param is a @param tag. Name is bare for type parameters; IsTypeParam
// records the <T> form.
type Param struct {
	At
	Name        string
	IsTypeParam bool
	Description []Node
}

func (Param) node() {}

// Throws is a @throws or @exception tag.
type Throws struct {
	At
	TagName     string
	Exception   *Reference
	Description []Node
}

func (Throws) node() {}

// See is a @see tag. Reference holds a quoted string, HTML content, or a
// Reference followed by its label.
type See struct {
	At
	Reference []Node
}

func (See) node() {}

type Since struct {
	At
	Version []Node
}

func (Since) node() {}

type Deprecated struct {
	At
	Description []Node
}

func (Deprecated) node() {}

type Author struct {
	At
	Name []Node
}

func (Author) node() {}

type Version struct {
	At
	Version []Node
}

func (Version) node() {}

type Serial struct {
	At
	Description []Node
}

func (Serial) node() {}

type SerialData struct {
	At
	Description []Node
}

func (SerialData) node() {}

// SerialField is a @serialField name type description tag.
type SerialField struct {
	At
	Name        string
	Type        *Reference
	Description []Node
}

func (SerialField) node() {}

type Hidden struct {
	At
	Description []Node
}

func (Hidden) node() {}

// Provides is a @provides tag of a module declaration.
type Provides struct {
	At
	ServiceType *Reference
	Description []Node
}

func (Provides) node() {}

// Uses is a @uses tag of a module declaration.
type Uses struct {
	At
	ServiceType *Reference
	Description []Node
}

func (Uses) node() {}

// UnknownBlockTag is a block tag with a name that is not recognized.
type UnknownBlockTag struct {
	At
	Name    string
	Content []Node
}

func (UnknownBlockTag) node() {}

// TagName returns the name of the tag n without '@', or "" when n is not
// a tag.
func TagName(n Node) string {
	switch n := n.(type) {
	case Author:
		return "author"
	case Code:
		return "code"
	case Deprecated:
		return "deprecated"
	case DocRoot:
		return "docRoot"
	case Hidden:
		return "hidden"
	case Index:
		return "index"
	case InheritDoc:
		return "inheritDoc"
	case Link:
		if n.Plain {
			return "linkplain"
		}
		return "link"
	case Literal:
		return "literal"
	case Param:
		return "param"
	case Provides:
		return "provides"
	case Return:
		return "return"
	case See:
		return "see"
	case Serial:
		return "serial"
	case SerialData:
		return "serialData"
	case SerialField:
		return "serialField"
	case Since:
		return "since"
	case Snippet:
		return "snippet"
	case Summary:
		return "summary"
	case SystemProperty:
		return "systemProperty"
	case Throws:
		return n.TagName
	case Uses:
		return "uses"
	case Value:
		return "value"
	case Version:
		return "version"
	case UnknownBlockTag:
		return n.Name
	case UnknownInlineTag:
		return n.Name
	}
	return ""
}
