package javadoc

import (
	"strings"

	"github.com/dhamidi/jparse/java/parser"
)

// Format renders a doc comment as Markdown: the main description followed
// by one section per kind of block tag.
func Format(doc *DocComment) string {
	if doc == nil {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(normalizeWhitespace(formatNodes(doc.Body)))

	for _, section := range blockSections(doc.BlockTags) {
		if sb.Len() > 0 {
			sb.WriteString("\n\n")
		}
		sb.WriteString(section)
	}

	return strings.TrimSpace(sb.String())
}

// FormatPlainText renders the main description without markup.
func FormatPlainText(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	return strings.TrimSpace(normalizeWhitespace(formatNodesPlain(doc.Body)))
}

// FormatSummary renders the first sentence without markup.
func FormatSummary(doc *DocComment) string {
	if doc == nil {
		return ""
	}
	return strings.Join(strings.Fields(formatNodesPlain(doc.FirstSentence)), " ")
}

func formatNodes(nodes []Node) string {
	var sb strings.Builder
	for i, node := range nodes {
		// <pre>{@code ...}</pre> becomes a single fenced block
		if start, ok := node.(StartElement); ok && strings.EqualFold(start.Name, "pre") && hasMultilineCode(nodes, i, 1) {
			continue
		}
		if end, ok := node.(EndElement); ok && strings.EqualFold(end.Name, "pre") && hasMultilineCode(nodes, i, -1) {
			continue
		}
		sb.WriteString(formatNode(node))
	}
	return sb.String()
}

// hasMultilineCode looks from nodes[idx] in direction dir, skipping blank
// text, for an {@code} tag that spans lines.
func hasMultilineCode(nodes []Node, idx, dir int) bool {
	for i := idx + dir; i >= 0 && i < len(nodes); i += dir {
		switch n := nodes[i].(type) {
		case Text:
			if strings.TrimSpace(n.Content) == "" {
				continue
			}
			return false
		case Code:
			return strings.Contains(n.Content, "\n")
		default:
			return false
		}
	}
	return false
}

func formatNodesPlain(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(formatNodePlain(node))
	}
	return sb.String()
}

func formatNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		content := strings.TrimSpace(n.Content)
		if strings.Contains(content, "\n") {
			return "\n```java\n" + content + "\n```\n"
		}
		return "`" + content + "`"
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			return formatNodes(n.Label)
		}
		if n.Plain {
			return formatReference(n.Ref)
		}
		return "`" + formatReference(n.Ref) + "`"
	case Value:
		if n.Ref == nil {
			return ""
		}
		return "`" + formatReference(n.Ref) + "`"
	case InheritDoc:
		return "[inherited documentation]"
	case Index:
		return n.Term
	case Summary:
		return formatNodes(n.Content)
	case Return:
		if n.Inline {
			return "Returns " + formatNodes(n.Description) + "."
		}
		return ""
	case SystemProperty:
		return "`" + n.Name + "`"
	case Snippet:
		return "\n```java\n" + strings.TrimRight(n.Body, " \t\n") + "\n```\n"
	case UnknownInlineTag:
		return n.Content
	case StartElement:
		return formatStartElement(n)
	case EndElement:
		return formatEndElement(n)
	case Entity:
		return decodeEntity(n.Name)
	case Erroneous:
		return n.Content
	}
	return ""
}

func formatNodePlain(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		return n.Content
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			return formatNodesPlain(n.Label)
		}
		return formatReference(n.Ref)
	case Value:
		return formatReference(n.Ref)
	case Index:
		return n.Term
	case Summary:
		return formatNodesPlain(n.Content)
	case Return:
		if n.Inline {
			return "Returns " + formatNodesPlain(n.Description) + "."
		}
	case SystemProperty:
		return n.Name
	case Snippet:
		return n.Body
	case UnknownInlineTag:
		return n.Content
	case Entity:
		return decodeEntity(n.Name)
	case Reference:
		return formatReference(&n)
	}
	return ""
}

// formatReference renders a reference by its simple names, for example
// List.add for java.util.List#add(int, Object).
func formatReference(ref *Reference) string {
	if ref == nil {
		return ""
	}
	if ref.Ref == nil {
		return ref.Signature
	}
	var qualifier string
	if name := parser.QualifiedName(ref.Ref.Qualifier); name != "" {
		qualifier = name[strings.LastIndex(name, ".")+1:]
	}
	if ref.Ref.Member == nil {
		if qualifier == "" {
			return parser.QualifiedName(ref.Ref.Module)
		}
		return qualifier
	}
	member := ref.Ref.Member.Name
	if ref.Ref.Params != nil {
		member += "()"
	}
	if qualifier == "" {
		return member
	}
	return qualifier + "." + member
}

func formatStartElement(e StartElement) string {
	switch strings.ToLower(e.Name) {
	case "p":
		return "\n\n"
	case "br":
		return "\n"
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "b", "strong":
		return "**"
	case "i", "em":
		return "_"
	case "ul", "ol", "table", "thead", "tbody", "tr", "dl", "dt":
		return "\n"
	case "li":
		return "\n- "
	case "blockquote":
		return "\n> "
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n\n" + strings.Repeat("#", int(e.Name[1]-'0')) + " "
	case "td", "th":
		return " "
	case "dd":
		return "\n  "
	}
	return ""
}

func formatEndElement(e EndElement) string {
	switch strings.ToLower(e.Name) {
	case "pre":
		return "\n```\n"
	case "code", "tt":
		return "`"
	case "b", "strong":
		return "**"
	case "i", "em":
		return "_"
	case "ul", "ol":
		return "\n"
	case "h1", "h2", "h3", "h4", "h5", "h6":
		return "\n"
	}
	return ""
}

// blockSections groups block tags by kind, in the order javadoc prints
// them.
func blockSections(tags []Node) []string {
	var (
		deprecated, typeParams, params, returns []string
		throws, see, since, authors, versions   []string
		other                                   []string
	)
	desc := func(nodes []Node) string {
		return strings.Join(strings.Fields(formatNodes(nodes)), " ")
	}
	for _, tag := range tags {
		switch n := tag.(type) {
		case Deprecated:
			deprecated = append(deprecated, desc(n.Description))
		case Param:
			if n.IsTypeParam {
				typeParams = append(typeParams, "- `<"+n.Name+">` "+desc(n.Description))
			} else {
				params = append(params, "- `"+n.Name+"` "+desc(n.Description))
			}
		case Return:
			returns = append(returns, desc(n.Description))
		case Throws:
			throws = append(throws, "- `"+formatReference(n.Exception)+"` "+desc(n.Description))
		case See:
			see = append(see, "- "+formatSee(n))
		case Since:
			since = append(since, desc(n.Version))
		case Author:
			authors = append(authors, desc(n.Name))
		case Version:
			versions = append(versions, desc(n.Version))
		case Hidden:
		case Serial:
			other = append(other, "**Serial:** "+desc(n.Description))
		case SerialData:
			other = append(other, "**Serial data:** "+desc(n.Description))
		case SerialField:
			other = append(other, "**Serial field:** `"+n.Name+"` "+desc(n.Description))
		case Provides:
			other = append(other, "**Provides:** `"+formatReference(n.ServiceType)+"` "+desc(n.Description))
		case Uses:
			other = append(other, "**Uses:** `"+formatReference(n.ServiceType)+"` "+desc(n.Description))
		case UnknownBlockTag:
			other = append(other, "**@"+n.Name+"** "+desc(n.Content))
		}
	}

	var sections []string
	inline := func(title string, items []string) {
		if len(items) > 0 {
			sections = append(sections, "**"+title+"** "+strings.Join(items, " "))
		}
	}
	list := func(title string, items []string) {
		if len(items) > 0 {
			sections = append(sections, "**"+title+"**\n"+strings.Join(items, "\n"))
		}
	}
	inline("Deprecated.", deprecated)
	list("Type Parameters:", typeParams)
	list("Parameters:", params)
	inline("Returns:", returns)
	list("Throws:", throws)
	list("See Also:", see)
	inline("Since:", since)
	inline("Author:", authors)
	inline("Version:", versions)
	sections = append(sections, other...)
	return sections
}

func formatSee(n See) string {
	if len(n.Reference) == 0 {
		return ""
	}
	if ref, ok := n.Reference[0].(Reference); ok {
		label := strings.TrimSpace(formatNodes(n.Reference[1:]))
		if label != "" {
			return label
		}
		return "`" + formatReference(&ref) + "`"
	}
	return strings.TrimSpace(formatNodes(n.Reference))
}

func decodeEntity(name string) string {
	switch name {
	case "lt", "#60":
		return "<"
	case "gt", "#62":
		return ">"
	case "amp", "#38":
		return "&"
	case "quot", "#34":
		return "\""
	case "apos", "#39":
		return "'"
	case "nbsp", "#160":
		return " "
	case "mdash", "#8212":
		return "—"
	case "ndash", "#8211":
		return "–"
	case "copy", "#169":
		return "©"
	case "reg", "#174":
		return "®"
	case "trade", "#8482":
		return "™"
	}
	return "&" + name + ";"
}

// normalizeWhitespace collapses runs of blank lines into one.
func normalizeWhitespace(s string) string {
	lines := strings.Split(s, "\n")
	var result []string
	prevEmpty := false

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			if !prevEmpty {
				result = append(result, "")
				prevEmpty = true
			}
			continue
		}
		result = append(result, line)
		prevEmpty = false
	}

	return strings.Join(result, "\n")
}
