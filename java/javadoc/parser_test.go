package javadoc

import (
	"sync"
	"testing"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/parser"
	"github.com/google/go-cmp/cmp"
)

func TestParseSimpleText(t *testing.T) {
	doc := Parse("Simple text. ")

	want := []Node{Text{At: At{0}, Content: "Simple text."}}
	if diff := cmp.Diff(want, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
	if doc.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", doc.Pos())
	}
	if len(doc.Errors) != 0 {
		t.Errorf("Errors = %v, want none", doc.Errors)
	}
}

func TestParseEmpty(t *testing.T) {
	doc := Parse("  \n ")
	if len(doc.Body) != 0 || len(doc.BlockTags) != 0 {
		t.Errorf("Body = %v, BlockTags = %v, want both empty", doc.Body, doc.BlockTags)
	}
	if doc.Pos() != diag.NoPos {
		t.Errorf("Pos() = %d, want NoPos", doc.Pos())
	}
}

func TestParseCodeTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Use {@code Map<String, List<Integer>>} for this.", "Map<String, List<Integer>>"},
		{"Use {@code class Foo { int x; }} for this.", "class Foo { int x; }"},
		{"Use {@code  two} for this.", " two"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			if len(doc.Body) != 3 {
				t.Fatalf("got %d body nodes, want 3: %+v", len(doc.Body), doc.Body)
			}
			if got, ok := doc.Body[0].(Text); !ok || got.Content != "Use " {
				t.Errorf("Body[0] = %+v, want Text %q", doc.Body[0], "Use ")
			}
			code, ok := doc.Body[1].(Code)
			if !ok {
				t.Fatalf("Body[1] = %T, want Code", doc.Body[1])
			}
			if code.Content != tt.want {
				t.Errorf("Content = %q, want %q", code.Content, tt.want)
			}
			if code.Pos() != 4 {
				t.Errorf("Pos() = %d, want 4", code.Pos())
			}
			if got, ok := doc.Body[2].(Text); !ok || got.Content != " for this." {
				t.Errorf("Body[2] = %+v, want Text %q", doc.Body[2], " for this.")
			}
		})
	}
}

func TestParseLinkTag(t *testing.T) {
	doc := Parse("See {@link java.util.List} and {@linkplain List#add(int) add an item}.")

	var links []Link
	for _, n := range doc.Body {
		if l, ok := n.(Link); ok {
			links = append(links, l)
		}
	}
	if len(links) != 2 {
		t.Fatalf("got %d links, want 2: %+v", len(links), doc.Body)
	}

	if links[0].Plain {
		t.Errorf("links[0].Plain = true, want false")
	}
	if got := links[0].Ref.Signature; got != "java.util.List" {
		t.Errorf("links[0] signature = %q, want %q", got, "java.util.List")
	}
	if got := parser.QualifiedName(links[0].Ref.Ref.Qualifier); got != "java.util.List" {
		t.Errorf("links[0] qualifier = %q, want %q", got, "java.util.List")
	}
	if len(links[0].Label) != 0 {
		t.Errorf("links[0].Label = %v, want empty", links[0].Label)
	}

	if !links[1].Plain {
		t.Errorf("links[1].Plain = false, want true")
	}
	if got := links[1].Ref.Ref.Member.Name; got != "add" {
		t.Errorf("links[1] member = %q, want %q", got, "add")
	}
	wantLabel := []Node{Text{At: At{57}, Content: "add an item"}}
	if diff := cmp.Diff(wantLabel, links[1].Label); diff != "" {
		t.Errorf("links[1].Label mismatch (-want +got):\n%s", diff)
	}
}

func TestParseInlineTags(t *testing.T) {
	tests := []struct {
		input string
		want  Node
	}{
		{"{@literal a<b}", Literal{At: At{0}, Content: "a<b"}},
		{"{@docRoot}", DocRoot{At{0}}},
		{"{@inheritDoc}", InheritDoc{At{0}}},
		{"{@systemProperty user.home}", SystemProperty{At: At{0}, Name: "user.home"}},
		{"{@index jdk tools}", Index{At: At{0}, Term: "jdk", Description: []Node{Text{At: At{12}, Content: "tools"}}}},
		{`{@index "two words"}`, Index{At: At{0}, Term: `"two words"`}},
		{"{@summary Short.}", Summary{At: At{0}, Content: []Node{Text{At: At{10}, Content: "Short."}}}},
		{"{@return the size}", Return{At: At{0}, Inline: true, Description: []Node{Text{At: At{9}, Content: "the size"}}}},
		{"{@custom stuff}", UnknownInlineTag{At: At{0}, Name: "custom", Content: "stuff"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			if len(doc.Errors) != 0 {
				t.Fatalf("Errors = %v, want none", doc.Errors)
			}
			if len(doc.Body) != 1 {
				t.Fatalf("got %d body nodes, want 1: %+v", len(doc.Body), doc.Body)
			}
			if diff := cmp.Diff(tt.want, doc.Body[0]); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseValueTag(t *testing.T) {
	doc := Parse("{@value} and {@value Integer#MAX_VALUE}")
	v0, ok := doc.Body[0].(Value)
	if !ok {
		t.Fatalf("Body[0] = %T, want Value", doc.Body[0])
	}
	if v0.Ref != nil {
		t.Errorf("Body[0].Ref = %v, want nil", v0.Ref)
	}
	v1, ok := doc.Body[2].(Value)
	if !ok {
		t.Fatalf("Body[2] = %T, want Value", doc.Body[2])
	}
	if got := v1.Ref.Signature; got != "Integer#MAX_VALUE" {
		t.Errorf("signature = %q, want %q", got, "Integer#MAX_VALUE")
	}
}

func TestParseSnippet(t *testing.T) {
	doc := Parse("{@snippet lang=java :\n  int x = 1;\n}")
	if len(doc.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", doc.Errors)
	}
	s, ok := doc.Body[0].(Snippet)
	if !ok {
		t.Fatalf("Body[0] = %T, want Snippet", doc.Body[0])
	}
	wantAttrs := []Attribute{{At: At{10}, Name: "lang", Kind: ValueUnquoted, Value: "java"}}
	if diff := cmp.Diff(wantAttrs, s.Attributes); diff != "" {
		t.Errorf("Attributes mismatch (-want +got):\n%s", diff)
	}
	if s.Body != "  int x = 1;\n" {
		t.Errorf("Body = %q, want %q", s.Body, "  int x = 1;\n")
	}
}

func TestParseHTML(t *testing.T) {
	doc := Parse(`a <a href="x.html" id=top hidden>b</a><br/><!-- note -->`)
	if len(doc.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", doc.Errors)
	}
	want := []Node{
		Text{At: At{0}, Content: "a "},
		StartElement{At: At{2}, Name: "a", Attributes: []Attribute{
			{At: At{5}, Name: "href", Kind: ValueDouble, Value: "x.html"},
			{At: At{19}, Name: "id", Kind: ValueUnquoted, Value: "top"},
			{At: At{26}, Name: "hidden", Kind: ValueEmpty},
		}},
		Text{At: At{33}, Content: "b"},
		EndElement{At: At{34}, Name: "a"},
		StartElement{At: At{38}, Name: "br", SelfClose: true},
		Comment{At: At{43}, Body: "<!-- note -->"},
	}
	if diff := cmp.Diff(want, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
}

func TestParseEntities(t *testing.T) {
	doc := Parse("a &lt; b &#160; c &#x41;")
	var names []string
	for _, n := range doc.Body {
		if e, ok := n.(Entity); ok {
			names = append(names, e.Name)
		}
	}
	if diff := cmp.Diff([]string{"lt", "#160", "#x41"}, names); diff != "" {
		t.Errorf("entities mismatch (-want +got):\n%s", diff)
	}
}

func TestParseBlockTags(t *testing.T) {
	text := "Returns the sum.\n" +
		"@param a the first\n" +
		"@param <T> the type\n" +
		"@return the result\n" +
		"@throws IllegalArgumentException if negative\n" +
		"@see java.util.List#add(int, Object) adding\n" +
		"@since 1.0\n"
	doc := Parse(text)
	if len(doc.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", doc.Errors)
	}

	if diff := cmp.Diff([]Node{Text{At: At{0}, Content: "Returns the sum."}}, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}

	var names []string
	for _, tag := range doc.BlockTags {
		names = append(names, TagName(tag))
	}
	wantNames := []string{"param", "param", "return", "throws", "see", "since"}
	if diff := cmp.Diff(wantNames, names); diff != "" {
		t.Fatalf("tag names mismatch (-want +got):\n%s", diff)
	}

	p0 := doc.BlockTags[0].(Param)
	if p0.Name != "a" || p0.IsTypeParam {
		t.Errorf("BlockTags[0] = %+v, want param a", p0)
	}
	if p0.Pos() != 17 {
		t.Errorf("BlockTags[0].Pos() = %d, want 17", p0.Pos())
	}
	p1 := doc.BlockTags[1].(Param)
	if p1.Name != "T" || !p1.IsTypeParam {
		t.Errorf("BlockTags[1] = %+v, want type param T", p1)
	}

	th := doc.BlockTags[3].(Throws)
	if th.Exception.Signature != "IllegalArgumentException" {
		t.Errorf("Throws.Exception = %q, want IllegalArgumentException", th.Exception.Signature)
	}

	see := doc.BlockTags[4].(See)
	if len(see.Reference) != 2 {
		t.Fatalf("See.Reference = %+v, want reference and label", see.Reference)
	}
	ref, ok := see.Reference[0].(Reference)
	if !ok {
		t.Fatalf("See.Reference[0] = %T, want Reference", see.Reference[0])
	}
	if got := len(ref.Ref.Params); got != 2 {
		t.Errorf("len(Params) = %d, want 2", got)
	}

	if doc.Tag("return") == nil {
		t.Errorf("Tag(return) = nil, want the @return tag")
	}
	if doc.Tag("author") != nil {
		t.Errorf("Tag(author) = %v, want nil", doc.Tag("author"))
	}
}

func TestParseSeeForms(t *testing.T) {
	tests := []struct {
		input string
		want  []Node
	}{
		{`@see "The Java Language"`, []Node{Text{At: At{5}, Content: `"The Java Language"`}}},
		{`@see <a href="x">X</a>`, []Node{
			StartElement{At: At{5}, Name: "a", Attributes: []Attribute{{At: At{8}, Name: "href", Kind: ValueDouble, Value: "x"}}},
			Text{At: At{17}, Content: "X"},
			EndElement{At: At{18}, Name: "a"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			if len(doc.Errors) != 0 {
				t.Fatalf("Errors = %v, want none", doc.Errors)
			}
			see, ok := doc.BlockTags[0].(See)
			if !ok {
				t.Fatalf("BlockTags[0] = %T, want See", doc.BlockTags[0])
			}
			if diff := cmp.Diff(tt.want, see.Reference); diff != "" {
				t.Errorf("Reference mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseUnknownBlockTag(t *testing.T) {
	doc := Parse("@apiNote careful here")
	tag, ok := doc.BlockTags[0].(UnknownBlockTag)
	if !ok {
		t.Fatalf("BlockTags[0] = %T, want UnknownBlockTag", doc.BlockTags[0])
	}
	if tag.Name != "apiNote" {
		t.Errorf("Name = %q, want apiNote", tag.Name)
	}
	if diff := cmp.Diff([]Node{Text{At: At{9}, Content: "careful here"}}, tag.Content); diff != "" {
		t.Errorf("Content mismatch (-want +got):\n%s", diff)
	}
}

func TestParseAtInsideText(t *testing.T) {
	doc := Parse("mail me at a@b.com\n  @since 2")
	if diff := cmp.Diff([]Node{Text{At: At{0}, Content: "mail me at a@b.com"}}, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
	if len(doc.BlockTags) != 1 || TagName(doc.BlockTags[0]) != "since" {
		t.Errorf("BlockTags = %+v, want one @since", doc.BlockTags)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		input   string
		key     diag.Key
		pos     int
		content string
	}{
		{"{@code abc", diag.DocUnterminatedInlineTag, 0, "{@code abc"},
		{"a &bogus b", diag.DocMissingSemicolon, 2, "&bogus"},
		{"a &# b", diag.DocBadEntity, 2, "&#"},
		{`x <a href="y"`, diag.DocMalformedHTML, 2, "<"},
		{"@param", diag.DocIdentifierExpected, 0, "@param"},
		{"@param <T the type", diag.DocGTExpected, 0, "@param <T the type"},
		{"{@see Foo}", diag.DocTagNotSupported, 0, "{@see Foo}"},
		{"@code x", diag.DocTagNotSupported, 0, "@code x"},
		{"@ foo", diag.DocNoTagName, 0, "@ foo"},
		{"{@link Foo#bar(}", diag.DocUnterminatedSignature, 0, "{@link Foo#bar("},
		{"{@value Foo x}", diag.DocUnexpectedContent, 0, "{@value Foo x"},
		{"{@link #m(@A int)}", diag.DocRefAnnotationsInParam, 10, "{@link #m(@A int)"},
		{"@throws List#add(int) bad", diag.DocRefUnexpectedInput, 13, "@throws List#add(int) bad"},
		{"x > y", diag.DocBadGT, 2, ">"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			if len(doc.Errors) == 0 {
				t.Fatalf("no errors, want %s", tt.key)
			}
			if got := doc.Errors[0]; got.Key != tt.key || got.Pos != tt.pos {
				t.Errorf("Errors[0] = %s at %d, want %s at %d", got.Key, got.Pos, tt.key, tt.pos)
			}

			var found *Erroneous
			for _, n := range append(append([]Node(nil), doc.Body...), doc.BlockTags...) {
				if e, ok := n.(Erroneous); ok {
					found = &e
					break
				}
			}
			if found == nil {
				t.Fatalf("no Erroneous node in %+v %+v", doc.Body, doc.BlockTags)
			}
			if found.Content != tt.content {
				t.Errorf("Erroneous.Content = %q, want %q", found.Content, tt.content)
			}
		})
	}
}

func TestFirstSentence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"First sentence. Second sentence.", "First sentence."},
		{"No period here", "No period here"},
		{"Intro<p>More.", "Intro"},
		{"{@summary Short one.} Long text. More.", "Short one."},
		{"Version 1.5 is new. Really.", "Version 1.5 is new."},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			doc := Parse(tt.input)
			if got := FormatSummary(doc); got != tt.want {
				t.Errorf("FormatSummary() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	doc := ParseFile("<html><head><title>T</title></head>\n<body>Body text.</body></html>")
	if len(doc.Errors) != 0 {
		t.Fatalf("Errors = %v, want none", doc.Errors)
	}

	if got := len(doc.Preamble); got != 6 {
		t.Errorf("len(Preamble) = %d, want 6: %+v", got, doc.Preamble)
	}
	wantBody := []Node{
		StartElement{At: At{36}, Name: "body"},
		Text{At: At{42}, Content: "Body text."},
	}
	if diff := cmp.Diff(wantBody, doc.Body); diff != "" {
		t.Errorf("Body mismatch (-want +got):\n%s", diff)
	}
	wantPost := []Node{
		EndElement{At: At{52}, Name: "body"},
		EndElement{At: At{59}, Name: "html"},
	}
	if diff := cmp.Diff(wantPost, doc.Postamble); diff != "" {
		t.Errorf("Postamble mismatch (-want +got):\n%s", diff)
	}
	if doc.Pos() != 0 {
		t.Errorf("Pos() = %d, want 0", doc.Pos())
	}
}

func TestParseFileBodyMain(t *testing.T) {
	doc := ParseFile("<body> <main>Text</main></body>")
	var preamble []string
	for _, n := range doc.Preamble {
		if s, ok := n.(StartElement); ok {
			preamble = append(preamble, s.Name)
		}
	}
	if diff := cmp.Diff([]string{"body"}, preamble); diff != "" {
		t.Errorf("preamble elements mismatch (-want +got):\n%s", diff)
	}
	if s, ok := doc.Body[0].(StartElement); !ok || s.Name != "main" {
		t.Errorf("Body[0] = %+v, want <main>", doc.Body[0])
	}
}

func parseUnit(t *testing.T, src string) *parser.Unit {
	t.Helper()
	log := diag.NewLog("Test.java")
	unit := parser.Parse(src, parser.WithDocComments(), parser.WithHandler(log))
	if log.HasErrors() {
		t.Fatalf("parse errors: %v", log.Errors())
	}
	return unit
}

func TestParseCommentSourcePositions(t *testing.T) {
	unit := parseUnit(t, "/** Hello {@code x} */ class A {}")
	if len(unit.DocComments) != 1 {
		t.Fatalf("got %d doc comments, want 1", len(unit.DocComments))
	}
	for _, c := range unit.DocComments {
		doc := ParseComment(c)
		if got := c.SourcePos(doc.Body[1].Pos()); got != 10 {
			t.Errorf("SourcePos(code) = %d, want 10", got)
		}
	}
}

func TestParseCommentReportsSourcePositions(t *testing.T) {
	unit := parseUnit(t, "/** Bad &x */ class A {}")
	for _, c := range unit.DocComments {
		log := diag.NewLog("Test.java")
		doc := ParseComment(c, WithHandler(log))
		if doc.Errors[0].Pos != 4 {
			t.Errorf("Errors[0].Pos = %d, want 4", doc.Errors[0].Pos)
		}
		reported := log.Diagnostics()
		if len(reported) != 1 {
			t.Fatalf("reported %d diagnostics, want 1", len(reported))
		}
		if reported[0].Pos != 8 || reported[0].Key != diag.DocMissingSemicolon {
			t.Errorf("reported %s at %d, want %s at 8", reported[0].Key, reported[0].Pos, diag.DocMissingSemicolon)
		}
	}
}

func TestTable(t *testing.T) {
	unit := parseUnit(t, "/** A. */ class A {\n  /** The x. */ int x;\n  /** Does m. */ void m() {}\n  int undocumented;\n}")
	table := NewTable(unit.DocComments)
	if table.Len() == 0 {
		t.Fatal("Len() = 0, want doc comments")
	}

	var decls []*parser.Node
	for decl := range unit.DocComments {
		decls = append(decls, decl)
	}

	var wg sync.WaitGroup
	results := make([][]*DocComment, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, d := range decls {
				results[i] = append(results[i], table.Get(d))
			}
		}(i)
	}
	wg.Wait()

	for i := range results {
		for j, dc := range results[i] {
			if dc != results[0][j] {
				t.Errorf("goroutine %d got a different tree for decl %d", i, j)
			}
		}
	}
	if table.Parsed() != table.Len() {
		t.Errorf("Parsed() = %d, want %d", table.Parsed(), table.Len())
	}

	if got := table.Get(&parser.Node{}); got != nil {
		t.Errorf("Get(unknown) = %v, want nil", got)
	}
}
