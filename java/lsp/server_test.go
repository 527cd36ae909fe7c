package lsp

import (
	"strings"
	"sync"
	"testing"

	"github.com/spf13/afero"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type notifications struct {
	mu   sync.Mutex
	sent []protocol.PublishDiagnosticsParams
}

func (n *notifications) notify(method string, params any) {
	if method != protocol.ServerTextDocumentPublishDiagnostics {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, params.(protocol.PublishDiagnosticsParams))
}

func (n *notifications) last(t *testing.T) protocol.PublishDiagnosticsParams {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.sent) == 0 {
		t.Fatal("no diagnostics published")
	}
	return n.sent[len(n.sent)-1]
}

// openHookFs calls onOpen before each Open.
type openHookFs struct {
	afero.Fs
	onOpen func(name string)
}

func (fs *openHookFs) Open(name string) (afero.File, error) {
	if fs.onOpen != nil {
		fs.onOpen(name)
	}
	return fs.Fs.Open(name)
}

func startServer(t *testing.T, files map[string]string) (*Server, *glsp.Context, *notifications) {
	t.Helper()
	return startServerFs(t, memFs(t, files))
}

func startServerFs(t *testing.T, fs afero.Fs) (*Server, *glsp.Context, *notifications) {
	t.Helper()
	s := NewServer("test", WithFs(fs))
	sent := &notifications{}
	ctx := &glsp.Context{Notify: sent.notify}

	root := "/ws"
	if _, err := s.initialize(ctx, &protocol.InitializeParams{RootPath: &root}); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := s.initialized(ctx, &protocol.InitializedParams{}); err != nil {
		t.Fatalf("initialized: %v", err)
	}
	return s, ctx, sent
}

func TestServerPublishesWorkspaceDiagnostics(t *testing.T) {
	s, _, sent := startServer(t, map[string]string{
		"/ws/A.java": "class A {}",
		"/ws/B.java": "class B { int x }",
	})

	if got := len(s.Workspace().Files()); got != 2 {
		t.Fatalf("len(Files()) = %d, want 2", got)
	}
	if len(sent.sent) != 1 {
		t.Fatalf("published %d times, want 1", len(sent.sent))
	}
	params := sent.last(t)
	if params.URI != "file:///ws/B.java" {
		t.Errorf("URI = %q, want %q", params.URI, "file:///ws/B.java")
	}
	if len(params.Diagnostics) == 0 {
		t.Fatal("no diagnostics for B.java")
	}
	d := params.Diagnostics[0]
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("Severity = %v, want error", d.Severity)
	}
	if d.Source == nil || *d.Source != "jparse" {
		t.Errorf("Source = %v, want jparse", d.Source)
	}
	if d.Message != "';' expected" {
		t.Errorf("Message = %q, want %q", d.Message, "';' expected")
	}
	if d.Range.Start.Line != 0 {
		t.Errorf("Range.Start.Line = %d, want 0", d.Range.Start.Line)
	}
}

func TestServerDidOpenAndChange(t *testing.T) {
	s, ctx, sent := startServer(t, map[string]string{"/ws/A.java": "class A {}"})
	uri := pathToURI("/ws/A.java")

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{URI: uri, LanguageID: "java", Version: 1, Text: "class A {"},
	})
	if err != nil {
		t.Fatalf("didOpen: %v", err)
	}
	if got := sent.last(t); len(got.Diagnostics) == 0 {
		t.Errorf("didOpen diagnostics = %v, want at least one", got.Diagnostics)
	}
	if !s.isOpen("/ws/A.java") {
		t.Errorf("isOpen = false after didOpen")
	}

	err = s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{protocol.TextDocumentContentChangeEventWhole{Text: "class A {}"}},
	})
	if err != nil {
		t.Fatalf("didChange: %v", err)
	}
	got := sent.last(t)
	if got.Diagnostics == nil || len(got.Diagnostics) != 0 {
		t.Errorf("didChange diagnostics = %#v, want empty non-nil slice", got.Diagnostics)
	}

	// changes on disk are ignored while the file is open
	s.filesChanged([]string{"/ws/A.java"})
	if content := s.Workspace().File("/ws/A.java").Content; content != "class A {}" {
		t.Errorf("Content = %q, want the editor text", content)
	}

	if err := s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	}); err != nil {
		t.Fatalf("didClose: %v", err)
	}
	if s.isOpen("/ws/A.java") {
		t.Errorf("isOpen = true after didClose")
	}
}

func TestServerFilesChangedRemovesDeleted(t *testing.T) {
	s, _, sent := startServer(t, map[string]string{"/ws/A.java": "class A {}"})

	s.filesChanged([]string{"/ws/Gone.java"})
	if f := s.Workspace().File("/ws/Gone.java"); f != nil {
		t.Errorf("File(Gone.java) = %v, want nil", f)
	}
	got := sent.last(t)
	if got.URI != "file:///ws/Gone.java" || len(got.Diagnostics) != 0 {
		t.Errorf("published %+v, want cleared diagnostics for Gone.java", got)
	}
}

func TestServerFilesChangedKeepsFileOpenedDuringRead(t *testing.T) {
	fs := &openHookFs{Fs: memFs(t, map[string]string{"/ws/A.java": "class A {}"})}
	s, ctx, _ := startServerFs(t, fs)

	const editorText = "class A { int x; }"
	fs.onOpen = func(name string) {
		fs.onOpen = nil
		err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
			TextDocument: protocol.TextDocumentItem{URI: pathToURI(name), LanguageID: "java", Version: 1, Text: editorText},
		})
		if err != nil {
			t.Errorf("didOpen: %v", err)
		}
	}

	s.filesChanged([]string{"/ws/A.java"})
	if content := s.Workspace().File("/ws/A.java").Content; content != editorText {
		t.Errorf("Content = %q, want %q", content, editorText)
	}
}

func TestServerHover(t *testing.T) {
	s, ctx, _ := startServer(t, map[string]string{"/ws/A.java": docSource})
	f := s.Workspace().File("/ws/A.java")
	offset := strings.Index(docSource, "return 0")

	hover, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI("/ws/A.java")},
			Position:     toPosition(f.Unit.Lines, f.Content, offset),
		},
	})
	if err != nil {
		t.Fatalf("hover: %v", err)
	}
	if hover == nil {
		t.Fatal("hover = nil, want content")
	}
	content, ok := hover.Contents.(protocol.MarkupContent)
	if !ok {
		t.Fatalf("Contents = %T, want MarkupContent", hover.Contents)
	}
	want := "```java\nmethod size\n```\n\nReturns the size."
	if content.Value != want {
		t.Errorf("hover = %q, want %q", content.Value, want)
	}
	if content.Kind != protocol.MarkupKindMarkdown {
		t.Errorf("Kind = %q, want markdown", content.Kind)
	}

	none, err := s.textDocumentHover(ctx, &protocol.HoverParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI("/ws/A.java")},
			Position:     protocol.Position{Line: 0, Character: 0},
		},
	})
	if err != nil || none != nil {
		t.Errorf("hover on package = %v, %v, want nil, nil", none, err)
	}
}

func TestServerDocumentSymbol(t *testing.T) {
	s, ctx, _ := startServer(t, map[string]string{"/ws/A.java": docSource})

	result, err := s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: pathToURI("/ws/A.java")},
	})
	if err != nil {
		t.Fatalf("documentSymbol: %v", err)
	}
	symbols, ok := result.([]protocol.DocumentSymbol)
	if !ok || len(symbols) != 1 {
		t.Fatalf("documentSymbol = %#v, want one symbol", result)
	}
	if symbols[0].Name != "A" || len(symbols[0].Children) != 2 {
		t.Errorf("symbol = %s with %d children, want A with 2", symbols[0].Name, len(symbols[0].Children))
	}
}
