package lsp

import (
	"context"
	"sync"

	"github.com/spf13/afero"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/javadoc"
	"github.com/dhamidi/jparse/java/parser"

	_ "github.com/tliron/commonlog/simple"
)

const lsName = "jparse"

var logger = commonlog.GetLogger("jparse.lsp")

type Server struct {
	fs         afero.Fs
	parserOpts []parser.Option
	watch      bool

	workspace *Workspace
	handler   protocol.Handler
	server    *server.Server
	version   string
	watcher   *Watcher

	mu     sync.Mutex
	open   map[string]bool
	notify glsp.NotifyFunc
}

type ServerOption func(*Server)

// WithFs sets the file system the workspace is read from.
func WithFs(fs afero.Fs) ServerOption {
	return func(s *Server) {
		s.fs = fs
	}
}

// WithParser passes opts to every parse.
func WithParser(opts ...parser.Option) ServerOption {
	return func(s *Server) {
		s.parserOpts = opts
	}
}

// WithWatch reparses files changed on disk outside the editor.
func WithWatch(enabled bool) ServerOption {
	return func(s *Server) {
		s.watch = enabled
	}
}

func NewServer(version string, opts ...ServerOption) *Server {
	s := &Server{
		fs:      afero.NewOsFs(),
		version: version,
		open:    make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.handler = protocol.Handler{
		Initialize:                 s.initialize,
		Initialized:                s.initialized,
		Shutdown:                   s.shutdown,
		SetTrace:                   s.setTrace,
		TextDocumentDidOpen:        s.textDocumentDidOpen,
		TextDocumentDidChange:      s.textDocumentDidChange,
		TextDocumentDidClose:       s.textDocumentDidClose,
		TextDocumentDidSave:        s.textDocumentDidSave,
		TextDocumentHover:          s.textDocumentHover,
		TextDocumentDocumentSymbol: s.textDocumentDocumentSymbol,
	}

	s.server = server.NewServer(&s.handler, lsName, false)

	return s
}

func (s *Server) RunStdio() error {
	return s.server.RunStdio()
}

// Workspace returns the server's workspace, or nil before initialize.
func (s *Server) Workspace() *Workspace {
	return s.workspace
}

func (s *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	rootDir := "."
	if params.RootPath != nil && *params.RootPath != "" {
		rootDir = *params.RootPath
	} else if params.RootURI != nil && *params.RootURI != "" {
		if path, err := uriToPath(*params.RootURI); err == nil {
			rootDir = path
		}
	}

	s.workspace = NewWorkspace(s.fs, rootDir, WithParserOptions(s.parserOpts...))

	capabilities := s.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &s.version,
		},
	}, nil
}

func (s *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	s.mu.Lock()
	s.notify = ctx.Notify
	s.mu.Unlock()

	if err := s.workspace.ScanAll(context.Background()); err != nil {
		logger.Errorf("scan workspace: %s", err)
	}
	files := s.workspace.Files()
	logger.Infof("parsed %d files in %s", len(files), s.workspace.Root())
	for _, f := range files {
		if len(f.Diagnostics) > 0 {
			s.publish(f)
		}
	}

	if s.watch {
		w, err := NewWatcher(s.workspace.Root(), s.filesChanged)
		if err != nil {
			logger.Errorf("watch workspace: %s", err)
			return nil
		}
		s.watcher = w
		w.Start()
	}
	return nil
}

// filesChanged reparses files changed on disk that are not open in the
// editor.
func (s *Server) filesChanged(paths []string) {
	for _, path := range paths {
		if f, ok := s.reload(path); ok {
			s.publish(f)
		}
	}
}

// reload replaces path with its content on disk unless the editor owns it.
// The open check and the store happen under s.mu, so a didOpen that lands
// while the file is being read keeps the editor text.
func (s *Server) reload(path string) (*File, bool) {
	f, err := s.workspace.LoadFile(path)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open[path] {
		return nil, false
	}
	if err != nil {
		s.workspace.Remove(path)
		return &File{Path: path}, true
	}
	s.workspace.Put(f)
	return f, true
}

func (s *Server) shutdown(ctx *glsp.Context) error {
	if s.watcher != nil {
		return s.watcher.Stop()
	}
	return nil
}

func (s *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.setOpen(path, true)
	s.publishTo(ctx.Notify, s.workspace.UpdateFile(path, params.TextDocument.Text))
	return nil
}

func (s *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	if len(params.ContentChanges) > 0 {
		change := params.ContentChanges[len(params.ContentChanges)-1]
		if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
			s.publishTo(ctx.Notify, s.workspace.UpdateFile(path, textChange.Text))
		}
	}
	return nil
}

func (s *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	s.setOpen(path, false)
	f, err := s.workspace.ScanFile(path)
	if err != nil {
		s.workspace.Remove(path)
		f = &File{Path: path}
	}
	s.publishTo(ctx.Notify, f)
	return nil
}

func (s *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil
	}
	var f *File
	if params.Text != nil {
		f = s.workspace.UpdateFile(path, *params.Text)
	} else if f, err = s.workspace.ScanFile(path); err != nil {
		return nil
	}
	s.publishTo(ctx.Notify, f)
	return nil
}

func (s *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := s.workspace.File(path)
	if f == nil {
		return nil, nil
	}

	decl := f.DeclarationAt(toOffset(f.Unit.Lines, f.Content, params.Position))
	if decl == nil {
		return nil, nil
	}
	doc := f.Docs.Get(decl)
	text := "```java\n" + hoverLabel(decl) + "\n```"
	if body := javadoc.Format(doc); body != "" {
		text += "\n\n" + body
	}

	start, end := parser.Span(f.Unit.EndPos, decl)
	rng := toRange(f.Unit.Lines, f.Content, start, end)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: text},
		Range:    &rng,
	}, nil
}

func (s *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	path, err := uriToPath(params.TextDocument.URI)
	if err != nil {
		return nil, nil
	}
	f := s.workspace.File(path)
	if f == nil {
		return nil, nil
	}
	return documentSymbols(f), nil
}

func (s *Server) publish(f *File) {
	s.mu.Lock()
	notify := s.notify
	s.mu.Unlock()
	s.publishTo(notify, f)
}

func (s *Server) publishTo(notify glsp.NotifyFunc, f *File) {
	if notify == nil {
		return
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         pathToURI(f.Path),
		Diagnostics: toDiagnostics(f),
	})
}

func toDiagnostics(f *File) []protocol.Diagnostic {
	out := []protocol.Diagnostic{}
	for _, d := range f.Diagnostics {
		start := max(d.Pos, 0)
		end := d.End
		if end <= start {
			end = min(start+1, len(f.Content))
		}
		severity := toSeverity(d.Severity)
		source := lsName
		out = append(out, protocol.Diagnostic{
			Range:    toRange(f.Unit.Lines, f.Content, start, end),
			Severity: &severity,
			Code:     &protocol.IntegerOrString{Value: string(d.Key)},
			Source:   &source,
			Message:  d.Message(),
		})
	}
	return out
}

func toSeverity(s diag.Severity) protocol.DiagnosticSeverity {
	switch s {
	case diag.Error:
		return protocol.DiagnosticSeverityError
	case diag.Warning:
		return protocol.DiagnosticSeverityWarning
	}
	return protocol.DiagnosticSeverityInformation
}

func (s *Server) setOpen(path string, open bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if open {
		s.open[path] = true
	} else {
		delete(s.open, path)
	}
}

func (s *Server) isOpen(path string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open[path]
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
