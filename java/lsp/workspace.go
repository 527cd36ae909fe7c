// Package lsp keeps a workspace of parsed Java files and serves syntax
// diagnostics, hovers and document symbols over the Language Server
// Protocol.
package lsp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/jparse/java/diag"
	"github.com/dhamidi/jparse/java/javadoc"
	"github.com/dhamidi/jparse/java/parser"
)

// File is a parsed source file.
type File struct {
	Path        string
	Content     string
	Unit        *parser.Unit
	Docs        *javadoc.Table
	Diagnostics []diag.Diagnostic
}

// HasErrors reports whether parsing the file produced an error.
func (f *File) HasErrors() bool {
	for _, d := range f.Diagnostics {
		if d.Severity == diag.Error {
			return true
		}
	}
	return false
}

// DeclarationAt returns the innermost declaration with a doc comment whose
// source range contains offset, or nil.
func (f *File) DeclarationAt(offset int) *parser.Node {
	var found *parser.Node
	parser.Inspect(f.Unit.Tree, func(n *parser.Node) bool {
		start, end := parser.Span(f.Unit.EndPos, n)
		if offset < start || offset >= end {
			return false
		}
		if isDeclaration(n.Kind) && f.Docs.HasComment(n) {
			found = n
		}
		return true
	})
	return found
}

// ParseFile parses content with end positions and doc comments enabled.
// Diagnostics are sorted by position.
func ParseFile(path, content string, opts ...parser.Option) *File {
	log := diag.NewLog(path)
	opts = append(append([]parser.Option(nil), opts...),
		parser.WithFile(path),
		parser.WithHandler(log),
		parser.WithDocComments(),
		parser.WithEndPositions(),
	)
	unit := parser.Parse(content, opts...)
	return &File{
		Path:        path,
		Content:     content,
		Unit:        unit,
		Docs:        javadoc.NewTable(unit.DocComments),
		Diagnostics: log.Sorted(),
	}
}

// Workspace holds the parsed Java files below a root directory. It is safe
// for concurrent use.
type Workspace struct {
	fs          afero.Fs
	root        string
	opts        []parser.Option
	concurrency int

	mu    sync.RWMutex
	files map[string]*File
}

type WorkspaceOption func(*Workspace)

// WithParserOptions passes opts to every parse.
func WithParserOptions(opts ...parser.Option) WorkspaceOption {
	return func(w *Workspace) {
		w.opts = opts
	}
}

// WithConcurrency bounds the number of files parsed at once by ScanAll.
func WithConcurrency(n int) WorkspaceOption {
	return func(w *Workspace) {
		if n > 0 {
			w.concurrency = n
		}
	}
}

func NewWorkspace(fs afero.Fs, root string, opts ...WorkspaceOption) *Workspace {
	w := &Workspace{
		fs:          fs,
		root:        root,
		concurrency: 8,
		files:       make(map[string]*File),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Workspace) Root() string {
	return w.root
}

// ScanAll parses every .java file below the root. Directories whose name
// starts with a dot are skipped.
func (w *Workspace) ScanAll(ctx context.Context) error {
	paths, err := JavaFiles(w.fs, w.root)
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(w.concurrency)
	for _, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			_, err := w.ScanFile(path)
			return err
		})
	}
	return g.Wait()
}

// ScanFile reads path and parses it.
func (w *Workspace) ScanFile(path string) (*File, error) {
	f, err := w.LoadFile(path)
	if err != nil {
		return nil, err
	}
	w.Put(f)
	return f, nil
}

// LoadFile reads and parses path without storing the result.
func (w *Workspace) LoadFile(path string) (*File, error) {
	content, err := afero.ReadFile(w.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read java file: %w", err)
	}
	return ParseFile(path, string(content), w.opts...), nil
}

// Put stores f, replacing any file with the same path.
func (w *Workspace) Put(f *File) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[f.Path] = f
}

// UpdateFile parses content as the new text of path.
func (w *Workspace) UpdateFile(path, content string) *File {
	f := ParseFile(path, content, w.opts...)
	w.Put(f)
	return f
}

func (w *Workspace) Remove(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, path)
}

// File returns the parsed file at path, or nil.
func (w *Workspace) File(path string) *File {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[path]
}

// Files returns every parsed file, ordered by path.
func (w *Workspace) Files() []*File {
	w.mu.RLock()
	files := make([]*File, 0, len(w.files))
	for _, f := range w.files {
		files = append(files, f)
	}
	w.mu.RUnlock()

	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files
}

// JavaFiles lists the .java files below root, or root itself when it is a
// file.
func JavaFiles(fs afero.Fs, root string) ([]string, error) {
	var paths []string
	err := afero.Walk(fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if path != root && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if IsJavaFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	return paths, nil
}

func IsJavaFile(path string) bool {
	return filepath.Ext(path) == ".java"
}

func isDeclaration(k parser.NodeKind) bool {
	switch k {
	case parser.KindMethodDecl, parser.KindVarDecl, parser.KindModuleDecl, parser.KindPackageDecl:
		return true
	}
	return k.IsTypeDecl()
}
