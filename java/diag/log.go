package diag

import (
	"fmt"
	"sort"
	"sync"
)

type logKey struct {
	file string
	pos  int
}

// Log collects diagnostics. It is safe for concurrent use. Errors reported
// at a position that already has an error are dropped, so a cascade of
// recovery reports at one token produces a single message.
type Log struct {
	mu          sync.Mutex
	file        string
	diagnostics []Diagnostic
	seen        map[logKey]struct{}
}

// NewLog creates an empty log. Diagnostics reported without a file name are
// attributed to file.
func NewLog(file string) *Log {
	return &Log{
		file: file,
		seen: make(map[logKey]struct{}),
	}
}

func (l *Log) Report(d Diagnostic) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if d.File == "" {
		d.File = l.file
	}
	if d.Severity == Error && d.Pos != NoPos {
		key := logKey{file: d.File, pos: d.Pos}
		if _, dup := l.seen[key]; dup {
			return
		}
		l.seen[key] = struct{}{}
	}
	l.diagnostics = append(l.diagnostics, d)
}

// Diagnostics returns every recorded diagnostic in report order.
func (l *Log) Diagnostics() []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Diagnostic, len(l.diagnostics))
	copy(out, l.diagnostics)
	return out
}

// Sorted returns the diagnostics ordered by file and position.
func (l *Log) Sorted() []Diagnostic {
	out := l.Diagnostics()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Pos < out[j].Pos
	})
	return out
}

func (l *Log) Errors() []Diagnostic {
	return l.filter(Error)
}

func (l *Log) Warnings() []Diagnostic {
	return l.filter(Warning)
}

func (l *Log) filter(s Severity) []Diagnostic {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []Diagnostic
	for _, d := range l.diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

// HasErrors reports whether at least one error was recorded.
func (l *Log) HasErrors() bool {
	return len(l.Errors()) > 0
}

// Result returns an error if the log holds errors, otherwise nil.
func (l *Log) Result() error {
	if n := len(l.Errors()); n > 0 {
		if l.file != "" {
			return fmt.Errorf("%s: %d syntax errors", l.file, n)
		}
		return fmt.Errorf("%d syntax errors", n)
	}
	return nil
}

// Deferred buffers diagnostics until the caller decides what to do with
// them.
type Deferred struct {
	mu          sync.Mutex
	diagnostics []Diagnostic
}

func (d *Deferred) Report(diag Diagnostic) {
	d.mu.Lock()
	d.diagnostics = append(d.diagnostics, diag)
	d.mu.Unlock()
}

func (d *Deferred) Diagnostics() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Diagnostic, len(d.diagnostics))
	copy(out, d.diagnostics)
	return out
}

// HasErrors reports whether an error-severity diagnostic is buffered.
func (d *Deferred) HasErrors() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, diag := range d.diagnostics {
		if diag.Severity == Error {
			return true
		}
	}
	return false
}

// Flush sends the buffered diagnostics to h and empties the buffer.
func (d *Deferred) Flush(h Handler) {
	for _, diag := range d.take() {
		h.Report(diag)
	}
}

// Discard empties the buffer.
func (d *Deferred) Discard() {
	d.take()
}

func (d *Deferred) take() []Diagnostic {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := d.diagnostics
	d.diagnostics = nil
	return out
}
