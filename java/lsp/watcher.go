package lsp

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 500 * time.Millisecond

// Watcher reports changed .java files below a directory. Events are
// debounced: the callback receives every path changed since the last call
// once no event arrived for the debounce delay.
type Watcher struct {
	watcher  *fsnotify.Watcher
	callback func(paths []string)
	delay    time.Duration
	done     chan struct{}
	stopOnce sync.Once
}

// NewWatcher watches root and its subdirectories, except those whose
// name starts with a dot.
func NewWatcher(root string, callback func(paths []string)) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		watcher:  watcher,
		callback: callback,
		delay:    debounceDelay,
		done:     make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("failed to watch %s: %w", root, err)
	}
	if !info.IsDir() {
		root = filepath.Dir(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch directory: %w", err)
		}
		return nil
	})
}

// Start delivers events in a new goroutine until Stop is called.
func (w *Watcher) Start() {
	go w.loop(w.watcher.Events, w.watcher.Errors)
}

// Stop ends event delivery. Calls after the first return nil.
func (w *Watcher) Stop() error {
	var err error
	w.stopOnce.Do(func() {
		close(w.done)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) loop(events <-chan fsnotify.Event, errs <-chan error) {
	debounceTimer := time.NewTimer(w.delay)
	debounceTimer.Stop()
	var debounceCh <-chan time.Time
	pending := make(map[string]struct{})

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Create) && w.watcher != nil {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := w.addTree(event.Name); err != nil {
						logger.Warningf("%s", err)
					}
					continue
				}
			}
			if !IsJavaFile(event.Name) || event.Op == fsnotify.Chmod {
				continue
			}
			pending[event.Name] = struct{}{}
			debounceTimer.Reset(w.delay)
			debounceCh = debounceTimer.C

		case <-debounceCh:
			paths := make([]string, 0, len(pending))
			for path := range pending {
				paths = append(paths, path)
			}
			sort.Strings(paths)
			clear(pending)
			debounceCh = nil
			w.callback(paths)

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Errorf("watch error: %s", err)

		case <-w.done:
			debounceTimer.Stop()
			return
		}
	}
}
