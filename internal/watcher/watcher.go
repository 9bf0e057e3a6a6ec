// Package watcher re-runs a corpus action when package files change.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mvp-joe/dtxscan/internal/dtsx"
)

// debounceTime is the quiet period after the last event before the
// callback fires; designers save packages in bursts.
const debounceTime = 500 * time.Millisecond

// Watcher watches corpus roots recursively and invokes a callback with
// the set of changed package files after each quiet period.
type Watcher struct {
	fs    *fsnotify.Watcher
	roots []string

	mu      sync.Mutex
	pending map[string]bool
	timer   *time.Timer
}

// New sets up recursive watches on every directory under the roots.
// Non-directory roots are watched via their parent directory.
func New(roots []string) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{fs: fs, roots: roots, pending: make(map[string]bool)}
	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			fs.Close()
			return nil, err
		}
		if !info.IsDir() {
			root = filepath.Dir(root)
		}
		if err := w.addRecursive(root); err != nil {
			fs.Close()
			return nil, err
		}
	}
	return w, nil
}

// Run blocks until ctx is cancelled, invoking callback with the changed
// package files after each debounce window.
func (w *Watcher) Run(ctx context.Context, callback func(changed []string)) error {
	defer w.fs.Close()
	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event, fire)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			// Watch errors are transient (e.g. a directory vanished
			// mid-walk); the next event cycle re-syncs.
		case <-fire:
			callback(w.takePending())
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event, fire chan struct{}) {
	// New directories need their own watches.
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			w.addRecursive(event.Name)
			return
		}
	}
	if !strings.EqualFold(filepath.Ext(event.Name), dtsx.Extension) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending[event.Name] = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(debounceTime, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (w *Watcher) takePending() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	changed := make([]string, 0, len(w.pending))
	for path := range w.pending {
		changed = append(changed, path)
	}
	w.pending = make(map[string]bool)
	return changed
}

func (w *Watcher) addRecursive(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.fs.Add(path)
		}
		return nil
	})
}
