package library

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher marks a library stale when files under its root are added, removed or renamed.
// It never touches the library itself; the owner polls Stale and rescans.
type Watcher struct {
	root      string
	recursive bool
	exts      []string
	debounce  time.Duration

	stale   atomic.Bool
	watcher *fsnotify.Watcher

	mu      sync.Mutex
	watched map[string]bool
}

// NewWatcher creates a watcher for root. Call Start to begin receiving events.
func NewWatcher(root string, opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		root:      root,
		recursive: opts.Recursive,
		exts:      NormalizeExtensions(opts.Extensions),
		debounce:  100 * time.Millisecond,
		watcher:   fw,
		watched:   make(map[string]bool),
	}

	if err := w.addRecursive(root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// Stale reports whether a relevant change was seen, and clears the flag.
func (w *Watcher) Stale() bool {
	return w.stale.Swap(false)
}

// WatchedDirs returns the number of directories under watch.
func (w *Watcher) WatchedDirs() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.watched)
}

// Start consumes filesystem events until ctx is done, then closes the watcher.
func (w *Watcher) Start(ctx context.Context) {
	go func() {
		defer func() { _ = w.watcher.Close() }()

		var debounceTimer *time.Timer
		defer func() {
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
		}()

		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				if !w.handle(event) {
					continue
				}
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(w.debounce, func() {
					slog.Debug("library marked stale", "trigger", event.Name)
					w.stale.Store(true)
				})
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				slog.Warn("watch error", "error", err)
			}
		}
	}()
}

// handle updates the watch set for directory events and reports whether
// the event can change the library contents.
func (w *Watcher) handle(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}

	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if w.recursive {
				if err := w.addRecursive(event.Name); err != nil {
					slog.Warn("failed to watch new directory", "path", event.Name, "error", err)
				}
				return true
			}
			return false
		}
	}

	if event.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		if w.removeWatch(event.Name) {
			return true
		}
	}

	return HasAudioExtension(filepath.Base(event.Name), w.exts)
}

func (w *Watcher) addWatch(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.watched[path] {
		return nil
	}
	if err := w.watcher.Add(path); err != nil {
		return err
	}
	w.watched[path] = true
	return nil
}

func (w *Watcher) removeWatch(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.watched[path] {
		return false
	}
	_ = w.watcher.Remove(path)
	delete(w.watched, path)
	return true
}

func (w *Watcher) addRecursive(root string) error {
	if !w.recursive {
		if err := w.addWatch(root); err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		return nil
	}

	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if d.IsDir() {
			if err := w.addWatch(path); err != nil {
				slog.Warn("failed to watch directory", "path", path, "error", err)
			}
		}
		return nil
	})
}
