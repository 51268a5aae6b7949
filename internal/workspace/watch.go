package workspace

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// WatchDebounce is the minimum interval between two refresh signals.
const WatchDebounce = 600 * time.Millisecond

// Watcher signals file changes below a workspace root.
// Checkout database writes are ignored: Fossil itself touches them on
// every status query, which would loop refreshes.
type Watcher struct {
	root        string
	ignore      *IgnoreMatcher
	logf        func(string, ...any)
	started     bool
	waiting     bool
	events      chan struct{}
	done        chan struct{}
	mu          sync.Mutex
	paths       map[string]struct{}
	watcher     *fsnotify.Watcher
	lastRefresh time.Time
}

// NewWatcher creates a watcher for root. Paths matched by ignore are not watched.
func NewWatcher(root string, ignore *IgnoreMatcher, logf func(string, ...any)) *Watcher {
	return &Watcher{
		root:   filepath.Clean(root),
		ignore: ignore,
		logf:   logf,
	}
}

// Start registers every directory below the root and starts the event loop.
// It returns false when the watcher was already running.
func (w *Watcher) Start() (bool, error) {
	if w.started {
		return false, nil
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return false, err
	}

	w.started = true
	w.watcher = watcher
	w.events = make(chan struct{}, 1)
	w.done = make(chan struct{})
	w.paths = make(map[string]struct{})
	w.addWatchTree(w.root)

	go w.run()
	return true, nil
}

// Stop stops the event loop and releases the fsnotify watcher.
func (w *Watcher) Stop() {
	if !w.started {
		return
	}
	close(w.done)
	w.started = false
	if w.watcher != nil {
		_ = w.watcher.Close()
	}
}

// Started reports whether the watcher is running.
func (w *Watcher) Started() bool {
	return w.started
}

// NextEvent returns the event channel unless a receiver is already waiting.
func (w *Watcher) NextEvent() <-chan struct{} {
	if w.events == nil || w.waiting {
		return nil
	}
	w.waiting = true
	return w.events
}

// Done is closed when the watcher stops.
func (w *Watcher) Done() <-chan struct{} {
	return w.done
}

// ResetWaiting clears the waiting flag after an event was received.
func (w *Watcher) ResetWaiting() {
	w.waiting = false
}

// ShouldRefresh applies the debounce window.
func (w *Watcher) ShouldRefresh(now time.Time) bool {
	if !w.lastRefresh.IsZero() && now.Sub(w.lastRefresh) < WatchDebounce {
		return false
	}
	w.lastRefresh = now
	return true
}

// Touch records a refresh that happened for another reason, so events
// caused by it fall inside the debounce window.
func (w *Watcher) Touch(now time.Time) {
	w.lastRefresh = now
}

// Signal queues a change notification; extra signals coalesce.
func (w *Watcher) Signal() {
	select {
	case <-w.done:
		return
	default:
	}
	select {
	case w.events <- struct{}{}:
	default:
	}
}

// Relevant reports whether a change at p should trigger a refresh.
func (w *Watcher) Relevant(p string) bool {
	rel, err := filepath.Rel(w.root, p)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if !strings.Contains(rel, "/") {
		for _, base := range []string{CheckoutFile, LegacyCheckoutFile} {
			if strings.HasPrefix(rel, base) {
				return false
			}
		}
	}
	return !w.ignore.Match(rel)
}

func (w *Watcher) run() {
	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !w.Relevant(event.Name) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.maybeWatchNewDir(event.Name)
			}
			w.Signal()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.debugf("workspace watcher error: %v", err)
		}
	}
}

func (w *Watcher) maybeWatchNewDir(p string) {
	info, err := os.Stat(p)
	if err != nil || !info.IsDir() {
		return
	}
	w.addWatchTree(p)
}

func (w *Watcher) addWatchDir(p string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.paths[p]; ok {
		return
	}
	if err := w.watcher.Add(p); err != nil {
		w.debugf("workspace watcher add failed for %s: %v", p, err)
		return
	}
	w.paths[p] = struct{}{}
}

func (w *Watcher) addWatchTree(root string) {
	_ = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		if p != w.root && !w.Relevant(p) {
			return filepath.SkipDir
		}
		w.addWatchDir(p)
		return nil
	})
}

func (w *Watcher) debugf(format string, args ...any) {
	if w.logf == nil {
		return
	}
	w.logf(format, args...)
}
