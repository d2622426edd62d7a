// internal/fixtures/watcher.go
package fixtures

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/mwiater/ideamock/internal/logging"
)

const defaultDebounce = 250 * time.Millisecond

// ReloadFunc is told about every reload attempt.
type ReloadFunc func(path string, t ResponseType, err error)

// Watcher reloads fixture files into a Store when they change on disk.
type Watcher struct {
	store    *Store
	dir      string
	watcher  *fsnotify.Watcher
	debounce time.Duration
	onReload ReloadFunc

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// NewWatcher prepares a watcher for dir. Call Run to start it.
func NewWatcher(store *Store, dir string, onReload ReloadFunc) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fixture watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch fixture dir %s: %w", dir, err)
	}
	return &Watcher{
		store:    store,
		dir:      dir,
		watcher:  fw,
		debounce: defaultDebounce,
		onReload: onReload,
		timers:   make(map[string]*time.Timer),
	}, nil
}

// SetDebounce changes how long the watcher waits after the last event on a
// file before reloading it.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.debounce = d
}

// Run blocks, reloading changed fixture files until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()
	logging.LogEvent("[FIXTURES] watching %s", w.dir)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !IsFixtureFile(event.Name) {
				continue
			}
			w.schedule(event.Name)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			logging.LogWarn("fixture watcher: %v", err)
		}
	}
}

// schedule reloads path once events for it have been quiet for the debounce window.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.reload(path)
	})
}

func (w *Watcher) reload(path string) {
	t, err := w.store.LoadCustomFixture(path)
	if err != nil {
		logging.LogWarn("fixture reload %s: %v", path, err)
	} else {
		logging.LogEvent("[FIXTURES] reloaded %s fixtures from %s", t, path)
	}
	if w.onReload != nil {
		w.onReload(path, t, err)
	}
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for path, t := range w.timers {
		t.Stop()
		delete(w.timers, path)
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
