// Package watch reports trace files that were rewritten on disk, so a pane
// can reload while a solver is still producing its trace.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"mazereplay/internal/eventbus"
)

// DefaultDebounce is how long a file has to stay quiet before it is reported
const DefaultDebounce = 200 * time.Millisecond

// Watcher publishes TraceChangedEvent for watched files that were written
// or created. The parent directories are watched rather than the files, so
// a file replaced through a rename is still noticed.
type Watcher struct {
	bus      eventbus.EventBus
	watcher  *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	files  map[string]string // absolute path -> path as given
	dirs   map[string]struct{}
	timers map[string]*time.Timer

	done     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// New creates a watcher for the given trace files. Call Start to begin.
func New(bus eventbus.EventBus, paths []string, debounce time.Duration) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		bus:      bus,
		watcher:  fw,
		debounce: debounce,
		files:    make(map[string]string),
		dirs:     make(map[string]struct{}),
		timers:   make(map[string]*time.Timer),
		done:     make(chan struct{}),
	}

	for _, p := range paths {
		if err := w.Add(p); err != nil {
			fw.Close()
			return nil, err
		}
	}
	return w, nil
}

// Add starts watching another trace file
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[abs] = path
	dir := filepath.Dir(abs)
	if _, ok := w.dirs[dir]; ok {
		return nil
	}
	if err := w.watcher.Add(dir); err != nil {
		delete(w.files, abs)
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	w.dirs[dir] = struct{}{}
	return nil
}

// Start processes file events until ctx is cancelled or Stop is called
func (w *Watcher) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			select {
			case <-ctx.Done():
				w.Stop()
				return
			case <-w.done:
				return
			case event, ok := <-w.watcher.Events:
				if !ok {
					return
				}
				w.handle(event)
			case err, ok := <-w.watcher.Errors:
				if !ok {
					return
				}
				log.Printf("Watcher error: %v", err)
			}
		}
	}()
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	orig, ok := w.files[abs]
	if !ok {
		return
	}
	if t, ok := w.timers[abs]; ok {
		t.Reset(w.debounce)
		return
	}
	w.timers[abs] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, abs)
		w.mu.Unlock()

		select {
		case <-w.done:
			return
		default:
		}
		log.Printf("Trace changed on disk: %s", orig)
		w.bus.Publish(eventbus.TraceChangedEvent{Path: orig})
	})
}

// Stop stops watching; pending reports are dropped
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.done)
		w.mu.Lock()
		for path, t := range w.timers {
			t.Stop()
			delete(w.timers, path)
		}
		w.mu.Unlock()
		w.watcher.Close()
	})
}

// Wait blocks until the event loop has exited
func (w *Watcher) Wait() {
	w.wg.Wait()
}
