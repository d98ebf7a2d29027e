package configsource

import (
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher monitors configuration files (judgment matrices, hierarchies,
// scales, scenario profiles) and triggers a callback when one changes, so a
// long-running caller can invalidate solved weights.
type Watcher struct {
	watcher    *fsnotify.Watcher
	callback   func(path string)
	debounce   time.Duration
	lastChange map[string]time.Time
	mu         sync.Mutex
	done       chan struct{}
	logger     func(msg string)
}

// WatcherOptions configures the config watcher.
type WatcherOptions struct {
	// Debounce is the minimum time between callbacks for the same file.
	// Default: 100ms
	Debounce time.Duration
	// Logger receives diagnostic messages. Default: discard
	Logger func(msg string)
}

// DefaultWatcherOptions returns sensible default watcher options.
func DefaultWatcherOptions() WatcherOptions {
	return WatcherOptions{
		Debounce: 100 * time.Millisecond,
		Logger:   func(string) {},
	}
}

// NewWatcher creates a watcher over the given config file paths. The
// callback receives the changed path after debouncing.
func NewWatcher(paths []string, callback func(path string), opts WatcherOptions) (*Watcher, error) {
	if opts.Logger == nil {
		opts.Logger = func(string) {}
	}
	if opts.Debounce == 0 {
		opts.Debounce = 100 * time.Millisecond
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}

	w := &Watcher{
		watcher:    fsw,
		callback:   callback,
		debounce:   opts.Debounce,
		lastChange: make(map[string]time.Time),
		done:       make(chan struct{}),
		logger:     opts.Logger,
	}

	for _, path := range paths {
		if err := fsw.Add(path); err != nil {
			w.logger(fmt.Sprintf("cannot watch %s: %v", path, err))
			continue
		}
		w.logger(fmt.Sprintf("watching %s", path))
	}
	return w, nil
}

// Start begins watching on a background goroutine.
func (w *Watcher) Start() {
	go w.run()
}

// Stop ends watching and releases the underlying watcher.
func (w *Watcher) Stop() {
	close(w.done)
	w.watcher.Close()
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
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			w.mu.Lock()
			last := w.lastChange[event.Name]
			now := time.Now()
			if now.Sub(last) < w.debounce {
				w.mu.Unlock()
				continue
			}
			w.lastChange[event.Name] = now
			w.mu.Unlock()

			w.logger(fmt.Sprintf("config changed: %s", event.Name))
			if w.callback != nil {
				w.callback(event.Name)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger(fmt.Sprintf("watcher error: %v", err))
		}
	}
}
