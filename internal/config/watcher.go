package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hueify/hueify/internal/logging"
)

// Watcher watches a config file and reloads it on change. A reload that
// fails to parse or validate keeps the previous configuration; the watcher
// never hands the callback a broken Config.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	logger  *logging.Logger

	// Callback invoked with the new config after a successful reload
	onChange func(*Config)

	mu       sync.Mutex
	stopOnce sync.Once
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the given config file
func NewWatcher(path string, logger *logging.Logger) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the directory rather than the file itself. Editors that save
	// via rename-and-replace would otherwise detach the watch on first save.
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, err
	}

	if logger == nil {
		logger = logging.NopLogger()
	}

	return &Watcher{
		watcher: fw,
		path:    path,
		logger:  logger.WithComponent("watcher"),
		stopCh:  make(chan struct{}),
	}, nil
}

// SetChangeCallback sets the callback for successful reloads
func (w *Watcher) SetChangeCallback(cb func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = cb
}

// Start begins watching for config changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and cleans up resources
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		_ = w.watcher.Close()
	})
}

// watchLoop processes filesystem events
func (w *Watcher) watchLoop() {
	// Debounce events - many editors create multiple events for a single save
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			pending = true
			debounceTimer.Reset(100 * time.Millisecond)

		case <-debounceTimer.C:
			if !pending {
				continue
			}
			pending = false
			w.reload()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// reload attempts to load the config file and notify the callback
func (w *Watcher) reload() {
	cfg, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("config reload failed, keeping previous configuration",
			"path", w.path, "error", err)
		return
	}

	w.logger.Info("config reloaded", "path", w.path, "rules", len(cfg.Rules))

	w.mu.Lock()
	cb := w.onChange
	w.mu.Unlock()

	if cb != nil {
		cb(cfg)
	}
}
