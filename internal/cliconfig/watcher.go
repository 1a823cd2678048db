package cliconfig

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher watches a config file for changes and reapplies it to a live
// Config, so a running agent can pick up edits (for example, a raised
// verbose flag) without a restart. Flag-set fields are left untouched on
// every reload, mirroring ApplyFileConfig's own precedence rule.
type ConfigWatcher struct {
	path    string
	cfg     *Config
	changed map[string]bool

	mu       sync.Mutex
	debounce *time.Timer
}

// NewConfigWatcher creates a watcher that reloads path into cfg on change,
// respecting changed (the set of flags the user passed explicitly).
func NewConfigWatcher(path string, cfg *Config, changed map[string]bool) *ConfigWatcher {
	return &ConfigWatcher{path: path, cfg: cfg, changed: changed}
}

// Run blocks until ctx is canceled, reloading the config file into cfg on
// every write or create event and invoking onReload afterward.
func (w *ConfigWatcher) Run(ctx context.Context, onReload func()) error {
	if w.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.debounceReload(150*time.Millisecond, onReload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("config watcher")
		}
	}
}

func (w *ConfigWatcher) debounceReload(delay time.Duration, onReload func()) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(delay, func() {
		fc, err := LoadFileConfig(w.path)
		if err != nil {
			logger.Warn().Err(err).Msg("config watcher: reload")
			return
		}
		if err := ApplyFileConfig(w.cfg, fc, w.changed); err != nil {
			logger.Warn().Err(err).Msg("config watcher: apply")
			return
		}
		if onReload != nil {
			onReload()
		}
	})
}
