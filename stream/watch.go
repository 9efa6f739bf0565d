package stream

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// ConfigWatcher re-reads the config file whenever it changes and passes
// the result to reload.
type ConfigWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	reload  func(Config)
}

// NewConfigWatcher watches the directory holding path, so editors that
// replace the file on save are still seen.
func NewConfigWatcher(path string, reload func(Config)) (*ConfigWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("stream: resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("stream: create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("stream: watch %s: %w", filepath.Dir(abs), err)
	}

	cw := new(ConfigWatcher)
	cw.watcher = w
	cw.path = abs
	cw.reload = reload
	return cw, nil
}

// Run delivers reloads until ctx is done, then closes the watcher.
func (w *ConfigWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			pending = time.After(reloadDebounce)
		case <-pending:
			pending = nil
			config, err := ReadConfig(w.path)
			if err != nil {
				log.Printf("Config reload failed: %v", err)
				continue
			}
			log.Printf("Config reloaded from %s", w.path)
			w.reload(config)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("stream: watcher: %v", err)
		}
	}
}
