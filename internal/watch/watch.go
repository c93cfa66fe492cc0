// Package watch reruns a callback when one of a set of files changes.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	log "github.com/sirupsen/logrus"
)

// DefaultDebounce is how long the watcher waits for events to settle
const DefaultDebounce = 200 * time.Millisecond

// Watcher calls OnChange whenever one of Files is written, created, renamed
// or removed. Files need not exist when Run starts; their parent directories
// are watched so editors that replace files atomically are picked up.
type Watcher struct {
	Files    []string
	Debounce time.Duration
	OnChange func()
}

// Run blocks until ctx is cancelled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	wanted := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, file := range w.Files {
		abs, err := filepath.Abs(file)
		if err != nil {
			return fmt.Errorf("invalid path %s: %w", file, err)
		}
		wanted[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	for dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("failed to watch %s: %w", dir, err)
		}
		log.WithFields(log.Fields{"dir": dir}).Debug("Watching directory")
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	// Events only reset the timer, OnChange runs once it expires
	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			name, err := filepath.Abs(event.Name)
			if err != nil || !wanted[name] {
				continue
			}
			log.WithFields(log.Fields{"file": name, "op": event.Op.String()}).Debug("Env file changed")
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithFields(log.Fields{"err": err}).Warn("Watcher error")
		case <-timer.C:
			if w.OnChange != nil {
				w.OnChange()
			}
		}
	}
}
