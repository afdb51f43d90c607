package registry

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads the registry when the roster file changes on disk.
// Editors save with write+rename, so the parent directory is watched and
// events are debounced before triggering a reload.
type Watcher struct {
	registry    *Registry
	rosterPath  string
	debounceDur time.Duration

	// OnReload, if set, is called after every reload attempt with the
	// result or error. Used by the CLI to narrate reloads.
	OnReload func(*LoadResult, error)
}

// NewWatcher creates a watcher for the given roster path.
func NewWatcher(reg *Registry, rosterPath string) *Watcher {
	return &Watcher{
		registry:    reg,
		rosterPath:  rosterPath,
		debounceDur: 500 * time.Millisecond,
	}
}

// Run watches until ctx is canceled. Reload failures keep the previous
// snapshot and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.Add(filepath.Dir(w.rosterPath)); err != nil {
		return err
	}

	var timer *time.Timer
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.rosterPath) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounceDur, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})

		case <-fire:
			res, err := w.registry.Reload()
			if w.OnReload != nil {
				w.OnReload(res, err)
			}

		case _, ok := <-fw.Errors:
			if !ok {
				return nil
			}
		}
	}
}
