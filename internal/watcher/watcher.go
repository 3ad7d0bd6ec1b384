// Package watcher notices when another process rewrites the flat data files
// so a running server can re-read them without a restart.
package watcher

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// dataFiles are the files the server mirrors from the data directory. The
// stores write them via a temp file plus rename, so a matching event only
// fires once the new content is fully in place.
var dataFiles = map[string]bool{
	"tasks.json":    true,
	"task_log.csv":  true,
	"favorites.csv": true,
}

// Watch watches dir and calls reload with the base name of each data file
// that changes, until ctx is cancelled. Reload runs on the watcher's
// goroutine; callers hand off to their own locking. Watcher errors are
// non-fatal.
func Watch(ctx context.Context, dir string, reload func(name string)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name := filepath.Base(event.Name)
			if !dataFiles[name] {
				continue
			}
			reload(name)

		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
			// Keep watching.
		}
	}
}
