package toolset

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the preset at path whenever the file is written or created,
// and passes the result to fn. A file renamed into place arrives as Create. The directory is watched
// rather than the file so editors that replace files atomically still
// trigger a reload. fn runs on the watcher goroutine. Watching stops when
// ctx is done.
func Watch(ctx context.Context, path string, fn func(*Preset, error)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch presets: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return fmt.Errorf("watch presets: %w", err)
	}
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if reloads(ev, abs) {
					fn(Load(abs))
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				fn(nil, err)
			}
		}
	}()
	return nil
}

// reloads reports whether ev leaves a new version of the file at abs. Rename
// is reported for the old name after the file has moved away, so it is
// skipped.
func reloads(ev fsnotify.Event, abs string) bool {
	if filepath.Clean(ev.Name) != abs {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)
}
