// Package watch re-runs a callback when a file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/barun-bash/figma-to-react/internal/errors"
	"github.com/barun-bash/figma-to-react/internal/logger"
)

// DefaultDebounce coalesces the burst of events an editor save produces.
const DefaultDebounce = 200 * time.Millisecond

// File calls fn each time path is written, created or renamed into place,
// at most once per debounce period, until ctx is done. The parent
// directory is watched so atomic saves through a temporary file are seen.
// Errors returned by fn are logged and do not stop the watch.
func File(ctx context.Context, path string, debounce time.Duration, fn func() error) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return errors.Wrapf(err, "resolving %s", path)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(abs)); err != nil {
		return errors.Wrapf(err, "watching %s", filepath.Dir(abs))
	}

	log := logger.ComponentLogger("watch").With(logger.FieldPath, abs)
	log.Infow("Watching for changes")

	var timer *time.Timer
	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			log.Debugw("Change detected", "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := fn(); err != nil {
				log.Warnw("Re-run failed", logger.FieldError, err)
			}

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}
