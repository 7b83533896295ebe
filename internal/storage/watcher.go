package storage

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDelay debounces bursts of events produced by editors and by
// atomic rename writes.
const reloadDelay = 100 * time.Millisecond

// WatchFile watches the directory holding f's database file and reloads
// it after external edits until ctx is cancelled. cb (if non-nil) is
// called for every record that changed on disk. Writes made through f
// itself are recognised by checksum and produce no callbacks.
func WatchFile(ctx context.Context, f *JSONFile, logger *slog.Logger, cb ChangeFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	// Watch the directory, not the file: a rename over the file replaces
	// the inode and would silently end a file-level watch.
	if err := w.Add(filepath.Dir(f.Path())); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", f.Path()))

	var reloadTimer *time.Timer
	var reloadCh <-chan time.Time

	scheduleReload := func() {
		if reloadTimer == nil {
			reloadTimer = time.NewTimer(reloadDelay)
			reloadCh = reloadTimer.C
		} else {
			reloadTimer.Reset(reloadDelay)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reloadTimer != nil {
				reloadTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reloadCh:
			changes, err := f.Reload()
			if err != nil {
				logger.Warn("watcher: reload failed", slog.String("error", err.Error()))
				continue
			}
			for _, ch := range changes {
				logger.Debug("watcher: changed", slog.String("id", ch.ID), slog.String("op", ch.Kind))
				if cb != nil {
					cb(ch.Kind, ch.ID)
				}
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.Path() {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				scheduleReload()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
