package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, id uint32)

const debounce = 150 * time.Millisecond

// Watch starts an fsnotify watcher on the directory holding storePath and
// runs syncer whenever that file changes, until ctx is cancelled. Change
// events are delivered through the syncer's OnChange callback.
//
// The directory is watched rather than the file because the store is
// replaced by rename on every write.
func Watch(ctx context.Context, syncer *Syncer, storePath string, logger *slog.Logger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(storePath)
	name := filepath.Base(storePath)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("path", storePath))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(debounce)
			fire = timer.C
			return
		}
		timer.Reset(debounce)
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-fire:
			timer, fire = nil, nil
			if _, err := syncer.Sync(); err != nil {
				logger.Warn("watcher: sync failed", slog.String("error", err.Error()))
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("watcher: store changed", slog.String("op", ev.Op.String()))
			schedule()

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
