package images

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const rebuildDebounce = 500 * time.Millisecond

// Watcher watches an image folder and rebuilds the index when its contents
// change. The store only supports full rebuilds, so any burst of file events
// is debounced into a single IndexFolder call.
type Watcher struct {
	index    *Index
	dir      string
	debounce time.Duration
	logger   *zap.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewWatcher creates a watcher that rebuilds index from dir on changes.
func NewWatcher(index *Index, dir string, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		index:    index,
		dir:      dir,
		debounce: rebuildDebounce,
		logger:   logger,
	}
}

// Start watches the folder until ctx is cancelled. It blocks; run it in a
// goroutine when serving.
func (w *Watcher) Start(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Add(w.dir); err != nil {
		return err
	}
	w.logger.Info("watching image folder", zap.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
				w.scheduleRebuild(ctx)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if err != nil {
				w.logger.Warn("image watcher error", zap.Error(err))
			}
		}
	}
}

func (w *Watcher) scheduleRebuild(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		if _, err := w.index.IndexFolder(ctx, w.dir); err != nil {
			w.logger.Warn("image index rebuild failed", zap.String("dir", w.dir), zap.Error(err))
		}
	})
}
