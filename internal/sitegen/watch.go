package sitegen

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long a burst of file events is collapsed for.
const DefaultDebounce = 300 * time.Millisecond

// Watcher calls Rebuild after changes to the watched files or directories.
type Watcher struct {
	Rebuild  func(ctx context.Context) error
	Debounce time.Duration
	Logger   *zap.Logger

	paths []string
}

// NewWatcher watches paths. A file path watches that file only, a directory
// path everything inside it.
func NewWatcher(rebuild func(ctx context.Context) error, logger *zap.Logger, paths ...string) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{Rebuild: rebuild, Debounce: DefaultDebounce, Logger: logger, paths: paths}
}

// Run blocks until ctx is done. Rebuild errors are logged, not returned.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dirs := make(map[string]bool)
	files := make(map[string]bool)
	for _, p := range w.paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			return err
		}
		info, err := os.Stat(abs)
		switch {
		case err == nil && info.IsDir():
			dirs[abs] = true
		case err == nil || os.IsNotExist(err):
			files[abs] = true
			abs = filepath.Dir(abs)
		default:
			return fmt.Errorf("stat %s: %w", p, err)
		}
		if err := fw.Add(abs); err != nil {
			return fmt.Errorf("watch %s: %w", abs, err)
		}
	}

	relevant := func(ev fsnotify.Event) bool {
		if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
			return false
		}
		name, err := filepath.Abs(ev.Name)
		if err != nil {
			return false
		}
		return files[name] || dirs[filepath.Dir(name)]
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	w.Logger.Info("watching for changes", zap.Strings("paths", w.paths))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if relevant(ev) {
				w.Logger.Debug("change detected", zap.String("path", ev.Name), zap.String("op", ev.Op.String()))
				timer.Reset(debounce)
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Warn("watch error", zap.Error(err))
		case <-timer.C:
			if err := w.Rebuild(ctx); err != nil {
				w.Logger.Error("rebuild failed", zap.Error(err))
				continue
			}
			w.Logger.Info("rebuild finished")
		}
	}
}
