package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fasthttp/routetable/routing"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period awaited after a change of the route
// file before reloading it.
const DefaultDebounce = 100 * time.Millisecond

// Watcher recompiles a route file whenever it changes, and hands the new
// table to a callback. A file that cannot be loaded leaves the current
// table in place.
type Watcher struct {
	path     string
	opts     routing.Options
	onReload func(*routing.Table)
	watcher  *fsnotify.Watcher

	// Debounce is the quiet period awaited before reloading.
	Debounce time.Duration

	Logger *zap.Logger
}

// NewWatcher watches the route file at path. The directory is watched
// rather than the file, since editors usually replace files on save.
func NewWatcher(path string, opts routing.Options, onReload func(*routing.Table)) (*Watcher, error) {
	if onReload == nil {
		return nil, errors.New("reload callback must not be nil")
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()

		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		path:     abs,
		opts:     opts,
		onReload: onReload,
		watcher:  fw,
		Debounce: DefaultDebounce,
		Logger:   log,
	}, nil
}

// Run dispatches file events until ctx is done or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}

			if filepath.Clean(ev.Name) != w.path || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}

			if timer == nil {
				timer = time.NewTimer(w.Debounce)
			} else {
				timer.Reset(w.Debounce)
			}

			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}

			w.Logger.Error("route file watcher failed", zap.Error(err))

		case <-fire:
			fire = nil

			if err := w.Reload(); err != nil {
				w.Logger.Error("keeping the current routing table", zap.Error(err))
			}
		}
	}
}

// Reload loads and compiles the route file now. The callback is not
// called when the file cannot be loaded.
func (w *Watcher) Reload() error {
	table, err := LoadTable(w.path, w.opts)
	if table == nil {
		return err
	}

	if err != nil {
		w.Logger.Warn("route file reloaded with skipped declarations", zap.String("path", w.path), zap.Error(err))
	} else {
		w.Logger.Info("route file reloaded", zap.String("path", w.path), zap.Int("routes", table.Len()))
	}

	w.onReload(table)

	return nil
}

// Close stops watching. Run returns once it notices.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
