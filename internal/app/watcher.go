package app

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/envclean/pkg/log"
)

// DefaultDebounce is the delay between the last change event and a run.
const DefaultDebounce = 100 * time.Millisecond

// ReportHandler receives the report of every successful watch run.
type ReportHandler func(Report)

// Watcher re-runs a Cleaner whenever its document is written or created.
// Runs use ModeWriteChanged, so the watcher's own writes settle after one
// extra no-op run.
type Watcher struct {
	cleaner  *Cleaner
	delay    time.Duration
	logger   log.Logger
	onReport ReportHandler

	mu       sync.Mutex
	debounce *time.Timer

	runMu sync.Mutex
}

// WatcherOption configures a Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the debounce delay.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.delay = d
		}
	}
}

// WithWatchLogger sets the watcher's logger.
func WithWatchLogger(logger log.Logger) WatcherOption {
	return func(w *Watcher) {
		w.logger = logger
	}
}

// WithReportHandler is called after every successful run.
func WithReportHandler(h ReportHandler) WatcherOption {
	return func(w *Watcher) {
		w.onReport = h
	}
}

func NewWatcher(cleaner *Cleaner, opts ...WatcherOption) *Watcher {
	w := &Watcher{
		cleaner: cleaner,
		delay:   DefaultDebounce,
		logger:  log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run cleans the document once, then watches its directory until ctx is
// done. The first run must succeed; later failures are logged and the
// watcher keeps going.
func (w *Watcher) Run(ctx context.Context) error {
	path := w.cleaner.Path()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so editors that replace the file are still seen.
	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	if err := w.run(ctx); err != nil {
		return err
	}
	w.logger.Info("watching for changes", log.String("path", path))

	name := filepath.Base(path)
	defer w.stopDebounce()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			w.schedule(ctx)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", log.Err(err))
		}
	}
}

func (w *Watcher) schedule(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.delay, func() {
		if ctx.Err() != nil {
			return
		}
		if err := w.run(ctx); err != nil {
			w.logger.Error("clean failed", log.String("path", w.cleaner.Path()), log.Err(err))
		}
	})
}

func (w *Watcher) stopDebounce() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
}

func (w *Watcher) run(ctx context.Context) error {
	w.runMu.Lock()
	defer w.runMu.Unlock()

	report, err := w.cleaner.Clean(ctx, ModeWriteChanged)
	if err != nil {
		return err
	}
	if w.onReport != nil {
		w.onReport(report)
	}
	return nil
}
