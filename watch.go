package tiledoc

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/watcher"
)

// WatchConfig configures the Watch behavior.
type WatchConfig struct {
	// DebounceDelay is the delay to wait for additional changes before rebuilding.
	// Editors often write a file in several steps; this batches them.
	// Default: 100ms
	DebounceDelay time.Duration

	// WatcherOpts are applied to the WatchConfig of the accessor's watcher.
	WatcherOpts []watcher.WatchConfigOption
}

// DefaultWatchConfig returns the default watch configuration.
func DefaultWatchConfig() WatchConfig {
	return WatchConfig{
		DebounceDelay: 100 * time.Millisecond,
		WatcherOpts: []watcher.WatchConfigOption{
			watcher.WithPollInterval(watcher.DefaultPollInterval),
		},
	}
}

// Watch resolves path once and rebuilds its document whenever the file
// changes, passing each result to fn. fn receives nil when a rebuild fails;
// the failure has been reported. fn is called from a single goroutine.
//
// Accessors that do not implement source.WatchableAccessor return
// source.ErrWatchNotSupported.
//
// Example:
//
//	stop, err := d.Watch(ctx, "maps/level1.tmj", func(doc *document.Document) {
//	  if doc != nil {
//	    reload(doc)
//	  }
//	})
//	if err != nil {
//	  log.Fatal(err)
//	}
//	defer stop(context.Background())
func (d *Dispatcher) Watch(ctx context.Context, path string, fn func(*document.Document)) (stop func(context.Context) error, err error) {
	wa, ok := d.acc.(source.WatchableAccessor)
	if !ok {
		return nil, source.ErrWatchNotSupported
	}

	resolved, err := d.resolve(ctx, path)
	if err != nil {
		return nil, err
	}

	init, err := wa.Watch(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher for %q: %w", path, err)
	}

	read := func(ctx context.Context) ([]byte, error) {
		return source.ReadAll(ctx, d.acc, resolved)
	}
	initial, err := read(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", path, err)
	}

	cfg := watcher.NewWatchConfig(d.watchCfg.WatcherOpts...)
	var opMu sync.Mutex
	w, err := init(watcher.WatcherInitializerParams{
		Fetch:  watcher.NewFetcher(initial, read, cfg.CompareFunc),
		OpMu:   &opMu,
		Config: cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher for %q: %w", path, err)
	}

	watchCtx, watchCancel := context.WithCancel(ctx)
	if err := w.Start(watchCtx); err != nil {
		watchCancel()
		return nil, fmt.Errorf("failed to start watcher for %q: %w", path, err)
	}

	go d.watchLoop(watchCtx, path, w.Results(), fn)

	var once sync.Once
	stop = func(stopCtx context.Context) error {
		var stopErr error
		once.Do(func() {
			watchCancel()
			if err := w.Stop(stopCtx); err != nil {
				stopErr = fmt.Errorf("failed to stop watcher for %q: %w", path, err)
			}
		})
		return stopErr
	}
	return stop, nil
}

// watchLoop rebuilds after each debounced change.
func (d *Dispatcher) watchLoop(ctx context.Context, path string, results <-chan watcher.WatchResult, fn func(*document.Document)) {
	var debounceTimer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return

		case result, ok := <-results:
			if !ok {
				return
			}
			if result.Error != nil {
				d.reporter.Report(Diagnostic{
					Kind:    KindWatchFailure,
					Path:    path,
					Message: fmt.Sprintf("failed to watch %q: %v", path, result.Error),
					Err:     result.Error,
				})
				continue
			}
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(d.watchCfg.DebounceDelay)
			fire = debounceTimer.C

		case <-fire:
			fire = nil
			doc := d.Build(ctx, path)
			if ctx.Err() != nil {
				return
			}
			fn(doc)
		}
	}
}
