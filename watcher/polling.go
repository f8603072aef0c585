package watcher

import (
	"context"
	"sync"
	"time"
)

// pollingWatcher implements Watcher by calling the fetch function at a
// fixed interval.
type pollingWatcher struct {
	fetch    FetchFunc
	interval time.Duration

	results chan WatchResult
	stopCh  chan struct{}

	mu      sync.Mutex
	running bool
}

// NewPolling returns a WatcherInitializer that creates a polling Watcher.
// The params' Fetch is called every Config.PollInterval; a result is sent
// only when it reports a change or an error.
func NewPolling() WatcherInitializer {
	return func(params WatcherInitializerParams) (Watcher, error) {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		cfg := params.Config
		cfg.ApplyDefaults()
		return &pollingWatcher{
			fetch:    wrapFetchWithMutex(params.Fetch, params.OpMu),
			interval: cfg.PollInterval,
		}, nil
	}
}

// Type returns the watcher type identifier.
func (w *pollingWatcher) Type() WatcherType {
	return TypePolling
}

// Start begins polling. The first poll happens after one interval.
func (w *pollingWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.results = make(chan WatchResult)
	w.stopCh = make(chan struct{})
	results, stopCh := w.results, w.stopCh
	w.mu.Unlock()

	go func() {
		defer close(results)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			}

			changed, data, err := w.fetch(ctx)
			if err == nil && !changed {
				continue
			}
			select {
			case results <- WatchResult{Data: data, Error: err}:
			case <-ctx.Done():
				return
			case <-stopCh:
				return
			}
		}
	}()

	return nil
}

// Stop stops polling.
func (w *pollingWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)
	return nil
}

// Results returns the channel receiving poll results.
func (w *pollingWatcher) Results() <-chan WatchResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
