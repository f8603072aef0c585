package watcher

import (
	"context"
	"sync"
)

// noopWatcher implements Watcher but never reports changes.
// This is used for accessors whose content cannot change, such as an opened
// archive or an in-memory file set.
type noopWatcher struct {
	results chan WatchResult
	stopCh  chan struct{}

	mu      sync.Mutex
	running bool
}

// NewNoop returns a WatcherInitializer for a Watcher that never reports
// changes. It accepts params without a fetch function.
func NewNoop() WatcherInitializer {
	return func(WatcherInitializerParams) (Watcher, error) {
		return &noopWatcher{}, nil
	}
}

// Type returns the watcher type identifier.
func (w *noopWatcher) Type() WatcherType {
	return TypeNoop
}

// Start begins the noop watcher. It emits nothing until stopped.
func (w *noopWatcher) Start(ctx context.Context) error {
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
		select {
		case <-ctx.Done():
		case <-stopCh:
		}
	}()

	return nil
}

// Stop stops the noop watcher.
func (w *noopWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.running {
		return nil
	}
	w.running = false
	close(w.stopCh)
	return nil
}

// Results returns the channel receiving watch results.
func (w *noopWatcher) Results() <-chan WatchResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
