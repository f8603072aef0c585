package watcher

import (
	"context"
	"sync"
)

// SubscriptionHandler defines the interface for subscription-based change detection.
// Implementations register for notifications and call notify when data changes.
type SubscriptionHandler interface {
	// Subscribe starts receiving change notifications.
	// Returns a StopFunc to unsubscribe, or an error if subscription failed.
	Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error)
}

// SubscriptionHandlerFunc is a function that implements SubscriptionHandler.
type SubscriptionHandlerFunc func(ctx context.Context, notify NotifyFunc) (StopFunc, error)

// Subscribe implements SubscriptionHandler.
func (f SubscriptionHandlerFunc) Subscribe(ctx context.Context, notify NotifyFunc) (StopFunc, error) {
	return f(ctx, notify)
}

// subscriptionWatcher implements Watcher using subscriptions.
type subscriptionWatcher struct {
	handler SubscriptionHandler
	fetch   FetchFunc

	results chan WatchResult
	stopCh  chan struct{}
	stopFn  StopFunc

	mu      sync.Mutex
	running bool

	// sendMu guards sends on results against the close in Stop.
	sendMu sync.Mutex
	closed bool
}

// NewSubscription returns a WatcherInitializer that creates a subscription-based Watcher.
//
// When the handler notifies with (nil, nil) the watcher calls params.Fetch
// and forwards the data only if Fetch reports a change.
func NewSubscription(handler SubscriptionHandler) WatcherInitializer {
	return func(params WatcherInitializerParams) (Watcher, error) {
		if err := params.Validate(); err != nil {
			return nil, err
		}
		return &subscriptionWatcher{
			handler: handler,
			fetch:   wrapFetchWithMutex(params.Fetch, params.OpMu),
		}, nil
	}
}

// Type returns the watcher type identifier.
func (w *subscriptionWatcher) Type() WatcherType {
	return TypeSubscription
}

// Start begins the subscription.
func (w *subscriptionWatcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = true
	w.results = make(chan WatchResult)
	w.stopCh = make(chan struct{})
	w.closed = false
	results, stopCh := w.results, w.stopCh
	w.mu.Unlock()

	notify := func(data []byte, err error) {
		if data == nil && err == nil {
			changed, fetched, fetchErr := w.fetch(ctx)
			if !changed && fetchErr == nil {
				return
			}
			data, err = fetched, fetchErr
		}

		w.sendMu.Lock()
		defer w.sendMu.Unlock()
		if w.closed {
			return
		}
		select {
		case results <- WatchResult{Data: data, Error: err}:
		case <-ctx.Done():
		case <-stopCh:
		}
	}

	stop, err := w.handler.Subscribe(ctx, notify)
	if err != nil {
		w.mu.Lock()
		w.running = false
		close(w.stopCh)
		w.mu.Unlock()
		w.closeResults()
		return err
	}

	w.mu.Lock()
	w.stopFn = stop
	w.mu.Unlock()

	return nil
}

// Stop stops the subscription and closes the results channel.
func (w *subscriptionWatcher) Stop(ctx context.Context) error {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		return nil
	}
	w.running = false
	close(w.stopCh)
	stop := w.stopFn
	w.stopFn = nil
	w.mu.Unlock()

	var err error
	if stop != nil {
		err = stop(ctx)
	}
	w.closeResults()
	return err
}

func (w *subscriptionWatcher) closeResults() {
	w.sendMu.Lock()
	defer w.sendMu.Unlock()
	if !w.closed {
		w.closed = true
		close(w.results)
	}
}

// Results returns the channel receiving subscription results.
func (w *subscriptionWatcher) Results() <-chan WatchResult {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.results
}
