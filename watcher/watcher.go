package watcher

import "context"

// Watcher watches for changes and notifies via a channel.
// Implementations include the polling, subscription and noop watchers.
type Watcher interface {
	// Type returns the watcher type identifier.
	Type() WatcherType

	// Start begins watching for changes. Results are sent to the channel
	// returned by Results. Starting a running watcher is a no-op.
	Start(ctx context.Context) error

	// Stop stops watching and releases resources.
	// After Stop returns, no more results will be sent.
	Stop(ctx context.Context) error

	// Results returns a channel that receives watch results.
	// The channel is created by Start and closed when the watcher stops.
	// Returns nil if Start has not been called.
	Results() <-chan WatchResult
}
