// Package watcher provides change detection for watched assets.
// It supports both polling-based and subscription-based (event-driven) detection.
package watcher

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"sync"
	"time"

	"github.com/tmxkit/tiledoc/types"
)

// DefaultPollInterval is the default polling interval for change detection.
const DefaultPollInterval = 2 * time.Second

// WatcherType is an alias for types.WatcherType.
type WatcherType = types.WatcherType

// Standard watcher types.
const (
	// TypePolling is a watcher that polls at regular intervals.
	TypePolling WatcherType = "polling"

	// TypeSubscription is an event-based watcher (e.g., fsnotify).
	TypeSubscription WatcherType = "subscription"

	// TypeNoop is a watcher that never fires (for immutable accessors).
	TypeNoop WatcherType = "noop"
)

// CompareFunc compares two byte slices and returns true if they are different.
type CompareFunc func(old, new []byte) bool

// DefaultCompareFunc compares byte slices directly using bytes.Equal.
func DefaultCompareFunc(old, new []byte) bool {
	return !bytes.Equal(old, new)
}

// HashCompareFunc compares byte slices using SHA-256 hashes.
func HashCompareFunc(old, new []byte) bool {
	return sha256.Sum256(old) != sha256.Sum256(new)
}

// WatchConfig configures watcher behavior.
type WatchConfig struct {
	// PollInterval is the interval between polling attempts.
	// Only used by polling watchers.
	PollInterval time.Duration

	// CompareFunc is used to detect changes between old and new data.
	CompareFunc CompareFunc
}

// WatchConfigOption is a functional option for WatchConfig.
type WatchConfigOption func(*WatchConfig)

// WithPollInterval sets the polling interval.
func WithPollInterval(d time.Duration) WatchConfigOption {
	return func(c *WatchConfig) {
		c.PollInterval = d
	}
}

// WithCompareFunc sets the comparison function for change detection.
func WithCompareFunc(f CompareFunc) WatchConfigOption {
	return func(c *WatchConfig) {
		c.CompareFunc = f
	}
}

// NewWatchConfig creates a WatchConfig with the given options applied over
// the defaults.
func NewWatchConfig(opts ...WatchConfigOption) WatchConfig {
	cfg := WatchConfig{}
	cfg.ApplyOptions(opts...)
	cfg.ApplyDefaults()
	return cfg
}

// ApplyOptions applies the given options to the config.
func (c *WatchConfig) ApplyOptions(opts ...WatchConfigOption) {
	for _, opt := range opts {
		opt(c)
	}
}

// ApplyDefaults fills zero or negative fields with defaults.
func (c *WatchConfig) ApplyDefaults() {
	if c.PollInterval <= 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.CompareFunc == nil {
		c.CompareFunc = DefaultCompareFunc
	}
}

// WatchResult represents the result of a watch cycle.
type WatchResult struct {
	// Data is the latest data after a change.
	Data []byte

	// Error is set if the watch encountered an error.
	Error error
}

// NotifyFunc is a callback for subscription-based watchers.
// notify(nil, nil) means "something changed, fetch it".
type NotifyFunc func(data []byte, err error)

// StopFunc stops a subscription.
type StopFunc func(ctx context.Context) error

// FetchFunc fetches the current data and reports whether it differs from the
// previous fetch.
type FetchFunc func(ctx context.Context) (changed bool, data []byte, err error)

// NewFetcher builds a FetchFunc around read. initial is the baseline the
// first fetch is compared against; a nil compare uses DefaultCompareFunc.
func NewFetcher(initial []byte, read func(ctx context.Context) ([]byte, error), compare CompareFunc) FetchFunc {
	if compare == nil {
		compare = DefaultCompareFunc
	}
	last := initial
	return func(ctx context.Context) (bool, []byte, error) {
		data, err := read(ctx)
		if err != nil {
			return false, nil, err
		}
		if !compare(last, data) {
			return false, data, nil
		}
		last = data
		return true, data, nil
	}
}

// ErrFetchRequired is returned by Validate when no FetchFunc is supplied.
var ErrFetchRequired = errors.New("watcher: fetch function is required")

// WatcherInitializerParams carries what a watcher needs from its owner.
type WatcherInitializerParams struct {
	// Fetch reads the watched data and detects changes.
	Fetch FetchFunc

	// OpMu, when set, serializes fetches with the owner's own reads.
	OpMu *sync.Mutex

	// Config holds polling interval and comparison settings.
	Config WatchConfig
}

// Validate checks that the required fields are present.
func (p WatcherInitializerParams) Validate() error {
	if p.Fetch == nil {
		return ErrFetchRequired
	}
	return nil
}

// WatcherInitializer creates a Watcher once its owner supplies the params.
type WatcherInitializer func(params WatcherInitializerParams) (Watcher, error)

func wrapFetchWithMutex(fetch FetchFunc, mu *sync.Mutex) FetchFunc {
	if mu == nil {
		return fetch
	}
	return func(ctx context.Context) (bool, []byte, error) {
		mu.Lock()
		defer mu.Unlock()
		return fetch(ctx)
	}
}
