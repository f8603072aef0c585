package watcher_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/tmxkit/tiledoc/watcher"
)

func TestDefaultCompareFunc(t *testing.T) {
	tests := []struct {
		name     string
		old      []byte
		new      []byte
		expected bool
	}{
		{"different", []byte("old"), []byte("new"), true},
		{"same", []byte("same"), []byte("same"), false},
		{"empty both", []byte{}, []byte{}, false},
		{"nil old", nil, []byte("new"), true},
		{"nil both", nil, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := watcher.DefaultCompareFunc(tt.old, tt.new); got != tt.expected {
				t.Errorf("DefaultCompareFunc(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.expected)
			}
			if got := watcher.HashCompareFunc(tt.old, tt.new); got != tt.expected {
				t.Errorf("HashCompareFunc(%q, %q) = %v, want %v", tt.old, tt.new, got, tt.expected)
			}
		})
	}
}

func TestNewWatchConfig(t *testing.T) {
	cfg := watcher.NewWatchConfig()
	if cfg.PollInterval != watcher.DefaultPollInterval {
		t.Errorf("PollInterval = %v, want %v", cfg.PollInterval, watcher.DefaultPollInterval)
	}
	if cfg.CompareFunc == nil {
		t.Error("CompareFunc = nil, want default")
	}

	cfg = watcher.NewWatchConfig(
		watcher.WithPollInterval(5*time.Millisecond),
		watcher.WithCompareFunc(func(_, _ []byte) bool { return true }),
	)
	if cfg.PollInterval != 5*time.Millisecond {
		t.Errorf("PollInterval = %v, want 5ms", cfg.PollInterval)
	}
	if !cfg.CompareFunc([]byte("same"), []byte("same")) {
		t.Error("custom CompareFunc was replaced")
	}

	cfg = watcher.WatchConfig{PollInterval: -time.Second}
	cfg.ApplyDefaults()
	if cfg.PollInterval != watcher.DefaultPollInterval {
		t.Errorf("ApplyDefaults() PollInterval = %v, want default", cfg.PollInterval)
	}
}

func TestNewFetcher(t *testing.T) {
	var current atomic.Value
	current.Store([]byte("v1"))
	read := func(context.Context) ([]byte, error) {
		return current.Load().([]byte), nil
	}
	fetch := watcher.NewFetcher([]byte("v1"), read, nil)

	changed, _, err := fetch(context.Background())
	if err != nil || changed {
		t.Fatalf("fetch() = %v, %v; want unchanged against baseline", changed, err)
	}

	current.Store([]byte("v2"))
	changed, data, err := fetch(context.Background())
	if err != nil || !changed || string(data) != "v2" {
		t.Fatalf("fetch() = %v, %q, %v; want changed v2", changed, data, err)
	}

	changed, _, _ = fetch(context.Background())
	if changed {
		t.Error("fetch() reported change twice for the same data")
	}

	readErr := errors.New("gone")
	fetch = watcher.NewFetcher(nil, func(context.Context) ([]byte, error) { return nil, readErr }, nil)
	if _, _, err := fetch(context.Background()); !errors.Is(err, readErr) {
		t.Errorf("fetch() error = %v, want %v", err, readErr)
	}
}

func TestWatcherInitializerParams_Validate(t *testing.T) {
	if err := (watcher.WatcherInitializerParams{}).Validate(); !errors.Is(err, watcher.ErrFetchRequired) {
		t.Errorf("Validate() = %v, want ErrFetchRequired", err)
	}
	if _, err := watcher.NewPolling()(watcher.WatcherInitializerParams{}); err == nil {
		t.Error("NewPolling() without fetch expected error")
	}
	if _, err := watcher.NewSubscription(nil)(watcher.WatcherInitializerParams{}); err == nil {
		t.Error("NewSubscription() without fetch expected error")
	}
}

func waitResult(t *testing.T, ch <-chan watcher.WatchResult) watcher.WatchResult {
	t.Helper()
	select {
	case r, ok := <-ch:
		if !ok {
			t.Fatal("results channel closed")
		}
		return r
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for result")
	}
	return watcher.WatchResult{}
}

func TestPollingWatcher(t *testing.T) {
	var calls atomic.Int32
	fetch := func(context.Context) (bool, []byte, error) {
		n := calls.Add(1)
		if n == 2 {
			return true, []byte("changed"), nil
		}
		return false, nil, nil
	}

	var mu sync.Mutex
	w, err := watcher.NewPolling()(watcher.WatcherInitializerParams{
		Fetch:  fetch,
		OpMu:   &mu,
		Config: watcher.NewWatchConfig(watcher.WithPollInterval(5 * time.Millisecond)),
	})
	if err != nil {
		t.Fatalf("NewPolling() error = %v", err)
	}
	if w.Type() != watcher.TypePolling {
		t.Errorf("Type() = %v, want %v", w.Type(), watcher.TypePolling)
	}
	if w.Results() != nil {
		t.Error("Results() before Start should be nil")
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if err := w.Start(ctx); err != nil {
		t.Fatalf("second Start() error = %v", err)
	}

	r := waitResult(t, w.Results())
	if r.Error != nil || string(r.Data) != "changed" {
		t.Errorf("result = %+v, want changed data", r)
	}

	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if err := w.Stop(ctx); err != nil {
		t.Fatalf("second Stop() error = %v", err)
	}
	for range w.Results() {
	}
}

func TestPollingWatcher_Error(t *testing.T) {
	fetchErr := errors.New("poll failed")
	w, err := watcher.NewPolling()(watcher.WatcherInitializerParams{
		Fetch: func(context.Context) (bool, []byte, error) {
			return false, nil, fetchErr
		},
		Config: watcher.NewWatchConfig(watcher.WithPollInterval(5 * time.Millisecond)),
	})
	if err != nil {
		t.Fatalf("NewPolling() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	r := waitResult(t, w.Results())
	if !errors.Is(r.Error, fetchErr) {
		t.Errorf("result error = %v, want %v", r.Error, fetchErr)
	}

	cancel()
	for range w.Results() {
	}
}

func TestSubscriptionWatcher(t *testing.T) {
	var notify watcher.NotifyFunc
	subscribed := make(chan struct{})
	var stopped atomic.Bool
	handler := watcher.SubscriptionHandlerFunc(func(ctx context.Context, n watcher.NotifyFunc) (watcher.StopFunc, error) {
		notify = n
		close(subscribed)
		return func(context.Context) error {
			stopped.Store(true)
			return nil
		}, nil
	})

	var changed atomic.Bool
	fetch := func(context.Context) (bool, []byte, error) {
		if changed.Load() {
			return true, []byte("fetched"), nil
		}
		return false, nil, nil
	}

	w, err := watcher.NewSubscription(handler)(watcher.WatcherInitializerParams{Fetch: fetch})
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}
	if w.Type() != watcher.TypeSubscription {
		t.Errorf("Type() = %v, want %v", w.Type(), watcher.TypeSubscription)
	}

	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	<-subscribed
	results := w.Results()

	// An event without a change is swallowed.
	notify(nil, nil)

	changed.Store(true)
	go notify(nil, nil)
	r := waitResult(t, results)
	if string(r.Data) != "fetched" {
		t.Errorf("result data = %q, want %q", r.Data, "fetched")
	}

	pushErr := errors.New("watch failed")
	go notify(nil, pushErr)
	r = waitResult(t, results)
	if !errors.Is(r.Error, pushErr) {
		t.Errorf("result error = %v, want %v", r.Error, pushErr)
	}

	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !stopped.Load() {
		t.Error("handler stop function was not called")
	}
	if _, ok := <-results; ok {
		t.Error("results channel still open after Stop")
	}

	// Notifications after Stop are dropped without panicking.
	notify([]byte("late"), nil)
}

func TestSubscriptionWatcher_SubscribeError(t *testing.T) {
	subErr := errors.New("subscribe failed")
	handler := watcher.SubscriptionHandlerFunc(func(context.Context, watcher.NotifyFunc) (watcher.StopFunc, error) {
		return nil, subErr
	})
	w, err := watcher.NewSubscription(handler)(watcher.WatcherInitializerParams{
		Fetch: func(context.Context) (bool, []byte, error) { return false, nil, nil },
	})
	if err != nil {
		t.Fatalf("NewSubscription() error = %v", err)
	}
	if err := w.Start(context.Background()); !errors.Is(err, subErr) {
		t.Fatalf("Start() error = %v, want %v", err, subErr)
	}
	if _, ok := <-w.Results(); ok {
		t.Error("results channel open after failed Start")
	}
}

func TestNoopWatcher(t *testing.T) {
	w, err := watcher.NewNoop()(watcher.WatcherInitializerParams{})
	if err != nil {
		t.Fatalf("NewNoop() error = %v", err)
	}
	if w.Type() != watcher.TypeNoop {
		t.Errorf("Type() = %v, want %v", w.Type(), watcher.TypeNoop)
	}
	ctx := context.Background()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	select {
	case r := <-w.Results():
		t.Fatalf("noop watcher emitted %+v", r)
	case <-time.After(20 * time.Millisecond):
	}

	if err := w.Stop(ctx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if _, ok := <-w.Results(); ok {
		t.Error("results channel open after Stop")
	}
}
