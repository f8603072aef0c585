package tdtest

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/watcher"
)

// AccessorFactory creates an Accessor serving exactly the given files.
// Keys are slash-separated paths relative to wherever the accessor is
// rooted; the tester passes them back unchanged to Resolve.
// The factory is called for each test case to ensure test isolation.
type AccessorFactory func(t *testing.T, files map[string][]byte) source.Accessor

// AccessorTester provides utilities to verify Accessor implementations.
type AccessorTester struct {
	t       *testing.T
	factory AccessorFactory
}

// NewAccessorTester creates an AccessorTester for the given factory.
func NewAccessorTester(t *testing.T, factory AccessorFactory) *AccessorTester {
	return &AccessorTester{t: t, factory: factory}
}

// TestAll runs all standard compliance tests for Accessor implementations.
func (at *AccessorTester) TestAll() {
	at.t.Run("Type", at.testType)
	at.t.Run("ResolveExisting", at.testResolveExisting)
	at.t.Run("ResolveMissing", at.testResolveMissing)
	at.t.Run("ReadAll", at.testReadAll)
	at.t.Run("ReadHead", at.testReadHead)
	at.t.Run("Canceled", at.testCanceled)
	at.t.Run("Watch", at.testWatch)
}

const sampleJSON = `{ "type": "map", "version": "1.10" }`

func (at *AccessorTester) sample(t *testing.T) source.Accessor {
	return at.factory(t, map[string][]byte{
		"maps/level1.tmj": []byte(sampleJSON),
		"tiny.bin":        []byte("<?"),
	})
}

func (at *AccessorTester) testType(t *testing.T) {
	acc := at.sample(t)
	require(t, acc.Type() != "", "Type() returned empty string")
}

func (at *AccessorTester) testResolveExisting(t *testing.T) {
	acc := at.sample(t)
	resolved, err := acc.Resolve(context.Background(), "maps/level1.tmj")
	requireNoError(t, err, "Resolve() error = %v", err)
	require(t, resolved != "", "Resolve() returned empty path")
	check(t, strings.HasSuffix(strings.ReplaceAll(resolved, "\\", "/"), "level1.tmj"),
		"Resolve() = %q, want a path ending in level1.tmj", resolved)
	check(t, source.Exists(context.Background(), acc, "maps/level1.tmj"), "Exists() = false for existing file")
}

func (at *AccessorTester) testResolveMissing(t *testing.T) {
	acc := at.sample(t)
	_, err := acc.Resolve(context.Background(), "maps/missing.tmj")
	require(t, err != nil, "Resolve() of missing file should return error")
	check(t, errors.Is(err, source.ErrNotExist), "Resolve() error should wrap source.ErrNotExist, got: %v", err)
	check(t, !source.Exists(context.Background(), acc, "maps/missing.tmj"), "Exists() = true for missing file")
}

func (at *AccessorTester) testReadAll(t *testing.T) {
	acc := at.sample(t)
	ctx := context.Background()
	resolved, err := acc.Resolve(ctx, "maps/level1.tmj")
	requireNoError(t, err, "Resolve() error = %v", err)

	data, err := source.ReadAll(ctx, acc, resolved)
	requireNoError(t, err, "ReadAll() error = %v", err)
	check(t, string(data) == sampleJSON, "ReadAll() = %q, want %q", data, sampleJSON)

	rc, err := acc.Open(ctx, resolved)
	requireNoError(t, err, "Open() error = %v", err)
	raw, err := io.ReadAll(rc)
	requireNoError(t, err, "read error = %v", err)
	requireNoError(t, rc.Close(), "Close() error")
	check(t, string(raw) == sampleJSON, "Open() content = %q, want %q", raw, sampleJSON)
}

func (at *AccessorTester) testReadHead(t *testing.T) {
	acc := at.sample(t)
	ctx := context.Background()

	resolved, err := acc.Resolve(ctx, "maps/level1.tmj")
	requireNoError(t, err, "Resolve() error = %v", err)
	head, err := source.ReadHead(ctx, acc, resolved, 12)
	requireNoError(t, err, "ReadHead() error = %v", err)
	check(t, string(head) == sampleJSON[:12], "ReadHead() = %q, want %q", head, sampleJSON[:12])

	resolved, err = acc.Resolve(ctx, "tiny.bin")
	requireNoError(t, err, "Resolve() error = %v", err)
	head, err = source.ReadHead(ctx, acc, resolved, 12)
	requireNoError(t, err, "ReadHead() on short file error = %v", err)
	check(t, string(head) == "<?", "ReadHead() on short file = %q, want %q", head, "<?")
}

func (at *AccessorTester) testCanceled(t *testing.T) {
	acc := at.sample(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := acc.Resolve(ctx, "maps/level1.tmj")
	check(t, errors.Is(err, context.Canceled), "Resolve() with canceled context error = %v, want context.Canceled", err)
}

func (at *AccessorTester) testWatch(t *testing.T) {
	acc := at.sample(t)
	wa, ok := acc.(source.WatchableAccessor)
	if !ok {
		t.Skip("Accessor does not implement WatchableAccessor")
		return
	}
	ctx := context.Background()
	resolved, err := wa.Resolve(ctx, "maps/level1.tmj")
	requireNoError(t, err, "Resolve() error = %v", err)

	init, err := wa.Watch(resolved)
	requireNoError(t, err, "Watch() error = %v", err)
	require(t, init != nil, "Watch() returned nil initializer")

	var mu sync.Mutex
	w, err := init(watcher.WatcherInitializerParams{
		Fetch: func(context.Context) (bool, []byte, error) {
			return false, nil, nil
		},
		OpMu:   &mu,
		Config: watcher.NewWatchConfig(watcher.WithPollInterval(50 * time.Millisecond)),
	})
	requireNoError(t, err, "WatcherInitializer() error = %v", err)

	typ := w.Type()
	check(t, typ == watcher.TypePolling || typ == watcher.TypeSubscription || typ == watcher.TypeNoop,
		"Watcher.Type() returned unknown type: %q", typ)
	check(t, w.Results() == nil, "Results() should return nil before Start() is called")

	requireNoError(t, w.Start(ctx), "Start() error")
	require(t, w.Results() != nil, "Results() returned nil after Start()")
	requireNoError(t, w.Stop(ctx), "Stop() error")
}
