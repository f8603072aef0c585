// Package source provides the accessors the dispatcher reads assets through.
// An accessor answers two questions: where does a logical path live, and what
// bytes are there. Parsing is handled by the document and format packages.
//
// Implementations are chosen by the caller at construction time: fs reads
// the local filesystem, zip reads entries of an archive, bytes serves an
// in-memory file set.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"

	"github.com/tmxkit/tiledoc/types"
	"github.com/tmxkit/tiledoc/watcher"
)

// SourceType is an alias for types.SourceType.
type SourceType = types.SourceType

// Standard accessor types.
const (
	TypeFS    SourceType = "fs"
	TypeZip   SourceType = "zip"
	TypeBytes SourceType = "bytes"
)

// ErrNotExist is wrapped by Resolve when a path cannot be found.
// It is io/fs.ErrNotExist so os and archive errors match it too.
var ErrNotExist = iofs.ErrNotExist

// ErrWatchNotSupported is returned when watching is requested from an
// accessor that cannot detect changes.
var ErrWatchNotSupported = errors.New("watch not supported for this accessor")

// Accessor resolves logical paths and opens the files behind them.
type Accessor interface {
	// Type returns the accessor type identifier.
	Type() SourceType

	// Resolve maps a logical path to the location Open accepts.
	// Returns an error wrapping ErrNotExist if the path cannot be found.
	Resolve(ctx context.Context, path string) (string, error)

	// Open opens a resolved path for reading. The caller must Close it.
	Open(ctx context.Context, resolved string) (io.ReadCloser, error)
}

// WatchableAccessor is implemented by accessors that can report changes to a
// resolved path.
type WatchableAccessor interface {
	Accessor

	// Watch returns an initializer for a watcher bound to the resolved path.
	Watch(resolved string) (watcher.WatcherInitializer, error)
}

// Exists reports whether path resolves through acc.
func Exists(ctx context.Context, acc Accessor, path string) bool {
	_, err := acc.Resolve(ctx, path)
	return err == nil
}

// ReadHead reads at most n bytes from the start of a resolved path.
// A file shorter than n is not an error.
func ReadHead(ctx context.Context, acc Accessor, resolved string, n int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := acc.Open(ctx, resolved)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	buf := make([]byte, n)
	read, err := io.ReadFull(rc, buf)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("failed to read %q: %w", resolved, err)
	}
	return buf[:read], nil
}

// ReadAll reads the whole content of a resolved path.
func ReadAll(ctx context.Context, acc Accessor, resolved string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := acc.Open(ctx, resolved)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", resolved, err)
	}
	return data, nil
}
