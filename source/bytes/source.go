// Package bytes provides an in-memory accessor over a fixed set of files.
// It is useful for embedding assets and for tests; content never changes
// once the accessor is created.
package bytes

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/types"
	"github.com/tmxkit/tiledoc/watcher"
)

// Source serves files from memory. Paths match exactly.
type Source struct {
	files map[string][]byte
}

// Ensure Source implements the source.WatchableAccessor interface.
var _ source.WatchableAccessor = (*Source)(nil)

// New creates an accessor over files. The map and its slices are copied.
//
// Example:
//
//	acc := bytes.New(map[string][]byte{
//	    "maps/level1.tmj": []byte(`{ "type": "map" }`),
//	})
func New(files map[string][]byte) *Source {
	s := &Source{files: make(map[string][]byte, len(files))}
	for name, data := range files {
		s.files[name] = bytes.Clone(data)
	}
	return s
}

// FromString creates an accessor holding a single file.
func FromString(path, data string) *Source {
	return New(map[string][]byte{path: []byte(data)})
}

// Type returns the accessor type identifier.
func (s *Source) Type() source.SourceType {
	return source.TypeBytes
}

// FillDetails implements types.DetailsFiller.
func (s *Source) FillDetails(d *types.Details) {
	d.Source = source.TypeBytes
}

// Resolve implements source.Accessor. Only exact paths resolve.
func (s *Source) Resolve(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, ok := s.files[path]; !ok {
		return "", fmt.Errorf("failed to resolve %q: %w", path, source.ErrNotExist)
	}
	return path, nil
}

// Open implements source.Accessor.
func (s *Source) Open(ctx context.Context, resolved string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, ok := s.files[resolved]
	if !ok {
		return nil, fmt.Errorf("failed to open %q: %w", resolved, source.ErrNotExist)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Watch implements source.WatchableAccessor.
// In-memory files never change, so the watcher never fires.
func (s *Source) Watch(string) (watcher.WatcherInitializer, error) {
	return watcher.NewNoop(), nil
}
