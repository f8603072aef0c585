// Package zip provides an accessor over the entries of a zip archive.
//
// Entries are matched by exact name; there is no fallback resolution inside
// an archive. The archive is indexed once when the accessor is created.
package zip

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/zip"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/types"
	"github.com/tmxkit/tiledoc/watcher"
)

// Source reads assets from a zip archive.
type Source struct {
	name   string
	prefix string
	files  map[string]*zip.File
	closer io.Closer
}

// Ensure Source implements the source.WatchableAccessor interface.
var _ source.WatchableAccessor = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithStripPrefix removes prefix from requested paths before lookup, so a
// reference like "res://maps/a.tmx" finds the entry "maps/a.tmx".
func WithStripPrefix(prefix string) Option {
	return func(s *Source) {
		s.prefix = prefix
	}
}

// Open opens the archive at name. The caller must Close the Source.
func Open(name string, opts ...Option) (*Source, error) {
	rc, err := zip.OpenReader(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive %q: %w", name, err)
	}
	s := newSource(name, &rc.Reader, opts)
	s.closer = rc
	return s, nil
}

// NewReader reads an archive of the given size from r.
func NewReader(r io.ReaderAt, size int64, opts ...Option) (*Source, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read archive: %w", err)
	}
	return newSource("", zr, opts), nil
}

func newSource(name string, zr *zip.Reader, opts []Option) *Source {
	s := &Source{
		name:  name,
		files: make(map[string]*zip.File, len(zr.File)),
	}
	for _, opt := range opts {
		opt(s)
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		s.files[f.Name] = f
	}
	return s
}

// Close releases the archive file when the Source was created by Open.
func (s *Source) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Type returns the accessor type identifier.
func (s *Source) Type() source.SourceType {
	return source.TypeZip
}

// FillDetails implements types.DetailsFiller.
func (s *Source) FillDetails(d *types.Details) {
	d.Source = source.TypeZip
}

// Name returns the archive path given to Open, or "" for NewReader.
func (s *Source) Name() string {
	return s.name
}

// Resolve implements source.Accessor.
func (s *Source) Resolve(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	entry := strings.TrimPrefix(path, s.prefix)
	if _, ok := s.files[entry]; !ok {
		return "", fmt.Errorf("failed to resolve %q in archive: %w", path, source.ErrNotExist)
	}
	return entry, nil
}

// Open implements source.Accessor.
func (s *Source) Open(ctx context.Context, resolved string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, ok := s.files[resolved]
	if !ok {
		return nil, fmt.Errorf("failed to open %q in archive: %w", resolved, source.ErrNotExist)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %q in archive: %w", resolved, err)
	}
	return rc, nil
}

// Watch implements source.WatchableAccessor.
// An opened archive is a snapshot, so the watcher never fires.
func (s *Source) Watch(string) (watcher.WatcherInitializer, error) {
	return watcher.NewNoop(), nil
}
