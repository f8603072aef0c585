// Package fs provides an accessor for assets on the local filesystem.
package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/types"
	"github.com/tmxkit/tiledoc/watcher"
)

var (
	userHomeDir = os.UserHomeDir
	osStat      = os.Stat
	osOpen      = func(name string) (io.ReadCloser, error) {
		return os.Open(name)
	}
	newFSWatcher = fsnotify.NewWatcher
)

// Source reads assets from the local filesystem.
type Source struct {
	root        string
	searchPaths []string
	polling     bool
}

// Ensure Source implements the source.WatchableAccessor interface.
var _ source.WatchableAccessor = (*Source)(nil)

// Option configures a Source.
type Option func(*Source)

// WithRoot resolves relative paths against dir instead of the working
// directory, the way a project folder anchors asset references.
func WithRoot(dir string) Option {
	return func(s *Source) {
		s.root = dir
	}
}

// WithSearchPaths adds directories tried after the built-in locations.
// Relative asset paths are joined to each directory in order.
func WithSearchPaths(dirs ...string) Option {
	return func(s *Source) {
		s.searchPaths = append(s.searchPaths, dirs...)
	}
}

// WithPolling makes Watch poll the file instead of subscribing to
// filesystem events. Use it on network mounts where events are unreliable.
func WithPolling() Option {
	return func(s *Source) {
		s.polling = true
	}
}

// New creates a filesystem accessor.
//
// Example:
//
//	acc := fs.New()
//	acc := fs.New(fs.WithRoot("assets"))
//	acc := fs.New(fs.WithRoot("assets"), fs.WithSearchPaths("assets/shared"))
func New(opts ...Option) *Source {
	s := &Source{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Type returns the accessor type identifier.
func (s *Source) Type() source.SourceType {
	return source.TypeFS
}

// FillDetails implements types.DetailsFiller.
func (s *Source) FillDetails(d *types.Details) {
	d.Source = source.TypeFS
}

// Resolve implements source.Accessor.
//
// Candidates are tried in order: the path itself, the path joined onto its
// own directory (an older Tiled project layout stores references that way),
// then the path under each search directory. Directories never match.
func (s *Source) Resolve(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for _, candidate := range s.candidates(path) {
		if info, err := osStat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("failed to resolve %q: %w", path, source.ErrNotExist)
}

// Open implements source.Accessor.
func (s *Source) Open(ctx context.Context, resolved string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := osOpen(resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", resolved, err)
	}
	return f, nil
}

func (s *Source) candidates(path string) []string {
	expanded, err := expandTilde(path)
	if err != nil {
		expanded = path
	}
	out := []string{
		s.anchor(expanded),
		s.anchor(filepath.Join(filepath.Dir(expanded), expanded)),
	}
	if !filepath.IsAbs(expanded) {
		for _, dir := range s.searchPaths {
			out = append(out, filepath.Join(dir, expanded))
		}
	}
	return out
}

func (s *Source) anchor(path string) string {
	if s.root == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(s.root, path)
}

// expandTilde expands tilde (~) in the path.
// Handles both "~" (home directory) and "~/path" (path under home).
func expandTilde(path string) (string, error) {
	if len(path) == 0 || path[0] != '~' {
		return path, nil
	}

	homeDir, err := userHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand home directory: %w", err)
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// "~something" is not a home reference.
	return path, nil
}

// Watch implements source.WatchableAccessor.
// It subscribes to fsnotify events for resolved, or polls when the Source
// was created WithPolling.
func (s *Source) Watch(resolved string) (watcher.WatcherInitializer, error) {
	if s.polling {
		return watcher.NewPolling(), nil
	}
	return watcher.NewSubscription(watcher.SubscriptionHandlerFunc(
		func(ctx context.Context, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
			return subscribe(ctx, resolved, notify)
		},
	)), nil
}

// subscribe watches the directory containing path and reports events for
// the file itself. Watching the directory survives editors that save by
// writing a temp file and renaming it over the original.
//
// Notifications are event-only: notify(nil, nil) asks the watcher to fetch.
func subscribe(ctx context.Context, path string, notify watcher.NotifyFunc) (watcher.StopFunc, error) {
	w, err := newFSWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		w.Close()
		return nil, fmt.Errorf("failed to watch directory %q: %w", dir, err)
	}

	filename := filepath.Base(path)

	go func() {
		for {
			select {
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != filename {
					continue
				}
				if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
					notify(nil, nil)
				}
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				notify(nil, err)
			case <-ctx.Done():
				return
			}
		}
	}()

	return func(context.Context) error {
		return w.Close()
	}, nil
}
