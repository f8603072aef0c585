package document

import (
	"context"

	"github.com/tmxkit/tiledoc/source"
)

// Parser parses raw bytes into a Document.
// Each text format (JSON, JSONC) implements this interface.
type Parser interface {
	// Parse parses the raw bytes and returns a Document.
	Parse(data []byte) (*Document, error)

	// Format returns the document format this parser handles.
	Format() DocumentFormat
}

// TreeBuilder turns an XML asset into a Document.
//
// Unlike Parser it receives the resolved path and the accessor rather than
// bytes, because XML assets may pull in further files through the same
// accessor. The dispatcher hands the builder's result back to its caller
// unchanged, including a nil document.
type TreeBuilder interface {
	Create(ctx context.Context, path string, acc source.Accessor) (*Document, error)
}

// TreeBuilderFunc is a function that implements TreeBuilder.
type TreeBuilderFunc func(ctx context.Context, path string, acc source.Accessor) (*Document, error)

// Create implements TreeBuilder.
func (f TreeBuilderFunc) Create(ctx context.Context, path string, acc source.Accessor) (*Document, error) {
	return f(ctx, path, acc)
}
