// Package xml provides the default tree builder for TMX, TSX and TX files.
//
// Elements become mappings keyed by child element name, attributes are
// stored under their name prefixed with "-", and element text that sits
// next to attributes or children is stored under "#text". Repeated child
// elements become sequences. The conversion is done by
// github.com/clbanning/mxj.
package xml

import (
	"bytes"
	"context"
	stdxml "encoding/xml"
	"fmt"
	"io"

	"github.com/clbanning/mxj"
	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/format"
	"github.com/tmxkit/tiledoc/source"
	"github.com/tmxkit/tiledoc/value"
)

// Builder reads an XML asset through an accessor and returns its tree.
type Builder struct {
	cast bool
}

// Ensure Builder implements document.TreeBuilder.
var _ document.TreeBuilder = (*Builder)(nil)

// Option configures a Builder.
type Option func(*Builder)

// WithCast converts numeric and boolean text to numbers and bools.
// Without it every attribute and text value is a string, as in the file.
func WithCast() Option {
	return func(b *Builder) {
		b.cast = true
	}
}

// NewBuilder creates an XML tree builder.
//
// Example:
//
//	d := tiledoc.New(acc, tiledoc.WithXMLBuilder(xml.NewBuilder(xml.WithCast())))
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Create implements document.TreeBuilder. path must already be resolved
// by acc.
func (b *Builder) Create(ctx context.Context, path string, acc source.Accessor) (*document.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := acc.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	// mxj recurses once per element.
	if err := checkDepth(data); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}

	mv, err := mxj.NewMapXml(data, b.cast)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	root, err := value.FromAny(mv.Old())
	if err != nil {
		return nil, fmt.Errorf("failed to convert XML tree: %w", err)
	}
	return document.New(document.FormatXML, root), nil
}

// checkDepth fails if elements nest deeper than format.MaxDepth. Syntax
// errors stop the scan and are left for mxj to report.
func checkDepth(data []byte) error {
	dec := stdxml.NewDecoder(bytes.NewReader(data))
	// Only element boundaries matter here, so take any charset as is.
	dec.Strict = false
	dec.CharsetReader = func(_ string, r io.Reader) (io.Reader, error) { return r, nil }
	depth := 0
	for {
		tok, err := dec.RawToken()
		if err != nil {
			return nil
		}
		switch tok.(type) {
		case stdxml.StartElement:
			depth++
			if depth > format.MaxDepth {
				return format.ErrMaxDepth
			}
		case stdxml.EndElement:
			depth--
		}
	}
}
