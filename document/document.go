// Package document defines the parsed form of a Tiled asset and the
// contracts parsers and tree builders implement.
//
// A Document wraps a value.Value tree together with the format it was
// parsed from and where it was read. Paths into the tree use JSON Pointer
// (RFC 6901) syntax:
//   - "/tilewidth" - top-level key
//   - "/layers/0/name" - name of the first layer
//   - "/properties/a~1b" - key "a/b" (escaped)
package document

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/tmxkit/tiledoc/jsonptr"
	"github.com/tmxkit/tiledoc/types"
	"github.com/tmxkit/tiledoc/value"
)

// DocumentFormat is an alias for types.DocumentFormat.
type DocumentFormat = types.DocumentFormat

const (
	// FormatUnknown is reported when neither extension nor content identify the file.
	FormatUnknown DocumentFormat = "unknown"

	// FormatXML covers .tmx, .tsx, .tx and plain .xml files.
	FormatXML DocumentFormat = "xml"

	// FormatJSON covers .tmj, .tsj, .tj, .json and .tiled-project files.
	FormatJSON DocumentFormat = "json"
)

// Document is a parsed asset. The caller owns it once it is returned.
type Document struct {
	// Root is the top of the tree. JSON documents always have a mapping root.
	Root value.Value

	// Format is the format the document was parsed from.
	Format DocumentFormat

	// Details records where the document came from. Parsers leave it empty;
	// the dispatcher fills it in for JSON documents it parsed.
	Details types.Details
}

// New creates a document with the given format and root.
func New(format DocumentFormat, root value.Value) *Document {
	return &Document{
		Root:    root,
		Format:  format,
		Details: types.Details{Format: format},
	}
}

// Get retrieves the value at the specified JSON Pointer path.
//
// Example:
//
//	if v, ok := doc.Get("/tilewidth"); ok {
//	  w, _ := v.Int()
//	}
func (d *Document) Get(pointer string) (value.Value, bool) {
	return jsonptr.Get(d.Root, pointer)
}

// Mapping returns the root mapping, or nil when the root is not a mapping.
func (d *Document) Mapping() *value.Mapping {
	m, _ := d.Root.AsMapping()
	return m
}

// Decode copies the tree into target using mapstructure with weak typing,
// so "16" decodes into an int field and field names match keys case-insensitively.
//
// Example:
//
//	var hdr struct {
//	  Width     int    `mapstructure:"width"`
//	  TileWidth int    `mapstructure:"tilewidth"`
//	  Orient    string `mapstructure:"orientation"`
//	}
//	err := doc.Decode(&hdr)
func (d *Document) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %w", err)
	}
	if err := dec.Decode(d.Root.Any()); err != nil {
		return fmt.Errorf("failed to decode document: %w", err)
	}
	return nil
}
