// Package jsonc parses JSON files that carry comments or trailing commas,
// as hand-edited .tiled-project and .json files often do.
//
// Input is normalized with github.com/tailscale/hujson and then decoded by
// the strict json package, so documents come out in FormatJSON.
package jsonc

import (
	"bytes"
	"fmt"

	"github.com/tailscale/hujson"
	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/format"
	"github.com/tmxkit/tiledoc/format/json"
)

// NewParser creates a lenient JSON parser.
//
// Example:
//
//	d := tiledoc.New(fs.New(), tiledoc.WithJSONParser(jsonc.NewParser()))
func NewParser() document.Parser {
	return format.NewParser(document.FormatJSON, Parse)
}

// Parse strips comments and trailing commas from data and parses the result
// as JSON. data is not modified.
func Parse(data []byte) (*document.Document, error) {
	std, err := hujson.Standardize(bytes.Clone(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse JSONC: %w", err)
	}
	return json.Parse(std)
}
