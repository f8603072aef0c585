// Package detect classifies Tiled assets as XML or JSON.
//
// The extension decides first. When it is not one Tiled writes, the first
// SniffLen bytes of the content are checked against the prefixes Tiled
// itself emits.
package detect

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/tmxkit/tiledoc/document"
)

// SniffLen is the number of leading bytes Sniff needs.
const SniffLen = 12

// Method records which rule produced a classification.
type Method string

const (
	MethodExtension Method = "extension"
	MethodSniff     Method = "sniff"
	MethodNone      Method = "none"
)

var extensions = map[string]document.DocumentFormat{
	"tmx": document.FormatXML,
	"tsx": document.FormatXML,
	"xml": document.FormatXML,
	"tx":  document.FormatXML,

	"tmj":           document.FormatJSON,
	"tsj":           document.FormatJSON,
	"json":          document.FormatJSON,
	"tj":            document.FormatJSON,
	"tiled-project": document.FormatJSON,
}

var (
	xmlPrefix  = []byte("<?xml ")
	jsonPrefix = []byte(`{ "`)
)

// Extension returns the text after the last dot of the file name in path,
// without the dot. "level.tmx" gives "tmx", "README" gives "".
func Extension(path string) string {
	ext := filepath.Ext(filepath.Base(filepath.FromSlash(path)))
	return strings.TrimPrefix(ext, ".")
}

// ByExtension classifies path by its extension. Matching is case-sensitive:
// "LEVEL.TMX" is not recognized.
func ByExtension(path string) (document.DocumentFormat, bool) {
	f, ok := extensions[Extension(path)]
	return f, ok
}

// Sniff classifies content by its leading bytes. head may be shorter than
// SniffLen; only the first SniffLen bytes are examined.
func Sniff(head []byte) document.DocumentFormat {
	if len(head) > SniffLen {
		head = head[:SniffLen]
	}
	switch {
	case bytes.HasPrefix(head, xmlPrefix):
		return document.FormatXML
	case bytes.HasPrefix(head, jsonPrefix):
		return document.FormatJSON
	default:
		return document.FormatUnknown
	}
}

// Classify runs the extension check and, if it fails, sniffs the bytes
// returned by head. head is only called when needed.
func Classify(path string, head func() ([]byte, error)) (document.DocumentFormat, Method, error) {
	if f, ok := ByExtension(path); ok {
		return f, MethodExtension, nil
	}
	data, err := head()
	if err != nil {
		return document.FormatUnknown, MethodNone, err
	}
	if f := Sniff(data); f != document.FormatUnknown {
		return f, MethodSniff, nil
	}
	return document.FormatUnknown, MethodNone, nil
}
