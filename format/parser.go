// Package format provides common utilities for document format implementations.
package format

import (
	"errors"

	"github.com/tmxkit/tiledoc/document"
)

// MaxDepth is the deepest nesting of objects, arrays or elements a parser
// accepts. It matches the limit encoding/json places on Unmarshal.
const MaxDepth = 10000

// ErrMaxDepth is returned when input nests deeper than MaxDepth.
var ErrMaxDepth = errors.New("exceeded max nesting depth")

// ParseFunc is a function that parses bytes into a Document.
type ParseFunc func([]byte) (*document.Document, error)

// NewParser creates a Parser with the given format and parse function.
//
// Example:
//
//	parser := format.NewParser(document.FormatJSON, json.Parse)
func NewParser(f document.DocumentFormat, parse ParseFunc) document.Parser {
	return &parser{
		format:    f,
		parseFunc: parse,
	}
}

// parser implements document.Parser using the provided parse function.
type parser struct {
	format    document.DocumentFormat
	parseFunc ParseFunc
}

// Ensure parser implements the document.Parser interface.
var _ document.Parser = (*parser)(nil)

// Parse implements the document.Parser interface.
func (p *parser) Parse(data []byte) (*document.Document, error) {
	return p.parseFunc(data)
}

// Format implements the document.Parser interface.
func (p *parser) Format() document.DocumentFormat {
	return p.format
}
