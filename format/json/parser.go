// Package json decodes Tiled JSON files (.tmj, .tsj, .tj, .tiled-project)
// into ordered document trees using encoding/json's token stream.
package json

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/tmxkit/tiledoc/document"
	"github.com/tmxkit/tiledoc/format"
	"github.com/tmxkit/tiledoc/value"
)

// NewParser creates a new JSON parser.
//
// Example:
//
//	d := tiledoc.New(fs.New(), tiledoc.WithJSONParser(json.NewParser()))
func NewParser() document.Parser {
	return format.NewParser(document.FormatJSON, Parse)
}

// Parse parses JSON data into a Document.
//
// The root value must be an object. Empty input, trailing data after the
// root object, nesting deeper than format.MaxDepth and syntax errors are
// failures. Object keys keep their order;
// a repeated key keeps its first position and its last value.
func Parse(data []byte) (*document.Document, error) {
	root, err := Decode(data)
	if err != nil {
		return nil, err
	}
	if root.Kind() != value.KindMapping {
		return nil, fmt.Errorf("failed to parse JSON: root must be an object, got %s", root.Kind())
	}
	return document.New(document.FormatJSON, root), nil
}

// Decode parses a single JSON value of any kind.
func Decode(data []byte) (value.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	v, err := decodeValue(dec, 0)
	if err != nil {
		return value.Value{}, fmt.Errorf("failed to parse JSON: %w", err)
	}
	if tok, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err != nil {
			return value.Value{}, fmt.Errorf("failed to parse JSON: %w", err)
		}
		return value.Value{}, fmt.Errorf("failed to parse JSON: unexpected %v after top-level value", tok)
	}
	return v, nil
}

// decodeValue reads one value. depth is the number of containers
// enclosing it.
func decodeValue(dec *json.Decoder, depth int) (value.Value, error) {
	tok, err := next(dec)
	if err != nil {
		return value.Value{}, err
	}

	switch t := tok.(type) {
	case json.Delim:
		if depth >= format.MaxDepth {
			return value.Value{}, format.ErrMaxDepth
		}
		switch t {
		case '{':
			return decodeObject(dec, depth+1)
		case '[':
			return decodeArray(dec, depth+1)
		}
		return value.Value{}, fmt.Errorf("unexpected delimiter %q", rune(t))
	case string:
		return value.String(t), nil
	case json.Number:
		return value.NumberFromText(t.String())
	case bool:
		return value.Bool(t), nil
	case nil:
		return value.Null(), nil
	}
	return value.Value{}, fmt.Errorf("unexpected token %v", tok)
}

func decodeObject(dec *json.Decoder, depth int) (value.Value, error) {
	m := value.NewMapping()
	for dec.More() {
		tok, err := next(dec)
		if err != nil {
			return value.Value{}, err
		}
		key, ok := tok.(string)
		if !ok {
			return value.Value{}, fmt.Errorf("object key must be a string, got %v", tok)
		}
		v, err := decodeValue(dec, depth)
		if err != nil {
			return value.Value{}, err
		}
		m.Set(key, v)
	}
	// closing brace
	if _, err := next(dec); err != nil {
		return value.Value{}, err
	}
	return value.Map(m), nil
}

func decodeArray(dec *json.Decoder, depth int) (value.Value, error) {
	items := []value.Value{}
	for dec.More() {
		v, err := decodeValue(dec, depth)
		if err != nil {
			return value.Value{}, err
		}
		items = append(items, v)
	}
	if _, err := next(dec); err != nil {
		return value.Value{}, err
	}
	return value.Seq(items...), nil
}

// next reads a token, reporting a clean EOF inside a value as truncation.
func next(dec *json.Decoder) (json.Token, error) {
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, io.ErrUnexpectedEOF
	}
	return tok, err
}
