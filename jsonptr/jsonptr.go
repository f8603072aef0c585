// Package jsonptr addresses values inside a document tree with JSON Pointer
// (RFC 6901) strings such as "/layers/0/name".
//
// Reference: https://tools.ietf.org/html/rfc6901
package jsonptr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tmxkit/tiledoc/value"
)

var (
	escaper   = strings.NewReplacer("~", "~0", "/", "~1")
	unescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// Escape encodes "~" as "~0" and "/" as "~1".
func Escape(key string) string {
	return escaper.Replace(key)
}

// Unescape reverses Escape.
func Unescape(token string) string {
	return unescaper.Replace(token)
}

// Build joins keys into a pointer. Integer keys address sequence elements.
//
//	Build("layers", 0, "name") -> "/layers/0/name"
//	Build("properties", "a/b") -> "/properties/a~1b"
func Build(keys ...any) string {
	var sb strings.Builder
	for _, key := range keys {
		sb.WriteByte('/')
		switch k := key.(type) {
		case string:
			sb.WriteString(Escape(k))
		case int:
			sb.WriteString(strconv.Itoa(k))
		default:
			sb.WriteString(Escape(fmt.Sprint(k)))
		}
	}
	return sb.String()
}

// Parse splits a pointer into its unescaped reference tokens.
// The empty pointer refers to the whole document and yields no tokens.
func Parse(pointer string) ([]string, error) {
	if pointer == "" {
		return []string{}, nil
	}
	if pointer[0] != '/' {
		return nil, fmt.Errorf("invalid JSON Pointer %q: must start with '/' or be empty", pointer)
	}
	parts := strings.Split(pointer[1:], "/")
	for i, part := range parts {
		parts[i] = Unescape(part)
	}
	return parts, nil
}

// Get walks root along pointer.
// It returns false when a token is missing, an index is out of range, or
// the pointer is malformed.
func Get(root value.Value, pointer string) (value.Value, bool) {
	tokens, err := Parse(pointer)
	if err != nil {
		return value.Value{}, false
	}
	cur := root
	for _, tok := range tokens {
		switch cur.Kind() {
		case value.KindMapping:
			m, _ := cur.AsMapping()
			next, ok := m.Get(tok)
			if !ok {
				return value.Value{}, false
			}
			cur = next
		case value.KindSequence:
			seq, _ := cur.AsSequence()
			i, err := strconv.Atoi(tok)
			if err != nil || i < 0 || i >= len(seq) || (len(tok) > 1 && tok[0] == '0') {
				return value.Value{}, false
			}
			cur = seq[i]
		default:
			return value.Value{}, false
		}
	}
	return cur, true
}
