// Package value provides the typed tree produced by tiledoc parsers.
//
// A Value is a tagged union over the shapes a Tiled document can hold:
// null, string, number, bool, mapping and sequence. The zero Value is null.
// Mappings keep insertion order so a decoded JSON object can be written back
// in the order it was read.
package value

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies which member of the union a Value holds.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a node in a document tree.
type Value struct {
	kind Kind
	str  string // string payload, or the number's lexeme
	num  float64
	b    bool
	m    *Mapping
	seq  []Value
}

// Null returns the null value.
func Null() Value {
	return Value{}
}

// String returns a string value.
func String(s string) Value {
	return Value{kind: KindString, str: s}
}

// Number returns a number value for f.
func Number(f float64) Value {
	return Value{kind: KindNumber, num: f, str: strconv.FormatFloat(f, 'g', -1, 64)}
}

// Int returns a number value for i, keeping its exact integer text.
func Int(i int64) Value {
	return Value{kind: KindNumber, num: float64(i), str: strconv.FormatInt(i, 10)}
}

// NumberFromText parses a number lexeme such as "42" or "-1.5e3".
// The lexeme is kept so integers wider than float64 precision survive.
func NumberFromText(raw string) (Value, error) {
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("invalid number %q: %w", raw, err)
	}
	return Value{kind: KindNumber, num: f, str: raw}, nil
}

// Bool returns a bool value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Map wraps m as a mapping value. A nil m yields an empty mapping.
func Map(m *Mapping) Value {
	if m == nil {
		m = NewMapping()
	}
	return Value{kind: KindMapping, m: m}
}

// Seq returns a sequence value holding vs.
func Seq(vs ...Value) Value {
	if vs == nil {
		vs = []Value{}
	}
	return Value{kind: KindSequence, seq: vs}
}

// Kind reports which member of the union v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// AsString returns the string payload.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// Float returns the number as float64.
func (v Value) Float() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	return v.num, true
}

// Int returns the number as int64 when it holds an integral value.
func (v Value) Int() (int64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}
	if i, err := strconv.ParseInt(v.str, 10, 64); err == nil {
		return i, true
	}
	if v.num != math.Trunc(v.num) || v.num < math.MinInt64 || v.num >= math.MaxInt64 {
		return 0, false
	}
	return int64(v.num), true
}

// NumberText returns the lexeme of a number value.
func (v Value) NumberText() (string, bool) {
	if v.kind != KindNumber {
		return "", false
	}
	return v.str, true
}

// AsBool returns the bool payload.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsMapping returns the mapping payload.
func (v Value) AsMapping() (*Mapping, bool) {
	if v.kind != KindMapping {
		return nil, false
	}
	return v.m, true
}

// AsSequence returns the sequence payload. The slice is shared with v.
func (v Value) AsSequence() ([]Value, bool) {
	if v.kind != KindSequence {
		return nil, false
	}
	return v.seq, true
}

// Any converts v into plain Go values: nil, string, int64 or float64, bool,
// map[string]any and []any. Integral numbers become int64.
func (v Value) Any() any {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		if i, err := strconv.ParseInt(v.str, 10, 64); err == nil {
			return i
		}
		return v.num
	case KindBool:
		return v.b
	case KindMapping:
		out := make(map[string]any, v.m.Len())
		for k, e := range v.m.All() {
			out[k] = e.Any()
		}
		return out
	case KindSequence:
		out := make([]any, len(v.seq))
		for i, e := range v.seq {
			out[i] = e.Any()
		}
		return out
	default:
		return nil
	}
}

// Equal reports whether a and b hold the same tree.
// Numbers compare by value, exactly when both are integers that fit in
// int64. Mapping key order is ignored.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindString:
		return a.str == b.str
	case KindNumber:
		ai, aerr := strconv.ParseInt(a.str, 10, 64)
		bi, berr := strconv.ParseInt(b.str, 10, 64)
		if aerr == nil && berr == nil {
			return ai == bi
		}
		return a.num == b.num
	case KindBool:
		return a.b == b.b
	case KindMapping:
		if a.m.Len() != b.m.Len() {
			return false
		}
		for k, av := range a.m.All() {
			bv, ok := b.m.Get(k)
			if !ok || !Equal(av, bv) {
				return false
			}
		}
		return true
	case KindSequence:
		if len(a.seq) != len(b.seq) {
			return false
		}
		for i := range a.seq {
			if !Equal(a.seq[i], b.seq[i]) {
				return false
			}
		}
		return true
	}
	return false
}

// GoString renders v for test failure output.
func (v Value) GoString() string {
	b, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("value.Value{%s}", v.kind)
	}
	return string(b)
}
