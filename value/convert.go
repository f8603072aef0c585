package value

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// FromAny converts plain Go data into a Value.
//
// Supported inputs are nil, string, bool, the integer and float kinds,
// json.Number, map[string]any, []any, []map[string]any, Value and *Mapping.
// Keys of Go maps are sorted since their iteration order is random.
func FromAny(in any) (Value, error) {
	return fromAny("", in)
}

func fromAny(path string, in any) (Value, error) {
	switch v := in.(type) {
	case nil:
		return Null(), nil
	case Value:
		return v, nil
	case *Mapping:
		return Map(v), nil
	case string:
		return String(v), nil
	case bool:
		return Bool(v), nil
	case int:
		return Int(int64(v)), nil
	case int8:
		return Int(int64(v)), nil
	case int16:
		return Int(int64(v)), nil
	case int32:
		return Int(int64(v)), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(int64(v)), nil
	case uint16:
		return Int(int64(v)), nil
	case uint32:
		return Int(int64(v)), nil
	case uint:
		return NumberFromText(fmt.Sprint(v))
	case uint64:
		return NumberFromText(fmt.Sprint(v))
	case float32:
		return Number(float64(v)), nil
	case float64:
		return Number(v), nil
	case json.Number:
		return NumberFromText(v.String())
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		m := NewMapping()
		for _, k := range keys {
			e, err := fromAny(path+"/"+k, v[k])
			if err != nil {
				return Value{}, err
			}
			m.Set(k, e)
		}
		return Map(m), nil
	case []any:
		out := make([]Value, len(v))
		for i, e := range v {
			ev, err := fromAny(fmt.Sprintf("%s/%d", path, i), e)
			if err != nil {
				return Value{}, err
			}
			out[i] = ev
		}
		return Seq(out...), nil
	case []map[string]any:
		out := make([]Value, len(v))
		for i, e := range v {
			ev, err := fromAny(fmt.Sprintf("%s/%d", path, i), e)
			if err != nil {
				return Value{}, err
			}
			out[i] = ev
		}
		return Seq(out...), nil
	}
	where := path
	if where == "" {
		where = "/"
	}
	return Value{}, fmt.Errorf("unsupported type %s at %q", reflect.TypeOf(in), where)
}
