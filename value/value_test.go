package value

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindNull, "null"},
		{KindString, "string"},
		{KindNumber, "number"},
		{KindBool, "bool"},
		{KindMapping, "mapping"},
		{KindSequence, "sequence"},
		{Kind(42), "Kind(42)"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(tt.kind), got, tt.want)
		}
	}
}

func TestValue_ZeroIsNull(t *testing.T) {
	var v Value
	if !v.IsNull() {
		t.Fatalf("zero Value kind = %v, want null", v.Kind())
	}
	if _, ok := v.AsString(); ok {
		t.Error("AsString() on null returned ok")
	}
}

func TestValue_Accessors(t *testing.T) {
	if s, ok := String("orthogonal").AsString(); !ok || s != "orthogonal" {
		t.Errorf("AsString() = %q, %v", s, ok)
	}
	if b, ok := Bool(true).AsBool(); !ok || !b {
		t.Errorf("AsBool() = %v, %v", b, ok)
	}
	if f, ok := Number(1.5).Float(); !ok || f != 1.5 {
		t.Errorf("Float() = %v, %v", f, ok)
	}
	if _, ok := Number(1.5).Int(); ok {
		t.Error("Int() on 1.5 returned ok")
	}
	if i, ok := Number(16).Int(); !ok || i != 16 {
		t.Errorf("Int() = %v, %v", i, ok)
	}
	if _, ok := String("1").Int(); ok {
		t.Error("Int() on string returned ok")
	}
	seq, ok := Seq(Int(1), Int(2)).AsSequence()
	if !ok || len(seq) != 2 {
		t.Errorf("AsSequence() = %v, %v", seq, ok)
	}
	if m, ok := Map(nil).AsMapping(); !ok || m.Len() != 0 {
		t.Errorf("Map(nil).AsMapping() = %v, %v", m, ok)
	}
}

func TestNumberFromText(t *testing.T) {
	v, err := NumberFromText("9007199254740993")
	if err != nil {
		t.Fatalf("NumberFromText() error = %v", err)
	}
	i, ok := v.Int()
	if !ok || i != 9007199254740993 {
		t.Errorf("Int() = %d, %v, want exact lexeme value", i, ok)
	}
	if text, _ := v.NumberText(); text != "9007199254740993" {
		t.Errorf("NumberText() = %q", text)
	}

	if _, err := NumberFromText("twelve"); err == nil {
		t.Error("NumberFromText(twelve) expected error")
	}
}

func TestMapping_Order(t *testing.T) {
	m := NewMapping()
	m.Set("width", Int(30))
	m.Set("height", Int(20))
	m.Set("orientation", String("orthogonal"))
	m.Set("width", Int(40))

	if diff := cmp.Diff([]string{"width", "height", "orientation"}, m.Keys()); diff != "" {
		t.Errorf("Keys() mismatch (-want +got):\n%s", diff)
	}
	if v, _ := m.Get("width"); !Equal(v, Int(40)) {
		t.Errorf("Get(width) = %#v, want 40", v)
	}

	m.Delete("width")
	m.Delete("missing")
	if diff := cmp.Diff([]string{"height", "orientation"}, m.Keys()); diff != "" {
		t.Errorf("Keys() after Delete mismatch (-want +got):\n%s", diff)
	}
	if v, ok := m.Get("orientation"); !ok || !Equal(v, String("orthogonal")) {
		t.Errorf("Get(orientation) after Delete = %#v, %v", v, ok)
	}

	var keys []string
	for k := range m.All() {
		keys = append(keys, k)
		break
	}
	if len(keys) != 1 {
		t.Errorf("All() did not stop after break: %v", keys)
	}
}

func TestMapping_NilIsEmpty(t *testing.T) {
	var m *Mapping
	if m.Len() != 0 || m.Keys() != nil {
		t.Error("nil mapping should be empty")
	}
	if _, ok := m.Get("x"); ok {
		t.Error("Get on nil mapping returned ok")
	}
	m.Delete("x")
}

func TestFromAny_Any(t *testing.T) {
	in := map[string]any{
		"name":     "level1",
		"width":    30,
		"scale":    0.5,
		"infinite": false,
		"layers":   []any{map[string]any{"id": int64(1)}, nil},
		"big":      json.Number("12345678901234567"),
	}
	v, err := FromAny(in)
	if err != nil {
		t.Fatalf("FromAny() error = %v", err)
	}
	m, ok := v.AsMapping()
	if !ok {
		t.Fatalf("FromAny() kind = %v, want mapping", v.Kind())
	}
	if diff := cmp.Diff([]string{"big", "infinite", "layers", "name", "scale", "width"}, m.Keys()); diff != "" {
		t.Errorf("keys mismatch (-want +got):\n%s", diff)
	}

	want := map[string]any{
		"name":     "level1",
		"width":    int64(30),
		"scale":    0.5,
		"infinite": false,
		"layers":   []any{map[string]any{"id": int64(1)}, nil},
		"big":      int64(12345678901234567),
	}
	if diff := cmp.Diff(want, v.Any()); diff != "" {
		t.Errorf("Any() mismatch (-want +got):\n%s", diff)
	}
}

func TestFromAny_Unsupported(t *testing.T) {
	_, err := FromAny(map[string]any{"ch": make(chan int)})
	if err == nil {
		t.Fatal("FromAny() expected error for channel")
	}
}

func TestEqual(t *testing.T) {
	a := NewMapping()
	a.Set("x", Int(1))
	a.Set("y", Seq(Bool(true), Null()))
	b := NewMapping()
	b.Set("y", Seq(Bool(true), Null()))
	b.Set("x", Number(1))

	wide, err := NumberFromText("9007199254740993")
	if err != nil {
		t.Fatalf("NumberFromText() error = %v", err)
	}
	fraction, err := NumberFromText("2.0")
	if err != nil {
		t.Fatalf("NumberFromText() error = %v", err)
	}

	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"mapping order ignored", Map(a), Map(b), true},
		{"number lexeme ignored", Int(2), Number(2.0), true},
		{"integer and fraction text", Int(2), fraction, true},
		{"wide integers exact", wide, Int(9007199254740992), false},
		{"wide integer itself", wide, Int(9007199254740993), true},
		{"kind differs", String("1"), Int(1), false},
		{"sequence length", Seq(Int(1)), Seq(Int(1), Int(2)), false},
		{"null", Null(), Null(), true},
		{"string", String("a"), String("b"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Equal(tt.a, tt.b); got != tt.want {
				t.Errorf("Equal() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMarshalJSON_KeepsOrder(t *testing.T) {
	m := NewMapping()
	m.Set("version", String("1.10"))
	m.Set("height", Int(20))
	m.Set("layers", Seq(Null(), Bool(false), Number(0.25)))
	m.Set("quote\"d", String("a b"))

	got, err := json.Marshal(Map(m))
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"version":"1.10","height":20,"layers":[null,false,0.25],"quote\"d":"a b"}`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}

func TestMarshalYAML_KeepsOrder(t *testing.T) {
	m := NewMapping()
	m.Set("b", Int(1))
	m.Set("a", String("x"))
	m.Set("n", String("123"))
	m.Set("list", Seq(Bool(true), Null()))

	got, err := yaml.Marshal(Map(m))
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	want := "b: 1\na: x\nn: \"123\"\nlist:\n    - true\n    - null\n"
	if string(got) != want {
		t.Errorf("yaml.Marshal() =\n%s\nwant\n%s", got, want)
	}
}
