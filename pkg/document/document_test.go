package document

import (
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestObjectKeepsInsertionOrder(t *testing.T) {
	o := NewObject().
		SetString("zeta", "z").
		SetNumber("alpha", 1).
		SetString("mid", "m")
	o.SetNumber("zeta", 2) // overwrite keeps position

	got := strings.Join(o.Keys(), ",")
	if got != "zeta,alpha,mid" {
		t.Errorf("Keys() = %s, want zeta,alpha,mid", got)
	}

	o.Delete("alpha")
	if got := strings.Join(o.Keys(), ","); got != "zeta,mid" {
		t.Errorf("Keys() after Delete = %s, want zeta,mid", got)
	}
}

func TestParseJSONPreservesOrder(t *testing.T) {
	src := `{"b":1,"a":{"y":"1","x":[true,null,2.5]},"c":"s"}`
	v, err := ParseJSON([]byte(src))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	out, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(out) != src {
		t.Errorf("round trip = %s, want %s", out, src)
	}
}

func TestParseJSONErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"empty", ""},
		{"trailing", `{"a":1} 2`},
		{"unterminated", `{"a":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseJSON([]byte(tt.src)); err == nil {
				t.Errorf("expected error for %q", tt.src)
			}
		})
	}

	if _, err := ParseJSONObject([]byte(`[1,2]`)); err != ErrNotObject {
		t.Errorf("ParseJSONObject(array) error = %v, want ErrNotObject", err)
	}
}

func TestNumbersRoundTripExactly(t *testing.T) {
	values := []float64{0, -0.0, 1, 0.1, 1.0 / 3.0, 123456.789e10, -87.65432198765, 5e-324, 1e21}
	for _, n := range values {
		doc := NewObject().SetNumber("n", n)

		js, err := doc.MarshalJSON()
		if err != nil {
			t.Fatalf("MarshalJSON(%v): %v", n, err)
		}
		back, err := ParseJSONObject(js)
		if err != nil {
			t.Fatalf("ParseJSONObject(%s): %v", js, err)
		}
		got, _ := back.Get("n")
		if math.Float64bits(got.AsNumber(math.NaN())) != math.Float64bits(n) {
			t.Errorf("JSON round trip of %v = %v", n, got.AsNumber(0))
		}
	}
}

func TestNaNIsRejected(t *testing.T) {
	if _, err := Number(math.NaN()).MarshalJSON(); err == nil {
		t.Error("expected error marshalling NaN")
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	src := NewObject().
		SetString("kind", "armor_stand").
		SetObject("position", NewObject().SetNumber("x", 1).SetNumber("y", 64.5).SetNumber("z", -3)).
		SetNumber("rotation", 1e20).
		Set("flags", Array(Bool(true), Null(), String("007")))

	v := ObjectValue(src)
	node, err := v.MarshalYAML()
	if err != nil {
		t.Fatalf("MarshalYAML: %v", err)
	}
	if node == nil {
		t.Fatal("MarshalYAML returned nil node")
	}

	out, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	back, err := ParseYAMLObject(out)
	if err != nil {
		t.Fatalf("ParseYAMLObject: %v\n%s", err, out)
	}
	if !back.Equal(src) {
		t.Errorf("YAML round trip mismatch:\n%s", out)
	}
}

func TestLookup(t *testing.T) {
	doc := NewObject().SetObject("armor", NewObject().SetString("head", "minecraft:diamond_helmet"))

	v, ok := doc.Lookup("armor", "head")
	if !ok || v.AsString("") != "minecraft:diamond_helmet" {
		t.Errorf("Lookup(armor, head) = %v, %v", v, ok)
	}
	if _, ok := doc.Lookup("armor", "chest"); ok {
		t.Error("Lookup(armor, chest) should be missing")
	}
	if _, ok := doc.Lookup("armor", "head", "deeper"); ok {
		t.Error("Lookup through a string should fail")
	}
	var nilObj *Object
	if _, ok := nilObj.Lookup("x"); ok {
		t.Error("Lookup on nil object should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	inner := NewObject().SetString("head", "a")
	doc := NewObject().SetObject("armor", inner)

	cp := doc.Clone()
	inner.SetString("head", "b")

	v, _ := cp.Lookup("armor", "head")
	if v.AsString("") != "a" {
		t.Errorf("clone was mutated through original: head = %q", v.AsString(""))
	}
	if doc.Equal(cp) {
		t.Error("Equal should report the divergence")
	}
}

func TestInterface(t *testing.T) {
	doc := NewObject().SetNumber("n", 2).Set("list", Array(String("a")))
	m, ok := ObjectValue(doc).Interface().(map[string]any)
	if !ok {
		t.Fatalf("Interface() = %T, want map", ObjectValue(doc).Interface())
	}
	if _, ok := m["list"].([]any); !ok {
		t.Errorf("list = %T, want []any", m["list"])
	}
}
