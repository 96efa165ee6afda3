// Package document provides an ordered, tree-structured value type used for
// entity persistence and free-form attribute bags.
//
// Objects keep their keys in insertion order so that a document read from
// disk and written back produces the same layout. JSON and YAML codecs are
// provided in json.go and yaml.go.
package document

import (
	"math"
	"slices"
)

// Kind identifies the node type held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable-by-convention document node. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the null value.
func Null() Value { return Value{} }

// Bool wraps a boolean.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Number wraps a float64.
func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

// String wraps a string.
func String(s string) Value { return Value{kind: KindString, s: s} }

// Array wraps a list of values.
func Array(items ...Value) Value {
	return Value{kind: KindArray, arr: items}
}

// ObjectValue wraps an object. A nil object becomes null.
func ObjectValue(o *Object) Value {
	if o == nil {
		return Null()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind returns the node type.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean or def when v is not a bool.
func (v Value) AsBool(def bool) bool {
	if v.kind != KindBool {
		return def
	}
	return v.b
}

// AsNumber returns the number or def when v is not a number.
func (v Value) AsNumber(def float64) float64 {
	if v.kind != KindNumber {
		return def
	}
	return v.n
}

// AsString returns the string or def when v is not a string.
func (v Value) AsString(def string) string {
	if v.kind != KindString {
		return def
	}
	return v.s
}

// AsArray returns the array items, or nil when v is not an array.
func (v Value) AsArray() []Value {
	if v.kind != KindArray {
		return nil
	}
	return v.arr
}

// AsObject returns the object and true when v is an object.
func (v Value) AsObject() (*Object, bool) {
	if v.kind != KindObject {
		return nil, false
	}
	return v.obj, true
}

// Clone returns a deep copy of v.
func (v Value) Clone() Value {
	switch v.kind {
	case KindArray:
		items := make([]Value, len(v.arr))
		for i, item := range v.arr {
			items[i] = item.Clone()
		}
		return Value{kind: KindArray, arr: items}
	case KindObject:
		return Value{kind: KindObject, obj: v.obj.Clone()}
	default:
		return v
	}
}

// Equal reports deep equality. Object key order is significant; numbers are
// compared bit for bit so that NaN payloads and signed zeros are preserved.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return math.Float64bits(v.n) == math.Float64bits(other.n)
	case KindString:
		return v.s == other.s
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(other.obj)
	}
	return false
}

// Object is an ordered string-keyed map of values.
type Object struct {
	keys []string
	vals map[string]Value
}

// NewObject returns an empty object.
func NewObject() *Object {
	return &Object{vals: make(map[string]Value)}
}

// Set stores v under key. Overwriting keeps the key's original position.
// It returns o for chaining.
func (o *Object) Set(key string, v Value) *Object {
	if o.vals == nil {
		o.vals = make(map[string]Value)
	}
	if _, ok := o.vals[key]; !ok {
		o.keys = append(o.keys, key)
	}
	o.vals[key] = v
	return o
}

// SetString is shorthand for Set(key, String(s)).
func (o *Object) SetString(key, s string) *Object { return o.Set(key, String(s)) }

// SetNumber is shorthand for Set(key, Number(n)).
func (o *Object) SetNumber(key string, n float64) *Object { return o.Set(key, Number(n)) }

// SetObject is shorthand for Set(key, ObjectValue(child)).
func (o *Object) SetObject(key string, child *Object) *Object {
	return o.Set(key, ObjectValue(child))
}

// Get returns the value stored under key.
func (o *Object) Get(key string) (Value, bool) {
	if o == nil {
		return Value{}, false
	}
	v, ok := o.vals[key]
	return v, ok
}

// Object returns the child object stored under key.
func (o *Object) Object(key string) (*Object, bool) {
	v, ok := o.Get(key)
	if !ok {
		return nil, false
	}
	return v.AsObject()
}

// Lookup follows a path of object keys. Missing links yield (Null, false).
func (o *Object) Lookup(path ...string) (Value, bool) {
	cur := o
	for i, key := range path {
		v, ok := cur.Get(key)
		if !ok {
			return Value{}, false
		}
		if i == len(path)-1 {
			return v, true
		}
		if cur, ok = v.AsObject(); !ok {
			return Value{}, false
		}
	}
	return ObjectValue(o), o != nil
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.Get(key)
	return ok
}

// Delete removes key, keeping the order of the remaining keys.
func (o *Object) Delete(key string) {
	if o == nil {
		return
	}
	if _, ok := o.vals[key]; !ok {
		return
	}
	delete(o.vals, key)
	o.keys = slices.DeleteFunc(o.keys, func(k string) bool { return k == key })
}

// Keys returns a copy of the keys in insertion order.
func (o *Object) Keys() []string {
	if o == nil {
		return nil
	}
	return slices.Clone(o.keys)
}

// Len returns the number of keys.
func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.keys)
}

// Clone returns a deep copy of o. Cloning nil yields nil.
func (o *Object) Clone() *Object {
	if o == nil {
		return nil
	}
	out := &Object{
		keys: slices.Clone(o.keys),
		vals: make(map[string]Value, len(o.vals)),
	}
	for k, v := range o.vals {
		out.vals[k] = v.Clone()
	}
	return out
}

// Equal reports deep, order-sensitive equality.
func (o *Object) Equal(other *Object) bool {
	if o.Len() != other.Len() {
		return false
	}
	if o == nil || other == nil {
		return o.Len() == 0 && other.Len() == 0
	}
	for i, key := range o.keys {
		if other.keys[i] != key {
			return false
		}
		if !o.vals[key].Equal(other.vals[key]) {
			return false
		}
	}
	return true
}
