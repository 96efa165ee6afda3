// Package nbt models an already-decoded world tag tree.
//
// Accessors never fail: looking up a missing child or reading a value of the
// wrong type yields an End tag or the supplied default, so callers can chain
// lookups such as tag.Get("ArmorItems").Index(3).Get("id").StringValue("").
package nbt

// Tag is a node of the tag tree.
type Tag interface {
	// Get returns the named child of a compound, or End.
	Get(name string) Tag
	// Index returns the i-th element of a list, or End.
	Index(i int) Tag
	// Len returns the number of list elements or compound entries.
	Len() int
	// StringValue returns the string payload or def.
	StringValue(def string) string
	// DoubleValue returns the numeric payload as float64, or def.
	DoubleValue(def float64) float64
}

// End is the absent tag.
type End struct{}

func (End) Get(string) Tag                  { return End{} }
func (End) Index(int) Tag                   { return End{} }
func (End) Len() int                        { return 0 }
func (End) StringValue(def string) string   { return def }
func (End) DoubleValue(def float64) float64 { return def }

// Compound is a named set of child tags.
type Compound map[string]Tag

func (c Compound) Get(name string) Tag {
	if t, ok := c[name]; ok && t != nil {
		return t
	}
	return End{}
}
func (Compound) Index(int) Tag                   { return End{} }
func (c Compound) Len() int                      { return len(c) }
func (Compound) StringValue(def string) string   { return def }
func (Compound) DoubleValue(def float64) float64 { return def }

// List is an ordered sequence of tags.
type List []Tag

func (List) Get(string) Tag { return End{} }
func (l List) Index(i int) Tag {
	if i < 0 || i >= len(l) || l[i] == nil {
		return End{}
	}
	return l[i]
}
func (l List) Len() int                      { return len(l) }
func (List) StringValue(def string) string   { return def }
func (List) DoubleValue(def float64) float64 { return def }

// String is a string payload.
type String string

func (String) Get(string) Tag                  { return End{} }
func (String) Index(int) Tag                   { return End{} }
func (String) Len() int                        { return 0 }
func (s String) StringValue(string) string     { return string(s) }
func (String) DoubleValue(def float64) float64 { return def }

// Double is a 64-bit float payload.
type Double float64

func (Double) Get(string) Tag                { return End{} }
func (Double) Index(int) Tag                 { return End{} }
func (Double) Len() int                      { return 0 }
func (Double) StringValue(def string) string { return def }
func (d Double) DoubleValue(float64) float64 { return float64(d) }

// Float is a 32-bit float payload. Entity rotations are stored as floats.
type Float float32

func (Float) Get(string) Tag                { return End{} }
func (Float) Index(int) Tag                 { return End{} }
func (Float) Len() int                      { return 0 }
func (Float) StringValue(def string) string { return def }
func (f Float) DoubleValue(float64) float64 { return float64(f) }

// Int is a 32-bit integer payload.
type Int int32

func (Int) Get(string) Tag                { return End{} }
func (Int) Index(int) Tag                 { return End{} }
func (Int) Len() int                      { return 0 }
func (Int) StringValue(def string) string { return def }
func (i Int) DoubleValue(float64) float64 { return float64(i) }
