package gura

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant of a Value is populated.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindFloat
	KindText
	KindArray
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInteger:
		return "integer"
	case KindFloat:
		return "float"
	case KindText:
		return "text"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged union produced by Load and consumed by Dump: one of
// Null, Bool, Integer, Float, Text, Array or Object.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []Value
	obj  *Object
}

// Null returns the Gura null value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a Gura boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Integer returns a Gura 64-bit signed integer value.
func Integer(i int64) Value { return Value{kind: KindInteger, i: i} }

// Float returns a Gura IEEE-754 64-bit float value.
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// Text returns a Gura string value.
func Text(s string) Value { return Value{kind: KindText, s: s} }

// Array returns a Gura array value wrapping items in order.
func Array(items []Value) Value { return Value{kind: KindArray, arr: items} }

// FromObject returns a Gura object value.
func FromObject(o *Object) Value {
	if o == nil {
		o = NewObject()
	}
	return Value{kind: KindObject, obj: o}
}

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the null value.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsBool returns the boolean payload; ok is false if v is not a Bool.
func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

// AsInteger returns the integer payload; ok is false if v is not an Integer.
func (v Value) AsInteger() (int64, bool) { return v.i, v.kind == KindInteger }

// AsFloat returns the float payload; ok is false if v is not a Float.
func (v Value) AsFloat() (float64, bool) { return v.f, v.kind == KindFloat }

// AsText returns the string payload; ok is false if v is not Text.
func (v Value) AsText() (string, bool) { return v.s, v.kind == KindText }

// AsArray returns the element slice; ok is false if v is not an Array.
func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

// AsObject returns the underlying Object; ok is false if v is not an Object.
func (v Value) AsObject() (*Object, bool) { return v.obj, v.kind == KindObject }

// Object is an ordered string-keyed map: iteration and serialization follow
// insertion order, and a key may appear at most once.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object.
func NewObject() *Object {
	return &Object{values: map[string]Value{}}
}

// Set inserts key/value. It reports false without modifying the object if
// key is already present.
func (o *Object) Set(key string, v Value) bool {
	if _, exists := o.values[key]; exists {
		return false
	}
	o.keys = append(o.keys, key)
	o.values[key] = v
	return true
}

// Get returns the value for key; ok is false if key is absent.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether key is present.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Keys returns the keys in insertion order. The returned slice must not be
// mutated by the caller.
func (o *Object) Keys() []string { return o.keys }

// Len returns the number of entries.
func (o *Object) Len() int { return len(o.keys) }

// Equal reports whether v and other represent the same Gura value tree.
// Two Float NaNs compare equal to each other (per the "is-nan" comparison
// rule for property tests), unlike Go's own float equality.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInteger:
		return v.i == other.i
	case KindFloat:
		if math.IsNaN(v.f) && math.IsNaN(other.f) {
			return true
		}
		return v.f == other.f
	case KindText:
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
		if v.obj.Len() != other.obj.Len() {
			return false
		}
		for _, k := range v.obj.Keys() {
			a, _ := v.obj.Get(k)
			b, ok := other.obj.Get(k)
			if !ok || !a.Equal(b) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Debug renders an unambiguous, type-tagged representation of v, useful in
// test failure messages. It is not the canonical Gura serialization — use
// Dump for that.
func (v Value) Debug() string {
	var b strings.Builder
	writeDebug(&b, v)
	return b.String()
}

func writeDebug(b *strings.Builder, v Value) {
	switch v.kind {
	case KindNull:
		b.WriteString("Null")
	case KindBool:
		b.WriteString("Bool(")
		b.WriteString(strconv.FormatBool(v.b))
		b.WriteByte(')')
	case KindInteger:
		b.WriteString("Integer(")
		b.WriteString(strconv.FormatInt(v.i, 10))
		b.WriteByte(')')
	case KindFloat:
		b.WriteString("Float(")
		b.WriteString(strconv.FormatFloat(v.f, 'g', -1, 64))
		b.WriteByte(')')
	case KindText:
		b.WriteString("Text(")
		b.WriteString(strconv.Quote(v.s))
		b.WriteByte(')')
	case KindArray:
		b.WriteString("Array[")
		for i, item := range v.arr {
			if i > 0 {
				b.WriteString(", ")
			}
			writeDebug(b, item)
		}
		b.WriteByte(']')
	case KindObject:
		b.WriteString("Object{")
		for i, k := range v.obj.Keys() {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			val, _ := v.obj.Get(k)
			writeDebug(b, val)
		}
		b.WriteByte('}')
	default:
		b.WriteString("<unknown>")
	}
}
