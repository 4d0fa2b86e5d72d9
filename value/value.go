// Package value defines the Gura document model: the tagged Value
// union of spec.md section 3.1 and its insertion-ordered Object
// container.
//
// The shape is grounded on sqlparser/dom.go's Unparsed/PosString/
// Declare value shapes and the insertion-order-preserving append
// pattern of sqlparser.Document.Include, generalized from a flat
// collection of SQL-statement records into a single recursive tagged
// value tree.
package value

import "fmt"

// Kind tags which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Integer
	Float
	String
	Array
	ObjectKind
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Integer:
		return "Integer"
	case Float:
		return "Float"
	case String:
		return "String"
	case Array:
		return "Array"
	case ObjectKind:
		return "Object"
	default:
		return "Unknown"
	}
}

// Value is a tagged sum of the Gura scalar and container types. It is
// a plain value type: copying a Value copies the tag and, for Array
// and Object, the (shared) underlying slice/Object pointer — callers
// that need a deep copy should build a new tree explicitly.
type Value struct {
	kind Kind

	boolVal   bool
	intVal    int64
	floatVal  float64
	stringVal string
	arrayVal  []Value
	objectVal *Object
}

// NewNull returns the Null value.
func NewNull() Value { return Value{kind: Null} }

// NewBool returns a Bool value.
func NewBool(b bool) Value { return Value{kind: Bool, boolVal: b} }

// NewInteger returns an Integer value.
func NewInteger(i int64) Value { return Value{kind: Integer, intVal: i} }

// NewFloat returns a Float value.
func NewFloat(f float64) Value { return Value{kind: Float, floatVal: f} }

// NewString returns a String value.
func NewString(s string) Value { return Value{kind: String, stringVal: s} }

// NewArray returns an Array value wrapping items (not copied).
func NewArray(items []Value) Value { return Value{kind: Array, arrayVal: items} }

// NewObject returns an Object value wrapping obj. A nil obj is
// normalized to an empty, non-nil Object.
func NewObject(obj *Object) Value {
	if obj == nil {
		obj = NewEmptyObject()
	}
	return Value{kind: ObjectKind, objectVal: obj}
}

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether v is the Null value.
func (v Value) IsNull() bool { return v.kind == Null }

// Bool returns v's boolean payload. Only meaningful when Kind() == Bool.
func (v Value) Bool() bool { return v.boolVal }

// Int returns v's integer payload. Only meaningful when Kind() == Integer.
func (v Value) Int() int64 { return v.intVal }

// Float64 returns v's float payload. Only meaningful when Kind() == Float.
func (v Value) Float64() float64 { return v.floatVal }

// Str returns v's string payload. Only meaningful when Kind() == String.
func (v Value) Str() string { return v.stringVal }

// Items returns v's array payload. Only meaningful when Kind() == Array.
func (v Value) Items() []Value { return v.arrayVal }

// Object returns v's object payload. Only meaningful when Kind() == ObjectKind.
func (v Value) Object() *Object { return v.objectVal }

// InterpolationString renders v the way string interpolation does for
// scalar variables (spec.md section 4.5): integers and floats in
// canonical decimal form, strings verbatim. Array, Object, and Null
// are not valid interpolation targets; callers must check Kind first.
func (v Value) InterpolationString() string {
	switch v.kind {
	case Integer:
		return fmt.Sprintf("%d", v.intVal)
	case Float:
		return formatFloat(v.floatVal)
	case String:
		return v.stringVal
	case Bool:
		if v.boolVal {
			return "true"
		}
		return "false"
	default:
		return ""
	}
}

// Equal reports deep structural equality between two Values. Objects
// compare equal when they hold the same keys bound to equal values;
// their insertion order is not compared.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.boolVal == b.boolVal
	case Integer:
		return a.intVal == b.intVal
	case Float:
		return a.floatVal == b.floatVal || (isNaN(a.floatVal) && isNaN(b.floatVal))
	case String:
		return a.stringVal == b.stringVal
	case Array:
		if len(a.arrayVal) != len(b.arrayVal) {
			return false
		}
		for i := range a.arrayVal {
			if !Equal(a.arrayVal[i], b.arrayVal[i]) {
				return false
			}
		}
		return true
	case ObjectKind:
		return objectsEqual(a.objectVal, b.objectVal)
	default:
		return false
	}
}

func isNaN(f float64) bool { return f != f }

func objectsEqual(a, b *Object) bool {
	if a.Len() != b.Len() {
		return false
	}
	for i, key := range a.keys {
		bv, ok := b.Get(key)
		if !ok {
			return false
		}
		if !Equal(a.vals[i], bv) {
			return false
		}
	}
	return true
}
