// Package variant implements the dynamically typed values exchanged with a
// late-bound automation object.
//
// A Value carries exactly one of the following tags:
//
//	Empty   - no value; also what an empty string argument marshals to
//	Null    - explicit null
//	Int32   - 32-bit signed integer (VT_I4)
//	Int64   - 64-bit signed integer (VT_I8)
//	Float64 - double precision float (VT_R8)
//	Bool    - boolean (VT_BOOL)
//	String  - text (VT_BSTR)
//	Ref     - by-reference slot the callee writes an output into
//
// A Ref never carries data itself: it points at a slot owned by the caller
// which the automation object fills during the call.
//
// Conversions between tags follow the OLE Automation change-type rules, see
// ChangeType.
package variant

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Tag identifies the dynamic type of a Value.
type Tag uint8

const (
	// Empty is the zero Tag; the zero Value is Empty.
	Empty Tag = iota
	Null
	Int32
	Int64
	Float64
	Bool
	String
	Ref
)

// String returns the short tag name.
func (t Tag) String() string {
	switch t {
	case Empty:
		return "Empty"
	case Null:
		return "Null"
	case Int32:
		return "I32"
	case Int64:
		return "I64"
	case Float64:
		return "Db"
	case Bool:
		return "B"
	case String:
		return "S"
	case Ref:
		return "Ref"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// ParseTag parses a tag name as returned by Tag.String. Common long forms
// ("int32", "string", ...) are accepted as well.
func ParseTag(s string) (Tag, error) {
	switch s {
	case "Empty", "empty":
		return Empty, nil
	case "Null", "null", "Nil":
		return Null, nil
	case "I32", "i32", "int32", "int":
		return Int32, nil
	case "I64", "i64", "int64", "long":
		return Int64, nil
	case "Db", "db", "float64", "double":
		return Float64, nil
	case "B", "b", "bool":
		return Bool, nil
	case "S", "s", "string", "str":
		return String, nil
	case "Ref", "ref", "out":
		return Ref, nil
	}
	return Empty, fmt.Errorf("%w: unknown tag %q", ErrUnsupportedType, s)
}

var (
	// ErrUnsupportedType is returned when a Go value has no Value representation.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrNotRef is returned when storing into a Value that is not a Ref.
	ErrNotRef = errors.New("value is not a reference")
)

// Value is a tagged union. The zero Value is Empty.
type Value struct {
	tag Tag
	num int64
	f   float64
	s   string
	ref *Value
}

// NewEmpty returns an Empty value.
func NewEmpty() Value { return Value{} }

// NewNull returns a Null value.
func NewNull() Value { return Value{tag: Null} }

// NewInt32 returns an Int32 value.
func NewInt32(v int32) Value { return Value{tag: Int32, num: int64(v)} }

// NewInt64 returns an Int64 value.
func NewInt64(v int64) Value { return Value{tag: Int64, num: v} }

// NewFloat64 returns a Float64 value.
func NewFloat64(v float64) Value { return Value{tag: Float64, f: v} }

// NewBool returns a Bool value.
func NewBool(v bool) Value {
	if v {
		return Value{tag: Bool, num: 1}
	}
	return Value{tag: Bool}
}

// NewString returns a String value. The empty string is kept as a String;
// argument marshalling is responsible for turning it into Empty.
func NewString(v string) Value { return Value{tag: String, s: v} }

// NewRef returns a by-reference value pointing at slot.
func NewRef(slot *Value) Value { return Value{tag: Ref, ref: slot} }

// Tag returns the dynamic type of v.
func (v Value) Tag() Tag { return v.tag }

// IsEmpty reports whether v is Empty.
func (v Value) IsEmpty() bool { return v.tag == Empty }

// IsRef reports whether v is a by-reference slot.
func (v Value) IsRef() bool { return v.tag == Ref }

// Deref returns the slot a Ref points at, or nil for any other tag.
func (v Value) Deref() *Value {
	if v.tag != Ref {
		return nil
	}
	return v.ref
}

// Store writes x into the slot referenced by v.
func (v Value) Store(x Value) error {
	if v.tag != Ref || v.ref == nil {
		return ErrNotRef
	}
	if x.tag == Ref {
		return fmt.Errorf("%w: cannot store a reference into a slot", ErrUnsupportedType)
	}
	*v.ref = x
	return nil
}

// Interface returns the natural Go representation of v: nil for Empty and
// Null, int32, int64, float64, bool, string, or the referenced slot's value.
func (v Value) Interface() interface{} {
	switch v.tag {
	case Int32:
		return int32(v.num)
	case Int64:
		return v.num
	case Float64:
		return v.f
	case Bool:
		return v.num != 0
	case String:
		return v.s
	case Ref:
		if v.ref == nil {
			return nil
		}
		return v.ref.Interface()
	default:
		return nil
	}
}

// String formats v for logs and diagnostics, e.g. I32(5) or S("abc").
func (v Value) String() string {
	switch v.tag {
	case Empty, Null:
		return v.tag.String()
	case Int32, Int64:
		return v.tag.String() + "(" + strconv.FormatInt(v.num, 10) + ")"
	case Float64:
		return "Db(" + strconv.FormatFloat(v.f, 'g', -1, 64) + ")"
	case Bool:
		return "B(" + strconv.FormatBool(v.num != 0) + ")"
	case String:
		return "S(" + strconv.Quote(v.s) + ")"
	case Ref:
		if v.ref == nil {
			return "Ref(nil)"
		}
		return "Ref(" + v.ref.String() + ")"
	default:
		return v.tag.String()
	}
}

// Equal reports whether a and b carry the same tag and payload. Refs are
// equal when they point at the same slot.
func Equal(a, b Value) bool {
	if a.tag != b.tag {
		return false
	}
	switch a.tag {
	case Float64:
		return a.f == b.f || (math.IsNaN(a.f) && math.IsNaN(b.f))
	case String:
		return a.s == b.s
	case Ref:
		return a.ref == b.ref
	default:
		return a.num == b.num
	}
}

// Of returns the natural Value for a Go value. Integers that fit in 32 bits
// become Int32, larger ones Int64. A *Value becomes a Ref to it.
func Of(x interface{}) (Value, error) {
	switch v := x.(type) {
	case nil:
		return NewEmpty(), nil
	case Value:
		return v, nil
	case *Value:
		if v == nil {
			return NewEmpty(), nil
		}
		return NewRef(v), nil
	case int32:
		return NewInt32(v), nil
	case int64:
		return NewInt64(v), nil
	case int:
		return ofInt64(int64(v)), nil
	case int8:
		return NewInt32(int32(v)), nil
	case int16:
		return NewInt32(int32(v)), nil
	case uint8:
		return NewInt32(int32(v)), nil
	case uint16:
		return NewInt32(int32(v)), nil
	case uint32:
		return ofInt64(int64(v)), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return Value{}, &CoercionError{From: Int64, To: Int64, Err: ErrOverflow}
		}
		return ofInt64(int64(v)), nil
	case uint64:
		if v > math.MaxInt64 {
			return Value{}, &CoercionError{From: Int64, To: Int64, Err: ErrOverflow}
		}
		return ofInt64(int64(v)), nil
	case float32:
		return NewFloat64(float64(v)), nil
	case float64:
		return NewFloat64(v), nil
	case bool:
		return NewBool(v), nil
	case string:
		return NewString(v), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedType, x)
	}
}

// From converts a Go value into a Value of the given tag.
func From(tag Tag, x interface{}) (Value, error) {
	v, err := Of(x)
	if err != nil {
		return Value{}, err
	}
	if v.tag == tag {
		return v, nil
	}
	return ChangeType(v, tag)
}

func ofInt64(n int64) Value {
	if n >= math.MinInt32 && n <= math.MaxInt32 {
		return NewInt32(int32(n))
	}
	return NewInt64(n)
}
