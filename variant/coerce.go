package variant

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
)

var (
	// ErrTypeMismatch is returned when a value has no representation in the
	// requested tag (DISP_E_TYPEMISMATCH).
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrOverflow is returned when a value does not fit the requested tag
	// (DISP_E_OVERFLOW).
	ErrOverflow = errors.New("overflow")
	// ErrNullValue is returned when coercing Null to a concrete tag.
	ErrNullValue = errors.New("null value")
)

// CoercionError describes a failed conversion between two tags.
type CoercionError struct {
	From Tag
	To   Tag
	Err  error
}

func (e *CoercionError) Error() string {
	return fmt.Sprintf("coerce %s to %s: %v", e.From, e.To, e.Err)
}

func (e *CoercionError) Unwrap() error { return e.Err }

// Converter converts a value that is neither Null nor a Ref to one of the
// concrete tags Int32, Int64, Float64, Bool or String. Plain errors are
// wrapped in a *CoercionError by ChangeType.
type Converter func(v Value, to Tag) (Value, error)

var converter atomic.Pointer[Converter]

// SetConverter installs c as the conversion used by ChangeType and returns
// the previous one. A nil c restores the built-in rules. Platforms with an
// automation runtime install its own change-type routine.
func SetConverter(c Converter) Converter {
	prev := currentConverter()
	if c == nil {
		converter.Store(nil)
	} else {
		converter.Store(&c)
	}
	return prev
}

func currentConverter() Converter {
	if c := converter.Load(); c != nil {
		return *c
	}
	return convert
}

// ChangeType converts v to the requested tag following OLE Automation
// VariantChangeType semantics (flags 0):
//
//   - Empty becomes 0, "" or false; Null fails for every concrete tag.
//   - Bool true is -1 as a number and "-1" as text; false is 0 and "0".
//   - Numbers are true when non-zero.
//   - Floats round half to even when narrowed to an integer.
//   - Out of range results fail with ErrOverflow.
//   - A Ref is converted through the slot it points at.
//
// Concrete conversions go through the installed Converter.
func ChangeType(v Value, to Tag) (Value, error) {
	return changeType(v, to, currentConverter())
}

// PortableChangeType is ChangeType with the built-in rules, regardless of
// the installed Converter.
func PortableChangeType(v Value, to Tag) (Value, error) {
	return changeType(v, to, convert)
}

func changeType(v Value, to Tag, conv Converter) (Value, error) {
	if v.tag == Ref {
		if v.ref == nil {
			return Value{}, &CoercionError{From: Ref, To: to, Err: ErrNullValue}
		}
		return changeType(*v.ref, to, conv)
	}
	if v.tag == to {
		return v, nil
	}

	fail := func(err error) (Value, error) {
		var ce *CoercionError
		if errors.As(err, &ce) {
			return Value{}, err
		}
		return Value{}, &CoercionError{From: v.tag, To: to, Err: err}
	}

	switch to {
	case Empty:
		return NewEmpty(), nil
	case Null:
		return NewNull(), nil
	case Int32, Int64, Float64, Bool, String:
	default:
		return fail(ErrTypeMismatch)
	}
	if v.tag == Null {
		return fail(ErrNullValue)
	}

	out, err := conv(v, to)
	if err != nil {
		return fail(err)
	}
	return out, nil
}

// convert holds the built-in rules.
func convert(v Value, to Tag) (Value, error) {
	switch to {
	case Int32:
		n, err := toInt(v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return Value{}, err
		}
		return NewInt32(int32(n)), nil
	case Int64:
		n, err := toInt(v, math.MinInt64, math.MaxInt64)
		if err != nil {
			return Value{}, err
		}
		return NewInt64(n), nil
	case Float64:
		f, err := toFloat(v)
		if err != nil {
			return Value{}, err
		}
		return NewFloat64(f), nil
	case Bool:
		b, err := toBool(v)
		if err != nil {
			return Value{}, err
		}
		return NewBool(b), nil
	case String:
		return NewString(toText(v)), nil
	}
	return Value{}, ErrTypeMismatch
}

func toInt(v Value, lo, hi int64) (int64, error) {
	switch v.tag {
	case Empty:
		return 0, nil
	case Int32, Int64:
		if v.num < lo || v.num > hi {
			return 0, ErrOverflow
		}
		return v.num, nil
	case Bool:
		if v.num != 0 {
			return -1, nil
		}
		return 0, nil
	case Float64:
		return roundToInt(v.f, lo, hi)
	case String:
		n, f, isInt, err := parseNumber(v.s)
		if err != nil {
			return 0, err
		}
		if !isInt {
			return roundToInt(f, lo, hi)
		}
		if n < lo || n > hi {
			return 0, ErrOverflow
		}
		return n, nil
	}
	return 0, ErrTypeMismatch
}

func roundToInt(f float64, lo, hi int64) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrOverflow
	}
	r := math.RoundToEven(f)
	// float64(math.MaxInt64) rounds up to 2^63, so the upper bound is exclusive.
	if r < float64(lo) || r >= float64(hi)+1 {
		return 0, ErrOverflow
	}
	return int64(r), nil
}

func toFloat(v Value) (float64, error) {
	switch v.tag {
	case Empty:
		return 0, nil
	case Int32, Int64:
		return float64(v.num), nil
	case Bool:
		if v.num != 0 {
			return -1, nil
		}
		return 0, nil
	case String:
		n, f, isInt, err := parseNumber(v.s)
		if err != nil {
			return 0, err
		}
		if isInt {
			return float64(n), nil
		}
		return f, nil
	}
	return 0, ErrTypeMismatch
}

func toBool(v Value) (bool, error) {
	switch v.tag {
	case Empty:
		return false, nil
	case Int32, Int64:
		return v.num != 0, nil
	case Float64:
		return v.f != 0, nil
	case String:
		s := strings.TrimSpace(v.s)
		switch {
		case strings.EqualFold(s, "true"), strings.EqualFold(s, "#TRUE#"):
			return true, nil
		case strings.EqualFold(s, "false"), strings.EqualFold(s, "#FALSE#"):
			return false, nil
		}
		n, f, isInt, err := parseNumber(s)
		if err != nil {
			return false, err
		}
		if isInt {
			return n != 0, nil
		}
		return f != 0, nil
	}
	return false, ErrTypeMismatch
}

// parseNumber reads numeric text the way the automation runtime does with
// an English locale: surrounding spaces, a sign, "," group separators in
// the integer part, a fraction and an exponent. "&H" and "&O" prefix
// unsigned hexadecimal and octal integers. isInt reports whether n holds
// the value; otherwise f does.
func parseNumber(s string) (n int64, f float64, isInt bool, err error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && s[0] == '&' {
		base := 0
		switch s[1] {
		case 'h', 'H':
			base = 16
		case 'o', 'O':
			base = 8
		}
		if base != 0 {
			u, perr := strconv.ParseUint(s[2:], base, 64)
			switch {
			case errors.Is(perr, strconv.ErrRange), perr == nil && u > math.MaxInt64:
				return 0, 0, false, ErrOverflow
			case perr != nil:
				return 0, 0, false, ErrTypeMismatch
			}
			return int64(u), 0, true, nil
		}
	}

	var b strings.Builder
	digits, inInt := 0, true
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			if inInt {
				digits++
			}
		case c == ',':
			if !inInt || digits == 0 {
				return 0, 0, false, ErrTypeMismatch
			}
			continue
		case c == '+' || c == '-':
		case c == '.' || c == 'e' || c == 'E':
			inInt = false
		default:
			return 0, 0, false, ErrTypeMismatch
		}
		b.WriteByte(c)
	}
	s = b.String()

	if n, perr := strconv.ParseInt(s, 10, 64); perr == nil {
		return n, 0, true, nil
	} else if errors.Is(perr, strconv.ErrRange) {
		return 0, 0, false, ErrOverflow
	}
	f, perr := strconv.ParseFloat(s, 64)
	switch {
	case errors.Is(perr, strconv.ErrRange):
		return 0, 0, false, ErrOverflow
	case perr != nil:
		return 0, 0, false, ErrTypeMismatch
	}
	return 0, f, false, nil
}

func toText(v Value) string {
	switch v.tag {
	case Int32, Int64:
		return strconv.FormatInt(v.num, 10)
	case Float64:
		return strconv.FormatFloat(v.f, 'G', 15, 64)
	case Bool:
		if v.num != 0 {
			return "-1"
		}
		return "0"
	case String:
		return v.s
	}
	return ""
}

// AsInt32 coerces v to a 32-bit integer.
func (v Value) AsInt32() (int32, error) {
	c, err := ChangeType(v, Int32)
	if err != nil {
		return 0, err
	}
	return int32(c.num), nil
}

// AsInt64 coerces v to a 64-bit integer.
func (v Value) AsInt64() (int64, error) {
	c, err := ChangeType(v, Int64)
	if err != nil {
		return 0, err
	}
	return c.num, nil
}

// AsFloat64 coerces v to a float.
func (v Value) AsFloat64() (float64, error) {
	c, err := ChangeType(v, Float64)
	if err != nil {
		return 0, err
	}
	return c.f, nil
}

// AsBool coerces v to a boolean.
func (v Value) AsBool() (bool, error) {
	c, err := ChangeType(v, Bool)
	if err != nil {
		return false, err
	}
	return c.num != 0, nil
}

// AsString coerces v to text.
func (v Value) AsString() (string, error) {
	c, err := ChangeType(v, String)
	if err != nil {
		return "", err
	}
	return c.s, nil
}

// Int32Or coerces v to a 32-bit integer, returning def when coercion fails.
func (v Value) Int32Or(def int32) int32 {
	n, err := v.AsInt32()
	if err != nil {
		return def
	}
	return n
}

// Int64Or coerces v to a 64-bit integer, returning def when coercion fails.
func (v Value) Int64Or(def int64) int64 {
	n, err := v.AsInt64()
	if err != nil {
		return def
	}
	return n
}

// StringOr coerces v to text, returning def when coercion fails.
func (v Value) StringOr(def string) string {
	s, err := v.AsString()
	if err != nil {
		return def
	}
	return s
}
