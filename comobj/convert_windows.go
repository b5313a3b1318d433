//go:build windows

package comobj

import (
	"errors"
	"fmt"
	"math"
	"unsafe"

	"github.com/go-ole/go-ole"
	"golang.org/x/sys/windows"

	"github.com/smnsjas/go-aojia/variant"
)

var procVariantChangeType = windows.NewLazySystemDLL("oleaut32.dll").NewProc("VariantChangeType")

func init() {
	variant.SetConverter(Convert)
}

// vartypes maps the concrete tags to their VARTYPE.
var vartypes = map[variant.Tag]ole.VT{
	variant.Int32:   ole.VT_I4,
	variant.Int64:   ole.VT_I8,
	variant.Float64: ole.VT_R8,
	variant.Bool:    ole.VT_BOOL,
	variant.String:  ole.VT_BSTR,
}

// Convert converts v with the runtime's VariantChangeType. It is installed
// as the variant.Converter, so values read from the object follow the same
// rules the object itself applies.
func Convert(v variant.Value, to variant.Tag) (variant.Value, error) {
	vt, ok := vartypes[to]
	if !ok {
		return variant.PortableChangeType(v, to)
	}

	src, err := toVariant(v)
	if err != nil {
		return variant.Value{}, err
	}
	defer ole.VariantClear(&src)

	dst, err := changeType(&src, vt)
	defer ole.VariantClear(&dst)
	if err != nil {
		var he *HResultError
		if errors.As(err, &he) {
			switch he.Code {
			case hrTypeMismatch:
				return variant.Value{}, variant.ErrTypeMismatch
			case hrOverflow:
				return variant.Value{}, variant.ErrOverflow
			}
		}
		return variant.Value{}, err
	}
	return fromVariant(&dst)
}

// toVariant converts an input value. The returned VARIANT owns any BSTR and
// must be cleared.
func toVariant(v variant.Value) (ole.VARIANT, error) {
	switch v.Tag() {
	case variant.Empty:
		return ole.NewVariant(ole.VT_EMPTY, 0), nil
	case variant.Null:
		return ole.NewVariant(ole.VT_NULL, 0), nil
	case variant.Int32:
		n, _ := v.AsInt32()
		return ole.NewVariant(ole.VT_I4, int64(n)), nil
	case variant.Int64:
		n, _ := v.AsInt64()
		return ole.NewVariant(ole.VT_I8, n), nil
	case variant.Float64:
		f, _ := v.AsFloat64()
		return ole.NewVariant(ole.VT_R8, int64(math.Float64bits(f))), nil
	case variant.Bool:
		b, _ := v.AsBool()
		if b {
			return ole.NewVariant(ole.VT_BOOL, -1), nil
		}
		return ole.NewVariant(ole.VT_BOOL, 0), nil
	case variant.String:
		s, _ := v.AsString()
		bstr := ole.SysAllocString(s)
		return ole.NewVariant(ole.VT_BSTR, int64(uintptr(unsafe.Pointer(bstr)))), nil
	default:
		return ole.VARIANT{}, fmt.Errorf("%w: %s", variant.ErrUnsupportedType, v.Tag())
	}
}

// fromVariant converts a returned VARIANT. Types without a natural tag are
// converted to text by the runtime.
func fromVariant(v *ole.VARIANT) (variant.Value, error) {
	switch v.VT {
	case ole.VT_EMPTY:
		return variant.NewEmpty(), nil
	case ole.VT_NULL:
		return variant.NewNull(), nil
	case ole.VT_BYREF | ole.VT_VARIANT:
		return fromVariant((*ole.VARIANT)(unsafe.Pointer(uintptr(v.Val))))
	}

	if x := v.Value(); x != nil {
		if val, err := variant.Of(x); err == nil {
			return val, nil
		}
	}

	text, err := changeType(v, ole.VT_BSTR)
	if err != nil {
		return variant.Value{}, fmt.Errorf("%w: vartype %d", variant.ErrUnsupportedType, v.VT)
	}
	defer ole.VariantClear(&text)
	return variant.NewString(text.ToString()), nil
}

// changeType calls VariantChangeType with no flags.
func changeType(src *ole.VARIANT, vt ole.VT) (ole.VARIANT, error) {
	var dst ole.VARIANT
	ole.VariantInit(&dst)
	hr, _, _ := procVariantChangeType.Call(
		uintptr(unsafe.Pointer(&dst)),
		uintptr(unsafe.Pointer(src)),
		0,
		uintptr(vt),
	)
	if hr != 0 {
		return dst, &HResultError{Op: "VariantChangeType", Code: int32(uint32(hr))}
	}
	return dst, nil
}

// uintptrOf returns the address of v for VT_BYREF values.
func uintptrOf(v *ole.VARIANT) uintptr {
	return uintptr(unsafe.Pointer(v))
}
