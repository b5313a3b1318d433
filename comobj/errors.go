package comobj

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform is returned on platforms without COM.
var ErrUnsupportedPlatform = errors.New("COM automation requires windows")

// HResultError is a failed COM call.
type HResultError struct {
	// Op is the failing operation, e.g. "CoCreateInstance" or "Invoke".
	Op   string
	Code int32
	// Desc is the exception description reported by the object, if any.
	Desc string
}

func (e *HResultError) Error() string {
	if e.Desc != "" {
		return fmt.Sprintf("%s: hresult 0x%08X: %s", e.Op, uint32(e.Code), e.Desc)
	}
	return fmt.Sprintf("%s: hresult 0x%08X", e.Op, uint32(e.Code))
}

// StatusCode returns the HRESULT.
func (e *HResultError) StatusCode() int32 { return e.Code }

// Well known HRESULTs.
const (
	hrSFalse        int32 = 1
	hrFail          int32 = -0x7FFFBFFB // E_FAIL
	hrDispException int32 = -0x7FFDFFF7 // DISP_E_EXCEPTION
	hrTypeMismatch  int32 = -0x7FFDFFFB // DISP_E_TYPEMISMATCH
	hrOverflow      int32 = -0x7FFDFFF6 // DISP_E_OVERFLOW
	hrClassNotReg   int32 = -0x7FFBFEAC // REGDB_E_CLASSNOTREG
)
