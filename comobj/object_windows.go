//go:build windows

package comobj

import (
	"errors"
	"fmt"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/go-ole/go-ole"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/variant"
)

// dispParams mirrors DISPPARAMS.
type dispParams struct {
	rgvarg            uintptr
	rgdispidNamedArgs uintptr
	cArgs             uint32
	cNamedArgs        uint32
}

// excepInfo mirrors EXCEPINFO.
type excepInfo struct {
	wCode             uint16
	wReserved         uint16
	bstrSource        *uint16
	bstrDescription   *uint16
	bstrHelpFile      *uint16
	dwHelpContext     uint32
	pvReserved        uintptr
	pfnDeferredFillIn uintptr
	scode             int32
}

// description returns the exception text and frees the strings.
func (e *excepInfo) description() string {
	var desc string
	if e.bstrDescription != nil {
		desc = ole.BstrToString(e.bstrDescription)
	}
	for _, p := range []*uint16{e.bstrSource, e.bstrDescription, e.bstrHelpFile} {
		if p != nil {
			ole.SysFreeString((*int16)(unsafe.Pointer(p)))
		}
	}
	return desc
}

// Object is a bound automation object.
type Object struct {
	disp *ole.IDispatch
}

// GetIDOfName implements dispatch.Dispatcher.
func (o *Object) GetIDOfName(name string) (dispatch.DispID, error) {
	if o.disp == nil {
		return dispatch.Unresolved, errors.New("comobj: object released")
	}
	ids, err := o.disp.GetIDsOfName([]string{name})
	if err != nil {
		return dispatch.Unresolved, &HResultError{Op: "GetIDsOfNames", Code: hresultOf(err), Desc: name}
	}
	return dispatch.DispID(ids[0]), nil
}

// Invoke implements dispatch.Dispatcher. args are in call convention
// order; Ref arguments receive the values the object wrote.
func (o *Object) Invoke(id dispatch.DispID, args []variant.Value) (variant.Value, error) {
	if o.disp == nil {
		return variant.Value{}, errors.New("comobj: object released")
	}

	vargs := make([]ole.VARIANT, len(args))
	slots := make([]ole.VARIANT, len(args))
	defer func() {
		for i := range args {
			if args[i].IsRef() {
				ole.VariantClear(&slots[i])
			} else {
				ole.VariantClear(&vargs[i])
			}
		}
	}()

	for i, a := range args {
		if a.IsRef() {
			ole.VariantInit(&slots[i])
			vargs[i] = ole.NewVariant(ole.VT_BYREF|ole.VT_VARIANT, int64(uintptrOf(&slots[i])))
			continue
		}
		v, err := toVariant(a)
		if err != nil {
			return variant.Value{}, fmt.Errorf("argument %d: %w", len(args)-1-i, err)
		}
		vargs[i] = v
	}

	params := dispParams{cArgs: uint32(len(vargs))}
	if len(vargs) > 0 {
		params.rgvarg = uintptr(unsafe.Pointer(&vargs[0]))
	}

	var result ole.VARIANT
	ole.VariantInit(&result)
	defer ole.VariantClear(&result)

	var excep excepInfo
	hr, _, _ := syscall.SyscallN(
		o.disp.VTable().Invoke,
		uintptr(unsafe.Pointer(o.disp)),
		uintptr(id),
		uintptr(unsafe.Pointer(ole.IID_NULL)),
		uintptr(ole.GetUserDefaultLCID()),
		uintptr(ole.DISPATCH_METHOD),
		uintptr(unsafe.Pointer(&params)),
		uintptr(unsafe.Pointer(&result)),
		uintptr(unsafe.Pointer(&excep)),
		0,
	)
	runtime.KeepAlive(vargs)
	runtime.KeepAlive(slots)

	if hr != 0 {
		code := int32(uint32(hr))
		desc := excep.description()
		if code == hrDispException && excep.scode != 0 {
			code = excep.scode
		}
		return variant.Value{}, &HResultError{Op: "Invoke", Code: code, Desc: desc}
	}

	for i, a := range args {
		if !a.IsRef() {
			continue
		}
		v, err := fromVariant(&slots[i])
		if err != nil {
			return variant.Value{}, fmt.Errorf("out argument %d: %w", len(args)-1-i, err)
		}
		if err := a.Store(v); err != nil {
			return variant.Value{}, err
		}
	}

	return fromVariant(&result)
}

// Release drops the reference to the object. It is safe to call twice.
func (o *Object) Release() error {
	if o.disp == nil {
		return nil
	}
	o.disp.Release()
	o.disp = nil
	return nil
}
