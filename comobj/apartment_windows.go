//go:build windows

package comobj

import (
	"errors"
	"fmt"

	"github.com/go-ole/go-ole"

	"github.com/smnsjas/go-aojia/dispatch"
)

// Apartment is a single-threaded COM apartment on the calling OS thread.
// The caller must keep the goroutine locked to its thread from Enter to
// Leave.
type Apartment struct {
	entered bool
}

// NewApartment returns an Apartment that has not been entered.
func NewApartment() *Apartment {
	return &Apartment{}
}

// Enter initializes COM for the calling thread. A thread already in a
// single-threaded apartment is accepted.
func (a *Apartment) Enter() error {
	if a.entered {
		return nil
	}
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		code := hresultOf(err)
		if code != hrSFalse {
			return &HResultError{Op: "CoInitializeEx", Code: code}
		}
	}
	a.entered = true
	return nil
}

// Create instantiates clsid and returns its IDispatch.
func (a *Apartment) Create(clsid string) (dispatch.Object, error) {
	if !a.entered {
		return nil, errors.New("comobj: Create called outside an apartment")
	}

	id, err := ole.CLSIDFromString(clsid)
	if err != nil {
		return nil, fmt.Errorf("parse CLSID %s: %w", clsid, &HResultError{Op: "CLSIDFromString", Code: hresultOf(err)})
	}

	unknown, err := ole.CreateInstance(id, ole.IID_IUnknown)
	if err != nil {
		return nil, &HResultError{Op: "CoCreateInstance", Code: hresultOf(err)}
	}
	defer unknown.Release()

	disp, err := unknown.QueryInterface(ole.IID_IDispatch)
	if err != nil {
		return nil, &HResultError{Op: "QueryInterface", Code: hresultOf(err)}
	}
	return &Object{disp: disp}, nil
}

// Leave uninitializes COM for the calling thread.
func (a *Apartment) Leave() {
	if !a.entered {
		return
	}
	ole.CoUninitialize()
	a.entered = false
}

func hresultOf(err error) int32 {
	var oe *ole.OleError
	if errors.As(err, &oe) {
		return int32(uint32(oe.Code()))
	}
	return hrFail
}
