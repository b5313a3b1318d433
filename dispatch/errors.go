package dispatch

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownMethod is returned when the automation object does not export a name.
	ErrUnknownMethod = errors.New("unknown method")
	// ErrInvocation is returned when the remote call itself fails.
	ErrInvocation = errors.New("invocation failed")
	// ErrArgCount is returned when a Signature is bound with the wrong number of values.
	ErrArgCount = errors.New("wrong number of arguments")
	// ErrArgType is returned when a bound value cannot be converted to its declared tag.
	ErrArgType = errors.New("invalid argument type")
	// ErrNoDispatcher is returned when an Engine has no bound object.
	ErrNoDispatcher = errors.New("no automation object bound")
)

// StatusCoder is implemented by errors that carry a provider status code
// (an HRESULT for COM providers).
type StatusCoder interface {
	StatusCode() int32
}

// statusOf extracts the provider status from err, or 0 if there is none.
func statusOf(err error) int32 {
	var sc StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode()
	}
	return 0
}

// UnknownMethodError reports a name the automation object could not resolve.
type UnknownMethodError struct {
	Name string
	Code int32
	Err  error
}

func (e *UnknownMethodError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %s", ErrUnknownMethod, e.Name)
	}
	return fmt.Sprintf("%v: %s: %v", ErrUnknownMethod, e.Name, e.Err)
}

func (e *UnknownMethodError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrUnknownMethod) hold.
func (e *UnknownMethodError) Is(target error) bool { return target == ErrUnknownMethod }

// InvocationError reports a failed remote call together with the provider's
// status code.
type InvocationError struct {
	Method string
	Code   int32
	Err    error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%v: %s (status 0x%08X): %v", ErrInvocation, e.Method, uint32(e.Code), e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvocation) hold.
func (e *InvocationError) Is(target error) bool { return target == ErrInvocation }

// StatusCode returns the provider status of the failed call.
func (e *InvocationError) StatusCode() int32 { return e.Code }
