// Package dispatchtest provides an in-memory automation object for tests.
//
// A Fake exports a table of named methods. Each method is served by a
// Handler that sees the arguments exactly as marshalled (call convention
// order) and can write into out slots:
//
//	f := dispatchtest.New()
//	f.Handle("GetClientSize", func(c *dispatchtest.Invocation) (variant.Value, error) {
//	    c.SetOut(1, variant.NewInt32(800))
//	    c.SetOut(2, variant.NewInt32(600))
//	    return variant.NewInt32(1), nil
//	})
package dispatchtest

import (
	"fmt"
	"strings"

	"github.com/smnsjas/go-aojia/dispatch"
	"github.com/smnsjas/go-aojia/variant"
)

// StatusError is a provider failure with an HRESULT.
type StatusError struct {
	Code int32
	Msg  string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("status 0x%08X: %s", uint32(e.Code), e.Msg)
	}
	return fmt.Sprintf("status 0x%08X", uint32(e.Code))
}

// StatusCode returns the HRESULT.
func (e *StatusError) StatusCode() int32 { return e.Code }

// Handler serves one invocation.
type Handler func(c *Invocation) (variant.Value, error)

// Invocation is one recorded call.
type Invocation struct {
	Name string
	ID   dispatch.DispID
	// Args holds the arguments in call convention order.
	Args []variant.Value
}

// Arg returns the argument at caller-visible position i.
func (c *Invocation) Arg(i int) variant.Value {
	return c.Args[len(c.Args)-1-i]
}

// SetOut writes v into the by-reference argument at caller-visible position i.
func (c *Invocation) SetOut(i int, v variant.Value) error {
	return c.Arg(i).Store(v)
}

type method struct {
	name    string
	id      dispatch.DispID
	handler Handler
}

// Fake is an in-memory Dispatcher. Names are matched case-insensitively,
// as IDispatch does.
type Fake struct {
	byName map[string]*method
	byID   map[dispatch.DispID]*method
	nextID dispatch.DispID

	// Lookups counts GetIDOfName calls per name as requested.
	Lookups map[string]int
	// Calls records every invocation in order.
	Calls []Invocation
	// Released is set by Release.
	Released bool
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		byName:  make(map[string]*method),
		byID:    make(map[dispatch.DispID]*method),
		nextID:  1,
		Lookups: make(map[string]int),
	}
}

// Handle exports name served by h.
func (f *Fake) Handle(name string, h Handler) *Fake {
	key := strings.ToLower(name)
	if m, ok := f.byName[key]; ok {
		m.handler = h
		return f
	}
	m := &method{name: name, id: f.nextID, handler: h}
	f.nextID++
	f.byName[key] = m
	f.byID[m.id] = m
	return f
}

// Return exports name returning v.
func (f *Fake) Return(name string, v variant.Value) *Fake {
	return f.Handle(name, func(*Invocation) (variant.Value, error) { return v, nil })
}

// Fail exports name failing with the given status.
func (f *Fake) Fail(name string, code int32) *Fake {
	return f.Handle(name, func(*Invocation) (variant.Value, error) {
		return variant.Value{}, &StatusError{Code: code, Msg: "call failed"}
	})
}

// Remove stops exporting name. Identifiers handed out earlier become
// invalid.
func (f *Fake) Remove(name string) {
	key := strings.ToLower(name)
	if m, ok := f.byName[key]; ok {
		delete(f.byID, m.id)
		delete(f.byName, key)
	}
}

// GetIDOfName implements dispatch.Dispatcher.
func (f *Fake) GetIDOfName(name string) (dispatch.DispID, error) {
	f.Lookups[name]++
	m, ok := f.byName[strings.ToLower(name)]
	if !ok {
		return dispatch.Unresolved, &StatusError{Code: dispatch.StatusUnknownName, Msg: name}
	}
	return m.id, nil
}

// Invoke implements dispatch.Dispatcher.
func (f *Fake) Invoke(id dispatch.DispID, args []variant.Value) (variant.Value, error) {
	m, ok := f.byID[id]
	if !ok {
		return variant.Value{}, &StatusError{Code: dispatch.StatusMemberNotFound}
	}
	c := Invocation{Name: m.name, ID: id, Args: append([]variant.Value(nil), args...)}
	f.Calls = append(f.Calls, c)
	return m.handler(&c)
}

// Release marks the object released.
func (f *Fake) Release() error {
	f.Released = true
	return nil
}

// Last returns the most recent invocation, or nil.
func (f *Fake) Last() *Invocation {
	if len(f.Calls) == 0 {
		return nil
	}
	return &f.Calls[len(f.Calls)-1]
}
