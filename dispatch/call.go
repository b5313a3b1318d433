package dispatch

import (
	"errors"
	"fmt"

	"github.com/smnsjas/go-aojia/variant"
)

// ErrInvalidState is returned when a Call is reused after it was invoked.
var ErrInvalidState = errors.New("invalid call state")

// CallState represents the current state of a Call.
type CallState int

const (
	// CallNotStarted indicates the call is still being built.
	CallNotStarted CallState = iota
	// CallCompleted indicates the call returned successfully.
	CallCompleted
	// CallFailed indicates resolution or invocation failed.
	CallFailed
)

// String returns a string representation of the state.
func (s CallState) String() string {
	switch s {
	case CallNotStarted:
		return "NotStarted"
	case CallCompleted:
		return "Completed"
	case CallFailed:
		return "Failed"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Invoker is implemented by Engine and by wrappers that add checks in
// front of it.
type Invoker interface {
	Invoke(m *Method, args *ArgList) (variant.Value, error)
}

// Call builds an ad hoc invocation of a method that has no declared
// Signature. Parameters are added in caller-visible order.
//
//	c := dispatch.NewCall(engine, "GetMousePos").
//	    AddOut("x").AddOut("y").AddArgument(variant.NewInt32(0))
//	ret, err := c.Invoke()
//	x := c.Out("x").Int32Or(-1)
type Call struct {
	inv    Invoker
	method *Method
	params []Param
	state  CallState
	args   *ArgList
	result variant.Value
	err    error
}

// NewCall starts building a call of name through inv.
func NewCall(inv Invoker, name string) *Call {
	return &Call{
		inv:    inv,
		method: NewMethod(name),
		state:  CallNotStarted,
	}
}

// Name returns the method name.
func (c *Call) Name() string { return c.method.Name }

// AddArgument appends an input parameter.
func (c *Call) AddArgument(v variant.Value) *Call {
	c.params = append(c.params, InParam(fmt.Sprintf("arg%d", len(c.params)), v))
	return c
}

// AddOut appends an output parameter. An empty name is replaced by its
// position, e.g. "out2".
func (c *Call) AddOut(name string) *Call {
	if name == "" {
		name = fmt.Sprintf("out%d", len(c.params))
	}
	c.params = append(c.params, OutParam(name))
	return c
}

// AddParam appends an already built parameter.
func (c *Call) AddParam(p Param) *Call {
	c.params = append(c.params, p)
	return c
}

// State returns the current state of the call.
func (c *Call) State() CallState { return c.state }

// Invoke marshals the parameters and performs the call. A Call can be
// invoked once.
func (c *Call) Invoke() (variant.Value, error) {
	if c.state != CallNotStarted {
		return variant.Value{}, fmt.Errorf("%w: call %s already %s", ErrInvalidState, c.method.Name, c.state)
	}

	c.args = Build(c.params...)
	res, err := c.inv.Invoke(c.method, c.args)
	if err != nil {
		c.state = CallFailed
		c.err = err
		return variant.Value{}, err
	}
	c.state = CallCompleted
	c.result = res
	return res, nil
}

// Result returns the return value and error of the last Invoke.
func (c *Call) Result() (variant.Value, error) {
	return c.result, c.err
}

// Out returns the named out value. Before a successful Invoke it is Null.
func (c *Call) Out(name string) variant.Value {
	if c.state != CallCompleted {
		return variant.NewNull()
	}
	return c.args.Out(name)
}

// Outs returns all out values in caller-visible order, or nil before a
// successful Invoke.
func (c *Call) Outs() []variant.Value {
	if c.state != CallCompleted {
		return nil
	}
	return c.args.Outs()
}

// OutNames returns the names of the out parameters in caller-visible order.
func (c *Call) OutNames() []string {
	var names []string
	for _, p := range c.params {
		if p.Dir == Out {
			names = append(names, p.Name)
		}
	}
	return names
}
