package dispatch

import (
	"fmt"

	"github.com/smnsjas/go-aojia/variant"
)

// Direction says whether a parameter carries a value in or receives one.
type Direction uint8

const (
	// In parameters are supplied by the caller.
	In Direction = iota
	// Out parameters are written by the automation object.
	Out
)

// String returns "in" or "out".
func (d Direction) String() string {
	switch d {
	case In:
		return "in"
	case Out:
		return "out"
	default:
		return fmt.Sprintf("Unknown(%d)", d)
	}
}

// Param is one caller-visible parameter. Value is ignored for Out params.
type Param struct {
	Name  string
	Value variant.Value
	Dir   Direction
}

// InParam returns an input parameter.
func InParam(name string, v variant.Value) Param {
	return Param{Name: name, Value: v, Dir: In}
}

// OutParam returns an output parameter.
func OutParam(name string) Param {
	return Param{Name: name, Dir: Out}
}

// ArgList is a marshalled argument vector. Values are held in call
// convention order, the last declared parameter first. Out parameters are
// references to slots owned by the ArgList.
type ArgList struct {
	args  []variant.Value
	names []string
	slots []*variant.Value
}

// Build marshals params, given in caller-visible order, into an ArgList.
// Empty strings become Empty so that they are indistinguishable from an
// absent argument; out params get a fresh zeroed slot each.
func Build(params ...Param) *ArgList {
	n := len(params)
	a := &ArgList{
		args:  make([]variant.Value, n),
		names: make([]string, n),
		slots: make([]*variant.Value, n),
	}

	for i, p := range params {
		var v variant.Value
		if p.Dir == Out {
			slot := new(variant.Value)
			a.slots[i] = slot
			v = variant.NewRef(slot)
		} else {
			v = p.Value
			if v.Tag() == variant.String && v.StringOr("") == "" {
				v = variant.NewEmpty()
			}
		}
		a.names[i] = p.Name
		a.args[n-1-i] = v
	}
	return a
}

// Len returns the number of arguments.
func (a *ArgList) Len() int {
	if a == nil {
		return 0
	}
	return len(a.args)
}

// Values returns the vector in call convention order. The slice is shared
// with the ArgList and must not be modified.
func (a *ArgList) Values() []variant.Value {
	if a == nil {
		return nil
	}
	return a.args
}

// At returns the argument at caller-visible position i.
func (a *ArgList) At(i int) variant.Value {
	return a.args[len(a.args)-1-i]
}

// Slot returns the out slot at caller-visible position i, or nil if that
// parameter is an input.
func (a *ArgList) Slot(i int) *variant.Value {
	return a.slots[i]
}

// Out returns the value written into the named out parameter. Unknown names
// and input parameters yield Null, which fails every coercion.
func (a *ArgList) Out(name string) variant.Value {
	if a == nil {
		return variant.NewNull()
	}
	for i, n := range a.names {
		if n == name && a.slots[i] != nil {
			return *a.slots[i]
		}
	}
	return variant.NewNull()
}

// Outs returns the out parameter values in caller-visible order.
func (a *ArgList) Outs() []variant.Value {
	var outs []variant.Value
	for _, s := range a.slots {
		if s != nil {
			outs = append(outs, *s)
		}
	}
	return outs
}
