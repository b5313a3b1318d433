package dispatch

import (
	"fmt"
	"strings"

	"github.com/smnsjas/go-aojia/variant"
)

// ParamSpec declares one parameter of a method.
type ParamSpec struct {
	Name string
	Tag  variant.Tag
	Dir  Direction
}

// Signature declares a method: its name, its parameters in caller-visible
// order and the tag of its return value.
type Signature struct {
	Name   string
	Params []ParamSpec
	Result variant.Tag
}

// NumIn returns the number of input parameters.
func (s Signature) NumIn() int {
	n := 0
	for _, p := range s.Params {
		if p.Dir == In {
			n++
		}
	}
	return n
}

// NumOut returns the number of output parameters.
func (s Signature) NumOut() int {
	return len(s.Params) - s.NumIn()
}

// Bind converts the input values, given in declaration order and skipping
// out params, into their declared tags and marshals the full parameter list.
func (s Signature) Bind(in ...interface{}) (*ArgList, error) {
	if want := s.NumIn(); len(in) != want {
		return nil, fmt.Errorf("%w: %s expects %d values, got %d", ErrArgCount, s.Name, want, len(in))
	}

	params := make([]Param, len(s.Params))
	next := 0
	for i, spec := range s.Params {
		if spec.Dir == Out {
			params[i] = OutParam(spec.Name)
			continue
		}
		v, err := variant.From(spec.Tag, in[next])
		if err != nil {
			return nil, fmt.Errorf("%w: %s parameter %s: %w", ErrArgType, s.Name, spec.Name, err)
		}
		params[i] = InParam(spec.Name, v)
		next++
	}
	return Build(params...), nil
}

// String renders the signature, e.g. "GetMousePos(out x I32, out y I32, Type I32) I32".
func (s Signature) String() string {
	var b strings.Builder
	b.WriteString(s.Name)
	b.WriteByte('(')
	for i, p := range s.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		if p.Dir == Out {
			b.WriteString("out ")
		}
		b.WriteString(p.Name)
		b.WriteByte(' ')
		b.WriteString(p.Tag.String())
	}
	b.WriteString(") ")
	b.WriteString(s.Result.String())
	return b.String()
}
