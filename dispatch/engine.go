package dispatch

import (
	"github.com/smnsjas/go-aojia/variant"
)

// Dispatcher is the late-bound call surface of an automation object.
type Dispatcher interface {
	// GetIDOfName translates a method name into its identifier using the
	// current user locale.
	GetIDOfName(name string) (DispID, error)

	// Invoke calls the method id with args in call convention order (last
	// declared parameter first). It blocks until the object returns; Ref
	// arguments are populated on return.
	Invoke(id DispID, args []variant.Value) (variant.Value, error)
}

// Object is a bound automation object that must be released when done.
type Object interface {
	Dispatcher
	Release() error
}

// Method is a method name together with its identifier, which starts out
// Unresolved and is filled in on first use.
type Method struct {
	Name string
	ID   DispID
}

// NewMethod returns an unresolved method descriptor.
func NewMethod(name string) *Method {
	return &Method{Name: name, ID: Unresolved}
}

// Result is the outcome of a successful Engine.Call.
type Result struct {
	Value variant.Value
	Args  *ArgList
}

// Out returns the value written into the named out parameter.
func (r *Result) Out(name string) variant.Value {
	if r == nil {
		return variant.NewNull()
	}
	return r.Args.Out(name)
}

// Engine performs calls against one bound automation object.
type Engine struct {
	disp     Dispatcher
	resolver *Resolver
}

// NewEngine creates an Engine for disp.
func NewEngine(disp Dispatcher, policy CachePolicy) *Engine {
	return &Engine{
		disp:     disp,
		resolver: NewResolver(disp, policy),
	}
}

// Resolver returns the engine's name resolver.
func (e *Engine) Resolver() *Resolver { return e.resolver }

// Invoke resolves m if needed and calls it with args. Failures of the
// remote call are reported as *InvocationError carrying the provider status.
func (e *Engine) Invoke(m *Method, args *ArgList) (variant.Value, error) {
	if e.disp == nil {
		return variant.Value{}, ErrNoDispatcher
	}
	if m.ID == Unresolved {
		id, err := e.resolver.Resolve(m.Name)
		if err != nil {
			return variant.Value{}, err
		}
		m.ID = id
	}

	res, err := e.disp.Invoke(m.ID, args.Values())
	if err != nil {
		return variant.Value{}, &InvocationError{Method: m.Name, Code: statusOf(err), Err: err}
	}
	return res, nil
}

// Call binds in against sig and invokes the method.
func (e *Engine) Call(sig Signature, in ...interface{}) (*Result, error) {
	args, err := sig.Bind(in...)
	if err != nil {
		return nil, err
	}
	res, err := e.Invoke(NewMethod(sig.Name), args)
	if err != nil {
		return nil, err
	}
	return &Result{Value: res, Args: args}, nil
}
