// Package dispatch implements late-bound method invocation against an
// automation object.
//
// A call goes through three steps:
//
//  1. Resolve: the method name is translated into a numeric identifier by
//     the automation object itself (Resolver).
//  2. Marshal: the caller-visible parameter list is turned into an ArgList.
//     The list is stored in reverse order, last declared parameter first, and
//     output parameters are passed as references to zeroed slots (Build).
//  3. Invoke: the identifier and ArgList are handed to the Dispatcher, which
//     blocks until the object returns. Out slots are readable afterwards
//     (Engine).
//
// # Signatures
//
// Each method is declared once as a Signature, a list of (name, tag,
// direction) entries, and bound at the call site:
//
//	var getClientSize = dispatch.Signature{
//	    Name: "GetClientSize",
//	    Params: []dispatch.ParamSpec{
//	        {Name: "Hwnd", Tag: variant.Int32},
//	        {Name: "Width", Tag: variant.Int32, Dir: dispatch.Out},
//	        {Name: "Height", Tag: variant.Int32, Dir: dispatch.Out},
//	    },
//	    Result: variant.Int32,
//	}
//
//	res, err := engine.Call(getClientSize, hwnd)
//	width := res.Out("Width").Int32Or(-1)
//
// # Threading
//
// Engine does not serialize calls. The automation object is bound to the
// thread that created it; callers (see package session) are responsible for
// issuing every call from that thread. There is no timeout or cancellation:
// the underlying call convention offers none.
package dispatch
