// Package aojia is a client for the AoJia automation object.
//
// The object is a COM automation server exposing window, mouse, image
// search, text recognition and system helpers through late-bound method
// calls. This package wraps every exported method in a typed Go call:
//
//	c, err := aojia.New(session.Config{
//	    Provider: provider.Paths{Loader: "ARegJ64.dll", Library: "AoJia64.dll"},
//	})
//	if err != nil {
//	    return err
//	}
//	defer c.Close()
//
//	ver, err := c.VerS()
//	ret, w, h, err := c.GetClientSize(hwnd)
//
// # Layers
//
//   - Client: typed method wrappers and the generic Call
//   - session: object lifetime, apartment and thread affinity
//   - dispatch: name resolution, argument marshalling, invocation
//   - variant: typed values and coercion
//   - provider: one-time provider registration
//   - comobj: the COM backend
//
// # Threading
//
// A Client must be created, used and closed from one goroutine; New locks
// that goroutine to its OS thread. Calls from any other goroutine fail with
// session.ErrWrongThread.
//
// # Failed Conversions
//
// Numeric results and numeric out values that cannot be converted read as
// -1. String out values read as "" with one exception: the system directory
// of GetOs surfaces the conversion error. String return values always
// surface conversion errors. When the remote call itself fails every out
// value holds its fallback and the error is returned.
package aojia

// Version is the library version.
const Version = "0.1.0-dev"
