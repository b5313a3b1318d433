// Package session owns the lifetime of the automation object bound to this
// process.
//
// # State Machine
//
// A Session follows a strict state machine:
//
//	BeforeOpen → Opening → Opened → Closing → Closed
//	             ↓
//	             Broken
//
// State transitions:
//   - BeforeOpen: Initial state, nothing acquired
//   - Opening: Provider registration, apartment setup and instantiation in progress
//   - Opened: The object is bound and calls may be made
//   - Closing: The object and apartment are being released
//   - Closed: Everything is released; the Session cannot be reopened
//   - Broken: Open failed; everything acquired so far was released
//
// # Opening Sequence
//
//  1. Claim the process-wide session slot (at most one live Session)
//  2. Lock the calling goroutine to its OS thread and record the thread
//  3. Register the provider paths (first success wins, see package provider)
//  4. Enter the single-threaded apartment
//  5. Instantiate the object by CLSID
//
// Any failure is reported as an *InitializationError and unwinds the steps
// already taken.
//
// # Thread Affinity
//
// The apartment binds the object to the thread that opened the Session.
// Every call, and Close, must come from the goroutine that called Open. A
// call from any other goroutine fails with ErrWrongThread; calls are never
// queued or marshalled to the owning thread. Opening a second Session while
// one is live fails with ErrSessionActive.
//
// # Usage
//
//	s, err := session.Open(session.Config{
//	    Provider: provider.Paths{Loader: "ARegJ64.dll", Library: "AoJia64.dll"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer s.Close()
//
//	res, err := s.Call(dispatch.Signature{Name: "VerS", Result: variant.String})
package session
