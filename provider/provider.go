// Package provider performs the one-time, process-wide registration of the
// automation provider's location.
//
// The provider ships as two libraries: a small loader exporting
// SetDllPathW, and the automation library itself. Calling SetDllPathW with
// the library path lets the COM runtime instantiate the automation object
// without a system-wide registration. This must happen before the first
// session is opened.
//
// Registration is first-success-wins: once Bind succeeds, later calls are
// no-ops for the rest of the process lifetime, even with different paths.
// The registration cannot be changed or undone. A failed Bind leaves the
// process unbound and may be retried.
package provider

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrNoPaths is returned when Bind is called without a loader or library path.
	ErrNoPaths = errors.New("provider paths not set")
	// ErrLoaderNotFound is returned when the loader library cannot be loaded.
	ErrLoaderNotFound = errors.New("provider loader not found")
	// ErrEntryPointMissing is returned when the loader does not export SetDllPathW.
	ErrEntryPointMissing = errors.New("provider loader has no SetDllPathW entry point")
	// ErrRegistrationFailed is returned when SetDllPathW reports failure.
	ErrRegistrationFailed = errors.New("provider registration failed")
	// ErrUnsupportedPlatform is returned on platforms without COM.
	ErrUnsupportedPlatform = errors.New("provider registration requires windows")
)

// EntryPoint is the function the loader library exports.
const EntryPoint = "SetDllPathW"

// Paths locates the provider libraries.
type Paths struct {
	// Loader is the registration helper library, e.g. ARegJ64.dll.
	Loader string `yaml:"loader"`
	// Library is the automation provider, e.g. AoJia64.dll.
	Library string `yaml:"library"`
}

// IsZero reports whether no paths are set.
func (p Paths) IsZero() bool { return p.Loader == "" && p.Library == "" }

// String formats the paths for logs.
func (p Paths) String() string {
	return fmt.Sprintf("loader=%s library=%s", p.Loader, p.Library)
}

// register performs the platform registration and returns the entry
// point's result. Replaced in tests.
var register = platformRegister

type binding struct {
	mu    sync.Mutex
	bound bool
	paths Paths
}

var global binding

// Bind registers p with the process. It reports whether this call performed
// the registration; false with a nil error means an earlier call already
// succeeded and p was ignored.
func Bind(p Paths) (bool, error) {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.bound {
		return false, nil
	}
	if p.Loader == "" || p.Library == "" {
		return false, fmt.Errorf("%w: %s", ErrNoPaths, p)
	}

	code, err := register(p)
	if err != nil {
		return false, err
	}
	if code == 0 {
		return false, fmt.Errorf("%w: %s returned 0 for %s", ErrRegistrationFailed, EntryPoint, p.Library)
	}

	global.bound = true
	global.paths = p
	return true, nil
}

// Bound returns the registered paths, if any.
func Bound() (Paths, bool) {
	global.mu.Lock()
	defer global.mu.Unlock()
	return global.paths, global.bound
}

// reset forgets the registration. Tests only.
func reset() {
	global.mu.Lock()
	defer global.mu.Unlock()
	global.bound = false
	global.paths = Paths{}
}
