//go:build windows

package provider

import (
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

// platformRegister loads the loader library and calls its SetDllPathW with
// the library path. The loader stays mapped for the life of the process.
func platformRegister(p Paths) (int32, error) {
	h, err := windows.LoadLibrary(p.Loader)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrLoaderNotFound, p.Loader, err)
	}

	proc, err := windows.GetProcAddress(h, EntryPoint)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrEntryPointMissing, p.Loader, err)
	}

	path, err := windows.UTF16PtrFromString(p.Library)
	if err != nil {
		return 0, fmt.Errorf("encode library path: %w", err)
	}

	r, _, _ := syscall.SyscallN(proc, uintptr(unsafe.Pointer(path)), 0)
	return int32(r), nil
}
