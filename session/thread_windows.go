//go:build windows

package session

import "golang.org/x/sys/windows"

const affinityEnforced = true

func currentThreadID() uint64 {
	return uint64(windows.GetCurrentThreadId())
}
