//go:build linux

package session

import "golang.org/x/sys/unix"

const affinityEnforced = true

func currentThreadID() uint64 {
	return uint64(unix.Gettid())
}
