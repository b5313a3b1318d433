//go:build !windows && !linux

package session

// Thread identity is not available here; the affinity check is disabled
// and cross-thread use is undefined behavior.
const affinityEnforced = false

func currentThreadID() uint64 { return 0 }
