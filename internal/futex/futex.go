// Package futex provides a "blocking word": a 32-bit value that goroutines
// may block on until it changes, paired with an operation that wakes every
// goroutine blocked on it.
//
// The value itself is owned and mutated by the caller, using sync/atomic.
// This package never modifies it, it only reads it to avoid lost wake-ups.
package futex

import (
	"sync/atomic"
)

// Blocker models the wait/wake pair, for a given blocking word.
//
// Implementations must be safe for concurrent use, and must not lose a
// wake-up that was issued after the waiter observed the expected value.
type Blocker interface {
	// Wait blocks the caller while addr holds val. It may return
	// spuriously, i.e. without addr changing, so callers must re-check the
	// value in a loop.
	Wait(addr *atomic.Uint32, val uint32)

	// WakeAll wakes every waiter currently blocked on addr.
	WakeAll(addr *atomic.Uint32)
}

// Default returns the Blocker native to the current platform. On Linux this
// is the futex(2) syscall, limited to a fixed number of concurrent waits
// with Bounded. Elsewhere it is a package-level ParkingTable.
func Default() Blocker {
	return defaultBlocker
}
