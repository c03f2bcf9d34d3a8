//go:build linux

package futex

import (
	"math"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// see futex(2), these are stable across architectures
const (
	futexWait        = 0
	futexWake        = 1
	futexPrivateFlag = 128
)

// maxFutexWaiters bounds the threads held by futex waits, see Bounded.
const maxFutexWaiters = 64

var defaultBlocker Blocker = NewBounded(Futex{}, maxFutexWaiters)

// Futex implements Blocker using the futex(2) syscall. The private flag is
// always set, i.e. words must not be shared between processes.
//
// Note that a waiter occupies an OS thread for the duration of the wait,
// so an unbounded number of waiters may exhaust the runtime's thread limit.
// Default wraps it with Bounded.
type Futex struct{}

// Wait implements Blocker.Wait, using FUTEX_WAIT.
func (Futex) Wait(addr *atomic.Uint32, val uint32) {
	// EAGAIN (value already differs) and EINTR are both treated as spurious
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWait|futexPrivateFlag,
		uintptr(val),
		0, 0, 0,
	)
}

// WakeAll implements Blocker.WakeAll, using FUTEX_WAKE.
func (Futex) WakeAll(addr *atomic.Uint32) {
	_, _, _ = unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		futexWake|futexPrivateFlag,
		math.MaxInt32,
		0, 0, 0,
	)
}
