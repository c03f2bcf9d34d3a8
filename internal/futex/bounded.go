package futex

import (
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Bounded wraps a Blocker whose Wait occupies an OS thread, such as Futex,
// limiting the number of concurrent waits it may hold. Waiters in excess of
// that limit park on a ParkingTable instead, which costs no thread.
//
// Without the limit, enough goroutines blocked on one word would exceed the
// runtime's thread limit (see [runtime/debug.SetMaxThreads]), which is fatal.
type Bounded struct {
	inner    Blocker
	slots    *semaphore.Weighted
	overflow *ParkingTable
}

// NewBounded initializes a new Bounded, allowing at most n concurrent
// waits on inner. It panics if inner is nil or n is not positive.
func NewBounded(inner Blocker, n int64) *Bounded {
	if inner == nil {
		panic(`futex: nil inner blocker`)
	}
	if n <= 0 {
		panic(`futex: bounded blocker requires at least one slot`)
	}
	return &Bounded{
		inner:    inner,
		slots:    semaphore.NewWeighted(n),
		overflow: NewParkingTable(),
	}
}

// Wait implements Blocker.Wait.
func (b *Bounded) Wait(addr *atomic.Uint32, val uint32) {
	if !b.slots.TryAcquire(1) {
		b.overflow.Wait(addr, val)
		return
	}
	defer b.slots.Release(1)
	b.inner.Wait(addr, val)
}

// WakeAll implements Blocker.WakeAll, waking waiters on both paths.
func (b *Bounded) WakeAll(addr *atomic.Uint32) {
	b.inner.WakeAll(addr)
	b.overflow.WakeAll(addr)
}
