package futex

import (
	"sync"
	"sync/atomic"
	"unsafe"
)

const parkingBucketBits = 6

// ParkingTable implements Blocker using mutex and condition variable pairs,
// sharded by the address of the blocking word. It's the fallback for
// platforms without a native futex, and works everywhere.
//
// Words that hash to the same bucket share a condition variable, and will
// observe each other's wake-ups as spurious returns from Wait.
type ParkingTable struct {
	buckets [1 << parkingBucketBits]parkingBucket
}

type parkingBucket struct {
	mu   sync.Mutex
	cond sync.Cond
	_    [64]byte //nolint:unused
}

// NewParkingTable initializes a new ParkingTable.
func NewParkingTable() *ParkingTable {
	t := new(ParkingTable)
	for i := range t.buckets {
		t.buckets[i].cond.L = &t.buckets[i].mu
	}
	return t
}

// Wait implements Blocker.Wait.
func (t *ParkingTable) Wait(addr *atomic.Uint32, val uint32) {
	b := t.bucket(addr)
	b.mu.Lock()
	// checked under the lock, WakeAll must acquire it before broadcasting
	if addr.Load() == val {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// WakeAll implements Blocker.WakeAll.
func (t *ParkingTable) WakeAll(addr *atomic.Uint32) {
	b := t.bucket(addr)
	b.mu.Lock()
	b.cond.Broadcast()
	b.mu.Unlock()
}

func (t *ParkingTable) bucket(addr *atomic.Uint32) *parkingBucket {
	// fibonacci hashing, discarding the alignment bits
	h := (uint64(uintptr(unsafe.Pointer(addr))) >> 2) * 11400714819323198485
	return &t.buckets[h>>(64-parkingBucketBits)]
}
