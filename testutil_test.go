package futexonce

import (
	"bytes"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joeycumines/go-futexonce/internal/futex"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// withBlocker replaces the package blocker for the duration of the test.
// Tests using it must not run in parallel, and must join every goroutine
// that might touch a Once before returning.
func withBlocker(t *testing.T, b futex.Blocker) {
	t.Helper()
	old := blocker
	blocker = b
	t.Cleanup(func() { blocker = old })
}

// forEachBlocker runs fn once per Blocker implementation.
func forEachBlocker(t *testing.T, fn func(t *testing.T)) {
	t.Helper()
	for _, tc := range [...]struct {
		name    string
		blocker futex.Blocker
	}{
		{`default`, futex.Default()},
		{`parking`, futex.NewParkingTable()},
	} {
		t.Run(tc.name, func(t *testing.T) {
			withBlocker(t, tc.blocker)
			fn(t)
		})
	}
}

// countingBlocker wraps a Blocker, counting calls.
type countingBlocker struct {
	futex.Blocker
	waits atomic.Int32
	wakes atomic.Int32
}

func (x *countingBlocker) Wait(addr *atomic.Uint32, val uint32) {
	x.waits.Add(1)
	x.Blocker.Wait(addr, val)
}

func (x *countingBlocker) WakeAll(addr *atomic.Uint32) {
	x.wakes.Add(1)
	x.Blocker.WakeAll(addr)
}

// catchPanic returns the recovered value, if f panics.
func catchPanic(f func()) (r any) {
	defer func() { r = recover() }()
	f()
	return nil
}

// waitForState polls until o is in the given state.
func waitForState(t *testing.T, o *Once, s state) {
	t.Helper()
	deadline := time.Now().Add(10 * time.Second)
	for o.load() != s {
		if time.Now().After(deadline) {
			t.Fatalf(`timed out waiting for state %s, have %s`, s, o.load())
		}
		time.Sleep(time.Millisecond)
	}
}

// syncBuffer is a bytes.Buffer safe for concurrent writes.
type syncBuffer struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (x *syncBuffer) Write(p []byte) (int, error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.Write(p)
}

func (x *syncBuffer) String() string {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.b.String()
}

// count returns the number of lines containing substr.
func (x *syncBuffer) count(substr string) (n int) {
	for _, line := range strings.Split(x.String(), "\n") {
		if strings.Contains(line, substr) {
			n++
		}
	}
	return
}

// useTestLogger configures a stumpy logger writing to the returned buffer,
// restoring the defaults when the test ends.
func useTestLogger(t *testing.T, level logiface.Level) *syncBuffer {
	t.Helper()
	var buf syncBuffer
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(
			stumpy.WithWriter(&buf),
			stumpy.WithTimeField(``),
		),
		logiface.WithLevel[*stumpy.Event](level),
	)
	if err := Configure(WithLogger(logger.Logger())); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(resetSettings)
	return &buf
}

func resetSettings() {
	if err := Configure(
		WithLogger(nil),
		WithPoisonWarningRates(defaultPoisonWarningRates),
	); err != nil {
		panic(err)
	}
}
