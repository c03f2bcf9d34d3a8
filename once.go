package futexonce

import (
	"fmt"
	"sync/atomic"

	"github.com/joeycumines/go-futexonce/internal/futex"
)

// blocker is swapped out by tests, to exercise every implementation.
var blocker = futex.Default()

// Once is an object that will perform exactly one action, and which is
// poisoned if that action fails to complete.
//
// The zero value is ready to use, and is suitable for package-level
// variables. A Once must not be copied after first use.
//
// Once occupies a single 32-bit word. Uncontended initialization performs
// no syscalls, and callers arriving after completion perform a single
// atomic load.
type Once struct {
	state atomic.Uint32
}

// New returns a new, incomplete Once. It's equivalent to new(Once).
func New() *Once {
	return new(Once)
}

// Do calls the function f if and only if no initializer has been started
// for this instance of Once. In other words, given
//
//	var once Once
//
// if once.Do(f) is called multiple times, only the first call will invoke
// f, even if f has a different value in each invocation.
//
// When Do returns, it is guaranteed that some initializer (not necessarily
// f) has run and returned, and that any memory writes it performed are
// visible to the caller. Callers that arrive while another goroutine is
// running the initializer block until it finishes.
//
// If the initializer panics (or calls [runtime.Goexit]), the Once is
// poisoned, before the panic propagates out of the Do call that ran it,
// unchanged. Every goroutine blocked on that initializer, and every
// subsequent call to Do, will then panic with [ErrPoisoned], without
// calling f.
//
// If f calls Do on the same instance, the behavior is unspecified: it may
// deadlock or panic. Currently it deadlocks, but this must not be relied
// on.
func (o *Once) Do(f func()) {
	// the loaded state is reused by the slow path, to avoid a second load
	s := o.load()
	if s == stateComplete {
		return
	}
	o.doSlow(s, f)
}

// IsCompleted reports whether an initializer has run and returned. It never
// blocks. It returns false if Do hasn't been called, if the initializer is
// still running, or if the Once is poisoned.
//
// A false result may be stale: the initializer may complete concurrently
// with the call.
func (o *Once) IsCompleted() bool {
	return o.load() == stateComplete
}

func (o *Once) load() state {
	return state(o.state.Load())
}

func (o *Once) cas(from, to state) bool {
	return o.state.CompareAndSwap(uint32(from), uint32(to))
}

//go:noinline
func (o *Once) doSlow(s state, f func()) {
	cell := initializer{fn: f}
	for {
		switch s {
		case stateIncomplete:
			if !o.cas(stateIncomplete, stateRunning) {
				s = o.load()
				continue
			}
			o.run(&cell)
			return

		case stateComplete:
			return

		case statePoisoned:
			logPoisonedCall(o)
			panic(ErrPoisoned)

		case stateRunning:
			// record that there's a waiter, so the owner knows to wake us
			if !o.cas(stateRunning, stateRunningWaiters) {
				s = o.load()
				continue
			}
			s = stateRunningWaiters
			fallthrough

		case stateRunningWaiters:
			logWaiting(o)
			for s.isRunning() {
				blocker.Wait(&o.state, uint32(stateRunningWaiters))
				s = o.load()
			}
			// dispatch on the terminal state, which may be poisoned

		default:
			panic(fmt.Errorf(`futexonce: invalid state: %d`, s))
		}
	}
}

// run executes the initializer, as the owner, which must have transitioned
// the state to stateRunning.
func (o *Once) run(cell *initializer) {
	g := ownerGuard{once: o, final: statePoisoned}
	defer g.release()
	cell.call()
	g.final = stateComplete
}

// ownerGuard performs the terminal transition, on every exit path from
// the initializer.
type ownerGuard struct {
	once  *Once
	final state
}

func (g *ownerGuard) release() {
	prev := state(g.once.state.Swap(uint32(g.final)))
	// only make the (expensive) wake call if somebody is waiting
	if prev == stateRunningWaiters {
		blocker.WakeAll(&g.once.state)
	}
	if g.final == statePoisoned {
		logPoisoned(g.once, prev)
	}
}

// initializer is a single-use cell, holding the function to run.
type initializer struct {
	fn   func()
	used bool
}

func (x *initializer) call() {
	if x.used {
		panic(errInitializerReused)
	}
	x.used = true
	fn := x.fn
	x.fn = nil
	fn()
}
