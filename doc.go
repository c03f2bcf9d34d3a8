// Package futexonce implements a one-time initialization primitive, [Once],
// which blocks contended callers on a futex rather than a mutex.
//
// Once behaves like [sync.Once] with one important difference: if the
// initializer panics, or exits its goroutine via [runtime.Goexit], the Once
// is permanently poisoned. Every later (and every concurrently waiting)
// caller panics with [ErrPoisoned], instead of proceeding as though
// initialization had succeeded.
//
// # Platform Support
//
// On Linux, waiters block using the futex(2) syscall, directly on the
// Once's state word. A futex wait holds an OS thread, so only a fixed
// number of waiters use it, and the rest park in the scheduler. Other
// platforms use a sharded table of condition
// variables guarding the same word. Both run the same state machine, so
// behavior is identical, only performance differs.
//
// # Usage
//
//	var (
//	    configOnce futexonce.Once
//	    config     *Config
//	)
//
//	func getConfig() *Config {
//	    configOnce.Do(func() {
//	        config = loadConfig()
//	    })
//	    return config
//	}
//
// See also [OnceFunc], [OnceValue], and [OnceValues].
//
// # Diagnostics
//
// A structured logger may be attached using [Configure] and [WithLogger].
// Logging only ever occurs on slow paths, i.e. never once initialization
// has completed.
package futexonce
