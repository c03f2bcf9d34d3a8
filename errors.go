package futexonce

import (
	"errors"
)

var (
	// ErrPoisoned is the panic value for any call to [Once.Do] (or the
	// wrappers, e.g. [OnceFunc]) on an instance whose initializer previously
	// failed to return. It is never returned, only panicked with, and may be
	// detected using [errors.Is] on the recovered value.
	ErrPoisoned = errors.New(`futexonce: once instance has previously been poisoned`)

	// errInitializerReused indicates an initializer cell was invoked after
	// it had already been consumed, which is always a bug.
	errInitializerReused = errors.New(`futexonce: initializer called more than once`)
)

// IsPoisoned reports whether v, typically the result of recover(), is (or
// wraps) [ErrPoisoned].
func IsPoisoned(v any) bool {
	err, ok := v.(error)
	return ok && errors.Is(err, ErrPoisoned)
}
