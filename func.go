package futexonce

// OnceFunc returns a function that invokes f only once. The returned
// function may be called concurrently.
//
// If f panics, the returned function will panic with the same value on the
// first call, and with [ErrPoisoned] on every subsequent call. This differs
// from [sync.OnceFunc], which re-panics with the original value.
func OnceFunc(f func()) func() {
	var once Once
	g := func() {
		f()
		f = nil
	}
	return func() {
		once.Do(g)
	}
}

// OnceValue returns a function that invokes f only once and returns the
// value returned by f. The returned function may be called concurrently.
//
// Panics are handled as per [OnceFunc].
func OnceValue[T any](f func() T) func() T {
	var (
		once   Once
		result T
	)
	g := func() {
		result = f()
		f = nil
	}
	return func() T {
		once.Do(g)
		return result
	}
}

// OnceValues returns a function that invokes f only once and returns the
// values returned by f. The returned function may be called concurrently.
//
// Panics are handled as per [OnceFunc].
func OnceValues[T1, T2 any](f func() (T1, T2)) func() (T1, T2) {
	var (
		once Once
		r1   T1
		r2   T2
	)
	g := func() {
		r1, r2 = f()
		f = nil
	}
	return func() (T1, T2) {
		once.Do(g)
		return r1, r2
	}
}
