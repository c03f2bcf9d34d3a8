package futexonce

// state is the value of a Once's blocking word.
//
// State machine:
//
//	stateIncomplete (0) → stateRunning (3)              [owner CAS]
//	stateRunning (3) → stateRunningWaiters (4)           [waiter CAS]
//	stateRunning (3) → stateComplete (1)                 [owner, f returned]
//	stateRunning (3) → statePoisoned (2)                 [owner, f did not return]
//	stateRunningWaiters (4) → stateComplete (1)          [owner, f returned, wakes]
//	stateRunningWaiters (4) → statePoisoned (2)          [owner, f did not return, wakes]
//
// stateComplete and statePoisoned are terminal. The zero value must be
// stateIncomplete. The running values are the largest, which isRunning
// relies on.
type state uint32

const (
	stateIncomplete state = iota
	stateComplete
	statePoisoned
	// stateRunning indicates an owner is running the initializer, and that
	// nobody needs waking when it finishes.
	stateRunning
	// stateRunningWaiters indicates an owner is running the initializer,
	// and at least one goroutine is (or is about to be) blocked on it.
	stateRunningWaiters
)

// String returns a human-readable representation of the state.
func (s state) String() string {
	switch s {
	case stateIncomplete:
		return "Incomplete"
	case stateComplete:
		return "Complete"
	case statePoisoned:
		return "Poisoned"
	case stateRunning:
		return "Running"
	case stateRunningWaiters:
		return "RunningWaiters"
	default:
		return "Unknown"
	}
}

func (s state) isRunning() bool {
	return s >= stateRunning
}
