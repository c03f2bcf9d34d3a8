package futexonce

import (
	"fmt"
	"sync"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// defaultPoisonWarningRates limits warnings per poisoned Once, as calls to
// a poisoned Once are likely to occur in a tight loop, e.g. per request.
var defaultPoisonWarningRates = map[time.Duration]int{
	time.Second: 1,
	time.Minute: 10,
}

var (
	// package-level settings, see Configure
	globalSettings struct {
		sync.RWMutex
		logger  *logiface.Logger[logiface.Event]
		limiter *catrate.Limiter
	}
)

func init() {
	globalSettings.limiter = catrate.NewLimiter(defaultPoisonWarningRates)
}

func getSettings() (*logiface.Logger[logiface.Event], *catrate.Limiter) {
	globalSettings.RLock()
	defer globalSettings.RUnlock()
	return globalSettings.logger, globalSettings.limiter
}

func onceAddr(o *Once) string {
	return fmt.Sprintf(`%p`, o)
}

// logPoisoned is called by the owner, after it has transitioned to
// statePoisoned. The initializer's panic is still in flight, and must not be
// replaced, so a panic raised while logging is discarded.
func logPoisoned(o *Once, prev state) {
	// only recovers a panic raised below this frame
	defer func() { _ = recover() }()
	logger, _ := getSettings()
	if b := logger.Err(); b != nil {
		b.Str(`once`, onceAddr(o)).
			Bool(`waiters`, prev == stateRunningWaiters).
			Log(`once poisoned: initializer did not return`)
	}
}

func logPoisonedCall(o *Once) {
	logger, limiter := getSettings()
	b := logger.Warning()
	if b == nil {
		return
	}
	if _, ok := limiter.Allow(o); !ok {
		b.Release()
		return
	}
	b.Str(`once`, onceAddr(o)).
		Log(`call on poisoned once`)
}

func logWaiting(o *Once) {
	logger, _ := getSettings()
	if b := logger.Debug(); b != nil {
		b.Str(`once`, onceAddr(o)).
			Log(`waiting for initializer`)
	}
}
