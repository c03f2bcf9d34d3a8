package futexonce

import (
	"fmt"
	"time"

	"github.com/joeycumines/go-catrate"
	"github.com/joeycumines/logiface"
)

// config holds the package-level settings, see Configure.
type config struct {
	logger  *logiface.Logger[logiface.Event]
	limiter *catrate.Limiter
}

// Option configures package-level behavior, see [Configure].
type Option interface {
	applyOption(*config) error
}

// optionImpl implements Option.
type optionImpl struct {
	applyOptionFunc func(*config) error
}

func (o *optionImpl) applyOption(c *config) error {
	return o.applyOptionFunc(c)
}

// Configure applies the given options to the package-level settings,
// which are shared by every Once. Options are applied in order, and nil
// options are skipped. If any option fails, none are applied.
//
// It is safe to call Configure concurrently with Once methods.
func Configure(opts ...Option) error {
	globalSettings.Lock()
	defer globalSettings.Unlock()
	c := config{
		logger:  globalSettings.logger,
		limiter: globalSettings.limiter,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.applyOption(&c); err != nil {
			return err
		}
	}
	globalSettings.logger = c.logger
	globalSettings.limiter = c.limiter
	return nil
}

// WithLogger sets the logger used for diagnostics. A nil logger (the
// default) disables logging.
//
// Use [logiface.Logger.Logger] to convert a logger for a specific
// implementation, e.g. stumpy or zerolog.
//
// Events:
//   - error: an initializer failed to return, poisoning its Once
//   - warning: a call was made on a poisoned Once (rate limited)
//   - debug: a goroutine is about to block, waiting for an initializer
func WithLogger(logger *logiface.Logger[logiface.Event]) Option {
	return &optionImpl{func(c *config) error {
		c.logger = logger
		return nil
	}}
}

// WithPoisonWarningRates configures the rate limits for warnings about
// calls on a poisoned Once, applied per Once instance. The rates are as per
// [catrate.NewLimiter]. A nil or empty map disables rate limiting.
//
// Defaults to one per second, and ten per minute.
func WithPoisonWarningRates(rates map[time.Duration]int) Option {
	return &optionImpl{func(c *config) error {
		if len(rates) == 0 {
			c.limiter = nil
			return nil
		}
		limiter, err := newLimiter(rates)
		if err != nil {
			return err
		}
		c.limiter = limiter
		return nil
	}}
}

// newLimiter wraps catrate.NewLimiter, which panics on invalid rates.
func newLimiter(rates map[time.Duration]int) (limiter *catrate.Limiter, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf(`futexonce: invalid poison warning rates: %v`, r)
		}
	}()
	// copied, as the limiter retains the map
	cp := make(map[time.Duration]int, len(rates))
	for k, v := range rates {
		cp[k] = v
	}
	return catrate.NewLimiter(cp), nil
}
