package httpapi

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/forgectl/forgectl/internal/xtime"
)

// EngageAutorateThrottlingThreshold is the number of warm-up calls the
// Adaptive strategy lets through before it starts consulting rate-limit
// headers, so a small one- or two-page listing never gets throttled.
const EngageAutorateThrottlingThreshold = 3

// ThrottleStrategy is applied between pages of a paginated walk.
// Implementors may use the rate-limit headers of the page that was just
// fetched to adjust the delay, or ignore them entirely.
type ThrottleStrategy interface {
	Throttle(rl *RateLimitHeader)
}

// FixedThrottle spaces requests with a golang.org/x/time/rate token
// bucket of burst 1, the same way client-go's client-side flow control
// is built on a rate.Limiter elsewhere in the ecosystem. The limiter
// decides how long to wait; the actual wait is performed through clock
// so tests can collapse it.
type FixedThrottle struct {
	limiter *rate.Limiter
	clock   xtime.Clock
}

func NewFixedThrottle(delay xtime.Milliseconds, clock xtime.Clock) *FixedThrottle {
	limit := rate.Inf
	if delay > 0 {
		limit = rate.Every(delay.Duration())
	}
	return &FixedThrottle{limiter: rate.NewLimiter(limit, 1), clock: clock}
}

func (f *FixedThrottle) Throttle(*RateLimitHeader) {
	if d := f.limiter.Reserve().Delay(); d > 0 {
		f.clock.Sleep(d)
	}
}

// RandomThrottle sleeps a uniformly random delay in [min, max].
type RandomThrottle struct {
	min, max xtime.Milliseconds
	clock    xtime.Clock
	log      *logrus.Entry
}

func NewRandomThrottle(min, max xtime.Milliseconds, clock xtime.Clock, log *logrus.Entry) *RandomThrottle {
	return &RandomThrottle{min: min, max: max, clock: clock, log: log.WithField("component", "throttle")}
}

func (r *RandomThrottle) Throttle(*RateLimitHeader) {
	wait := r.min
	if r.max > r.min {
		wait = r.min + xtime.Milliseconds(rand.Int63n(int64(r.max-r.min)+1))
	}
	r.log.Debugf("sleeping for %d milliseconds", wait)
	r.clock.Sleep(wait.Duration())
}

// AdaptiveThrottle sleeps only when the most recent page's rate-limit
// headers show the remaining fraction has dropped below threshold, and
// only after a warm-up of EngageAutorateThrottlingThreshold calls, so
// small paginations never pay the adaptive delay.
type AdaptiveThrottle struct {
	threshold       float64
	requestsPerMin  int
	clock           xtime.Clock
	log             *logrus.Entry
	calls           int
}

func NewAdaptiveThrottle(threshold float64, requestsPerMinute int, clock xtime.Clock, log *logrus.Entry) *AdaptiveThrottle {
	return &AdaptiveThrottle{threshold: threshold, requestsPerMin: requestsPerMinute, clock: clock, log: log.WithField("component", "throttle")}
}

func (a *AdaptiveThrottle) Throttle(rl *RateLimitHeader) {
	a.calls++
	if a.calls <= EngageAutorateThrottlingThreshold {
		return
	}
	if rl == nil || !rl.Present || a.requestsPerMin <= 0 {
		return
	}
	fraction := float64(rl.Remaining) / float64(a.requestsPerMin)
	if fraction >= a.threshold {
		return
	}
	wait := xtime.Milliseconds(1000 + rand.Int63n(4001))
	a.log.Debugf("remaining fraction %.2f below threshold %.2f, sleeping %d milliseconds", fraction, a.threshold, wait)
	a.clock.Sleep(wait.Duration())
}
