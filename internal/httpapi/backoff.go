package httpapi

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/forgectl/forgectl/internal/errorsx"
	"github.com/forgectl/forgectl/internal/metrics"
	"github.com/forgectl/forgectl/internal/xtime"
)

// Backoff wraps a Runner with a single-request retry loop. It retries
// only on RateLimitExceededError and HTTPTransportError; every other
// error propagates unchanged, and it is the only component in the core
// allowed to absorb an error by retrying.
type Backoff struct {
	runner     Runner
	maxRetries int
	clock      xtime.Clock
	log        *logrus.Entry
	provider   string
}

func NewBackoff(runner Runner, maxRetries int, clock xtime.Clock, log *logrus.Entry, provider string) *Backoff {
	return &Backoff{runner: runner, maxRetries: maxRetries, clock: clock, log: log.WithField("component", "backoff"), provider: provider}
}

// Run executes req, retrying eligible errors up to maxRetries times with
// an exponentially increasing wait. maxRetries == 0 means "try exactly
// once", with no sleeps at all.
func (b *Backoff) Run(req *Request) (*Response, error) {
	var lastErr error
	for n := 0; ; n++ {
		resp, err := b.runner.Run(req)
		if err == nil {
			return resp, nil
		}
		lastErr = err
		if b.maxRetries == 0 {
			return nil, err
		}
		if !shouldRetry(err) {
			return nil, err
		}
		if n >= b.maxRetries {
			return nil, &errorsx.ExponentialBackoffMaxRetriesReachedError{Retries: b.maxRetries, Cause: lastErr}
		}
		wait := b.waitTime(err, n+1)
		b.log.WithField("attempt", n+1).WithField("wait_seconds", int64(wait)).Debug("retrying after rate limit or transport error")
		metrics.BackoffRetriesTotal.WithLabelValues(b.provider).Inc()
		b.clock.Sleep(wait.Duration())
	}
}

// APIMaxPages and Run make Backoff itself satisfy Runner, so it can wrap
// (or be wrapped by) a Paginator transparently.
func (b *Backoff) APIMaxPages(req *Request) int { return b.runner.APIMaxPages(req) }

func shouldRetry(err error) bool {
	var rle *errorsx.RateLimitExceededError
	if errors.As(err, &rle) {
		return true
	}
	var hte *errorsx.HTTPTransportError
	return errors.As(err, &hte)
}

// waitTime implements base + 2^n, where base prefers retry_after, then
// reset-now (when reset is in the future), then a flat 60 seconds.
func (b *Backoff) waitTime(err error, n int) xtime.Seconds {
	base := xtime.Seconds(60)
	now := b.clock.Now().Unix()

	var rle *errorsx.RateLimitExceededError
	if errors.As(err, &rle) {
		if rle.Header.RetryAfter > 0 {
			base = xtime.Seconds(rle.Header.RetryAfter)
		} else if rle.Header.Reset > now {
			base = xtime.Seconds(rle.Header.Reset - now)
		}
	}
	return base + xtime.Seconds(pow2(n))
}

func pow2(n int) int64 {
	var v int64 = 1
	for i := 0; i < n; i++ {
		v *= 2
	}
	return v
}
