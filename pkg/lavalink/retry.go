package lavalink

import (
	"context"
	"errors"
	"math/rand"
	"net"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// adaptiveLimiter paces REST traffic to one node. The rate climbs while
// requests succeed and halves when the node pushes back, so a struggling
// node is not hammered by retries from every player at once.
type adaptiveLimiter struct {
	mu        sync.Mutex
	limiter   *rate.Limiter
	minLimit  rate.Limit
	maxLimit  rate.Limit
	stepUp    rate.Limit
	stepDown  float64
	lastError time.Time
}

func newAdaptiveLimiter(initial, min, max rate.Limit, stepUp rate.Limit, stepDown float64) *adaptiveLimiter {
	if initial < min {
		initial = min
	}
	burst := int(initial)
	if burst < 1 {
		burst = 1
	}
	return &adaptiveLimiter{
		limiter:  rate.NewLimiter(initial, burst),
		minLimit: min,
		maxLimit: max,
		stepUp:   stepUp,
		stepDown: stepDown,
	}
}

func defaultNodeLimiter() *adaptiveLimiter {
	return newAdaptiveLimiter(10, 1, 25, 1, 0.5)
}

// wait blocks until a token is available or the context is done.
func (a *adaptiveLimiter) wait(ctx context.Context) error {
	return a.limiter.Wait(ctx)
}

// success nudges the rate up, but only once the node has been quiet for a
// while after its last failure.
func (a *adaptiveLimiter) success() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if time.Since(a.lastError) > 10*time.Second {
		a.adjust(a.limiter.Limit() + a.stepUp)
	}
}

// failure halves the rate after a transient server-side failure.
func (a *adaptiveLimiter) failure() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.lastError = time.Now()
	a.adjust(rate.Limit(float64(a.limiter.Limit()) * a.stepDown))
}

func (a *adaptiveLimiter) adjust(newLimit rate.Limit) {
	if newLimit > a.maxLimit {
		newLimit = a.maxLimit
	}
	if newLimit < a.minLimit {
		newLimit = a.minLimit
	}
	a.limiter.SetLimit(newLimit)
	burst := int(newLimit)
	if burst < 1 {
		burst = 1
	}
	a.limiter.SetBurst(burst)
}

func (a *adaptiveLimiter) currentLimit() float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return float64(a.limiter.Limit())
}

// transientStatus reports whether an HTTP status is worth retrying.
func transientStatus(status int) bool {
	return status >= 500 || status == 408 || status == 429
}

// authStatus reports whether an HTTP status means the password was
// rejected. Never retried.
func authStatus(status int) bool {
	return status == 401 || status == 403
}

// retryableError classifies an error as transient. Network timeouts,
// refused connections and 5xx-class REST errors are transient; auth
// failures and validation errors are permanent.
func retryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrAuth) || errors.Is(err, context.Canceled) {
		return false
	}

	var restErr *RestError
	if errors.As(err, &restErr) {
		return transientStatus(restErr.Status)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var opErr *net.OpError
	return errors.As(err, &opErr)
}

// backoffDelay computes the exponential backoff for the given attempt
// (0-based), with up to 25% jitter to avoid thundering reconnects.
func backoffDelay(attempt int, base, max time.Duration) time.Duration {
	delay := base
	for i := 0; i < attempt; i++ {
		delay *= 2
		if delay >= max {
			delay = max
			break
		}
	}
	jitter := time.Duration(rand.Int63n(int64(delay)/4 + 1))
	delay += jitter
	if delay > max {
		delay = max
	}
	return delay
}

// sleepContext sleeps for d unless the context is done first.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
