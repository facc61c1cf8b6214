package lavalink

import (
	"context"
	"errors"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"auth", fmt.Errorf("%w: bad password", ErrAuth), false},
		{"context canceled", context.Canceled, false},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"net timeout", timeoutError{}, true},
		{"op error", &net.OpError{Op: "dial", Err: errors.New("refused")}, true},
		{"rest 500", &RestError{Status: 500}, true},
		{"rest 503", &RestError{Status: 503}, true},
		{"rest 429", &RestError{Status: 429}, true},
		{"rest 408", &RestError{Status: 408}, true},
		{"rest 400 validation", &RestError{Status: 400}, false},
		{"rest 404", &RestError{Status: 404}, false},
		{"plain error", errors.New("something"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, retryableError(tt.err))
		})
	}
}

func TestAuthStatus(t *testing.T) {
	assert.True(t, authStatus(401))
	assert.True(t, authStatus(403))
	assert.False(t, authStatus(400))
	assert.False(t, authStatus(500))
}

func TestBackoffDelay(t *testing.T) {
	base := 100 * time.Millisecond
	max := 2 * time.Second

	for attempt := 0; attempt < 10; attempt++ {
		delay := backoffDelay(attempt, base, max)
		assert.GreaterOrEqual(t, delay, base, "attempt %d", attempt)
		assert.LessOrEqual(t, delay, max, "attempt %d", attempt)
	}

	// grows roughly exponentially before hitting the ceiling
	assert.GreaterOrEqual(t, backoffDelay(2, base, max), 400*time.Millisecond)
}

func TestAdaptiveLimiterAdjustments(t *testing.T) {
	lim := newAdaptiveLimiter(10, 1, 20, 1, 0.5)

	lim.failure()
	assert.InDelta(t, 5.0, lim.currentLimit(), 0.01)
	lim.failure()
	assert.InDelta(t, 2.5, lim.currentLimit(), 0.01)

	// success right after a failure must not raise the limit
	lim.success()
	assert.InDelta(t, 2.5, lim.currentLimit(), 0.01)

	// floor and ceiling are respected
	for i := 0; i < 10; i++ {
		lim.failure()
	}
	assert.InDelta(t, 1.0, lim.currentLimit(), 0.01)

	lim.lastError = time.Now().Add(-time.Minute)
	for i := 0; i < 50; i++ {
		lim.success()
	}
	assert.InDelta(t, 20.0, lim.currentLimit(), 0.01)
}

func TestSleepContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := sleepContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)

	start := time.Now()
	assert.NoError(t, sleepContext(context.Background(), 10*time.Millisecond))
	assert.GreaterOrEqual(t, time.Since(start), 10*time.Millisecond)
}
