package market

import (
	"context"
	"testing"
	"time"

	"spreadedge/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func newTestBreaker(threshold int, timeout time.Duration) (*CircuitBreaker, *time.Time) {
	now := time.Unix(1_700_000_000, 0)
	cb := NewCircuitBreaker(BreakerConfig{
		Name:             "test",
		FailureThreshold: threshold,
		SuccessThreshold: 1,
		Timeout:          timeout,
	}, logger.Discard())
	cb.now = func() time.Time { return now }
	return cb, &now
}

func TestCircuitBreaker_OpensAfterThreshold(t *testing.T) {
	cb, _ := newTestBreaker(3, time.Minute)

	cb.RecordFailure()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestCircuitBreaker_SuccessResetsCount(t *testing.T) {
	cb, _ := newTestBreaker(2, time.Minute)

	cb.RecordFailure()
	cb.RecordSuccess()
	cb.RecordFailure()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenRecovery(t *testing.T) {
	cb, now := newTestBreaker(1, time.Minute)

	cb.RecordFailure()
	assert.False(t, cb.Allow())

	*now = now.Add(time.Minute + time.Second)
	assert.True(t, cb.Allow())
	assert.Equal(t, StateHalfOpen, cb.State())

	cb.RecordSuccess()
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpenFailureReopens(t *testing.T) {
	cb, now := newTestBreaker(1, time.Minute)

	cb.RecordFailure()
	*now = now.Add(2 * time.Minute)
	assert.True(t, cb.Allow())

	cb.RecordFailure()
	assert.Equal(t, StateOpen, cb.State())
	assert.False(t, cb.Allow())
}

func TestBreakerState_String(t *testing.T) {
	assert.Equal(t, "CLOSED", StateClosed.String())
	assert.Equal(t, "OPEN", StateOpen.String())
	assert.Equal(t, "HALF_OPEN", StateHalfOpen.String())
	assert.Equal(t, "UNKNOWN", BreakerState(9).String())
}

func TestBackoff(t *testing.T) {
	base, limit := 500*time.Millisecond, 4*time.Second

	assert.Equal(t, base, backoff(base, limit, -1))
	assert.Equal(t, 500*time.Millisecond, backoff(base, limit, 0))
	assert.Equal(t, time.Second, backoff(base, limit, 1))
	assert.Equal(t, 2*time.Second, backoff(base, limit, 2))
	assert.Equal(t, limit, backoff(base, limit, 5))
	assert.Equal(t, limit, backoff(base, limit, 64))
}

func TestSleepCtx_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepCtx(ctx, time.Hour), context.Canceled)
	assert.NoError(t, sleepCtx(context.Background(), time.Millisecond))
}
