package market

import (
	"context"
	"sync"
	"time"

	"spreadedge/pkg/logger"
)

// BreakerState is the circuit breaker state
type BreakerState int

const (
	StateClosed   BreakerState = iota // Normal operation
	StateOpen                         // Failing, reject requests
	StateHalfOpen                     // Testing recovery
)

func (s BreakerState) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

// BreakerConfig holds configuration for a circuit breaker
type BreakerConfig struct {
	Name             string
	FailureThreshold int           // failures before opening
	SuccessThreshold int           // successes before closing from half-open
	Timeout          time.Duration // time before trying half-open
}

// DefaultBreakerConfig returns the settings used for market providers
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		FailureThreshold: 5,
		SuccessThreshold: 1,
		Timeout:          30 * time.Second,
	}
}

// CircuitBreaker stops calling an upstream that keeps failing.
// Safe for concurrent use.
type CircuitBreaker struct {
	cfg BreakerConfig
	log *logger.Logger
	now func() time.Time

	mu           sync.Mutex
	state        BreakerState
	failureCount int
	successCount int
	lastFailure  time.Time
}

func NewCircuitBreaker(cfg BreakerConfig, log *logger.Logger) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg,
		log:   log,
		now:   time.Now,
		state: StateClosed,
	}
}

// Allow reports whether a call may proceed
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed, StateHalfOpen:
		return true
	case StateOpen:
		if cb.now().Sub(cb.lastFailure) > cb.cfg.Timeout {
			cb.state = StateHalfOpen
			cb.successCount = 0
			cb.log.Info("Circuit breaker transitioning to HALF_OPEN", "name", cb.cfg.Name)
			return true
		}
		return false
	default:
		return false
	}
}

// RecordSuccess records a successful call
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		cb.failureCount = 0
	case StateHalfOpen:
		cb.successCount++
		if cb.successCount >= cb.cfg.SuccessThreshold {
			cb.state = StateClosed
			cb.failureCount = 0
			cb.successCount = 0
			cb.log.Info("Circuit breaker CLOSED (recovered)", "name", cb.cfg.Name)
		}
	}
}

// RecordFailure records a failed call
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failureCount++
		if cb.failureCount >= cb.cfg.FailureThreshold {
			cb.state = StateOpen
			cb.log.Warn("Circuit breaker OPEN (failures exceeded threshold)",
				"name", cb.cfg.Name, "failures", cb.failureCount)
		}
	case StateHalfOpen:
		cb.state = StateOpen
		cb.successCount = 0
		cb.log.Warn("Circuit breaker OPEN (half-open test failed)", "name", cb.cfg.Name)
	}
}

// State returns the current state
func (cb *CircuitBreaker) State() BreakerState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// backoff returns base * 2^attempt, capped at maxDelay
func backoff(base, maxDelay time.Duration, attempt int) time.Duration {
	if attempt < 0 {
		return base
	}
	if attempt > 30 {
		return maxDelay
	}
	d := base * time.Duration(1<<attempt)
	if d > maxDelay || d <= 0 {
		return maxDelay
	}
	return d
}

// sleepCtx waits for d or until ctx is done
func sleepCtx(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
