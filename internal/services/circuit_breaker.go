package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"transaction-analytics/internal/dto"
)

var (
	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

type CircuitBreakerConfig struct {
	MaxFailures     int
	ResetTimeout    time.Duration
	HalfOpenMaxSucc int
}

// DefaultCircuitBreakerConfig suits a snapshot source that is fetched on demand
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		MaxFailures:     3,
		ResetTimeout:    time.Minute,
		HalfOpenMaxSucc: 1,
	}
}

type CircuitBreaker struct {
	mu                sync.Mutex
	config            CircuitBreakerConfig
	state             CircuitState
	failures          int
	halfOpenSuccesses int
	lastFailureTime   time.Time
	now               func() time.Time
}

func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

// Allow reports whether a call may go through, moving an expired open
// breaker to half-open
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == StateOpen && cb.now().Sub(cb.lastFailureTime) > cb.config.ResetTimeout {
		cb.state = StateHalfOpen
		cb.halfOpenSuccesses = 0
	}
	return cb.state != StateOpen
}

func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateHalfOpen:
		cb.halfOpenSuccesses++
		if cb.halfOpenSuccesses >= cb.config.HalfOpenMaxSucc {
			cb.state = StateClosed
			cb.failures = 0
			cb.halfOpenSuccesses = 0
		}
	case StateClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.lastFailureTime = cb.now()

	switch cb.state {
	case StateHalfOpen:
		cb.state = StateOpen
		cb.halfOpenSuccesses = 0
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.config.MaxFailures {
			cb.state = StateOpen
		}
	}
}

func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// GuardedDataSource stops calling an unreachable source until the breaker
// resets. Malformed snapshots do not count as failures.
type GuardedDataSource struct {
	source  DataSourceInterface
	breaker *CircuitBreaker
}

func NewGuardedDataSource(source DataSourceInterface, breaker *CircuitBreaker) DataSourceInterface {
	return &GuardedDataSource{
		source:  source,
		breaker: breaker,
	}
}

func (g *GuardedDataSource) Name() string {
	return g.source.Name()
}

func (g *GuardedDataSource) Fetch(ctx context.Context) ([]dto.SeedRecord, error) {
	if !g.breaker.Allow() {
		slog.Warn("seed source skipped",
			"source", g.source.Name(),
			"breaker_state", g.breaker.State().String())
		return nil, fmt.Errorf("%w: %w", ErrSourceUnavailable, ErrCircuitBreakerOpen)
	}

	before := g.breaker.State()
	records, err := g.source.Fetch(ctx)
	switch {
	case errors.Is(err, ErrSourceUnavailable):
		g.breaker.RecordFailure()
	case err == nil:
		g.breaker.RecordSuccess()
	}

	if after := g.breaker.State(); after != before {
		slog.Info("seed source breaker state changed",
			"source", g.source.Name(),
			"from", before.String(),
			"to", after.String())
	}
	return records, err
}
