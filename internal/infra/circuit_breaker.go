package infra

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// CircuitBreaker guards calls to the message gateway. After a run of
// consecutive failures the circuit opens and calls fast-fail until the
// cooldown elapses; the first call after that probes the gateway and
// closes the circuit on success.

type circuitState int

const (
	stateClosed circuitState = iota
	stateOpen
	stateHalfOpen
)

var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreaker struct {
	mu               sync.Mutex
	state            circuitState
	failures         int
	failureThreshold int
	cooldown         time.Duration
	openedAt         time.Time
	name             string
}

func NewCircuitBreaker(name string, failureThreshold int, cooldown time.Duration) *CircuitBreaker {
	return &CircuitBreaker{
		state:            stateClosed,
		failureThreshold: failureThreshold,
		cooldown:         cooldown,
		name:             name,
	}
}

// Execute runs fn if the circuit allows it and records the outcome.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	if !cb.allow() {
		return ErrCircuitOpen
	}

	err := fn()
	cb.record(err)
	return err
}

func (cb *CircuitBreaker) allow() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case stateClosed:
		return true
	case stateOpen:
		if time.Since(cb.openedAt) >= cb.cooldown {
			cb.state = stateHalfOpen
			log.Info().Str("breaker", cb.name).Msg("circuit breaker half-open, probing")
			return true
		}
		return false
	case stateHalfOpen:
		// Only one probe at a time; concurrent callers fast-fail.
		return false
	}
	return false
}

func (cb *CircuitBreaker) record(err error) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if err == nil {
		if cb.state != stateClosed {
			log.Info().Str("breaker", cb.name).Msg("circuit breaker closed")
		}
		cb.state = stateClosed
		cb.failures = 0
		return
	}

	cb.failures++
	if cb.state == stateHalfOpen || cb.failures >= cb.failureThreshold {
		cb.state = stateOpen
		cb.openedAt = time.Now()
		log.Warn().
			Str("breaker", cb.name).
			Int("failures", cb.failures).
			Dur("cooldown", cb.cooldown).
			Msg("circuit breaker opened")
	}
}

// State reports the current state for health checks.
func (cb *CircuitBreaker) State() string {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	switch cb.state {
	case stateOpen:
		return "open"
	case stateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}
