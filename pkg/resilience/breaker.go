package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// ErrCircuitOpen is returned when the breaker rejects a call
var ErrCircuitOpen = errors.New("circuit breaker is open")

// Settings configures a circuit breaker
type Settings struct {
	Name             string
	Interval         time.Duration // window after which closed-state counts reset
	Timeout          time.Duration // open-state duration before a half-open trial request
	FailureThreshold uint32        // consecutive failures that trip the breaker
	SuccessThreshold uint32        // half-open successes needed to close again
	// IsSuccessful reports errors that must not count as failures, such as
	// application errors returned by a healthy upstream. Nil counts every error.
	IsSuccessful func(err error) bool
}

// CircuitBreaker wraps gobreaker with a fallback and prometheus metrics
type CircuitBreaker struct {
	name     string
	breaker  *gobreaker.CircuitBreaker
	fallback FallbackFunc

	isSuccessful func(err error) bool
}

// NewCircuitBreaker creates a breaker from settings. A nil fallback behaves like NoopFallback.
func NewCircuitBreaker(settings Settings, fallback FallbackFunc) *CircuitBreaker {
	name := nextBreakerName(settings.Name)
	if fallback == nil {
		fallback = NoopFallback
	}

	failureThreshold := settings.FailureThreshold
	if failureThreshold == 0 {
		failureThreshold = 5
	}
	successThreshold := settings.SuccessThreshold
	if successThreshold == 0 {
		successThreshold = 1
	}

	cb := &CircuitBreaker{name: name, fallback: fallback, isSuccessful: settings.IsSuccessful}
	cb.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        name,
		MaxRequests: successThreshold,
		Interval:    settings.Interval,
		Timeout:     settings.Timeout,
		IsSuccessful: func(err error) bool {
			return err == nil || (cb.isSuccessful != nil && cb.isSuccessful(err))
		},
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			recordBreakerStateChange(name, from, to)
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
	recordBreakerState(name, gobreaker.StateClosed)

	return cb
}

// Name returns the breaker name
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// State returns the current breaker state as a string
func (cb *CircuitBreaker) State() string {
	return cb.breaker.State().String()
}

// Execute runs operation through the breaker. When the breaker is open or
// saturated in half-open state the fallback decides the result.
func (cb *CircuitBreaker) Execute(ctx context.Context, operation func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	recordBreakerRequest(cb.name)

	result, err := cb.breaker.Execute(func() (interface{}, error) {
		return operation(ctx)
	})
	if err == nil {
		return result, nil
	}

	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		recordBreakerFallback(cb.name)
		return cb.fallback(ctx, err)
	}

	if cb.isSuccessful == nil || !cb.isSuccessful(err) {
		recordBreakerFailure(cb.name)
	}
	return result, err
}
