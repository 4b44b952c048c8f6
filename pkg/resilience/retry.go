package resilience

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// RetryConfig controls Retry behaviour
type RetryConfig struct {
	MaxAttempts       int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
	BackoffMultiplier float64
	EnableJitter      bool
	// RetryableErrors limits retries to these errors when non-empty
	RetryableErrors []error
	// RetryableChecker overrides RetryableErrors when set
	RetryableChecker func(err error) bool
}

// DefaultRetryConfig returns a balanced retry configuration
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       3,
		InitialBackoff:    1 * time.Second,
		MaxBackoff:        30 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
	}
}

// Retry runs operation until it succeeds, returns a non-retryable error,
// the attempts are exhausted or ctx is done. It always attempts at least once.
func Retry(ctx context.Context, config RetryConfig, operation func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	attempts := config.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		result, err := operation(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if attempt == attempts || !shouldRetry(err, config) {
			break
		}

		wait := calculateBackoff(attempt, config)
		logger.WithContext(ctx).Debug("retrying operation",
			zap.Int("attempt", attempt),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

// IsRetryableHTTPStatus reports whether an upstream status is worth retrying
func IsRetryableHTTPStatus(statusCode int) bool {
	switch statusCode {
	case http.StatusRequestTimeout,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}

func shouldRetry(err error, config RetryConfig) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrCircuitOpen) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if config.RetryableChecker != nil {
		return config.RetryableChecker(err)
	}
	if len(config.RetryableErrors) == 0 {
		return true
	}
	for _, target := range config.RetryableErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

func calculateBackoff(attempt int, config RetryConfig) time.Duration {
	multiplier := config.BackoffMultiplier
	if multiplier <= 0 {
		multiplier = 2.0
	}
	wait := float64(config.InitialBackoff) * math.Pow(multiplier, float64(attempt-1))
	if config.MaxBackoff > 0 && wait > float64(config.MaxBackoff) {
		wait = float64(config.MaxBackoff)
	}
	d := time.Duration(wait)
	if config.EnableJitter {
		d = addJitter(d)
	}
	return d
}

// addJitter returns a random duration in [0, d] (full jitter)
func addJitter(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	return time.Duration(rand.Int63n(int64(d) + 1))
}
