package resilience

import (
	"context"

	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
)

// FallbackFunc decides the result of a call rejected by an open or saturated breaker.
type FallbackFunc func(ctx context.Context, err error) (interface{}, error)

// NoopFallback reports ErrCircuitOpen and nothing else.
func NoopFallback(ctx context.Context, err error) (interface{}, error) {
	return nil, ErrCircuitOpen
}

// GracefulDegradation logs which upstream is degraded and reports ErrCircuitOpen
// so the caller can map it to a 503.
func GracefulDegradation(serviceName string) FallbackFunc {
	return func(ctx context.Context, err error) (interface{}, error) {
		logger.WithContext(ctx).Warn("circuit breaker open, upstream degraded",
			zap.String("service", serviceName),
			zap.Error(err),
		)
		return nil, ErrCircuitOpen
	}
}
