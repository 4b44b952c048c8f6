package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failing(ctx context.Context) (interface{}, error) {
	return nil, errUpstream
}

func TestCircuitBreaker_TripsAfterThreshold(t *testing.T) {
	breaker := NewCircuitBreaker(Settings{
		Name:             "graphql-test-trip",
		Interval:         time.Minute,
		Timeout:          time.Minute,
		FailureThreshold: 2,
	}, nil)

	_, err := breaker.Execute(context.Background(), failing)
	assert.ErrorIs(t, err, errUpstream)
	_, err = breaker.Execute(context.Background(), failing)
	assert.ErrorIs(t, err, errUpstream)

	calls := 0
	_, err = breaker.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		calls++
		return "ok", nil
	})
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, 0, calls, "open breaker must not run the operation")
	assert.Equal(t, "open", breaker.State())
}

func TestCircuitBreaker_HalfOpenRecovers(t *testing.T) {
	breaker := NewCircuitBreaker(Settings{
		Name:             "graphql-test-recover",
		Timeout:          20 * time.Millisecond,
		FailureThreshold: 1,
		SuccessThreshold: 1,
	}, nil)

	_, _ = breaker.Execute(context.Background(), failing)
	assert.Equal(t, "open", breaker.State())

	time.Sleep(30 * time.Millisecond)
	result, err := breaker.Execute(context.Background(), func(ctx context.Context) (interface{}, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)
	assert.Equal(t, "closed", breaker.State())
}

func TestCircuitBreaker_GeneratedName(t *testing.T) {
	a := NewCircuitBreaker(Settings{}, nil)
	b := NewCircuitBreaker(Settings{}, nil)
	assert.NotEqual(t, a.Name(), b.Name())
}

func TestCircuitBreaker_GracefulDegradationWhenOpen(t *testing.T) {
	breaker := NewCircuitBreaker(Settings{
		Name:             "graphql-test-degraded",
		Timeout:          time.Minute,
		FailureThreshold: 1,
	}, GracefulDegradation("graphql"))

	_, _ = breaker.Execute(context.Background(), failing)
	_, err := breaker.Execute(context.Background(), failing)

	assert.True(t, errors.Is(err, ErrCircuitOpen))
}

func TestBuildSettings_Defaults(t *testing.T) {
	settings := BuildSettings("graphql", 0, 0, 0, 0)

	assert.Equal(t, "graphql", settings.Name)
	assert.Equal(t, time.Minute, settings.Interval)
	assert.Equal(t, 30*time.Second, settings.Timeout)
	assert.Equal(t, uint32(5), settings.FailureThreshold)
	assert.Equal(t, uint32(1), settings.SuccessThreshold)
}
