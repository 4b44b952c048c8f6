package resilience

import "time"

const (
	defaultBreakerInterval         = time.Minute
	defaultBreakerTimeout          = 30 * time.Second
	defaultBreakerFailureThreshold = 5
	defaultBreakerSuccessThreshold = 1
)

// BuildSettings turns the integer knobs read from the environment into Settings.
// Non-positive values fall back to the package defaults.
func BuildSettings(name string, intervalSeconds, timeoutSeconds, failureThreshold, successThreshold int) Settings {
	return Settings{
		Name:             name,
		Interval:         secondsOr(intervalSeconds, defaultBreakerInterval),
		Timeout:          secondsOr(timeoutSeconds, defaultBreakerTimeout),
		FailureThreshold: uint32(positiveOr(failureThreshold, defaultBreakerFailureThreshold)),
		SuccessThreshold: uint32(positiveOr(successThreshold, defaultBreakerSuccessThreshold)),
	}
}

func secondsOr(seconds int, fallback time.Duration) time.Duration {
	if seconds <= 0 {
		return fallback
	}
	return time.Duration(seconds) * time.Second
}

func positiveOr(value, fallback int) int {
	if value <= 0 {
		return fallback
	}
	return value
}
