package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Checker is a single dependency check
type Checker func() error

// CheckerConfig tunes dependency checks
type CheckerConfig struct {
	Timeout time.Duration
}

// DefaultCheckerConfig returns the default checker configuration
func DefaultCheckerConfig() CheckerConfig {
	return CheckerConfig{Timeout: 2 * time.Second}
}

// RedisChecker returns a health check function for Redis
func RedisChecker(client redis.UniversalClient) Checker {
	return RedisCheckerWithConfig(client, DefaultCheckerConfig())
}

// RedisCheckerWithConfig returns a Redis health check with a custom timeout
func RedisCheckerWithConfig(client redis.UniversalClient, cfg CheckerConfig) Checker {
	return func() error {
		if client == nil {
			return errors.New("redis client is nil")
		}
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()
		return client.Ping(ctx).Err()
	}
}

// HTTPEndpointChecker returns a health check function for HTTP endpoints.
// Used for the edge origin and the GraphQL API.
func HTTPEndpointChecker(url string) Checker {
	return HTTPEndpointCheckerWithConfig(url, DefaultCheckerConfig())
}

// HTTPEndpointCheckerWithConfig returns an HTTP endpoint check with a custom timeout.
// Any status below 400 counts as healthy; redirects are not followed.
func HTTPEndpointCheckerWithConfig(url string, cfg CheckerConfig) Checker {
	client := &http.Client{
		Timeout: cfg.Timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return fmt.Errorf("build health request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode >= http.StatusBadRequest {
			return fmt.Errorf("unhealthy status code: %d", resp.StatusCode)
		}
		return nil
	}
}

// CachedChecker caches the result of a checker for a TTL
type CachedChecker struct {
	checker   Checker
	cacheTTL  time.Duration
	mu        sync.Mutex
	lastCheck time.Time
	lastErr   error
}

// NewCachedChecker wraps checker so it runs at most once per ttl
func NewCachedChecker(checker Checker, ttl time.Duration) *CachedChecker {
	return &CachedChecker{checker: checker, cacheTTL: ttl}
}

// Check returns the cached result or runs the underlying checker
func (c *CachedChecker) Check() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.lastCheck.IsZero() && time.Since(c.lastCheck) < c.cacheTTL {
		return c.lastErr
	}
	c.lastErr = c.checker()
	c.lastCheck = time.Now()
	return c.lastErr
}
