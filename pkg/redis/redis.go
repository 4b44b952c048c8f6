package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/richxcame/ride-hailing-web/pkg/config"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
)

// ClientInterface is the subset of commands the theme storage uses
type ClientInterface interface {
	GetString(ctx context.Context, key string) (string, error)
	SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error
}

// Client wraps the Redis client
type Client struct {
	*redis.Client
}

// NewRedisClient creates a new Redis client and pings it
func NewRedisClient(cfg *config.RedisConfig) (*Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("unable to connect to redis: %w", err)
	}

	return &Client{Client: client}, nil
}

// NewFromClient wraps an existing go-redis client, e.g. a redismock client
func NewFromClient(client *redis.Client) *Client {
	return &Client{Client: client}
}

// SetWithExpiration sets a key-value pair with expiration; zero means no expiry
func (c *Client) SetWithExpiration(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	_, err := RetryableOperation(ctx, func(ctx context.Context) (string, error) {
		return c.Set(ctx, key, value, expiration).Result()
	}, "redis.set")
	return err
}

// GetString gets a string value by key. A missing key returns redis.Nil.
func (c *Client) GetString(ctx context.Context, key string) (string, error) {
	return RetryableOperation(ctx, func(ctx context.Context) (string, error) {
		return c.Get(ctx, key).Result()
	}, "redis.get")
}

// IsNil reports whether err means the key does not exist
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}

// ConservativeRetryConfig retries transient redis failures a couple of times
func ConservativeRetryConfig() resilience.RetryConfig {
	return resilience.RetryConfig{
		MaxAttempts:       2,
		InitialBackoff:    50 * time.Millisecond,
		MaxBackoff:        1 * time.Second,
		BackoffMultiplier: 2.0,
		EnableJitter:      true,
		RetryableChecker:  isRedisRetryable,
	}
}

// RetryableOperation runs op with ConservativeRetryConfig
func RetryableOperation[T any](ctx context.Context, op func(ctx context.Context) (T, error), name string) (T, error) {
	var zero T
	result, err := resilience.Retry(ctx, ConservativeRetryConfig(), func(ctx context.Context) (interface{}, error) {
		return op(ctx)
	})
	if err != nil {
		if IsNil(err) {
			return zero, err
		}
		return zero, fmt.Errorf("%s: %w", name, err)
	}
	typed, ok := result.(T)
	if !ok {
		return zero, nil
	}
	return typed, nil
}

var nonRetryableRedisErrors = []string{
	"wrongtype",
	"err syntax",
	"err invalid",
	"noauth",
	"wrongpass",
	"noperm",
	"err unknown",
	"execabort",
}

// isRedisRetryable treats unknown errors as transient; only command and auth errors are final.
func isRedisRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, redis.Nil) {
		return false
	}
	msg := strings.ToLower(err.Error())
	for _, fragment := range nonRetryableRedisErrors {
		if strings.Contains(msg, fragment) {
			return false
		}
	}
	return true
}
