package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/richxcame/ride-hailing-web/pkg/logger"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
	"github.com/richxcame/ride-hailing-web/pkg/tracing"
)

const maxResponseBytes = 10 << 20

// Client sends documents to a GraphQL API over HTTP
type Client struct {
	endpoint   string
	httpClient *http.Client
	breaker    *resilience.CircuitBreaker
	retry      *resilience.RetryConfig
	timeout    time.Duration
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default traced HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithBreaker guards every call with cb
func WithBreaker(cb *resilience.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithRetry retries queries on transient failures. Mutations are never
// retried since the API may already have applied them.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *Client) {
		cfg.RetryableChecker = isRetryable
		c.retry = &cfg
	}
}

// WithTimeout bounds each HTTP attempt
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// NewClient creates a client for endpoint
func NewClient(endpoint string, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Transport: tracing.Transport(nil)},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BreakerSettings returns breaker settings under which GraphQL errors and
// client-side HTTP errors do not count as upstream failures unless they
// arrive with a 5xx or 429 status.
func BreakerSettings(settings resilience.Settings) resilience.Settings {
	settings.IsSuccessful = countsAsSuccess
	return settings
}

type request struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables,omitempty"`
}

type response struct {
	Data   json.RawMessage `json:"data"`
	Errors []Error         `json:"errors"`
}

// Do sends doc with variables as a JSON POST and decodes data into out.
// out may be nil when the caller only needs the error.
func (c *Client) Do(ctx context.Context, doc Document, variables map[string]interface{}, out interface{}) error {
	body, err := json.Marshal(request{
		Query:         doc.Source,
		OperationName: doc.Name,
		Variables:     variables,
	})
	if err != nil {
		return fmt.Errorf("graphql %s: encode request: %w", doc.Name, err)
	}
	return c.send(ctx, doc, body, "application/json", out)
}

func (c *Client) send(ctx context.Context, doc Document, body []byte, contentType string, out interface{}) error {
	start := time.Now()

	call := func(ctx context.Context) (interface{}, error) {
		return nil, c.post(ctx, doc, body, contentType, out)
	}
	if c.breaker != nil {
		guarded := call
		call = func(ctx context.Context) (interface{}, error) {
			return c.breaker.Execute(ctx, guarded)
		}
	}

	var err error
	if c.retry != nil && doc.Kind == KindQuery {
		_, err = resilience.Retry(ctx, *c.retry, call)
	} else {
		_, err = call(ctx)
	}

	observe(doc, start, err)
	if err != nil && (!isGraphQLError(err) || isRetryable(err)) {
		logger.WithContext(ctx).Warn("graphql operation failed",
			zap.String("operation", doc.Name),
			zap.String("kind", string(doc.Kind)),
			zap.Error(err),
		)
	}
	return err
}

func (c *Client) post(ctx context.Context, doc Document, body []byte, contentType string, out interface{}) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("graphql %s: build request: %w", doc.Name, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if contentType != "application/json" {
		// multipart requests are not CSRF-safe without a custom header
		req.Header.Set("Apollo-Require-Preflight", "true")
	}
	if token, ok := AuthTokenFromContext(ctx); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("graphql %s: %w", doc.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("graphql %s: read response: %w", doc.Name, err)
	}

	var decoded response
	decodeErr := json.Unmarshal(raw, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && len(decoded.Errors) > 0 {
			return &Errors{Operation: doc.Name, StatusCode: resp.StatusCode, List: decoded.Errors}
		}
		return &HTTPError{Operation: doc.Name, StatusCode: resp.StatusCode, Body: truncate(raw, 512)}
	}
	if decodeErr != nil {
		return fmt.Errorf("graphql %s: decode response: %w", doc.Name, decodeErr)
	}

	if out != nil && len(decoded.Data) > 0 && string(decoded.Data) != "null" {
		if err := json.Unmarshal(decoded.Data, out); err != nil {
			return fmt.Errorf("graphql %s: decode data: %w", doc.Name, err)
		}
	}
	if len(decoded.Errors) > 0 {
		return &Errors{Operation: doc.Name, StatusCode: resp.StatusCode, List: decoded.Errors}
	}
	return nil
}

func isGraphQLError(err error) bool {
	var gqlErrs *Errors
	return errors.As(err, &gqlErrs)
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n])
}
