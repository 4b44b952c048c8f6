package graphql

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/richxcame/ride-hailing-web/pkg/common"
	"github.com/richxcame/ride-hailing-web/pkg/resilience"
)

// CodeUnauthenticated is the extensions.code the API uses for a missing or expired token
const CodeUnauthenticated = "UNAUTHENTICATED"

// Error is one entry of a response's errors list
type Error struct {
	Message    string                 `json:"message"`
	Path       []interface{}          `json:"path,omitempty"`
	Extensions map[string]interface{} `json:"extensions,omitempty"`
}

// Code returns extensions.code, if any
func (e Error) Code() string {
	code, _ := e.Extensions["code"].(string)
	return code
}

// Errors is returned when the API answers with a non-empty errors list.
// Any data that came with the errors has already been decoded.
type Errors struct {
	Operation string
	// StatusCode is the HTTP status the list arrived with
	StatusCode int
	List       []Error
}

func (e *Errors) Error() string {
	messages := make([]string, 0, len(e.List))
	for _, item := range e.List {
		messages = append(messages, item.Message)
	}
	return fmt.Sprintf("graphql %s: %s", e.Operation, strings.Join(messages, "; "))
}

// HasCode reports whether any entry carries code
func (e *Errors) HasCode(code string) bool {
	for _, item := range e.List {
		if item.Code() == code {
			return true
		}
	}
	return false
}

// HTTPError is returned when the API answers with a non-2xx status and no errors list
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("graphql %s: unexpected status %d", e.Operation, e.StatusCode)
}

// IsUnauthenticated reports whether err means the caller's token was rejected
func IsUnauthenticated(err error) bool {
	var gqlErrs *Errors
	if errors.As(err, &gqlErrs) && gqlErrs.HasCode(CodeUnauthenticated) {
		return true
	}
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusUnauthorized
}

// AppError maps a client error onto the API error taxonomy: rejected token
// is 401, open breaker is 503, an expired request deadline is 504 and
// anything else from upstream is 502.
func AppError(err error, message string) *common.AppError {
	var gqlErrs *Errors
	switch {
	case IsUnauthenticated(err):
		return common.NewUnauthorizedError("authentication required")
	case errors.Is(err, resilience.ErrCircuitOpen):
		return common.NewServiceUnavailableError(message + ": service temporarily unavailable")
	case errors.Is(err, context.DeadlineExceeded):
		return common.NewGatewayTimeoutError(message+": upstream timed out", err)
	case errors.As(err, &gqlErrs) && len(gqlErrs.List) > 0:
		return common.NewBadGatewayError(gqlErrs.List[0].Message, err)
	default:
		return common.NewBadGatewayError(message, err)
	}
}

// upstreamFailed reports a status that means the API itself is struggling
func upstreamFailed(statusCode int) bool {
	return statusCode >= http.StatusInternalServerError || statusCode == http.StatusTooManyRequests
}

// isRetryable reports transient failures worth another attempt. GraphQL
// errors sent with a 2xx or 4xx come from a healthy API and are final.
func isRetryable(err error) bool {
	var gqlErrs *Errors
	if errors.As(err, &gqlErrs) {
		return upstreamFailed(gqlErrs.StatusCode)
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return resilience.IsRetryableHTTPStatus(httpErr.StatusCode)
	}
	return true
}

// countsAsSuccess keeps application errors from tripping the breaker
func countsAsSuccess(err error) bool {
	var gqlErrs *Errors
	if errors.As(err, &gqlErrs) {
		return !upstreamFailed(gqlErrs.StatusCode)
	}
	var httpErr *HTTPError
	return errors.As(err, &httpErr) && !upstreamFailed(httpErr.StatusCode)
}
