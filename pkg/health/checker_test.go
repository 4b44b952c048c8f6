package health

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
)

// TestDefaultCheckerConfig tests the DefaultCheckerConfig function
func TestDefaultCheckerConfig(t *testing.T) {
	config := DefaultCheckerConfig()

	if config.Timeout != 2*time.Second {
		t.Errorf("Timeout = %v, want 2s", config.Timeout)
	}
}

// TestRedisChecker tests the Redis checker against a mocked client
func TestRedisChecker(t *testing.T) {
	client, mock := redismock.NewClientMock()

	mock.ExpectPing().SetVal("PONG")
	if err := RedisChecker(client)(); err != nil {
		t.Errorf("Expected no error, got: %v", err)
	}

	mock.ExpectPing().SetErr(errors.New("connection refused"))
	if err := RedisChecker(client)(); err == nil {
		t.Error("Expected error when ping fails")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// TestRedisChecker_NilClient tests RedisChecker with a nil client
func TestRedisChecker_NilClient(t *testing.T) {
	err := RedisChecker(nil)()
	if err == nil || err.Error() != "redis client is nil" {
		t.Errorf("Error = %v, want 'redis client is nil'", err)
	}
}

// TestHTTPEndpointChecker_HealthyEndpoint tests a 200 endpoint
func TestHTTPEndpointChecker_HealthyEndpoint(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	}))
	defer server.Close()

	if err := HTTPEndpointChecker(server.URL)(); err != nil {
		t.Errorf("Expected no error for healthy endpoint, got: %v", err)
	}
}

// TestHTTPEndpointChecker_StatusCodes tests which status codes count as healthy
func TestHTTPEndpointChecker_StatusCodes(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		healthy    bool
	}{
		{"302 Found", http.StatusFound, true},
		{"304 Not Modified", http.StatusNotModified, true},
		{"400 Bad Request", http.StatusBadRequest, false},
		{"404 Not Found", http.StatusNotFound, false},
		{"500 Internal Server Error", http.StatusInternalServerError, false},
		{"503 Service Unavailable", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.statusCode)
			}))
			defer server.Close()

			err := HTTPEndpointChecker(server.URL)()
			if tt.healthy && err != nil {
				t.Errorf("Expected no error for status code %d, got: %v", tt.statusCode, err)
			}
			if !tt.healthy && err == nil {
				t.Errorf("Expected error for status code %d", tt.statusCode)
			}
		})
	}
}

// TestHTTPEndpointChecker_Timeout tests HTTPEndpointChecker timeout behavior
func TestHTTPEndpointChecker_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	checker := HTTPEndpointCheckerWithConfig(server.URL, CheckerConfig{Timeout: 50 * time.Millisecond})
	if err := checker(); err == nil {
		t.Error("Expected timeout error")
	}
}

// TestCachedChecker tests that results, including errors, are cached for the TTL
func TestCachedChecker(t *testing.T) {
	callCount := 0
	cached := NewCachedChecker(func() error {
		callCount++
		return errors.New("down")
	}, 50*time.Millisecond)

	for i := 0; i < 3; i++ {
		if err := cached.Check(); err == nil || !strings.Contains(err.Error(), "down") {
			t.Fatalf("Expected cached error, got: %v", err)
		}
	}
	if callCount != 1 {
		t.Errorf("Checker should be called once due to caching, got %d", callCount)
	}

	time.Sleep(60 * time.Millisecond)
	cached.Check()
	if callCount != 2 {
		t.Errorf("Checker should be called twice after cache expiry, got %d", callCount)
	}
}
