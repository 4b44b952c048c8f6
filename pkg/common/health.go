package common

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string            `json:"status"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Timestamp time.Time         `json:"timestamp"`
	Checks    map[string]string `json:"checks,omitempty"`
}

// HealthCheck returns a liveness handler
func HealthCheck(serviceName, version string) gin.HandlerFunc {
	return HealthCheckWithDeps(serviceName, version, nil)
}

// HealthCheckWithDeps returns a readiness handler that runs every dependency check.
// Any failing check turns the response into a 503.
func HealthCheckWithDeps(serviceName, version string, checks map[string]func() error) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := HealthResponse{
			Status:    "healthy",
			Service:   serviceName,
			Version:   version,
			Timestamp: time.Now().UTC(),
		}

		if len(checks) > 0 {
			resp.Checks = make(map[string]string, len(checks))
		}
		for name, check := range checks {
			if err := check(); err != nil {
				resp.Checks[name] = "unhealthy: " + err.Error()
				resp.Status = "unhealthy"
				continue
			}
			resp.Checks[name] = "healthy"
		}

		statusCode := http.StatusOK
		if resp.Status == "unhealthy" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, resp)
	}
}
