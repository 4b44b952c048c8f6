package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Theme storage backends
const (
	ThemeBackendFile   = "file"
	ThemeBackendRedis  = "redis"
	ThemeBackendMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Edge    EdgeConfig
	GraphQL GraphQLConfig
	Theme   ThemeConfig
	Redis   RedisConfig
	Sentry  SentryConfig
	Tracing TracingConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port           string
	Environment    string
	ServiceName    string
	ReadTimeout    int
	WriteTimeout   int
	RequestTimeout int    // seconds, applied to BFF API routes
	CORSOrigins    string // Comma-separated list of allowed origins
}

// EdgeConfig holds edge handler configuration
type EdgeConfig struct {
	OriginURL   string
	MetricsPort string // separate listener so no edge path is shadowed
}

// GraphQLConfig holds configuration for the remote GraphQL API
type GraphQLConfig struct {
	Endpoint                string
	HealthURL               string // called by readiness; defaults to Endpoint
	Timeout                 time.Duration
	QueryRetryAttempts      int
	BreakerInterval         int // seconds
	BreakerTimeout          int // seconds
	BreakerFailureThreshold int
	BreakerSuccessThreshold int
}

// ThemeConfig holds theme preference persistence configuration
type ThemeConfig struct {
	Backend  string
	StateDir string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// SentryConfig holds Sentry configuration
type SentryConfig struct {
	DSN              string
	TracesSampleRate float64
}

// TracingConfig holds OpenTelemetry configuration
type TracingConfig struct {
	Enabled     bool
	Endpoint    string
	SampleRatio float64
	Insecure    bool
}

// Load loads configuration from environment variables
func Load(serviceName string) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", defaultPort(serviceName)),
			Environment:    getEnv("ENVIRONMENT", "development"),
			ServiceName:    serviceName,
			ReadTimeout:    getEnvAsInt("READ_TIMEOUT", 10),
			WriteTimeout:   getEnvAsInt("WRITE_TIMEOUT", 10),
			RequestTimeout: getEnvAsInt("REQUEST_TIMEOUT", 15),
			CORSOrigins:    getEnv("CORS_ORIGINS", "http://localhost:3000"),
		},
		Edge: EdgeConfig{
			OriginURL:   getEnv("ORIGIN_URL", "http://localhost:8080"),
			MetricsPort: getEnv("METRICS_PORT", "9090"),
		},
		GraphQL: GraphQLConfig{
			Endpoint:                getEnv("GRAPHQL_ENDPOINT", "http://localhost:4000/graphql"),
			HealthURL:               getEnv("GRAPHQL_HEALTH_URL", ""),
			Timeout:                 getEnvAsDuration("GRAPHQL_TIMEOUT", 10*time.Second),
			QueryRetryAttempts:      getEnvAsInt("GRAPHQL_QUERY_RETRY_ATTEMPTS", 3),
			BreakerInterval:         getEnvAsInt("GRAPHQL_BREAKER_INTERVAL", 60),
			BreakerTimeout:          getEnvAsInt("GRAPHQL_BREAKER_TIMEOUT", 30),
			BreakerFailureThreshold: getEnvAsInt("GRAPHQL_BREAKER_FAILURE_THRESHOLD", 5),
			BreakerSuccessThreshold: getEnvAsInt("GRAPHQL_BREAKER_SUCCESS_THRESHOLD", 1),
		},
		Theme: ThemeConfig{
			Backend:  strings.ToLower(getEnv("THEME_BACKEND", ThemeBackendFile)),
			StateDir: getEnv("THEME_STATE_DIR", ".state"),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Sentry: SentryConfig{
			DSN:              getEnv("SENTRY_DSN", ""),
			TracesSampleRate: getEnvAsFloat("SENTRY_TRACES_SAMPLE_RATE", 0),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("OTEL_ENABLED", false),
			Endpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			SampleRatio: getEnvAsFloat("OTEL_SAMPLE_RATIO", 1.0),
			Insecure:    getEnvAsBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}

	return cfg, nil
}

// Validate reports configuration values that cannot be used
func (c *Config) Validate() error {
	if _, err := ParseOriginURL(c.Edge.OriginURL); err != nil {
		return err
	}
	switch c.Theme.Backend {
	case ThemeBackendFile, ThemeBackendRedis, ThemeBackendMemory:
	default:
		return fmt.Errorf("unknown theme backend %q", c.Theme.Backend)
	}
	if strings.TrimSpace(c.GraphQL.Endpoint) == "" {
		return fmt.Errorf("graphql endpoint is required")
	}
	return nil
}

// ParseOriginURL parses and checks an absolute origin URL
func ParseOriginURL(raw string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("invalid origin url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid origin url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid origin url %q: host is required", raw)
	}
	return u, nil
}

// IsProduction reports whether the server runs in production mode
func (c *ServerConfig) IsProduction() bool {
	return c.Environment == "production"
}

// AllowedOrigins splits CORSOrigins into a list
func (c *ServerConfig) AllowedOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CORSOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// HealthCheckURL returns the URL the readiness check calls
func (c *GraphQLConfig) HealthCheckURL() string {
	if c.HealthURL != "" {
		return c.HealthURL
	}
	return c.Endpoint
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// the edge sits in front of the web frontend on the same host by default
func defaultPort(serviceName string) string {
	if serviceName == "edge" {
		return "8787"
	}
	return "8080"
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
