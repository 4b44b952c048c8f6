package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("web")
	require.NoError(t, err)

	assert.Equal(t, "web", cfg.Server.ServiceName)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, ThemeBackendFile, cfg.Theme.Backend)
	assert.Equal(t, 10*time.Second, cfg.GraphQL.Timeout)
	assert.Equal(t, 3, cfg.GraphQL.QueryRetryAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_EdgeDefaultPort(t *testing.T) {
	cfg, err := Load("edge")
	require.NoError(t, err)

	assert.Equal(t, "8787", cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Edge.OriginURL)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8787")
	t.Setenv("ORIGIN_URL", "https://origin.example.com")
	t.Setenv("THEME_BACKEND", "REDIS")
	t.Setenv("GRAPHQL_TIMEOUT", "3s")
	t.Setenv("OTEL_ENABLED", "true")
	t.Setenv("OTEL_SAMPLE_RATIO", "0.25")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load("edge")
	require.NoError(t, err)

	assert.Equal(t, "8787", cfg.Server.Port)
	assert.Equal(t, "https://origin.example.com", cfg.Edge.OriginURL)
	assert.Equal(t, ThemeBackendRedis, cfg.Theme.Backend)
	assert.Equal(t, 3*time.Second, cfg.GraphQL.Timeout)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, 0.25, cfg.Tracing.SampleRatio)
	assert.Equal(t, 2, cfg.Redis.DB)
}

func TestLoad_InvalidNumbersFallBackToDefaults(t *testing.T) {
	t.Setenv("READ_TIMEOUT", "soon")
	t.Setenv("GRAPHQL_TIMEOUT", "10")

	cfg, err := Load("web")
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.GraphQL.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "origin without scheme",
			mutate:  func(c *Config) { c.Edge.OriginURL = "origin.example.com" },
			wantErr: "scheme must be http or https",
		},
		{
			name:    "origin without host",
			mutate:  func(c *Config) { c.Edge.OriginURL = "http://" },
			wantErr: "host is required",
		},
		{
			name:    "unknown theme backend",
			mutate:  func(c *Config) { c.Theme.Backend = "cookie" },
			wantErr: "unknown theme backend",
		},
		{
			name:    "missing graphql endpoint",
			mutate:  func(c *Config) { c.GraphQL.Endpoint = " " },
			wantErr: "graphql endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("web")
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestServerConfig_AllowedOrigins(t *testing.T) {
	cfg := ServerConfig{CORSOrigins: "http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}

func TestGraphQLConfig_HealthCheckURL(t *testing.T) {
	cfg := GraphQLConfig{Endpoint: "http://api/graphql"}
	assert.Equal(t, "http://api/graphql", cfg.HealthCheckURL())

	cfg.HealthURL = "http://api/.well-known/apollo/server-health"
	assert.Equal(t, "http://api/.well-known/apollo/server-health", cfg.HealthCheckURL())
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "redis.example.com", Port: "6380"}
	assert.Equal(t, "redis.example.com:6380", cfg.RedisAddr())
}
