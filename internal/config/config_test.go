package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func load(t *testing.T) (*Config, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
	return Load()
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "7008", cfg.Port)
	assert.Equal(t, "admin", cfg.AdminRole)
	assert.Equal(t, 10, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, "vercel", cfg.WebhookPlatform)
	assert.Equal(t, 100, cfg.Deploy.MaxHistorySize)
	assert.Equal(t, 5, cfg.Deploy.HealthCheckAttempts)
	assert.Equal(t, 10*time.Second, cfg.Deploy.HealthCheckInterval)
	assert.Equal(t, "database/migrations", cfg.Database.MigrationsDir)
	assert.Equal(t, 30*time.Second, cfg.Database.MonitorInterval)
	assert.Empty(t, cfg.Database.Environments)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("RATE_LIMIT_REQUESTS", "25")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")
	t.Setenv("ALLOWED_ORIGINS", "https://ops.example.com,https://admin.example.com")
	t.Setenv("DATABASE_ENVIRONMENTS", "staging,production")
	t.Setenv("DOCKER_PORT_STAGING", "4002")

	cfg, err := load(t)
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 25, cfg.RateLimitRequests)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
	assert.Equal(t, []string{"https://ops.example.com", "https://admin.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, []string{"staging", "production"}, cfg.Database.Environments)
	assert.Equal(t, 4002, cfg.Deploy.DockerPort("staging"))
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "production requires a JWT secret",
			env:  map[string]string{"ENVIRONMENT": "production"},
			want: "JWT_SECRET must be set in production",
		},
		{
			name: "rate limit must be positive",
			env:  map[string]string{"RATE_LIMIT_REQUESTS": "0"},
			want: "RATE_LIMIT_REQUESTS must be positive",
		},
		{
			name: "history size must be positive",
			env:  map[string]string{"MAX_HISTORY_SIZE": "-1"},
			want: "MAX_HISTORY_SIZE must be positive",
		},
		{
			name: "unknown database environment",
			env:  map[string]string{"DATABASE_ENVIRONMENTS": "qa"},
			want: `unknown database environment "qa"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := load(t)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestProductionWithSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("JWT_SECRET", "a-real-secret")

	cfg, err := load(t)
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}

func TestEnvironmentDatabase(t *testing.T) {
	t.Setenv("STAGING_DB_HOST", "staging-db.internal")
	t.Setenv("STAGING_DB_PORT", "6432")
	t.Setenv("STAGING_DB_NAME", "shop")
	t.Setenv("STAGING_DB_PASSWORD", "pw")
	t.Setenv("STAGING_DB_SSL", "true")
	t.Setenv("STAGING_DB_POOL_MAX", "20")
	t.Setenv("STAGING_DB_TIMEOUT", "5000")

	cfg, err := load(t)
	require.NoError(t, err)

	staging := cfg.EnvironmentDatabase("staging")
	assert.Equal(t, "staging-db.internal", staging.Host)
	assert.Equal(t, 6432, staging.Port)
	assert.Equal(t, "shop", staging.Database)
	assert.Equal(t, "postgres", staging.Username)
	assert.Equal(t, "pw", staging.Password)
	assert.True(t, staging.SSL)
	assert.Equal(t, 2, staging.PoolMin)
	assert.Equal(t, 20, staging.PoolMax)
	assert.Equal(t, 5*time.Second, staging.ConnectionTimeout)
	assert.Equal(t, 10*time.Second, staging.IdleTimeout)
	assert.Equal(t, 3, staging.MaxRetries)

	production := cfg.EnvironmentDatabase("production")
	assert.Equal(t, "localhost", production.Host)
	assert.Equal(t, 5432, production.Port)
	assert.Equal(t, "app", production.Database)
	assert.False(t, production.SSL)
}

func TestPerEnvironmentLookups(t *testing.T) {
	d := DeployConfig{
		DockerPortDevelopment:     3001,
		DockerPortStaging:         3002,
		DockerPortProduction:      80,
		HealthCheckURLDevelopment: "http://localhost:3000/api/health",
		HealthCheckURLProduction:  "https://app.example.com/api/health",
	}

	assert.Equal(t, 3001, d.DockerPort("development"))
	assert.Equal(t, 3002, d.DockerPort("staging"))
	assert.Equal(t, 80, d.DockerPort("production"))
	assert.Equal(t, 3001, d.DockerPort("unknown"))

	assert.Equal(t, "https://app.example.com/api/health", d.HealthCheckURL("production"))
	assert.Empty(t, d.HealthCheckURL("staging"))
	assert.Equal(t, "http://localhost:3000/api/health", d.HealthCheckURL("development"))
}

func TestIsValidEnvironment(t *testing.T) {
	for _, env := range Environments {
		assert.True(t, IsValidEnvironment(env))
	}
	assert.False(t, IsValidEnvironment("qa"))
	assert.False(t, IsValidEnvironment(""))
}
