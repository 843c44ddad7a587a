package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, insecureJWTSecret, cfg.JWTSecret)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, "0.05", cfg.DefaultInterestRate.String())
	assert.Equal(t, time.Duration(0), cfg.InterestBatchInterval)
	assert.Equal(t, "5-M", cfg.LoginRateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORAGE_DRIVER", "Bolt")
	t.Setenv("BOLT_PATH", "/tmp/bank.db")
	t.Setenv("JWT_SECRET", "env-secret")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("ADMIN_API_KEY", "ops-key")
	t.Setenv("DEFAULT_INTEREST_RATE", "0.031")
	t.Setenv("INTEREST_BATCH_INTERVAL", "24h")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, StorageBolt, cfg.StorageDriver)
	assert.Equal(t, "/tmp/bank.db", cfg.BoltPath)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, "ops-key", cfg.AdminAPIKey)
	assert.Equal(t, "0.031", cfg.DefaultInterestRate.String())
	assert.Equal(t, 24*time.Hour, cfg.InterestBatchInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown driver", env: map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{name: "postgres without url", env: map[string]string{"STORAGE_DRIVER": "postgres", "PGSQL_URL": ""}},
		{name: "rate out of range", env: map[string]string{"DEFAULT_INTEREST_RATE": "1.5"}},
		{name: "rate not a number", env: map[string]string{"DEFAULT_INTEREST_RATE": "five"}},
		{name: "bad interval", env: map[string]string{"INTEREST_BATCH_INTERVAL": "daily"}},
		{name: "production without secret", env: map[string]string{"IS_PRODUCTION": "true", "JWT_SECRET": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("STORAGE_DRIVER", "memory")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadConfig()
			assert.Error(t, err)
		})
	}
}
