package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(envOf(map[string]string{
		"DATABASE_URL":   "postgres://localhost/storefront",
		"JWT_SECRET_KEY": "secret",
	}))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 5*time.Second, cfg.DBTimeout)
	assert.Equal(t, 300*time.Second, cfg.CacheTTL)
	assert.Equal(t, time.Hour, cfg.TokenExpiry)
	assert.Equal(t, 100, cfg.RateLimitMaxRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitPeriod)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "storefront.events", cfg.KafkaTopic)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(envOf(map[string]string{
		"DATABASE_URL":            "postgres://db/storefront",
		"JWT_SECRET_KEY":          "secret",
		"ENV":                     "Production",
		"DB_TIMEOUT_SEC":          "2",
		"RATE_LIMIT_MAX_REQUESTS": "0",
		"KAFKA_BROKERS":           "kafka-1:9092, kafka-2:9092,",
		"JWT_EXPIRY_MIN":          "abc",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 2*time.Second, cfg.DBTimeout)
	assert.Equal(t, 0, cfg.RateLimitMaxRequests)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, time.Hour, cfg.TokenExpiry, "non-numeric value falls back to the default")
}

func TestLoad_MissingRequired(t *testing.T) {
	_, err := load(envOf(map[string]string{"JWT_SECRET_KEY": "  "}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET_KEY")
}
