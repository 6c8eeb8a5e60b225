package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every setting of the storefront API, read from the environment.
type Config struct {
	// General
	Port        string
	Environment string
	LogLevel    string

	// Database (PostgreSQL)
	DatabaseURL string
	DBTimeout   time.Duration

	// Cache (Redis). An empty address disables caching.
	RedisAddr string
	CacheTTL  time.Duration

	// Security (JWT)
	JWTSecretKey string
	TokenExpiry  time.Duration

	// Rate limiting. Zero requests disables it.
	RateLimitMaxRequests int
	RateLimitPeriod      time.Duration

	// Domain events (Kafka). No brokers disables publishing.
	KafkaBrokers []string
	KafkaTopic   string

	// HTTP server
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	SwaggerHost      string
}

// LoadConfig reads the configuration from the process environment.
// A missing required variable stops the process.
func LoadConfig() *Config {
	cfg, err := load(os.LookupEnv)
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	return cfg
}

type lookupFunc func(key string) (string, bool)

func load(lookup lookupFunc) (*Config, error) {
	env := reader{lookup: lookup}

	cfg := &Config{
		Port:        env.str("PORT", "8080"),
		Environment: env.str("ENV", "development"),
		LogLevel:    env.str("LOG_LEVEL", "info"),

		DatabaseURL: env.required("DATABASE_URL"),
		DBTimeout:   time.Duration(env.int("DB_TIMEOUT_SEC", 5)) * time.Second,

		RedisAddr: env.str("REDIS_ADDR", "localhost:6379"),
		CacheTTL:  time.Duration(env.int("CACHE_TTL_SEC", 300)) * time.Second,

		JWTSecretKey: env.required("JWT_SECRET_KEY"),
		TokenExpiry:  time.Duration(env.int("JWT_EXPIRY_MIN", 60)) * time.Minute,

		RateLimitMaxRequests: env.int("RATE_LIMIT_MAX_REQUESTS", 100),
		RateLimitPeriod:      time.Duration(env.int("RATE_LIMIT_PERIOD_MIN", 1)) * time.Minute,

		KafkaBrokers: splitList(env.str("KAFKA_BROKERS", "")),
		KafkaTopic:   env.str("KAFKA_TOPIC", "storefront.events"),

		HTTPReadTimeout:  time.Duration(env.int("HTTP_READ_TIMEOUT_SEC", 10)) * time.Second,
		HTTPWriteTimeout: time.Duration(env.int("HTTP_WRITE_TIMEOUT_SEC", 10)) * time.Second,
		SwaggerHost:      env.str("SWAGGER_HOST", "localhost:8080"),
	}

	if len(env.missing) > 0 {
		return nil, fmt.Errorf("environment variables must be set: %s", strings.Join(env.missing, ", "))
	}
	return cfg, nil
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

type reader struct {
	lookup  lookupFunc
	missing []string
}

// str reads the variable or returns the default.
func (r *reader) str(key, def string) string {
	if value, ok := r.lookup(key); ok {
		return value
	}
	return def
}

// required reads the variable and records it as missing when absent or blank.
func (r *reader) required(key string) string {
	value, ok := r.lookup(key)
	if !ok || strings.TrimSpace(value) == "" {
		r.missing = append(r.missing, key)
		return ""
	}
	return value
}

// int reads a numeric variable. Non-numeric values fall back to the default with a warning.
func (r *reader) int(key string, def int) int {
	raw := r.str(key, "")
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("warning: %s=%q is not an integer, using default %d", key, raw, def)
		return def
	}
	return value
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
