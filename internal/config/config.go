package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config carries every knob the gateway reads from the environment.
type Config struct {
	// HTTP server
	Port string

	// Content API
	ContentAPIURL     string
	ContentAPITimeout time.Duration

	// Paystack
	PaystackURL       string
	PaystackSecretKey string

	// OneSignal
	OneSignalURL    string
	OneSignalAppID  string
	OneSignalAPIKey string

	// Couchbase
	CouchbaseURL      string
	CouchbaseUsername string
	CouchbasePassword string
	CouchbaseBucket   string

	// Sessions and locks
	SessionTTL    time.Duration
	PayoutLockTTL time.Duration

	// Logging
	LogLevel         string
	ElasticsearchURL string
}

// Load reads .env if present, then resolves the configuration from the
// environment. Secrets have no defaults; everything else does.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:              getEnvOrDefault("API_PORT", "8080"),
		ContentAPIURL:     getEnvOrDefault("CONTENT_API_URL", "http://localhost:1337"),
		ContentAPITimeout: getDurationOrDefault("CONTENT_API_TIMEOUT_SECONDS", 30*time.Second),
		PaystackURL:       getEnvOrDefault("PAYSTACK_URL", "https://api.paystack.co"),
		PaystackSecretKey: os.Getenv("PAYSTACK_SECRET_KEY"),
		// Left empty by default so the onesignal client applies its own
		// base URL, which carries the /api/v1 path prefix.
		OneSignalURL:      os.Getenv("ONESIGNAL_URL"),
		OneSignalAppID:    os.Getenv("ONESIGNAL_APP_ID"),
		OneSignalAPIKey:   os.Getenv("ONESIGNAL_API_KEY"),
		CouchbaseURL:      getEnvOrDefault("COUCHBASE_URL", "couchbase://localhost"),
		CouchbaseUsername: getEnvOrDefault("COUCHBASE_USERNAME", "Administrator"),
		CouchbasePassword: os.Getenv("COUCHBASE_PASSWORD"),
		CouchbaseBucket:   getEnvOrDefault("COUCHBASE_BUCKET", "admin-gateway"),
		SessionTTL:        getDurationOrDefault("SESSION_TTL_SECONDS", 24*time.Hour),
		PayoutLockTTL:     getDurationOrDefault("PAYOUT_LOCK_TTL_SECONDS", 5*time.Minute),
		LogLevel:          getEnvOrDefault("API_LOG_LEVEL", "info"),
		ElasticsearchURL:  getEnvOrDefault("ELASTICSEARCH_URL", ""),
	}

	if cfg.PaystackSecretKey == "" {
		return nil, fmt.Errorf("PAYSTACK_SECRET_KEY is required")
	}
	if cfg.OneSignalAppID == "" || cfg.OneSignalAPIKey == "" {
		log.Warn().Msg("ONESIGNAL_APP_ID or ONESIGNAL_API_KEY is not set, notification endpoints will be rejected upstream")
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	seconds, err := strconv.Atoi(value)
	if err != nil || seconds <= 0 {
		log.Warn().Str("key", key).Str("value", value).Msg("Invalid duration value, using default")
		return defaultValue
	}
	return time.Duration(seconds) * time.Second
}
