package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime configuration loaded from environment variables.
type Config struct {
	AppPort string
	AppEnv  string

	RedisURL string

	WebhookURL   string
	WebhookToken string

	StoreTimeout  time.Duration
	NotifyTimeout time.Duration

	AllowedOrigins []string // CORS allowed origins
}

// Load reads all configuration from environment variables.
func Load() *Config {
	return &Config{
		AppPort:        getEnv("APP_PORT", "3000"),
		AppEnv:         getEnv("APP_ENV", "development"),
		RedisURL:       getEnv("REDIS_URL", ""),
		WebhookURL:     getEnv("WEBHOOK_URL", ""),
		WebhookToken:   getEnv("WEBHOOK_TOKEN", ""),
		StoreTimeout:   time.Duration(getEnvInt("STORE_TIMEOUT_MS", 3000)) * time.Millisecond,
		NotifyTimeout:  time.Duration(getEnvInt("NOTIFY_TIMEOUT_MS", 5000)) * time.Millisecond,
		AllowedOrigins: splitOrigins(getEnv("ALLOWED_ORIGINS", "*")),
	}
}

func splitOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Validate reports every missing required value at once so a misconfigured
// process fails fast at startup instead of degrading per request.
func (c *Config) Validate() error {
	var missing []string
	if c.RedisURL == "" {
		missing = append(missing, "REDIS_URL")
	}
	if c.WebhookURL == "" {
		missing = append(missing, "WEBHOOK_URL")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// IsDevelopment reports whether error detail may be included in responses.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
