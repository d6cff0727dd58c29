// Package config loads server configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	Port               string
	DBPath             string
	StaticPath         string
	AppPassword        string
	JWTSecret          string
	TokenTTL           time.Duration
	VeryfiClientID     string
	VeryfiAPIKey       string
	VeryfiBaseURL      string
	OCRTimeout         time.Duration
	ReceiptRateLimit   string
	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables and an optional .env file.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Port:               valueOrDefault(k.String("PORT"), "8080"),
		DBPath:             valueOrDefault(k.String("DB_PATH"), "./data/billsplit.db"),
		StaticPath:         valueOrDefault(k.String("STATIC_PATH"), "../frontend/static"),
		AppPassword:        k.String("APP_PASSWORD"),
		JWTSecret:          k.String("JWT_SECRET"),
		TokenTTL:           parseDuration(k.String("TOKEN_TTL"), "24h"),
		VeryfiClientID:     strings.TrimSpace(k.String("VERYFI_CLIENT_ID")),
		VeryfiAPIKey:       strings.TrimSpace(k.String("VERYFI_API_KEY")),
		VeryfiBaseURL:      valueOrDefault(k.String("VERYFI_BASE_URL"), "https://api.veryfi.com/api/v8/partner"),
		OCRTimeout:         parseDuration(k.String("OCR_TIMEOUT"), "30s"),
		ReceiptRateLimit:   valueOrDefault(k.String("RECEIPT_RATE_LIMIT"), "10-M"),
		CORSAllowedOrigins: splitAndTrim(k.String("CORS_ALLOWED_ORIGINS")),
	}

	if cfg.AppPassword != "" && cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is required when APP_PASSWORD is set")
	}

	return cfg, nil
}

// AuthEnabled reports whether the shared password gate is on.
func (c *Config) AuthEnabled() bool {
	return c.AppPassword != ""
}

// OCREnabled reports whether receipt extraction credentials are configured.
func (c *Config) OCREnabled() bool {
	return c.VeryfiClientID != "" && c.VeryfiAPIKey != ""
}

// HTTPAddr returns the address the HTTP server should bind to.
func (c *Config) HTTPAddr() string {
	port := strings.TrimSpace(c.Port)
	if port == "" {
		port = "8080"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return ":" + port
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

func parseDuration(value, fallback string) time.Duration {
	base := strings.TrimSpace(value)
	if base == "" {
		base = fallback
	}
	d, err := time.ParseDuration(base)
	if err != nil {
		d, _ = time.ParseDuration(fallback)
	}
	return d
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
