// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds every externally tunable value. Populated by Load.
type Config struct {
	// Port the HTTP server listens on. Defaults to "8080".
	Port string

	// PostgresURL is the database connection string. Required.
	PostgresURL string

	// JWTSecret signs access tokens. Required.
	JWTSecret string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list; defaults to localhost dev.
	CORSOrigins []string

	// RateLimitRPS / RateLimitBurst shape the per-IP token bucket.
	RateLimitRPS   float64
	RateLimitBurst int

	// SMTP settings for outbound mail. Optional; mail sending is skipped
	// when SMTPHost is empty.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailFromName string
	AppBaseURL   string

	// SeedAdminEmail / SeedAdminPassword bootstrap the first admin account
	// when no admin exists yet. Optional.
	SeedAdminEmail    string
	SeedAdminPassword string
}

// Load reads configuration from the environment. Returns an error naming
// any required variables that are missing.
func Load() (Config, error) {
	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		RateLimitRPS:      getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst:    getEnvInt("RATE_LIMIT_BURST", 40),
		SMTPHost:          os.Getenv("SMTP_HOST"),
		SMTPPort:          getEnvInt("SMTP_PORT", 587),
		SMTPUsername:      os.Getenv("SMTP_USERNAME"),
		SMTPPassword:      os.Getenv("SMTP_PASSWORD"),
		MailFrom:          getEnv("MAIL_FROM", "no-reply@tourship.app"),
		MailFromName:      getEnv("MAIL_FROM_NAME", "Tourship"),
		AppBaseURL:        getEnv("APP_BASE_URL", "http://localhost:3000"),
		SeedAdminEmail:    os.Getenv("SEED_ADMIN_EMAIL"),
		SeedAdminPassword: os.Getenv("SEED_ADMIN_PASSWORD"),
	}

	var missing []string

	cfg.PostgresURL = os.Getenv("POSTGRES_URL")
	if cfg.PostgresURL == "" {
		missing = append(missing, "POSTGRES_URL")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
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

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
