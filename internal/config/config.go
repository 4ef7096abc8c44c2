// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DevJWTSecret is used when JWT_SECRET is unset. Never deploy with it.
const DevJWTSecret = "dev-only-change-me"

// Config holds all server configuration.
type Config struct {
	// Web server
	Port        int
	CORSOrigins []string

	// Database
	DBPath string

	// Session
	JWTSecret string
	TokenTTL  time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// SettleEpsilon is the amount below which a balance counts as settled.
	SettleEpsilon float64
}

// UsingDevSecret reports whether the JWT secret fell back to DevJWTSecret.
func (c *Config) UsingDevSecret() bool {
	return c.JWTSecret == DevJWTSecret
}

// Load reads configuration from environment variables, after loading a .env
// file from the working directory if present.
func Load() (*Config, error) {
	// Missing .env is fine
	_ = godotenv.Load()
	return parse(os.Getenv)
}

// parse builds a Config from lookup, which returns "" for unset keys.
func parse(lookup func(string) string) (*Config, error) {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return fallback
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", lookup("PORT"))
	}

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "168h"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("invalid TOKEN_TTL %q", lookup("TOKEN_TTL"))
	}

	epsilon, err := strconv.ParseFloat(get("SETTLE_EPSILON", "0.01"), 64)
	if err != nil || epsilon <= 0 || math.IsInf(epsilon, 0) || math.IsNaN(epsilon) {
		return nil, fmt.Errorf("invalid SETTLE_EPSILON %q", lookup("SETTLE_EPSILON"))
	}

	format := strings.ToLower(get("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return nil, fmt.Errorf("invalid LOG_FORMAT %q: want text or json", format)
	}

	var origins []string
	for _, o := range strings.Split(get("CORS_ORIGINS", ""), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}

	return &Config{
		Port:          port,
		CORSOrigins:   origins,
		DBPath:        get("DB_PATH", "./data/groupsplit.db"),
		JWTSecret:     get("JWT_SECRET", DevJWTSecret),
		TokenTTL:      ttl,
		LogLevel:      strings.ToLower(get("LOG_LEVEL", "info")),
		LogFormat:     format,
		SettleEpsilon: epsilon,
	}, nil
}
