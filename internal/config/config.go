// Package config loads process configuration from the environment, with an
// optional .env file for local development.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/davral/tickerdesk/internal/service"
	"github.com/joho/godotenv"
)

// Config holds everything the process needs to start.
type Config struct {
	Addr       string
	MongoURI   string
	MongoDB    string
	RedisURL   string
	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int
	CacheTTL   time.Duration
}

// Load reads configuration from the environment. A .env file in the working
// directory is merged in first when present; real environment variables win.
func Load() (Config, error) {
	// Ignore a missing .env; it only exists in development.
	_ = godotenv.Load()

	cfg := Config{
		Addr:       envOrDefault("APP_ADDR", ":8080"),
		MongoURI:   envOrDefault("MONGO_DB_URI", "mongodb://localhost:27017"),
		MongoDB:    envOrDefault("MONGO_DB_NAME", "tickerdesk"),
		RedisURL:   envOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		JWTSecret:  os.Getenv("SECRET_KEY"),
		TokenTTL:   service.DefaultTokenTTL,
		BcryptCost: 12,
		CacheTTL:   5 * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("SECRET_KEY environment variable is required")
	}
	if len(cfg.JWTSecret) < 32 {
		return cfg, fmt.Errorf("SECRET_KEY must be at least 32 characters for HMAC-SHA256 security")
	}

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		minutes, err := strconv.Atoi(v)
		if err != nil || minutes <= 0 {
			return cfg, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES %q", v)
		}
		cfg.TokenTTL = time.Duration(minutes) * time.Minute
	}

	if v := os.Getenv("BCRYPT_COST"); v != "" {
		cost, err := strconv.Atoi(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid BCRYPT_COST: %w", err)
		}
		if cost < 4 || cost > 14 {
			return cfg, fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", cost)
		}
		cfg.BcryptCost = cost
	}

	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil || seconds <= 0 {
			return cfg, fmt.Errorf("invalid CACHE_TTL_SECONDS %q", v)
		}
		cfg.CacheTTL = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func envOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
