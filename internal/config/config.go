package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction      bool
	ProdOrigins       string
	HTTPAddr          string
	DBDSN             string
	RedisAddr         string
	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// Scheduling defaults used when a club has no configured hours.
	DefaultOpenHour  int
	DefaultCloseHour int

	// Slot granularity for availability listings.
	SlotGranularity time.Duration

	// TTL for cached daily statistics.
	StatsCacheTTL time.Duration

	// Base directory for uploaded files.
	FileStoragePath string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	err := godotenv.Load()
	if err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// Redis is optional; when empty the statistics cache is disabled.
	cfg.RedisAddr = getEnv("REDIS_ADDR", "")

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	ttlStr := getEnv("JWT_ACCESS_TOKEN_TTL", "15m")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TOKEN_TTL: %w", err)
	}
	cfg.JWTAccessTokenTTL = ttl

	// Bcrypt cost for password hashing (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}

	// Platform-wide fallback window applied when a club has no schedule.
	cfg.DefaultOpenHour, err = getEnvAsInt("DEFAULT_OPEN_HOUR", 9)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_OPEN_HOUR: %w", err)
	}
	cfg.DefaultCloseHour, err = getEnvAsInt("DEFAULT_CLOSE_HOUR", 22)
	if err != nil {
		return nil, fmt.Errorf("invalid DEFAULT_CLOSE_HOUR: %w", err)
	}
	if cfg.DefaultOpenHour < 0 || cfg.DefaultCloseHour > 24 || cfg.DefaultOpenHour >= cfg.DefaultCloseHour {
		return nil, fmt.Errorf("invalid default hours: open=%d close=%d", cfg.DefaultOpenHour, cfg.DefaultCloseHour)
	}

	granularityMin, err := getEnvAsInt("SLOT_GRANULARITY_MINUTES", 60)
	if err != nil {
		return nil, fmt.Errorf("invalid SLOT_GRANULARITY_MINUTES: %w", err)
	}
	if granularityMin <= 0 {
		return nil, fmt.Errorf("SLOT_GRANULARITY_MINUTES must be positive, got %d", granularityMin)
	}
	cfg.SlotGranularity = time.Duration(granularityMin) * time.Minute

	statsTTLStr := getEnv("STATS_CACHE_TTL", "10m")
	statsTTL, err := time.ParseDuration(statsTTLStr)
	if err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}
	cfg.StatsCacheTTL = statsTTL

	cfg.FileStoragePath = getEnv("FILE_STORAGE_PATH", "./uploads")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		// Return 0 and a wrapped error to provide context
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}
