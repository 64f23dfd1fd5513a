package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultAppName            = "CongoAccounts"
	defaultAppEnv             = "development"
	defaultPort               = "8080"
	defaultLogLevel           = "info"
	defaultShutdownDelay      = 10 * time.Second
	defaultIdempotencyTTL     = 24 * time.Hour
	defaultLockWait           = time.Second
	defaultLockLease          = 15 * time.Second
	defaultLockRetry          = 50 * time.Millisecond
	defaultCancelWindowMonths = 12

	LockBackendRedis = "redis"
	LockBackendLocal = "local"
)

// Config captures application runtime configuration loaded from environment variables.
type Config struct {
	AppName        string
	AppEnv         string
	Port           string
	LogLevel       string
	DatabaseURL    string
	RedisURL       string
	ShutdownPeriod time.Duration
	IdempotencyTTL time.Duration

	LockBackend       string
	LockWait          time.Duration
	LockLease         time.Duration
	LockRetryInterval time.Duration

	// CancelWindowMonths is how far back a use transaction may still be cancelled.
	CancelWindowMonths int
}

// Load reads configuration values from the environment and populates a Config instance.
func Load() (Config, error) {
	cfg := Config{
		AppName:     getEnv("APP_NAME", defaultAppName),
		AppEnv:      strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:        getEnv("PORT", defaultPort),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", defaultLogLevel)),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),
	}

	var err error
	if cfg.ShutdownPeriod, err = durationEnv("SHUTDOWN_TIMEOUT_SECONDS", time.Second, "SHUTDOWN_TIMEOUT", defaultShutdownDelay); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = durationEnv("IDEMPOTENCY_TTL_SECONDS", time.Second, "IDEMPOTENCY_TTL", defaultIdempotencyTTL); err != nil {
		return Config{}, err
	}
	if cfg.LockWait, err = durationEnv("LOCK_WAIT_MS", time.Millisecond, "LOCK_WAIT", defaultLockWait); err != nil {
		return Config{}, err
	}
	if cfg.LockLease, err = durationEnv("LOCK_LEASE_SECONDS", time.Second, "LOCK_LEASE", defaultLockLease); err != nil {
		return Config{}, err
	}
	if cfg.LockRetryInterval, err = durationEnv("LOCK_RETRY_MS", time.Millisecond, "LOCK_RETRY", defaultLockRetry); err != nil {
		return Config{}, err
	}

	cfg.CancelWindowMonths = defaultCancelWindowMonths
	if v := os.Getenv("CANCEL_WINDOW_MONTHS"); v != "" {
		months, err := strconv.Atoi(v)
		if err != nil || months <= 0 {
			return Config{}, fmt.Errorf("invalid CANCEL_WINDOW_MONTHS: %q", v)
		}
		cfg.CancelWindowMonths = months
	}

	cfg.LockBackend = strings.ToLower(os.Getenv("LOCK_BACKEND"))
	switch cfg.LockBackend {
	case "":
		cfg.LockBackend = LockBackendLocal
		if cfg.RedisURL != "" {
			cfg.LockBackend = LockBackendRedis
		}
	case LockBackendRedis, LockBackendLocal:
	default:
		return Config{}, fmt.Errorf("invalid LOCK_BACKEND: %q", cfg.LockBackend)
	}

	if cfg.LockBackend == LockBackendRedis && cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("REDIS_URL must be set when LOCK_BACKEND=redis")
	}

	if !cfg.IsDev() {
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("DATABASE_URL must be set")
		}
		if cfg.RedisURL == "" {
			return Config{}, fmt.Errorf("REDIS_URL must be set")
		}
	}

	return cfg, nil
}

// Address returns the listen address in the format Fiber expects.
func (c Config) Address() string {
	if strings.HasPrefix(c.Port, ":") {
		return c.Port
	}
	return fmt.Sprintf(":%s", c.Port)
}

// IsDev reports whether the service may run on in-memory stores.
func (c Config) IsDev() bool {
	switch c.AppEnv {
	case "dev", "development", "local":
		return true
	default:
		return false
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// durationEnv reads an integer count of unit from countKey, or else a Go
// duration string from durKey, or else returns fallback.
func durationEnv(countKey string, unit time.Duration, durKey string, fallback time.Duration) (time.Duration, error) {
	if v := os.Getenv(countKey); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", countKey, err)
		}
		return time.Duration(n) * unit, nil
	}
	if v := os.Getenv(durKey); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %w", durKey, err)
		}
		return d, nil
	}
	return fallback, nil
}
