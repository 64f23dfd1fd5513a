package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "DATABASE_URL", "REDIS_URL", "LOCK_BACKEND", "LOCK_WAIT_MS", "LOCK_WAIT",
		"LOCK_LEASE_SECONDS", "LOCK_LEASE", "LOCK_RETRY_MS", "LOCK_RETRY", "CANCEL_WINDOW_MONTHS",
		"SHUTDOWN_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT", "IDEMPOTENCY_TTL_SECONDS", "IDEMPOTENCY_TTL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDevDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected development env by default")
	}
	if cfg.LockBackend != LockBackendLocal {
		t.Fatalf("expected local lock backend without redis, got %s", cfg.LockBackend)
	}
	if cfg.LockWait != time.Second || cfg.LockLease != 15*time.Second || cfg.LockRetryInterval != 50*time.Millisecond {
		t.Fatalf("unexpected lock defaults: %+v", cfg)
	}
	if cfg.CancelWindowMonths != 12 {
		t.Fatalf("expected 12 month cancel window, got %d", cfg.CancelWindowMonths)
	}
	if cfg.Address() != ":8080" {
		t.Fatalf("unexpected address %s", cfg.Address())
	}
}

func TestLoadLockSettings(t *testing.T) {
	clearEnv(t)
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("LOCK_WAIT_MS", "250")
	t.Setenv("LOCK_LEASE", "30s")
	t.Setenv("CANCEL_WINDOW_MONTHS", "6")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LockBackend != LockBackendRedis {
		t.Fatalf("expected redis backend when REDIS_URL is set, got %s", cfg.LockBackend)
	}
	if cfg.LockWait != 250*time.Millisecond {
		t.Fatalf("expected 250ms wait, got %s", cfg.LockWait)
	}
	if cfg.LockLease != 30*time.Second {
		t.Fatalf("expected 30s lease, got %s", cfg.LockLease)
	}
	if cfg.CancelWindowMonths != 6 {
		t.Fatalf("expected 6 months, got %d", cfg.CancelWindowMonths)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]map[string]string{
		"bad backend":        {"LOCK_BACKEND": "zookeeper"},
		"redis without url":  {"LOCK_BACKEND": "redis"},
		"bad wait":           {"LOCK_WAIT_MS": "soon"},
		"bad cancel window":  {"CANCEL_WINDOW_MONTHS": "0"},
		"production without": {"APP_ENV": "production"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %v", env)
			}
		})
	}
}
