package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 3000 {
		t.Fatalf("expected default port 3000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.Host != "0.0.0.0" {
		t.Fatalf("expected default host, got %q", cfg.HTTP.Host)
	}
	if cfg.RateLimiter.MaxRatePerSecond != 10 {
		t.Fatalf("expected default rate 10, got %d", cfg.RateLimiter.MaxRatePerSecond)
	}
	if cfg.Auth.JWTSecret == "" {
		t.Fatal("a development secret must be present")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("RATE_LIMIT_MAX_BURST", "99")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 8080 {
		t.Fatalf("expected env port 8080, got %d", cfg.HTTP.Port)
	}
	if cfg.Auth.JWTSecret != "from-env" {
		t.Fatalf("expected env secret, got %q", cfg.Auth.JWTSecret)
	}
	if cfg.RateLimiter.MaxBurst != 99 {
		t.Fatalf("expected env burst 99, got %d", cfg.RateLimiter.MaxBurst)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	contents := []byte("http:\n  port: 4000\n  read_timeout: 15s\nauth:\n  jwtSecret: from-file\n")
	if err := os.WriteFile(path, contents, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.HTTP.Port != 4000 {
		t.Fatalf("expected file port 4000, got %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ReadTimeout != 15*time.Second {
		t.Fatalf("expected 15s read timeout, got %v", cfg.HTTP.ReadTimeout)
	}
	if cfg.Auth.JWTSecret != "from-file" {
		t.Fatalf("expected file secret, got %q", cfg.Auth.JWTSecret)
	}

	// Unset keys still fall back to defaults.
	if cfg.RateLimiter.MaxRatePerSecond != 10 {
		t.Fatalf("expected default rate, got %d", cfg.RateLimiter.MaxRatePerSecond)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load("/does/not/exist.yaml"); err == nil {
		t.Fatal("expected an error for a missing explicit config file")
	}
}
