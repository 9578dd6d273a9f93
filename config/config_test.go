// ABOUTME: Tests for configuration loading
// ABOUTME: Validates defaults, overrides, and rejection of invalid settings

package config

import (
	"strings"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("AUTH_MODE", "disabled")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 3600 {
		t.Errorf("Expected default session TTL 3600, got %d", cfg.SessionTTL)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting enabled by default")
	}
	if cfg.RateLimitAuth != 5 {
		t.Errorf("Expected default auth rate limit 5, got %d", cfg.RateLimitAuth)
	}
	if cfg.RateLimitDefault != 100 {
		t.Errorf("Expected default rate limit 100, got %d", cfg.RateLimitDefault)
	}
	if cfg.MaxIterationsCap != 100000 {
		t.Errorf("Expected default max iterations cap 100000, got %d", cfg.MaxIterationsCap)
	}
	if cfg.AdvisorConfigured() {
		t.Error("Advisor should not be configured without an API key")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("AUTH_MODE", "required")
	t.Setenv("USERS_FILE", "/etc/spares/users.json")
	t.Setenv("PORT", "9090")
	t.Setenv("SESSION_TTL", "120")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.SessionTTL != 120 {
		t.Errorf("Expected session TTL 120, got %d", cfg.SessionTTL)
	}
	if cfg.RedisAddr != "localhost:6379" {
		t.Errorf("Expected redis addr localhost:6379, got %s", cfg.RedisAddr)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("Expected 2 CORS origins, got %d", len(cfg.CORSAllowedOrigins))
	}
	if cfg.CORSAllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("Expected trimmed origin, got %q", cfg.CORSAllowedOrigins[1])
	}
}

func TestLoad_InvalidAuthMode(t *testing.T) {
	t.Setenv("AUTH_MODE", "sometimes")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for invalid auth mode")
	}
	if !strings.Contains(err.Error(), "AUTH_MODE") {
		t.Errorf("Error should mention AUTH_MODE, got: %v", err)
	}
}

func TestLoad_UsersFileRequiredUnlessDisabled(t *testing.T) {
	t.Setenv("AUTH_MODE", "required")
	t.Setenv("USERS_FILE", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error when USERS_FILE missing with auth required")
	}
}

func TestLoad_RateLimitBounds(t *testing.T) {
	t.Setenv("AUTH_MODE", "disabled")
	t.Setenv("RATE_LIMIT_DEFAULT", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for out-of-range rate limit")
	}
}

func TestLoad_SessionTTLTooShort(t *testing.T) {
	t.Setenv("AUTH_MODE", "disabled")
	t.Setenv("SESSION_TTL", "5")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for session TTL under 60 seconds")
	}
}
