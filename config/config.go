// ABOUTME: Configuration loader for the spares analyzer backend
// ABOUTME: Loads settings from environment variables (and .env) with defaults

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port               string
	AuthMode           string   // disabled, optional, required (default: optional)
	CORSAllowedOrigins []string // allowed CORS origins (empty = block all cross-origin)
	CookieSecure       bool     // Set Secure flag on session cookies (default: true)
	SessionTTL         int      // seconds a login session stays valid (default 3600)

	// Rate Limiting
	RateLimitEnabled bool // Enable rate limiting (default: true)
	RateLimitAuth    int  // Requests per minute for auth endpoints (default: 5)
	RateLimitDefault int  // Requests per minute for all other endpoints (default: 100)

	// Users
	UsersFile string // path to JSON credential file (required unless auth disabled)

	// Session store (optional Redis backend)
	RedisAddr string // host:port; empty selects the in-memory store

	// Evaluation bounds
	MaxIterationsCap int // upper bound a caller may request for max_iterations (default 100000)

	// AI advisory (optional)
	AnthropicAPIKey string
	AdvisorModel    string
}

// AdvisorConfigured returns true if the AI advisory service can be enabled
func (c *Config) AdvisorConfigured() bool {
	return c.AnthropicAPIKey != ""
}

func Load() (*Config, error) {
	// Load .env if present; real environment variables win
	_ = godotenv.Load()

	cfg := &Config{
		Port:               getEnv("PORT", "8080"),
		AuthMode:           getEnv("AUTH_MODE", "optional"),
		CORSAllowedOrigins: getEnvStringList("CORS_ALLOWED_ORIGINS"),
		CookieSecure:       getEnvBool("COOKIE_SECURE", true),
		SessionTTL:         getEnvInt("SESSION_TTL", 3600),

		RateLimitEnabled: getEnvBool("RATE_LIMIT_ENABLED", true),
		RateLimitAuth:    getEnvInt("RATE_LIMIT_AUTH", 5),
		RateLimitDefault: getEnvInt("RATE_LIMIT_DEFAULT", 100),

		UsersFile: os.Getenv("USERS_FILE"),
		RedisAddr: os.Getenv("REDIS_ADDR"),

		MaxIterationsCap: getEnvInt("MAX_ITERATIONS_CAP", 100000),

		AnthropicAPIKey: os.Getenv("ANTHROPIC_API_KEY"),
		AdvisorModel:    getEnv("ADVISOR_MODEL", "claude-sonnet-4-20250514"),
	}

	switch cfg.AuthMode {
	case "disabled", "optional", "required":
	default:
		return nil, fmt.Errorf("AUTH_MODE must be disabled, optional, or required, got %q", cfg.AuthMode)
	}

	if cfg.AuthMode != "disabled" && cfg.UsersFile == "" {
		return nil, fmt.Errorf("USERS_FILE is required when AUTH_MODE is %q", cfg.AuthMode)
	}

	if cfg.SessionTTL < 60 {
		return nil, fmt.Errorf("SESSION_TTL must be at least 60 seconds, got %d", cfg.SessionTTL)
	}

	if cfg.MaxIterationsCap < 1 {
		return nil, fmt.Errorf("MAX_ITERATIONS_CAP must be positive, got %d", cfg.MaxIterationsCap)
	}

	// Validate rate limit values
	for _, rl := range []struct {
		name  string
		value int
	}{
		{"RATE_LIMIT_AUTH", cfg.RateLimitAuth},
		{"RATE_LIMIT_DEFAULT", cfg.RateLimitDefault},
	} {
		if rl.value < 1 || rl.value > 10000 {
			return nil, fmt.Errorf("%s must be between 1 and 10000, got %d", rl.name, rl.value)
		}
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvStringList(key string) []string {
	value := os.Getenv(key)
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
