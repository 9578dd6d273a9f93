// ABOUTME: Entry point for the fleet spares analyzer backend service
// ABOUTME: Provides HTTP API for Poisson-based spare parts provisioning

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/marinops/fleet-spares-analyzer/cache"
	"github.com/marinops/fleet-spares-analyzer/config"
	"github.com/marinops/fleet-spares-analyzer/handlers"
	"github.com/marinops/fleet-spares-analyzer/logger"
	"github.com/marinops/fleet-spares-analyzer/middleware"
	"github.com/marinops/fleet-spares-analyzer/services"
)

func main() {
	// Initialize structured logging
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("Starting Fleet Spares Analyzer Backend")

	// Session/cache store: Redis when configured, in-memory otherwise
	var store cache.Store
	if cfg.RedisAddr != "" {
		redisStore := cache.NewRedis(cfg.RedisAddr)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := redisStore.Ping(ctx); err != nil {
			cancel()
			slog.Error("Redis unreachable", "addr", cfg.RedisAddr, "error", err)
			os.Exit(1)
		}
		cancel()
		store = redisStore
		slog.Info("Session store configured", "backend", "redis", "addr", cfg.RedisAddr)
	} else {
		store = cache.NewMemory()
		slog.Info("Session store configured", "backend", "memory")
	}

	// Credential store
	var users *services.UserStore
	if cfg.UsersFile != "" {
		users = services.NewUserStore()
		if err := users.LoadUsers(cfg.UsersFile); err != nil {
			slog.Error("Failed to load users", "path", cfg.UsersFile, "error", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("No users file configured, auth endpoints unavailable")
	}

	if cfg.AdvisorConfigured() {
		slog.Info("AI advisory enabled", "model", cfg.AdvisorModel)
	} else {
		slog.Info("AI advisory not configured, using deterministic summaries")
	}

	h := handlers.NewHandler(cfg, store, users)

	authMode, err := middleware.ValidateAuthMode(cfg.AuthMode)
	if err != nil {
		slog.Error("Invalid auth mode", "error", err)
		os.Exit(1)
	}
	authMW := middleware.Auth(middleware.AuthConfig{
		Mode:             authMode,
		SessionValidator: h.SessionValidator(),
	})

	var authLimiter, defaultLimiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		authLimiter = middleware.NewRateLimiter(cfg.RateLimitAuth, time.Minute)
		defaultLimiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
		slog.Info("Rate limiting enabled", "auth_rpm", cfg.RateLimitAuth, "default_rpm", cfg.RateLimitDefault)
	}

	corsMW := middleware.CORS(cfg.CORSAllowedOrigins)
	csrfMW := middleware.CSRF()

	// Register routes. Auth endpoints get the stricter IP-keyed limiter;
	// evaluation endpoints require a session (per AUTH_MODE) and share
	// the session-keyed default limiter. Health and docs stay open.
	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		var handler http.HandlerFunc

		switch {
		case strings.HasPrefix(route.Path, "/api/v1/auth/"):
			handler = middleware.Chain(route.Handler,
				middleware.LogRequest,
				corsMW,
				middleware.RateLimit(authLimiter, middleware.ClientIP),
				csrfMW,
			)
		case strings.HasPrefix(route.Path, "/api/v1/evaluate"):
			handler = middleware.Chain(route.Handler,
				middleware.LogRequest,
				corsMW,
				middleware.RateLimit(defaultLimiter, middleware.SessionKey),
				csrfMW,
				authMW,
			)
		default:
			handler = middleware.Chain(route.Handler,
				middleware.LogRequest,
				corsMW,
			)
		}

		mux.HandleFunc(route.Method+" "+route.Path, handler)

		// Method-scoped patterns never see OPTIONS, so preflight gets
		// its own registration handled entirely by the CORS middleware.
		mux.HandleFunc("OPTIONS "+route.Path, middleware.Chain(
			func(w http.ResponseWriter, r *http.Request) {},
			middleware.LogRequest,
			corsMW,
		))
	}

	// Start server
	addr := ":" + cfg.Port
	slog.Info("Server listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}
