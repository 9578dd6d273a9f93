// ABOUTME: Session authentication middleware with configurable enforcement
// ABOUTME: Validates session cookies and extracts user claims into context

package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
)

// AuthMode defines how authentication is enforced
type AuthMode string

const (
	// AuthModeDisabled skips all authentication
	AuthModeDisabled AuthMode = "disabled"
	// AuthModeOptional validates sessions if present, allows anonymous
	AuthModeOptional AuthMode = "optional"
	// AuthModeRequired rejects requests without a valid session
	AuthModeRequired AuthMode = "required"
)

// SessionValidatorFunc validates a session ID and returns user claims if valid
type SessionValidatorFunc func(sessionID string) *UserClaims

// AuthConfig holds authentication middleware settings
type AuthConfig struct {
	Mode             AuthMode
	SessionValidator SessionValidatorFunc
}

// ValidateAuthMode validates an auth mode string and returns the corresponding AuthMode.
// Empty string defaults to AuthModeOptional.
// Returns error for invalid mode values.
func ValidateAuthMode(mode string) (AuthMode, error) {
	switch mode {
	case "", "optional":
		return AuthModeOptional, nil
	case "disabled":
		return AuthModeDisabled, nil
	case "required":
		return AuthModeRequired, nil
	default:
		return "", fmt.Errorf("invalid auth mode: %q (must be disabled, optional, or required)", mode)
	}
}

// UserClaims identifies the authenticated user for a request
type UserClaims struct {
	Username              string
	PasswordResetRequired bool
}

// contextKey is a private type for context keys to avoid collisions
type contextKey string

const userClaimsKey contextKey = "userClaims"

// Auth returns middleware that validates session cookies.
// The middleware behavior depends on the configured mode:
//   - disabled: passes all requests through
//   - optional: validates the session if present, allows anonymous
//   - required: rejects requests without a valid session
func Auth(cfg AuthConfig) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			// Disabled mode: pass through
			if cfg.Mode == AuthModeDisabled {
				next(w, r)
				return
			}

			if cfg.SessionValidator != nil {
				cookie, err := r.Cookie(sessionCookieName)
				if err == nil && cookie.Value != "" {
					claims := cfg.SessionValidator(cookie.Value)
					if claims != nil {
						if claims.PasswordResetRequired {
							slog.Debug("Auth rejected: password reset pending", "path", r.URL.Path, "user", claims.Username)
							writeJSONError(w, "Password change required", http.StatusForbidden)
							return
						}
						slog.Debug("Auth: valid session cookie", "path", r.URL.Path, "user", claims.Username)
						ctx := context.WithValue(r.Context(), userClaimsKey, claims)
						next(w, r.WithContext(ctx))
						return
					}
					// Session cookie present but invalid
					slog.Debug("Auth rejected: invalid session", "path", r.URL.Path)
					writeJSONError(w, "Invalid session", http.StatusUnauthorized)
					return
				}
			}

			// No auth provided
			if cfg.Mode == AuthModeRequired {
				slog.Debug("Auth rejected: no auth provided", "path", r.URL.Path, "mode", cfg.Mode)
				writeJSONError(w, "Authentication required", http.StatusUnauthorized)
				return
			}

			// Optional mode with no auth: pass through
			slog.Debug("Auth: anonymous request allowed", "path", r.URL.Path, "mode", cfg.Mode)
			next(w, r)
		}
	}
}

// GetUserClaims extracts user claims from request context.
// Returns nil if no claims are present.
func GetUserClaims(r *http.Request) *UserClaims {
	claims, ok := r.Context().Value(userClaimsKey).(*UserClaims)
	if !ok {
		return nil
	}
	return claims
}
