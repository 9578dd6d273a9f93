// ABOUTME: HTTP handler wiring for the spares analyzer API
// ABOUTME: Holds shared services and the JSON response helpers

package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/marinops/fleet-spares-analyzer/cache"
	"github.com/marinops/fleet-spares-analyzer/config"
	"github.com/marinops/fleet-spares-analyzer/middleware"
	"github.com/marinops/fleet-spares-analyzer/models"
	"github.com/marinops/fleet-spares-analyzer/services"
)

type Handler struct {
	cfg      *config.Config
	store    cache.Store
	sessions *services.SessionService
	users    *services.UserStore
	rate     *services.RateCalculator
	sizer    *services.SpareSizer
	advisor  *services.Advisor
}

func NewHandler(cfg *config.Config, store cache.Store, users *services.UserStore) *Handler {
	h := &Handler{
		cfg:   cfg,
		store: store,
		users: users,
		rate:  services.NewRateCalculator(),
		sizer: services.NewSpareSizer(),
	}

	// Config is optional (for testing)
	if cfg != nil {
		h.sessions = services.NewSessionService(store, time.Duration(cfg.SessionTTL)*time.Second)
		h.advisor = services.NewAdvisor(cfg.AnthropicAPIKey, cfg.AdvisorModel)
	}

	return h
}

// SessionValidator adapts the session service for the auth middleware.
func (h *Handler) SessionValidator() middleware.SessionValidatorFunc {
	return func(sessionID string) *middleware.UserClaims {
		if h.sessions == nil {
			return nil
		}
		session, ok := h.sessions.Get(sessionID)
		if !ok {
			return nil
		}
		return &middleware.UserClaims{
			Username:              session.Username,
			PasswordResetRequired: session.PasswordResetRequired,
		}
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response as JSON with the given status code.
func writeError(w http.ResponseWriter, message string, code int) {
	writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// writeErrorDetails writes an error response with a details field.
func writeErrorDetails(w http.ResponseWriter, message, details string, code int) {
	writeJSON(w, code, models.ErrorResponse{
		Error:   message,
		Details: details,
		Code:    code,
	})
}
