// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports auth mode, session store backend, and advisor status

package handlers

import (
	"net/http"

	"github.com/marinops/fleet-spares-analyzer/cache"
)

// Health returns API health status including auth mode and store backend.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{
		"status":        "ok",
		"auth_mode":     "disabled",
		"session_store": "memory",
		"advisor":       "not_configured",
	}

	if h.cfg != nil {
		resp["auth_mode"] = h.cfg.AuthMode
	}
	if _, ok := h.store.(*cache.Redis); ok {
		resp["session_store"] = "redis"
	}
	if h.advisor != nil && h.advisor.Enabled() {
		resp["advisor"] = "ok"
	}

	writeJSON(w, http.StatusOK, resp)
}
