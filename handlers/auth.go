// ABOUTME: Auth handlers for the session-cookie login flow
// ABOUTME: Handles login, logout, password changes with httpOnly cookies

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marinops/fleet-spares-analyzer/models"
)

const (
	sessionCookieName = "FLEET_SESSION"
	csrfCookieName    = "FLEET_CSRF"
)

// Login verifies credentials and creates a server-side session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if h.users == nil || h.sessions == nil {
		writeError(w, "Authentication is not configured", http.StatusServiceUnavailable)
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		writeError(w, "Username and password are required", http.StatusBadRequest)
		return
	}

	user, err := h.users.Authenticate(req.Username, req.Password)
	if err != nil {
		slog.Warn("Authentication failed", "username", req.Username)
		writeJSON(w, http.StatusUnauthorized, models.LoginResponse{
			Success: false,
			Error:   "Invalid credentials",
		})
		return
	}

	session, err := h.sessions.Create(user.Username, user.PasswordReset)
	if err != nil {
		slog.Error("Failed to create session", "error", err)
		writeError(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	// Session ID goes in an httpOnly cookie; the CSRF token in a
	// JS-readable cookie for the double-submit pattern. No tokens in
	// the response body.
	h.setSessionCookies(w, session)

	writeJSON(w, http.StatusOK, models.LoginResponse{
		Success:               true,
		Username:              user.Username,
		PasswordResetRequired: user.PasswordReset,
	})
}

// Me returns the current user's authentication status.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	session := h.getSessionFromCookie(r)
	if session == nil {
		writeJSON(w, http.StatusOK, models.UserInfoResponse{
			Authenticated: false,
		})
		return
	}

	writeJSON(w, http.StatusOK, models.UserInfoResponse{
		Authenticated:         true,
		Username:              session.Username,
		PasswordResetRequired: session.PasswordResetRequired,
	})
}

// Logout clears the session and both cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(sessionCookieName)
	if err == nil && cookie.Value != "" && h.sessions != nil {
		h.sessions.Delete(cookie.Value)
	}

	h.clearSessionCookies(w)

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ChangePassword updates the logged-in user's password and clears any
// pending forced reset on both the credential record and the session.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	session := h.getSessionFromCookie(r)
	if session == nil {
		writeError(w, "Not authenticated", http.StatusUnauthorized)
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.ChangePassword(session.Username, req.CurrentPassword, req.NewPassword); err != nil {
		slog.Warn("Password change rejected", "username", session.Username, "error", err)
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if session.PasswordResetRequired {
		if err := h.sessions.ClearPasswordReset(session); err != nil {
			slog.Error("Failed to clear password reset flag", "error", err)
			writeError(w, "Failed to update session", http.StatusInternalServerError)
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// getSessionFromCookie retrieves the session from the request cookie.
func (h *Handler) getSessionFromCookie(r *http.Request) *models.Session {
	if h.sessions == nil {
		return nil
	}

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		return nil
	}

	session, ok := h.sessions.Get(cookie.Value)
	if !ok {
		return nil
	}
	return session
}

// setSessionCookies sets the httpOnly session cookie and the
// JS-readable CSRF cookie.
func (h *Handler) setSessionCookies(w http.ResponseWriter, session *models.Session) {
	secure := true
	maxAge := 3600
	if h.cfg != nil {
		secure = h.cfg.CookieSecure
		maxAge = h.cfg.SessionTTL
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     csrfCookieName,
		Value:    session.CSRFToken,
		HttpOnly: false, // double-submit: the frontend echoes this in X-CSRF-Token
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   maxAge,
	})
}

// clearSessionCookies removes both session cookies.
func (h *Handler) clearSessionCookies(w http.ResponseWriter) {
	secure := true
	if h.cfg != nil {
		secure = h.cfg.CookieSecure
	}

	for _, name := range []string{sessionCookieName, csrfCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			HttpOnly: name == sessionCookieName,
			Secure:   secure,
			SameSite: http.SameSiteStrictMode,
			Path:     "/",
			MaxAge:   -1, // Delete cookie
		})
	}
}
