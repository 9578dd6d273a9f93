// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method (GET, POST, etc.)
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health & Status
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Evaluation
		{Method: http.MethodPost, Path: "/api/v1/evaluate", Handler: h.Evaluate},
		{Method: http.MethodPost, Path: "/api/v1/evaluate/sweep", Handler: h.EvaluateSweep},

		// Auth
		{Method: http.MethodPost, Path: "/api/v1/auth/login", Handler: h.Login},
		{Method: http.MethodGet, Path: "/api/v1/auth/me", Handler: h.Me},
		{Method: http.MethodPost, Path: "/api/v1/auth/logout", Handler: h.Logout},
		{Method: http.MethodPost, Path: "/api/v1/auth/password", Handler: h.ChangePassword},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
