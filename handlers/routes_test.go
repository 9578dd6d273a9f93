// ABOUTME: Unit tests for the declarative route table
// ABOUTME: Verifies every expected endpoint is registered with a handler

package handlers

import (
	"net/http"
	"testing"

	"github.com/marinops/fleet-spares-analyzer/cache"
)

func TestRoutes_Complete(t *testing.T) {
	h := NewHandler(nil, cache.NewMemory(), nil)
	routes := h.Routes()

	expected := map[string]string{
		"/api/v1/health":         http.MethodGet,
		"/api/v1/evaluate":       http.MethodPost,
		"/api/v1/evaluate/sweep": http.MethodPost,
		"/api/v1/auth/login":     http.MethodPost,
		"/api/v1/auth/me":        http.MethodGet,
		"/api/v1/auth/logout":    http.MethodPost,
		"/api/v1/auth/password":  http.MethodPost,
		"/api/v1/openapi.yaml":   http.MethodGet,
	}

	seen := make(map[string]bool)
	for _, route := range routes {
		method, ok := expected[route.Path]
		if !ok {
			t.Errorf("Unexpected route %s", route.Path)
			continue
		}
		if route.Method != method {
			t.Errorf("Route %s: expected %s, got %s", route.Path, method, route.Method)
		}
		if route.Handler == nil {
			t.Errorf("Route %s has a nil handler", route.Path)
		}
		seen[route.Path] = true
	}

	for path := range expected {
		if !seen[path] {
			t.Errorf("Missing route %s", path)
		}
	}
}
