// ABOUTME: Unit tests for CORS middleware
// ABOUTME: Covers origin allow lists, wildcard mode, and preflight handling

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}
}

func TestCORS_Wildcard(t *testing.T) {
	handler := CORS([]string{"*"})(corsHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://anywhere.example")

	w := httptest.NewRecorder()
	handler(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected wildcard origin, got %q", got)
	}
}

func TestCORS_AllowListedOrigin(t *testing.T) {
	handler := CORS([]string{"https://ops.example.com"})(corsHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://ops.example.com")

	w := httptest.NewRecorder()
	handler(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://ops.example.com" {
		t.Errorf("Expected echoed origin, got %q", got)
	}
	if w.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Error("Expected credentials allowed for listed origin")
	}
	if w.Header().Get("Vary") != "Origin" {
		t.Error("Expected Vary: Origin for listed origin")
	}
}

func TestCORS_UnlistedOrigin(t *testing.T) {
	handler := CORS([]string{"https://ops.example.com"})(corsHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://evil.example")

	w := httptest.NewRecorder()
	handler(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header for unlisted origin, got %q", got)
	}
}

func TestCORS_EmptyListDisablesCrossOrigin(t *testing.T) {
	handler := CORS(nil)(corsHandler())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.Header.Set("Origin", "https://anywhere.example")

	w := httptest.NewRecorder()
	handler(w, r)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Expected no allow-origin header with empty list, got %q", got)
	}
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	handler := CORS([]string{"*"})(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	w := httptest.NewRecorder()
	handler(w, httptest.NewRequest(http.MethodOptions, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for preflight, got %d", w.Code)
	}
	if called {
		t.Error("Preflight must not reach the wrapped handler")
	}
}
