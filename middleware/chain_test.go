// ABOUTME: Tests for middleware composition and the shared error writer
// ABOUTME: Verifies wrap order and the JSON error body shape

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/marinops/fleet-spares-analyzer/models"
)

func TestChain_FirstMiddlewareRunsFirst(t *testing.T) {
	var order []string

	tag := func(name string) Middleware {
		return func(next http.HandlerFunc) http.HandlerFunc {
			return func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next(w, r)
			}
		}
	}

	handler := Chain(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, tag("outer"), tag("inner"))

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	want := []string{"outer", "inner", "handler"}
	if len(order) != len(want) {
		t.Fatalf("expected %d calls, got %v", len(want), order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("call %d: expected %s, got %s", i, want[i], order[i])
		}
	}
}

func TestChain_NoMiddleware(t *testing.T) {
	called := false
	handler := Chain(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	handler(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !called {
		t.Error("expected the bare handler to run")
	}
}

func TestWriteJSONError_UsesAPIErrorShape(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSONError(w, "Too many requests", http.StatusTooManyRequests)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected application/json, got %s", ct)
	}

	var resp models.ErrorResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if resp.Error != "Too many requests" {
		t.Errorf("unexpected error message: %s", resp.Error)
	}
	if resp.Code != http.StatusTooManyRequests {
		t.Errorf("expected code 429 in body, got %d", resp.Code)
	}
}
