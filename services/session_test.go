// ABOUTME: Tests for the session service
// ABOUTME: Covers create/get/delete round trips and token uniqueness

package services

import (
	"testing"
	"time"

	"github.com/marinops/fleet-spares-analyzer/cache"
)

func TestSessionLifecycle(t *testing.T) {
	svc := NewSessionService(cache.NewMemory(), time.Minute)

	session, err := svc.Create("alice", false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if session.ID == "" || session.CSRFToken == "" {
		t.Fatal("Expected non-empty session ID and CSRF token")
	}
	if session.Username != "alice" {
		t.Errorf("Expected username alice, got %s", session.Username)
	}

	got, ok := svc.Get(session.ID)
	if !ok {
		t.Fatal("Expected to retrieve stored session")
	}
	if got.Username != "alice" || got.CSRFToken != session.CSRFToken {
		t.Error("Retrieved session does not match created session")
	}

	svc.Delete(session.ID)
	if _, ok := svc.Get(session.ID); ok {
		t.Error("Expected session to be gone after delete")
	}
}

func TestSessionGet_Unknown(t *testing.T) {
	svc := NewSessionService(cache.NewMemory(), time.Minute)

	if _, ok := svc.Get("nonexistent"); ok {
		t.Error("Expected miss for unknown session ID")
	}
}

func TestSessionCreate_UniqueTokens(t *testing.T) {
	svc := NewSessionService(cache.NewMemory(), time.Minute)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		session, err := svc.Create("bob", false)
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		if seen[session.ID] {
			t.Fatal("Duplicate session ID generated")
		}
		seen[session.ID] = true
		if session.ID == session.CSRFToken {
			t.Error("Session ID and CSRF token must differ")
		}
	}
}

func TestSessionClearPasswordReset(t *testing.T) {
	svc := NewSessionService(cache.NewMemory(), time.Minute)

	session, err := svc.Create("carol", true)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if !session.PasswordResetRequired {
		t.Fatal("Expected password reset flag set")
	}

	if err := svc.ClearPasswordReset(session); err != nil {
		t.Fatalf("ClearPasswordReset failed: %v", err)
	}

	got, ok := svc.Get(session.ID)
	if !ok {
		t.Fatal("Expected session to persist after flag change")
	}
	if got.PasswordResetRequired {
		t.Error("Expected password reset flag cleared in store")
	}
}

func TestSessionExpiry(t *testing.T) {
	svc := NewSessionService(cache.NewMemory(), 10*time.Millisecond)

	session, err := svc.Create("dave", false)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, ok := svc.Get(session.ID); ok {
		t.Error("Expected session to expire with the store TTL")
	}
}
