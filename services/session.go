// ABOUTME: Session service backed by the shared cache store
// ABOUTME: Creates, fetches, and revokes opaque server-side sessions

package services

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/marinops/fleet-spares-analyzer/cache"
	"github.com/marinops/fleet-spares-analyzer/models"
)

// SessionService manages opaque sessions in a cache store. Session IDs
// never carry user data; everything lives server-side under the ID key.
type SessionService struct {
	store cache.Store
	ttl   time.Duration
}

// NewSessionService creates a session service with the given TTL.
func NewSessionService(store cache.Store, ttl time.Duration) *SessionService {
	return &SessionService{store: store, ttl: ttl}
}

// Create mints a new session for username and persists it.
func (s *SessionService) Create(username string, passwordReset bool) (*models.Session, error) {
	id, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generating session id: %w", err)
	}
	csrf, err := randomToken()
	if err != nil {
		return nil, fmt.Errorf("generating csrf token: %w", err)
	}

	session := &models.Session{
		ID:                    id,
		Username:              username,
		CSRFToken:             csrf,
		PasswordResetRequired: passwordReset,
		CreatedAt:             time.Now().UTC(),
	}

	if err := s.put(session); err != nil {
		return nil, err
	}

	slog.Info("Session created", "username", username)
	return session, nil
}

// Get returns the session for id, or false if it is unknown or expired.
func (s *SessionService) Get(id string) (*models.Session, bool) {
	data, ok := s.store.Get(sessionKey(id))
	if !ok {
		return nil, false
	}

	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		slog.Warn("Discarding undecodable session", "error", err)
		s.store.Delete(sessionKey(id))
		return nil, false
	}
	return &session, true
}

// Delete revokes the session with the given id.
func (s *SessionService) Delete(id string) {
	s.store.Delete(sessionKey(id))
}

// ClearPasswordReset marks the session's forced password change as done.
func (s *SessionService) ClearPasswordReset(session *models.Session) error {
	session.PasswordResetRequired = false
	return s.put(session)
}

func (s *SessionService) put(session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	s.store.Set(sessionKey(session.ID), data, s.ttl)
	return nil
}

func sessionKey(id string) string {
	return "session:" + id
}

// randomToken returns 32 bytes of CSPRNG output, URL-safe base64 encoded.
func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
