// ABOUTME: Credential store loading users from a JSON file
// ABOUTME: Verifies passwords with bcrypt and tracks forced resets

package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/crypto/bcrypt"

	"github.com/marinops/fleet-spares-analyzer/models"
)

// UserStore holds operator accounts loaded from a JSON file. Password
// changes update the in-memory copy only; the file is read once at
// startup and never written back.
type UserStore struct {
	mu    sync.RWMutex
	users map[string]*models.User
}

// NewUserStore creates an empty store.
func NewUserStore() *UserStore {
	return &UserStore{users: make(map[string]*models.User)}
}

// LoadUsers reads the users file and replaces the store's contents.
// The file is a JSON array of objects with username, password_hash
// (bcrypt), and an optional password_reset flag.
func (s *UserStore) LoadUsers(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading users file: %w", err)
	}

	var users []*models.User
	if err := json.Unmarshal(data, &users); err != nil {
		return fmt.Errorf("parsing users file: %w", err)
	}

	byName := make(map[string]*models.User, len(users))
	for _, u := range users {
		if u.Username == "" || u.PasswordHash == "" {
			return fmt.Errorf("users file entry missing username or password_hash")
		}
		if _, exists := byName[u.Username]; exists {
			return fmt.Errorf("duplicate username %q in users file", u.Username)
		}
		byName[u.Username] = u
	}

	s.mu.Lock()
	s.users = byName
	s.mu.Unlock()

	slog.Info("Users loaded", "count", len(byName), "path", path)
	return nil
}

// Authenticate verifies username and password and returns the user.
// Unknown usernames and wrong passwords both fail with the same
// generic error.
func (s *UserStore) Authenticate(username, password string) (*models.User, error) {
	s.mu.RLock()
	user, ok := s.users[username]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("invalid credentials")
	}
	return user, nil
}

// ChangePassword verifies the current password, stores a new bcrypt
// hash, and clears any pending reset flag.
func (s *UserStore) ChangePassword(username, currentPassword, newPassword string) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("new password must be at least 8 characters")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[username]
	if !ok {
		return fmt.Errorf("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)); err != nil {
		return fmt.Errorf("invalid credentials")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.PasswordReset = false

	slog.Info("Password changed", "username", username)
	return nil
}
