// ABOUTME: Auth request/response models for the session-cookie login flow
// ABOUTME: Defines session structure, credential records, and API contracts

package models

import "time"

// User is one credential record from the users file.
type User struct {
	Username      string `json:"username"`
	PasswordHash  string `json:"password_hash"` // bcrypt
	PasswordReset bool   `json:"password_reset"`
}

// LoginRequest represents credentials for authentication
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse represents the result of a login attempt
type LoginResponse struct {
	Success               bool   `json:"success"`
	Username              string `json:"username,omitempty"`
	PasswordResetRequired bool   `json:"password_reset_required,omitempty"`
	Error                 string `json:"error,omitempty"`
}

// UserInfoResponse represents the current user's authentication state
type UserInfoResponse struct {
	Authenticated         bool   `json:"authenticated"`
	Username              string `json:"username,omitempty"`
	PasswordResetRequired bool   `json:"password_reset_required,omitempty"`
}

// ChangePasswordRequest carries a password change for the logged-in user.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// Session stores server-side authentication state.
// The CSRF token never travels in JSON responses.
type Session struct {
	ID                    string    `json:"id"`
	Username              string    `json:"username"`
	CSRFToken             string    `json:"csrf_token"`
	PasswordResetRequired bool      `json:"password_reset_required"`
	CreatedAt             time.Time `json:"created_at"`
}
