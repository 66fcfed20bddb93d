package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserLookup         = errors.New("failed to fetch user")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
)

// User is the stored identity record. The service only reads users; the seed
// tool creates them.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
}

// SessionUser is the projection of a User that may leave the credential
// boundary. It never carries the password digest.
type SessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Projection returns the outward-safe view of u.
func (u *User) Projection() *SessionUser {
	return &SessionUser{ID: u.ID, Name: u.Name, Email: u.Email}
}

// AuthFailureReason tells apart the ways a credential check can fail. The
// reason is for server-side diagnosis only; callers show one message for all.
type AuthFailureReason string

const (
	AuthInvalidFormat AuthFailureReason = "invalid_format"
	AuthUserNotFound  AuthFailureReason = "user_not_found"
	AuthWrongPassword AuthFailureReason = "wrong_password"
)

// AuthFailure is returned when a credential check rejects the caller.
type AuthFailure struct {
	Reason AuthFailureReason
}

func (e *AuthFailure) Error() string {
	return fmt.Sprintf("authentication failed: %s", e.Reason)
}

// Is makes every AuthFailure match ErrInvalidCredentials.
func (e *AuthFailure) Is(target error) bool {
	return target == ErrInvalidCredentials
}
