package domain

import (
	"errors"
	"time"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrUnknownStrategy = errors.New("unknown authentication strategy")
	ErrSignInDenied    = errors.New("sign-in denied by policy")
	ErrSessionStore    = errors.New("session store unavailable")
)

// Session is the caller-visible view of an authenticated session.
type Session struct {
	ID        string       `json:"-"`
	User      *SessionUser `json:"user"`
	ExpiresAt time.Time    `json:"expires"`
}
