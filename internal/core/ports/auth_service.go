package ports

import (
	"context"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// CredentialVerifier checks an email/password pair against stored users.
type CredentialVerifier interface {
	Verify(ctx context.Context, email, password string) (*domain.SessionUser, error)
}

// SignInResult is what a successful sign-in hands back to the transport.
type SignInResult struct {
	Token      string
	Session    *domain.Session
	RedirectTo string
}

// SessionService issues, reads and revokes sessions.
type SessionService interface {
	SignIn(ctx context.Context, strategy string, credentials map[string]string, callbackURL string) (*SignInResult, error)
	SignOut(ctx context.Context, token, redirectTo string) (string, error)
	CurrentSession(ctx context.Context, token string) (*domain.Session, error)
}
