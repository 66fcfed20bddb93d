package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/swapdash/dashboard/internal/core/domain"
	"github.com/swapdash/dashboard/internal/core/ports"
	"github.com/swapdash/dashboard/internal/core/validation"
	"github.com/swapdash/dashboard/internal/pkg/metrics"
)

// CredentialVerifier is the single source of truth for email/password checks.
type CredentialVerifier struct {
	users ports.UserRepository
	log   zerolog.Logger
	// compare is bcrypt.CompareHashAndPassword; replaced in tests.
	compare func(hash, password []byte) error
}

func NewCredentialVerifier(users ports.UserRepository, log zerolog.Logger) *CredentialVerifier {
	return &CredentialVerifier{
		users:   users,
		log:     log,
		compare: bcrypt.CompareHashAndPassword,
	}
}

// Verify returns the outward projection of the user owning email when
// password matches. Rejections are *domain.AuthFailure; a broken lookup is
// domain.ErrUserLookup.
func (v *CredentialVerifier) Verify(ctx context.Context, email, password string) (*domain.SessionUser, error) {
	// 1. Shape check. Malformed input never reaches the store.
	parsed := validation.Credentials.Parse(map[string]string{
		validation.FieldEmail:    email,
		validation.FieldPassword: password,
	})
	if !parsed.Valid() {
		return nil, v.reject(domain.AuthInvalidFormat, "")
	}

	// 2. Lookup by exact email.
	user, err := v.users.FindByEmail(ctx, parsed.String(validation.FieldEmail))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, v.reject(domain.AuthUserNotFound, "")
		}
		v.log.Error().Err(err).Msg("failed to fetch user")
		metrics.AuthAttemptsTotal.WithLabelValues("lookup_error").Inc()
		return nil, fmt.Errorf("verify credentials: %w", domain.ErrUserLookup)
	}

	// 3. One-way salted comparison.
	if err := v.compare([]byte(user.PasswordHash), []byte(parsed.String(validation.FieldPassword))); err != nil {
		return nil, v.reject(domain.AuthWrongPassword, user.ID)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("success").Inc()
	return user.Projection(), nil
}

func (v *CredentialVerifier) reject(reason domain.AuthFailureReason, userID string) error {
	ev := v.log.Info().Str("reason", string(reason))
	if userID != "" {
		ev = ev.Str("user_id", userID)
	}
	ev.Msg("credential check rejected")
	metrics.AuthAttemptsTotal.WithLabelValues(string(reason)).Inc()
	return &domain.AuthFailure{Reason: reason}
}
