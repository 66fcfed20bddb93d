package ports

import (
	"context"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// UserRepository reads stored identities.
type UserRepository interface {
	// FindByEmail returns the single user whose email matches exactly.
	// It returns domain.ErrUserNotFound when no user (or more than one) matches;
	// any other error means the lookup itself failed.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
}
