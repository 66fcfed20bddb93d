package ports

import (
	"context"
	"time"

	"github.com/swapdash/dashboard/internal/core/domain"
)

// ViewCache stores computed views keyed by the path that renders them.
type ViewCache interface {
	// Invalidate marks the view at path stale.
	Invalidate(ctx context.Context, path string) error
	// Get decodes a cached view into dst. It reports false on a miss.
	Get(ctx context.Context, path string, dst any) (bool, error)
	Set(ctx context.Context, path string, v any) error
}

// SessionStore keeps the server-side half of issued sessions so that they can
// be revoked before their token expires.
type SessionStore interface {
	Save(ctx context.Context, id string, user *domain.SessionUser, ttl time.Duration) error
	// Get returns domain.ErrNoSession when id is unknown or expired.
	Get(ctx context.Context, id string) (*domain.SessionUser, error)
	// Delete revokes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}
