package ports

import (
	"context"

	"github.com/roamstead/camper-rentals/internal/core/domain"
)

// ProfileRepository defines persistence operations for application profiles.
type ProfileRepository interface {
	// FindBySubject retrieves at most one profile keyed by the identity
	// provider's subject id. Returns domain.ErrProfileNotFound on a clean miss.
	FindBySubject(ctx context.Context, subjectID string) (*domain.Profile, error)
	// Create inserts exactly one profile and returns the stored row — the
	// store's echoed values, not the request — as the source of truth.
	// Returns domain.ErrProfileExists when the subject already has a row.
	Create(ctx context.Context, profile *domain.Profile) (*domain.Profile, error)
}

// RoleHintStore persists the "preferred role" hint a visitor expressed before
// authenticating. Hints expire store-side; Get never returns a stale hint.
type RoleHintStore interface {
	Put(ctx context.Context, subjectID, role string) error
	// Get returns the hint, or "" when absent or expired.
	Get(ctx context.Context, subjectID string) (string, error)
}
