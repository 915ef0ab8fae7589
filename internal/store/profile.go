package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/msoledad/aula-api/internal/domain"
)

// ProfileStore defines the interface for student profile persistence.
type ProfileStore interface {
	// Create saves a new profile. A user may have at most one profile;
	// returns ErrProfileExists on a second create for the same user.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByUserID retrieves the profile belonging to the given user.
	// Returns ErrProfileNotFound if the user has no profile.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// Update modifies an existing profile in place.
	// Returns ErrProfileNotFound if the user has no profile.
	Update(ctx context.Context, profile *domain.Profile) error

	// WithTx returns a new ProfileStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProfileStore
}
