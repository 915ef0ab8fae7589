package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/msoledad/aula-api/internal/domain"
)

// ResourceStore defines the interface for educational resource persistence.
type ResourceStore interface {
	// Create saves a new resource.
	// Returns ErrInvalidEntity if the subject does not exist.
	Create(ctx context.Context, resource *domain.Resource) error

	// List returns resources filtered by the optional subject and level,
	// newest first.
	List(ctx context.Context, subjectID *uuid.UUID, level *int) ([]*domain.Resource, error)

	// WithTx returns a new ResourceStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ResourceStore
}

// InteractionStore defines the interface for agent interaction audit records.
type InteractionStore interface {
	// Create saves a new interaction record.
	Create(ctx context.Context, interaction *domain.Interaction) error

	// ListByUser returns the user's interactions, newest first; limit <= 0
	// means no limit.
	ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]*domain.Interaction, error)

	// WithTx returns a new InteractionStore bound to the provided transaction.
	WithTx(tx *sql.Tx) InteractionStore
}
