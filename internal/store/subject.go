package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/msoledad/aula-api/internal/domain"
)

// SubjectStore defines the interface for curriculum subject persistence.
type SubjectStore interface {
	// Create saves a new subject.
	Create(ctx context.Context, subject *domain.Subject) error

	// GetByID retrieves a subject by its unique ID.
	// Returns ErrSubjectNotFound if the subject does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Subject, error)

	// List returns all subjects ordered by name.
	List(ctx context.Context) ([]*domain.Subject, error)

	// WithTx returns a new SubjectStore bound to the provided transaction.
	WithTx(tx *sql.Tx) SubjectStore
}
