package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/msoledad/aula-api/internal/domain"
)

// ProgressStore defines the interface for progress record persistence.
type ProgressStore interface {
	// Upsert creates the progress record for (user, subject, topic, subtopic)
	// or updates the existing one with the new state and percentage.
	Upsert(ctx context.Context, progress *domain.Progress) error

	// ListByUser returns the user's progress records, newest activity first.
	// A nil subjectID returns records across all subjects.
	ListByUser(ctx context.Context, userID uuid.UUID, subjectID *uuid.UUID) ([]*domain.Progress, error)

	// WithTx returns a new ProgressStore bound to the provided transaction.
	WithTx(tx *sql.Tx) ProgressStore
}

// EvaluationStore defines the interface for evaluation result persistence.
type EvaluationStore interface {
	// Create saves a new evaluation result.
	// Returns ErrInvalidEntity if the user or subject does not exist.
	Create(ctx context.Context, eval *domain.Evaluation) error

	// ListByUser returns the user's evaluations, newest first. A nil
	// subjectID returns evaluations across all subjects; limit <= 0 means
	// no limit.
	ListByUser(ctx context.Context, userID uuid.UUID, subjectID *uuid.UUID, limit int) ([]*domain.Evaluation, error)

	// LatestLevel returns the level of the user's most recent evaluation
	// for the subject, or 0 when the user has none.
	LatestLevel(ctx context.Context, userID, subjectID uuid.UUID) (int, error)

	// WithTx returns a new EvaluationStore bound to the provided transaction.
	WithTx(tx *sql.Tx) EvaluationStore
}
