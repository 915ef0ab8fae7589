package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/platform/logger"
	"github.com/msoledad/aula-api/internal/store"
)

// PostgresProgressStore implements the store.ProgressStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProgressStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProgressStore creates a new PostgreSQL implementation of the
// ProgressStore interface. If logger is nil, a default logger will be used.
func NewPostgresProgressStore(db store.DBTX, logger *slog.Logger) *PostgresProgressStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProgressStore{
		db:     db,
		logger: logger.With(slog.String("component", "progress_store")),
	}
}

// Ensure PostgresProgressStore implements store.ProgressStore interface
var _ store.ProgressStore = (*PostgresProgressStore)(nil)

// Upsert implements store.ProgressStore.Upsert
// It inserts the progress record, or on conflict with the existing
// (user, subject, topic, subtopic) row updates its state, percentage and
// activity timestamp.
// Returns store.ErrInvalidEntity if the user or subject does not exist.
func (s *PostgresProgressStore) Upsert(ctx context.Context, progress *domain.Progress) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := progress.Validate(); err != nil {
		log.Warn("progress validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	query := `
		INSERT INTO progress (id, user_id, subject_id, topic, subtopic,
			state, percent_complete, last_activity_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, subject_id, topic, subtopic)
		DO UPDATE SET
			state = EXCLUDED.state,
			percent_complete = EXCLUDED.percent_complete,
			last_activity_at = EXCLUDED.last_activity_at
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		progress.ID,
		progress.UserID,
		progress.SubjectID,
		progress.Topic,
		progress.Subtopic,
		progress.State,
		progress.PercentComplete,
		progress.LastActivityAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during progress upsert",
				slog.String("user_id", progress.UserID.String()),
				slog.String("subject_id", progress.SubjectID.String()))
			return fmt.Errorf("%w: user or subject not found", store.ErrInvalidEntity)
		}

		log.Error("failed to upsert progress",
			slog.String("error", err.Error()),
			slog.String("progress_id", progress.ID.String()))
		return err
	}

	log.Info("progress upserted successfully",
		slog.String("user_id", progress.UserID.String()),
		slog.String("topic", progress.Topic),
		slog.String("state", string(progress.State)))
	return nil
}

// ListByUser implements store.ProgressStore.ListByUser
// A nil subjectID returns records across all subjects.
func (s *PostgresProgressStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	subjectID *uuid.UUID,
) ([]*domain.Progress, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, subject_id, topic, subtopic,
			state, percent_complete, last_activity_at
		FROM progress
		WHERE user_id = $1
	`
	args := []any{userID}

	if subjectID != nil {
		query += ` AND subject_id = $2`
		args = append(args, *subjectID)
	}
	query += ` ORDER BY last_activity_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list progress",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var records []*domain.Progress
	for rows.Next() {
		var progress domain.Progress
		var state string

		err := rows.Scan(
			&progress.ID,
			&progress.UserID,
			&progress.SubjectID,
			&progress.Topic,
			&progress.Subtopic,
			&state,
			&progress.PercentComplete,
			&progress.LastActivityAt,
		)
		if err != nil {
			log.Error("failed to scan progress row", slog.String("error", err.Error()))
			return nil, err
		}

		progress.State = domain.ProgressState(state)
		records = append(records, &progress)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if records == nil {
		records = []*domain.Progress{}
	}

	return records, nil
}

// WithTx implements store.ProgressStore.WithTx
func (s *PostgresProgressStore) WithTx(tx *sql.Tx) store.ProgressStore {
	return &PostgresProgressStore{
		db:     tx,
		logger: s.logger,
	}
}
