package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/platform/logger"
	"github.com/msoledad/aula-api/internal/store"
)

// PostgresEvaluationStore implements the store.EvaluationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresEvaluationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresEvaluationStore creates a new PostgreSQL implementation of the
// EvaluationStore interface. If logger is nil, a default logger will be used.
func NewPostgresEvaluationStore(db store.DBTX, logger *slog.Logger) *PostgresEvaluationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresEvaluationStore{
		db:     db,
		logger: logger.With(slog.String("component", "evaluation_store")),
	}
}

// Ensure PostgresEvaluationStore implements store.EvaluationStore interface
var _ store.EvaluationStore = (*PostgresEvaluationStore)(nil)

// Create implements store.EvaluationStore.Create
// Returns store.ErrInvalidEntity if the user or subject does not exist.
func (s *PostgresEvaluationStore) Create(ctx context.Context, eval *domain.Evaluation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := eval.Validate(); err != nil {
		log.Warn("evaluation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("evaluation_id", eval.ID.String()))
		return err
	}

	query := `
		INSERT INTO evaluations (id, user_id, subject_id, level, score, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		eval.ID,
		eval.UserID,
		eval.SubjectID,
		eval.Level,
		eval.Score,
		eval.TakenAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during evaluation creation",
				slog.String("user_id", eval.UserID.String()),
				slog.String("subject_id", eval.SubjectID.String()))
			return fmt.Errorf("%w: user or subject not found", store.ErrInvalidEntity)
		}

		log.Error("failed to create evaluation",
			slog.String("error", err.Error()),
			slog.String("evaluation_id", eval.ID.String()))
		return err
	}

	log.Info("evaluation created successfully",
		slog.String("evaluation_id", eval.ID.String()),
		slog.String("user_id", eval.UserID.String()),
		slog.Int("level", eval.Level),
		slog.Float64("score", eval.Score))
	return nil
}

// ListByUser implements store.EvaluationStore.ListByUser
// A nil subjectID returns evaluations across all subjects; limit <= 0 means
// no limit.
func (s *PostgresEvaluationStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	subjectID *uuid.UUID,
	limit int,
) ([]*domain.Evaluation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, subject_id, level, score, taken_at
		FROM evaluations
		WHERE user_id = $1
	`
	args := []any{userID}

	if subjectID != nil {
		args = append(args, *subjectID)
		query += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	query += ` ORDER BY taken_at DESC`
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list evaluations",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var evals []*domain.Evaluation
	for rows.Next() {
		var eval domain.Evaluation

		err := rows.Scan(
			&eval.ID,
			&eval.UserID,
			&eval.SubjectID,
			&eval.Level,
			&eval.Score,
			&eval.TakenAt,
		)
		if err != nil {
			log.Error("failed to scan evaluation row", slog.String("error", err.Error()))
			return nil, err
		}

		evals = append(evals, &eval)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if evals == nil {
		evals = []*domain.Evaluation{}
	}

	return evals, nil
}

// LatestLevel implements store.EvaluationStore.LatestLevel
// Returns 0 when the user has no evaluation for the subject.
func (s *PostgresEvaluationStore) LatestLevel(ctx context.Context, userID, subjectID uuid.UUID) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT level
		FROM evaluations
		WHERE user_id = $1 AND subject_id = $2
		ORDER BY taken_at DESC
		LIMIT 1
	`

	var level int
	err := s.db.QueryRowContext(ctx, query, userID, subjectID).Scan(&level)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		log.Error("failed to get latest evaluation level",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()),
			slog.String("subject_id", subjectID.String()))
		return 0, err
	}

	return level, nil
}

// WithTx implements store.EvaluationStore.WithTx
func (s *PostgresEvaluationStore) WithTx(tx *sql.Tx) store.EvaluationStore {
	return &PostgresEvaluationStore{
		db:     tx,
		logger: s.logger,
	}
}
