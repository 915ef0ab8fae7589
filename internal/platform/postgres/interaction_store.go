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

// PostgresInteractionStore implements the store.InteractionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresInteractionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresInteractionStore creates a new PostgreSQL implementation of the
// InteractionStore interface. If logger is nil, a default logger will be used.
func NewPostgresInteractionStore(db store.DBTX, logger *slog.Logger) *PostgresInteractionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresInteractionStore{
		db:     db,
		logger: logger.With(slog.String("component", "interaction_store")),
	}
}

// Ensure PostgresInteractionStore implements store.InteractionStore interface
var _ store.InteractionStore = (*PostgresInteractionStore)(nil)

// Create implements store.InteractionStore.Create
// Returns store.ErrInvalidEntity if the user does not exist.
func (s *PostgresInteractionStore) Create(ctx context.Context, interaction *domain.Interaction) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := interaction.Validate(); err != nil {
		log.Warn("interaction validation failed during create",
			slog.String("error", err.Error()),
			slog.String("interaction_id", interaction.ID.String()))
		return err
	}

	query := `
		INSERT INTO interactions (id, user_id, agent_name, kind, content, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		interaction.ID,
		interaction.UserID,
		interaction.AgentName,
		interaction.Kind,
		interaction.Content,
		interaction.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during interaction creation",
				slog.String("user_id", interaction.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, interaction.UserID)
		}

		log.Error("failed to create interaction",
			slog.String("error", err.Error()),
			slog.String("interaction_id", interaction.ID.String()))
		return err
	}

	log.Debug("interaction recorded",
		slog.String("interaction_id", interaction.ID.String()),
		slog.String("agent_name", interaction.AgentName),
		slog.String("kind", interaction.Kind))
	return nil
}

// ListByUser implements store.InteractionStore.ListByUser
// Returns the user's interactions, newest first; limit <= 0 means no limit.
func (s *PostgresInteractionStore) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	limit int,
) ([]*domain.Interaction, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, agent_name, kind, content, created_at
		FROM interactions
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	args := []any{userID}

	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(` LIMIT $%d`, len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list interactions",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var interactions []*domain.Interaction
	for rows.Next() {
		var interaction domain.Interaction

		err := rows.Scan(
			&interaction.ID,
			&interaction.UserID,
			&interaction.AgentName,
			&interaction.Kind,
			&interaction.Content,
			&interaction.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan interaction row", slog.String("error", err.Error()))
			return nil, err
		}

		interactions = append(interactions, &interaction)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if interactions == nil {
		interactions = []*domain.Interaction{}
	}

	return interactions, nil
}

// WithTx implements store.InteractionStore.WithTx
func (s *PostgresInteractionStore) WithTx(tx *sql.Tx) store.InteractionStore {
	return &PostgresInteractionStore{
		db:     tx,
		logger: s.logger,
	}
}
