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

// PostgresResourceStore implements the store.ResourceStore interface
// using a PostgreSQL database as the storage backend.
type PostgresResourceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresResourceStore creates a new PostgreSQL implementation of the
// ResourceStore interface. If logger is nil, a default logger will be used.
func NewPostgresResourceStore(db store.DBTX, logger *slog.Logger) *PostgresResourceStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResourceStore{
		db:     db,
		logger: logger.With(slog.String("component", "resource_store")),
	}
}

// Ensure PostgresResourceStore implements store.ResourceStore interface
var _ store.ResourceStore = (*PostgresResourceStore)(nil)

// Create implements store.ResourceStore.Create
// Returns store.ErrInvalidEntity if the subject does not exist.
func (s *PostgresResourceStore) Create(ctx context.Context, resource *domain.Resource) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := resource.Validate(); err != nil {
		log.Warn("resource validation failed during create",
			slog.String("error", err.Error()),
			slog.String("resource_id", resource.ID.String()))
		return err
	}

	query := `
		INSERT INTO resources (id, title, kind, url, content, subject_id, level, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		resource.ID,
		resource.Title,
		resource.Kind,
		resource.URL,
		resource.Content,
		resource.SubjectID,
		resource.Level,
		resource.CreatedAt,
	)

	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during resource creation",
				slog.String("subject_id", resource.SubjectID.String()))
			return fmt.Errorf("%w: subject with ID %s not found",
				store.ErrInvalidEntity, resource.SubjectID)
		}

		log.Error("failed to create resource",
			slog.String("error", err.Error()),
			slog.String("resource_id", resource.ID.String()))
		return err
	}

	log.Info("resource created successfully",
		slog.String("resource_id", resource.ID.String()),
		slog.String("title", resource.Title),
		slog.String("kind", string(resource.Kind)))
	return nil
}

// List implements store.ResourceStore.List
// Both filters are optional; nil means unfiltered.
func (s *PostgresResourceStore) List(
	ctx context.Context,
	subjectID *uuid.UUID,
	level *int,
) ([]*domain.Resource, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, title, kind, url, content, subject_id, level, created_at
		FROM resources
		WHERE 1=1
	`
	var args []any

	if subjectID != nil {
		args = append(args, *subjectID)
		query += fmt.Sprintf(` AND subject_id = $%d`, len(args))
	}
	if level != nil {
		args = append(args, *level)
		query += fmt.Sprintf(` AND level = $%d`, len(args))
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list resources", slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var resources []*domain.Resource
	for rows.Next() {
		var resource domain.Resource
		var kind string

		err := rows.Scan(
			&resource.ID,
			&resource.Title,
			&kind,
			&resource.URL,
			&resource.Content,
			&resource.SubjectID,
			&resource.Level,
			&resource.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan resource row", slog.String("error", err.Error()))
			return nil, err
		}

		resource.Kind = domain.ResourceKind(kind)
		resources = append(resources, &resource)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	if resources == nil {
		resources = []*domain.Resource{}
	}

	return resources, nil
}

// WithTx implements store.ResourceStore.WithTx
func (s *PostgresResourceStore) WithTx(tx *sql.Tx) store.ResourceStore {
	return &PostgresResourceStore{
		db:     tx,
		logger: s.logger,
	}
}
