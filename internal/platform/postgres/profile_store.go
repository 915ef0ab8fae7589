package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/platform/logger"
	"github.com/msoledad/aula-api/internal/store"
)

// PostgresProfileStore implements the store.ProfileStore interface
// using a PostgreSQL database as the storage backend.
type PostgresProfileStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresProfileStore creates a new PostgreSQL implementation of the
// ProfileStore interface. If logger is nil, a default logger will be used.
func NewPostgresProfileStore(db store.DBTX, logger *slog.Logger) *PostgresProfileStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresProfileStore{
		db:     db,
		logger: logger.With(slog.String("component", "profile_store")),
	}
}

// Ensure PostgresProfileStore implements store.ProfileStore interface
var _ store.ProfileStore = (*PostgresProfileStore)(nil)

// Create implements store.ProfileStore.Create
// Returns store.ErrProfileExists if the user already has a profile and
// store.ErrInvalidEntity if the user does not exist.
func (s *PostgresProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during create",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		INSERT INTO profiles (id, user_id, first_name, last_name, birth_date,
			learning_style, education_level, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		profile.ID,
		profile.UserID,
		profile.FirstName,
		profile.LastName,
		profile.BirthDate,
		profile.LearningStyle,
		profile.EducationLevel,
		profile.CreatedAt,
		profile.UpdatedAt,
	)

	if err != nil {
		if IsUniqueViolation(err) {
			log.Warn("user already has a profile",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: %v", store.ErrProfileExists, err)
		}
		if IsForeignKeyViolation(err) {
			log.Warn("foreign key violation during profile creation",
				slog.String("user_id", profile.UserID.String()))
			return fmt.Errorf("%w: user with ID %s not found",
				store.ErrInvalidEntity, profile.UserID)
		}

		log.Error("failed to create profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	log.Info("profile created successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// GetByUserID implements store.ProfileStore.GetByUserID
// Returns store.ErrProfileNotFound if the user has no profile.
func (s *PostgresProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving profile by user ID", slog.String("user_id", userID.String()))

	query := `
		SELECT id, user_id, first_name, last_name, birth_date,
			learning_style, education_level, created_at, updated_at
		FROM profiles
		WHERE user_id = $1
	`

	var profile domain.Profile
	var learningStyle string

	err := s.db.QueryRowContext(ctx, query, userID).Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FirstName,
		&profile.LastName,
		&profile.BirthDate,
		&learningStyle,
		&profile.EducationLevel,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("profile not found", slog.String("user_id", userID.String()))
			return nil, store.ErrProfileNotFound
		}
		log.Error("failed to get profile by user ID",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, err
	}

	profile.LearningStyle = domain.LearningStyle(learningStyle)

	return &profile, nil
}

// Update implements store.ProfileStore.Update
// Returns store.ErrProfileNotFound if the user has no profile.
func (s *PostgresProfileStore) Update(ctx context.Context, profile *domain.Profile) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := profile.Validate(); err != nil {
		log.Warn("profile validation failed during update",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	query := `
		UPDATE profiles
		SET first_name = $1, last_name = $2, birth_date = $3,
			learning_style = $4, education_level = $5, updated_at = $6
		WHERE user_id = $7
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		profile.FirstName,
		profile.LastName,
		profile.BirthDate,
		profile.LearningStyle,
		profile.EducationLevel,
		time.Now().UTC(),
		profile.UserID,
	)

	if err != nil {
		log.Error("failed to update profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profile.ID.String()))
		return err
	}

	if err := CheckRowsAffected(result, store.ErrProfileNotFound); err != nil {
		log.Debug("profile not found for update",
			slog.String("user_id", profile.UserID.String()))
		return err
	}

	log.Info("profile updated successfully",
		slog.String("profile_id", profile.ID.String()),
		slog.String("user_id", profile.UserID.String()))
	return nil
}

// WithTx implements store.ProfileStore.WithTx
func (s *PostgresProfileStore) WithTx(tx *sql.Tx) store.ProfileStore {
	return &PostgresProfileStore{
		db:     tx,
		logger: s.logger,
	}
}
