package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Evaluation.
var (
	ErrEmptyEvaluationID     = errors.New("evaluation ID cannot be empty")
	ErrEmptyEvaluationUser   = errors.New("evaluation user ID cannot be empty")
	ErrEmptyEvaluationSubj   = errors.New("evaluation subject ID cannot be empty")
	ErrInvalidEvaluationLvl  = errors.New("evaluation level must be at least 1")
	ErrInvalidEvaluationScor = errors.New("evaluation score must be between 0 and 100")
)

// Evaluation records the outcome of a graded assessment a student took
// for a subject at a given difficulty level.
type Evaluation struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	SubjectID uuid.UUID `json:"subject_id"`
	Level     int       `json:"level"`
	Score     float64   `json:"score"`
	TakenAt   time.Time `json:"taken_at"`
}

// NewEvaluation creates an Evaluation for the given user and subject.
func NewEvaluation(userID, subjectID uuid.UUID, level int, score float64) (*Evaluation, error) {
	eval := &Evaluation{
		ID:        uuid.New(),
		UserID:    userID,
		SubjectID: subjectID,
		Level:     level,
		Score:     score,
		TakenAt:   time.Now().UTC(),
	}

	if err := eval.Validate(); err != nil {
		return nil, err
	}

	return eval, nil
}

// Validate checks if the Evaluation has valid data.
func (e *Evaluation) Validate() error {
	if e.ID == uuid.Nil {
		return ErrEmptyEvaluationID
	}
	if e.UserID == uuid.Nil {
		return ErrEmptyEvaluationUser
	}
	if e.SubjectID == uuid.Nil {
		return ErrEmptyEvaluationSubj
	}
	if e.Level < 1 {
		return ErrInvalidEvaluationLvl
	}
	if e.Score < 0 || e.Score > 100 {
		return ErrInvalidEvaluationScor
	}
	return nil
}
