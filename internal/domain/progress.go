package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ProgressState represents how far a student has advanced through a topic.
type ProgressState string

// Possible progress states.
const (
	ProgressNotStarted ProgressState = "not_started"
	ProgressInProgress ProgressState = "in_progress"
	ProgressCompleted  ProgressState = "completed"
)

// Common validation errors for Progress.
var (
	ErrEmptyProgressID      = errors.New("progress ID cannot be empty")
	ErrEmptyProgressUserID  = errors.New("progress user ID cannot be empty")
	ErrEmptyProgressSubject = errors.New("progress subject ID cannot be empty")
	ErrEmptyProgressTopic   = errors.New("progress topic cannot be empty")
	ErrInvalidProgressState = errors.New("invalid progress state")
	ErrInvalidPercent       = errors.New("percent complete must be between 0 and 100")
)

// Progress tracks a student's advancement through one topic (and optional
// subtopic) of a subject.
type Progress struct {
	ID              uuid.UUID     `json:"id"`
	UserID          uuid.UUID     `json:"user_id"`
	SubjectID       uuid.UUID     `json:"subject_id"`
	Topic           string        `json:"topic"`
	Subtopic        string        `json:"subtopic,omitempty"`
	State           ProgressState `json:"state"`
	PercentComplete float64       `json:"percent_complete"`
	LastActivityAt  time.Time     `json:"last_activity_at"`
}

// NewProgress creates a Progress record for the given user, subject and topic.
func NewProgress(
	userID, subjectID uuid.UUID,
	topic, subtopic string,
	state ProgressState,
	percentComplete float64,
) (*Progress, error) {
	progress := &Progress{
		ID:              uuid.New(),
		UserID:          userID,
		SubjectID:       subjectID,
		Topic:           topic,
		Subtopic:        subtopic,
		State:           state,
		PercentComplete: percentComplete,
		LastActivityAt:  time.Now().UTC(),
	}

	if err := progress.Validate(); err != nil {
		return nil, err
	}

	return progress, nil
}

// Validate checks if the Progress record has valid data.
func (p *Progress) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProgressID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProgressUserID
	}
	if p.SubjectID == uuid.Nil {
		return ErrEmptyProgressSubject
	}
	if p.Topic == "" {
		return ErrEmptyProgressTopic
	}
	if !isValidProgressState(p.State) {
		return ErrInvalidProgressState
	}
	if p.PercentComplete < 0 || p.PercentComplete > 100 {
		return ErrInvalidPercent
	}
	return nil
}

// Advance updates the state and completion percentage, refreshing the
// last-activity timestamp.
func (p *Progress) Advance(state ProgressState, percentComplete float64) error {
	if !isValidProgressState(state) {
		return ErrInvalidProgressState
	}
	if percentComplete < 0 || percentComplete > 100 {
		return ErrInvalidPercent
	}

	p.State = state
	p.PercentComplete = percentComplete
	p.LastActivityAt = time.Now().UTC()
	return nil
}

func isValidProgressState(state ProgressState) bool {
	switch state {
	case ProgressNotStarted, ProgressInProgress, ProgressCompleted:
		return true
	default:
		return false
	}
}
