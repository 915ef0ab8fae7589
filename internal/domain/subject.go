package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Subject.
var (
	ErrEmptySubjectID   = errors.New("subject ID cannot be empty")
	ErrEmptySubjectName = errors.New("subject name cannot be empty")
)

// Subject is a curriculum area (mathematics, science, ...) that content,
// evaluations and progress records hang off.
type Subject struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewSubject creates a Subject with the given name and description.
func NewSubject(name, description string) (*Subject, error) {
	subject := &Subject{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := subject.Validate(); err != nil {
		return nil, err
	}

	return subject, nil
}

// Validate checks if the Subject has valid data.
func (s *Subject) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySubjectID
	}
	if s.Name == "" {
		return ErrEmptySubjectName
	}
	return nil
}
