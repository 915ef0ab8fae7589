package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ResourceKind classifies an educational resource.
type ResourceKind string

// Possible resource kinds.
const (
	ResourceVideo       ResourceKind = "video"
	ResourceReading     ResourceKind = "reading"
	ResourceInteractive ResourceKind = "interactive"
	ResourcePractice    ResourceKind = "practice"
	ResourceOther       ResourceKind = "other"
)

// Common validation errors for Resource.
var (
	ErrEmptyResourceID      = errors.New("resource ID cannot be empty")
	ErrEmptyResourceTitle   = errors.New("resource title cannot be empty")
	ErrEmptyResourceSubject = errors.New("resource subject ID cannot be empty")
	ErrInvalidResourceKind  = errors.New("invalid resource kind")
	ErrInvalidResourceLevel = errors.New("resource level must be at least 1")
)

// Resource is an educational material (video, reading, exercise set, ...)
// attached to a subject at a difficulty level. Either URL or inline Content
// may be set; generated resources usually carry Content only.
type Resource struct {
	ID        uuid.UUID    `json:"id"`
	Title     string       `json:"title"`
	Kind      ResourceKind `json:"kind"`
	URL       string       `json:"url,omitempty"`
	Content   string       `json:"content,omitempty"`
	SubjectID uuid.UUID    `json:"subject_id"`
	Level     int          `json:"level"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewResource creates a Resource for the given subject.
func NewResource(
	title string,
	kind ResourceKind,
	url, content string,
	subjectID uuid.UUID,
	level int,
) (*Resource, error) {
	resource := &Resource{
		ID:        uuid.New(),
		Title:     title,
		Kind:      kind,
		URL:       url,
		Content:   content,
		SubjectID: subjectID,
		Level:     level,
		CreatedAt: time.Now().UTC(),
	}

	if err := resource.Validate(); err != nil {
		return nil, err
	}

	return resource, nil
}

// Validate checks if the Resource has valid data.
func (r *Resource) Validate() error {
	if r.ID == uuid.Nil {
		return ErrEmptyResourceID
	}
	if r.Title == "" {
		return ErrEmptyResourceTitle
	}
	if !isValidResourceKind(r.Kind) {
		return ErrInvalidResourceKind
	}
	if r.SubjectID == uuid.Nil {
		return ErrEmptyResourceSubject
	}
	if r.Level < 1 {
		return ErrInvalidResourceLevel
	}
	return nil
}

func isValidResourceKind(kind ResourceKind) bool {
	switch kind {
	case ResourceVideo, ResourceReading, ResourceInteractive, ResourcePractice, ResourceOther:
		return true
	default:
		return false
	}
}
