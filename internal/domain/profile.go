package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// LearningStyle classifies how a student prefers to absorb material.
// Free-form values are allowed, but these are the ones the agents know
// how to tailor prompts for.
type LearningStyle string

const (
	LearningStyleVisual      LearningStyle = "visual"
	LearningStyleAuditory    LearningStyle = "auditory"
	LearningStyleReading     LearningStyle = "reading"
	LearningStyleKinesthetic LearningStyle = "kinesthetic"
)

// Common validation errors for Profile.
var (
	ErrEmptyProfileID     = errors.New("profile ID cannot be empty")
	ErrEmptyProfileUserID = errors.New("profile user ID cannot be empty")
	ErrEmptyFirstName     = errors.New("first name cannot be empty")
	ErrEmptyLastName      = errors.New("last name cannot be empty")
)

// Profile holds the student-specific data attached to a user account.
// Learning style and education level feed directly into prompt
// personalization for the content agents.
type Profile struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	FirstName      string        `json:"first_name"`
	LastName       string        `json:"last_name"`
	BirthDate      *time.Time    `json:"birth_date,omitempty"`
	LearningStyle  LearningStyle `json:"learning_style"`
	EducationLevel string        `json:"education_level"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewProfile creates a Profile for the given user.
func NewProfile(
	userID uuid.UUID,
	firstName, lastName string,
	birthDate *time.Time,
	learningStyle LearningStyle,
	educationLevel string,
) (*Profile, error) {
	profile := &Profile{
		ID:             uuid.New(),
		UserID:         userID,
		FirstName:      firstName,
		LastName:       lastName,
		BirthDate:      birthDate,
		LearningStyle:  learningStyle,
		EducationLevel: educationLevel,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrEmptyProfileID
	}
	if p.UserID == uuid.Nil {
		return ErrEmptyProfileUserID
	}
	if p.FirstName == "" {
		return ErrEmptyFirstName
	}
	if p.LastName == "" {
		return ErrEmptyLastName
	}
	return nil
}
