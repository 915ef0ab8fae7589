package api

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest is the payload for user registration.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest is the payload for user login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse is the successful response for register and login.
type AuthResponse struct {
	UserID       uuid.UUID `json:"user_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    string    `json:"expires_at,omitempty"`
}

// RefreshTokenRequest is the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// UserResponse is the public projection of a user account.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// ChangePasswordRequest is the payload for the password change endpoint.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,max=72"`
}

// ProfileRequest is the payload for creating or updating a student
// profile. BirthDate is an ISO date string (2006-01-02).
type ProfileRequest struct {
	FirstName      string `json:"first_name"      validate:"required,min=1,max=100"`
	LastName       string `json:"last_name"       validate:"required,min=1,max=100"`
	BirthDate      string `json:"birth_date"      validate:"omitempty,datetime=2006-01-02"`
	LearningStyle  string `json:"learning_style"  validate:"omitempty,max=50"`
	EducationLevel string `json:"education_level" validate:"omitempty,max=100"`
}

// GenerateContentRequest is the payload for the asynchronous content
// generation endpoint. Type selects what the worker produces.
type GenerateContentRequest struct {
	Type          string   `json:"type"           validate:"required,oneof=lesson_generation exercise_generation evaluation_generation resource_recommendation"`
	Subject       string   `json:"subject"        validate:"required,min=1"`
	Topic         string   `json:"topic"          validate:"omitempty,min=1"`
	Level         string   `json:"level"          validate:"omitempty"`
	LearningStyle string   `json:"learning_style" validate:"omitempty"`
	NumExercises  int      `json:"num_exercises"  validate:"omitempty,gte=1,lte=20"`
	NumQuestions  int      `json:"num_questions"  validate:"omitempty,gte=1,lte=50"`
	Topics        []string `json:"topics"         validate:"omitempty,dive,min=1"`
}

// TaskResponse acknowledges an accepted asynchronous task.
type TaskResponse struct {
	TaskID uuid.UUID `json:"task_id"`
	Status string    `json:"status"`
}

// ProgressUpdateRequest is the payload for recording topic progress.
type ProgressUpdateRequest struct {
	SubjectID       uuid.UUID `json:"subject_id"       validate:"required"`
	Topic           string    `json:"topic"            validate:"required,min=1"`
	Subtopic        string    `json:"subtopic"         validate:"omitempty"`
	State           string    `json:"state"            validate:"required,oneof=not_started in_progress completed"`
	PercentComplete float64   `json:"percent_complete" validate:"gte=0,lte=100"`
}

// EvaluationSubmitRequest is the payload for recording an evaluation
// result.
type EvaluationSubmitRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
	Level     int       `json:"level"      validate:"required,gte=1"`
	Score     float64   `json:"score"      validate:"gte=0,lte=100"`
}

// EvaluateRequest is the payload for generating an evaluation quiz
// asynchronously.
type EvaluateRequest struct {
	Subject      string   `json:"subject"       validate:"required,min=1"`
	Topics       []string `json:"topics"        validate:"omitempty,dive,min=1"`
	Level        string   `json:"level"         validate:"omitempty"`
	NumQuestions int      `json:"num_questions" validate:"omitempty,gte=1,lte=50"`
}

// AnalyzeRequest is the payload for the asynchronous progress analysis
// endpoint.
type AnalyzeRequest struct {
	SubjectID uuid.UUID `json:"subject_id" validate:"required"`
}

// AskRequest is the payload for free-form questions routed through the
// coordinator agent.
type AskRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// AskResponse carries the specialist agent's answer.
type AskResponse struct {
	Response string `json:"response"`
	Agent    string `json:"agent"`
}
