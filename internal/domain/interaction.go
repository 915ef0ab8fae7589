package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Interaction.
var (
	ErrEmptyInteractionID   = errors.New("interaction ID cannot be empty")
	ErrEmptyInteractionUser = errors.New("interaction user ID cannot be empty")
	ErrEmptyInteractionKind = errors.New("interaction kind cannot be empty")
	ErrEmptyAgentName       = errors.New("interaction agent name cannot be empty")
)

// Interaction is an audit record of one exchange between a student and an
// agent (or a generation request on the student's behalf).
type Interaction struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	AgentName string    `json:"agent_name"`
	Kind      string    `json:"kind"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// NewInteraction creates an Interaction record.
func NewInteraction(userID uuid.UUID, agentName, kind, content string) (*Interaction, error) {
	interaction := &Interaction{
		ID:        uuid.New(),
		UserID:    userID,
		AgentName: agentName,
		Kind:      kind,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}

	if err := interaction.Validate(); err != nil {
		return nil, err
	}

	return interaction, nil
}

// Validate checks if the Interaction has valid data.
func (i *Interaction) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyInteractionID
	}
	if i.UserID == uuid.Nil {
		return ErrEmptyInteractionUser
	}
	if i.AgentName == "" {
		return ErrEmptyAgentName
	}
	if i.Kind == "" {
		return ErrEmptyInteractionKind
	}
	return nil
}
