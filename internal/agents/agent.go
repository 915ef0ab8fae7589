package agents

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Common agent errors.
var (
	ErrEmptyMessage = errors.New("message cannot be empty")
	ErrNilModel     = errors.New("model client cannot be nil")
	ErrUnknownAgent = errors.New("unknown agent type")
)

// StudentContext carries the profile data used to personalize an agent's
// system prompt. Zero-value fields are omitted from the prompt.
type StudentContext struct {
	FirstName      string
	LearningStyle  string
	EducationLevel string
	Subject        string
	Level          int
}

// Agent is one persona over the shared language model. The persona is
// entirely defined by its system prompt; all agents share the same
// processing loop.
type Agent struct {
	name         string
	systemPrompt string
	model        ModelClient
	logger       *slog.Logger
}

// newAgent builds an agent with the given persona. Use the Registry to get
// agents by type instead of constructing them directly.
func newAgent(name, systemPrompt string, model ModelClient, logger *slog.Logger) (*Agent, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Agent{
		name:         name,
		systemPrompt: systemPrompt,
		model:        model,
		logger:       logger.With(slog.String("agent", name)),
	}, nil
}

// Name returns the agent's display name.
func (a *Agent) Name() string {
	return a.name
}

// ProcessMessage sends the message to the model under this agent's persona,
// personalized with the student context, and returns the response text.
func (a *Agent) ProcessMessage(ctx context.Context, message string, sc *StudentContext) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrEmptyMessage
	}

	prompt := a.formatSystemPrompt(sc)

	a.logger.DebugContext(ctx, "processing message",
		slog.Int("message_length", len(message)))

	response, err := a.model.Generate(ctx, prompt, message)
	if err != nil {
		a.logger.ErrorContext(ctx, "model call failed",
			slog.String("error", err.Error()))
		return "", fmt.Errorf("agent %s: %w", a.name, err)
	}

	a.logger.DebugContext(ctx, "message processed",
		slog.Int("response_length", len(response)))
	return response, nil
}

// formatSystemPrompt appends the student context to the persona prompt so
// responses are adapted to the student's level and learning style.
func (a *Agent) formatSystemPrompt(sc *StudentContext) string {
	if sc == nil {
		return a.systemPrompt
	}

	var b strings.Builder
	b.WriteString(a.systemPrompt)
	b.WriteString("\n\nContexto del estudiante:\n")
	if sc.FirstName != "" {
		fmt.Fprintf(&b, "- nombre: %s\n", sc.FirstName)
	}
	if sc.LearningStyle != "" {
		fmt.Fprintf(&b, "- estilo de aprendizaje: %s\n", sc.LearningStyle)
	}
	if sc.EducationLevel != "" {
		fmt.Fprintf(&b, "- nivel educativo: %s\n", sc.EducationLevel)
	}
	if sc.Subject != "" {
		fmt.Fprintf(&b, "- materia: %s\n", sc.Subject)
	}
	if sc.Level > 0 {
		fmt.Fprintf(&b, "- nivel actual: %d\n", sc.Level)
	}
	return b.String()
}
