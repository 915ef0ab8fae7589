package agents

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/store"
)

// QueryResult is the outcome of routing one student query through the
// coordinator to a specialized agent.
type QueryResult struct {
	// Response is the specialist agent's answer to the query.
	Response string `json:"response"`
	// Agent is the type of the agent that produced the response.
	Agent Type `json:"agent"`
	// Assessment is the coordinator's routing assessment of the query.
	Assessment string `json:"assessment"`
}

// Coordinator routes student queries: the coordinator agent assesses the
// query, a keyword heuristic picks the specialist, and the specialist
// produces the response. Each exchange is recorded as an interaction.
type Coordinator struct {
	registry     *Registry
	interactions store.InteractionStore
	logger       *slog.Logger
}

// NewCoordinator creates a Coordinator. The interaction store may be nil,
// in which case exchanges are not recorded.
func NewCoordinator(
	registry *Registry,
	interactions store.InteractionStore,
	logger *slog.Logger,
) (*Coordinator, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Coordinator{
		registry:     registry,
		interactions: interactions,
		logger:       logger.With(slog.String("component", "coordinator")),
	}, nil
}

// ProcessQuery routes the query to the right agent and returns its response.
func (c *Coordinator) ProcessQuery(
	ctx context.Context,
	userID uuid.UUID,
	query string,
	sc *StudentContext,
) (*QueryResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyMessage
	}

	coordinator, err := c.registry.Agent(TypeCoordinator)
	if err != nil {
		return nil, err
	}

	assessment, err := coordinator.ProcessMessage(ctx,
		fmt.Sprintf("Analiza esta consulta y determina qué agente especializado debería atenderla: %s", query),
		sc)
	if err != nil {
		return nil, fmt.Errorf("coordinator assessment failed: %w", err)
	}

	agentType := determineAgentType(assessment, query)
	c.logger.InfoContext(ctx, "query routed",
		slog.String("agent", string(agentType)),
		slog.String("user_id", userID.String()))

	agent := coordinator
	if agentType != TypeCoordinator {
		agent, err = c.registry.Agent(agentType)
		if err != nil {
			return nil, err
		}
	}

	response, err := agent.ProcessMessage(ctx, query, sc)
	if err != nil {
		return nil, err
	}

	c.recordInteraction(ctx, userID, agent.Name(), query, response)

	return &QueryResult{
		Response:   response,
		Agent:      agentType,
		Assessment: assessment,
	}, nil
}

// recordInteraction saves the exchange as an audit record. Failures are
// logged but do not fail the query; the student already has the response.
func (c *Coordinator) recordInteraction(
	ctx context.Context,
	userID uuid.UUID,
	agentName, query, response string,
) {
	if c.interactions == nil {
		return
	}

	content := fmt.Sprintf("Usuario: %s\nAgente: %s", query, response)
	interaction, err := domain.NewInteraction(userID, agentName, "mensaje", content)
	if err != nil {
		c.logger.WarnContext(ctx, "failed to build interaction record",
			slog.String("error", err.Error()))
		return
	}

	if err := c.interactions.Create(ctx, interaction); err != nil {
		c.logger.WarnContext(ctx, "failed to record interaction",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
	}
}

// assessmentKeywords and queryKeywords map each specialist to the terms that
// select it. The coordinator's assessment is checked first, then the raw query.
var assessmentKeywords = []struct {
	agent Type
	terms []string
}{
	{TypeMathematics, []string{"matemática", "cálculo", "algebra", "álgebra"}},
	{TypeScience, []string{"ciencia", "física", "química", "biología"}},
	{TypeLanguage, []string{"lenguaje", "gramática", "literatura", "escritura"}},
	{TypeHistory, []string{"historia", "histórico"}},
	{TypeFeedback, []string{"progreso", "avance", "rendimiento"}},
}

var queryKeywords = []struct {
	agent Type
	terms []string
}{
	{TypeMathematics, []string{"matemática", "ecuación", "problema", "cálculo", "geometría", "estadística"}},
	{TypeScience, []string{"ciencia", "física", "química", "biología", "experimento"}},
	{TypeLanguage, []string{"lenguaje", "gramática", "literatura", "escribir", "redacción"}},
	{TypeHistory, []string{"historia", "civilización", "revolución"}},
	{TypeFeedback, []string{"progreso", "avance", "evaluación", "mejorar"}},
}

// determineAgentType picks the specialist for a query. Keyword matching is a
// simple heuristic; the coordinator's own assessment takes precedence over
// terms in the raw query. Falls back to the coordinator when nothing matches.
func determineAgentType(assessment, query string) Type {
	assessmentLower := strings.ToLower(assessment)
	for _, entry := range assessmentKeywords {
		for _, term := range entry.terms {
			if strings.Contains(assessmentLower, term) {
				return entry.agent
			}
		}
	}

	queryLower := strings.ToLower(query)
	for _, entry := range queryKeywords {
		for _, term := range entry.terms {
			if strings.Contains(queryLower, term) {
				return entry.agent
			}
		}
	}

	return TypeCoordinator
}
