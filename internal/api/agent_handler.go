package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/msoledad/aula-api/internal/agents"
	"github.com/msoledad/aula-api/internal/api/shared"
	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/store"
)

// AgentHandler routes free-form student questions through the
// coordinator agent and exposes the interaction history.
type AgentHandler struct {
	coordinator  *agents.Coordinator
	profileStore store.ProfileStore
	interactions store.InteractionStore
}

// NewAgentHandler creates an AgentHandler.
func NewAgentHandler(
	coordinator *agents.Coordinator,
	profileStore store.ProfileStore,
	interactions store.InteractionStore,
) *AgentHandler {
	return &AgentHandler{
		coordinator:  coordinator,
		profileStore: profileStore,
		interactions: interactions,
	}
}

// Ask handles POST /api/agents/ask. The coordinator assesses the
// question, routes it to a specialist, and the answer is returned
// synchronously.
func (h *AgentHandler) Ask(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	// Personalize with the student's profile when one exists.
	var sc *agents.StudentContext
	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	switch {
	case err == nil:
		sc = &agents.StudentContext{
			FirstName:      profile.FirstName,
			LearningStyle:  string(profile.LearningStyle),
			EducationLevel: profile.EducationLevel,
		}
	case !errors.Is(err, store.ErrProfileNotFound):
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.coordinator.ProcessQuery(r.Context(), userID, req.Message, sc)
	if err != nil {
		if errors.Is(err, agents.ErrEmptyMessage) {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Message cannot be empty")
			return
		}
		HandleAPIError(w, r, err, "Failed to answer question")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AskResponse{
		Response: result.Response,
		Agent:    string(result.Agent),
	})
}

// ListInteractions handles GET /api/agents/interactions with an
// optional limit query parameter.
func (h *AgentHandler) ListInteractions(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			HandleAPIError(w, r,
				domain.NewValidationError("limit", "must be a positive integer", domain.ErrValidation), "")
			return
		}
		limit = parsed
	}

	records, err := h.interactions.ListByUser(r.Context(), userID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list interactions")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}
