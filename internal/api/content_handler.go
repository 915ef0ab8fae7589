package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/msoledad/aula-api/internal/api/shared"
	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/store"
	"github.com/msoledad/aula-api/internal/task"
)

// ContentHandler handles curriculum browsing and asynchronous content
// generation requests.
type ContentHandler struct {
	subjectStore  store.SubjectStore
	resourceStore store.ResourceStore
	tasks         TaskService
}

// NewContentHandler creates a ContentHandler.
func NewContentHandler(
	subjectStore store.SubjectStore,
	resourceStore store.ResourceStore,
	tasks TaskService,
) *ContentHandler {
	return &ContentHandler{
		subjectStore:  subjectStore,
		resourceStore: resourceStore,
		tasks:         tasks,
	}
}

// ListSubjects handles GET /api/content/subjects.
func (h *ContentHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	subjects, err := h.subjectStore.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list subjects")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, subjects)
}

// GenerateContent handles POST /api/content/generate. The request is
// queued for the generation worker and acknowledged with 202 Accepted;
// clients poll the task endpoint for the result.
func (h *ContentHandler) GenerateContent(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req GenerateContentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	data := map[string]any{
		"user_id": userID.String(),
		"subject": req.Subject,
	}
	if req.Topic != "" {
		data["topic"] = req.Topic
	}
	if req.Level != "" {
		data["level"] = req.Level
	}
	if req.LearningStyle != "" {
		data["learning_style"] = req.LearningStyle
	}
	if req.NumExercises > 0 {
		data["num_exercises"] = req.NumExercises
	}
	if req.NumQuestions > 0 {
		data["num_questions"] = req.NumQuestions
	}
	if len(req.Topics) > 0 {
		data["topics"] = req.Topics
	}

	taskID, err := h.tasks.Enqueue(req.Type, data)
	if err != nil {
		slog.Error("failed to enqueue generation task",
			"error", err,
			"task_type", req.Type,
			"user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to queue content generation")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskResponse{
		TaskID: taskID,
		Status: string(task.StatusPending),
	})
}

// GetTask handles GET /api/content/tasks/{id}, returning the task's
// current status and, once terminal, its result or error.
func (h *ContentHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireUserID(w, r); !ok {
		return
	}

	taskID, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result := h.tasks.GetResult(taskID)
	if result.Status == task.StatusNotFound {
		shared.RespondWithError(w, r, http.StatusNotFound, "Task not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// ListResources handles GET /api/content/resources with optional
// subject_id and level query filters.
func (h *ContentHandler) ListResources(w http.ResponseWriter, r *http.Request) {
	subjectID, err := queryUUID(r, "subject_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var level *int
	if raw := r.URL.Query().Get("level"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			HandleAPIError(w, r,
				domain.NewValidationError("level", "must be a positive integer", domain.ErrValidation), "")
			return
		}
		level = &parsed
	}

	resources, err := h.resourceStore.List(r.Context(), subjectID, level)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list resources")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, resources)
}
