package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/msoledad/aula-api/internal/api/shared"
	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/store"
	"github.com/msoledad/aula-api/internal/task"
)

// analysisEvaluationWindow is how many recent evaluations feed the
// progress analysis summary.
const analysisEvaluationWindow = 10

// ProgressHandler handles progress tracking, evaluation records, and
// asynchronous evaluation generation and progress analysis.
type ProgressHandler struct {
	progressStore   store.ProgressStore
	evaluationStore store.EvaluationStore
	profileStore    store.ProfileStore
	subjectStore    store.SubjectStore
	tasks           TaskService
}

// NewProgressHandler creates a ProgressHandler.
func NewProgressHandler(
	progressStore store.ProgressStore,
	evaluationStore store.EvaluationStore,
	profileStore store.ProfileStore,
	subjectStore store.SubjectStore,
	tasks TaskService,
) *ProgressHandler {
	return &ProgressHandler{
		progressStore:   progressStore,
		evaluationStore: evaluationStore,
		profileStore:    profileStore,
		subjectStore:    subjectStore,
		tasks:           tasks,
	}
}

// UpdateProgress handles PUT /api/progress, upserting the record keyed
// by (user, subject, topic, subtopic).
func (h *ProgressHandler) UpdateProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req ProgressUpdateRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	progress, err := domain.NewProgress(
		userID,
		req.SubjectID,
		req.Topic,
		req.Subtopic,
		domain.ProgressState(req.State),
		req.PercentComplete,
	)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.progressStore.Upsert(r.Context(), progress); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, progress)
}

// ListProgress handles GET /api/progress with an optional subject_id
// query filter.
func (h *ProgressHandler) ListProgress(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	subjectID, err := queryUUID(r, "subject_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	records, err := h.progressStore.ListByUser(r.Context(), userID, subjectID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list progress")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, records)
}

// SubmitEvaluation handles POST /api/progress/evaluations, recording a
// completed evaluation result.
func (h *ProgressHandler) SubmitEvaluation(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req EvaluationSubmitRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	eval, err := domain.NewEvaluation(userID, req.SubjectID, req.Level, req.Score)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.evaluationStore.Create(r.Context(), eval); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, eval)
}

// ListEvaluations handles GET /api/progress/evaluations with optional
// subject_id and limit query parameters.
func (h *ProgressHandler) ListEvaluations(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	subjectID, err := queryUUID(r, "subject_id")
	if err != nil {
		HandleAPIError(w, r, err, "")
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

	evals, err := h.evaluationStore.ListByUser(r.Context(), userID, subjectID, limit)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list evaluations")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, evals)
}

// Evaluate handles POST /api/progress/evaluate, queueing generation of
// an evaluation quiz. Acknowledged with 202 Accepted.
func (h *ProgressHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req EvaluateRequest
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
	if len(req.Topics) > 0 {
		data["topics"] = req.Topics
	}
	if req.Level != "" {
		data["level"] = req.Level
	}
	if req.NumQuestions > 0 {
		data["num_questions"] = req.NumQuestions
	}

	taskID, err := h.tasks.Enqueue(task.TypeEvaluationGeneration, data)
	if err != nil {
		slog.Error("failed to enqueue evaluation task", "error", err, "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to queue evaluation")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskResponse{
		TaskID: taskID,
		Status: string(task.StatusPending),
	})
}

// Analyze handles POST /api/progress/analyze. It assembles the student's
// recent evaluation history for the subject and queues a progress
// analysis task. Acknowledged with 202 Accepted.
func (h *ProgressHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req AnalyzeRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	subject, err := h.subjectStore.GetByID(r.Context(), req.SubjectID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	evals, err := h.evaluationStore.ListByUser(r.Context(), userID, &req.SubjectID, analysisEvaluationWindow)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to load evaluations")
		return
	}
	if len(evals) == 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "No evaluations recorded for this subject")
		return
	}

	data := map[string]any{
		"user_id":            userID.String(),
		"subject":            subject.Name,
		"evaluation_summary": buildEvaluationSummary(evals),
	}

	// Profile data personalizes the analysis but is not required.
	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	switch {
	case err == nil:
		data["first_name"] = profile.FirstName
		data["learning_style"] = string(profile.LearningStyle)
		data["education_level"] = profile.EducationLevel
	case !errors.Is(err, store.ErrProfileNotFound):
		HandleAPIError(w, r, err, "")
		return
	}

	taskID, err := h.tasks.Enqueue(task.TypeProgressAnalysis, data)
	if err != nil {
		slog.Error("failed to enqueue analysis task", "error", err, "user_id", userID)
		shared.RespondWithError(w, r, http.StatusInternalServerError, "Failed to queue progress analysis")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskResponse{
		TaskID: taskID,
		Status: string(task.StatusPending),
	})
}

// buildEvaluationSummary renders recent evaluations as prompt-ready
// lines, newest first.
func buildEvaluationSummary(evals []*domain.Evaluation) string {
	var b strings.Builder
	for i, e := range evals {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "- %s: nivel %d, puntaje %.1f",
			e.TakenAt.Format("2006-01-02"), e.Level, e.Score)
	}
	return b.String()
}
