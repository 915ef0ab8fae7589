package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/msoledad/aula-api/internal/domain"
	"github.com/msoledad/aula-api/internal/task"
)

func newTestProgressHandler(
	progress *fakeProgressStore,
	evals *fakeEvaluationStore,
	profiles *fakeProfileStore,
	subjects *fakeSubjectStore,
	tasks *fakeTaskService,
) *ProgressHandler {
	return NewProgressHandler(progress, evals, profiles, subjects, tasks)
}

func TestUpdateProgress(t *testing.T) {
	t.Parallel()

	progress := &fakeProgressStore{}
	h := newTestProgressHandler(progress, &fakeEvaluationStore{}, newFakeProfileStore(),
		&fakeSubjectStore{}, newFakeTaskService())
	userID := uuid.New()
	subjectID := uuid.New()

	r := newAuthedRequest(t, http.MethodPut, "/api/progress", userID, ProgressUpdateRequest{
		SubjectID:       subjectID,
		Topic:           "fracciones",
		Subtopic:        "suma",
		State:           "in_progress",
		PercentComplete: 40,
	})
	w := httptest.NewRecorder()

	h.UpdateProgress(w, r)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Len(t, progress.records, 1)
	assert.Equal(t, userID, progress.records[0].UserID)
	assert.Equal(t, domain.ProgressInProgress, progress.records[0].State)
	assert.Equal(t, 40.0, progress.records[0].PercentComplete)
}

func TestUpdateProgressValidation(t *testing.T) {
	t.Parallel()

	h := newTestProgressHandler(&fakeProgressStore{}, &fakeEvaluationStore{},
		newFakeProfileStore(), &fakeSubjectStore{}, newFakeTaskService())

	tests := []struct {
		name string
		req  ProgressUpdateRequest
	}{
		{"missing subject", ProgressUpdateRequest{Topic: "fracciones", State: "in_progress"}},
		{"missing topic", ProgressUpdateRequest{SubjectID: uuid.New(), State: "in_progress"}},
		{"bad state", ProgressUpdateRequest{SubjectID: uuid.New(), Topic: "fracciones", State: "paused"}},
		{
			"percent out of range",
			ProgressUpdateRequest{SubjectID: uuid.New(), Topic: "fracciones", State: "completed", PercentComplete: 120},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r := newAuthedRequest(t, http.MethodPut, "/api/progress", uuid.New(), tc.req)
			w := httptest.NewRecorder()

			h.UpdateProgress(w, r)

			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestListProgressFiltersBySubject(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	subjectID := uuid.New()

	mine, err := domain.NewProgress(userID, subjectID, "fracciones", "", domain.ProgressInProgress, 40)
	require.NoError(t, err)
	otherSubject, err := domain.NewProgress(userID, uuid.New(), "células", "", domain.ProgressCompleted, 100)
	require.NoError(t, err)

	progress := &fakeProgressStore{records: []*domain.Progress{mine, otherSubject}}
	h := newTestProgressHandler(progress, &fakeEvaluationStore{}, newFakeProfileStore(),
		&fakeSubjectStore{}, newFakeTaskService())

	r := newAuthedRequest(t, http.MethodGet, "/api/progress?subject_id="+subjectID.String(), userID, nil)
	w := httptest.NewRecorder()

	h.ListProgress(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody[[]*domain.Progress](t, w)
	require.Len(t, resp, 1)
	assert.Equal(t, "fracciones", resp[0].Topic)
}

func TestSubmitEvaluation(t *testing.T) {
	t.Parallel()

	evals := &fakeEvaluationStore{}
	h := newTestProgressHandler(&fakeProgressStore{}, evals, newFakeProfileStore(),
		&fakeSubjectStore{}, newFakeTaskService())
	userID := uuid.New()

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/evaluations", userID, EvaluationSubmitRequest{
		SubjectID: uuid.New(),
		Level:     3,
		Score:     87.5,
	})
	w := httptest.NewRecorder()

	h.SubmitEvaluation(w, r)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.Len(t, evals.evals, 1)
	assert.Equal(t, userID, evals.evals[0].UserID)
	assert.Equal(t, 3, evals.evals[0].Level)
	assert.Equal(t, 87.5, evals.evals[0].Score)
}

func TestSubmitEvaluationValidation(t *testing.T) {
	t.Parallel()

	h := newTestProgressHandler(&fakeProgressStore{}, &fakeEvaluationStore{},
		newFakeProfileStore(), &fakeSubjectStore{}, newFakeTaskService())

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/evaluations", uuid.New(),
		EvaluationSubmitRequest{SubjectID: uuid.New(), Level: 0, Score: 50})
	w := httptest.NewRecorder()

	h.SubmitEvaluation(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEvaluateAccepted(t *testing.T) {
	t.Parallel()

	tasks := newFakeTaskService()
	h := newTestProgressHandler(&fakeProgressStore{}, &fakeEvaluationStore{},
		newFakeProfileStore(), &fakeSubjectStore{}, tasks)
	userID := uuid.New()

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/evaluate", userID, EvaluateRequest{
		Subject:      "Matemáticas",
		Topics:       []string{"fracciones", "decimales"},
		Level:        "intermediate",
		NumQuestions: 5,
	})
	w := httptest.NewRecorder()

	h.Evaluate(w, r)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, task.TypeEvaluationGeneration, tasks.lastType)
	assert.Equal(t, "Matemáticas", tasks.lastData["subject"])
	assert.Equal(t, []string{"fracciones", "decimales"}, tasks.lastData["topics"])
	assert.Equal(t, 5, tasks.lastData["num_questions"])
}

func TestAnalyzeAccepted(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	subject, err := domain.NewSubject("Matemáticas", "")
	require.NoError(t, err)

	eval, err := domain.NewEvaluation(userID, subject.ID, 3, 82)
	require.NoError(t, err)

	profile, err := domain.NewProfile(userID, "Sofía", "Martínez", nil,
		domain.LearningStyleVisual, "primaria")
	require.NoError(t, err)

	profiles := newFakeProfileStore()
	profiles.profiles[userID] = profile

	tasks := newFakeTaskService()
	h := newTestProgressHandler(
		&fakeProgressStore{},
		&fakeEvaluationStore{evals: []*domain.Evaluation{eval}},
		profiles,
		&fakeSubjectStore{subjects: []*domain.Subject{subject}},
		tasks,
	)

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/analyze", userID, AnalyzeRequest{
		SubjectID: subject.ID,
	})
	w := httptest.NewRecorder()

	h.Analyze(w, r)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	assert.Equal(t, task.TypeProgressAnalysis, tasks.lastType)
	assert.Equal(t, "Matemáticas", tasks.lastData["subject"])
	assert.Equal(t, "Sofía", tasks.lastData["first_name"])
	assert.Equal(t, "visual", tasks.lastData["learning_style"])

	summary, _ := tasks.lastData["evaluation_summary"].(string)
	assert.Contains(t, summary, "nivel 3")
	assert.Contains(t, summary, "82.0")
}

func TestAnalyzeWithoutProfile(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	subject, err := domain.NewSubject("Ciencias", "")
	require.NoError(t, err)
	eval, err := domain.NewEvaluation(userID, subject.ID, 1, 60)
	require.NoError(t, err)

	tasks := newFakeTaskService()
	h := newTestProgressHandler(
		&fakeProgressStore{},
		&fakeEvaluationStore{evals: []*domain.Evaluation{eval}},
		newFakeProfileStore(),
		&fakeSubjectStore{subjects: []*domain.Subject{subject}},
		tasks,
	)

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/analyze", userID, AnalyzeRequest{
		SubjectID: subject.ID,
	})
	w := httptest.NewRecorder()

	h.Analyze(w, r)

	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())
	_, hasName := tasks.lastData["first_name"]
	assert.False(t, hasName, "missing profile should not block analysis")
}

func TestAnalyzeRequiresEvaluations(t *testing.T) {
	t.Parallel()

	subject, err := domain.NewSubject("Historia", "")
	require.NoError(t, err)

	tasks := newFakeTaskService()
	h := newTestProgressHandler(&fakeProgressStore{}, &fakeEvaluationStore{},
		newFakeProfileStore(), &fakeSubjectStore{subjects: []*domain.Subject{subject}}, tasks)

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/analyze", uuid.New(), AnalyzeRequest{
		SubjectID: subject.ID,
	})
	w := httptest.NewRecorder()

	h.Analyze(w, r)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No evaluations recorded")
	assert.Zero(t, tasks.enqueueCalls)
}

func TestAnalyzeUnknownSubject(t *testing.T) {
	t.Parallel()

	h := newTestProgressHandler(&fakeProgressStore{}, &fakeEvaluationStore{},
		newFakeProfileStore(), &fakeSubjectStore{}, newFakeTaskService())

	r := newAuthedRequest(t, http.MethodPost, "/api/progress/analyze", uuid.New(), AnalyzeRequest{
		SubjectID: uuid.New(),
	})
	w := httptest.NewRecorder()

	h.Analyze(w, r)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
