package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProgress(t *testing.T) {
	userID := uuid.New()
	subjectID := uuid.New()

	progress, err := NewProgress(userID, subjectID, "fractions", "addition", ProgressInProgress, 40)
	require.NoError(t, err)
	assert.Equal(t, userID, progress.UserID)
	assert.Equal(t, subjectID, progress.SubjectID)
	assert.Equal(t, ProgressInProgress, progress.State)
	assert.InDelta(t, 40, progress.PercentComplete, 0.001)
}

func TestNewProgressInvalid(t *testing.T) {
	userID := uuid.New()
	subjectID := uuid.New()

	_, err := NewProgress(uuid.Nil, subjectID, "fractions", "", ProgressNotStarted, 0)
	assert.ErrorIs(t, err, ErrEmptyProgressUserID)

	_, err = NewProgress(userID, subjectID, "", "", ProgressNotStarted, 0)
	assert.ErrorIs(t, err, ErrEmptyProgressTopic)

	_, err = NewProgress(userID, subjectID, "fractions", "", ProgressState("done"), 0)
	assert.ErrorIs(t, err, ErrInvalidProgressState)

	_, err = NewProgress(userID, subjectID, "fractions", "", ProgressCompleted, 120)
	assert.ErrorIs(t, err, ErrInvalidPercent)
}

func TestProgressAdvance(t *testing.T) {
	progress, err := NewProgress(uuid.New(), uuid.New(), "fractions", "", ProgressNotStarted, 0)
	require.NoError(t, err)

	before := progress.LastActivityAt
	time.Sleep(time.Millisecond)

	require.NoError(t, progress.Advance(ProgressCompleted, 100))
	assert.Equal(t, ProgressCompleted, progress.State)
	assert.InDelta(t, 100, progress.PercentComplete, 0.001)
	assert.True(t, progress.LastActivityAt.After(before))

	assert.ErrorIs(t, progress.Advance(ProgressState("paused"), 50), ErrInvalidProgressState)
	assert.ErrorIs(t, progress.Advance(ProgressInProgress, -1), ErrInvalidPercent)
}

func TestEvaluationValidate(t *testing.T) {
	_, err := NewEvaluation(uuid.New(), uuid.New(), 0, 50)
	assert.ErrorIs(t, err, ErrInvalidEvaluationLvl)

	_, err = NewEvaluation(uuid.New(), uuid.New(), 1, 101)
	assert.ErrorIs(t, err, ErrInvalidEvaluationScor)

	eval, err := NewEvaluation(uuid.New(), uuid.New(), 2, 87.5)
	require.NoError(t, err)
	assert.Equal(t, 2, eval.Level)
}

func TestResourceValidate(t *testing.T) {
	_, err := NewResource("Intro video", ResourceKind("podcast"), "", "", uuid.New(), 1)
	assert.ErrorIs(t, err, ErrInvalidResourceKind)

	_, err = NewResource("", ResourceVideo, "", "", uuid.New(), 1)
	assert.ErrorIs(t, err, ErrEmptyResourceTitle)

	resource, err := NewResource("Intro video", ResourceVideo, "https://example.com/v", "", uuid.New(), 1)
	require.NoError(t, err)
	assert.Equal(t, ResourceVideo, resource.Kind)
}
