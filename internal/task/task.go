package task

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Status represents the current state of a task.
type Status string

// Possible task status values. A task's status is monotonic:
// pending -> processing -> completed | failed. StatusNotFound is a
// sentinel returned by lookups for identifiers the queue never issued.
const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
	StatusNotFound   Status = "not_found"
)

// Task types dispatched through the queue. The queue itself is
// payload-agnostic; these constants exist so producers and the handler
// agree on names.
const (
	TypeLessonGeneration       = "lesson_generation"
	TypeExerciseGeneration     = "exercise_generation"
	TypeEvaluationGeneration   = "evaluation_generation"
	TypeResourceRecommendation = "resource_recommendation"
	TypeProgressAnalysis       = "progress_analysis"
)

// Task is one unit of deferred work submitted to the queue. Data is an
// arbitrary payload the queue never inspects; the handler branches on Type.
type Task struct {
	ID        uuid.UUID      `json:"id"`
	Type      string         `json:"type"`
	Data      map[string]any `json:"data"`
	CreatedAt time.Time      `json:"created_at"`
}

// Result is the queryable status/result/error projection for a task.
// It is created at enqueue time with StatusPending and mutated in place
// by the worker as the task progresses. Result and Error are mutually
// exclusive and both absent until a terminal state is reached.
type Result struct {
	Status              Status     `json:"status"`
	Result              any        `json:"result,omitempty"`
	Error               string     `json:"error,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	ProcessingStartedAt *time.Time `json:"processing_started_at,omitempty"`
	CompletedAt         *time.Time `json:"completed_at,omitempty"`
	ErrorAt             *time.Time `json:"error_at,omitempty"`
}

// Terminal reports whether the result has reached a final state.
func (r Result) Terminal() bool {
	return r.Status == StatusCompleted || r.Status == StatusFailed
}

// Handler is the externally supplied function that performs the actual
// work for every task, regardless of type. A non-nil error marks the task
// failed; the returned value is stored as the task's result otherwise.
type Handler func(ctx context.Context, t Task) (any, error)
