package api

import (
	"github.com/google/uuid"

	"github.com/msoledad/aula-api/internal/task"
)

// TaskService is the queue surface the handlers need: submit work and
// look up its status. *task.Queue satisfies it.
type TaskService interface {
	Enqueue(taskType string, data map[string]any) (uuid.UUID, error)
	GetResult(id uuid.UUID) task.Result
}
