package task

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Common errors returned by the Queue.
var (
	ErrEmptyTaskType = errors.New("task type cannot be empty")
	ErrNilHandler    = errors.New("task handler cannot be nil")
)

// QueueConfig holds configuration for the queue.
type QueueConfig struct {
	// PollInterval bounds how long the worker waits for the next task
	// before re-checking the stop signal. If zero, defaults to 250ms.
	PollInterval time.Duration

	// Retention is how long terminal results are kept before the sweeper
	// evicts them. Zero disables eviction entirely.
	Retention time.Duration

	// SweepSchedule is the cron schedule for the result sweeper.
	// If empty, defaults to "@every 10m". Ignored when Retention is zero.
	SweepSchedule string
}

// DefaultQueueConfig returns a QueueConfig with reasonable defaults.
func DefaultQueueConfig() QueueConfig {
	return QueueConfig{
		PollInterval:  250 * time.Millisecond,
		Retention:     24 * time.Hour,
		SweepSchedule: "@every 10m",
	}
}

// Queue decouples task submission from task execution. Submitted tasks are
// run exactly once, in submission order, by a single background worker
// started with StartWorker. Enqueue and GetResult are safe for concurrent
// use from any goroutine.
//
// Queue state is process-local: tasks and results are lost on restart.
type Queue struct {
	cfg    QueueConfig
	logger *slog.Logger

	mu     sync.Mutex
	fifo   []Task
	notify chan struct{}

	resMu   sync.RWMutex
	results map[uuid.UUID]*Result

	runMu   sync.Mutex
	running bool
	cancel  context.CancelFunc
	done    chan struct{}

	sweeper *cron.Cron
}

// NewQueue creates a Queue with the given configuration. The queue accepts
// Enqueue and GetResult calls immediately; nothing is executed until
// StartWorker is called.
func NewQueue(cfg QueueConfig, logger *slog.Logger) *Queue {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 250 * time.Millisecond
	}
	if cfg.SweepSchedule == "" {
		cfg.SweepSchedule = "@every 10m"
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Queue{
		cfg:     cfg,
		logger:  logger.With(slog.String("component", "task_queue")),
		notify:  make(chan struct{}, 1),
		results: make(map[uuid.UUID]*Result),
	}
}

// Enqueue appends a task to the back of the FIFO and returns its freshly
// generated identifier. The corresponding result record is created
// atomically with the task and is addressable immediately, before the
// worker has necessarily started running it. Enqueue never blocks and
// never executes the task inline.
func (q *Queue) Enqueue(taskType string, data map[string]any) (uuid.UUID, error) {
	if taskType == "" {
		return uuid.Nil, ErrEmptyTaskType
	}

	t := Task{
		ID:        uuid.New(),
		Type:      taskType,
		Data:      data,
		CreatedAt: time.Now().UTC(),
	}

	q.resMu.Lock()
	q.results[t.ID] = &Result{
		Status:    StatusPending,
		CreatedAt: t.CreatedAt,
	}
	q.resMu.Unlock()

	q.mu.Lock()
	q.fifo = append(q.fifo, t)
	depth := len(q.fifo)
	q.mu.Unlock()

	// Wake the worker if it is idle. The channel is buffered, so a missed
	// signal is harmless: the bounded wait re-checks the FIFO anyway.
	select {
	case q.notify <- struct{}{}:
	default:
	}

	q.logger.Info("task enqueued",
		"task_id", t.ID,
		"task_type", t.Type,
		"queue_depth", depth)

	return t.ID, nil
}

// GetResult returns a point-in-time snapshot of the result record for the
// given identifier. An identifier the queue never issued yields a record
// with StatusNotFound. GetResult never blocks waiting for completion;
// callers poll until the status is terminal.
func (q *Queue) GetResult(id uuid.UUID) Result {
	q.resMu.RLock()
	defer q.resMu.RUnlock()

	r, ok := q.results[id]
	if !ok {
		return Result{Status: StatusNotFound}
	}
	return *r
}

// Depth returns the number of tasks waiting in the FIFO.
func (q *Queue) Depth() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.fifo)
}

// StartWorker spawns the single background worker loop bound to handler.
// All tasks, regardless of type, are dispatched to the same handler.
// Calling StartWorker while a worker is already running is a no-op.
func (q *Queue) StartWorker(handler Handler) error {
	if handler == nil {
		return ErrNilHandler
	}

	q.runMu.Lock()
	defer q.runMu.Unlock()

	if q.running {
		q.logger.Debug("worker already running, ignoring start")
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	q.done = make(chan struct{})
	q.running = true

	go q.run(ctx, handler)

	if q.cfg.Retention > 0 && q.sweeper == nil {
		q.sweeper = cron.New()
		_, err := q.sweeper.AddFunc(q.cfg.SweepSchedule, q.sweep)
		if err != nil {
			q.logger.Error("invalid sweep schedule, result eviction disabled",
				"schedule", q.cfg.SweepSchedule,
				"error", err)
			q.sweeper = nil
		} else {
			q.sweeper.Start()
		}
	}

	q.logger.Info("queue worker started")
	return nil
}

// StopWorker signals the worker loop to stop and waits for it to exit.
// Only the bounded wait for the next task is interrupted: a task already
// dispatched to the handler runs to completion or failure first. Tasks
// still in the FIFO are retained and resume processing on the next
// StartWorker. Calling StopWorker when no worker is running is a no-op.
func (q *Queue) StopWorker() {
	q.runMu.Lock()
	defer q.runMu.Unlock()

	if !q.running {
		return
	}

	q.cancel()
	<-q.done
	q.running = false

	if q.sweeper != nil {
		q.sweeper.Stop()
		q.sweeper = nil
	}

	q.logger.Info("queue worker stopped")
}

// run is the worker loop: pop the next task with a bounded wait so the
// stop signal is observed promptly even when the queue is empty, process
// it, repeat. Handler failures are contained per task; the loop itself
// never exits on error.
func (q *Queue) run(ctx context.Context, handler Handler) {
	defer close(q.done)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		t, ok := q.pop()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-q.notify:
			case <-time.After(q.cfg.PollInterval):
			}
			continue
		}

		q.process(t, handler)
	}
}

// pop removes and returns the task at the front of the FIFO.
func (q *Queue) pop() (Task, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.fifo) == 0 {
		return Task{}, false
	}

	t := q.fifo[0]
	q.fifo = q.fifo[1:]
	return t, true
}

// process runs one task through the handler and records the outcome.
// The handler gets a background context: stopping the worker does not
// cancel a task that is already executing.
func (q *Queue) process(t Task, handler Handler) {
	logger := q.logger.With(
		"task_id", t.ID,
		"task_type", t.Type,
	)

	q.markProcessing(t.ID)
	logger.Info("processing task")

	result, err := q.invoke(context.Background(), handler, t)
	if err != nil {
		q.markFailed(t.ID, err)
		logger.Error("task failed", "error", err)
		return
	}

	q.markCompleted(t.ID, result)
	logger.Info("task completed")
}

// invoke calls the handler, converting a panic into an error so a
// misbehaving handler cannot take down the worker loop.
func (q *Queue) invoke(ctx context.Context, handler Handler, t Task) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panicked: %v", r)
		}
	}()
	return handler(ctx, t)
}

func (q *Queue) markProcessing(id uuid.UUID) {
	now := time.Now().UTC()

	q.resMu.Lock()
	defer q.resMu.Unlock()

	if r, ok := q.results[id]; ok && r.Status == StatusPending {
		r.Status = StatusProcessing
		r.ProcessingStartedAt = &now
	}
}

func (q *Queue) markCompleted(id uuid.UUID, result any) {
	now := time.Now().UTC()

	q.resMu.Lock()
	defer q.resMu.Unlock()

	if r, ok := q.results[id]; ok && r.Status == StatusProcessing {
		r.Status = StatusCompleted
		r.Result = result
		r.CompletedAt = &now
	}
}

func (q *Queue) markFailed(id uuid.UUID, err error) {
	now := time.Now().UTC()

	q.resMu.Lock()
	defer q.resMu.Unlock()

	if r, ok := q.results[id]; ok && r.Status == StatusProcessing {
		r.Status = StatusFailed
		r.Error = err.Error()
		r.ErrorAt = &now
	}
}

// sweep evicts terminal result records older than the retention window.
// Pending and processing records are never evicted.
func (q *Queue) sweep() {
	cutoff := time.Now().UTC().Add(-q.cfg.Retention)
	evicted := 0

	q.resMu.Lock()
	for id, r := range q.results {
		if !r.Terminal() {
			continue
		}

		terminalAt := r.CompletedAt
		if r.Status == StatusFailed {
			terminalAt = r.ErrorAt
		}
		if terminalAt != nil && terminalAt.Before(cutoff) {
			delete(q.results, id)
			evicted++
		}
	}
	remaining := len(q.results)
	q.resMu.Unlock()

	if evicted > 0 {
		q.logger.Info("swept terminal task results",
			"evicted", evicted,
			"remaining", remaining)
	}
}
