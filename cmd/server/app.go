package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/msoledad/aula-api/internal/agents"
	"github.com/msoledad/aula-api/internal/api"
	"github.com/msoledad/aula-api/internal/config"
	"github.com/msoledad/aula-api/internal/generation"
	"github.com/msoledad/aula-api/internal/platform/gemini"
	"github.com/msoledad/aula-api/internal/platform/postgres"
	"github.com/msoledad/aula-api/internal/service/auth"
	"github.com/msoledad/aula-api/internal/store"
	"github.com/msoledad/aula-api/internal/task"
)

// application holds the wired-up components of the server. Everything is
// constructed once in newApplication and torn down in cleanup.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore        store.UserStore
	profileStore     store.ProfileStore
	subjectStore     store.SubjectStore
	progressStore    store.ProgressStore
	evaluationStore  store.EvaluationStore
	resourceStore    store.ResourceStore
	interactionStore store.InteractionStore

	jwtService auth.JWTService
	queue      *task.Queue

	authHandler     *api.AuthHandler
	studentHandler  *api.StudentHandler
	contentHandler  *api.ContentHandler
	progressHandler *api.ProgressHandler
	agentHandler    *api.AgentHandler
}

// newApplication wires stores, services, the agent registry, the task queue
// and the HTTP handlers, and starts the queue worker. The caller owns db
// until newApplication returns successfully; afterwards cleanup closes it.
func newApplication(cfg *config.Config, log *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: log,
		db:     db,
	}

	app.userStore = postgres.NewPostgresUserStore(db, log)
	app.profileStore = postgres.NewPostgresProfileStore(db, log)
	app.subjectStore = postgres.NewPostgresSubjectStore(db, log)
	app.progressStore = postgres.NewPostgresProgressStore(db, log)
	app.evaluationStore = postgres.NewPostgresEvaluationStore(db, log)
	app.resourceStore = postgres.NewPostgresResourceStore(db, log)
	app.interactionStore = postgres.NewPostgresInteractionStore(db, log)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}
	app.jwtService = jwtService

	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)
	verifier := auth.NewBcryptVerifier()

	model, err := gemini.NewClient(context.Background(), log, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	registry, err := agents.NewRegistry(model, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create agent registry: %w", err)
	}

	coordinator, err := agents.NewCoordinator(registry, app.interactionStore, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}

	generator, err := generation.NewContentGenerator(registry, log)
	if err != nil {
		return nil, fmt.Errorf("failed to create content generator: %w", err)
	}

	app.queue = task.NewQueue(task.QueueConfig{
		PollInterval:  time.Duration(cfg.Queue.PollIntervalMS) * time.Millisecond,
		Retention:     time.Duration(cfg.Queue.RetentionMinutes) * time.Minute,
		SweepSchedule: cfg.Queue.SweepSchedule,
	}, log)

	if err := app.queue.StartWorker(generation.NewTaskHandler(generator)); err != nil {
		return nil, fmt.Errorf("failed to start task worker: %w", err)
	}

	app.authHandler = api.NewAuthHandler(app.userStore, jwtService, hasher, verifier, cfg.Auth)
	app.studentHandler = api.NewStudentHandler(app.profileStore)
	app.contentHandler = api.NewContentHandler(app.subjectStore, app.resourceStore, app.queue)
	app.progressHandler = api.NewProgressHandler(
		app.progressStore,
		app.evaluationStore,
		app.profileStore,
		app.subjectStore,
		app.queue,
	)
	app.agentHandler = api.NewAgentHandler(coordinator, app.profileStore, app.interactionStore)

	return app, nil
}

// cleanup releases resources in reverse dependency order: the queue worker
// first, so no task is mid-flight when the database closes.
func (app *application) cleanup() {
	app.queue.StopWorker()

	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", slog.String("error", err.Error()))
	}

	app.logger.Info("application shutdown complete")
}
