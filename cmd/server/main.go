// Command server runs the aula-api HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/msoledad/aula-api/internal/config"
	"github.com/msoledad/aula-api/internal/platform/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server failed to start: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, err := setupDatabase(cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := runMigrations(db, log); err != nil {
		db.Close()
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	app, err := newApplication(cfg, log, db)
	if err != nil {
		db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	log.Info("starting server", slog.Int("port", cfg.Server.Port))
	return app.Run()
}
