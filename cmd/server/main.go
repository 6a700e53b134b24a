// Package main implements the entry point for the task manager API server:
// user accounts with token-list sessions, owner-scoped tasks, avatar storage
// and transactional email notifications.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/TomGruner85/task-manager-api/internal/config"
	"github.com/TomGruner85/task-manager-api/internal/platform/logger"
)

func main() {
	skipMigrations := flag.Bool("skip-migrations", false,
		"start without applying pending database migrations")
	flag.Parse()

	if err := run(*skipMigrations); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(skipMigrations bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"email_enabled", cfg.Email.APIKey != "")

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return err
	}

	if !skipMigrations {
		if err := runMigrations(db, appLogger); err != nil {
			return err
		}
	}

	app, err := buildApplication(cfg, db, appLogger)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}

	return app.startHTTPServer(context.Background(), app.setupRouter())
}
