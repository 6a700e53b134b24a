package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/TomGruner85/task-manager-api/internal/api"
	apimiddleware "github.com/TomGruner85/task-manager-api/internal/api/middleware"
	"github.com/TomGruner85/task-manager-api/internal/config"
	"github.com/TomGruner85/task-manager-api/internal/email"
	"github.com/TomGruner85/task-manager-api/internal/events"
	"github.com/TomGruner85/task-manager-api/internal/platform/postgres"
	"github.com/TomGruner85/task-manager-api/internal/service"
	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/TomGruner85/task-manager-api/internal/store"
)

// application bundles every constructed dependency of the running server.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService  auth.JWTService
	userService service.UserService
	taskService service.TaskService

	userHandler    *api.UserHandler
	taskHandler    *api.TaskHandler
	authMiddleware *apimiddleware.AuthMiddleware
}

// buildApplication wires stores, services, handlers and the notification
// pipeline from the loaded configuration and an open database handle.
func buildApplication(cfg *config.Config, db *sql.DB, logger *slog.Logger) (*application, error) {
	userStore := postgres.NewPostgresUserStore(db, logger)
	taskStore := postgres.NewPostgresTaskStore(db, logger)

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT service: %w", err)
	}

	// Email dispatch hangs off lifecycle events; registration and account
	// removal never wait for, or fail on, the provider.
	var mailer email.Mailer
	if cfg.Email.APIKey != "" {
		mailer = email.NewSendGridMailer(cfg.Email)
	} else {
		logger.Warn("email API key not configured, notifications disabled")
		mailer = email.NewNoopMailer()
	}

	emitter := events.NewInMemoryEventEmitter(logger)
	emitter.RegisterHandler(email.NewEventHandler(mailer, logger))

	userService := service.NewUserService(
		userStore,
		taskStore,
		jwtService,
		auth.NewBcryptHasher(0),
		auth.NewBcryptVerifier(),
		emitter,
		db,
		logger,
	)
	taskService := service.NewTaskService(taskStore, logger)

	return &application{
		config:         cfg,
		logger:         logger,
		db:             db,
		userStore:      userStore,
		taskStore:      taskStore,
		jwtService:     jwtService,
		userService:    userService,
		taskService:    taskService,
		userHandler:    api.NewUserHandler(userService),
		taskHandler:    api.NewTaskHandler(taskService),
		authMiddleware: apimiddleware.NewAuthMiddleware(jwtService, userStore, logger),
	}, nil
}

// cleanup releases resources held by the application.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("failed to close database connection", "error", err)
		}
	}
}
