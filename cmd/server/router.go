package main

import (
	"net/http"

	apimiddleware "github.com/TomGruner85/task-manager-api/internal/api/middleware"
	"github.com/TomGruner85/task-manager-api/internal/api/shared"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	// Public endpoints
	r.Post("/users", app.userHandler.Register)
	r.Post("/users/login", app.userHandler.Login)
	r.Get("/users/{id}/avatar", app.userHandler.GetAvatar)

	// Protected endpoints
	r.Group(func(r chi.Router) {
		r.Use(app.authMiddleware.Authenticate)

		// Session management
		r.Post("/users/logout", app.userHandler.Logout)
		r.Post("/users/logoutAll", app.userHandler.LogoutAll)

		// Profile
		r.Get("/users/me", app.userHandler.GetProfile)
		r.Patch("/users/me", app.userHandler.UpdateProfile)
		r.Delete("/users/me", app.userHandler.DeleteAccount)

		// Avatar
		r.Post("/users/me/avatar", app.userHandler.UploadAvatar)
		r.Delete("/users/me/avatar", app.userHandler.DeleteAvatar)

		// Tasks
		r.Post("/tasks", app.taskHandler.Create)
		r.Get("/tasks", app.taskHandler.List)
		r.Get("/tasks/{id}", app.taskHandler.Get)
		r.Patch("/tasks/{id}", app.taskHandler.Update)
		r.Delete("/tasks/{id}", app.taskHandler.Delete)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	// Any unrouted path answers with the JSON 404 body.
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Page not found")
	})

	return r
}
