package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/TomGruner85/task-manager-api/internal/api/shared"
	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/service"
	"github.com/TomGruner85/task-manager-api/internal/store"
)

// TaskHandler handles task API requests. Every endpoint operates on the
// authenticated user's own tasks.
type TaskHandler struct {
	taskService service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// Create handles POST /tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(r.Context(), userID, req.Description, req.Completed)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, NewTaskResponse(task))
}

// List handles GET /tasks with optional query parameters:
//
//	completed=true|false   filter by completion state
//	sortBy=field_direction e.g. createdAt_desc, description_asc
//	limit=n, skip=n        pagination
//
// Unrecognized parameter values are ignored rather than rejected.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := getUserIDFromContext(r)
	if !ok {
		HandleAPIError(w, r, domain.ErrUnauthorized, "")
		return
	}

	filter := parseTaskFilter(r)

	tasks, err := h.taskService.List(r.Context(), userID, filter)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskListResponse(tasks))
}

// Get handles GET /tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Get(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Update handles PATCH /tasks/{id}. Only description and completed may be
// patched; naming any other field rejects the whole request with
// "Invalid update attempt!".
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	updates, err := shared.DecodeJSONMap(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), userID, taskID, updates)
	if err != nil {
		if errors.Is(err, domain.ErrDisallowedField) {
			HandleAPIError(w, r, err, InvalidTaskUpdateMessage)
			return
		}
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// Delete handles DELETE /tasks/{id}, echoing the removed task.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, taskID, ok := requireUserAndPathUUID(w, r, "id")
	if !ok {
		return
	}

	task, err := h.taskService.Delete(r.Context(), userID, taskID)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, NewTaskResponse(task))
}

// parseTaskFilter reads the listing query parameters. Values that do not
// parse fall back to the neutral default instead of failing the request.
func parseTaskFilter(r *http.Request) store.TaskFilter {
	query := r.URL.Query()
	filter := store.TaskFilter{}

	if raw := query.Get("completed"); raw != "" {
		if completed, err := strconv.ParseBool(raw); err == nil {
			filter.Completed = &completed
		}
	}

	// sortBy is "field_direction", e.g. createdAt_desc. A missing or
	// unknown direction sorts ascending.
	if raw := query.Get("sortBy"); raw != "" {
		field, direction, found := strings.Cut(raw, "_")
		filter.SortBy = field
		filter.SortDir = store.SortAsc
		if found && direction == "desc" {
			filter.SortDir = store.SortDesc
		}
	}

	if raw := query.Get("skip"); raw != "" {
		if skip, err := strconv.Atoi(raw); err == nil && skip > 0 {
			filter.Skip = skip
		}
	}

	if raw := query.Get("limit"); raw != "" {
		if limit, err := strconv.Atoi(raw); err == nil && limit > 0 {
			filter.Limit = limit
		}
	}

	return filter
}
