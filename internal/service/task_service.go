package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
)

// taskUpdatableFields is the exact set of task fields a client may patch.
var taskUpdatableFields = map[string]bool{
	"description": true,
	"completed":   true,
}

// TaskService implements owner-scoped task management. Every operation takes
// the authenticated owner's ID; a task belonging to someone else is
// indistinguishable from a task that does not exist.
type TaskService interface {
	// Create validates and persists a new task owned by owner.
	Create(ctx context.Context, owner uuid.UUID, description string, completed bool) (*domain.Task, error)

	// List returns the owner's tasks narrowed by the filter (completion
	// state, sorting, pagination). An empty filter returns everything.
	List(ctx context.Context, owner uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)

	// Get returns a single task by ID, scoped to the owner.
	Get(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error)

	// Update applies a partial update. The field names must all be in
	// {description, completed}; any other name fails the whole operation
	// with domain.ErrDisallowedField before any mutation.
	Update(ctx context.Context, owner, taskID uuid.UUID, updates map[string]any) (*domain.Task, error)

	// Delete removes the task and returns its final state.
	Delete(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error)
}

// TaskServiceImpl implements the TaskService interface.
type TaskServiceImpl struct {
	taskStore store.TaskStore
	logger    *slog.Logger
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskStore store.TaskStore, logger *slog.Logger) *TaskServiceImpl {
	return &TaskServiceImpl{
		taskStore: taskStore,
		logger:    logger.With("component", "task_service"),
	}
}

// Ensure TaskServiceImpl implements TaskService interface
var _ TaskService = (*TaskServiceImpl)(nil)

// Create implements TaskService.Create
func (s *TaskServiceImpl) Create(
	ctx context.Context,
	owner uuid.UUID,
	description string,
	completed bool,
) (*domain.Task, error) {
	task, err := domain.NewTask(owner, description, completed)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Create(ctx, task); err != nil {
		s.logger.Error("failed to save task", "error", err, "user_id", owner)
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("task created", "task_id", task.ID, "user_id", owner)
	return task, nil
}

// List implements TaskService.List
func (s *TaskServiceImpl) List(
	ctx context.Context,
	owner uuid.UUID,
	filter store.TaskFilter,
) ([]*domain.Task, error) {
	tasks, err := s.taskStore.List(ctx, owner, filter)
	if err != nil {
		s.logger.Error("failed to list tasks", "error", err, "user_id", owner)
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// Get implements TaskService.Get
func (s *TaskServiceImpl) Get(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

// Update implements TaskService.Update
func (s *TaskServiceImpl) Update(
	ctx context.Context,
	owner, taskID uuid.UUID,
	updates map[string]any,
) (*domain.Task, error) {
	// All-or-nothing whitelist check before the task is even fetched.
	for field := range updates {
		if !taskUpdatableFields[field] {
			s.logger.Debug("task update names disallowed field",
				"field", field,
				"user_id", owner)
			return nil, fmt.Errorf("%w: %s", domain.ErrDisallowedField, field)
		}
	}

	task, err := s.taskStore.GetByID(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	for field, value := range updates {
		switch field {
		case "description":
			description, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("description", "must be a string", domain.ErrValidation)
			}
			task.Description = description
		case "completed":
			completed, ok := value.(bool)
			if !ok {
				return nil, domain.NewValidationError("completed", "must be a boolean", domain.ErrValidation)
			}
			task.Completed = completed
		}
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		s.logger.Error("failed to update task", "error", err, "task_id", taskID)
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// Delete implements TaskService.Delete
func (s *TaskServiceImpl) Delete(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.taskStore.GetByID(ctx, owner, taskID)
	if err != nil {
		return nil, err
	}

	if err := s.taskStore.Delete(ctx, owner, taskID); err != nil {
		return nil, err
	}

	s.logger.Debug("task deleted", "task_id", taskID, "user_id", owner)
	return task, nil
}
