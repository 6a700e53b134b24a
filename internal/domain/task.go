package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTaskID      = errors.New("task ID cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyOwner       = errors.New("task owner cannot be empty")
)

// Task is a single to-do item. UserID references the owning user and is
// immutable after creation; every read and write of a task is scoped to it.
type Task struct {
	ID          uuid.UUID `json:"id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      uuid.UUID `json:"owner"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewTask creates a Task owned by the given user.
func NewTask(owner uuid.UUID, description string, completed bool) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		ID:          uuid.New(),
		Description: strings.TrimSpace(description),
		Completed:   completed,
		UserID:      owner,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := task.Validate(); err != nil {
		return nil, err
	}

	return task, nil
}

// Validate checks if the Task has valid data.
func (t *Task) Validate() error {
	if t.ID == uuid.Nil {
		return ErrEmptyTaskID
	}

	if t.Description == "" {
		return ErrEmptyDescription
	}

	if t.UserID == uuid.Nil {
		return ErrEmptyOwner
	}

	return nil
}
