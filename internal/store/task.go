package store

import (
	"context"
	"database/sql"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/google/uuid"
)

// Sort directions accepted by TaskFilter.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// TaskFilter narrows and orders a task listing. The zero value lists every
// task the owner has, in storage order, without skip or cap.
type TaskFilter struct {
	// Completed filters on completion state when non-nil.
	Completed *bool

	// SortBy names the column to order by. Implementations must whitelist
	// the accepted fields; an empty value keeps storage order.
	SortBy string

	// SortDir is SortAsc or SortDesc. Ignored when SortBy is empty.
	SortDir string

	// Skip drops the first n results. Zero means no skip.
	Skip int

	// Limit caps the result count. Zero means no cap.
	Limit int
}

// TaskStore defines the interface for task data persistence. Every method
// takes the owning user's ID and scopes the query to it, so one user can
// never observe or mutate another user's tasks, even with a known task ID.
type TaskStore interface {
	// Create saves a new task to the store.
	Create(ctx context.Context, task *domain.Task) error

	// List returns the owner's tasks matching the filter.
	// Returns an empty slice when nothing matches.
	List(ctx context.Context, owner uuid.UUID, filter TaskFilter) ([]*domain.Task, error)

	// GetByID retrieves one of the owner's tasks. Returns ErrTaskNotFound
	// both when the task does not exist and when it belongs to another user.
	GetByID(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error)

	// Update writes a task's mutable fields (description, completed) back to
	// the store, scoped to the owner. Returns ErrTaskNotFound as GetByID does.
	Update(ctx context.Context, task *domain.Task) error

	// Delete removes one of the owner's tasks and returns ErrTaskNotFound as
	// GetByID does.
	Delete(ctx context.Context, owner, id uuid.UUID) error

	// DeleteByOwner removes every task the owner has. Used by the account
	// removal cascade; deleting zero tasks is not an error.
	DeleteByOwner(ctx context.Context, owner uuid.UUID) error

	// WithTx returns a TaskStore bound to the provided transaction.
	WithTx(tx *sql.Tx) TaskStore
}
