package store

import (
	"context"
	"database/sql"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/google/uuid"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store. The user must already carry a
	// hashed password; plaintext never reaches the store layer.
	// Returns ErrEmailExists if the email is already taken.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID, including the token list
	// and avatar. Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update writes the complete user record back to the store, including
	// the token list and avatar. Token list changes are read-modify-write
	// with no concurrency check: concurrent logins for the same user can
	// lose an update (last write wins).
	// Returns ErrUserNotFound if the user does not exist.
	// Returns ErrEmailExists if updating to an email that already exists.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user from the store by their ID.
	// Returns ErrUserNotFound if the user does not exist.
	// Callers are responsible for deleting the user's tasks first; the
	// schema's cascade is only a backstop.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the provided transaction so that
	// multiple operations can run atomically. The transaction is created
	// and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) UserStore
}
