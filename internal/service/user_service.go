package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/events"
	"github.com/TomGruner85/task-manager-api/internal/platform/images"
	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
)

// userUpdatableFields is the exact set of profile fields a client may patch.
// Any other key fails the whole update before a single field is applied.
var userUpdatableFields = map[string]bool{
	"name":     true,
	"email":    true,
	"password": true,
	"age":      true,
}

// UserService implements the account lifecycle: registration, login, session
// token issuance and revocation, profile updates, avatar handling, and
// account removal with its task cascade.
type UserService interface {
	// Register validates and persists a new account, hashes the password and
	// emits a user.registered event (welcome email, fire-and-forget).
	// Returns store.ErrEmailExists for a duplicate email and domain
	// validation errors for constraint failures.
	Register(ctx context.Context, name, email, password string, age int) (*domain.User, error)

	// Login resolves the email and verifies the password. Both an unknown
	// email and a wrong password return auth.ErrInvalidCredentials so a
	// caller cannot tell which one happened.
	Login(ctx context.Context, email, password string) (*domain.User, error)

	// IssueToken mints a session token, appends it to the user's token list
	// and persists the user record.
	IssueToken(ctx context.Context, user *domain.User) (string, error)

	// RevokeToken removes exactly the matching token string from the user's
	// token list and persists. RevokeAllTokens clears the entire list.
	RevokeToken(ctx context.Context, user *domain.User, token string) error
	RevokeAllTokens(ctx context.Context, user *domain.User) error

	// GetUser retrieves a user by ID.
	GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error)

	// UpdateProfile applies a partial update. The field names must all be in
	// {name, email, password, age}; any other name fails the whole operation
	// with domain.ErrDisallowedField before any mutation. A password change
	// is re-hashed before persisting.
	UpdateProfile(ctx context.Context, user *domain.User, updates map[string]any) (*domain.User, error)

	// Remove deletes the account and every task it owns, then emits a
	// user.deleted event (cancellation email, fire-and-forget). Task deletion
	// runs before the user delete so no orphaned tasks remain.
	Remove(ctx context.Context, user *domain.User) error

	// SetAvatar converts the upload to the stored 250x250 PNG representation
	// and persists it; see the images package for the accepted inputs.
	// ClearAvatar drops the stored avatar.
	SetAvatar(ctx context.Context, user *domain.User, filename string, data []byte) error
	ClearAvatar(ctx context.Context, user *domain.User) error

	// GetAvatar returns the stored PNG bytes for any user (public endpoint).
	// Returns store.ErrAvatarNotFound when the user has no avatar.
	GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

// UserServiceImpl implements the UserService interface.
type UserServiceImpl struct {
	userStore  store.UserStore
	taskStore  store.TaskStore
	jwtService auth.JWTService
	hasher     auth.PasswordHasher
	verifier   auth.PasswordVerifier
	emitter    events.EventEmitter
	db         *sql.DB
	logger     *slog.Logger

	// runTx wraps store.RunInTransaction; overridable in tests.
	runTx func(ctx context.Context, fn store.TxFn) error
}

// NewUserService creates a new UserService.
func NewUserService(
	userStore store.UserStore,
	taskStore store.TaskStore,
	jwtService auth.JWTService,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	emitter events.EventEmitter,
	db *sql.DB,
	logger *slog.Logger,
) *UserServiceImpl {
	s := &UserServiceImpl{
		userStore:  userStore,
		taskStore:  taskStore,
		jwtService: jwtService,
		hasher:     hasher,
		verifier:   verifier,
		emitter:    emitter,
		db:         db,
		logger:     logger.With("component", "user_service"),
	}
	s.runTx = func(ctx context.Context, fn store.TxFn) error {
		return store.RunInTransaction(ctx, s.db, fn)
	}
	return s
}

// Ensure UserServiceImpl implements UserService interface
var _ UserService = (*UserServiceImpl)(nil)

// Register implements UserService.Register
func (s *UserServiceImpl) Register(
	ctx context.Context,
	name, email, password string,
	age int,
) (*domain.User, error) {
	user, err := domain.NewUser(name, email, password, age)
	if err != nil {
		s.logger.Debug("registration rejected by validation", "error", err)
		return nil, err
	}

	hashed, err := s.hasher.Hash(user.Password)
	if err != nil {
		s.logger.Error("failed to hash password", "error", err)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	if err := s.userStore.Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			s.logger.Debug("attempted to register with existing email")
			return nil, err
		}
		s.logger.Error("failed to save user", "error", err)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.emitUserEvent(ctx, events.UserRegistered, user)

	s.logger.Info("user registered successfully", "user_id", user.ID)
	return user, nil
}

// Login implements UserService.Login
func (s *UserServiceImpl) Login(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userStore.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			// Same error as a wrong password; do not reveal which failed.
			return nil, auth.ErrInvalidCredentials
		}
		s.logger.Error("failed to look up user for login", "error", err)
		return nil, fmt.Errorf("failed to authenticate user: %w", err)
	}

	if err := s.verifier.Compare(user.HashedPassword, password); err != nil {
		return nil, auth.ErrInvalidCredentials
	}

	return user, nil
}

// IssueToken implements UserService.IssueToken
// The token list mutation is a read-modify-write of the full user record
// with no concurrency check (last write wins for concurrent logins).
func (s *UserServiceImpl) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	token, err := s.jwtService.GenerateToken(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	user.AppendToken(token)
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist issued token", "error", err, "user_id", user.ID)
		return "", fmt.Errorf("failed to persist token: %w", err)
	}

	return token, nil
}

// RevokeToken implements UserService.RevokeToken
func (s *UserServiceImpl) RevokeToken(ctx context.Context, user *domain.User, token string) error {
	user.RemoveToken(token)
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist token revocation", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// RevokeAllTokens implements UserService.RevokeAllTokens
func (s *UserServiceImpl) RevokeAllTokens(ctx context.Context, user *domain.User) error {
	user.ClearTokens()
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to persist token revocation", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// GetUser implements UserService.GetUser
func (s *UserServiceImpl) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}
	return user, nil
}

// UpdateProfile implements UserService.UpdateProfile
func (s *UserServiceImpl) UpdateProfile(
	ctx context.Context,
	user *domain.User,
	updates map[string]any,
) (*domain.User, error) {
	// All-or-nothing whitelist check before anything is applied.
	for field := range updates {
		if !userUpdatableFields[field] {
			s.logger.Debug("profile update names disallowed field",
				"field", field,
				"user_id", user.ID)
			return nil, fmt.Errorf("%w: %s", domain.ErrDisallowedField, field)
		}
	}

	for field, value := range updates {
		switch field {
		case "name":
			name, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("name", "must be a string", domain.ErrValidation)
			}
			user.Name = name
		case "email":
			email, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("email", "must be a string", domain.ErrValidation)
			}
			user.Email = domain.NormalizeEmail(email)
		case "password":
			password, ok := value.(string)
			if !ok {
				return nil, domain.NewValidationError("password", "must be a string", domain.ErrValidation)
			}
			if err := domain.ValidatePassword(password); err != nil {
				return nil, err
			}
			hashed, err := s.hasher.Hash(password)
			if err != nil {
				return nil, fmt.Errorf("failed to hash password: %w", err)
			}
			user.HashedPassword = hashed
		case "age":
			// JSON numbers arrive as float64.
			age, ok := value.(float64)
			if !ok || age != float64(int(age)) {
				return nil, domain.NewValidationError("age", "must be an integer", domain.ErrValidation)
			}
			user.Age = int(age)
		}
	}

	user.Name = strings.TrimSpace(user.Name)
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, store.ErrEmailExists) {
			return nil, err
		}
		s.logger.Error("failed to update profile", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}

	s.logger.Info("profile updated successfully", "user_id", user.ID)
	return user, nil
}

// Remove implements UserService.Remove
// The task cascade and the user delete are explicit, ordered steps running
// in one transaction.
func (s *UserServiceImpl) Remove(ctx context.Context, user *domain.User) error {
	err := s.runTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.taskStore.WithTx(tx).DeleteByOwner(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete user's tasks: %w", err)
		}
		if err := s.userStore.WithTx(tx).Delete(ctx, user.ID); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("failed to remove account", "error", err, "user_id", user.ID)
		return err
	}

	s.emitUserEvent(ctx, events.UserDeleted, user)

	s.logger.Info("account removed", "user_id", user.ID)
	return nil
}

// SetAvatar implements UserService.SetAvatar
func (s *UserServiceImpl) SetAvatar(
	ctx context.Context,
	user *domain.User,
	filename string,
	data []byte,
) error {
	avatar, err := images.ProcessAvatar(filename, data)
	if err != nil {
		return err
	}

	user.Avatar = avatar
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to store avatar", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to store avatar: %w", err)
	}

	return nil
}

// ClearAvatar implements UserService.ClearAvatar
func (s *UserServiceImpl) ClearAvatar(ctx context.Context, user *domain.User) error {
	user.Avatar = nil
	if err := s.userStore.Update(ctx, user); err != nil {
		s.logger.Error("failed to clear avatar", "error", err, "user_id", user.ID)
		return fmt.Errorf("failed to clear avatar: %w", err)
	}
	return nil
}

// GetAvatar implements UserService.GetAvatar
func (s *UserServiceImpl) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := s.userStore.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.Avatar) == 0 {
		return nil, store.ErrAvatarNotFound
	}
	return user.Avatar, nil
}

// emitUserEvent publishes a lifecycle event; emission failures are logged
// and swallowed because notifications are non-critical.
func (s *UserServiceImpl) emitUserEvent(ctx context.Context, eventType string, user *domain.User) {
	event, err := events.NewUserEvent(eventType, events.UserPayload{
		UserID: user.ID,
		Email:  user.Email,
		Name:   user.Name,
	})
	if err != nil {
		s.logger.Error("failed to build user event", "error", err, "event_type", eventType)
		return
	}

	if err := s.emitter.EmitEvent(ctx, event); err != nil {
		s.logger.Error("failed to emit user event", "error", err, "event_type", eventType)
	}
}
