package mocks

import (
	"context"
	"errors"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
)

// ErrNotConfigured is returned by service mocks when a test exercises a
// method it did not stub, so the gap fails loudly instead of silently.
var ErrNotConfigured = errors.New("mock method not configured")

// MockUserService is a function-field mock of service.UserService.
type MockUserService struct {
	RegisterFn        func(ctx context.Context, name, email, password string, age int) (*domain.User, error)
	LoginFn           func(ctx context.Context, email, password string) (*domain.User, error)
	IssueTokenFn      func(ctx context.Context, user *domain.User) (string, error)
	RevokeTokenFn     func(ctx context.Context, user *domain.User, token string) error
	RevokeAllTokensFn func(ctx context.Context, user *domain.User) error
	GetUserFn         func(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	UpdateProfileFn   func(ctx context.Context, user *domain.User, updates map[string]any) (*domain.User, error)
	RemoveFn          func(ctx context.Context, user *domain.User) error
	SetAvatarFn       func(ctx context.Context, user *domain.User, filename string, data []byte) error
	ClearAvatarFn     func(ctx context.Context, user *domain.User) error
	GetAvatarFn       func(ctx context.Context, userID uuid.UUID) ([]byte, error)
}

func (m *MockUserService) Register(ctx context.Context, name, email, password string, age int) (*domain.User, error) {
	if m.RegisterFn == nil {
		return nil, ErrNotConfigured
	}
	return m.RegisterFn(ctx, name, email, password, age)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	if m.LoginFn == nil {
		return nil, ErrNotConfigured
	}
	return m.LoginFn(ctx, email, password)
}

func (m *MockUserService) IssueToken(ctx context.Context, user *domain.User) (string, error) {
	if m.IssueTokenFn == nil {
		return "", ErrNotConfigured
	}
	return m.IssueTokenFn(ctx, user)
}

func (m *MockUserService) RevokeToken(ctx context.Context, user *domain.User, token string) error {
	if m.RevokeTokenFn == nil {
		return ErrNotConfigured
	}
	return m.RevokeTokenFn(ctx, user, token)
}

func (m *MockUserService) RevokeAllTokens(ctx context.Context, user *domain.User) error {
	if m.RevokeAllTokensFn == nil {
		return ErrNotConfigured
	}
	return m.RevokeAllTokensFn(ctx, user)
}

func (m *MockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.GetUserFn == nil {
		return nil, ErrNotConfigured
	}
	return m.GetUserFn(ctx, userID)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, user *domain.User, updates map[string]any) (*domain.User, error) {
	if m.UpdateProfileFn == nil {
		return nil, ErrNotConfigured
	}
	return m.UpdateProfileFn(ctx, user, updates)
}

func (m *MockUserService) Remove(ctx context.Context, user *domain.User) error {
	if m.RemoveFn == nil {
		return ErrNotConfigured
	}
	return m.RemoveFn(ctx, user)
}

func (m *MockUserService) SetAvatar(ctx context.Context, user *domain.User, filename string, data []byte) error {
	if m.SetAvatarFn == nil {
		return ErrNotConfigured
	}
	return m.SetAvatarFn(ctx, user, filename, data)
}

func (m *MockUserService) ClearAvatar(ctx context.Context, user *domain.User) error {
	if m.ClearAvatarFn == nil {
		return ErrNotConfigured
	}
	return m.ClearAvatarFn(ctx, user)
}

func (m *MockUserService) GetAvatar(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	if m.GetAvatarFn == nil {
		return nil, ErrNotConfigured
	}
	return m.GetAvatarFn(ctx, userID)
}

// MockTaskService is a function-field mock of service.TaskService.
type MockTaskService struct {
	CreateFn func(ctx context.Context, owner uuid.UUID, description string, completed bool) (*domain.Task, error)
	ListFn   func(ctx context.Context, owner uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	GetFn    func(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error)
	UpdateFn func(ctx context.Context, owner, taskID uuid.UUID, updates map[string]any) (*domain.Task, error)
	DeleteFn func(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error)
}

func (m *MockTaskService) Create(ctx context.Context, owner uuid.UUID, description string, completed bool) (*domain.Task, error) {
	if m.CreateFn == nil {
		return nil, ErrNotConfigured
	}
	return m.CreateFn(ctx, owner, description, completed)
}

func (m *MockTaskService) List(ctx context.Context, owner uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListFn == nil {
		return nil, ErrNotConfigured
	}
	return m.ListFn(ctx, owner, filter)
}

func (m *MockTaskService) Get(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error) {
	if m.GetFn == nil {
		return nil, ErrNotConfigured
	}
	return m.GetFn(ctx, owner, taskID)
}

func (m *MockTaskService) Update(ctx context.Context, owner, taskID uuid.UUID, updates map[string]any) (*domain.Task, error) {
	if m.UpdateFn == nil {
		return nil, ErrNotConfigured
	}
	return m.UpdateFn(ctx, owner, taskID, updates)
}

func (m *MockTaskService) Delete(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error) {
	if m.DeleteFn == nil {
		return nil, ErrNotConfigured
	}
	return m.DeleteFn(ctx, owner, taskID)
}
