package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
)

// MockTaskStore is a configurable mock implementation of store.TaskStore.
// Without overrides it behaves as an in-memory store that preserves
// insertion order and honors the filter the way the Postgres store does.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks []*domain.Task

	CreateFn        func(ctx context.Context, task *domain.Task) error
	ListFn          func(ctx context.Context, owner uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error)
	GetByIDFn       func(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error)
	UpdateFn        func(ctx context.Context, task *domain.Task) error
	DeleteFn        func(ctx context.Context, owner, id uuid.UUID) error
	DeleteByOwnerFn func(ctx context.Context, owner uuid.UUID) error
}

var _ store.TaskStore = (*MockTaskStore)(nil)

// NewMockTaskStore creates an empty in-memory mock.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{}
}

func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	m.tasks = append(m.tasks, &cp)
	return nil
}

func (m *MockTaskStore) List(ctx context.Context, owner uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, owner, filter)
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	matched := make([]*domain.Task, 0)
	for _, t := range m.tasks {
		if t.UserID != owner {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		cp := *t
		matched = append(matched, &cp)
	}

	if filter.SortBy != "" {
		desc := filter.SortDir == store.SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			var less bool
			switch filter.SortBy {
			case "description":
				less = matched[i].Description < matched[j].Description
			case "completed":
				less = !matched[i].Completed && matched[j].Completed
			case "updatedAt":
				less = matched[i].UpdatedAt.Before(matched[j].UpdatedAt)
			default: // createdAt
				less = matched[i].CreatedAt.Before(matched[j].CreatedAt)
			}
			if desc {
				return !less
			}
			return less
		})
	}

	if filter.Skip > 0 {
		if filter.Skip >= len(matched) {
			matched = matched[:0]
		} else {
			matched = matched[filter.Skip:]
		}
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}

	return matched, nil
}

func (m *MockTaskStore) GetByID(ctx context.Context, owner, id uuid.UUID) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, owner, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.tasks {
		if t.ID == id && t.UserID == owner {
			cp := *t
			return &cp, nil
		}
	}
	return nil, store.ErrTaskNotFound
}

func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == task.ID && t.UserID == task.UserID {
			cp := *task
			m.tasks[i] = &cp
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (m *MockTaskStore) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, owner, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, t := range m.tasks {
		if t.ID == id && t.UserID == owner {
			m.tasks = append(m.tasks[:i], m.tasks[i+1:]...)
			return nil
		}
	}
	return store.ErrTaskNotFound
}

func (m *MockTaskStore) DeleteByOwner(ctx context.Context, owner uuid.UUID) error {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, owner)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if t.UserID != owner {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
	return nil
}

// WithTx returns the mock itself; transactions are not modeled.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}
