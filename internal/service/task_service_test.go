package service

import (
	"context"
	"testing"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/mocks"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTaskService() (*TaskServiceImpl, *mocks.MockTaskStore) {
	taskStore := mocks.NewMockTaskStore()
	return NewTaskService(taskStore, discardLogger()), taskStore
}

func boolPtr(b bool) *bool { return &b }

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("creates a task owned by the caller", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()

		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)
		assert.Equal(t, owner, task.UserID)
		assert.Equal(t, "buy milk", task.Description)
		assert.False(t, task.Completed)
	})

	t.Run("rejects blank description", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()

		_, err := svc.Create(context.Background(), uuid.New(), "   ", false)
		assert.ErrorIs(t, err, domain.ErrEmptyDescription)
	})
}

func TestTaskServiceList(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, svc *TaskServiceImpl, owner uuid.UUID) {
		t.Helper()
		for _, tc := range []struct {
			desc string
			done bool
		}{
			{"alpha", false},
			{"bravo", true},
			{"charlie", false},
		} {
			_, err := svc.Create(context.Background(), owner, tc.desc, tc.done)
			require.NoError(t, err)
		}
	}

	t.Run("returns only the owner's tasks", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner, other := uuid.New(), uuid.New()
		seed(t, svc, owner)
		_, err := svc.Create(context.Background(), other, "not yours", false)
		require.NoError(t, err)

		tasks, err := svc.List(context.Background(), owner, store.TaskFilter{})
		require.NoError(t, err)
		assert.Len(t, tasks, 3)
		for _, task := range tasks {
			assert.Equal(t, owner, task.UserID)
		}
	})

	t.Run("filters by completion state", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()
		seed(t, svc, owner)

		done, err := svc.List(context.Background(), owner, store.TaskFilter{Completed: boolPtr(true)})
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, "bravo", done[0].Description)
	})

	t.Run("sorts and paginates", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()
		seed(t, svc, owner)

		tasks, err := svc.List(context.Background(), owner, store.TaskFilter{
			SortBy:  "description",
			SortDir: store.SortDesc,
			Skip:    1,
			Limit:   1,
		})
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "bravo", tasks[0].Description)
	})

	t.Run("empty result is a slice, not nil error", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()

		tasks, err := svc.List(context.Background(), uuid.New(), store.TaskFilter{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})
}

func TestTaskServiceGet(t *testing.T) {
	t.Parallel()

	t.Run("another user's task reads as not found", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner, intruder := uuid.New(), uuid.New()

		task, err := svc.Create(context.Background(), owner, "secret errand", false)
		require.NoError(t, err)

		_, err = svc.Get(context.Background(), intruder, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates allowed fields", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		updated, err := svc.Update(context.Background(), owner, task.ID, map[string]any{
			"description": "buy oat milk",
			"completed":   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "buy oat milk", updated.Description)
		assert.True(t, updated.Completed)
	})

	t.Run("rejects any disallowed field before applying", func(t *testing.T) {
		t.Parallel()
		svc, taskStore := newTaskService()
		owner := uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), owner, task.ID, map[string]any{
			"completed": true,
			"owner":     uuid.NewString(),
		})
		assert.ErrorIs(t, err, domain.ErrDisallowedField)

		stored, getErr := taskStore.GetByID(context.Background(), owner, task.ID)
		require.NoError(t, getErr)
		assert.False(t, stored.Completed, "nothing should have been applied")
	})

	t.Run("cannot update another user's task", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner, intruder := uuid.New(), uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), intruder, task.ID, map[string]any{
			"completed": true,
		})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("rejects wrongly typed values", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		_, err = svc.Update(context.Background(), owner, task.ID, map[string]any{
			"completed": "yes",
		})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("deletes and returns the removed task", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner := uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		deleted, err := svc.Delete(context.Background(), owner, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, deleted.ID)

		_, err = svc.Get(context.Background(), owner, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("cannot delete another user's task", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTaskService()
		owner, intruder := uuid.New(), uuid.New()
		task, err := svc.Create(context.Background(), owner, "buy milk", false)
		require.NoError(t, err)

		_, err = svc.Delete(context.Background(), intruder, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = svc.Get(context.Background(), owner, task.ID)
		assert.NoError(t, err, "task should still exist for its owner")
	})
}
