package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TomGruner85/task-manager-api/internal/api"
	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/mocks"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTask(t *testing.T, owner uuid.UUID) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(owner, "buy milk", false)
	require.NoError(t, err)
	return task
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("returns 201 with the created task", func(t *testing.T) {
		t.Parallel()
		owner := uuid.New()
		task := testTask(t, owner)
		svc := &mocks.MockTaskService{
			CreateFn: func(ctx context.Context, o uuid.UUID, description string, completed bool) (*domain.Task, error) {
				assert.Equal(t, owner, o)
				assert.Equal(t, "buy milk", description)
				return task, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"description":"buy milk"}`))
		req = authedRequest(req, owner, "tok")
		rec := httptest.NewRecorder()

		handler.Create(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "buy milk", resp["description"])
		assert.Equal(t, owner.String(), resp["owner"])
	})

	t.Run("missing description answers 400", func(t *testing.T) {
		t.Parallel()
		handler := api.NewTaskHandler(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"completed":true}`))
		req = authedRequest(req, uuid.New(), "tok")
		rec := httptest.NewRecorder()

		handler.Create(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated answers 401", func(t *testing.T) {
		t.Parallel()
		handler := api.NewTaskHandler(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodPost, "/tasks", strings.NewReader(`{"description":"x"}`))
		rec := httptest.NewRecorder()

		handler.Create(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("passes parsed query parameters to the service", func(t *testing.T) {
		t.Parallel()
		owner := uuid.New()
		var gotFilter store.TaskFilter
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, o uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
				gotFilter = filter
				return []*domain.Task{}, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodGet,
			"/tasks?completed=true&sortBy=createdAt_desc&limit=10&skip=20", nil)
		req = authedRequest(req, owner, "tok")
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotFilter.Completed)
		assert.True(t, *gotFilter.Completed)
		assert.Equal(t, "createdAt", gotFilter.SortBy)
		assert.Equal(t, store.SortDesc, gotFilter.SortDir)
		assert.Equal(t, 10, gotFilter.Limit)
		assert.Equal(t, 20, gotFilter.Skip)
	})

	t.Run("sortBy without direction defaults ascending", func(t *testing.T) {
		t.Parallel()
		var gotFilter store.TaskFilter
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, o uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
				gotFilter = filter
				return []*domain.Task{}, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/tasks?sortBy=description", nil)
		req = authedRequest(req, uuid.New(), "tok")
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, "description", gotFilter.SortBy)
		assert.Equal(t, store.SortAsc, gotFilter.SortDir)
	})

	t.Run("unparseable values are ignored", func(t *testing.T) {
		t.Parallel()
		var gotFilter store.TaskFilter
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, o uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
				gotFilter = filter
				return []*domain.Task{}, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodGet, "/tasks?completed=maybe&limit=lots&skip=-3", nil)
		req = authedRequest(req, uuid.New(), "tok")
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Nil(t, gotFilter.Completed)
		assert.Zero(t, gotFilter.Limit)
		assert.Zero(t, gotFilter.Skip)
	})

	t.Run("empty listing is a JSON array", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{
			ListFn: func(ctx context.Context, o uuid.UUID, filter store.TaskFilter) ([]*domain.Task, error) {
				return nil, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := authedRequest(httptest.NewRequest(http.MethodGet, "/tasks", nil), uuid.New(), "tok")
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})
}

func TestTaskHandlerGet(t *testing.T) {
	t.Parallel()

	t.Run("unknown or foreign task answers 404", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{
			GetFn: func(ctx context.Context, owner, taskID uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		handler := api.NewTaskHandler(svc)

		taskID := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/tasks/"+taskID.String(), nil)
		req = authedRequest(req, uuid.New(), "tok")
		req = withChiParam(req, "id", taskID.String())
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Task not found"}`, rec.Body.String())
	})

	t.Run("malformed task id answers 400", func(t *testing.T) {
		t.Parallel()
		handler := api.NewTaskHandler(&mocks.MockTaskService{})

		req := httptest.NewRequest(http.MethodGet, "/tasks/not-a-uuid", nil)
		req = authedRequest(req, uuid.New(), "tok")
		req = withChiParam(req, "id", "not-a-uuid")
		rec := httptest.NewRecorder()

		handler.Get(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("applies the patch", func(t *testing.T) {
		t.Parallel()
		owner := uuid.New()
		task := testTask(t, owner)
		task.Completed = true
		svc := &mocks.MockTaskService{
			UpdateFn: func(ctx context.Context, o, taskID uuid.UUID, updates map[string]any) (*domain.Task, error) {
				assert.Equal(t, map[string]any{"completed": true}, updates)
				return task, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+task.ID.String(),
			strings.NewReader(`{"completed":true}`))
		req = authedRequest(req, owner, "tok")
		req = withChiParam(req, "id", task.ID.String())
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"completed":true`)
	})

	t.Run("disallowed field answers Invalid update attempt", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{
			UpdateFn: func(ctx context.Context, o, taskID uuid.UUID, updates map[string]any) (*domain.Task, error) {
				return nil, domain.ErrDisallowedField
			},
		}
		handler := api.NewTaskHandler(svc)

		taskID := uuid.New()
		req := httptest.NewRequest(http.MethodPatch, "/tasks/"+taskID.String(),
			strings.NewReader(`{"owner":"someone-else"}`))
		req = authedRequest(req, uuid.New(), "tok")
		req = withChiParam(req, "id", taskID.String())
		rec := httptest.NewRecorder()

		handler.Update(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid update attempt!"}`, rec.Body.String())
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	t.Run("echoes the removed task", func(t *testing.T) {
		t.Parallel()
		owner := uuid.New()
		task := testTask(t, owner)
		svc := &mocks.MockTaskService{
			DeleteFn: func(ctx context.Context, o, taskID uuid.UUID) (*domain.Task, error) {
				assert.Equal(t, task.ID, taskID)
				return task, nil
			},
		}
		handler := api.NewTaskHandler(svc)

		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+task.ID.String(), nil)
		req = authedRequest(req, owner, "tok")
		req = withChiParam(req, "id", task.ID.String())
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "buy milk")
	})

	t.Run("foreign task answers 404", func(t *testing.T) {
		t.Parallel()
		svc := &mocks.MockTaskService{
			DeleteFn: func(ctx context.Context, o, taskID uuid.UUID) (*domain.Task, error) {
				return nil, store.ErrTaskNotFound
			},
		}
		handler := api.NewTaskHandler(svc)

		taskID := uuid.New()
		req := httptest.NewRequest(http.MethodDelete, "/tasks/"+taskID.String(), nil)
		req = authedRequest(req, uuid.New(), "tok")
		req = withChiParam(req, "id", taskID.String())
		rec := httptest.NewRecorder()

		handler.Delete(rec, req)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
