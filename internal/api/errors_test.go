package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/TomGruner85/task-manager-api/internal/api"
	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid token", auth.ErrInvalidToken, http.StatusUnauthorized},
		{"missing token", auth.ErrMissingToken, http.StatusUnauthorized},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusBadRequest},
		{"user not found", store.ErrUserNotFound, http.StatusNotFound},
		{"task not found", store.ErrTaskNotFound, http.StatusNotFound},
		{"avatar not found", store.ErrAvatarNotFound, http.StatusNotFound},
		// A taken email is rejected like any other invalid registration input.
		{"duplicate email", store.ErrEmailExists, http.StatusBadRequest},
		{"weak password", domain.ErrPasswordTooShort, http.StatusBadRequest},
		{"disallowed field", domain.ErrDisallowedField, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, api.MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessageNeverLeaksInternals(t *testing.T) {
	t.Parallel()

	internal := errors.New("pq: connection to host db-1 failed")
	assert.Equal(t, "An unexpected error occurred", api.GetSafeErrorMessage(internal))
	assert.Equal(t, "Email already exists", api.GetSafeErrorMessage(store.ErrEmailExists))
}
