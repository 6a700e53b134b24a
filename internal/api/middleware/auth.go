// Package middleware provides HTTP middleware for the API: request tracing
// and session token authentication.
package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/TomGruner85/task-manager-api/internal/api/shared"
	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/TomGruner85/task-manager-api/internal/store"
	"github.com/google/uuid"
)

// AuthFailedMessage is the body of every authentication failure. Missing
// header, malformed header, bad signature, unknown user and revoked token
// all answer identically so a caller learns nothing about which check broke.
const AuthFailedMessage = "Please authenticate!"

// AuthMiddleware authenticates requests with Bearer session tokens.
//
// A token authenticates only if its signature verifies AND the exact token
// string is still on the user's persisted token list. Logout removes the
// string from the list, which is what actually revokes the session.
type AuthMiddleware struct {
	jwtService auth.JWTService
	userStore  store.UserStore
	logger     *slog.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(
	jwtService auth.JWTService,
	userStore store.UserStore,
	logger *slog.Logger,
) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		userStore:  userStore,
		logger:     logger.With("component", "auth_middleware"),
	}
}

// Authenticate validates the Bearer token and attaches the user ID and the
// token string to the request context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, token, err := m.authenticate(r)
		if err != nil {
			// Rejections log at WARN; repeated ones are worth noticing.
			shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
				AuthFailedMessage, err, shared.WithElevatedLogLevel())
			return
		}

		ctx := shared.WithUserID(r.Context(), userID)
		ctx = shared.WithAuthToken(ctx, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) authenticate(r *http.Request) (uuid.UUID, string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return uuid.Nil, "", auth.ErrMissingToken
	}

	// Tolerate extra whitespace between the scheme and the token.
	scheme, rest, found := strings.Cut(authHeader, " ")
	if !found || scheme != "Bearer" {
		return uuid.Nil, "", auth.ErrMissingToken
	}
	token := strings.TrimSpace(rest)
	if token == "" {
		return uuid.Nil, "", auth.ErrMissingToken
	}

	claims, err := m.jwtService.ValidateToken(r.Context(), token)
	if err != nil {
		m.logger.Debug("token validation failed", "trace_id", shared.GetTraceID(r.Context()))
		return uuid.Nil, "", fmt.Errorf("%w: %v", auth.ErrInvalidToken, err)
	}

	user, err := m.userStore.GetByID(r.Context(), claims.UserID)
	if err != nil {
		m.logger.Debug("token references unknown user",
			"trace_id", shared.GetTraceID(r.Context()),
			"user_id", claims.UserID)
		return uuid.Nil, "", fmt.Errorf("%w: unknown user", auth.ErrInvalidToken)
	}

	// The revocation check: a signature-valid token that has been logged
	// out is no longer on the list.
	if !user.HasToken(token) {
		m.logger.Debug("token has been revoked",
			"trace_id", shared.GetTraceID(r.Context()),
			"user_id", user.ID)
		return uuid.Nil, "", fmt.Errorf("%w: token revoked", auth.ErrInvalidToken)
	}

	return user.ID, token, nil
}

// GetUser loads the authenticated user for the request. Handlers that need
// the full record (profile, avatar, logout) use this instead of a bare ID.
func GetUser(r *http.Request, userStore store.UserStore) (*domain.User, error) {
	userID, err := shared.GetUserID(r.Context())
	if err != nil {
		return nil, err
	}
	return userStore.GetByID(r.Context(), userID)
}
