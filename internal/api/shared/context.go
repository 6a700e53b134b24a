// Package shared provides helpers used across all API handlers: context
// keys, request decoding and JSON response writing.
package shared

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/TomGruner85/task-manager-api/internal/domain"
	"github.com/google/uuid"
)

// ContextKey is the key type for request-scoped values.
type ContextKey string

const (
	// UserIDContextKey carries the authenticated user's ID.
	UserIDContextKey ContextKey = "userID"

	// AuthTokenContextKey carries the exact session token string the request
	// authenticated with, so logout can revoke precisely that token.
	AuthTokenContextKey ContextKey = "authToken"

	// TraceIDKey carries the per-request trace ID.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of random bytes in a trace ID.
	TraceIDLength = 16
)

// SetTraceID attaches a fresh random trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	b := make([]byte, TraceIDLength)
	if _, err := rand.Read(b); err != nil {
		// Fall back to a UUID; still unique per request.
		return context.WithValue(ctx, TraceIDKey, uuid.NewString())
	}
	return context.WithValue(ctx, TraceIDKey, hex.EncodeToString(b))
}

// GetTraceID retrieves the trace ID from the context, or "" when absent.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// WithUserID attaches the authenticated user's ID to the context.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, UserIDContextKey, userID)
}

// GetUserID retrieves the authenticated user's ID from the context.
// Returns domain.ErrUnauthorized when the request was not authenticated.
func GetUserID(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, domain.ErrUnauthorized
	}
	return userID, nil
}

// WithAuthToken attaches the session token the request authenticated with.
func WithAuthToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, AuthTokenContextKey, token)
}

// GetAuthToken retrieves the request's session token, or "" when absent.
func GetAuthToken(ctx context.Context) string {
	token, ok := ctx.Value(AuthTokenContextKey).(string)
	if !ok {
		return ""
	}
	return token
}
