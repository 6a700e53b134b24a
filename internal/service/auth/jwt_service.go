package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// JWTService defines operations for managing JWT session tokens.
//
// Tokens carry only the user's identity. They are issued without an expiry
// claim; revocation happens solely by removing the token string from the
// user's persisted token list, so a signature-valid token is not enough to
// authenticate on its own.
type JWTService interface {
	// GenerateToken creates a signed session token for the given user.
	// Returns the token string or an error if signing fails.
	GenerateToken(ctx context.Context, userID uuid.UUID) (string, error)

	// ValidateToken checks the token's signature and payload and extracts
	// the claims. Returns ErrInvalidToken if the signature is invalid or the
	// payload is malformed.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// Claims is the decoded content of a session token.
type Claims struct {
	// UserID is the unique identifier of the user the token was issued for.
	UserID uuid.UUID `json:"uid"`

	// Standard registered JWT claims
	Subject  string    `json:"sub,omitempty"`
	IssuedAt time.Time `json:"iat,omitempty"`
	ID       string    `json:"jti,omitempty"`
}
