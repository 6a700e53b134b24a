package mocks

import (
	"context"
	"fmt"
	"time"

	"github.com/TomGruner85/task-manager-api/internal/service/auth"
	"github.com/google/uuid"
)

// MockJWTService is a configurable mock implementation of auth.JWTService.
// Without overrides it issues predictable "token-for-<uuid>-<n>" strings and
// validates only tokens it issued itself.
type MockJWTService struct {
	issued map[string]uuid.UUID
	seq    int

	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)
}

var _ auth.JWTService = (*MockJWTService)(nil)

// NewMockJWTService creates a mock with no issued tokens.
func NewMockJWTService() *MockJWTService {
	return &MockJWTService{issued: make(map[string]uuid.UUID)}
}

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	m.seq++
	token := fmt.Sprintf("token-for-%s-%d", userID, m.seq)
	m.issued[token] = userID
	return token, nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	userID, ok := m.issued[tokenString]
	if !ok {
		return nil, auth.ErrInvalidToken
	}
	return &auth.Claims{
		UserID:   userID,
		Subject:  userID.String(),
		IssuedAt: time.Now().UTC(),
		ID:       uuid.NewString(),
	}, nil
}

// MockPasswordHasher implements auth.PasswordHasher with a reversible
// "hashed:" prefix so tests can assert on the stored value.
type MockPasswordHasher struct {
	HashFn func(password string) (string, error)
}

var _ auth.PasswordHasher = (*MockPasswordHasher)(nil)

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	return "hashed:" + password, nil
}

// MockPasswordVerifier implements auth.PasswordVerifier against
// MockPasswordHasher's "hashed:" prefix scheme.
type MockPasswordVerifier struct {
	CompareFn func(hashedPassword, password string) error
}

var _ auth.PasswordVerifier = (*MockPasswordVerifier)(nil)

func (m *MockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if hashedPassword != "hashed:"+password {
		return auth.ErrInvalidCredentials
	}
	return nil
}
