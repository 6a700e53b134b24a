package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID       = errors.New("user ID cannot be empty")
	ErrEmptyName         = errors.New("name cannot be empty")
	ErrEmptyEmail        = errors.New("email cannot be empty")
	ErrInvalidEmail      = errors.New("invalid email format")
	ErrPasswordTooShort  = errors.New("password must be at least 6 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 72 characters long")
	ErrPasswordForbidden = errors.New("password cannot contain the phrase \"password\"")
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrNegativeAge       = errors.New("age must be a positive number")
)

// emailRegex is a pragmatic RFC 5322 subset; exotic addresses are rejected.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)+$`)

// User represents a registered account of the task manager.
// Tokens holds every currently valid session token; a token removed from
// this list is revoked even if its signature still verifies.
type User struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, present only during registration/updates
	HashedPassword string    `json:"-"` // Never expose the password hash in JSON
	Age            int       `json:"age"`
	Tokens         []string  `json:"-"` // Never expose issued tokens in JSON
	Avatar         []byte    `json:"-"` // 250x250 PNG, served by a dedicated endpoint
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a User from registration input. The name is trimmed and
// the email lowercased before validation. The plaintext password is carried
// on the struct and must be hashed by the caller before the user is stored.
func NewUser(name, email, password string, age int) (*User, error) {
	now := time.Now().UTC()
	user := &User{
		ID:        uuid.New(),
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  password,
		Age:       age,
		Tokens:    []string{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// NormalizeEmail canonicalizes an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Validate checks if the User has valid data.
// Returns the first error encountered, or nil.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if u.Name == "" {
		return ErrEmptyName
	}

	if u.Email == "" {
		return ErrEmptyEmail
	}

	if !emailRegex.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	if u.Age < 0 {
		return ErrNegativeAge
	}

	// A plaintext password is only present during registration or a password
	// change; otherwise the stored hash must exist.
	if u.Password != "" {
		if err := ValidatePassword(u.Password); err != nil {
			return err
		}
	} else if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidatePassword enforces the password rules: at least 6 characters,
// at most 72 (bcrypt's practical limit), and never containing the literal
// phrase "password" in any casing.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if strings.Contains(strings.ToLower(password), "password") {
		return ErrPasswordForbidden
	}
	return nil
}

// HasToken reports whether the exact token string is still on the user's
// token list, i.e. has not been revoked.
func (u *User) HasToken(token string) bool {
	for _, t := range u.Tokens {
		if t == token {
			return true
		}
	}
	return false
}

// AppendToken records a freshly issued session token.
func (u *User) AppendToken(token string) {
	u.Tokens = append(u.Tokens, token)
}

// RemoveToken drops exactly the matching token string from the list.
// Removing a token that is not present is a no-op.
func (u *User) RemoveToken(token string) {
	kept := u.Tokens[:0]
	for _, t := range u.Tokens {
		if t != token {
			kept = append(kept, t)
		}
	}
	u.Tokens = kept
}

// ClearTokens revokes every issued session token.
func (u *User) ClearTokens() {
	u.Tokens = []string{}
}
