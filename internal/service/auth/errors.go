package auth

import "errors"

// Common authentication service errors
var (
	// ErrInvalidToken indicates the token is malformed or its signature
	// doesn't match the server secret.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrMissingToken indicates a token was expected but not provided.
	ErrMissingToken = errors.New("authentication token is missing")

	// ErrInvalidCredentials is returned for login failures. The message is
	// deliberately the same for an unknown email and a wrong password so a
	// caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("Unable to login!")
)
