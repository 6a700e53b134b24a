// Package redact scrubs sensitive material out of error strings before they
// reach the logs. Error text in this service can carry session tokens,
// password fragments, email addresses and database connection strings; none
// of those belong in log storage.
package redact

import (
	"regexp"
	"strings"
)

var (
	// Three-part base64url, i.e. a compact JWS session token.
	jwtRegex = regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]+`)

	// A bcrypt hash as stored for user passwords.
	bcryptRegex = regexp.MustCompile(`\$2[aby]\$\d{2}\$[./A-Za-z0-9]{53}`)

	// Connection strings with inline credentials.
	connRegex = regexp.MustCompile(`(?i)(postgres(?:ql)?|mysql)://[^@\s]+@`)

	// password=..., password: ... style fragments.
	passwordRegex = regexp.MustCompile(`(?i)(password|passwd|secret)(['"\s:=]+)\S{3,}`)

	// Email addresses of registered users.
	emailRegex = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)
)

// String replaces sensitive fragments in s with placeholders.
func String(s string) string {
	if s == "" {
		return s
	}
	s = jwtRegex.ReplaceAllString(s, "[REDACTED_TOKEN]")
	s = bcryptRegex.ReplaceAllString(s, "[REDACTED_HASH]")
	s = connRegex.ReplaceAllString(s, "$1://[REDACTED_CREDENTIAL]@")
	s = passwordRegex.ReplaceAllString(s, "$1$2[REDACTED]")
	s = emailRegex.ReplaceAllString(s, "[REDACTED_EMAIL]")
	return s
}

// Error redacts an error's message. A nil error yields an empty string.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return strings.TrimSpace(String(err.Error()))
}
