package services

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials is returned on a failed login. The message is
	// deliberately generic.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrWeakPassword is returned when the password is shorter than six
	// characters.
	ErrWeakPassword = errors.New("password must be at least 6 characters")

	// ErrEmptyContent is returned when a remix request carries no usable text.
	ErrEmptyContent = errors.New("no content provided")

	// ErrAINotConfigured is returned when the upstream AI credential is
	// missing. Checked before any network call is attempted.
	ErrAINotConfigured = errors.New("AI service not configured")

	// ErrAIPolicyBlocked is returned when the targeted assignment disallows
	// AI assistance. Handlers surface it with a machine-readable flag.
	ErrAIPolicyBlocked = errors.New("AI assistance is not allowed for this assignment")
)

// MissingFieldError identifies a required request field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}
