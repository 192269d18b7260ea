// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Application errors. All of them are fatal for a run except where noted.
var (
	// File system errors.
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")

	// Report structure errors.
	ErrSectionNotFound       = errors.New("section not found")
	ErrNoModesFound          = errors.New("no modes found")
	ErrNoContributionsParsed = errors.New("no contributions parsed")
	ErrDuplicateMode         = errors.New("duplicate mode index")

	// External analyzer errors.
	ErrToolNotFound        = errors.New("external tool not found")
	ErrExternalToolFailure = errors.New("external tool failed")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// UserMessage returns the user-facing message of err, falling back to err itself.
func UserMessage(err error) string {
	var userErr *UserError
	if errors.As(err, &userErr) {
		return userErr.Error()
	}
	return err.Error()
}
