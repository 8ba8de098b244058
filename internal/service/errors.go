package service

import (
	"errors"
	"strings"
)

var (
	ErrDuplicateEmail     = errors.New("user already exists")
	ErrDuplicateUsername  = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingCredentials = errors.New("please provide email and password")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("not authorized")
	ErrInvalidID          = errors.New("invalid id format")
	ErrNotFound           = errors.New("not found")
)

// ValidationError lists every field that failed validation.
type ValidationError struct {
	Messages []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages, "; ")
}

func validationFailed(msgs ...string) error {
	return &ValidationError{Messages: msgs}
}
