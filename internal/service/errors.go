package service

import (
	"errors"
	"fmt"

	"simplechat/internal/validation"
)

// The workflow operations report their outcome through a small error
// taxonomy instead of status codes: the transport layer maps these to HTTP.
var (
	ErrNotFound  = errors.New("not found")
	ErrForbidden = errors.New("forbidden")

	// ErrOwnsChats rejects deleting a user who still owns chats.
	ErrOwnsChats = errors.New("user still owns chats")
)

// ValidationError carries every violated rule, never just the first.
type ValidationError struct {
	Fields validation.Errors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Fields.String())
}

func validationFailed(errs validation.Errors) error {
	return &ValidationError{Fields: errs}
}
