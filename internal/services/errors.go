package services

import (
	"errors"
	"fmt"

	"taskly/internal/repositories"
)

// Error kinds. Handlers map these to HTTP statuses with errors.Is.
var (
	ErrUnauthorized     = errors.New("unauthorized")
	ErrForbidden        = errors.New("forbidden")
	ErrInvalidState     = errors.New("invalid state")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrValidation       = errors.New("validation failed")
)

// Error is a refused operation: Kind says which rule failed, Reason is the message shown to the user.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string { return e.Reason }
func (e *Error) Unwrap() error { return e.Kind }

func fail(kind error, reason string) error {
	return &Error{Kind: kind, Reason: reason}
}

func failf(kind error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Reason: fmt.Sprintf(format, args...)}
}

// storeErr turns repository sentinels into service kinds and wraps everything else.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, repositories.ErrNotFound):
		return failf(ErrNotFound, "%s not found", what)
	case errors.Is(err, repositories.ErrStaleVersion):
		return failf(ErrConflict, "%s was changed by someone else, reload and try again", what)
	}
	return fmt.Errorf("%s: %w", what, err)
}
