package xerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across services. Handlers translate these into HTTP
// statuses through the response package.
var (
	ErrNotFound       = errors.New("record not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrDuplicateEntry = errors.New("duplicate entry")
	ErrConflict       = errors.New("conflicting state")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrSessionExpired = errors.New("session expired")
	ErrRateLimited    = errors.New("too many requests")
	ErrInternal       = errors.New("internal error")
)

// Wrap prefixes err with a message while keeping it matchable via errors.Is.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether err matches the given sentinel.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// MessageOrDefault returns the error text, or fallback when err is nil.
func MessageOrDefault(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}
