// Package errors defines the error families shared by every layer.
//
// Services wrap their sentinels in one of the families so handlers and the
// client state container can react to the family without knowing every
// sentinel.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation input rejected before reaching the store
	ErrValidation = errors.New("validation failed")
	// ErrNotFound referenced record does not exist
	ErrNotFound = errors.New("not found")
	// ErrStore persistence or transport failure; nothing was changed
	ErrStore = errors.New("store unavailable")
)

// Validation builds a validation error carrying a user-facing message
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// NotFound builds a not-found error for the named entity
func NotFound(entity string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, entity)
}

// Store wraps err as a store failure
func Store(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %v", ErrStore, err)
}

// IsValidation reports whether err belongs to the validation family
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsNotFound reports whether err belongs to the not-found family
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsStore reports whether err belongs to the store family
func IsStore(err error) bool { return errors.Is(err, ErrStore) }

// Message returns the user-facing part of a family error
func Message(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, family := range []error{ErrValidation, ErrNotFound, ErrStore} {
		prefix := family.Error() + ": "
		if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
			return msg[len(prefix):]
		}
	}
	return msg
}
