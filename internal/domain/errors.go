package domain

import (
	"errors"
	"fmt"
)

// Error categories. Controllers map these to 404 / 409 / 400 respectively.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
)

// Conflict errors raised by the event lifecycle and request admission rules.
var (
	ErrInvalidStateAction   = fmt.Errorf("%w: invalid state action", ErrConflict)
	ErrPublishNotPending    = fmt.Errorf("%w: event must be PENDING to be published", ErrConflict)
	ErrRejectPublished      = fmt.Errorf("%w: cannot cancel an already-published event", ErrConflict)
	ErrInitiatorRequest     = fmt.Errorf("%w: initiator cannot request their own event", ErrConflict)
	ErrEventNotPublished    = fmt.Errorf("%w: cannot participate in an unpublished event", ErrConflict)
	ErrParticipantLimit     = fmt.Errorf("%w: participant limit has been reached", ErrConflict)
	ErrRequestNotPending    = fmt.Errorf("%w: all requests must be PENDING", ErrConflict)
	ErrDuplicateRequest     = fmt.Errorf("%w: request already exists", ErrConflict)
	ErrCategoryInUse        = fmt.Errorf("%w: the category is not empty", ErrConflict)
	ErrDuplicateEmail       = fmt.Errorf("%w: email already in use", ErrConflict)
	ErrDuplicateCategory    = fmt.Errorf("%w: category name already in use", ErrConflict)
	ErrDuplicateCompilation = fmt.Errorf("%w: compilation title already in use", ErrConflict)
)

// NotFoundf returns an error wrapping ErrNotFound with a formatted message.
func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

// Validationf returns an error wrapping ErrValidation with a formatted message.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
