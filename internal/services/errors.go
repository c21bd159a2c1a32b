package services

import (
	"errors"
	"fmt"

	"github.com/ossiecodes/mingle/internal/repositories"
)

// Kind classifies engine errors so the transport boundary can pick a
// status code without inspecting messages.
type Kind int

const (
	KindInternal Kind = iota
	KindInvalidInput
	KindNotFound
	KindConflict
	KindForbidden
)

// Error is the typed result every engine operation fails with. Engines
// never format transport-specific responses; handlers translate Kind.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput marks malformed or missing input.
func InvalidInput(message string) error {
	return &Error{Kind: KindInvalidInput, Message: message}
}

// NotFound marks a missing referenced entity.
func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict marks a state-machine violation (duplicate request, already
// following, re-handling a settled request).
func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Forbidden marks an action the caller is not allowed to take.
func Forbidden(message string) error {
	return &Error{Kind: KindForbidden, Message: message}
}

// Internal wraps an unexpected failure (storage errors and the like).
func Internal(err error) error {
	return &Error{Kind: KindInternal, Message: "Server error.", Err: err}
}

// KindOf extracts the Kind from an error, defaulting to KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the client-facing message from an error.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "Server error."
}

// storeErr converts a repository failure: a missing document becomes a
// NotFound with the given message, anything else is internal.
func storeErr(err error, notFoundMessage string) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return NotFound(notFoundMessage)
	}
	return Internal(err)
}
