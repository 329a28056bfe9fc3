package errx

import (
	"errors"
	"fmt"
)

// Kind classifies a failure by the port or invariant it came from. Steps use the
// kind to decide whether a failure is a recoverable turn error (captured in the
// conversation state and surfaced to the user) or a caller bug that must abort
// the whole graph invocation.
type Kind string

const (
	KindGeneration  Kind = "generation"
	KindExtraction  Kind = "extraction"
	KindPersistence Kind = "persistence"
	// KindFatal marks invariant violations (e.g. a reset with no session id).
	// These propagate out of the graph instead of landing in errorMessage.
	KindFatal Kind = "fatal"
)

const (
	GenerationErrorMessage  = "text generation failed"
	ExtractionErrorMessage  = "content extraction failed"
	PersistenceErrorMessage = "persistence operation failed"
)

// Error wraps an underlying error with a Kind and a safe, user-presentable message.
type Error struct {
	Kind    Kind
	Err     error
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error with the provided information.
func New(kind Kind, err error, message string) *Error {
	return &Error{
		Kind:    kind,
		Err:     err,
		Message: message,
	}
}

// Is reports whether the target matches the underlying error or the Error itself.
func (e *Error) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// As allows casting to Error or the wrapped error in a chain.
func (e *Error) As(target any) bool {
	if errors.As(e.Err, target) {
		return true
	}
	if t, ok := target.(**Error); ok {
		*t = e
		return true
	}
	return false
}

// KindOf returns the Kind of err when it is (or wraps) an *Error, and "" otherwise.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsFatal reports whether err is an invariant violation that must escape the graph.
func IsFatal(err error) bool {
	return KindOf(err) == KindFatal
}
