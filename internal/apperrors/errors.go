package apperrors

import (
	"errors"
)

// Kind classifies an error for propagation to the caller.
type Kind int

// Error kinds. Internal is the zero value so unknown errors fail safe.
const (
	Internal Kind = iota
	Validation
	Auth
	NotFound
	Conflict
	Upstream
)

// String returns the kind name used in logs.
func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case Auth:
		return "auth"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case Upstream:
		return "upstream"
	default:
		return "internal"
	}
}

// Error is an error tagged with a Kind and a caller-safe message.
type Error struct {
	Kind    Kind   // Error classification
	Message string // Message safe to show to the end user
	Err     error  // Underlying cause, diagnostic only
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same kind and message.
// It lets package-level sentinels match wrapped copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// New creates an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap creates an error of the given kind carrying cause.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, Err: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// MessageOf returns the caller-safe message of err.
// Errors outside the taxonomy yield a generic message.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "Internal server error"
}
