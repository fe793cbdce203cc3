package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure. The gateway maps each kind to one
// HTTP status.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	default:
		return "internal"
	}
}

// Error is returned by every service operation that fails. Message is safe
// to show to clients; Err is the underlying cause, if any.
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

func (e *Error) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidCredentials = &Error{Kind: KindUnauthorized, Message: "invalid credentials"}
	ErrInvalidToken       = &Error{Kind: KindUnauthorized, Message: "invalid token"}
	ErrTokenExpired       = &Error{Kind: KindUnauthorized, Message: "token has expired"}
	ErrNotOwner           = &Error{Kind: KindForbidden, Message: "not authorized to modify this recipe"}
)

func ErrValidation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound reports a missing entity, e.g. ErrNotFound("recipe").
func ErrNotFound(entity string) error {
	return &Error{Kind: KindNotFound, Message: entity + " not found"}
}

func ErrConflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// ErrInternal wraps an unexpected failure. The message is logged, never
// shown to clients.
func ErrInternal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf returns the kind of err. Errors not produced by this package are
// Internal.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

// MessageOf returns the client-facing message for err.
func MessageOf(err error) string {
	var svcErr *Error
	if errors.As(err, &svcErr) && svcErr.Kind != KindInternal {
		return svcErr.Message
	}
	return "internal server error"
}
