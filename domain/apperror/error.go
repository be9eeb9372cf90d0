package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a failure independently of transport.
type Kind int

const (
	Internal Kind = iota
	InvalidInput
	NotFound
	Forbidden
	Conflict
	Unauthorized
	UpstreamFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid_input"
	case NotFound:
		return "not_found"
	case Forbidden:
		return "forbidden"
	case Conflict:
		return "conflict"
	case Unauthorized:
		return "unauthorized"
	case UpstreamFailure:
		return "upstream_failure"
	default:
		return "internal"
	}
}

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case InvalidInput:
		return http.StatusBadRequest
	case NotFound:
		return http.StatusNotFound
	case Forbidden:
		return http.StatusForbidden
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case UpstreamFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// Error carries a client-safe Message; Err holds the underlying cause and is
// never rendered to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewInvalidInput(message string) *Error { return New(InvalidInput, message) }
func NewNotFound(message string) *Error     { return New(NotFound, message) }
func NewForbidden(message string) *Error    { return New(Forbidden, message) }
func NewConflict(message string) *Error     { return New(Conflict, message) }
func NewUnauthorized(message string) *Error { return New(Unauthorized, message) }

func NewUpstream(message string, err error) *Error { return Wrap(UpstreamFailure, message, err) }
func NewInternal(message string, err error) *Error { return Wrap(Internal, message, err) }

// KindOf reports the kind of err, defaulting to Internal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var appErr *Error
	return errors.As(err, &appErr) && appErr.Kind == kind
}

// PublicMessage returns the message safe to show a caller.
func PublicMessage(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return "something went wrong"
}
