// Package apperror defines the error kinds shared by the service, repository
// and api layers. Handlers translate a Kind into an HTTP status.
package apperror

import (
	stderrors "errors"
	"fmt"
	"io"

	pkgerrors "github.com/pkg/errors"
)

// Kind classifies an error for the transport layer.
type Kind int

const (
	Internal Kind = iota
	BadRequest
	Validation
	Conflict
	NotFound
	Unauthorized
	Forbidden
)

func (k Kind) String() string {
	switch k {
	case BadRequest:
		return "bad_request"
	case Validation:
		return "validation"
	case Conflict:
		return "conflict"
	case NotFound:
		return "not_found"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	default:
		return "internal"
	}
}

// Error carries a Kind, a client-safe message and an optional cause.
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

// Format prints the cause with its stack trace for %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') && e.Err != nil {
			fmt.Fprintf(s, "%s: %+v", e.Message, e.Err)
			return
		}
		io.WriteString(s, e.Error())
	case 's':
		io.WriteString(s, e.Error())
	case 'q':
		fmt.Fprintf(s, "%q", e.Error())
	}
}

// New returns an error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to cause. The cause keeps a stack trace.
func Wrap(cause error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Err: pkgerrors.WithStack(cause)}
}

// Internalf wraps an unexpected failure.
func Internalf(cause error, format string, args ...any) *Error {
	return &Error{Kind: Internal, Message: "internal server error", Err: pkgerrors.Wrapf(cause, format, args...)}
}

// KindOf returns the kind of the first *Error in err's chain, or Internal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the client-safe message for err.
func MessageOf(err error) string {
	var e *Error
	if stderrors.As(err, &e) && e.Kind != Internal {
		return e.Message
	}
	return "internal server error"
}
