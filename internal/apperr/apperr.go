package apperr

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

// Kind buckets every failure the API can surface. Validation, unauthorized,
// and conflict failures are terminal; only transient failures may be retried.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindConflict
	KindTransient
)

type Error struct {
	Kind    Kind
	Message string // human-readable, safe to return to clients
	Err     error  // raw diagnostic, logs only
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// Classify maps database and transport errors onto the taxonomy. Unknown
// errors come back as internal, which is terminal.
func Classify(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return Wrap(KindNotFound, "Record not found", err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(KindConflict, "Record already exists", err)
	case errors.Is(err, gorm.ErrCheckConstraintViolated), errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(KindValidation, "Invalid field value", err)
	case errors.Is(err, context.DeadlineExceeded):
		return Wrap(KindTransient, "Request timed out", err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return Wrap(KindTransient, "Request timed out", err)
	}

	// Drivers that gorm does not translate report constraints as text.
	if err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint") {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return Wrap(KindConflict, "Record already exists", err)
		}
		return Wrap(KindValidation, "Invalid field value", err)
	}

	return Wrap(KindInternal, "Internal server error", err)
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// Retryable reports whether the failure is transient. Everything else must
// not be retried.
func Retryable(err error) bool {
	return KindOf(err) == KindTransient
}

func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the client-facing message for an error, hiding raw
// diagnostics behind a generic message when the error was never classified.
func Message(err error) string {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return "Internal server error"
}
