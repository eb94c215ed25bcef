package apperror

import (
	"errors"
	"fmt"
)

const (
	CodeStoreUnavailable = "STORE_UNAVAILABLE"
	CodeNotFound         = "NOT_FOUND"
	CodeTimeout          = "TIMEOUT"
	CodeUnauthenticated  = "UNAUTHENTICATED"
	CodeForbidden        = "FORBIDDEN"
	CodeInvalidInput     = "INVALID_INPUT"
	CodeSuperseded       = "SUPERSEDED"
	CodeConflict         = "CONFLICT"
	CodeCanceled         = "CANCELED"
)

// AppError carries an error kind (Code) plus a user-facing message.
type AppError struct {
	Code    string
	Message string
	Err     error
	kind    *AppError
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.kind != nil {
		errs = append(errs, e.kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// Error kinds. Everything raised by the store and identity boundaries is one of these.
var (
	ErrStoreUnavailable = New(CodeStoreUnavailable, "directory store unavailable")
	ErrNotFound         = New(CodeNotFound, "record not found")
	ErrTimeout          = New(CodeTimeout, "directory store timed out")
	ErrUnauthenticated  = New(CodeUnauthenticated, "no authenticated identity")
	ErrForbidden        = New(CodeForbidden, "insufficient role")
	ErrInvalidInput     = New(CodeInvalidInput, "invalid input")
	ErrSuperseded       = New(CodeSuperseded, "load superseded by a newer request")
	ErrConflict         = New(CodeConflict, "record conflicts with an existing one")
	ErrCanceled         = New(CodeCanceled, "request canceled by the caller")
)

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// Wrap creates an AppError of the given kind wrapping err (which may be nil).
// errors.Is(result, kind) holds, and so does errors.Is(result, err).
func Wrap(kind *AppError, message string, err error) *AppError {
	return &AppError{Code: kind.Code, Message: message, Err: err, kind: kind}
}

// Code returns the kind code of err, or "" if err carries none.
func Code(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
