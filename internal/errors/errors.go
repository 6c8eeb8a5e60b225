package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError is the central interface for every custom storefront error.
// Handlers use it to read the category, the HTTP status and the response body.
type AppError interface {
	Error() string
	Category() string
	HTTPStatus() int
	Body() map[string]interface{}
	Unwrap() error
}

// --- Domain errors ---

// ValidationError carries every rule violation of a request, in the order the rules ran.
type ValidationError struct {
	Msgs []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Msgs, "; "))
}
func (e *ValidationError) Category() string { return "VALIDATION_ERROR" }
func (e *ValidationError) HTTPStatus() int  { return http.StatusBadRequest }
func (e *ValidationError) Unwrap() error    { return nil }
func (e *ValidationError) Body() map[string]interface{} {
	return map[string]interface{}{"errors": e.Msgs}
}

// NewValidationError creates a validation error with one or more messages.
func NewValidationError(msgs ...string) AppError {
	return &ValidationError{Msgs: msgs}
}

// NotFoundError means the requested resource does not exist.
type NotFoundError struct {
	Msg string
}

func (e *NotFoundError) Error() string    { return fmt.Sprintf("not found: %s", e.Msg) }
func (e *NotFoundError) Category() string { return "NOT_FOUND" }
func (e *NotFoundError) HTTPStatus() int  { return http.StatusNotFound }
func (e *NotFoundError) Unwrap() error    { return nil }
func (e *NotFoundError) Body() map[string]interface{} {
	return map[string]interface{}{"message": e.Msg}
}

// NewNotFoundError creates a new not-found error.
func NewNotFoundError(msg string) AppError {
	return &NotFoundError{Msg: msg}
}

// UnauthorizedError covers missing, invalid or expired credentials.
type UnauthorizedError struct {
	Msg string
}

func (e *UnauthorizedError) Error() string    { return fmt.Sprintf("unauthorized: %s", e.Msg) }
func (e *UnauthorizedError) Category() string { return "UNAUTHORIZED" }
func (e *UnauthorizedError) HTTPStatus() int  { return http.StatusUnauthorized }
func (e *UnauthorizedError) Unwrap() error    { return nil }
func (e *UnauthorizedError) Body() map[string]interface{} {
	return map[string]interface{}{"message": e.Msg}
}

// NewUnauthorizedError creates a new 401 error.
func NewUnauthorizedError(msg string) AppError {
	return &UnauthorizedError{Msg: msg}
}

// ConflictError is a business rule conflict (duplicate resource, row still referenced).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string    { return fmt.Sprintf("conflict: %s", e.Msg) }
func (e *ConflictError) Category() string { return "CONFLICT" }
func (e *ConflictError) HTTPStatus() int  { return http.StatusConflict }
func (e *ConflictError) Unwrap() error    { return nil }
func (e *ConflictError) Body() map[string]interface{} {
	return map[string]interface{}{"message": e.Msg}
}

// NewConflictError creates a new conflict error.
func NewConflictError(msg string) AppError {
	return &ConflictError{Msg: msg}
}

// --- Infrastructure errors ---

// InternalError is an unexpected failure in the server, a service or a repository.
// Msg is the client-facing description of the failed operation, Err the underlying cause.
type InternalError struct {
	Msg string
	Err error
}

func (e *InternalError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("internal error: %s", e.Msg)
	}
	return fmt.Sprintf("internal error: %s: %s", e.Msg, e.Err.Error())
}
func (e *InternalError) Category() string { return "INTERNAL_ERROR" }
func (e *InternalError) HTTPStatus() int  { return http.StatusInternalServerError }
func (e *InternalError) Unwrap() error    { return e.Err }
func (e *InternalError) Body() map[string]interface{} {
	body := map[string]interface{}{"message": e.Msg}
	if e.Err != nil {
		body["error"] = e.Err.Error()
	}
	return body
}

// NewInternalError creates a server error (unexpected logic or infrastructure failure).
func NewInternalError(msg string, err error) AppError {
	return &InternalError{Msg: msg, Err: err}
}

// NewDBError is a shortcut for an InternalError raised by a database call.
func NewDBError(msg string, err error) AppError {
	return NewInternalError(fmt.Sprintf("%s (DB)", msg), err)
}

// WithMessage re-labels an internal error with the operation-specific message shown to the
// client, keeping the root cause. Other errors are returned untouched.
func WithMessage(err error, msg string) error {
	var internalErr *InternalError
	if stderrors.As(err, &internalErr) {
		return &InternalError{Msg: msg, Err: rootCause(internalErr)}
	}
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return err
	}
	return &InternalError{Msg: msg, Err: err}
}

func rootCause(err *InternalError) error {
	if err.Err == nil {
		return stderrors.New(err.Msg)
	}
	return err.Err
}

// --- Handler helper ---

// MapToHTTPStatus translates any error into an HTTP status, a category and a JSON body.
func MapToHTTPStatus(err error) (int, string, map[string]interface{}) {
	var appErr AppError
	if stderrors.As(err, &appErr) {
		return appErr.HTTPStatus(), appErr.Category(), appErr.Body()
	}

	return http.StatusInternalServerError, "UNKNOWN_ERROR", map[string]interface{}{
		"message": "Internal server error",
		"error":   err.Error(),
	}
}
