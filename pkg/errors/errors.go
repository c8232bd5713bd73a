// Package errors defines structured error types for the apiecho service.
// Each error carries a stable code and the HTTP status it should be surfaced with.
package errors

import (
	goerrors "errors"
	"net/http"
)

// Code identifies a class of error in responses and logs.
type Code string

const (
	// CodeInvalidPayload indicates a request body that is not a JSON object
	CodeInvalidPayload Code = "invalid_payload"

	// CodeBodyRead indicates the request body could not be read
	CodeBodyRead Code = "body_read_failed"

	// CodeInternal indicates an unexpected server-side failure
	CodeInternal Code = "internal_error"

	// CodeNotFound indicates an unknown route
	CodeNotFound Code = "not_found"
)

// ================================================================================
// Base Error Interface
// ================================================================================

// AppError represents a structured error with additional metadata
type AppError interface {
	error

	// Code returns the error code
	Code() Code

	// HTTPStatus returns the HTTP status code
	HTTPStatus() int

	// Description returns a human-readable description
	Description() string

	// Unwrap returns the underlying error for error chain support
	Unwrap() error

	// WithCause adds a cause error to the error chain
	WithCause(cause error) AppError

	// WithMetadata adds additional context metadata
	WithMetadata(key string, value interface{}) AppError

	// Metadata returns all metadata
	Metadata() map[string]interface{}
}

// ================================================================================
// Base Error Implementation
// ================================================================================

type baseError struct {
	code        Code
	httpStatus  int
	description string
	message     string
	cause       error
	metadata    map[string]interface{}
}

// Error renders the message followed by the cause, if any.
func (e *baseError) Error() string {
	msg := e.message
	if msg == "" {
		msg = e.description
	}
	if e.cause != nil {
		return msg + ": " + e.cause.Error()
	}
	return msg
}

func (e *baseError) Code() Code {
	return e.code
}

func (e *baseError) HTTPStatus() int {
	return e.httpStatus
}

func (e *baseError) Description() string {
	return e.description
}

func (e *baseError) Unwrap() error {
	return e.cause
}

func (e *baseError) WithCause(cause error) AppError {
	e.cause = cause
	return e
}

func (e *baseError) WithMetadata(key string, value interface{}) AppError {
	if e.metadata == nil {
		e.metadata = make(map[string]interface{})
	}
	e.metadata[key] = value
	return e
}

func (e *baseError) Metadata() map[string]interface{} {
	return e.metadata
}

// NewError creates a new AppError with the specified parameters
func NewError(code Code, httpStatus int, description string, message string) AppError {
	return &baseError{
		code:        code,
		httpStatus:  httpStatus,
		description: description,
		message:     message,
		metadata:    make(map[string]interface{}),
	}
}

// ================================================================================
// Predefined Error Constructors
// ================================================================================

// ErrInvalidPayload creates an invalid_payload error
func ErrInvalidPayload(message string) AppError {
	return NewError(
		CodeInvalidPayload,
		http.StatusBadRequest,
		"The request body must be a JSON object.",
		message,
	)
}

// ErrBodyRead creates a body_read_failed error
func ErrBodyRead(message string) AppError {
	return NewError(
		CodeBodyRead,
		http.StatusBadRequest,
		"The request body could not be read.",
		message,
	)
}

// ErrInternal creates an internal_error error
func ErrInternal(message string) AppError {
	return NewError(
		CodeInternal,
		http.StatusInternalServerError,
		"The server encountered an unexpected condition.",
		message,
	)
}

// ================================================================================
// Helpers
// ================================================================================

// AsAppError returns the first AppError in err's chain.
func AsAppError(err error) (AppError, bool) {
	var appErr AppError
	if goerrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err's chain contains an AppError with the given code.
func HasCode(err error, code Code) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code() == code
}

// HTTPStatusOf maps err to the status it should be answered with.
// Errors outside the AppError hierarchy are internal errors.
func HTTPStatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus()
	}
	return http.StatusInternalServerError
}
