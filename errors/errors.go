package errors

import (
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// --- Common Error Constructors ---

// InvalidInput creates a new AppError for invalid input.
func InvalidInput(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidInput, Message: fmt.Sprintf("Invalid input: %s", reason),
		HTTPStatus: http.StatusBadRequest, Details: details,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// MissingField creates a new AppError for a missing required field.
func MissingField(field string) *AppError {
	return &AppError{
		Code: ErrCodeMissingField, Message: fmt.Sprintf("Missing required field: %s", field),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{"field": field},
	}
}

// NotFound creates a new AppError for a reference that does not resolve.
func NotFound(resource, id string) *AppError {
	details := map[string]any{"resource": resource}
	if id != "" {
		details["id"] = id
	}
	return &AppError{
		Code: ErrCodeNotFound, Message: fmt.Sprintf("The requested %s was not found.", resource),
		HTTPStatus: http.StatusNotFound, Details: details,
	}
}

// ParseError creates a new AppError for a document that failed to decode.
// Line and column are recorded when positive.
func ParseError(file string, line, column int, cause error) *AppError {
	details := map[string]any{"file": file}
	where := file
	if line > 0 {
		details["line"] = line
		where = fmt.Sprintf("%s:%d", where, line)
		if column > 0 {
			details["column"] = column
			where = fmt.Sprintf("%s:%d", where, column)
		}
	}
	return &AppError{
		Code: ErrCodeParse, Message: fmt.Sprintf("Unable to parse %s", where),
		HTTPStatus: http.StatusBadRequest, Details: details, Cause: cause,
	}
}

// UnsupportedVersion creates a new AppError for an unknown document version.
func UnsupportedVersion(got string, supported ...string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedVersion, Message: fmt.Sprintf("Unsupported document version %q", got),
		HTTPStatus: http.StatusBadRequest,
		Details: map[string]any{"version": got, "supported": supported},
	}
}

// CyclicGraph creates a new AppError for a dependency cycle along path.
func CyclicGraph(path []string) *AppError {
	return &AppError{
		Code: ErrCodeCyclicGraph, Message: "Circular dependencies detected.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{"path": path},
	}
}

// DependencyResolution creates a new AppError for nodes left unplaced.
func DependencyResolution(unresolved []string) *AppError {
	return &AppError{
		Code: ErrCodeDependencyResolution, Message: "Some dependencies could not be resolved.",
		HTTPStatus: http.StatusUnprocessableEntity,
		Details: map[string]any{"unresolved": unresolved},
	}
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}
