// Package errors defines the error taxonomy shared by the submission pipeline.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	ErrCodeUnknownEntryType ErrorCode = "UNKNOWN_ENTRY_TYPE"
	ErrCodeMissingField     ErrorCode = "MISSING_REQUIRED_FIELD"
	ErrCodeInvalidBody      ErrorCode = "INVALID_REQUEST_BODY"

	ErrCodeRemoteFailed        ErrorCode = "REMOTE_CALL_FAILED"
	ErrCodeRemoteNotConfigured ErrorCode = "REMOTE_NOT_CONFIGURED"

	ErrCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
)

// ValidationError reports a bad or missing input shape. It never leaves the process.
type ValidationError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details []string  `json:"details,omitempty"`
}

func (e *ValidationError) Error() string {
	if len(e.Details) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.Details, "; "))
}

// NewValidationError creates a validation error with optional details.
func NewValidationError(code ErrorCode, message string, details ...string) *ValidationError {
	return &ValidationError{
		Code:    code,
		Message: message,
		Details: details,
	}
}

// NewMissingFieldError reports an empty required field by its wire name.
func NewMissingFieldError(field string) *ValidationError {
	return &ValidationError{
		Code:    ErrCodeMissingField,
		Message: "missing required field: " + field,
	}
}

// RemoteError reports a failed call to a third-party system.
// Status is zero when the request never produced an HTTP response.
type RemoteError struct {
	System  string    `json:"system"`
	Status  int       `json:"status,omitempty"`
	Code    string    `json:"code,omitempty"`
	Message string    `json:"message"`
	Kind    ErrorCode `json:"kind"`
	Err     error     `json:"-"`
}

func (e *RemoteError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s request failed: %s", e.System, e.Message)
	}
	return fmt.Sprintf("%s request failed (status %d): %s", e.System, e.Status, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewNotConfiguredError is returned at call time when credentials for system are absent.
func NewNotConfiguredError(system, missing string) *RemoteError {
	return &RemoteError{
		System:  system,
		Message: fmt.Sprintf("%s is not configured (missing %s)", system, missing),
		Kind:    ErrCodeRemoteNotConfigured,
	}
}

// NewTransportError wraps a network fault that prevented any response.
func NewTransportError(system string, err error) *RemoteError {
	return &RemoteError{
		System:  system,
		Message: err.Error(),
		Kind:    ErrCodeRemoteFailed,
		Err:     err,
	}
}

// MethodNotAllowedError is returned for any verb other than the one a route accepts.
type MethodNotAllowedError struct {
	Method string
}

func (e *MethodNotAllowedError) Error() string {
	return fmt.Sprintf("method %s not allowed", e.Method)
}

// HTTPStatus maps an error from the pipeline to the status code reported to the caller.
func HTTPStatus(err error) int {
	var validationErr *ValidationError
	var methodErr *MethodNotAllowedError

	switch {
	case err == nil:
		return http.StatusOK
	case stderrors.As(err, &methodErr):
		return http.StatusMethodNotAllowed
	case stderrors.As(err, &validationErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AsValidation and AsRemote unwrap err into the typed error, if present.
func AsValidation(err error) (*ValidationError, bool) {
	var target *ValidationError
	ok := stderrors.As(err, &target)
	return target, ok
}

func AsRemote(err error) (*RemoteError, bool) {
	var target *RemoteError
	ok := stderrors.As(err, &target)
	return target, ok
}
