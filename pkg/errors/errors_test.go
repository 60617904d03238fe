package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "validation", err: NewMissingFieldError("businessName"), want: http.StatusBadRequest},
		{name: "wrapped validation", err: fmt.Errorf("compose: %w", NewMissingFieldError("email")), want: http.StatusBadRequest},
		{name: "method", err: &MethodNotAllowedError{Method: http.MethodGet}, want: http.StatusMethodNotAllowed},
		{name: "remote", err: &RemoteError{System: "notion", Status: 400, Message: "bad"}, want: http.StatusInternalServerError},
		{name: "plain", err: stderrors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}

func TestMissingFieldMessage(t *testing.T) {
	err := NewMissingFieldError("businessName")
	assert.Equal(t, "missing required field: businessName", err.Error())
	assert.Equal(t, ErrCodeMissingField, err.Code)
}

func TestRemoteErrorUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := fmt.Errorf("create page: %w", NewTransportError("notion", cause))

	remote, ok := AsRemote(err)
	require.True(t, ok)
	assert.Equal(t, 0, remote.Status)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "notion request failed: connection refused", remote.Error())

	withStatus := &RemoteError{System: "notion", Status: 401, Message: "unauthorized"}
	assert.Equal(t, "notion request failed (status 401): unauthorized", withStatus.Error())
}

func TestValidationErrorDetails(t *testing.T) {
	err := NewValidationError(ErrCodeInvalidBody, "invalid request body", "type: required", "projectData: wrong type")
	assert.Equal(t, "invalid request body: type: required; projectData: wrong type", err.Error())

	_, ok := AsValidation(err)
	assert.True(t, ok)
	_, ok = AsRemote(err)
	assert.False(t, ok)
}
