package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError_PassesThroughWrapped(t *testing.T) {
	err := fmt.Errorf("create quote: %w", NewNotFoundError("Client"))

	appErr := GetAppError(err)

	assert.Equal(t, http.StatusNotFound, appErr.Code)
	assert.Equal(t, "Client not found", appErr.Message)
}

func TestGetAppError_HidesUnknownErrors(t *testing.T) {
	cause := errors.New("pq: connection refused")

	appErr := GetAppError(cause)

	assert.Equal(t, http.StatusInternalServerError, appErr.Code)
	assert.Equal(t, "Internal server error", appErr.Message)
	assert.ErrorIs(t, appErr, cause)
}

func TestNewFieldError(t *testing.T) {
	cause := errors.New("must be between 0 and 100")

	appErr := NewFieldError("discount_pct", cause)

	assert.Equal(t, http.StatusUnprocessableEntity, appErr.Code)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "discount_pct", appErr.Errors[0].Field)
	assert.ErrorIs(t, appErr, cause)
	assert.True(t, IsAppError(appErr))
}
