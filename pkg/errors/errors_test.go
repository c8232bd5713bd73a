package errors_test

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/turtacn/apiecho/pkg/errors"
)

func TestInvalidPayloadCarriesCause(t *testing.T) {
	cause := goerrors.New("unexpected end of JSON input")
	err := errors.ErrInvalidPayload("Invalid JSON payload").WithCause(cause)

	assert.Equal(t, "Invalid JSON payload: unexpected end of JSON input", err.Error())
	assert.Equal(t, errors.CodeInvalidPayload, err.Code())
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus())
	assert.ErrorIs(t, err, cause)
}

func TestAsAppErrorThroughWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", errors.ErrBodyRead("read failed"))

	appErr, ok := errors.AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, errors.CodeBodyRead, appErr.Code())
	assert.True(t, errors.HasCode(wrapped, errors.CodeBodyRead))
	assert.False(t, errors.HasCode(wrapped, errors.CodeInvalidPayload))
}

func TestHTTPStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusOK, errors.HTTPStatusOf(nil))
	assert.Equal(t, http.StatusBadRequest, errors.HTTPStatusOf(errors.ErrInvalidPayload("x")))
	assert.Equal(t, http.StatusInternalServerError, errors.HTTPStatusOf(goerrors.New("boom")))
}

func TestWithMetadata(t *testing.T) {
	err := errors.ErrInternal("panic").WithMetadata("route", "/api")
	assert.Equal(t, "/api", err.Metadata()["route"])
	assert.Equal(t, "panic", err.Error())
}
