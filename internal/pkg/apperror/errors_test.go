package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodeToHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeMissingField, http.StatusBadRequest},
		{ErrCodeInsufficientData, http.StatusBadRequest},
		{ErrCodeConflict, http.StatusConflict},
		{ErrCodeModelUnavailable, http.StatusServiceUnavailable},
		{ErrCodeUpstream, http.StatusBadGateway},
		{ErrCodeInternal, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus, tt.code)
	}
}

func TestInsufficientDataStatuses(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, ErrNoTrainingData.HTTPStatus)
	assert.Equal(t, http.StatusBadRequest, ErrNoValidTrainingData.HTTPStatus)
	assert.True(t, IsInsufficientData(ErrNoTrainingData))
	assert.True(t, IsInsufficientData(ErrNoValidTrainingData))
}

func TestWithCauseKeepsSentinelIntact(t *testing.T) {
	cause := errors.New("sql: no rows")
	err := ErrApplicationNotFound.WithCause(cause)

	assert.ErrorIs(t, err, cause)
	assert.Nil(t, ErrApplicationNotFound.Cause)
	assert.True(t, IsNotFound(fmt.Errorf("service: %w", err)))
}

func TestMissingField(t *testing.T) {
	err := MissingField("Liderazgo")

	assert.True(t, IsMissingField(err))
	assert.Equal(t, "Falta la competencia requerida: Liderazgo", err.Message)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
}
