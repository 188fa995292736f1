package dto

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code     string
		expected int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeInvalidInput, http.StatusBadRequest},
		{ErrCodeRequestTooLarge, http.StatusRequestEntityTooLarge},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeTokenRevoked, http.StatusUnauthorized},
		{ErrCodeAccountLocked, http.StatusTooManyRequests},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeBusy, http.StatusConflict},
		{ErrCodeConfirmationRequired, http.StatusPreconditionRequired},
		{ErrCodeBackendUnavailable, http.StatusServiceUnavailable},
		{ErrCodeWriteFailed, http.StatusBadGateway},
		{ErrCodeReorderFailed, http.StatusBadGateway},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
		{"UNKNOWN_CODE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"NOT_FOUND", ErrCodeNotFound},
		{"VALIDATION_ERROR", ErrCodeValidation},
		{"BUSY", ErrCodeBusy},
		{"BACKEND_UNAVAILABLE", ErrCodeBackendUnavailable},
		{"TOKEN_EXPIRED", ErrCodeTokenExpired},
		{ErrCodeWriteFailed, ErrCodeWriteFailed},
		{"SOMETHING_ELSE", "SOMETHING_ELSE"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeErrorCode(tt.input))
		})
	}
}

func TestEveryDomainCodeHasAStatus(t *testing.T) {
	for domainCode, apiCode := range DomainErrorCodeMapping {
		_, ok := ErrorCodeHTTPStatus[apiCode]
		assert.True(t, ok, "%s maps to %s which has no status", domainCode, apiCode)
	}
}

func TestResponseJSON(t *testing.T) {
	t.Run("success omits error", func(t *testing.T) {
		data, err := json.Marshal(NewListResponse([]string{"a"}, 1))
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":true,"data":["a"],"meta":{"total":1}}`, string(data))
	})

	t.Run("validation error carries details", func(t *testing.T) {
		resp := NewValidationErrorResponse("Request validation failed", "req-1", []ValidationDetail{
			{Field: "title", Message: "Title is required"},
		})
		data, err := json.Marshal(resp)
		require.NoError(t, err)
		assert.JSONEq(t, `{"success":false,"error":{"code":"ERR_VALIDATION","message":"Request validation failed","request_id":"req-1","details":[{"field":"title","message":"Title is required"}]}}`, string(data))
	})
}
