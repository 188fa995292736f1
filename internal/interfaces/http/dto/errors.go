package dto

import "net/http"

// Error codes returned in ErrorInfo.Code. Format: ERR_<DESCRIPTION>

// General error codes
const (
	ErrCodeUnknown  = "ERR_UNKNOWN"
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	ErrCodeValidation      = "ERR_VALIDATION"
	ErrCodeBadRequest      = "ERR_BAD_REQUEST"
	ErrCodeInvalidInput    = "ERR_INVALID_INPUT"
	ErrCodeInvalidJSON     = "ERR_INVALID_JSON"
	ErrCodeRequestTooLarge = "ERR_REQUEST_TOO_LARGE"
)

// Authentication error codes
const (
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeAccountLocked      = "ERR_ACCOUNT_LOCKED"
	ErrCodeTokenExpired       = "ERR_TOKEN_EXPIRED"
	ErrCodeTokenInvalid       = "ERR_TOKEN_INVALID"
	ErrCodeTokenRevoked       = "ERR_TOKEN_REVOKED"
	ErrCodeTokenMaxRefresh    = "ERR_TOKEN_MAX_REFRESH"
)

// Content error codes
const (
	ErrCodeNotFound             = "ERR_NOT_FOUND"
	ErrCodeInvalidState         = "ERR_INVALID_STATE"
	ErrCodeBusy                 = "ERR_BUSY"
	ErrCodeConfirmationRequired = "ERR_CONFIRMATION_REQUIRED"
	ErrCodeBackendUnavailable   = "ERR_BACKEND_UNAVAILABLE"
	ErrCodeWriteFailed          = "ERR_WRITE_FAILED"
	ErrCodeReorderFailed        = "ERR_REORDER_FAILED"
	ErrCodeAssetDeleteFailed    = "ERR_ASSET_DELETE_FAILED"
)

// Rate limiting error codes
const (
	ErrCodeRateLimited = "ERR_RATE_LIMITED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:      http.StatusBadRequest,
	ErrCodeBadRequest:      http.StatusBadRequest,
	ErrCodeInvalidInput:    http.StatusBadRequest,
	ErrCodeInvalidJSON:     http.StatusBadRequest,
	ErrCodeRequestTooLarge: http.StatusRequestEntityTooLarge,

	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeInvalidCredentials: http.StatusUnauthorized,
	ErrCodeAccountLocked:      http.StatusTooManyRequests,
	ErrCodeTokenExpired:       http.StatusUnauthorized,
	ErrCodeTokenInvalid:       http.StatusUnauthorized,
	ErrCodeTokenRevoked:       http.StatusUnauthorized,
	ErrCodeTokenMaxRefresh:    http.StatusUnauthorized,

	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeInvalidState: http.StatusConflict,
	ErrCodeBusy:         http.StatusConflict,
	// the client must repeat the request with confirm=true
	ErrCodeConfirmationRequired: http.StatusPreconditionRequired,
	ErrCodeBackendUnavailable:   http.StatusServiceUnavailable,
	ErrCodeWriteFailed:          http.StatusBadGateway,
	ErrCodeReorderFailed:        http.StatusBadGateway,
	ErrCodeAssetDeleteFailed:    http.StatusBadGateway,

	ErrCodeRateLimited: http.StatusTooManyRequests,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps the codes carried by domain errors to API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":             ErrCodeNotFound,
	"INVALID_INPUT":         ErrCodeInvalidInput,
	"VALIDATION_ERROR":      ErrCodeValidation,
	"UNAUTHORIZED":          ErrCodeUnauthorized,
	"INVALID_STATE":         ErrCodeInvalidState,
	"BUSY":                  ErrCodeBusy,
	"CONFIRMATION_REQUIRED": ErrCodeConfirmationRequired,
	"BACKEND_UNAVAILABLE":   ErrCodeBackendUnavailable,
	"WRITE_FAILED":          ErrCodeWriteFailed,
	"REORDER_FAILED":        ErrCodeReorderFailed,
	"ASSET_DELETE_FAILED":   ErrCodeAssetDeleteFailed,
	"INVALID_CREDENTIALS":   ErrCodeInvalidCredentials,
	"ACCOUNT_LOCKED":        ErrCodeAccountLocked,
	"TOKEN_EXPIRED":         ErrCodeTokenExpired,
	"TOKEN_INVALID":         ErrCodeTokenInvalid,
	"TOKEN_REVOKED":         ErrCodeTokenRevoked,
	"TOKEN_MAX_REFRESH":     ErrCodeTokenMaxRefresh,
	"INTERNAL_ERROR":        ErrCodeInternal,
}

// NormalizeErrorCode converts a domain error code to its API form.
// Codes already in API form or unknown are returned as-is.
func NormalizeErrorCode(code string) string {
	if apiCode, ok := DomainErrorCodeMapping[code]; ok {
		return apiCode
	}
	return code
}
