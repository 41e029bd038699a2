package dto

import (
	"net/http"
	"strings"
)

// Generic error codes used by handlers and middleware
const (
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeValidation   = "VALIDATION_ERROR"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeConflict     = "CONFLICT"
	ErrCodeRateLimited  = "RATE_LIMITED"
)

// domainErrorHTTPStatus maps domain error codes to HTTP status codes.
// Codes not listed here fall back to a family default in GetHTTPStatus.
var domainErrorHTTPStatus = map[string]int{
	// Generic
	ErrCodeInternal:     http.StatusInternalServerError,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeForbidden:    http.StatusForbidden,
	ErrCodeNotFound:     http.StatusNotFound,
	ErrCodeConflict:     http.StatusConflict,
	ErrCodeRateLimited:  http.StatusTooManyRequests,

	// State machine violations -> 422 Unprocessable Entity
	"INVALID_TRANSITION":   http.StatusUnprocessableEntity,
	"INVALID_STATE":        http.StatusUnprocessableEntity,
	"INELIGIBLE_ORDER":     http.StatusUnprocessableEntity,
	"INSUFFICIENT_STOCK":   http.StatusUnprocessableEntity,
	"RESERVATION_MISMATCH": http.StatusUnprocessableEntity,
	"INACTIVE_CARRIER":     http.StatusUnprocessableEntity,

	// Uniqueness and concurrency -> 409 Conflict
	"DUPLICATE_ACTIVE_RETURN": http.StatusConflict,
	"DUPLICATE_SKU":           http.StatusConflict,
	"DUPLICATE_CODE":          http.StatusConflict,
	"DUPLICATE_EMAIL":         http.StatusConflict,
	"DUPLICATE_RECORD":        http.StatusConflict,
	"DUPLICATE_SHIPMENT":      http.StatusConflict,
	"DUPLICATE_ORDER_NUMBER":  http.StatusConflict,
	"DUPLICATE_RETURN_NUMBER": http.StatusConflict,
	"RECORD_IN_USE":           http.StatusConflict,
	"CONCURRENCY_CONFLICT":    http.StatusConflict,

	// Authentication -> 401 / 403
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"TOKEN_INVALID":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Lookups -> 404
	"USER_NOT_FOUND": http.StatusNotFound,
}

// GetHTTPStatus returns the HTTP status code for a domain error code.
// Unknown INVALID_* codes are treated as input validation failures; anything
// else unknown is reported as an internal error.
func GetHTTPStatus(code string) int {
	if status, ok := domainErrorHTTPStatus[code]; ok {
		return status
	}
	if strings.HasPrefix(code, "INVALID_") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
