package apierror

import (
	"fmt"
	"net/http"
)

type APIError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Details    string `json:"details,omitempty"`
	HTTPStatus int    `json:"-"`
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}

	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func New(code string, message string, details string, status int) *APIError {
	return &APIError{Code: code, Message: message, Details: details, HTTPStatus: status}
}

// Validation signals malformed input, such as a bad email format.
func Validation(message string) *APIError {
	return New("VALIDATION_ERROR", message, "", http.StatusBadRequest)
}

// Duplicate signals a uniqueness violation (email or username already taken).
func Duplicate(message string) *APIError {
	return New("DUPLICATE", message, "", http.StatusBadRequest)
}

// Unauthorized covers bad credentials, disabled accounts and
// invalid/expired/revoked tokens alike.
func Unauthorized(message string) *APIError {
	return New("UNAUTHORIZED", message, "", http.StatusUnauthorized)
}

// Forbidden signals an authenticated caller with an insufficient role.
func Forbidden(message string) *APIError {
	return New("FORBIDDEN", message, "", http.StatusForbidden)
}

func NotFound(message string, details string) *APIError {
	return New("NOT_FOUND", message, details, http.StatusNotFound)
}

// Unavailable signals a downstream connection failure.
func Unavailable(message string) *APIError {
	return New("SERVICE_UNAVAILABLE", message, "", http.StatusServiceUnavailable)
}

// GatewayTimeout signals a downstream call that exceeded its deadline.
func GatewayTimeout(message string) *APIError {
	return New("GATEWAY_TIMEOUT", message, "", http.StatusGatewayTimeout)
}

func Internal(message string) *APIError {
	return New("INTERNAL_ERROR", message, "", http.StatusInternalServerError)
}
