package utils

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError represents an application error carrying the HTTP status it maps to
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError creates a 400 error for missing or malformed input
func ValidationError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// NotFoundError creates a 404 error for an unknown record
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// MismatchError creates a 400 error for a security-relevant rejection,
// such as an order id that does not belong to the registration
func MismatchError(message string) *AppError {
	return NewAppError(http.StatusBadRequest, message, nil)
}

// UpstreamError creates a 500 error for a gateway or store failure
func UpstreamError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// RespondWithError converts an AppError into the uniform error response shape
func RespondWithError(c *gin.Context, appErr *AppError) {
	Error(c, appErr.Code, appErr.Message)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	if appErr, ok := err.(*AppError); ok {
		return appErr.Code == http.StatusNotFound
	}
	return false
}
