// Package apperr holds the error taxonomy shared by the kiosk, the user
// store and the HTTP handlers, and the mapping from it to responses.
package apperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrDuplicateEmail     = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrStoreUnavailable   = errors.New("user store unavailable")
	ErrOutOfRange         = errors.New("position out of range")
	ErrNotFound           = errors.New("not found")
	ErrInvalidTransition  = errors.New("invalid flow transition")
)

// ValidationError is an input problem the user can fix in place.
// Message is shown to the user as is.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Validation builds a ValidationError.
func Validation(msg string) error {
	return &ValidationError{Message: msg}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// Status returns the HTTP status and user-facing message for err.
func Status(err error) (int, string) {
	var v *ValidationError
	switch {
	case errors.As(err, &v):
		return http.StatusBadRequest, v.Message
	case errors.Is(err, ErrOutOfRange):
		return http.StatusBadRequest, "Select an item to remove."
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "Invalid email or password."
	case errors.Is(err, ErrDuplicateEmail):
		return http.StatusConflict, "Email is already registered."
	case errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrStoreUnavailable):
		return http.StatusServiceUnavailable, "Database error, please try again later."
	default:
		return http.StatusInternalServerError, "Something went wrong."
	}
}

// Respond writes err as a JSON error body.
func Respond(c *gin.Context, err error) {
	status, msg := Status(err)
	c.JSON(status, gin.H{"error": msg})
}
