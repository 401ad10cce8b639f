package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/HenryKun55/ponto/internal/datekey"
	entrydomain "github.com/HenryKun55/ponto/internal/timeentry/domain"
)

// APIError is the wire shape of every handler failure.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func (e *APIError) Error() string { return e.Code + ": " + e.Message }

var (
	ErrNotFound           = &APIError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
	ErrServiceUnavailable = &APIError{Status: http.StatusServiceUnavailable, Code: "service_unavailable", Message: "service unavailable"}
)

func invalidRequestError() *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "malformed request body"}
}

func newValidationError(field, code, message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Code: code, Message: message, Field: field}
}

// AbortWithError translates an error into the JSON error envelope.
// Domain validation errors map to 400; everything unrecognized is a 500
// with the detail kept out of the response body.
func AbortWithError(c *gin.Context, err error) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
		return
	}

	switch {
	case errors.Is(err, entrydomain.ErrInvalidEmployee):
		apiErr = newValidationError("employee", "invalid_employee", "employee is required")
	case errors.Is(err, entrydomain.ErrInvalidSubmitted):
		apiErr = newValidationError("time", "invalid_time", "a valid punch time is required")
	case errors.Is(err, entrydomain.ErrInvalidPeriod):
		apiErr = newValidationError("period", "invalid_period", "period must be morning or afternoon")
	case errors.Is(err, datekey.ErrUnparseable):
		apiErr = newValidationError("date", "invalid_date", "date must be YYYY-MM-DD or DD/MM/YYYY")
	default:
		_ = c.Error(err)
		apiErr = &APIError{Status: http.StatusInternalServerError, Code: "internal_error", Message: "internal error"}
	}
	c.AbortWithStatusJSON(apiErr.Status, gin.H{"error": apiErr})
}
