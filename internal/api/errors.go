// errors.go - API error bodies and domain error mapping
package api

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/pedro-visualizer/backend/internal/models"
	"github.com/pedro-visualizer/backend/internal/storage"
	"github.com/pedro-visualizer/backend/internal/timeline"
	"github.com/pedro-visualizer/backend/internal/transform"
)

// Error codes carried in the JSON body.
const (
	CodeBadRequest           = "BAD_REQUEST"
	CodeValidation           = "VALIDATION_ERROR"
	CodeNotFound             = "NOT_FOUND"
	CodeUnprocessable        = "UNPROCESSABLE"
	CodeConfirmationRequired = "CONFIRMATION_REQUIRED"
	CodeInternal             = "INTERNAL_ERROR"
	CodeHTTP                 = "HTTP_ERROR"
	CodeUnknown              = "UNKNOWN_ERROR"
)

// APIError is the JSON error body returned by every endpoint.
type APIError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Code + ": " + e.Message
}

// newAPIError builds an APIError, copying cause into Details when present.
func newAPIError(status int, code, message string, cause error) *APIError {
	apiErr := &APIError{Status: status, Code: code, Message: message}
	if cause != nil {
		apiErr.Details = cause.Error()
	}
	return apiErr
}

// NewBadRequestError reports a body or query that could not be decoded.
func NewBadRequestError(message string, cause error) *APIError {
	return newAPIError(http.StatusBadRequest, CodeBadRequest, message, cause)
}

// NewValidationError reports a missing or out-of-range request field.
func NewValidationError(field string) *APIError {
	return newAPIError(http.StatusBadRequest, CodeValidation, "invalid or missing field: "+field, nil)
}

// NewNotFoundError reports an unknown document, macro or job.
func NewNotFoundError(resource string, id string) *APIError {
	return newAPIError(http.StatusNotFound, CodeNotFound, resource+" not found: "+id, nil)
}

// NewUnprocessableError reports a well-formed path document the engine
// cannot evaluate, such as a sequence naming a missing line.
func NewUnprocessableError(message string, cause error) *APIError {
	return newAPIError(http.StatusUnprocessableEntity, CodeUnprocessable, message, cause)
}

// NewPreconditionError reports a destructive action sent without confirm=true.
func NewPreconditionError(message string) *APIError {
	return newAPIError(http.StatusPreconditionRequired, CodeConfirmationRequired, message, nil)
}

func NewInternalError(message string, cause error) *APIError {
	return newAPIError(http.StatusInternalServerError, CodeInternal, message, cause)
}

// fromDomainError maps engine and storage errors onto API errors
func fromDomainError(message string, err error) *APIError {
	switch {
	case errors.Is(err, timeline.ErrUnknownLine),
		errors.Is(err, timeline.ErrInvalidSettings):
		return NewUnprocessableError(message, err)
	case errors.Is(err, transform.ErrInvalidAxis),
		errors.Is(err, models.ErrUnknownSequenceKind),
		errors.Is(err, models.ErrUnknownHeading):
		return NewBadRequestError(message, err)
	case errors.Is(err, storage.ErrNotFound):
		return newAPIError(http.StatusNotFound, CodeNotFound, message, err)
	default:
		return NewInternalError(message, err)
	}
}

// ErrorHandler renders any handler error as an APIError body. Install it as
// e.HTTPErrorHandler.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	apiErr := toAPIError(err)
	if werr := c.JSON(apiErr.Status, apiErr); werr != nil {
		fmt.Printf("[API] Failed to write error response: %v\n", werr)
	}
}

func toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return newAPIError(httpErr.Code, CodeHTTP, fmt.Sprint(httpErr.Message), nil)
	}
	apiErr = newAPIError(http.StatusInternalServerError, CodeUnknown, "An unexpected error occurred", nil)
	if isDevelopment() {
		apiErr.Details = err.Error()
	}
	return apiErr
}

// isDevelopment reports whether unexpected error details may be exposed
func isDevelopment() bool {
	return os.Getenv("APP_ENV") != "production"
}
