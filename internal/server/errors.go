package server

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// APIError is the JSON error body of every failed request.
type APIError struct {
	Status  int    `json:"-" msgpack:"-"`
	Code    string `json:"code" msgpack:"code"`
	Message string `json:"message" msgpack:"message"`
	Details string `json:"details,omitempty" msgpack:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func newAPIError(status int, code, message string, cause error) *APIError {
	err := &APIError{Status: status, Code: code, Message: message}
	if cause != nil {
		err.Details = cause.Error()
	}
	return err
}

// NewBadRequestError creates a 400 for malformed bodies and fields.
func NewBadRequestError(message string, cause error) *APIError {
	return newAPIError(http.StatusBadRequest, "BAD_REQUEST", message, cause)
}

// NewValidationError creates a 400 for a specific field.
func NewValidationError(field string, cause error) *APIError {
	return newAPIError(http.StatusBadRequest, "VALIDATION_ERROR",
		fmt.Sprintf("validation failed for field: %s", field), cause)
}

// NewTooLargeError creates a 413 when a field exceeds the cell cap.
func NewTooLargeError(cells, limit int) *APIError {
	return newAPIError(http.StatusRequestEntityTooLarge, "FIELD_TOO_LARGE",
		fmt.Sprintf("field has %d cells, limit is %d", cells, limit), nil)
}

// NewNoPathError creates a 422 when no route joins two cells.
func NewNoPathError(cause error) *APIError {
	return newAPIError(http.StatusUnprocessableEntity, "NO_PATH", "no path between start and end", cause)
}

// NewTimeoutError creates a 503 when a request runs out of time.
func NewTimeoutError(cause error) *APIError {
	return newAPIError(http.StatusServiceUnavailable, "TIMEOUT", "planning did not finish in time", cause)
}

// NewInternalError creates a 500.
func NewInternalError(message string, cause error) *APIError {
	return newAPIError(http.StatusInternalServerError, "INTERNAL_ERROR", message, cause)
}

// ErrorHandler renders handler errors as APIError JSON.
// Usage: e.HTTPErrorHandler = ErrorHandler
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var apiErr *APIError
	switch e := err.(type) {
	case *APIError:
		apiErr = e
	case *echo.HTTPError:
		apiErr = &APIError{
			Status:  e.Code,
			Code:    "HTTP_ERROR",
			Message: fmt.Sprintf("%v", e.Message),
		}
	default:
		apiErr = NewInternalError("an unexpected error occurred", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(apiErr.Status)
		return
	}
	_ = c.JSON(apiErr.Status, apiErr)
}
