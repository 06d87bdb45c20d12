package handlers

import (
	stderrors "errors"
	"net/http"

	"fintrack/internal/errors"
	"fintrack/internal/services"
	"fintrack/internal/validation"

	"github.com/labstack/echo/v4"
)

// STANDARDIZED ERROR HANDLING PATTERNS
//
// All handlers must use the following standardized error response functions:
//
// 1. SendError - For client errors and business logic errors (4xx responses)
// 2. SendValidationErrors - For aggregated field-level validation failures
// 3. SendSystemError - For system/internal errors (500 responses)
//
// DO NOT USE:
//    - echo.NewHTTPError() - Use SendError or SendSystemError instead
//    - Direct c.JSON() for errors - Use the helper functions
//    - return err without wrapping - Use SendSystemError to protect internal details

const (
	// TraceIDContextKey is the context key for storing the trace ID
	TraceIDContextKey = "trace_id"
)

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorResponse is an alias for the standardized error response type
// Used for backward compatibility in tests
type ErrorResponse = errors.ErrorResponse

// getTraceID extracts the trace ID from the Echo context
func getTraceID(c echo.Context) string {
	traceID, ok := c.Get(TraceIDContextKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// SendError sends a standardized error response with trace ID from context
func SendError(c echo.Context, code errors.ErrorCode, opts ...errors.ErrorOption) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewErrorResponse(code, traceID, opts...)
	return c.JSON(errorResponse.GetHTTPStatus(), errorResponse)
}

// SendValidationErrors sends a 400 response carrying every field-level
// failure, so clients can surface all invalid fields at once
func SendValidationErrors(c echo.Context, failures validation.Errors) error {
	traceID := getTraceID(c)
	errorResponse := errors.NewValidationError(failures, traceID)
	return c.JSON(http.StatusBadRequest, errorResponse)
}

// SendSystemError wraps a system error with a generic message so internal
// details never reach the client
func SendSystemError(c echo.Context, err error) error {
	traceID := getTraceID(c)
	errorResponse, _ := errors.WrapSystemError(err, traceID)
	return c.JSON(http.StatusInternalServerError, errorResponse)
}

// sendServiceError maps the shared service-layer failures every transaction
// endpoint can hit. Anything unrecognized falls through to a system error.
func sendServiceError(c echo.Context, err error) error {
	var failures validation.Errors
	if stderrors.As(err, &failures) {
		return SendValidationErrors(c, failures)
	}

	if stderrors.Is(err, services.ErrNotPermitted) {
		return SendError(c, errors.AuthNotPermitted)
	}

	if stderrors.Is(err, services.ErrStoreUnavailable) {
		return SendError(c, errors.SystemStoreUnavailable)
	}

	var aggErr *services.AggregationError
	if stderrors.As(err, &aggErr) {
		return SendError(c, errors.AggregationInvariantViolation)
	}

	return SendSystemError(c, err)
}
