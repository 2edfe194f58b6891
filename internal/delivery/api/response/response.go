package response

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	deliverycontext "bookreview/internal/delivery/context"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	StatusCode int       `json:"statusCode"`
	Message    string    `json:"message"`
	Timestamp  time.Time `json:"timestamp"`
	Code       string    `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Details    string    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
	RequestID  string    `json:"requestId"`
}

// Now is the clock stamped into error bodies.
var Now = time.Now

// Success writes data as the JSON body.
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, data)
}

// NoContent replies with an empty body.
func NoContent(c echo.Context) error {
	return c.NoContent(http.StatusNoContent)
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details string) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= http.StatusInternalServerError || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = ""
	}

	return c.JSON(statusCode, ErrorResponse{
		StatusCode: statusCode,
		Message:    message,
		Timestamp:  Now().UTC(),
		Code:       errorCode,
		Details:    details,
		RequestID:  deliverycontext.GetRequestID(c),
	})
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, "")
}
