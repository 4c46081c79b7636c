package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/middleware"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// APIResponse is the envelope of every JSON response. RequestID echoes the
// X-Request-ID of the request so clients can quote it in bug reports.
type APIResponse struct {
	Status    string `json:"status"`
	Message   string `json:"message,omitempty"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// Success writes data with status, 200 when status is zero.
func Success(c echo.Context, status int, message string, data any) error {
	if status == 0 {
		status = http.StatusOK
	}
	return respond(c, status, APIResponse{Status: statusSuccess, Message: message, Data: data})
}

// Error writes message with status, 500 when status is zero. An empty message
// is replaced by the status text.
func Error(c echo.Context, status int, message string) error {
	if status == 0 {
		status = http.StatusInternalServerError
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return respond(c, status, APIResponse{Status: statusError, Message: message})
}

func respond(c echo.Context, status int, payload APIResponse) error {
	payload.RequestID = middleware.RequestIDFromContext(c)
	return c.JSON(status, payload)
}
