package middleware

import "github.com/labstack/echo/v4"

// Context keys used to store request metadata.
const (
	ContextKeyUserID    = "user_id"
	ContextKeyUserEmail = "user_email"
	ContextKeyUserName  = "user_name"
	ContextKeyUserRole  = "user_role"
	ContextKeyRequestID = "request_id"
	ContextKeyLanguage  = "language"
)

func contextString(c echo.Context, key string) string {
	if val, ok := c.Get(key).(string); ok {
		return val
	}
	return ""
}

// UserIDFromContext returns the authenticated subject, if any.
func UserIDFromContext(c echo.Context) string { return contextString(c, ContextKeyUserID) }

// UserNameFromContext returns the display name of the authenticated user.
func UserNameFromContext(c echo.Context) string { return contextString(c, ContextKeyUserName) }

// LanguageFromContext returns the negotiated language.
func LanguageFromContext(c echo.Context) string { return contextString(c, ContextKeyLanguage) }

// abort writes an error body with the same shape as the handler envelope.
func abort(c echo.Context, status int, message string) error {
	body := map[string]string{"status": "error", "message": message}
	if rid := RequestIDFromContext(c); rid != "" {
		body["request_id"] = rid
	}
	return c.JSON(status, body)
}
