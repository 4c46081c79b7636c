package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// maxRequestIDLen bounds incoming identifiers before they reach logs.
const maxRequestIDLen = 128

// RequestID tags the request with an identifier. A well-formed X-Request-ID
// from the caller is kept; anything else is replaced by a new UUID. The
// identifier is written back to both the request and the response headers.
func RequestID() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			rid := c.Request().Header.Get(echo.HeaderXRequestID)
			if !validRequestID(rid) {
				rid = uuid.NewString()
			}

			c.Request().Header.Set(echo.HeaderXRequestID, rid)
			c.Response().Header().Set(echo.HeaderXRequestID, rid)
			c.Set(ContextKeyRequestID, rid)

			return next(c)
		}
	}
}

func validRequestID(rid string) bool {
	if rid == "" || len(rid) > maxRequestIDLen {
		return false
	}
	for _, r := range rid {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '.', r == ':':
		default:
			return false
		}
	}
	return true
}

// RequestIDFromContext extracts the request identifier if available.
func RequestIDFromContext(c echo.Context) string { return contextString(c, ContextKeyRequestID) }
