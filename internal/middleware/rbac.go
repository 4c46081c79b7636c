package middleware

import (
	"net/http"
	"slices"

	"github.com/labstack/echo/v4"
)

// RoleAdmin may moderate reviews.
const RoleAdmin = "admin"

// RequireRole enforces that the authenticated request carries one of roles.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			value := contextString(c, ContextKeyUserRole)
			if value == "" {
				return abort(c, http.StatusForbidden, "missing role")
			}
			if !slices.Contains(roles, value) {
				return abort(c, http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		}
	}
}
