package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	authpkg "github.com/benknight/cocolist/internal/auth"
)

// authRealm names the protected area in WWW-Authenticate challenges.
const authRealm = "cocolist"

// JWT requires a bearer token and stores its claims in the request context.
// Rejections carry a WWW-Authenticate challenge with an RFC 6750 error code.
func JWT(manager *authpkg.JWTManager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return challenge(c, "", "missing authorization header")
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			token = strings.TrimSpace(token)
			if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
				return challenge(c, "invalid_request", "invalid authorization header")
			}

			claims, err := manager.ParseToken(token)
			if err != nil {
				if errors.Is(err, jwt.ErrTokenExpired) {
					return challenge(c, "invalid_token", "token expired")
				}
				return challenge(c, "invalid_token", "invalid token")
			}

			c.Set(ContextKeyUserID, claims.Subject)
			c.Set(ContextKeyUserEmail, claims.Email)
			c.Set(ContextKeyUserName, claims.Name)
			c.Set(ContextKeyUserRole, claims.Role)

			return next(c)
		}
	}
}

func challenge(c echo.Context, code, message string) error {
	value := fmt.Sprintf("Bearer realm=%q", authRealm)
	if code != "" {
		value += fmt.Sprintf(", error=%q, error_description=%q", code, message)
	}
	c.Response().Header().Set(echo.HeaderWWWAuthenticate, value)
	return abort(c, http.StatusUnauthorized, message)
}
