package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/i18n"
)

// Language stores the response language: the lang query parameter when it is
// supported, otherwise the best match for Accept-Language.
func Language(r *i18n.Resolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			lang := c.QueryParam("lang")
			if !r.Supported(lang) {
				lang = i18n.Negotiate(c.Request().Header.Get("Accept-Language"), r)
			}
			c.Set(ContextKeyLanguage, lang)
			c.Response().Header().Set("Content-Language", lang)
			c.Response().Header().Add("Vary", "Accept-Language")
			return next(c)
		}
	}
}
