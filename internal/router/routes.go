package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/auth"
	"github.com/benknight/cocolist/internal/config"
	"github.com/benknight/cocolist/internal/handler"
	"github.com/benknight/cocolist/internal/i18n"
	"github.com/benknight/cocolist/internal/metrics"
	middlewarepkg "github.com/benknight/cocolist/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth       *handler.AuthHandler
	Businesses *handler.BusinessHandler
	Reviews    *handler.ReviewHandler
}

// Dependencies carries the shared components the routes are guarded by.
type Dependencies struct {
	Config   *config.Config
	JWT      *auth.JWTManager
	Resolver *i18n.Resolver
	Metrics  *metrics.Metrics
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, deps Dependencies, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})
	if deps.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(deps.Metrics.Handler()))
	}

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	e.GET("/businesses/:slug", handlers.Businesses.Get, middlewarepkg.Language(deps.Resolver))
	e.GET("/businesses/:slug/reviews", handlers.Reviews.List)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(deps.JWT))

	secured.POST("/reviews", handlers.Reviews.Create,
		middlewarepkg.RateLimiter(deps.Config.RateLimitReviews, middlewarepkg.ByUserOrIP))

	admin := secured.Group("/admin", middlewarepkg.RequireRole(middlewarepkg.RoleAdmin))
	admin.DELETE("/reviews/:id", handlers.Reviews.Delete)
}
