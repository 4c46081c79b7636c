package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/benknight/cocolist/internal/middleware"
	"github.com/benknight/cocolist/internal/presenter"
	"github.com/benknight/cocolist/internal/service"
)

// BusinessViewer returns the display view of a business.
type BusinessViewer interface {
	View(slug, lang string) (presenter.View, error)
}

// BusinessHandler serves business pages as JSON.
type BusinessHandler struct {
	directory BusinessViewer
}

// NewBusinessHandler constructs a BusinessHandler.
func NewBusinessHandler(directory BusinessViewer) *BusinessHandler {
	return &BusinessHandler{directory: directory}
}

// Get handles GET /businesses/:slug requests.
func (h *BusinessHandler) Get(c echo.Context) error {
	view, err := h.directory.View(c.Param("slug"), middleware.LanguageFromContext(c))
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			return Error(c, http.StatusNotFound, "business not found")
		}
		return Error(c, http.StatusInternalServerError, "unable to load business")
	}
	return Success(c, http.StatusOK, "", view)
}
