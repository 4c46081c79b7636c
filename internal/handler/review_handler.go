package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/benknight/cocolist/internal/dto"
	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/metrics"
	"github.com/benknight/cocolist/internal/middleware"
	"github.com/benknight/cocolist/internal/repository"
	"github.com/benknight/cocolist/internal/service"
)

// ReviewManager is the review workflow the handler drives.
type ReviewManager interface {
	Submit(ctx context.Context, author service.Reviewer, in service.ReviewInput) (*entity.Review, error)
	Summary(ctx context.Context, slug string, limit int64) (*service.ReviewSummary, error)
	Delete(ctx context.Context, id string) error
}

// ReviewHandler exposes review endpoints.
type ReviewHandler struct {
	reviews ReviewManager
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReviewHandler constructs a ReviewHandler. m may be nil.
func NewReviewHandler(reviews ReviewManager, m *metrics.Metrics, logger *zap.Logger) *ReviewHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReviewHandler{reviews: reviews, metrics: m, logger: logger}
}

// List handles GET /businesses/:slug/reviews requests.
func (h *ReviewHandler) List(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 0 {
			return Error(c, http.StatusBadRequest, "limit must be a non-negative integer")
		}
		limit = n
	}

	summary, err := h.reviews.Summary(c.Request().Context(), c.Param("slug"), limit)
	if err != nil {
		if errors.Is(err, service.ErrBusinessNotFound) {
			return Error(c, http.StatusNotFound, "business not found")
		}
		h.logger.Error("list reviews", zap.String("request_id", middleware.RequestIDFromContext(c)), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "unable to load reviews")
	}
	return Success(c, http.StatusOK, "", summary)
}

// Create handles POST /reviews requests.
func (h *ReviewHandler) Create(c echo.Context) error {
	var req dto.CreateReviewRequest
	if err := c.Bind(&req); err != nil {
		h.rejected("payload")
		return Error(c, http.StatusBadRequest, "invalid payload")
	}
	if strings.TrimSpace(req.Business) == "" {
		h.rejected("validation")
		return Error(c, http.StatusBadRequest, "business is required")
	}

	author := service.Reviewer{ID: middleware.UserIDFromContext(c), Name: middleware.UserNameFromContext(c)}
	review, err := h.reviews.Submit(c.Request().Context(), author, service.ReviewInput{
		Business: req.Business,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidReview):
			h.rejected("validation")
			return Error(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrBusinessNotFound):
			h.rejected("unknown_business")
			return Error(c, http.StatusNotFound, "business not found")
		default:
			h.logger.Error("create review", zap.String("request_id", middleware.RequestIDFromContext(c)), zap.Error(err))
			return Error(c, http.StatusInternalServerError, "unable to save review")
		}
	}

	if h.metrics != nil {
		h.metrics.ReviewsSubmitted.Inc()
	}
	return Success(c, http.StatusCreated, "review saved", review)
}

// Delete handles DELETE /admin/reviews/:id requests.
func (h *ReviewHandler) Delete(c echo.Context) error {
	if err := h.reviews.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrReviewNotFound) {
			return Error(c, http.StatusNotFound, "review not found")
		}
		h.logger.Error("delete review", zap.String("request_id", middleware.RequestIDFromContext(c)), zap.Error(err))
		return Error(c, http.StatusInternalServerError, "unable to delete review")
	}
	h.logger.Info("review deleted",
		zap.String("review_id", c.Param("id")),
		zap.String("admin_id", middleware.UserIDFromContext(c)),
	)
	return Success(c, http.StatusOK, "review deleted", nil)
}

func (h *ReviewHandler) rejected(reason string) {
	if h.metrics != nil {
		h.metrics.ReviewsRejected.WithLabelValues(reason).Inc()
	}
}
