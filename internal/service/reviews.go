package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/repository"
)

const (
	MinRating        = 1
	MaxRating        = 5
	MaxCommentLength = 2000
	// DefaultReviewLimit caps a review listing when no limit is given.
	DefaultReviewLimit = 50
)

// ErrInvalidReview wraps every review validation failure.
var ErrInvalidReview = errors.New("invalid review")

// BusinessLookup maps a business slug to its review key.
type BusinessLookup interface {
	ReviewKey(slug string) (string, error)
}

// Reviewer identifies the author of a review.
type Reviewer struct {
	ID   string
	Name string
}

// ReviewInput is the user supplied part of a review.
type ReviewInput struct {
	Business string
	Rating   int
	Comment  string
}

// ReviewSummary lists reviews with their aggregate rating.
type ReviewSummary struct {
	Reviews []entity.Review `json:"reviews"`
	Count   int             `json:"count"`
	Mean    *float64        `json:"mean,omitempty"`
}

// ReviewService validates and stores business reviews.
type ReviewService struct {
	reviews    repository.ReviewsRepository
	businesses BusinessLookup
}

// NewReviewService constructs a ReviewService.
func NewReviewService(reviews repository.ReviewsRepository, businesses BusinessLookup) *ReviewService {
	return &ReviewService{reviews: reviews, businesses: businesses}
}

// Submit validates in and stores it on behalf of author.
func (s *ReviewService) Submit(ctx context.Context, author Reviewer, in ReviewInput) (*entity.Review, error) {
	if author.ID == "" {
		return nil, fmt.Errorf("%w: reviewer is required", ErrInvalidReview)
	}
	if in.Rating < MinRating || in.Rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", ErrInvalidReview, MinRating, MaxRating)
	}
	comment := strings.TrimSpace(in.Comment)
	if utf8.RuneCountInString(comment) > MaxCommentLength {
		return nil, fmt.Errorf("%w: comment must be at most %d characters", ErrInvalidReview, MaxCommentLength)
	}

	key, err := s.businesses.ReviewKey(strings.Trim(strings.TrimSpace(in.Business), "/"))
	if err != nil {
		return nil, err
	}

	return s.reviews.Create(ctx, entity.Review{
		BusinessID: key,
		UserID:     author.ID,
		UserName:   author.Name,
		Rating:     in.Rating,
		Comment:    comment,
	})
}

// Summary returns the newest reviews of slug and its mean rating rounded to
// one decimal. Mean is nil when there are no reviews.
func (s *ReviewService) Summary(ctx context.Context, slug string, limit int64) (*ReviewSummary, error) {
	key, err := s.businesses.ReviewKey(slug)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultReviewLimit
	}

	var (
		list  []entity.Review
		stats repository.ReviewStats
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		list, err = s.reviews.ListByBusiness(gctx, key, limit)
		return err
	})
	g.Go(func() error {
		var err error
		stats, err = s.reviews.Stats(gctx, key)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	summary := &ReviewSummary{Reviews: list, Count: stats.Count}
	if summary.Reviews == nil {
		summary.Reviews = []entity.Review{}
	}
	if stats.Count > 0 {
		mean := math.Round(stats.Mean*10) / 10
		summary.Mean = &mean
	}
	return summary, nil
}

// Delete removes a review by id.
func (s *ReviewService) Delete(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, strings.TrimSpace(id))
}
