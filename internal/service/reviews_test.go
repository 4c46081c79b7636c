package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/benknight/cocolist/internal/entity"
	"github.com/benknight/cocolist/internal/repository"
)

type mockReviewsRepository struct {
	create         func(ctx context.Context, review entity.Review) (*entity.Review, error)
	listByBusiness func(ctx context.Context, businessID string, limit int64) ([]entity.Review, error)
	stats          func(ctx context.Context, businessID string) (repository.ReviewStats, error)
	delete         func(ctx context.Context, id string) error
}

func (m *mockReviewsRepository) Create(ctx context.Context, review entity.Review) (*entity.Review, error) {
	if m.create != nil {
		return m.create(ctx, review)
	}
	return nil, errors.New("create not implemented")
}

func (m *mockReviewsRepository) ListByBusiness(ctx context.Context, businessID string, limit int64) ([]entity.Review, error) {
	if m.listByBusiness != nil {
		return m.listByBusiness(ctx, businessID, limit)
	}
	return nil, errors.New("listByBusiness not implemented")
}

func (m *mockReviewsRepository) Stats(ctx context.Context, businessID string) (repository.ReviewStats, error) {
	if m.stats != nil {
		return m.stats(ctx, businessID)
	}
	return repository.ReviewStats{}, errors.New("stats not implemented")
}

func (m *mockReviewsRepository) Delete(ctx context.Context, id string) error {
	if m.delete != nil {
		return m.delete(ctx, id)
	}
	return errors.New("delete not implemented")
}

type lookupStub map[string]string

func (l lookupStub) ReviewKey(slug string) (string, error) {
	if key, ok := l[slug]; ok {
		return key, nil
	}
	return "", ErrBusinessNotFound
}

func TestReviewService_Submit(t *testing.T) {
	author := Reviewer{ID: "user-1", Name: "Linh"}
	tests := map[string]struct {
		author      Reviewer
		input       ReviewInput
		expectError error
	}{
		"missing author": {
			input:       ReviewInput{Business: "pho-24", Rating: 3},
			expectError: ErrInvalidReview,
		},
		"rating too low": {
			author:      author,
			input:       ReviewInput{Business: "pho-24", Rating: 0},
			expectError: ErrInvalidReview,
		},
		"rating too high": {
			author:      author,
			input:       ReviewInput{Business: "pho-24", Rating: 6},
			expectError: ErrInvalidReview,
		},
		"comment too long": {
			author:      author,
			input:       ReviewInput{Business: "pho-24", Rating: 4, Comment: strings.Repeat("ă", MaxCommentLength+1)},
			expectError: ErrInvalidReview,
		},
		"unknown business": {
			author:      author,
			input:       ReviewInput{Business: "nowhere", Rating: 4},
			expectError: ErrBusinessNotFound,
		},
		"success": {
			author: author,
			input:  ReviewInput{Business: " /pho-24/ ", Rating: 5, Comment: "  " + strings.Repeat("ă", MaxCommentLength) + " "},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			repo := &mockReviewsRepository{
				create: func(ctx context.Context, review entity.Review) (*entity.Review, error) {
					if review.BusinessID != "/pho-24" || review.UserName != "Linh" {
						t.Errorf("unexpected review: %+v", review)
					}
					if strings.HasPrefix(review.Comment, " ") {
						t.Errorf("expected trimmed comment")
					}
					review.ID = "r1"
					return &review, nil
				},
			}
			svc := NewReviewService(repo, lookupStub{"pho-24": "/pho-24"})

			review, err := svc.Submit(context.Background(), tt.author, tt.input)
			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected %v, got %v", tt.expectError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if review.ID != "r1" || review.Rating != 5 {
				t.Fatalf("unexpected review: %+v", review)
			}
		})
	}
}

func TestReviewService_Summary(t *testing.T) {
	repo := &mockReviewsRepository{
		listByBusiness: func(ctx context.Context, businessID string, limit int64) ([]entity.Review, error) {
			if businessID != "/pho-24" || limit != DefaultReviewLimit {
				t.Errorf("unexpected list args: %s %d", businessID, limit)
			}
			return []entity.Review{{ID: "r2", Rating: 5}, {ID: "r1", Rating: 4}, {ID: "r0", Rating: 4}}, nil
		},
		stats: func(ctx context.Context, businessID string) (repository.ReviewStats, error) {
			return repository.ReviewStats{Count: 3, Mean: 13.0 / 3}, nil
		},
	}
	svc := NewReviewService(repo, lookupStub{"pho-24": "/pho-24"})

	summary, err := svc.Summary(context.Background(), "pho-24", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Count != 3 || len(summary.Reviews) != 3 {
		t.Fatalf("unexpected summary: %+v", summary)
	}
	if summary.Mean == nil || *summary.Mean != 4.3 {
		t.Fatalf("expected mean 4.3, got %v", summary.Mean)
	}
}

func TestReviewService_SummaryEmpty(t *testing.T) {
	repo := &mockReviewsRepository{
		listByBusiness: func(ctx context.Context, businessID string, limit int64) ([]entity.Review, error) {
			return nil, nil
		},
		stats: func(ctx context.Context, businessID string) (repository.ReviewStats, error) {
			return repository.ReviewStats{}, nil
		},
	}
	svc := NewReviewService(repo, lookupStub{"pho-24": "/pho-24"})

	summary, err := svc.Summary(context.Background(), "pho-24", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.Mean != nil || summary.Count != 0 || summary.Reviews == nil {
		t.Fatalf("unexpected empty summary: %+v", summary)
	}

	if _, err := svc.Summary(context.Background(), "missing", 10); !errors.Is(err, ErrBusinessNotFound) {
		t.Fatalf("expected ErrBusinessNotFound, got %v", err)
	}
}

func TestReviewService_SummaryStoreError(t *testing.T) {
	boom := errors.New("boom")
	repo := &mockReviewsRepository{
		listByBusiness: func(ctx context.Context, businessID string, limit int64) ([]entity.Review, error) {
			return nil, nil
		},
		stats: func(ctx context.Context, businessID string) (repository.ReviewStats, error) {
			return repository.ReviewStats{}, boom
		},
	}
	if _, err := NewReviewService(repo, lookupStub{"a": "/a"}).Summary(context.Background(), "a", 1); !errors.Is(err, boom) {
		t.Fatalf("expected store error, got %v", err)
	}
}

func TestReviewService_Delete(t *testing.T) {
	repo := &mockReviewsRepository{
		delete: func(ctx context.Context, id string) error {
			if id != "abc" {
				return repository.ErrReviewNotFound
			}
			return nil
		},
	}
	svc := NewReviewService(repo, lookupStub{})
	if err := svc.Delete(context.Background(), " abc "); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.Delete(context.Background(), "zzz"); !errors.Is(err, repository.ErrReviewNotFound) {
		t.Fatalf("expected ErrReviewNotFound, got %v", err)
	}
}
