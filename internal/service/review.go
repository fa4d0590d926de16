package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"crportal/internal/model"
	"crportal/internal/repository"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// ReviewService defines the use cases for customer reviews. Submissions
// start unapproved; only approved reviews reach the public listing.
type ReviewService interface {
	Submit(ctx context.Context, rev *model.Review) (*model.Review, error)
	List(ctx context.Context, approvedOnly bool) ([]model.Review, error)
	SetApproved(ctx context.Context, id string, approved bool) error
	Delete(ctx context.Context, id string) error
}

type reviewService struct {
	repo repository.ReviewRepository
}

// NewReviewService constructs a new ReviewService.
func NewReviewService(repo repository.ReviewRepository) ReviewService {
	return &reviewService{repo: repo}
}

func (s *reviewService) Submit(ctx context.Context, rev *model.Review) (*model.Review, error) {
	if rev.Rating < 1 || rev.Rating > 5 {
		return nil, ErrInvalidRating
	}
	now := time.Now().UTC()
	rev.ID = uuid.New().String()
	rev.Approved = false
	rev.CreatedAt = now
	rev.UpdatedAt = now
	return s.repo.Create(ctx, rev)
}

func (s *reviewService) List(ctx context.Context, approvedOnly bool) ([]model.Review, error) {
	return s.repo.List(ctx, approvedOnly)
}

func (s *reviewService) SetApproved(ctx context.Context, id string, approved bool) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.SetApproved(ctx, id, approved)
}

func (s *reviewService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	return s.repo.Delete(ctx, id)
}
