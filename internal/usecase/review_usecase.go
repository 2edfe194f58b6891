package usecase

import (
	"context"

	"bookreview/internal/domain/entity"
)

// ReviewInput carries the editable fields of a review.
type ReviewInput struct {
	Content string
	Rate    int
}

// ReviewUsecase defines review operations. Reviews are addressed by the
// author's username and the book ID.
type ReviewUsecase interface {
	GetReview(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error)
	ListBookReviews(ctx context.Context, bookID int64, page entity.PageRequest) (*entity.Page[entity.ReviewView], error)
	ListUserReviews(ctx context.Context, username string, page entity.PageRequest) (*entity.Page[entity.ReviewView], error)
	BookStatistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error)
	CreateReview(ctx context.Context, username string, bookID int64, input *ReviewInput) (*entity.ReviewView, error)
	UpdateReview(ctx context.Context, username string, bookID int64, input *ReviewInput) (*entity.ReviewView, error)
	DeleteReview(ctx context.Context, username string, bookID int64) error
}
