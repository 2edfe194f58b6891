package repository

import (
	"context"
	"errors"

	"bookreview/internal/domain/entity"
)

// ErrReviewNotFound is returned when no review matches the lookup.
var ErrReviewNotFound = errors.New("review not found")

// ReviewRepository defines persistence operations for reviews.
// Read methods return views assembled with explicit joins against users and books.
type ReviewRepository interface {
	// FindView returns the review written by username for bookID.
	FindView(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error)

	// ListByBook returns the reviews of a book, newest first.
	ListByBook(ctx context.Context, bookID int64, page entity.PageRequest) ([]*entity.ReviewView, int64, error)

	// ListByUser returns the reviews written by username, newest first.
	ListByUser(ctx context.Context, username string, page entity.PageRequest) ([]*entity.ReviewView, int64, error)

	// Statistics aggregates the reviews of a book.
	Statistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error)

	// Create persists a new review. A second review for the same key fails with
	// domainerrors.ErrReviewAlreadyExists.
	Create(ctx context.Context, review *entity.Review) error

	// Update saves content and rate of an existing review.
	Update(ctx context.Context, review *entity.Review) error

	// Delete removes the review identified by id.
	Delete(ctx context.Context, id entity.ReviewID) error
}
