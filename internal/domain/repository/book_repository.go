package repository

import (
	"context"
	"errors"

	"bookreview/internal/domain/entity"
)

// ErrBookNotFound is returned when no book matches the lookup.
var ErrBookNotFound = errors.New("book not found")

// BookRepository defines persistence operations for the book catalogue.
type BookRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Book, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Create(ctx context.Context, book *entity.Book) error
	Update(ctx context.Context, book *entity.Book) error
	// Delete removes the book and its reviews.
	Delete(ctx context.Context, id int64) error
	// List returns books ordered by ID.
	List(ctx context.Context, page entity.PageRequest) ([]*entity.Book, int64, error)
}
