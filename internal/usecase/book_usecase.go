package usecase

import (
	"context"

	"bookreview/internal/domain/entity"
)

// BookInput carries the editable fields of a book.
type BookInput struct {
	Title       string
	Author      string
	Description string
	Cover       string
}

// BookUsecase defines catalogue operations.
type BookUsecase interface {
	GetBook(ctx context.Context, id int64) (*entity.Book, error)
	ListBooks(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Book], error)
	CreateBook(ctx context.Context, input *BookInput) (*entity.Book, error)
	UpdateBook(ctx context.Context, id int64, input *BookInput) (*entity.Book, error)
	DeleteBook(ctx context.Context, id int64) error
}
