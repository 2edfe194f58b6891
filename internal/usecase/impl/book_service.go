package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "bookreview/internal/delivery/context"
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

type bookService struct {
	bookRepo repository.BookRepository
	logger   *slog.Logger
}

// BookServiceParams holds dependencies for BookService, injected by Fx.
type BookServiceParams struct {
	fx.In

	BookRepo repository.BookRepository
	Logger   *slog.Logger
}

// NewBookService is the constructor for bookService.
func NewBookService(params BookServiceParams) usecase.BookUsecase {
	return &bookService{
		bookRepo: params.BookRepo,
		logger:   params.Logger,
	}
}

func (srv *bookService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *bookService) GetBook(ctx context.Context, id int64) (*entity.Book, error) {
	book, err := srv.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, mapBookLookupError(err, id)
	}

	return book, nil
}

func (srv *bookService) ListBooks(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Book], error) {
	page = page.Normalize()

	books, total, err := srv.bookRepo.List(ctx, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list books")
	}

	return newPage(books, page, total), nil
}

func (srv *bookService) CreateBook(ctx context.Context, input *usecase.BookInput) (*entity.Book, error) {
	book := &entity.Book{
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Cover:       input.Cover,
	}

	if err := srv.bookRepo.Create(ctx, book); err != nil {
		return nil, errors.Wrap(err, "failed to create book")
	}

	srv.log(ctx).Info("Book created", slog.Int64("bookID", book.ID))

	return book, nil
}

func (srv *bookService) UpdateBook(ctx context.Context, id int64, input *usecase.BookInput) (*entity.Book, error) {
	book := &entity.Book{
		ID:          id,
		Title:       input.Title,
		Author:      input.Author,
		Description: input.Description,
		Cover:       input.Cover,
	}

	if err := srv.bookRepo.Update(ctx, book); err != nil {
		return nil, mapBookLookupError(err, id)
	}

	srv.log(ctx).Info("Book updated", slog.Int64("bookID", id))

	return srv.GetBook(ctx, id)
}

func (srv *bookService) DeleteBook(ctx context.Context, id int64) error {
	if err := srv.bookRepo.Delete(ctx, id); err != nil {
		return mapBookLookupError(err, id)
	}

	srv.log(ctx).Info("Book deleted", slog.Int64("bookID", id))

	return nil
}

func mapBookLookupError(err error, id int64) error {
	if errors.Is(err, repository.ErrBookNotFound) || errors.Is(err, domainerrors.ErrBookNotFound) {
		return bookNotFound(id)
	}

	return err
}

func bookNotFound(id int64) error {
	return domainerrors.ErrBookNotFound.WithMessagef("Book was not found for id=%d", id)
}
