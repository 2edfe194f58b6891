package impl

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	mockRepo "bookreview/internal/mocks/repository"
	"bookreview/internal/usecase"
)

type bookServiceFixtures struct {
	service  usecase.BookUsecase
	bookRepo *mockRepo.MockBookRepository
}

func createTestBookService(t *testing.T) bookServiceFixtures {
	bookRepo := mockRepo.NewMockBookRepository(t)

	return bookServiceFixtures{
		service:  NewBookService(BookServiceParams{BookRepo: bookRepo, Logger: newDiscardLogger()}),
		bookRepo: bookRepo,
	}
}

func TestBookService_CreateBook(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.On("Create", ctx, mock.MatchedBy(func(b *entity.Book) bool {
		return b.Title == "Dune" && b.Author == "Frank Herbert" && b.ID == 0
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entity.Book).ID = 42
	}).Return(nil).Once()

	book, err := fx.service.CreateBook(ctx, &usecase.BookInput{Title: "Dune", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.Equal(t, int64(42), book.ID)
}

func TestBookService_GetBook_NotFound(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.On("FindByID", ctx, int64(9)).Return(nil, repository.ErrBookNotFound).Once()

	_, err := fx.service.GetBook(ctx, 9)
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
	assert.Equal(t, "Book was not found for id=9", err.Error())
}

func TestBookService_UpdateBook(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()
	stored := &entity.Book{ID: 3, Title: "Dune Messiah", Author: "Frank Herbert"}

	fx.bookRepo.On("Update", ctx, mock.MatchedBy(func(b *entity.Book) bool {
		return b.ID == 3 && b.Title == "Dune Messiah"
	})).Return(nil).Once()
	fx.bookRepo.On("FindByID", ctx, int64(3)).Return(stored, nil).Once()

	book, err := fx.service.UpdateBook(ctx, 3, &usecase.BookInput{Title: "Dune Messiah", Author: "Frank Herbert"})
	require.NoError(t, err)
	assert.Equal(t, stored, book)
}

func TestBookService_UpdateBook_NotFound(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.On("Update", ctx, mock.AnythingOfType("*entity.Book")).Return(repository.ErrBookNotFound).Once()

	_, err := fx.service.UpdateBook(ctx, 3, &usecase.BookInput{Title: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrBookNotFound)
}

func TestBookService_DeleteBook(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.On("Delete", ctx, int64(3)).Return(nil).Once()
	fx.bookRepo.On("Delete", ctx, int64(4)).Return(repository.ErrBookNotFound).Once()

	require.NoError(t, fx.service.DeleteBook(ctx, 3))
	assert.ErrorIs(t, fx.service.DeleteBook(ctx, 4), domainerrors.ErrBookNotFound)
}

func TestBookService_ListBooks(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()
	books := []*entity.Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}

	fx.bookRepo.On("List", ctx, entity.PageRequest{Page: 1, Size: 100}).Return(books, int64(102), nil).Once()

	page, err := fx.service.ListBooks(ctx, entity.PageRequest{Page: 1, Size: 500})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 100, page.Size)
	assert.Equal(t, int64(102), page.TotalElements)
	assert.Equal(t, []entity.Book{{ID: 1, Title: "A"}, {ID: 2, Title: "B"}}, page.Content)
}

func TestBookService_ListBooks_StoreFailure(t *testing.T) {
	fx := createTestBookService(t)
	ctx := context.Background()

	fx.bookRepo.On("List", ctx, mock.Anything).Return(nil, int64(0), errors.New("timeout")).Once()

	_, err := fx.service.ListBooks(ctx, entity.PageRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list books")
}
