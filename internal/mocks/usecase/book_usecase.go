package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
	"bookreview/internal/usecase"
)

// MockBookUsecase is a mock of usecase.BookUsecase.
type MockBookUsecase struct {
	mock.Mock
}

// NewMockBookUsecase creates a mock whose expectations are asserted at test cleanup.
func NewMockBookUsecase(t testingT) *MockBookUsecase {
	m := &MockBookUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookUsecase) GetBook(ctx context.Context, id int64) (*entity.Book, error) {
	ret := m.Called(ctx, id)
	b, _ := ret.Get(0).(*entity.Book)

	return b, ret.Error(1)
}

func (m *MockBookUsecase) ListBooks(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.Book], error) {
	ret := m.Called(ctx, page)
	p, _ := ret.Get(0).(*entity.Page[entity.Book])

	return p, ret.Error(1)
}

func (m *MockBookUsecase) CreateBook(ctx context.Context, input *usecase.BookInput) (*entity.Book, error) {
	ret := m.Called(ctx, input)
	b, _ := ret.Get(0).(*entity.Book)

	return b, ret.Error(1)
}

func (m *MockBookUsecase) UpdateBook(ctx context.Context, id int64, input *usecase.BookInput) (*entity.Book, error) {
	ret := m.Called(ctx, id, input)
	b, _ := ret.Get(0).(*entity.Book)

	return b, ret.Error(1)
}

func (m *MockBookUsecase) DeleteBook(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}
