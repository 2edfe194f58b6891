package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
)

// MockBookRepository is a mock of repository.BookRepository.
type MockBookRepository struct {
	mock.Mock
}

// NewMockBookRepository creates a mock whose expectations are asserted at test cleanup.
func NewMockBookRepository(t testingT) *MockBookRepository {
	m := &MockBookRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockBookRepository) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	ret := m.Called(ctx, id)
	b, _ := ret.Get(0).(*entity.Book)

	return b, ret.Error(1)
}

func (m *MockBookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	ret := m.Called(ctx, id)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockBookRepository) Create(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockBookRepository) Update(ctx context.Context, book *entity.Book) error {
	return m.Called(ctx, book).Error(0)
}

func (m *MockBookRepository) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockBookRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Book, int64, error) {
	ret := m.Called(ctx, page)
	b, _ := ret.Get(0).([]*entity.Book)

	return b, ret.Get(1).(int64), ret.Error(2)
}
