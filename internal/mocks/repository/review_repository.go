package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
)

// MockReviewRepository is a mock of repository.ReviewRepository.
type MockReviewRepository struct {
	mock.Mock
}

// NewMockReviewRepository creates a mock whose expectations are asserted at test cleanup.
func NewMockReviewRepository(t testingT) *MockReviewRepository {
	m := &MockReviewRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReviewRepository) FindView(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error) {
	ret := m.Called(ctx, username, bookID)
	v, _ := ret.Get(0).(*entity.ReviewView)

	return v, ret.Error(1)
}

func (m *MockReviewRepository) ListByBook(ctx context.Context, bookID int64, page entity.PageRequest) ([]*entity.ReviewView, int64, error) {
	ret := m.Called(ctx, bookID, page)
	v, _ := ret.Get(0).([]*entity.ReviewView)

	return v, ret.Get(1).(int64), ret.Error(2)
}

func (m *MockReviewRepository) ListByUser(ctx context.Context, username string, page entity.PageRequest) ([]*entity.ReviewView, int64, error) {
	ret := m.Called(ctx, username, page)
	v, _ := ret.Get(0).([]*entity.ReviewView)

	return v, ret.Get(1).(int64), ret.Error(2)
}

func (m *MockReviewRepository) Statistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error) {
	ret := m.Called(ctx, bookID)
	s, _ := ret.Get(0).(*entity.BookStatistics)

	return s, ret.Error(1)
}

func (m *MockReviewRepository) Create(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Update(ctx context.Context, review *entity.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *MockReviewRepository) Delete(ctx context.Context, id entity.ReviewID) error {
	return m.Called(ctx, id).Error(0)
}
