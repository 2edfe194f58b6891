package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
	"bookreview/internal/usecase"
)

// MockReviewUsecase is a mock of usecase.ReviewUsecase.
type MockReviewUsecase struct {
	mock.Mock
}

// NewMockReviewUsecase creates a mock whose expectations are asserted at test cleanup.
func NewMockReviewUsecase(t testingT) *MockReviewUsecase {
	m := &MockReviewUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockReviewUsecase) GetReview(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error) {
	ret := m.Called(ctx, username, bookID)
	v, _ := ret.Get(0).(*entity.ReviewView)

	return v, ret.Error(1)
}

func (m *MockReviewUsecase) ListBookReviews(ctx context.Context, bookID int64, page entity.PageRequest) (*entity.Page[entity.ReviewView], error) {
	ret := m.Called(ctx, bookID, page)
	p, _ := ret.Get(0).(*entity.Page[entity.ReviewView])

	return p, ret.Error(1)
}

func (m *MockReviewUsecase) ListUserReviews(ctx context.Context, username string, page entity.PageRequest) (*entity.Page[entity.ReviewView], error) {
	ret := m.Called(ctx, username, page)
	p, _ := ret.Get(0).(*entity.Page[entity.ReviewView])

	return p, ret.Error(1)
}

func (m *MockReviewUsecase) BookStatistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error) {
	ret := m.Called(ctx, bookID)
	s, _ := ret.Get(0).(*entity.BookStatistics)

	return s, ret.Error(1)
}

func (m *MockReviewUsecase) CreateReview(ctx context.Context, username string, bookID int64, input *usecase.ReviewInput) (*entity.ReviewView, error) {
	ret := m.Called(ctx, username, bookID, input)
	v, _ := ret.Get(0).(*entity.ReviewView)

	return v, ret.Error(1)
}

func (m *MockReviewUsecase) UpdateReview(ctx context.Context, username string, bookID int64, input *usecase.ReviewInput) (*entity.ReviewView, error) {
	ret := m.Called(ctx, username, bookID, input)
	v, _ := ret.Get(0).(*entity.ReviewView)

	return v, ret.Error(1)
}

func (m *MockReviewUsecase) DeleteReview(ctx context.Context, username string, bookID int64) error {
	return m.Called(ctx, username, bookID).Error(0)
}
