package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
)

// MockAccountActivityRepository is a mock of repository.AccountActivityRepository.
type MockAccountActivityRepository struct {
	mock.Mock
}

// NewMockAccountActivityRepository creates a mock whose expectations are asserted at test cleanup.
func NewMockAccountActivityRepository(t testingT) *MockAccountActivityRepository {
	m := &MockAccountActivityRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountActivityRepository) Record(ctx context.Context, activity *entity.AccountActivity) (bool, error) {
	ret := m.Called(ctx, activity)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockAccountActivityRepository) ListByUsername(ctx context.Context, username string) ([]*entity.AccountActivity, error) {
	ret := m.Called(ctx, username)
	activities, _ := ret.Get(0).([]*entity.AccountActivity)

	return activities, ret.Error(1)
}
