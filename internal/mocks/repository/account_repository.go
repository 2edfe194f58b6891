package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
)

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

// NewMockAccountRepository creates a mock whose expectations are asserted at test cleanup.
func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	ret := m.Called(ctx, id)
	a, _ := ret.Get(0).(*entity.Account)

	return a, ret.Error(1)
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*entity.Account, error) {
	ret := m.Called(ctx, username)
	a, _ := ret.Get(0).(*entity.Account)

	return a, ret.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	ret := m.Called(ctx, email)
	a, _ := ret.Get(0).(*entity.Account)

	return a, ret.Error(1)
}

func (m *MockAccountRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	ret := m.Called(ctx, username)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockAccountRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ret := m.Called(ctx, email)

	return ret.Bool(0), ret.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) Update(ctx context.Context, account *entity.Account) error {
	return m.Called(ctx, account).Error(0)
}

func (m *MockAccountRepository) DeleteByUsername(ctx context.Context, username string) error {
	return m.Called(ctx, username).Error(0)
}

func (m *MockAccountRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Account, int64, error) {
	ret := m.Called(ctx, page)
	a, _ := ret.Get(0).([]*entity.Account)

	return a, ret.Get(1).(int64), ret.Error(2)
}
