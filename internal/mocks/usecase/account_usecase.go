// Package usecase provides testify mocks of the usecase ports.
package usecase

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
	"bookreview/internal/usecase"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockAccountUsecase is a mock of usecase.AccountUsecase.
type MockAccountUsecase struct {
	mock.Mock
}

// NewMockAccountUsecase creates a mock whose expectations are asserted at test cleanup.
func NewMockAccountUsecase(t testingT) *MockAccountUsecase {
	m := &MockAccountUsecase{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockAccountUsecase) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.AccountSummary, error) {
	ret := m.Called(ctx, input)
	s, _ := ret.Get(0).(*entity.AccountSummary)

	return s, ret.Error(1)
}

func (m *MockAccountUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	ret := m.Called(ctx, input)
	out, _ := ret.Get(0).(*usecase.LoginOutput)

	return out, ret.Error(1)
}

func (m *MockAccountUsecase) ChangePassword(ctx context.Context, actingUsername string, input *usecase.ChangePasswordInput) error {
	return m.Called(ctx, actingUsername, input).Error(0)
}

func (m *MockAccountUsecase) GrantRole(ctx context.Context, targetUsername, role string) error {
	return m.Called(ctx, targetUsername, role).Error(0)
}

func (m *MockAccountUsecase) DeleteAccount(ctx context.Context, targetUsername string) error {
	return m.Called(ctx, targetUsername).Error(0)
}

func (m *MockAccountUsecase) ValidateToken(ctx context.Context, token string) bool {
	return m.Called(ctx, token).Bool(0)
}

func (m *MockAccountUsecase) GetAccount(ctx context.Context, username string) (*entity.AccountSummary, error) {
	ret := m.Called(ctx, username)
	s, _ := ret.Get(0).(*entity.AccountSummary)

	return s, ret.Error(1)
}

func (m *MockAccountUsecase) ListAccounts(ctx context.Context, page entity.PageRequest) (*entity.Page[entity.AccountSummary], error) {
	ret := m.Called(ctx, page)
	p, _ := ret.Get(0).(*entity.Page[entity.AccountSummary])

	return p, ret.Error(1)
}
