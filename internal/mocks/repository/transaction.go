// Package repository provides testify mocks of the domain repository ports.
package repository

import (
	"context"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/repository"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockTransactionManager is a mock of repository.TransactionManager.
// Return a func(context.Context, func(repository.RepositoryFactory) error) error to run the callback.
type MockTransactionManager struct {
	mock.Mock
}

// NewMockTransactionManager creates a mock whose expectations are asserted at test cleanup.
func NewMockTransactionManager(t testingT) *MockTransactionManager {
	m := &MockTransactionManager{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTransactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	ret := m.Called(ctx, fn)
	if rf, ok := ret.Get(0).(func(context.Context, func(repository.RepositoryFactory) error) error); ok {
		return rf(ctx, fn)
	}

	return ret.Error(0)
}

// RunWith returns an Execute result that hands factory to the callback and returns its error.
func RunWith(factory repository.RepositoryFactory) func(context.Context, func(repository.RepositoryFactory) error) error {
	return func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
		return fn(factory)
	}
}

// MockRepositoryFactory is a mock of repository.RepositoryFactory.
type MockRepositoryFactory struct {
	mock.Mock
}

// NewMockRepositoryFactory creates a mock whose expectations are asserted at test cleanup.
func NewMockRepositoryFactory(t testingT) *MockRepositoryFactory {
	m := &MockRepositoryFactory{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockRepositoryFactory) NewAccountRepository() repository.AccountRepository {
	ret := m.Called()
	r, _ := ret.Get(0).(repository.AccountRepository)

	return r
}

func (m *MockRepositoryFactory) NewBookRepository() repository.BookRepository {
	ret := m.Called()
	r, _ := ret.Get(0).(repository.BookRepository)

	return r
}

func (m *MockRepositoryFactory) NewReviewRepository() repository.ReviewRepository {
	ret := m.Called()
	r, _ := ret.Get(0).(repository.ReviewRepository)

	return r
}
