// Package service provides testify mocks of the domain service ports.
package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"bookreview/internal/domain/entity"
	"bookreview/internal/domain/service"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockPasswordHasher is a mock of service.PasswordHasher.
type MockPasswordHasher struct {
	mock.Mock
}

// NewMockPasswordHasher creates a mock whose expectations are asserted at test cleanup.
func NewMockPasswordHasher(t testingT) *MockPasswordHasher {
	m := &MockPasswordHasher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockPasswordHasher) Hash(password string) (string, error) {
	ret := m.Called(password)

	return ret.String(0), ret.Error(1)
}

func (m *MockPasswordHasher) Check(password, hash string) bool {
	return m.Called(password, hash).Bool(0)
}

func (m *MockPasswordHasher) ValidatePasswordStrength(password string) error {
	return m.Called(password).Error(0)
}

// MockTokenService is a mock of service.TokenService.
type MockTokenService struct {
	mock.Mock
}

// NewMockTokenService creates a mock whose expectations are asserted at test cleanup.
func NewMockTokenService(t testingT) *MockTokenService {
	m := &MockTokenService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTokenService) Issue(username string, role entity.Role, now time.Time) (string, time.Time, error) {
	ret := m.Called(username, role, now)
	expiresAt, _ := ret.Get(1).(time.Time)

	return ret.String(0), expiresAt, ret.Error(2)
}

func (m *MockTokenService) Decode(token string, now time.Time) (*entity.AuthClaim, error) {
	ret := m.Called(token, now)
	c, _ := ret.Get(0).(*entity.AuthClaim)

	return c, ret.Error(1)
}

func (m *MockTokenService) TTL() time.Duration {
	d, _ := m.Called().Get(0).(time.Duration)

	return d
}

// MockEventPublisher is a mock of service.EventPublisher.
type MockEventPublisher struct {
	mock.Mock
}

// NewMockEventPublisher creates a mock whose expectations are asserted at test cleanup.
func NewMockEventPublisher(t testingT) *MockEventPublisher {
	m := &MockEventPublisher{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockEventPublisher) PublishAccountEvent(ctx context.Context, event *service.AccountEvent) error {
	return m.Called(ctx, event).Error(0)
}

func (m *MockEventPublisher) Close() error {
	return m.Called().Error(0)
}
