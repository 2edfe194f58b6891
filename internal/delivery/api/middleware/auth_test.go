package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/service"
	mockSvc "bookreview/internal/mocks/service"
)

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestAuthMiddleware(t *testing.T) (*AuthMiddleware, *mockSvc.MockTokenService) {
	tokens := mockSvc.NewMockTokenService(t)
	m := NewAuthMiddleware(tokens, slog.New(slog.NewTextHandler(io.Discard, nil)))
	m.now = func() time.Time { return testNow }

	return m, tokens
}

func newContext(authorization string) echo.Context {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}

	return echo.New().NewContext(req, httptest.NewRecorder())
}

func okHandler(c echo.Context) error {
	return c.NoContent(http.StatusOK)
}

func TestAuthenticate_StoresClaim(t *testing.T) {
	m, tokens := newTestAuthMiddleware(t)
	claim := &entity.AuthClaim{Username: "ada", Role: entity.RoleUser}
	tokens.On("Decode", "abc", testNow).Return(claim, nil).Once()

	c := newContext("Bearer abc")
	require.NoError(t, m.Authenticate(okHandler)(c))

	got, ok := GetClaim(c)
	require.True(t, ok)
	assert.Equal(t, claim, got)
}

func TestAuthenticate_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		decodeErr error
		want      error
	}{
		{name: "missing header", want: domainerrors.ErrUnauthenticated},
		{name: "wrong scheme", header: "Token abc", want: domainerrors.ErrInvalidToken},
		{name: "empty bearer", header: "Bearer ", want: domainerrors.ErrInvalidToken},
		{name: "expired", header: "Bearer abc", decodeErr: service.ErrTokenExpired, want: domainerrors.ErrInvalidToken},
		{name: "bad signature", header: "Bearer abc", decodeErr: service.ErrTokenBadSignature, want: domainerrors.ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, tokens := newTestAuthMiddleware(t)
			if tt.decodeErr != nil {
				tokens.On("Decode", "abc", testNow).Return(nil, tt.decodeErr).Once()
			}

			called := false
			err := m.Authenticate(func(c echo.Context) error {
				called = true

				return nil
			})(newContext(tt.header))

			assert.ErrorIs(t, err, tt.want)
			assert.False(t, called)
		})
	}
}

func TestRequireRole(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	guard := m.RequireRole(entity.RoleAdmin)(okHandler)

	assert.ErrorIs(t, guard(newContext("")), domainerrors.ErrUnauthenticated)

	c := newContext("")
	c.Set(claimKey, &entity.AuthClaim{Username: "bob", Role: entity.RoleUser})
	assert.ErrorIs(t, guard(c), domainerrors.ErrForbidden)

	c = newContext("")
	c.Set(claimKey, &entity.AuthClaim{Username: "root", Role: entity.RoleAdmin})
	assert.NoError(t, guard(c))
}

func TestRequireOwner(t *testing.T) {
	m, _ := newTestAuthMiddleware(t)
	guard := m.RequireOwner("username")(okHandler)

	c := newContext("")
	c.SetParamNames("username")
	c.SetParamValues("alice")
	c.Set(claimKey, &entity.AuthClaim{Username: "bob", Role: entity.RoleAdmin})
	assert.ErrorIs(t, guard(c), domainerrors.ErrForbidden)

	c = newContext("")
	c.SetParamNames("username")
	c.SetParamValues("bob")
	c.Set(claimKey, &entity.AuthClaim{Username: "bob", Role: entity.RoleUser})
	assert.NoError(t, guard(c))
}
