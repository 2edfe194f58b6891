package middleware

import (
	"log/slog"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	deliverycontext "bookreview/internal/delivery/context"
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/policy"
	"bookreview/internal/domain/service"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "Bearer "
	claimKey            = "auth_claim"
)

// AuthMiddleware authenticates bearer tokens and enforces route policies.
type AuthMiddleware struct {
	tokenSvc service.TokenService
	logger   *slog.Logger
	now      func() time.Time
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, logger: logger, now: time.Now}
}

// Authenticate decodes the bearer token and stores the claim on the context.
// A missing header and an unusable token are both 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(headerAuthorization)
		if authHeader == "" {
			return domainerrors.ErrUnauthenticated
		}

		token, ok := strings.CutPrefix(authHeader, bearerPrefix)
		if !ok || token == "" {
			return domainerrors.ErrInvalidToken
		}

		claim, err := m.tokenSvc.Decode(token, m.now())
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Bearer token rejected", slog.String("reason", err.Error()))

			return domainerrors.ErrInvalidToken
		}

		c.Set(claimKey, claim)

		return next(c)
	}
}

// RequireRole allows the request only when the claim carries one of roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return m.require(func(echo.Context) policy.Policy {
		return policy.RequireRole(roles...)
	})
}

// RequireOwner allows the request only when the claim's subject equals the path parameter param.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireOwner(param string) echo.MiddlewareFunc {
	return m.require(func(c echo.Context) policy.Policy {
		return policy.RequireOwner(c.Param(param))
	})
}

func (m *AuthMiddleware) require(build func(c echo.Context) policy.Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, _ := GetClaim(c)
			if err := policy.Authorize(claim, build(c)); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// GetClaim returns the claim stored by Authenticate.
func GetClaim(c echo.Context) (*entity.AuthClaim, bool) {
	claim, ok := c.Get(claimKey).(*entity.AuthClaim)

	return claim, ok && claim != nil
}
