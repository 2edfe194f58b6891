package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"bookreview/internal/delivery/api/middleware"
	"bookreview/internal/delivery/api/response"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// UserHandler serves account lookup and administration.
type UserHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// ChangePasswordRequest represents the request body for rotating a password.
type ChangePasswordRequest struct {
	OldPassword     string `json:"oldPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

// ListUsers returns a page of account summaries.
func (h *UserHandler) ListUsers(c echo.Context) error {
	page, err := h.accountUC.ListAccounts(c.Request().Context(), pageRequest(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetUser returns one account summary.
func (h *UserHandler) GetUser(c echo.Context) error {
	summary, err := h.accountUC.GetAccount(c.Request().Context(), c.Param("username"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, summary)
}

// ChangePassword rotates the authenticated user's own password.
func (h *UserHandler) ChangePassword(c echo.Context) error {
	claim, ok := middleware.GetClaim(c)
	if !ok {
		return domainerrors.ErrUnauthenticated
	}

	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	err := h.accountUC.ChangePassword(c.Request().Context(), claim.Username, &usecase.ChangePasswordInput{
		OldPassword:     req.OldPassword,
		NewPassword:     req.NewPassword,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// GrantRole overwrites the role of the account named in the path.
func (h *UserHandler) GrantRole(c echo.Context) error {
	if err := h.accountUC.GrantRole(c.Request().Context(), c.Param("username"), c.Param("role")); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}

// DeleteUser removes the account named in the path.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	if err := h.accountUC.DeleteAccount(c.Request().Context(), c.Param("username")); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
