// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"bookreview/internal/delivery/api/response"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AccountUC usecase.AccountUsecase
	Logger    *slog.Logger
}

// AuthHandler serves registration, login and token validation.
type AuthHandler struct {
	accountUC usecase.AccountUsecase
	logger    *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler.
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		accountUC: params.AccountUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for registering an account.
type RegisterRequest struct {
	Firstname string `json:"firstname" validate:"required,max=64"`
	Lastname  string `json:"lastname" validate:"required,max=64"`
	Username  string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Email     string `json:"email" validate:"required,email,max=254"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenRequest carries a token to validate.
type TokenRequest struct {
	AccessToken string `json:"accessToken" validate:"required"`
}

// LoginResponse is returned after a successful login.
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// Register handles account registration.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	summary, err := h.accountUC.Register(c.Request().Context(), &usecase.RegisterInput{
		Firstname: req.Firstname,
		Lastname:  req.Lastname,
		Username:  req.Username,
		Email:     req.Email,
		Password:  req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, summary)
}

// Login handles the credential assertion and returns a bearer token.
func (h *AuthHandler) Login(c echo.Context) error {
	// An unreadable body is treated as empty credentials; Login rejects those
	// after the same hash comparison as any other failed attempt.
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		req = LoginRequest{}
	}

	output, err := h.accountUC.Login(c.Request().Context(), &usecase.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, LoginResponse{
		AccessToken: output.AccessToken,
		TokenType:   output.TokenType,
		ExpiresAt:   output.ExpiresAt,
	})
}

// ValidateToken replies 200 for a usable token and 401 otherwise.
func (h *AuthHandler) ValidateToken(c echo.Context) error {
	var req TokenRequest
	if err := c.Bind(&req); err != nil || req.AccessToken == "" {
		return domainerrors.ErrInvalidToken
	}

	if !h.accountUC.ValidateToken(c.Request().Context(), req.AccessToken) {
		return domainerrors.ErrInvalidToken
	}

	return response.Success(c, http.StatusOK, map[string]bool{"valid": true})
}
