package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"bookreview/internal/delivery/api/response"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

// BookHandlerParams holds dependencies for BookHandler, injected by Fx.
type BookHandlerParams struct {
	fx.In

	BookUC usecase.BookUsecase
}

// BookHandler serves the book catalogue.
type BookHandler struct {
	bookUC usecase.BookUsecase
}

// NewBookHandler is the constructor for BookHandler.
func NewBookHandler(params BookHandlerParams) *BookHandler {
	return &BookHandler{bookUC: params.BookUC}
}

// BookRequest represents the request body for creating or replacing a book.
type BookRequest struct {
	Title       string `json:"title" validate:"required,max=255"`
	Author      string `json:"author" validate:"required,max=255"`
	Description string `json:"description" validate:"max=4000"`
	Cover       string `json:"cover" validate:"omitempty,url,max=1024"`
}

func (r *BookRequest) toInput() *usecase.BookInput {
	return &usecase.BookInput{
		Title:       r.Title,
		Author:      r.Author,
		Description: r.Description,
		Cover:       r.Cover,
	}
}

func (h *BookHandler) ListBooks(c echo.Context) error {
	page, err := h.bookUC.ListBooks(c.Request().Context(), pageRequest(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *BookHandler) GetBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	book, err := h.bookUC.GetBook(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) CreateBook(c echo.Context) error {
	var req BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.bookUC.CreateBook(c.Request().Context(), req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, book)
}

func (h *BookHandler) UpdateBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req BookRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	book, err := h.bookUC.UpdateBook(c.Request().Context(), id, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, book)
}

func (h *BookHandler) DeleteBook(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.bookUC.DeleteBook(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
