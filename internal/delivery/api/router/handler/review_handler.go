package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"bookreview/internal/delivery/api/response"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

// ReviewHandlerParams holds dependencies for ReviewHandler, injected by Fx.
type ReviewHandlerParams struct {
	fx.In

	ReviewUC usecase.ReviewUsecase
}

// ReviewHandler serves reviews addressed by author and book.
type ReviewHandler struct {
	reviewUC usecase.ReviewUsecase
}

// NewReviewHandler is the constructor for ReviewHandler.
func NewReviewHandler(params ReviewHandlerParams) *ReviewHandler {
	return &ReviewHandler{reviewUC: params.ReviewUC}
}

// ReviewRequest represents the request body for writing a review.
type ReviewRequest struct {
	Content string `json:"content" validate:"max=4000"`
	Rate    int    `json:"rate" validate:"required,min=1,max=5"`
}

func (r *ReviewRequest) toInput() *usecase.ReviewInput {
	return &usecase.ReviewInput{Content: r.Content, Rate: r.Rate}
}

func (h *ReviewHandler) GetReview(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	view, err := h.reviewUC.GetReview(c.Request().Context(), c.Param("username"), bookID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

func (h *ReviewHandler) ListBookReviews(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	page, err := h.reviewUC.ListBookReviews(c.Request().Context(), bookID, pageRequest(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *ReviewHandler) ListUserReviews(c echo.Context) error {
	page, err := h.reviewUC.ListUserReviews(c.Request().Context(), c.Param("username"), pageRequest(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, page)
}

func (h *ReviewHandler) BookStatistics(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	stats, err := h.reviewUC.BookStatistics(c.Request().Context(), bookID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, stats)
}

// CreateReview writes the path user's review. The owner guard has already matched the path user to the caller.
func (h *ReviewHandler) CreateReview(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.reviewUC.CreateReview(c.Request().Context(), c.Param("username"), bookID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view)
}

func (h *ReviewHandler) UpdateReview(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	var req ReviewRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	view, err := h.reviewUC.UpdateReview(c.Request().Context(), c.Param("username"), bookID, req.toInput())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view)
}

func (h *ReviewHandler) DeleteReview(c echo.Context) error {
	bookID, err := pathID(c, "bookId")
	if err != nil {
		return err
	}

	if err := h.reviewUC.DeleteReview(c.Request().Context(), c.Param("username"), bookID); err != nil {
		return errors.WithStack(err)
	}

	return response.NoContent(c)
}
