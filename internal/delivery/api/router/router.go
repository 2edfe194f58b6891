// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"

	"bookreview/internal/delivery/api/middleware"
	"bookreview/internal/delivery/api/router/handler"
	"bookreview/internal/domain/entity"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	BookHandler    *handler.BookHandler
	ReviewHandler  *handler.ReviewHandler
	AuthMiddleware *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	bookHandler    *handler.BookHandler
	reviewHandler  *handler.ReviewHandler
	authMiddleware *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		bookHandler:    params.BookHandler,
		reviewHandler:  params.ReviewHandler,
		authMiddleware: params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
// Guards run before the handler: Authenticate first, then role or ownership.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	api := e.Group("/api")
	authenticated := r.authMiddleware.Authenticate
	adminOnly := r.authMiddleware.RequireRole(entity.RoleAdmin)
	pathUser := r.authMiddleware.RequireOwner("username")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/valid", r.authHandler.ValidateToken)
	}

	usersGroup := api.Group("/users")
	{
		usersGroup.GET("", r.userHandler.ListUsers)
		usersGroup.GET("/:username", r.userHandler.GetUser)
		usersGroup.PUT("/:username/password", r.userHandler.ChangePassword, authenticated, pathUser)
		usersGroup.PUT("/:username/grant/:role", r.userHandler.GrantRole, authenticated, adminOnly)
		usersGroup.DELETE("/:username", r.userHandler.DeleteUser, authenticated, adminOnly)
	}

	booksGroup := api.Group("/books")
	{
		booksGroup.GET("", r.bookHandler.ListBooks)
		booksGroup.GET("/:id", r.bookHandler.GetBook)
		booksGroup.POST("", r.bookHandler.CreateBook, authenticated)
		booksGroup.PUT("/:id", r.bookHandler.UpdateBook, authenticated, adminOnly)
		booksGroup.DELETE("/:id", r.bookHandler.DeleteBook, authenticated, adminOnly)
	}

	reviewsGroup := api.Group("/reviews")
	{
		reviewsGroup.GET("/book/:bookId", r.reviewHandler.ListBookReviews)
		reviewsGroup.GET("/book/:bookId/stats", r.reviewHandler.BookStatistics)
		reviewsGroup.GET("/user/:username", r.reviewHandler.ListUserReviews)
		reviewsGroup.GET("/:username/:bookId", r.reviewHandler.GetReview)
		reviewsGroup.POST("/:username/:bookId", r.reviewHandler.CreateReview, authenticated, pathUser)
		reviewsGroup.PUT("/:username/:bookId", r.reviewHandler.UpdateReview, authenticated, pathUser)
		reviewsGroup.DELETE("/:username/:bookId", r.reviewHandler.DeleteReview, authenticated, pathUser)
	}
}
