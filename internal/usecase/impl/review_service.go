package impl

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	deliverycontext "bookreview/internal/delivery/context"
	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/errors"
	"bookreview/internal/usecase"
)

type reviewService struct {
	reviewRepo  repository.ReviewRepository
	bookRepo    repository.BookRepository
	accountRepo repository.AccountRepository
	logger      *slog.Logger
}

// ReviewServiceParams holds dependencies for ReviewService, injected by Fx.
type ReviewServiceParams struct {
	fx.In

	ReviewRepo  repository.ReviewRepository
	BookRepo    repository.BookRepository
	AccountRepo repository.AccountRepository
	Logger      *slog.Logger
}

// NewReviewService is the constructor for reviewService.
func NewReviewService(params ReviewServiceParams) usecase.ReviewUsecase {
	return &reviewService{
		reviewRepo:  params.ReviewRepo,
		bookRepo:    params.BookRepo,
		accountRepo: params.AccountRepo,
		logger:      params.Logger,
	}
}

func (srv *reviewService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *reviewService) GetReview(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error) {
	view, err := srv.reviewRepo.FindView(ctx, username, bookID)
	if err != nil {
		return nil, mapReviewLookupError(err, username, bookID)
	}

	return view, nil
}

// ListBookReviews lists reviews of an existing book; an unknown book is a 404, not an empty page.
func (srv *reviewService) ListBookReviews(ctx context.Context, bookID int64, page entity.PageRequest) (*entity.Page[entity.ReviewView], error) {
	if err := srv.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	page = page.Normalize()
	views, total, err := srv.reviewRepo.ListByBook(ctx, bookID, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list book reviews")
	}

	return newPage(views, page, total), nil
}

// ListUserReviews lists reviews written by an existing user.
func (srv *reviewService) ListUserReviews(ctx context.Context, username string, page entity.PageRequest) (*entity.Page[entity.ReviewView], error) {
	if _, err := srv.requireAccount(ctx, username); err != nil {
		return nil, err
	}

	page = page.Normalize()
	views, total, err := srv.reviewRepo.ListByUser(ctx, username, page)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list user reviews")
	}

	return newPage(views, page, total), nil
}

func (srv *reviewService) BookStatistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error) {
	if err := srv.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	stats, err := srv.reviewRepo.Statistics(ctx, bookID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to compute book statistics")
	}

	return stats, nil
}

func (srv *reviewService) CreateReview(ctx context.Context, username string, bookID int64, input *usecase.ReviewInput) (*entity.ReviewView, error) {
	account, err := srv.requireAccount(ctx, username)
	if err != nil {
		return nil, err
	}
	if err := srv.requireBook(ctx, bookID); err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:      entity.ReviewID{UserID: account.ID, BookID: bookID},
		Content: input.Content,
		Rate:    input.Rate,
	}
	if err := srv.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Review created", slog.String("username", username), slog.Int64("bookID", bookID))

	return srv.GetReview(ctx, username, bookID)
}

func (srv *reviewService) UpdateReview(ctx context.Context, username string, bookID int64, input *usecase.ReviewInput) (*entity.ReviewView, error) {
	current, err := srv.GetReview(ctx, username, bookID)
	if err != nil {
		return nil, err
	}

	review := &entity.Review{
		ID:      current.ID,
		Content: input.Content,
		Rate:    input.Rate,
	}
	if err := srv.reviewRepo.Update(ctx, review); err != nil {
		return nil, mapReviewLookupError(err, username, bookID)
	}

	srv.log(ctx).Info("Review updated", slog.String("username", username), slog.Int64("bookID", bookID))

	return srv.GetReview(ctx, username, bookID)
}

func (srv *reviewService) DeleteReview(ctx context.Context, username string, bookID int64) error {
	current, err := srv.GetReview(ctx, username, bookID)
	if err != nil {
		return err
	}

	if err := srv.reviewRepo.Delete(ctx, current.ID); err != nil {
		return mapReviewLookupError(err, username, bookID)
	}

	srv.log(ctx).Info("Review deleted", slog.String("username", username), slog.Int64("bookID", bookID))

	return nil
}

func (srv *reviewService) requireBook(ctx context.Context, bookID int64) error {
	exists, err := srv.bookRepo.Exists(ctx, bookID)
	if err != nil {
		return errors.Wrap(err, "failed to check book existence")
	}
	if !exists {
		return bookNotFound(bookID)
	}

	return nil
}

func (srv *reviewService) requireAccount(ctx context.Context, username string) (*entity.Account, error) {
	account, err := srv.accountRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapAccountLookupError(err, username)
	}

	return account, nil
}

func mapReviewLookupError(err error, username string, bookID int64) error {
	if errors.Is(err, repository.ErrReviewNotFound) {
		return domainerrors.ErrReviewNotFound.WithMessagef("Review was not found for user=%s and bookId=%d", username, bookID)
	}

	return err
}
