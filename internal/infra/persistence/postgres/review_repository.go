package postgres

import (
	"context"

	"gorm.io/gorm"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/errors"
	"bookreview/internal/infra/persistence/model"
)

// reviewViewColumns selects one ReviewViewRow from reviews r ⋈ users u ⋈ books b.
const reviewViewColumns = `r.user_id, r.book_id, r.content, r.rate, r.created_at, r.updated_at,
	u.firstname AS user_firstname, u.lastname AS user_lastname, u.username AS user_username, u.created_at AS user_created_at,
	b.title AS book_title, b.author AS book_author`

// reviewRepository implements the domain ReviewRepository interface using GORM.
// Reads are single explicit join queries; no association is loaded lazily.
type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository is the constructor for reviewRepository.
func NewReviewRepository(db *gorm.DB) repository.ReviewRepository {
	return &reviewRepository{db: db}
}

func (repo *reviewRepository) views(ctx context.Context) *gorm.DB {
	return repo.db.WithContext(ctx).
		Table("reviews AS r").
		Joins("JOIN users AS u ON u.id = r.user_id").
		Joins("JOIN books AS b ON b.id = r.book_id")
}

func (repo *reviewRepository) FindView(ctx context.Context, username string, bookID int64) (*entity.ReviewView, error) {
	var row model.ReviewViewRow
	err := repo.views(ctx).
		Select(reviewViewColumns).
		Where("u.username = ? AND r.book_id = ?", username, bookID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrReviewNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find review")
	}

	return toReviewViewDomain(&row), nil
}

func (repo *reviewRepository) ListByBook(ctx context.Context, bookID int64, page entity.PageRequest) ([]*entity.ReviewView, int64, error) {
	return repo.list(ctx, page, "r.book_id = ?", bookID)
}

func (repo *reviewRepository) ListByUser(ctx context.Context, username string, page entity.PageRequest) ([]*entity.ReviewView, int64, error) {
	return repo.list(ctx, page, "u.username = ?", username)
}

func (repo *reviewRepository) list(ctx context.Context, page entity.PageRequest, query string, arg any) ([]*entity.ReviewView, int64, error) {
	page = page.Normalize()

	var total int64
	if err := repo.views(ctx).Where(query, arg).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count reviews")
	}

	var rows []*model.ReviewViewRow
	err := repo.views(ctx).
		Select(reviewViewColumns).
		Where(query, arg).
		Order("r.created_at DESC, r.user_id, r.book_id").
		Offset(page.Offset()).
		Limit(page.Size).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list reviews")
	}

	views := make([]*entity.ReviewView, 0, len(rows))
	for _, row := range rows {
		views = append(views, toReviewViewDomain(row))
	}

	return views, total, nil
}

func (repo *reviewRepository) Statistics(ctx context.Context, bookID int64) (*entity.BookStatistics, error) {
	var row model.BookStatisticsRow
	err := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Select(`COUNT(*) AS number_of_rates,
			COUNT(*) FILTER (WHERE content <> '') AS number_of_comments,
			COALESCE(AVG(rate), 0)::float8 AS rate`).
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to aggregate reviews")
	}

	return &entity.BookStatistics{
		BookID:           bookID,
		NumberOfRates:    row.NumberOfRates,
		NumberOfComments: row.NumberOfComments,
		Rate:             row.Rate,
	}, nil
}

func (repo *reviewRepository) Create(ctx context.Context, review *entity.Review) error {
	reviewM := fromReviewDomain(review)
	if err := repo.db.WithContext(ctx).Create(reviewM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrReviewAlreadyExists
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrBookNotFound
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WithDetails("rate must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create review")
	}

	review.CreatedAt = reviewM.CreatedAt
	review.UpdatedAt = reviewM.UpdatedAt

	return nil
}

func (repo *reviewRepository) Update(ctx context.Context, review *entity.Review) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ReviewModel{}).
		Where("user_id = ? AND book_id = ?", review.ID.UserID, review.ID.BookID).
		Updates(map[string]any{
			"content": review.Content,
			"rate":    review.Rate,
		})
	if result.Error != nil {
		if isCheckConstraintViolation(result.Error) {
			return domainerrors.ErrValidationFailed.WithDetails("rate must be between 1 and 5")
		}

		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func (repo *reviewRepository) Delete(ctx context.Context, id entity.ReviewID) error {
	result := repo.db.WithContext(ctx).
		Where("user_id = ? AND book_id = ?", id.UserID, id.BookID).
		Delete(&model.ReviewModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete review")
	}
	if result.RowsAffected == 0 {
		return repository.ErrReviewNotFound
	}

	return nil
}

func toReviewViewDomain(row *model.ReviewViewRow) *entity.ReviewView {
	return &entity.ReviewView{
		ID:        entity.ReviewID{UserID: row.UserID, BookID: row.BookID},
		Content:   row.Content,
		Rate:      row.Rate,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
		User: &entity.AccountSummary{
			Firstname: row.UserFirstname,
			Lastname:  row.UserLastname,
			Username:  row.UserUsername,
			CreatedAt: row.UserCreatedAt,
		},
		Book: &entity.BookRef{
			ID:     row.BookID,
			Title:  row.BookTitle,
			Author: row.BookAuthor,
		},
	}
}

func fromReviewDomain(data *entity.Review) *model.ReviewModel {
	return &model.ReviewModel{
		UserID:    data.ID.UserID,
		BookID:    data.ID.BookID,
		Content:   data.Content,
		Rate:      data.Rate,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}
}
