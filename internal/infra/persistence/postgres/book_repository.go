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

// bookRepository implements the domain BookRepository interface using GORM.
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository is the constructor for bookRepository.
func NewBookRepository(db *gorm.DB) repository.BookRepository {
	return &bookRepository{db: db}
}

func (repo *bookRepository) FindByID(ctx context.Context, id int64) (*entity.Book, error) {
	var bookM model.BookModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).Take(&bookM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrBookNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find book")
	}

	return toBookDomain(&bookM), nil
}

func (repo *bookRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := repo.db.WithContext(ctx).Model(&model.BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, domainerrors.NewDatabaseExecuteError(err, "failed to check book existence")
	}

	return count > 0, nil
}

func (repo *bookRepository) Create(ctx context.Context, book *entity.Book) error {
	bookM := fromBookDomain(book)
	if err := repo.db.WithContext(ctx).Create(bookM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create book")
	}

	book.ID = bookM.ID
	book.CreatedAt = bookM.CreatedAt
	book.UpdatedAt = bookM.UpdatedAt

	return nil
}

func (repo *bookRepository) Update(ctx context.Context, book *entity.Book) error {
	result := repo.db.WithContext(ctx).
		Model(&model.BookModel{ID: book.ID}).
		Updates(map[string]any{
			"title":       book.Title,
			"author":      book.Author,
			"description": book.Description,
			"cover":       book.Cover,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func (repo *bookRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.BookModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete book")
	}
	if result.RowsAffected == 0 {
		return repository.ErrBookNotFound
	}

	return nil
}

func (repo *bookRepository) List(ctx context.Context, page entity.PageRequest) ([]*entity.Book, int64, error) {
	page = page.Normalize()

	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.BookModel{}).Count(&total).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to count books")
	}

	var rows []*model.BookModel
	if err := repo.db.WithContext(ctx).Order("id ASC").Offset(page.Offset()).Limit(page.Size).Find(&rows).Error; err != nil {
		return nil, 0, domainerrors.NewDatabaseExecuteError(err, "failed to list books")
	}

	books := make([]*entity.Book, 0, len(rows))
	for _, row := range rows {
		books = append(books, toBookDomain(row))
	}

	return books, total, nil
}

func toBookDomain(data *model.BookModel) *entity.Book {
	if data == nil {
		return nil
	}

	return &entity.Book{
		ID:          data.ID,
		Title:       data.Title,
		Author:      data.Author,
		Description: data.Description,
		Cover:       data.Cover,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}

func fromBookDomain(data *entity.Book) *model.BookModel {
	if data == nil {
		return nil
	}

	return &model.BookModel{
		ID:          data.ID,
		Title:       data.Title,
		Author:      data.Author,
		Description: data.Description,
		Cover:       data.Cover,
		CreatedAt:   data.CreatedAt,
		UpdatedAt:   data.UpdatedAt,
	}
}
