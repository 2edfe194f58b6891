package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
)

type reviewFixture struct {
	reviewer *entity.Account
	other    *entity.Account
	book     *entity.Book
}

func seedReviewFixture(t *testing.T, db *gorm.DB) reviewFixture {
	t.Helper()
	ctx := context.Background()

	accounts := NewAccountRepository(db)
	reviewer := newAccount("nowak", "nowak@example.com")
	other := newAccount("kowalski", "kowalski@example.com")
	require.NoError(t, accounts.Create(ctx, reviewer))
	require.NoError(t, accounts.Create(ctx, other))

	book := &entity.Book{Title: "Solaris", Author: "Stanisław Lem"}
	require.NoError(t, NewBookRepository(db).Create(ctx, book))

	return reviewFixture{reviewer: reviewer, other: other, book: book}
}

func TestBookRepository_CRUD(t *testing.T) {
	db := requireDB(t)
	repo := NewBookRepository(db)
	ctx := context.Background()

	book := &entity.Book{Title: "Solaris", Author: "Stanisław Lem", Description: "Ocean"}
	require.NoError(t, repo.Create(ctx, book))
	assert.NotZero(t, book.ID)

	book.Title = "Solaris (1961)"
	require.NoError(t, repo.Update(ctx, book))

	got, err := repo.FindByID(ctx, book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Solaris (1961)", got.Title)

	exists, err := repo.Exists(ctx, book.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	books, total, err := repo.List(ctx, entity.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, books, 1)

	require.NoError(t, repo.Delete(ctx, book.ID))
	_, err = repo.FindByID(ctx, book.ID)
	assert.ErrorIs(t, err, repository.ErrBookNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, book.ID), repository.ErrBookNotFound)
}

func TestReviewRepository_ViewsAreJoined(t *testing.T) {
	db := requireDB(t)
	fx := seedReviewFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	review := &entity.Review{
		ID:      entity.ReviewID{UserID: fx.reviewer.ID, BookID: fx.book.ID},
		Content: "Great",
		Rate:    5,
	}
	require.NoError(t, repo.Create(ctx, review))

	view, err := repo.FindView(ctx, "nowak", fx.book.ID)
	require.NoError(t, err)
	assert.Equal(t, review.ID, view.ID)
	assert.Equal(t, "nowak", view.User.Username)
	assert.Equal(t, "Solaris", view.Book.Title)
	assert.Equal(t, 5, view.Rate)

	_, err = repo.FindView(ctx, "kowalski", fx.book.ID)
	assert.ErrorIs(t, err, repository.ErrReviewNotFound)

	byBook, total, err := repo.ListByBook(ctx, fx.book.ID, entity.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "nowak", byBook[0].User.Username)

	byUser, total, err := repo.ListByUser(ctx, "nowak", entity.PageRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, fx.book.ID, byUser[0].Book.ID)
}

func TestReviewRepository_DuplicateAndConstraints(t *testing.T) {
	db := requireDB(t)
	fx := seedReviewFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	id := entity.ReviewID{UserID: fx.reviewer.ID, BookID: fx.book.ID}
	require.NoError(t, repo.Create(ctx, &entity.Review{ID: id, Rate: 3}))

	assert.ErrorIs(t, repo.Create(ctx, &entity.Review{ID: id, Rate: 4}), domainerrors.ErrReviewAlreadyExists)

	err := repo.Create(ctx, &entity.Review{ID: entity.ReviewID{UserID: fx.other.ID, BookID: fx.book.ID}, Rate: 9})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestReviewRepository_UpdateDeleteAndStatistics(t *testing.T) {
	db := requireDB(t)
	fx := seedReviewFixture(t, db)
	repo := NewReviewRepository(db)
	ctx := context.Background()

	stats, err := repo.Statistics(ctx, fx.book.ID)
	require.NoError(t, err)
	assert.Equal(t, &entity.BookStatistics{BookID: fx.book.ID}, stats)

	mine := entity.ReviewID{UserID: fx.reviewer.ID, BookID: fx.book.ID}
	theirs := entity.ReviewID{UserID: fx.other.ID, BookID: fx.book.ID}
	require.NoError(t, repo.Create(ctx, &entity.Review{ID: mine, Content: "Great", Rate: 5}))
	require.NoError(t, repo.Create(ctx, &entity.Review{ID: theirs, Rate: 2}))

	stats, err = repo.Statistics(ctx, fx.book.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.NumberOfRates)
	assert.EqualValues(t, 1, stats.NumberOfComments)
	assert.InDelta(t, 3.5, stats.Rate, 0.0001)

	require.NoError(t, repo.Update(ctx, &entity.Review{ID: theirs, Content: "Meh", Rate: 3}))
	view, err := repo.FindView(ctx, "kowalski", fx.book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Meh", view.Content)

	require.NoError(t, repo.Delete(ctx, theirs))
	assert.ErrorIs(t, repo.Delete(ctx, theirs), repository.ErrReviewNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &entity.Review{ID: theirs, Rate: 1}), repository.ErrReviewNotFound)
}

func TestReviewRepository_DeletingAccountRemovesReviews(t *testing.T) {
	db := requireDB(t)
	fx := seedReviewFixture(t, db)
	ctx := context.Background()

	require.NoError(t, NewReviewRepository(db).Create(ctx, &entity.Review{
		ID:   entity.ReviewID{UserID: fx.reviewer.ID, BookID: fx.book.ID},
		Rate: 4,
	}))
	require.NoError(t, NewAccountRepository(db).DeleteByUsername(ctx, "nowak"))

	_, total, err := NewReviewRepository(db).ListByBook(ctx, fx.book.ID, entity.PageRequest{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	db := requireDB(t)
	tm := NewTransactionManager(db)
	ctx := context.Background()

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewAccountRepository().Create(ctx, newAccount("nowak", "nowak@example.com")); err != nil {
			return err
		}
		return f.NewAccountRepository().Create(ctx, newAccount("nowak", "again@example.com"))
	})
	assert.ErrorIs(t, err, domainerrors.ErrDuplicateUsername)

	exists, err := NewAccountRepository(db).ExistsByUsername(ctx, "nowak")
	require.NoError(t, err)
	assert.False(t, exists, "the first insert must be rolled back")
}
