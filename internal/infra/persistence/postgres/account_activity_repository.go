package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bookreview/internal/domain/entity"
	domainerrors "bookreview/internal/domain/errors"
	"bookreview/internal/domain/repository"
	"bookreview/internal/infra/persistence/model"
)

type accountActivityRepository struct {
	db *gorm.DB
}

// NewAccountActivityRepository is the constructor for accountActivityRepository.
func NewAccountActivityRepository(db *gorm.DB) repository.AccountActivityRepository {
	return &accountActivityRepository{db: db}
}

func (repo *accountActivityRepository) Record(ctx context.Context, activity *entity.AccountActivity) (bool, error) {
	if activity.RecordedAt.IsZero() {
		activity.RecordedAt = time.Now().UTC()
	}

	result := repo.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "event_id"}}, DoNothing: true}).
		Create(fromAccountActivityDomain(activity))
	if result.Error != nil {
		return false, domainerrors.NewDatabaseExecuteError(result.Error, "failed to record account activity")
	}

	return result.RowsAffected > 0, nil
}

func (repo *accountActivityRepository) ListByUsername(ctx context.Context, username string) ([]*entity.AccountActivity, error) {
	var rows []model.AccountActivityModel
	err := repo.db.WithContext(ctx).
		Where("username = ?", username).
		Order("occurred_at ASC, event_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list account activities")
	}

	activities := make([]*entity.AccountActivity, 0, len(rows))
	for idx := range rows {
		activities = append(activities, toAccountActivityDomain(&rows[idx]))
	}

	return activities, nil
}

func fromAccountActivityDomain(activity *entity.AccountActivity) *model.AccountActivityModel {
	return &model.AccountActivityModel{
		EventID:    activity.EventID,
		Type:       activity.Type,
		Username:   activity.Username,
		Role:       activity.Role,
		RequestID:  activity.RequestID,
		OccurredAt: activity.OccurredAt,
		RecordedAt: activity.RecordedAt,
	}
}

func toAccountActivityDomain(row *model.AccountActivityModel) *entity.AccountActivity {
	return &entity.AccountActivity{
		EventID:    row.EventID,
		Type:       row.Type,
		Username:   row.Username,
		Role:       row.Role,
		RequestID:  row.RequestID,
		OccurredAt: row.OccurredAt,
		RecordedAt: row.RecordedAt,
	}
}
