package repository

import (
	"context"

	"bookreview/internal/domain/entity"
)

// AccountActivityRepository stores the audit trail of account events.
type AccountActivityRepository interface {
	// Record stores the activity. It reports false when an activity with the
	// same event ID was already recorded.
	Record(ctx context.Context, activity *entity.AccountActivity) (bool, error)
	// ListByUsername returns the activities of one account, oldest first.
	ListByUsername(ctx context.Context, username string) ([]*entity.AccountActivity, error)
}
