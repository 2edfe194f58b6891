package model

import "time"

// AccountActivityModel mirrors the 'account_activities' table.
// Rows are not tied to users by a foreign key so the trail outlives deleted accounts.
type AccountActivityModel struct {
	EventID    string    `gorm:"primaryKey;type:varchar(64)"`
	Type       string    `gorm:"type:varchar(64);not null"`
	Username   string    `gorm:"type:varchar(50);not null;index:idx_account_activities_username"`
	Role       string    `gorm:"type:varchar(16);not null"`
	RequestID  string    `gorm:"type:varchar(64);not null"`
	OccurredAt time.Time `gorm:"not null"`
	RecordedAt time.Time `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (AccountActivityModel) TableName() string {
	return "account_activities"
}
