package model

import "time"

// AccountModel mirrors the 'users' table.
// Username and email carry the named unique constraints uq_users_username and uq_users_email.
type AccountModel struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(50);not null;uniqueIndex:uq_users_username"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:uq_users_email"`
	Firstname    string    `gorm:"type:varchar(100);not null"`
	Lastname     string    `gorm:"type:varchar(100);not null"`
	PasswordHash string    `gorm:"column:password_hash;type:varchar(72);not null"`
	Role         string    `gorm:"type:varchar(16);not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "users"
}
