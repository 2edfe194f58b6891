package model

import "time"

// ReviewModel mirrors the 'reviews' table. The primary key is (user_id, book_id).
type ReviewModel struct {
	UserID    int64  `gorm:"primaryKey;autoIncrement:false"`
	BookID    int64  `gorm:"primaryKey;autoIncrement:false"`
	Content   string `gorm:"type:text"`
	Rate      int    `gorm:"not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (ReviewModel) TableName() string {
	return "reviews"
}

// ReviewViewRow is the result row of the review ⋈ users ⋈ books query.
type ReviewViewRow struct {
	UserID        int64
	BookID        int64
	Content       string
	Rate          int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	UserFirstname string
	UserLastname  string
	UserUsername  string
	UserCreatedAt time.Time
	BookTitle     string
	BookAuthor    string
}

// BookStatisticsRow is the result row of the per-book aggregate query.
type BookStatisticsRow struct {
	NumberOfRates    int64
	NumberOfComments int64
	Rate             float64
}
