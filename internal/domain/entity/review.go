package entity

import "time"

// ReviewID is the compound identity of a review: one review per user and book.
type ReviewID struct {
	UserID int64 `json:"userId"`
	BookID int64 `json:"bookId"`
}

// Review is a user's rating and optional comment on a book.
type Review struct {
	ID        ReviewID
	Content   string
	Rate      int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ReviewView is a review joined with the owning user and the reviewed book.
// It is assembled by one explicit query rather than by walking relations.
type ReviewView struct {
	ID        ReviewID        `json:"id"`
	Content   string          `json:"content"`
	Rate      int             `json:"rate"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	User      *AccountSummary `json:"user"`
	Book      *BookRef        `json:"book"`
}

// BookRef is the part of a book embedded in review views.
type BookRef struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Author string `json:"author"`
}

// BookStatistics aggregates the reviews of one book.
type BookStatistics struct {
	BookID           int64   `json:"id"`
	NumberOfRates    int64   `json:"numberOfRates"`
	NumberOfComments int64   `json:"numberOfComments"`
	Rate             float64 `json:"rate"`
}

// Page is one slice of an ordered listing.
type Page[T any] struct {
	Content       []T   `json:"content"`
	Page          int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"totalElements"`
}

// PageRequest selects a page. Page is zero-based.
type PageRequest struct {
	Page int
	Size int
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Normalize clamps the request to sane bounds.
func (p PageRequest) Normalize() PageRequest {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.Size <= 0 {
		p.Size = defaultPageSize
	}
	if p.Size > maxPageSize {
		p.Size = maxPageSize
	}

	return p
}

// Offset returns the number of rows to skip.
func (p PageRequest) Offset() int {
	return p.Page * p.Size
}
