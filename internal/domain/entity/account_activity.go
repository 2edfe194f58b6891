package entity

import "time"

// AccountActivity is one account event as recorded by the event worker.
// EventID is unique, so redelivered events are recorded once.
type AccountActivity struct {
	EventID    string
	Type       string
	Username   string
	Role       string
	RequestID  string
	OccurredAt time.Time
	RecordedAt time.Time
}
