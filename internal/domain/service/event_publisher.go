package service

import (
	"context"
	"time"
)

// Account event types.
const (
	AccountRegistered  = "account.registered"
	AccountRoleGranted = "account.role_granted"
	AccountDeleted     = "account.deleted"
)

// AccountEvent describes a change to an account, published after the change is committed.
type AccountEvent struct {
	RequestID  string    `json:"request_id,omitempty"` // For distributed tracing
	EventID    string    `json:"event_id"`
	Type       string    `json:"type"`
	Username   string    `json:"username"`
	Role       string    `json:"role,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountEvent publishes an account event for downstream consumers
	PublishAccountEvent(ctx context.Context, event *AccountEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
