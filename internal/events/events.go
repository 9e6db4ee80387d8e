// Package events publishes settlement notifications to interested consumers.
package events

import (
	"context"
	"time"
)

// Type names an event.
type Type string

const (
	SettlementRecorded Type = "settlement.recorded"
	SettlementUndone   Type = "settlement.undone"
	GroupArchived      Type = "group.archived"
	GroupUnarchived    Type = "group.unarchived"
)

// Event describes a change to a group's settlement state.
type Event struct {
	Type       Type      `json:"type"`
	GroupID    string    `json:"group_id"`
	ExpenseID  string    `json:"expense_id,omitempty"`
	DebtorID   string    `json:"debtor_id,omitempty"`
	CreditorID string    `json:"creditor_id,omitempty"`
	Amount     float64   `json:"amount,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

func (NopPublisher) Close() error { return nil }
