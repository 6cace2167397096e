package events

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	StudentCreated = "student.created"
	StudentUpdated = "student.updated"
	StudentDeleted = "student.deleted"

	AccountCreated = "account.created"

	TransferCompleted = "transfer.completed"
)

// Stream names
const (
	StudentEventsStream  = "student.events"
	AccountEventsStream  = "account.events"
	TransferEventsStream = "transfer.events"
)

// Base event structure
type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      any       `json:"data"`
}

// Student events
type StudentCreatedEvent struct {
	StudentID int    `json:"studentId"`
	Name      string `json:"name"`
	Course    string `json:"course"`
}

type StudentUpdatedEvent struct {
	StudentID int    `json:"studentId"`
	Course    string `json:"course"`
}

type StudentDeletedEvent struct {
	StudentID int `json:"studentId"`
}

// Account events
type AccountCreatedEvent struct {
	AccountID int             `json:"accountId"`
	Name      string          `json:"name"`
	Balance   decimal.Decimal `json:"balance"`
}

// Transfer events
type TransferCompletedEvent struct {
	TransferID    string          `json:"transferId"`
	FromAccountID int             `json:"fromAccountId"`
	ToAccountID   int             `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	FromBalance   decimal.Decimal `json:"fromBalance"`
	ToBalance     decimal.Decimal `json:"toBalance"`
}
