package command

import "errors"

// Business-rule failures surfaced by the command services. Infrastructure
// failures keep the store taxonomy (store.ErrNotFound, store.ErrUnavailable).
var (
	// ErrInvalidAmount rejects a non-positive transfer amount before any
	// transaction opens.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrAccountNotFound is returned when either leg of a transfer names an
	// account that does not exist.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInsufficientBalance is the business invariant violation: the source
	// account cannot cover the amount. The unit of work is rolled back.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrNegativeBalance rejects account creation with a negative opening
	// balance.
	ErrNegativeBalance = errors.New("opening balance must not be negative")
)
