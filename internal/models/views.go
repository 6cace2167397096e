package models

import "github.com/shopspring/decimal"

// StudentView is the read-optimised projection of a student record.
type StudentView struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Course string `json:"course"`
}

// AccountView is the read-optimised projection of an account.
type AccountView struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}

// TransferResult reports the durable outcome of a completed transfer.
// Both balances are the post-commit values, atomically visible together.
type TransferResult struct {
	TransferID    string          `json:"transferId"`
	FromAccountID int             `json:"fromAccountId"`
	ToAccountID   int             `json:"toAccountId"`
	Amount        decimal.Decimal `json:"amount"`
	FromBalance   decimal.Decimal `json:"fromBalance"`
	ToBalance     decimal.Decimal `json:"toBalance"`
}
