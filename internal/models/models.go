package models

import "github.com/shopspring/decimal"

// StudentRecord is the write model for a student enrolment.
// The ID is assigned by the store on creation and immutable thereafter.
type StudentRecord struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Course string `json:"course"`
}

// Account is the write model for a bank account. Name is immutable after
// creation; Balance never goes negative as a result of a transfer.
type Account struct {
	ID      int             `json:"id"`
	Name    string          `json:"name"`
	Balance decimal.Decimal `json:"balance"`
}
