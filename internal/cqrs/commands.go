package cqrs

import "github.com/shopspring/decimal"

type CreateStudentCommand struct {
	Name   string
	Course string
}

type UpdateStudentCommand struct {
	StudentID int
	Course    string
}

type DeleteStudentCommand struct {
	StudentID int
}

type CreateAccountCommand struct {
	Name    string
	Balance decimal.Decimal
}

type TransferCommand struct {
	FromAccountID int
	ToAccountID   int
	Amount        decimal.Decimal
}
