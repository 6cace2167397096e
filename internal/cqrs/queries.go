package cqrs

type GetStudentQuery struct {
	StudentID int
}

type GetAccountQuery struct {
	AccountID int
}
