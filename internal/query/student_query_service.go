package query

import (
	"context"

	"github.com/eaglebank/ledger-service/internal/cqrs"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/repository"
)

type StudentQueryService struct {
	readRepo *repository.StudentReadRepository
}

func NewStudentQueryService(readRepo *repository.StudentReadRepository) *StudentQueryService {
	return &StudentQueryService{readRepo: readRepo}
}

// GetStudent fetches a single student view from the read model.
func (s *StudentQueryService) GetStudent(ctx context.Context, q cqrs.GetStudentQuery) (*models.StudentView, error) {
	return s.readRepo.Get(ctx, q.StudentID)
}
