package command

import (
	"context"

	"go.uber.org/zap"

	"github.com/eaglebank/ledger-service/internal/cqrs"
	"github.com/eaglebank/ledger-service/internal/events"
	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// StudentViewCache is the write-side view of the student read model.
type StudentViewCache interface {
	CacheStudentView(ctx context.Context, view *models.StudentView)
	InvalidateStudentView(ctx context.Context, id int)
}

// StudentService writes student records and keeps the read model in sync.
type StudentService struct {
	students  store.Store[int, models.StudentRecord]
	readRepo  StudentViewCache
	publisher EventPublisher
	logger    *zap.Logger
}

func NewStudentService(
	students store.Store[int, models.StudentRecord],
	readRepo StudentViewCache,
	publisher EventPublisher,
	logger *zap.Logger,
) *StudentService {
	return &StudentService{
		students:  students,
		readRepo:  readRepo,
		publisher: publisher,
		logger:    logger,
	}
}

func (s *StudentService) CreateStudent(ctx context.Context, cmd cqrs.CreateStudentCommand) (*models.StudentRecord, error) {
	record := &models.StudentRecord{Name: cmd.Name, Course: cmd.Course}
	if _, err := s.students.Create(ctx, record); err != nil {
		return nil, err
	}

	s.readRepo.CacheStudentView(ctx, studentToView(record))
	if err := s.publisher.Publish(ctx, events.StudentEventsStream, events.StudentCreated, events.StudentCreatedEvent{
		StudentID: record.ID,
		Name:      record.Name,
		Course:    record.Course,
	}); err != nil {
		s.logger.Warn("failed to publish student.created event", zap.Int("studentId", record.ID), zap.Error(err))
	}
	return record, nil
}

// UpdateStudent changes the course of an existing student record.
func (s *StudentService) UpdateStudent(ctx context.Context, cmd cqrs.UpdateStudentCommand) (*models.StudentView, error) {
	record, err := s.students.Fetch(ctx, cmd.StudentID)
	if err != nil {
		return nil, err
	}

	record.Course = cmd.Course
	if err := s.students.Update(ctx, record); err != nil {
		return nil, err
	}

	view := studentToView(record)
	s.readRepo.CacheStudentView(ctx, view)
	if err := s.publisher.Publish(ctx, events.StudentEventsStream, events.StudentUpdated, events.StudentUpdatedEvent{
		StudentID: record.ID,
		Course:    record.Course,
	}); err != nil {
		s.logger.Warn("failed to publish student.updated event", zap.Int("studentId", record.ID), zap.Error(err))
	}
	return view, nil
}

func (s *StudentService) DeleteStudent(ctx context.Context, cmd cqrs.DeleteStudentCommand) error {
	if err := s.students.Delete(ctx, cmd.StudentID); err != nil {
		return err
	}

	s.readRepo.InvalidateStudentView(ctx, cmd.StudentID)
	if err := s.publisher.Publish(ctx, events.StudentEventsStream, events.StudentDeleted, events.StudentDeletedEvent{
		StudentID: cmd.StudentID,
	}); err != nil {
		s.logger.Warn("failed to publish student.deleted event", zap.Int("studentId", cmd.StudentID), zap.Error(err))
	}
	return nil
}

// studentToView converts the write model to a read view model.
func studentToView(r *models.StudentRecord) *models.StudentView {
	return &models.StudentView{
		ID:     r.ID,
		Name:   r.Name,
		Course: r.Course,
	}
}
