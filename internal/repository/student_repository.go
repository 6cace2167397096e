package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/eaglebank/ledger-service/internal/models"
	"github.com/eaglebank/ledger-service/internal/store"
)

// StudentRepository handles all state-mutating operations for student
// records against the PostgreSQL write store.
type StudentRepository struct {
	db *sql.DB
}

func NewStudentRepository(db *sql.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

func (r *StudentRepository) Create(ctx context.Context, record *models.StudentRecord) (int, error) {
	query := `
		INSERT INTO students (name, course)
		VALUES ($1, $2)
		RETURNING id
	`
	err := executor(ctx, r.db).QueryRowContext(ctx, query, record.Name, record.Course).Scan(&record.ID)
	if err != nil {
		return 0, infraError("create student", err)
	}
	return record.ID, nil
}

func (r *StudentRepository) Fetch(ctx context.Context, id int) (*models.StudentRecord, error) {
	query := `SELECT id, name, course FROM students WHERE id = $1`
	var record models.StudentRecord
	err := executor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&record.ID, &record.Name, &record.Course,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, infraError("fetch student", err)
	}
	return &record, nil
}

func (r *StudentRepository) Update(ctx context.Context, record *models.StudentRecord) error {
	query := `UPDATE students SET name = $2, course = $3 WHERE id = $1`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, record.ID, record.Name, record.Course)
	if err != nil {
		return infraError("update student", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return infraError("update student: rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("student %d: %w", record.ID, store.ErrNotFound)
	}
	return nil
}

func (r *StudentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM students WHERE id = $1`
	result, err := executor(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return infraError("delete student", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return infraError("delete student: rows affected", err)
	}
	if rows == 0 {
		return fmt.Errorf("student %d: %w", id, store.ErrNotFound)
	}
	return nil
}
