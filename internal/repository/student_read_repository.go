package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/eaglebank/ledger-service/internal/models"
	sharedredis "github.com/eaglebank/ledger-service/internal/redis"
	"github.com/eaglebank/ledger-service/internal/store"
)

const studentViewKeyPrefix = "student:view:"

// StudentReadRepository handles all read operations for student records,
// Redis read model first with PostgreSQL fallback.
type StudentReadRepository struct {
	db    *sql.DB
	cache *sharedredis.ViewCache[models.StudentView]
}

func NewStudentReadRepository(db *sql.DB, redisClient *goredis.Client, logger *zap.Logger) *StudentReadRepository {
	return &StudentReadRepository{
		db:    db,
		cache: sharedredis.NewViewCache[models.StudentView](redisClient, 0, logger),
	}
}

// Get returns a StudentView, trying Redis first then PostgreSQL.
func (r *StudentReadRepository) Get(ctx context.Context, id int) (*models.StudentView, error) {
	cacheKey := studentViewKeyPrefix + strconv.Itoa(id)

	if view, ok := r.cache.Get(ctx, cacheKey); ok {
		return view, nil
	}

	query := `SELECT id, name, course FROM students WHERE id = $1`
	var view models.StudentView
	err := r.db.QueryRowContext(ctx, query, id).Scan(&view.ID, &view.Name, &view.Course)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("student %d: %w", id, store.ErrNotFound)
	}
	if err != nil {
		return nil, infraError("get student view", err)
	}

	r.CacheStudentView(ctx, &view)
	return &view, nil
}

// CacheStudentView stores or refreshes the Redis read model for a student.
func (r *StudentReadRepository) CacheStudentView(ctx context.Context, view *models.StudentView) {
	r.cache.Set(ctx, studentViewKeyPrefix+strconv.Itoa(view.ID), view)
}

// InvalidateStudentView removes the Redis read model entry for a deleted
// student.
func (r *StudentReadRepository) InvalidateStudentView(ctx context.Context, id int) {
	r.cache.Delete(ctx, studentViewKeyPrefix+strconv.Itoa(id))
}
