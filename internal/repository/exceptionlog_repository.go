package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/campusworks/tuition-api/internal/models"
)

// ExceptionLogRepository persists and queries the append-only failure log.
type ExceptionLogRepository struct {
	db *sqlx.DB
}

// NewExceptionLogRepository constructs an ExceptionLogRepository.
func NewExceptionLogRepository(db *sqlx.DB) *ExceptionLogRepository {
	return &ExceptionLogRepository{db: db}
}

// Create appends one log entry.
func (r *ExceptionLogRepository) Create(ctx context.Context, entry *models.ExceptionLog) error {
	const query = `INSERT INTO exception_logs (timestamp, status_code, message) VALUES ($1, $2, $3) RETURNING id`
	if err := r.db.GetContext(ctx, &entry.ID, query, entry.Timestamp, entry.StatusCode, entry.Message); err != nil {
		return fmt.Errorf("create exception log: %w", err)
	}
	return nil
}

// FindByStatusCode returns entries whose status code contains the filter
// substring, oldest first.
func (r *ExceptionLogRepository) FindByStatusCode(ctx context.Context, filter string) ([]models.ExceptionLog, error) {
	const query = `SELECT id, timestamp, status_code, message FROM exception_logs
        WHERE status_code LIKE '%' || $1 || '%' ORDER BY timestamp`
	entries := []models.ExceptionLog{}
	if err := r.db.SelectContext(ctx, &entries, query, filter); err != nil {
		return nil, fmt.Errorf("query exception logs: %w", err)
	}
	return entries, nil
}

// FindByStatusCodeBetween returns matching entries whose timestamp falls in
// [from, to), oldest first.
func (r *ExceptionLogRepository) FindByStatusCodeBetween(ctx context.Context, filter string, from, to time.Time) ([]models.ExceptionLog, error) {
	const query = `SELECT id, timestamp, status_code, message FROM exception_logs
        WHERE status_code LIKE '%' || $1 || '%' AND timestamp >= $2 AND timestamp < $3 ORDER BY timestamp`
	entries := []models.ExceptionLog{}
	if err := r.db.SelectContext(ctx, &entries, query, filter, from, to); err != nil {
		return nil, fmt.Errorf("query exception logs by date: %w", err)
	}
	return entries, nil
}
