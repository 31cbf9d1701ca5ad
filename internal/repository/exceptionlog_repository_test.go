package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusworks/tuition-api/internal/models"
)

func TestExceptionLogRepositoryCreate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExceptionLogRepository(db)

	ts := time.Date(2024, 3, 10, 14, 30, 0, 0, time.UTC)
	mock.ExpectQuery(`INSERT INTO exception_logs \(timestamp, status_code, message\) VALUES \(\$1, \$2, \$3\) RETURNING id`).
		WithArgs(ts, "404 NOT_FOUND", "student with id 9 can not be found").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	entry := models.ExceptionLog{Timestamp: ts, StatusCode: "404 NOT_FOUND", Message: "student with id 9 can not be found"}
	require.NoError(t, repo.Create(context.Background(), &entry))
	assert.Equal(t, int64(1), entry.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExceptionLogRepositoryFindByStatusCode(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExceptionLogRepository(db)

	ts := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`WHERE status_code LIKE '%' \|\| \$1 \|\| '%' ORDER BY timestamp`).
		WithArgs("NOT_FOUND").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "status_code", "message"}).
			AddRow(int64(1), ts, "404 NOT_FOUND", "a"))

	entries, err := repo.FindByStatusCode(context.Background(), "NOT_FOUND")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "404 NOT_FOUND", entries[0].StatusCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExceptionLogRepositoryFindByStatusCodeBetween(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewExceptionLogRepository(db)

	from := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)
	mock.ExpectQuery(`AND timestamp >= \$2 AND timestamp < \$3 ORDER BY timestamp`).
		WithArgs("404", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"id", "timestamp", "status_code", "message"}))

	entries, err := repo.FindByStatusCodeBetween(context.Background(), "404", from, to)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}
