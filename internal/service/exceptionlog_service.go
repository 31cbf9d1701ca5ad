package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/campusworks/tuition-api/internal/dto"
	"github.com/campusworks/tuition-api/internal/models"
	appErrors "github.com/campusworks/tuition-api/pkg/errors"
)

type exceptionLogRepository interface {
	Create(ctx context.Context, entry *models.ExceptionLog) error
	FindByStatusCode(ctx context.Context, filter string) ([]models.ExceptionLog, error)
	FindByStatusCodeBetween(ctx context.Context, filter string, from, to time.Time) ([]models.ExceptionLog, error)
}

// ExceptionLogService records handled request failures and serves the query
// endpoint over them.
type ExceptionLogService struct {
	repo   exceptionLogRepository
	logger *zap.Logger
	now    func() time.Time
}

// NewExceptionLogService constructs the exception log service.
func NewExceptionLogService(repo exceptionLogRepository, logger *zap.Logger) *ExceptionLogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExceptionLogService{repo: repo, logger: logger, now: time.Now}
}

// Record appends one failure entry. Recording is a best-effort side channel:
// a failed write is logged and swallowed so it never masks the original
// failure.
func (s *ExceptionLogService) Record(ctx context.Context, message, statusCode string) {
	entry := &models.ExceptionLog{
		Timestamp:  s.now().UTC(),
		StatusCode: statusCode,
		Message:    message,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		s.logger.Warn("failed to record exception log",
			zap.String("status_code", statusCode),
			zap.Error(err))
	}
}

// Query returns entries whose status code contains the filter substring,
// optionally narrowed to one calendar day (date in YYYY-MM-DD form). An
// empty result is NOT_FOUND, matching the legacy endpoint.
func (s *ExceptionLogService) Query(ctx context.Context, filter, date string) ([]dto.ExceptionLogDTO, error) {
	var (
		entries []models.ExceptionLog
		err     error
	)

	if date != "" {
		day, parseErr := time.Parse("2006-01-02", date)
		if parseErr != nil {
			return nil, appErrors.Wrap(parseErr, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "date must be in YYYY-MM-DD form")
		}
		entries, err = s.repo.FindByStatusCodeBetween(ctx, filter, day, day.AddDate(0, 0, 1))
	} else {
		entries, err = s.repo.FindByStatusCode(ctx, filter)
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to query exception logs")
	}
	if len(entries) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "found no exception log like this")
	}
	return dto.FromExceptionLogs(entries), nil
}
