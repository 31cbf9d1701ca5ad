package dto

import (
	"time"

	"github.com/campusworks/tuition-api/internal/models"
)

// ExceptionLogDTO is the read-only wire shape of a logged failure.
type ExceptionLogDTO struct {
	Timestamp  time.Time `json:"timestamp"`
	StatusCode string    `json:"statusCode"`
	Message    string    `json:"message"`
}

// FromExceptionLog maps a log entry to its DTO.
func FromExceptionLog(entry models.ExceptionLog) ExceptionLogDTO {
	return ExceptionLogDTO{
		Timestamp:  entry.Timestamp,
		StatusCode: entry.StatusCode,
		Message:    entry.Message,
	}
}

// FromExceptionLogs maps a slice of log entries.
func FromExceptionLogs(entries []models.ExceptionLog) []ExceptionLogDTO {
	result := make([]ExceptionLogDTO, 0, len(entries))
	for _, entry := range entries {
		result = append(result, FromExceptionLog(entry))
	}
	return result
}
