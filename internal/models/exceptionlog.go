package models

import "time"

// ExceptionLog is an append-only record of a handled request failure.
// StatusCode keeps the "404 NOT_FOUND" textual form so entries can be
// filtered by either the numeric code or the code name.
type ExceptionLog struct {
	ID         int64     `db:"id" json:"-"`
	Timestamp  time.Time `db:"timestamp" json:"timestamp"`
	StatusCode string    `db:"status_code" json:"status_code"`
	Message    string    `db:"message" json:"message"`
}
