package models

import (
	"time"
	_ "time/tzdata"
)

// isoLayout mirrors the millisecond UTC form used by every persisted timestamp
const isoLayout = "2006-01-02T15:04:05.000Z"

// localLayout is the Italian day/month/year rendering used in emails
const localLayout = "2/1/2006, 15:04:05"

// FormatISO formats a time as an ISO-8601 UTC timestamp with milliseconds
func FormatISO(t time.Time) string {
	return t.UTC().Format(isoLayout)
}

// FormatLocal formats a time for display in the given location
func FormatLocal(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(localLayout)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *ValidationError) Error() string {
	return e.Message
}
