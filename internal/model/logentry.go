package model

import "time"

// LogEntry records work done on a task during one day. Durations are whole
// minutes; the (Date, TaskID) pair is the entry's identity, so a task gets at
// most one entry per day.
type LogEntry struct {
	Date            time.Time `json:"date" db:"date"`
	TaskID          int64     `json:"task_id" db:"task_id"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
}

// Duration returns the logged time as a time.Duration.
func (e LogEntry) Duration() time.Duration {
	return time.Duration(e.DurationMinutes) * time.Minute
}

// TaskWork is a log entry joined with its task, as returned by the work
// queries. Rows aggregated across dates leave Date at its zero value.
type TaskWork struct {
	TaskID          int64     `json:"task_id" db:"task_id"`
	TaskName        string    `json:"task_name" db:"task_name"`
	Issue           *int      `json:"issue,omitempty" db:"issue"`
	Date            time.Time `json:"date,omitempty" db:"date"`
	DurationMinutes int       `json:"duration_minutes" db:"duration_minutes"`
}

// Duration returns the summed work time as a time.Duration.
func (w TaskWork) Duration() time.Duration {
	return time.Duration(w.DurationMinutes) * time.Minute
}
