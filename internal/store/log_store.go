package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Anfid/wlog/internal/model"
)

// CreateLogEntry inserts a new log entry. The task must exist, and the task
// must not already have an entry for that date.
func (s *SQLiteStore) CreateLogEntry(ctx context.Context, entry model.LogEntry) error {
	if entry.DurationMinutes < 0 {
		return fmt.Errorf("log entry duration must not be negative")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO log_entries (date, task_id, duration_minutes)
		VALUES (?, ?, ?)`,
		fmtDate(entry.Date), entry.TaskID, entry.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("creating log entry: %w", constraintErr(err))
	}
	return nil
}

// GetLogEntry retrieves the entry for a task on a given date.
func (s *SQLiteStore) GetLogEntry(ctx context.Context, date time.Time, taskID int64) (*model.LogEntry, error) {
	var (
		entry   model.LogEntry
		rawDate string
	)
	err := s.db.QueryRowxContext(ctx, `
		SELECT date, task_id, duration_minutes FROM log_entries
		WHERE date = ? AND task_id = ?`,
		fmtDate(date), taskID,
	).Scan(&rawDate, &entry.TaskID, &entry.DurationMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("log entry (%s, %d): %w", fmtDate(date), taskID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting log entry (%s, %d): %w", fmtDate(date), taskID, err)
	}
	entry.Date, err = parseDate(rawDate)
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// UpdateLogEntry replaces the duration of an existing entry.
func (s *SQLiteStore) UpdateLogEntry(ctx context.Context, entry model.LogEntry) error {
	if entry.DurationMinutes < 0 {
		return fmt.Errorf("log entry duration must not be negative")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE log_entries SET duration_minutes = ?
		WHERE date = ? AND task_id = ?`,
		entry.DurationMinutes, fmtDate(entry.Date), entry.TaskID,
	)
	if err != nil {
		return fmt.Errorf("updating log entry: %w", constraintErr(err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("log entry (%s, %d): %w", fmtDate(entry.Date), entry.TaskID, ErrNotFound)
	}
	return nil
}

// DeleteLogEntry removes the entry for a task on a given date.
func (s *SQLiteStore) DeleteLogEntry(ctx context.Context, date time.Time, taskID int64) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM log_entries WHERE date = ? AND task_id = ?",
		fmtDate(date), taskID,
	)
	if err != nil {
		return fmt.Errorf("deleting log entry: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("log entry (%s, %d): %w", fmtDate(date), taskID, ErrNotFound)
	}
	return nil
}

// AddWork records work on a task for a day. If the task already has an entry
// for that date, the durations are added up.
func (s *SQLiteStore) AddWork(ctx context.Context, entry model.LogEntry) error {
	if entry.DurationMinutes < 0 {
		return fmt.Errorf("log entry duration must not be negative")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO log_entries (date, task_id, duration_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(date, task_id) DO UPDATE
		SET duration_minutes = duration_minutes + excluded.duration_minutes`,
		fmtDate(entry.Date), entry.TaskID, entry.DurationMinutes,
	)
	if err != nil {
		return fmt.Errorf("adding work: %w", constraintErr(err))
	}
	return nil
}

// GetWorkByDay retrieves a project's log entries joined with their tasks,
// ordered by date. A non-nil period restricts the result to its inclusive
// date range.
func (s *SQLiteStore) GetWorkByDay(ctx context.Context, projectID int64, period *Period) ([]model.TaskWork, error) {
	query := `
		SELECT l.date, l.duration_minutes, t.id, t.name, t.issue
		FROM log_entries l
		INNER JOIN tasks t ON t.id = l.task_id
		WHERE t.project_id = ?`
	args := []interface{}{projectID}
	if period != nil {
		query += " AND l.date >= ? AND l.date <= ?"
		args = append(args, fmtDate(period.From), fmtDate(period.To))
	}
	query += " ORDER BY l.date, t.id"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying work by day: %w", err)
	}
	defer rows.Close()

	var work []model.TaskWork
	for rows.Next() {
		var (
			w       model.TaskWork
			rawDate string
		)
		if err := rows.Scan(&rawDate, &w.DurationMinutes, &w.TaskID, &w.TaskName, &w.Issue); err != nil {
			return nil, fmt.Errorf("scanning work row: %w", err)
		}
		if w.Date, err = parseDate(rawDate); err != nil {
			return nil, err
		}
		work = append(work, w)
	}
	return work, rows.Err()
}

// GetWorkByTask retrieves a project's logged work summed per task, ordered by
// each task's earliest entry. A non-nil period restricts the aggregation to
// its inclusive date range.
func (s *SQLiteStore) GetWorkByTask(ctx context.Context, projectID int64, period *Period) ([]model.TaskWork, error) {
	query := `
		SELECT t.id, t.name, t.issue, SUM(l.duration_minutes)
		FROM log_entries l
		INNER JOIN tasks t ON t.id = l.task_id
		WHERE t.project_id = ?`
	args := []interface{}{projectID}
	if period != nil {
		query += " AND l.date >= ? AND l.date <= ?"
		args = append(args, fmtDate(period.From), fmtDate(period.To))
	}
	query += " GROUP BY t.id, t.name, t.issue ORDER BY MIN(l.date), t.id"

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying work by task: %w", err)
	}
	defer rows.Close()

	var work []model.TaskWork
	for rows.Next() {
		var w model.TaskWork
		if err := rows.Scan(&w.TaskID, &w.TaskName, &w.Issue, &w.DurationMinutes); err != nil {
			return nil, fmt.Errorf("scanning work row: %w", err)
		}
		work = append(work, w)
	}
	return work, rows.Err()
}
