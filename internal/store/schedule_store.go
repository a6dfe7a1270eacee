package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Anfid/wlog/internal/model"
)

// SetScheduleSettings upserts a project's schedule settings, replacing any
// prior row. The referenced project must exist.
func (s *SQLiteStore) SetScheduleSettings(ctx context.Context, settings model.ScheduleSettings) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_settings (project_id, weekdays, workday_minutes)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id) DO UPDATE
		SET weekdays = excluded.weekdays, workday_minutes = excluded.workday_minutes`,
		settings.ProjectID, settings.Weekdays, settings.WorkdayMinutes,
	)
	if err != nil {
		return fmt.Errorf("setting schedule for project %d: %w", settings.ProjectID, constraintErr(err))
	}
	return nil
}

// GetScheduleSettings retrieves a project's schedule settings.
func (s *SQLiteStore) GetScheduleSettings(ctx context.Context, projectID int64) (*model.ScheduleSettings, error) {
	var settings model.ScheduleSettings
	err := s.db.QueryRowxContext(ctx, `
		SELECT project_id, weekdays, workday_minutes
		FROM schedule_settings WHERE project_id = ?`,
		projectID,
	).Scan(&settings.ProjectID, &settings.Weekdays, &settings.WorkdayMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule settings for project %d: %w", projectID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting schedule settings for project %d: %w", projectID, err)
	}
	return &settings, nil
}

// DeleteScheduleSettings removes a project's schedule settings.
func (s *SQLiteStore) DeleteScheduleSettings(ctx context.Context, projectID int64) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM schedule_settings WHERE project_id = ?", projectID)
	if err != nil {
		return fmt.Errorf("deleting schedule settings for project %d: %w", projectID, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("schedule settings for project %d: %w", projectID, ErrNotFound)
	}
	return nil
}

// CreateScheduleLog inserts a schedule log row. The project must exist, and
// the project must not already have a log for that month.
func (s *SQLiteStore) CreateScheduleLog(ctx context.Context, log model.ScheduleLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_logs (project_id, month, bitmap)
		VALUES (?, ?, ?)`,
		log.ProjectID, log.Month, int64(log.Bitmap),
	)
	if err != nil {
		return fmt.Errorf("creating schedule log: %w", constraintErr(err))
	}
	return nil
}

// UpsertScheduleLog inserts a schedule log row, replacing the bitmap when the
// project already has a log for that month.
func (s *SQLiteStore) UpsertScheduleLog(ctx context.Context, log model.ScheduleLog) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO schedule_logs (project_id, month, bitmap)
		VALUES (?, ?, ?)
		ON CONFLICT(project_id, month) DO UPDATE SET bitmap = excluded.bitmap`,
		log.ProjectID, log.Month, int64(log.Bitmap),
	)
	if err != nil {
		return fmt.Errorf("upserting schedule log: %w", constraintErr(err))
	}
	return nil
}

// GetScheduleLog retrieves a project's schedule log for one month.
func (s *SQLiteStore) GetScheduleLog(ctx context.Context, projectID int64, month int) (*model.ScheduleLog, error) {
	var (
		log    model.ScheduleLog
		bitmap int64
	)
	err := s.db.QueryRowxContext(ctx, `
		SELECT project_id, month, bitmap FROM schedule_logs
		WHERE project_id = ? AND month = ?`,
		projectID, month,
	).Scan(&log.ProjectID, &log.Month, &bitmap)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("schedule log (%d, %d): %w", projectID, month, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting schedule log (%d, %d): %w", projectID, month, err)
	}
	log.Bitmap = uint32(bitmap)
	return &log, nil
}

// DeleteScheduleLog removes a project's schedule log for one month.
func (s *SQLiteStore) DeleteScheduleLog(ctx context.Context, projectID int64, month int) error {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM schedule_logs WHERE project_id = ? AND month = ?",
		projectID, month)
	if err != nil {
		return fmt.Errorf("deleting schedule log (%d, %d): %w", projectID, month, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("schedule log (%d, %d): %w", projectID, month, ErrNotFound)
	}
	return nil
}
