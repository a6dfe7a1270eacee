package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/Anfid/wlog/internal/model"
)

// CreateProject inserts a new project and returns it with its assigned ID.
// A non-zero ID on the input is kept as-is.
func (s *SQLiteStore) CreateProject(ctx context.Context, project model.Project) (*model.Project, error) {
	if strings.TrimSpace(project.URL) == "" {
		return nil, fmt.Errorf("project url must not be empty")
	}

	if project.ID != 0 {
		_, err := s.db.ExecContext(ctx,
			"INSERT INTO projects (id, url, name) VALUES (?, ?, ?)",
			project.ID, project.URL, project.Name,
		)
		if err != nil {
			return nil, fmt.Errorf("creating project: %w", constraintErr(err))
		}
		return &project, nil
	}

	result, err := s.db.ExecContext(ctx,
		"INSERT INTO projects (url, name) VALUES (?, ?)",
		project.URL, project.Name,
	)
	if err != nil {
		return nil, fmt.Errorf("creating project: %w", constraintErr(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new project id: %w", err)
	}
	project.ID = id
	return &project, nil
}

// GetProjectByID retrieves a single project by ID.
func (s *SQLiteStore) GetProjectByID(ctx context.Context, id int64) (*model.Project, error) {
	var project model.Project
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, url, name FROM projects WHERE id = ?", id,
	).Scan(&project.ID, &project.URL, &project.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("project %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting project %d: %w", id, err)
	}
	return &project, nil
}

// GetProjects retrieves all projects ordered by ID.
func (s *SQLiteStore) GetProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := s.db.QueryxContext(ctx,
		"SELECT id, url, name FROM projects ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("querying projects: %w", err)
	}
	defer rows.Close()

	var projects []model.Project
	for rows.Next() {
		var p model.Project
		if err := rows.Scan(&p.ID, &p.URL, &p.Name); err != nil {
			return nil, fmt.Errorf("scanning project row: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateProject replaces the mutable fields of an existing project.
func (s *SQLiteStore) UpdateProject(ctx context.Context, project model.Project) error {
	if strings.TrimSpace(project.URL) == "" {
		return fmt.Errorf("project url must not be empty")
	}

	result, err := s.db.ExecContext(ctx,
		"UPDATE projects SET url = ?, name = ? WHERE id = ?",
		project.URL, project.Name, project.ID,
	)
	if err != nil {
		return fmt.Errorf("updating project %d: %w", project.ID, constraintErr(err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %d: %w", project.ID, ErrNotFound)
	}
	return nil
}

// DeleteProject removes a project and all of its dependents in one
// transaction: the log entries of its tasks, the tasks themselves, the
// default-project pointer if it referenced this project, and the project's
// schedule settings and logs.
func (s *SQLiteStore) DeleteProject(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM log_entries WHERE task_id IN (SELECT id FROM tasks WHERE project_id = ?)",
		id)
	if err != nil {
		return fmt.Errorf("deleting log entries of project %d: %w", id, err)
	}
	entryCount, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, "DELETE FROM tasks WHERE project_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting tasks of project %d: %w", id, err)
	}
	taskCount, _ := res.RowsAffected()

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM default_project WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting default project pointer: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM schedule_settings WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting schedule settings of project %d: %w", id, err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM schedule_logs WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("deleting schedule logs of project %d: %w", id, err)
	}

	res, err = tx.ExecContext(ctx, "DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("project %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing project delete: %w", err)
	}

	s.log.Debug("deleted project",
		zap.Int64("id", id),
		zap.Int64("tasks", taskCount),
		zap.Int64("log_entries", entryCount),
	)
	return nil
}

// SetDefaultProject upserts the singleton default-project row, replacing any
// prior value. The referenced project must exist.
func (s *SQLiteStore) SetDefaultProject(ctx context.Context, projectID int64) error {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM projects WHERE id = ?", projectID)
	if err != nil {
		return fmt.Errorf("checking project %d: %w", projectID, err)
	}
	if count == 0 {
		return fmt.Errorf("project %d does not exist: %w", projectID, ErrConstraintViolation)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO default_project (id, project_id) VALUES (0, ?)
		ON CONFLICT(id) DO UPDATE SET project_id = excluded.project_id`,
		projectID,
	)
	if err != nil {
		return fmt.Errorf("setting default project: %w", constraintErr(err))
	}
	return nil
}

// GetDefaultProject resolves the default-project pointer to its project.
func (s *SQLiteStore) GetDefaultProject(ctx context.Context) (*model.Project, error) {
	var project model.Project
	err := s.db.QueryRowxContext(ctx, `
		SELECT p.id, p.url, p.name
		FROM default_project d
		INNER JOIN projects p ON p.id = d.project_id
		WHERE d.id = 0`,
	).Scan(&project.ID, &project.URL, &project.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("default project not set: %w", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting default project: %w", err)
	}
	return &project, nil
}

// ClearDefaultProject removes the default-project pointer.
func (s *SQLiteStore) ClearDefaultProject(ctx context.Context) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM default_project WHERE id = 0")
	if err != nil {
		return fmt.Errorf("clearing default project: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("default project not set: %w", ErrNotFound)
	}
	return nil
}
