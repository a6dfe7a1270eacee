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

// CreateTask inserts a new task and returns it with its assigned ID. The
// referenced project must exist. A non-zero ID on the input is kept as-is.
func (s *SQLiteStore) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	if strings.TrimSpace(task.Name) == "" {
		return nil, fmt.Errorf("task name must not be empty")
	}

	if task.ID != 0 {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO tasks (id, project_id, name, issue, description)
			VALUES (?, ?, ?, ?, ?)`,
			task.ID, task.ProjectID, task.Name, task.Issue, task.Description,
		)
		if err != nil {
			return nil, fmt.Errorf("creating task: %w", constraintErr(err))
		}
		return &task, nil
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO tasks (project_id, name, issue, description)
		VALUES (?, ?, ?, ?)`,
		task.ProjectID, task.Name, task.Issue, task.Description,
	)
	if err != nil {
		return nil, fmt.Errorf("creating task: %w", constraintErr(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("reading new task id: %w", err)
	}
	task.ID = id
	return &task, nil
}

// GetTaskByID retrieves a single task by ID.
func (s *SQLiteStore) GetTaskByID(ctx context.Context, id int64) (*model.Task, error) {
	var task model.Task
	err := s.db.QueryRowxContext(ctx,
		"SELECT id, project_id, name, issue, description FROM tasks WHERE id = ?", id,
	).Scan(&task.ID, &task.ProjectID, &task.Name, &task.Issue, &task.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("task %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting task %d: %w", id, err)
	}
	return &task, nil
}

// GetTasks retrieves tasks matching the provided filter, ordered by ID.
func (s *SQLiteStore) GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	var conditions []string
	var args []interface{}

	if filter.ProjectID != nil {
		conditions = append(conditions, "project_id = ?")
		args = append(args, *filter.ProjectID)
	}
	if filter.Issue != nil {
		conditions = append(conditions, "issue = ?")
		args = append(args, *filter.Issue)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "name LIKE ?")
		args = append(args, "%"+*filter.Query+"%")
	}

	query := "SELECT id, project_id, name, issue, description FROM tasks"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY id"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.Name, &t.Issue, &t.Description); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// GetOrCreateTask finds a task in the project by issue number and/or name,
// creating it when nothing matches. With only a name given, tasks without an
// issue number are preferred. With only an issue number and no match, nothing
// can be created and ErrNotFound is returned.
func (s *SQLiteStore) GetOrCreateTask(
	ctx context.Context,
	projectID int64,
	issue *int,
	name *string,
) (*model.Task, error) {
	if issue == nil && name == nil {
		return nil, fmt.Errorf("task lookup needs an issue number or a name")
	}

	query := "SELECT id, project_id, name, issue, description FROM tasks WHERE project_id = ?"
	args := []interface{}{projectID}
	switch {
	case issue != nil && name != nil:
		query += " AND issue = ? AND name = ?"
		args = append(args, *issue, *name)
	case issue != nil:
		query += " AND issue = ? ORDER BY id"
		args = append(args, *issue)
	default:
		query += " AND name = ? ORDER BY (issue IS NULL) DESC, id"
		args = append(args, *name)
	}

	var task model.Task
	err := s.db.QueryRowxContext(ctx, query, args...).
		Scan(&task.ID, &task.ProjectID, &task.Name, &task.Issue, &task.Description)
	if err == nil {
		return &task, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("looking up task: %w", err)
	}

	if name == nil {
		return nil, fmt.Errorf("no task with issue %d in project %d: %w",
			*issue, projectID, ErrNotFound)
	}

	created, err := s.CreateTask(ctx, model.Task{
		ProjectID: projectID,
		Name:      *name,
		Issue:     issue,
	})
	if err != nil {
		return nil, err
	}
	s.log.Debug("created task on lookup miss",
		zap.Int64("id", created.ID),
		zap.Int64("project_id", projectID),
	)
	return created, nil
}

// UpdateTask replaces the mutable fields of an existing task.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task model.Task) error {
	if strings.TrimSpace(task.Name) == "" {
		return fmt.Errorf("task name must not be empty")
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE tasks SET project_id = ?, name = ?, issue = ?, description = ?
		WHERE id = ?`,
		task.ProjectID, task.Name, task.Issue, task.Description, task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task %d: %w", task.ID, constraintErr(err))
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", task.ID, ErrNotFound)
	}
	return nil
}

// DeleteTask removes a task and its log entries in one transaction.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, "DELETE FROM log_entries WHERE task_id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting log entries of task %d: %w", id, err)
	}
	entryCount, _ := res.RowsAffected()

	res, err = tx.ExecContext(ctx, "DELETE FROM tasks WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing task delete: %w", err)
	}

	s.log.Debug("deleted task", zap.Int64("id", id), zap.Int64("log_entries", entryCount))
	return nil
}
