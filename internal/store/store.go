package store

import (
	"context"
	"time"

	"github.com/Anfid/wlog/internal/model"
)

// TaskFilter controls filtering and pagination for task queries.
type TaskFilter struct {
	ProjectID *int64  // limit to one project, or nil (all)
	Issue     *int    // exact issue number, or nil (all)
	Query     *string // substring search over task names
	Limit     int
	Offset    int
}

// Period is an inclusive date range.
type Period struct {
	From time.Time
	To   time.Time
}

// Store defines the persistence interface for projects, tasks, work log
// entries, and per-project schedules.
//
// A missing record surfaces as ErrNotFound; a uniqueness, foreign-key, or
// singleton-cardinality breach surfaces as ErrConstraintViolation. Deletes of
// projects and tasks cascade to their dependents inside one transaction.
type Store interface {
	// === Projects ===

	CreateProject(ctx context.Context, project model.Project) (*model.Project, error)
	GetProjectByID(ctx context.Context, id int64) (*model.Project, error)
	GetProjects(ctx context.Context) ([]model.Project, error)
	UpdateProject(ctx context.Context, project model.Project) error
	DeleteProject(ctx context.Context, id int64) error

	// === Default project (singleton) ===

	SetDefaultProject(ctx context.Context, projectID int64) error
	GetDefaultProject(ctx context.Context) (*model.Project, error)
	ClearDefaultProject(ctx context.Context) error

	// === Tasks ===

	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	GetTaskByID(ctx context.Context, id int64) (*model.Task, error)
	GetTasks(ctx context.Context, filter TaskFilter) ([]model.Task, error)
	GetOrCreateTask(ctx context.Context, projectID int64, issue *int, name *string) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) error
	DeleteTask(ctx context.Context, id int64) error

	// === Log entries ===

	CreateLogEntry(ctx context.Context, entry model.LogEntry) error
	GetLogEntry(ctx context.Context, date time.Time, taskID int64) (*model.LogEntry, error)
	UpdateLogEntry(ctx context.Context, entry model.LogEntry) error
	DeleteLogEntry(ctx context.Context, date time.Time, taskID int64) error
	AddWork(ctx context.Context, entry model.LogEntry) error
	GetWorkByDay(ctx context.Context, projectID int64, period *Period) ([]model.TaskWork, error)
	GetWorkByTask(ctx context.Context, projectID int64, period *Period) ([]model.TaskWork, error)

	// === Schedule ===

	SetScheduleSettings(ctx context.Context, settings model.ScheduleSettings) error
	GetScheduleSettings(ctx context.Context, projectID int64) (*model.ScheduleSettings, error)
	DeleteScheduleSettings(ctx context.Context, projectID int64) error

	CreateScheduleLog(ctx context.Context, log model.ScheduleLog) error
	UpsertScheduleLog(ctx context.Context, log model.ScheduleLog) error
	GetScheduleLog(ctx context.Context, projectID int64, month int) (*model.ScheduleLog, error)
	DeleteScheduleLog(ctx context.Context, projectID int64, month int) error
}
