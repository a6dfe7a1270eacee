package store

// migration holds a single schema migration with its target version and SQL.
type migration struct {
	version int
	sql     string
}

// migrations is the ordered list of schema migrations.
// Each migration's version must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS projects (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	url  TEXT NOT NULL,
	name TEXT UNIQUE
);

CREATE TABLE IF NOT EXISTS tasks (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	project_id  INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	name        TEXT NOT NULL,
	issue       INTEGER,
	description TEXT
);

CREATE TABLE IF NOT EXISTS log_entries (
	date             TEXT NOT NULL,
	task_id          INTEGER NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
	duration_minutes INTEGER NOT NULL,
	PRIMARY KEY (date, task_id)
);

CREATE TABLE IF NOT EXISTS default_project (
	id         INTEGER PRIMARY KEY CHECK(id = 0),
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS schedule_settings (
	project_id      INTEGER PRIMARY KEY REFERENCES projects(id) ON DELETE CASCADE,
	weekdays        INTEGER,
	workday_minutes INTEGER
);

CREATE TABLE IF NOT EXISTS schedule_logs (
	project_id INTEGER NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
	month      INTEGER NOT NULL,
	bitmap     INTEGER NOT NULL,
	PRIMARY KEY (project_id, month)
);

CREATE INDEX IF NOT EXISTS idx_tasks_project_id ON tasks(project_id);
CREATE INDEX IF NOT EXISTS idx_log_entries_task_id ON log_entries(task_id);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}
