package model

// Task is a unit of work within a project. Issue optionally links the task to
// an issue number in the project's tracker; Description is free-form.
// A task's lifecycle is bound to its project (delete cascades).
type Task struct {
	ID          int64   `json:"id" db:"id"`
	ProjectID   int64   `json:"project_id" db:"project_id"`
	Name        string  `json:"name" db:"name"`
	Issue       *int    `json:"issue,omitempty" db:"issue"`
	Description *string `json:"description,omitempty" db:"description"`
}
