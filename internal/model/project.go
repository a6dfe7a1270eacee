package model

// Project is a tracked work project. Name is optional; when present it is
// unique across projects.
type Project struct {
	ID   int64   `json:"id" db:"id"`
	URL  string  `json:"url" db:"url"`
	Name *string `json:"name,omitempty" db:"name"`
}

// DefaultProject is the singleton row pointing at the project new work is
// attributed to. Its ID is always 0.
type DefaultProject struct {
	ID        int64 `json:"id" db:"id"`
	ProjectID int64 `json:"project_id" db:"project_id"`
}
