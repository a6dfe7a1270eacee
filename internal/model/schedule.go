package model

// ScheduleSettings holds a project's weekly work schedule. Weekdays is an
// opaque bitmask interpreted by the schedule package; WorkdayMinutes is the
// nominal workday length. Both are optional. One row per project.
type ScheduleSettings struct {
	ProjectID      int64 `json:"project_id" db:"project_id"`
	Weekdays       *int  `json:"weekdays,omitempty" db:"weekdays"`
	WorkdayMinutes *int  `json:"workday_minutes,omitempty" db:"workday_minutes"`
}

// ScheduleLog is a project's recorded schedule for one calendar month.
// Month is encoded as year*12 + month; Bitmap is an opaque per-day bitmask
// interpreted by the schedule package.
type ScheduleLog struct {
	ProjectID int64  `json:"project_id" db:"project_id"`
	Month     int    `json:"month" db:"month"`
	Bitmap    uint32 `json:"bitmap" db:"bitmap"`
}
