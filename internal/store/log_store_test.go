package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anfid/wlog/internal/model"
	"github.com/Anfid/wlog/internal/store"
	"github.com/Anfid/wlog/tests/testutil"
)

// seedTask creates a project with one task and returns both IDs.
func seedTask(t *testing.T, s *store.SQLiteStore, name string) (projectID, taskID int64) {
	t.Helper()
	ctx := context.Background()

	p, err := s.CreateProject(context.Background(), model.Project{URL: "https://example.com"})
	require.NoError(t, err)
	task, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Name: name})
	require.NoError(t, err)
	return p.ID, task.ID
}

func TestCreateLogEntryDuplicate(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, taskID := seedTask(t, s, "Write report")

	entry := model.LogEntry{Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 90}
	require.NoError(t, s.CreateLogEntry(ctx, entry))
	require.ErrorIs(t, s.CreateLogEntry(ctx, entry), store.ErrConstraintViolation)
}

func TestCreateLogEntryMissingTask(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.CreateLogEntry(context.Background(), model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: 42, DurationMinutes: 90,
	})
	require.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestGetLogEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, taskID := seedTask(t, s, "Write report")

	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 90,
	}))

	got, err := s.GetLogEntry(ctx, date(2024, time.January, 5), taskID)
	require.NoError(t, err)
	assert.Equal(t, 90, got.DurationMinutes)
	assert.Equal(t, date(2024, time.January, 5), got.Date)
	assert.Equal(t, 90*time.Minute, got.Duration())

	_, err = s.GetLogEntry(ctx, date(2024, time.January, 6), taskID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpdateLogEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, taskID := seedTask(t, s, "Write report")

	entry := model.LogEntry{Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 90}
	require.NoError(t, s.CreateLogEntry(ctx, entry))

	entry.DurationMinutes = 45
	require.NoError(t, s.UpdateLogEntry(ctx, entry))

	got, err := s.GetLogEntry(ctx, entry.Date, taskID)
	require.NoError(t, err)
	assert.Equal(t, 45, got.DurationMinutes)

	entry.Date = date(2024, time.January, 6)
	require.ErrorIs(t, s.UpdateLogEntry(ctx, entry), store.ErrNotFound)
}

func TestDeleteLogEntry(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, taskID := seedTask(t, s, "Write report")

	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 90,
	}))

	require.NoError(t, s.DeleteLogEntry(ctx, date(2024, time.January, 5), taskID))
	require.ErrorIs(t, s.DeleteLogEntry(ctx, date(2024, time.January, 5), taskID), store.ErrNotFound)
}

func TestAddWorkAccumulates(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()
	_, taskID := seedTask(t, s, "Write report")

	require.NoError(t, s.AddWork(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 90,
	}))
	require.NoError(t, s.AddWork(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: taskID, DurationMinutes: 30,
	}))

	got, err := s.GetLogEntry(ctx, date(2024, time.January, 5), taskID)
	require.NoError(t, err)
	assert.Equal(t, 120, got.DurationMinutes)
}

func TestAddWorkMissingTask(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.AddWork(context.Background(), model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: 42, DurationMinutes: 15,
	})
	require.ErrorIs(t, err, store.ErrConstraintViolation)
}

func TestGetWorkByDay(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, model.Project{URL: "https://example.com"})
	require.NoError(t, err)
	report, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Name: "Write report", Issue: intp(7)})
	require.NoError(t, err)
	review, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Name: "Review"})
	require.NoError(t, err)

	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 8), TaskID: review.ID, DurationMinutes: 30,
	}))
	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: report.ID, DurationMinutes: 90,
	}))
	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.February, 1), TaskID: report.ID, DurationMinutes: 60,
	}))

	work, err := s.GetWorkByDay(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, work, 3)
	assert.Equal(t, date(2024, time.January, 5), work[0].Date)
	assert.Equal(t, "Write report", work[0].TaskName)
	require.NotNil(t, work[0].Issue)
	assert.Equal(t, 7, *work[0].Issue)
	assert.Equal(t, date(2024, time.January, 8), work[1].Date)
	assert.Equal(t, date(2024, time.February, 1), work[2].Date)

	january := &store.Period{From: date(2024, time.January, 1), To: date(2024, time.January, 31)}
	work, err = s.GetWorkByDay(ctx, p.ID, january)
	require.NoError(t, err)
	assert.Len(t, work, 2)
}

func TestGetWorkByTaskSums(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	p, err := s.CreateProject(ctx, model.Project{URL: "https://example.com"})
	require.NoError(t, err)
	report, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Name: "Write report"})
	require.NoError(t, err)
	review, err := s.CreateTask(ctx, model.Task{ProjectID: p.ID, Name: "Review"})
	require.NoError(t, err)

	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: report.ID, DurationMinutes: 90,
	}))
	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 8), TaskID: report.ID, DurationMinutes: 30,
	}))
	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 9), TaskID: review.ID, DurationMinutes: 45,
	}))

	work, err := s.GetWorkByTask(ctx, p.ID, nil)
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, report.ID, work[0].TaskID)
	assert.Equal(t, 120, work[0].DurationMinutes)
	assert.Equal(t, 2*time.Hour, work[0].Duration())
	assert.Equal(t, review.ID, work[1].TaskID)
	assert.Equal(t, 45, work[1].DurationMinutes)
}

func TestGetWorkScopedToProject(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	_, mine := seedTask(t, s, "Mine")
	other, theirs := seedTask(t, s, "Theirs")

	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: mine, DurationMinutes: 90,
	}))
	require.NoError(t, s.CreateLogEntry(ctx, model.LogEntry{
		Date: date(2024, time.January, 5), TaskID: theirs, DurationMinutes: 10,
	}))

	work, err := s.GetWorkByDay(ctx, other, nil)
	require.NoError(t, err)
	require.Len(t, work, 1)
	assert.Equal(t, theirs, work[0].TaskID)
}
