package store_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/task/store"
)

var taskColumns = []string{
	"id", "name", "description", "assignee_id", "name", "email", "due_date", "status", "priority",
	"is_recurring", "pattern", "repeat_interval", "end_condition", "occurrences", "end_date",
	"parent_task_id", "created_by", "creator", "created_at", "updated_at",
}

func newStore(t *testing.T) (*store.Store, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return store.New(db), mock
}

func TestStore_ListTasks(t *testing.T) {
	s, mock := newStore(t)

	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	due := now.Add(-48 * time.Hour)
	taskID := uuid.New()
	assigneeID := uuid.New()

	rows := sqlmock.NewRows(taskColumns).
		AddRow(taskID.String(), "Seed distribution", "", assigneeID.String(), "Kenji", "kenji@example.org", due, "In Progress", "High",
			true, "weekly", 2, "after", 4, nil,
			nil, nil, "", now, now)

	mock.ExpectQuery(regexp.QuoteMeta("AND t.status <> $1 AND t.due_date <= $2 ORDER BY t.due_date ASC")).
		WithArgs(task.StatusCompleted, now).
		WillReturnRows(rows)

	got, err := s.ListTasks(context.Background(), task.ListFilter{
		ExcludeStatus: new(task.StatusCompleted),
		DueTo:         &now,
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	tk := got[0]
	assert.Equal(t, taskID, tk.ID)
	assert.Equal(t, task.StatusInProgress, tk.Status)
	assert.Equal(t, task.PriorityHigh, tk.Priority)
	require.NotNil(t, tk.Assignee)
	assert.Equal(t, "Kenji", tk.AssigneeName())
	require.NotNil(t, tk.Recurrence)
	assert.Equal(t, 2, tk.Recurrence.Interval)
	require.NotNil(t, tk.Recurrence.Occurrences)
	assert.Equal(t, 4, *tk.Recurrence.Occurrences)
	assert.Nil(t, tk.Recurrence.EndDate)
	assert.Nil(t, tk.ParentTaskID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetTask_NotFound(t *testing.T) {
	s, mock := newStore(t)
	id := uuid.New()

	mock.ExpectQuery(regexp.QuoteMeta("WHERE t.id = $1")).
		WithArgs(id).
		WillReturnError(sql.ErrNoRows)

	_, err := s.GetTask(context.Background(), id)
	assert.ErrorIs(t, err, task.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpdateStatus(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{name: "Updated", affected: 1},
		{name: "Missing", affected: 0, wantErr: task.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mock := newStore(t)
			id := uuid.New()

			mock.ExpectExec(regexp.QuoteMeta("UPDATE tasks")).
				WithArgs(task.StatusCompleted, id).
				WillReturnResult(sqlmock.NewResult(0, tt.affected))

			err := s.UpdateStatus(context.Background(), id, task.StatusCompleted)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStore_CreateTask_WithRecurrence(t *testing.T) {
	s, mock := newStore(t)

	now := time.Now()
	id := uuid.New()
	tk := &task.Task{
		Name:        "Monthly report",
		DueDate:     now,
		Status:      task.StatusNotStarted,
		Priority:    task.PriorityMedium,
		IsRecurring: true,
		Recurrence:  &task.RecurringPattern{Pattern: "monthly", Interval: 1, EndCondition: "never"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id.String(), now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recurring_patterns")).
		WithArgs(id, "monthly", 1, "never", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.CreateTask(context.Background(), tk))
	assert.Equal(t, id, tk.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
