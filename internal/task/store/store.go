package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/task"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

const selectTaskColumns = `
	t.id, t.name, t.description, t.assignee_id, u.name, u.email, t.due_date, t.status, t.priority,
	t.is_recurring, rp.pattern, rp.repeat_interval, rp.end_condition, rp.occurrences, rp.end_date,
	t.parent_task_id, t.created_by, COALESCE(c.name, ''), t.created_at, t.updated_at
`

const fromTasks = `
	FROM tasks t
	LEFT JOIN users u ON t.assignee_id = u.id
	LEFT JOIN users c ON t.created_by = c.id
	LEFT JOIN recurring_patterns rp ON rp.task_id = t.id
`

// scanTask reads a row in selectTaskColumns order.
func scanTask(s scanner) (*task.Task, error) {
	var t task.Task

	var statusStr, priorityStr string

	var assigneeName, assigneeEmail sql.NullString

	var pattern, endCondition sql.NullString

	var interval, occurrences sql.NullInt64

	var endDate sql.NullTime

	if err := s.Scan(
		&t.ID, &t.Name, &t.Description, &t.AssigneeID, &assigneeName, &assigneeEmail,
		&t.DueDate, &statusStr, &priorityStr,
		&t.IsRecurring, &pattern, &interval, &endCondition, &occurrences, &endDate,
		&t.ParentTaskID, &t.CreatedByID, &t.CreatorName, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}

	t.Status = task.Status(statusStr)
	t.Priority = task.Priority(priorityStr)

	if t.AssigneeID != nil {
		t.Assignee = &task.Assignee{
			ID:    *t.AssigneeID,
			Name:  assigneeName.String,
			Email: assigneeEmail.String,
		}
	}

	if pattern.Valid {
		t.Recurrence = &task.RecurringPattern{
			Pattern:      pattern.String,
			Interval:     int(interval.Int64),
			EndCondition: endCondition.String,
		}

		if occurrences.Valid {
			t.Recurrence.Occurrences = new(int(occurrences.Int64))
		}

		if endDate.Valid {
			t.Recurrence.EndDate = &endDate.Time
		}
	}

	return &t, nil
}

func (s *Store) CreateTask(ctx context.Context, t *task.Task) error {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer dbTx.Rollback()

	query := `
		INSERT INTO tasks (name, description, assignee_id, due_date, status, priority, is_recurring, parent_task_id, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err = dbTx.QueryRowContext(ctx, query,
		t.Name,
		t.Description,
		t.AssigneeID,
		t.DueDate,
		t.Status,
		t.Priority,
		t.IsRecurring,
		t.ParentTaskID,
		t.CreatedByID,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return fmt.Errorf("creating task: %w", err)
	}

	if r := t.Recurrence; r != nil {
		patternQuery := `
			INSERT INTO recurring_patterns (task_id, pattern, repeat_interval, end_condition, occurrences, end_date)
			VALUES ($1, $2, $3, $4, $5, $6)
		`
		if _, err := dbTx.ExecContext(ctx, patternQuery, t.ID, r.Pattern, r.Interval, r.EndCondition, r.Occurrences, r.EndDate); err != nil {
			return fmt.Errorf("creating recurring pattern: %w", err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}

	return nil
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + fromTasks + ` WHERE t.id = $1`

	t, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, task.ErrNotFound
		}

		return nil, fmt.Errorf("getting task: %w", err)
	}

	return t, nil
}

func (s *Store) ListTasks(ctx context.Context, filter task.ListFilter) ([]*task.Task, error) {
	query := `SELECT ` + selectTaskColumns + fromTasks + ` WHERE 1 = 1`

	var args []any

	argIdx := 1

	if filter.Status != nil {
		query += fmt.Sprintf(" AND t.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	if filter.ExcludeStatus != nil {
		query += fmt.Sprintf(" AND t.status <> $%d", argIdx)

		args = append(args, *filter.ExcludeStatus)
		argIdx++
	}

	if filter.AssigneeID != nil {
		query += fmt.Sprintf(" AND t.assignee_id = $%d", argIdx)

		args = append(args, *filter.AssigneeID)
		argIdx++
	}

	if filter.DueFrom != nil {
		query += fmt.Sprintf(" AND t.due_date >= $%d", argIdx)

		args = append(args, *filter.DueFrom)
		argIdx++
	}

	if filter.DueTo != nil {
		query += fmt.Sprintf(" AND t.due_date <= $%d", argIdx)

		args = append(args, *filter.DueTo)
		argIdx++
	}

	query += " ORDER BY t.due_date ASC, t.created_at ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*task.Task

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}

		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	return tasks, nil
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, status task.Status) error {
	query := `
		UPDATE tasks
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	return s.exec(ctx, "updating status", query, status, id)
}

func (s *Store) UpdateAssignee(ctx context.Context, id uuid.UUID, assigneeID *uuid.UUID) error {
	query := `
		UPDATE tasks
		SET assignee_id = $1, updated_at = NOW()
		WHERE id = $2
	`

	return s.exec(ctx, "updating assignee", query, assigneeID, id)
}

// exec runs a single-row update and reports task.ErrNotFound when no row matched.
func (s *Store) exec(ctx context.Context, op, query string, args ...any) error {
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if n == 0 {
		return task.ErrNotFound
	}

	return nil
}
