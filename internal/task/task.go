package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var ErrNotFound = apperr.NotFound("task not found")

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
	StatusOverdue    Status = "Overdue"
)

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusCompleted, StatusOverdue:
		return true
	}

	return false
}

type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityCritical, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}

	return false
}

// Rank orders priorities from most to least urgent. Unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Task is a unit of project work.
type Task struct {
	ID           uuid.UUID
	Name         string
	Description  string
	AssigneeID   *uuid.UUID
	Assignee     *Assignee // Loaded via JOIN
	DueDate      time.Time
	Status       Status
	Priority     Priority
	IsRecurring  bool
	Recurrence   *RecurringPattern
	ParentTaskID *uuid.UUID
	CreatedByID  *uuid.UUID
	CreatorName  string // Loaded via JOIN
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AssigneeName returns the display name of the assignee or "Unassigned".
func (t *Task) AssigneeName() string {
	if t.Assignee == nil || t.Assignee.Name == "" {
		return "Unassigned"
	}

	return t.Assignee.Name
}

type Assignee struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type RecurringPattern struct {
	Pattern      string // daily, weekly, monthly
	Interval     int
	EndCondition string // never, after, on
	Occurrences  *int
	EndDate      *time.Time
}
