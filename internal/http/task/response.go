package task

import (
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/task"
)

type taskResponse struct {
	ID               uuid.UUID           `json:"id"`
	Name             string              `json:"name"`
	Description      string              `json:"description,omitempty"`
	AssigneeID       *uuid.UUID          `json:"assigneeId"`
	Assignee         *assigneeResponse   `json:"assignee"`
	DueDate          time.Time           `json:"dueDate"`
	Status           task.Status         `json:"status"`
	Priority         task.Priority       `json:"priority"`
	IsRecurring      bool                `json:"isRecurring"`
	RecurringPattern *recurrenceResponse `json:"recurringPattern,omitempty"`
	ParentTaskID     *uuid.UUID          `json:"parentTaskId,omitempty"`
	CreatedByID      *uuid.UUID          `json:"createdById,omitempty"`
	CreatorName      string              `json:"creatorName,omitempty"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type assigneeResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type recurrenceResponse struct {
	Pattern      string     `json:"pattern"`
	Interval     int        `json:"interval"`
	EndCondition string     `json:"endCondition"`
	Occurrences  *int       `json:"occurrences,omitempty"`
	EndDate      *time.Time `json:"endDate,omitempty"`
}

func toResponse(t *task.Task) taskResponse {
	resp := taskResponse{
		ID:           t.ID,
		Name:         t.Name,
		Description:  t.Description,
		AssigneeID:   t.AssigneeID,
		DueDate:      t.DueDate,
		Status:       t.Status,
		Priority:     t.Priority,
		IsRecurring:  t.IsRecurring,
		ParentTaskID: t.ParentTaskID,
		CreatedByID:  t.CreatedByID,
		CreatorName:  t.CreatorName,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}

	if t.Assignee != nil {
		resp.Assignee = &assigneeResponse{
			ID:    t.Assignee.ID,
			Name:  t.Assignee.Name,
			Email: t.Assignee.Email,
		}
	}

	if t.Recurrence != nil {
		resp.RecurringPattern = &recurrenceResponse{
			Pattern:      t.Recurrence.Pattern,
			Interval:     t.Recurrence.Interval,
			EndCondition: t.Recurrence.EndCondition,
			Occurrences:  t.Recurrence.Occurrences,
			EndDate:      t.Recurrence.EndDate,
		}
	}

	return resp
}

func toResponseList(tasks []*task.Task) []taskResponse {
	resp := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		resp[i] = toResponse(t)
	}

	return resp
}
