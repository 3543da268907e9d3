package metrics

import (
	"time"

	"github.com/taka-daredemo/JICA/internal/task"
)

type TaskSummary struct {
	Total          int     `json:"total"`
	Completed      int     `json:"completed"`
	InProgress     int     `json:"inProgress"`
	NotStarted     int     `json:"notStarted"`
	Overdue        int     `json:"overdue"`
	DueToday       int     `json:"dueToday"`
	DueThisWeek    int     `json:"dueThisWeek"`
	CompletionRate float64 `json:"completionRate"`
}

// IsOverdue is the derived overdue check: not completed and past due. The
// stored Overdue status is not consulted.
func IsOverdue(t *task.Task, now time.Time) bool {
	return t.Status != task.StatusCompleted && t.DueDate.Before(now)
}

func IsDueToday(t *task.Task, now time.Time) bool {
	return IsDueWithin(t, now, 0)
}

// IsDueWithin reports whether an open task falls due between the start of
// today and the end of the day `days` days from now.
func IsDueWithin(t *task.Task, now time.Time, days int) bool {
	if t.Status == task.StatusCompleted {
		return false
	}

	from := StartOfDay(now)
	to := EndOfDay(now.AddDate(0, 0, days))

	return !t.DueDate.Before(from) && !t.DueDate.After(to)
}

// SummarizeTasks counts tasks by status and due window. CompletionRate is
// rounded to one decimal.
func SummarizeTasks(tasks []*task.Task, now time.Time, th Thresholds) TaskSummary {
	s := TaskSummary{Total: len(tasks)}

	for _, t := range tasks {
		switch t.Status {
		case task.StatusCompleted:
			s.Completed++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusNotStarted:
			s.NotStarted++
		}

		if IsOverdue(t, now) {
			s.Overdue++
		}

		if IsDueToday(t, now) {
			s.DueToday++
		}

		if IsDueWithin(t, now, th.DueSoonDays) {
			s.DueThisWeek++
		}
	}

	s.CompletionRate = Round1(Percent(s.Completed, s.Total))

	return s
}
