package metrics

import (
	"github.com/taka-daredemo/JICA/internal/training"
)

type AttendanceSummary struct {
	RegisteredCount int     `json:"registeredCount"`
	PresentCount    int     `json:"presentCount"`
	AbsentCount     int     `json:"absentCount"`
	ExcusedCount    int     `json:"excusedCount"`
	AttendanceRate  float64 `json:"attendanceRate"`
}

// SessionAttendanceRate measures hall utilisation: present/capacity*100. It is
// 0 for sessions without a capacity or without registrations.
func SessionAttendanceRate(capacity *int, registered, present int) float64 {
	if capacity == nil || *capacity <= 0 || registered == 0 {
		return 0
	}

	return Round1(Percent(present, *capacity))
}

func SummarizeAttendance(t *training.Training, rows []*training.Attendance) AttendanceSummary {
	s := AttendanceSummary{RegisteredCount: len(rows)}

	for _, r := range rows {
		switch r.Status {
		case training.AttendancePresent:
			s.PresentCount++
		case training.AttendanceAbsent:
			s.AbsentCount++
		case training.AttendanceExcused:
			s.ExcusedCount++
		}
	}

	s.AttendanceRate = SessionAttendanceRate(t.Capacity, s.RegisteredCount, s.PresentCount)

	return s
}

// AverageAttendanceRate is the mean of the per-session rates, rounded to one
// decimal. Only completed sessions with a capacity have a rate; the rest are
// left out of the mean.
func AverageAttendanceRate(sessions []*training.Training) float64 {
	var (
		sum float64
		n   int
	)

	for _, t := range sessions {
		if t.Status != training.StatusCompleted || t.Capacity == nil || *t.Capacity <= 0 {
			continue
		}

		sum += SessionAttendanceRate(t.Capacity, t.RegisteredCount, t.PresentCount)
		n++
	}

	if n == 0 {
		return 0
	}

	return Round1(sum / float64(n))
}
