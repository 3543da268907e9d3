package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
	"github.com/taka-daredemo/JICA/internal/training"
)

type sessionResponse struct {
	ID              uuid.UUID            `json:"id"`
	Topic           string               `json:"topic"`
	Description     string               `json:"description,omitempty"`
	Date            time.Time            `json:"date"`
	Location        string               `json:"location,omitempty"`
	FacilitatorID   *uuid.UUID           `json:"facilitatorId"`
	Facilitator     *facilitatorResponse `json:"facilitator"`
	Capacity        *int                 `json:"capacity"`
	Status          training.Status      `json:"status"`
	RegisteredCount int                  `json:"registeredCount"`
	PresentCount    int                  `json:"presentCount"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

type facilitatorResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

type attendanceResponse struct {
	SessionID  uuid.UUID                 `json:"sessionId"`
	FarmerID   uuid.UUID                 `json:"farmerId"`
	FarmerCode string                    `json:"farmerCode,omitempty"`
	FarmerName string                    `json:"farmerName,omitempty"`
	Status     training.AttendanceStatus `json:"status"`
	CreatedAt  time.Time                 `json:"createdAt"`
}

type sessionAttendanceResponse struct {
	Session    sessionResponse           `json:"session"`
	Attendance []attendanceResponse      `json:"attendance"`
	Statistics metrics.AttendanceSummary `json:"statistics"`
}

func toResponse(t *training.Training) sessionResponse {
	resp := sessionResponse{
		ID:              t.ID,
		Topic:           t.Topic,
		Description:     t.Description,
		Date:            t.Date,
		Location:        t.Location,
		FacilitatorID:   t.FacilitatorID,
		Capacity:        t.Capacity,
		Status:          t.Status,
		RegisteredCount: t.RegisteredCount,
		PresentCount:    t.PresentCount,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}

	if t.FacilitatorID != nil && t.FacilitatorName != "" {
		resp.Facilitator = &facilitatorResponse{
			ID:    *t.FacilitatorID,
			Name:  t.FacilitatorName,
			Email: t.FacilitatorEmail,
		}
	}

	return resp
}

func toResponseList(ts []*training.Training) []sessionResponse {
	resp := make([]sessionResponse, len(ts))
	for i, t := range ts {
		resp[i] = toResponse(t)
	}

	return resp
}

func toAttendanceResponse(a *training.Attendance) attendanceResponse {
	return attendanceResponse{
		SessionID:  a.SessionID,
		FarmerID:   a.FarmerID,
		FarmerCode: a.FarmerCode,
		FarmerName: a.FarmerName,
		Status:     a.Status,
		CreatedAt:  a.CreatedAt,
	}
}

func toSessionAttendanceResponse(sa *report.SessionAttendance) sessionAttendanceResponse {
	rows := make([]attendanceResponse, len(sa.Rows))
	for i, a := range sa.Rows {
		rows[i] = toAttendanceResponse(a)
	}

	return sessionAttendanceResponse{
		Session:    toResponse(sa.Session),
		Attendance: rows,
		Statistics: sa.Statistics,
	}
}
