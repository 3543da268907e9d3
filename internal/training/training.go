package training

import (
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/apperr"
)

var (
	ErrNotFound          = apperr.NotFound("training session not found")
	ErrFarmerNotFound    = apperr.NotFound("farmer not found")
	ErrSessionFull       = apperr.Validation("Training session is full")
	ErrAlreadyRegistered = apperr.Conflict("Farmer is already registered for this session")
)

type Status string

const (
	StatusUpcoming  Status = "Upcoming"
	StatusCompleted Status = "Completed"
	StatusCancelled Status = "Cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusUpcoming, StatusCompleted, StatusCancelled:
		return true
	}

	return false
}

// Training is a scheduled session farmers register for.
type Training struct {
	ID               uuid.UUID
	Topic            string
	Description      string
	Date             time.Time
	Location         string
	FacilitatorID    *uuid.UUID
	FacilitatorName  string // Loaded via JOIN
	FacilitatorEmail string // Loaded via JOIN
	Capacity         *int
	Status           Status
	RegisteredCount  int // Loaded via COUNT
	PresentCount     int // Loaded via COUNT
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsFull reports whether the session has no remaining seats. Sessions without
// a capacity never fill up.
func (t *Training) IsFull() bool {
	return t.Capacity != nil && t.RegisteredCount >= *t.Capacity
}

type AttendanceStatus string

const (
	AttendanceRegistered AttendanceStatus = "Registered"
	AttendancePresent    AttendanceStatus = "Present"
	AttendanceAbsent     AttendanceStatus = "Absent"
	AttendanceExcused    AttendanceStatus = "Excused"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendanceRegistered, AttendancePresent, AttendanceAbsent, AttendanceExcused:
		return true
	}

	return false
}

// Attendance links a farmer to a session. At most one row exists per pair.
type Attendance struct {
	SessionID  uuid.UUID
	FarmerID   uuid.UUID
	FarmerCode string // Loaded via JOIN
	FarmerName string // Loaded via JOIN
	Status     AttendanceStatus
	CreatedAt  time.Time
}
