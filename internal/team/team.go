package team

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// User is a project team member.
type User struct {
	ID             uuid.UUID
	Email          string
	Name           string
	AvatarURL      string
	Status         Status
	Roles          []string // Loaded via JOIN
	ActiveTasks    int      // Loaded via COUNT, status <> Completed
	CompletedTasks int      // Loaded via COUNT
	CreatedAt      time.Time
}

// PrimaryRole returns the first role name, or "" for users without roles.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}

	return u.Roles[0]
}

type Counts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}
