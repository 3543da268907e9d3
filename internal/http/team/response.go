package team

import (
	"time"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/team"
)

type memberResponse struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	Name           string      `json:"name"`
	AvatarURL      string      `json:"avatarUrl,omitempty"`
	Status         team.Status `json:"status"`
	Roles          []string    `json:"roles"`
	Role           string      `json:"role"`
	ActiveTasks    int         `json:"activeTasks"`
	CompletedTasks int         `json:"completedTasks"`
	CreatedAt      time.Time   `json:"createdAt"`
}

func toResponse(u *team.User) memberResponse {
	roles := u.Roles
	if roles == nil {
		roles = []string{}
	}

	return memberResponse{
		ID:             u.ID,
		Email:          u.Email,
		Name:           u.Name,
		AvatarURL:      u.AvatarURL,
		Status:         u.Status,
		Roles:          roles,
		Role:           u.PrimaryRole(),
		ActiveTasks:    u.ActiveTasks,
		CompletedTasks: u.CompletedTasks,
		CreatedAt:      u.CreatedAt,
	}
}

func toResponseList(users []*team.User) []memberResponse {
	resp := make([]memberResponse, len(users))
	for i, u := range users {
		resp[i] = toResponse(u)
	}

	return resp
}
