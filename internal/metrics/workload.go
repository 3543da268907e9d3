package metrics

import (
	"slices"

	"github.com/google/uuid"

	"github.com/taka-daredemo/JICA/internal/team"
)

type WorkloadLevel string

const (
	WorkloadOverloaded WorkloadLevel = "Overloaded"
	WorkloadHigh       WorkloadLevel = "High"
	WorkloadNormal     WorkloadLevel = "Normal"
	WorkloadLow        WorkloadLevel = "Low"
)

const noRole = "No Role"

// ClassifyWorkload maps an active task count onto a tier. The first matching
// tier wins.
func ClassifyWorkload(active int, th Thresholds) WorkloadLevel {
	switch {
	case active > th.OverloadedAbove:
		return WorkloadOverloaded
	case active >= th.HighFrom:
		return WorkloadHigh
	case active >= th.NormalFrom:
		return WorkloadNormal
	default:
		return WorkloadLow
	}
}

type MemberWorkload struct {
	UserID         uuid.UUID     `json:"userId"`
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	AvatarURL      string        `json:"avatarUrl,omitempty"`
	Role           string        `json:"role"`
	ActiveTasks    int           `json:"activeTasks"`
	CompletedTasks int           `json:"completedTasks"`
	TotalTasks     int           `json:"totalTasks"`
	Workload       WorkloadLevel `json:"workload"`
}

type WorkloadStatistics struct {
	TotalMembers      int            `json:"totalMembers"`
	TotalActiveTasks  int            `json:"totalActiveTasks"`
	AvgWorkload       float64        `json:"avgWorkload"`
	OverloadedCount   int            `json:"overloadedCount"`
	HighWorkloadCount int            `json:"highWorkloadCount"`
	NormalCount       int            `json:"normalCount"`
	LowCount          int            `json:"lowCount"`
	RoleDistribution  map[string]int `json:"roleDistribution"`
}

type WorkloadSummary struct {
	Members    []MemberWorkload   `json:"members"`
	Statistics WorkloadStatistics `json:"statistics"`
}

// SummarizeWorkload classifies every user and orders members by active task
// count, busiest first. Equal counts keep the input order.
func SummarizeWorkload(users []*team.User, th Thresholds) WorkloadSummary {
	members := make([]MemberWorkload, 0, len(users))
	stats := WorkloadStatistics{
		TotalMembers:     len(users),
		RoleDistribution: make(map[string]int),
	}

	for _, u := range users {
		role := u.PrimaryRole()
		if role == "" {
			role = noRole
		}

		level := ClassifyWorkload(u.ActiveTasks, th)

		members = append(members, MemberWorkload{
			UserID:         u.ID,
			Name:           u.Name,
			Email:          u.Email,
			AvatarURL:      u.AvatarURL,
			Role:           role,
			ActiveTasks:    u.ActiveTasks,
			CompletedTasks: u.CompletedTasks,
			TotalTasks:     u.ActiveTasks + u.CompletedTasks,
			Workload:       level,
		})

		stats.TotalActiveTasks += u.ActiveTasks
		stats.RoleDistribution[role]++

		switch level {
		case WorkloadOverloaded:
			stats.OverloadedCount++
		case WorkloadHigh:
			stats.HighWorkloadCount++
		case WorkloadNormal:
			stats.NormalCount++
		case WorkloadLow:
			stats.LowCount++
		}
	}

	if stats.TotalMembers > 0 {
		stats.AvgWorkload = Round1(float64(stats.TotalActiveTasks) / float64(stats.TotalMembers))
	}

	slices.SortStableFunc(members, func(a, b MemberWorkload) int {
		return b.ActiveTasks - a.ActiveTasks
	})

	return WorkloadSummary{Members: members, Statistics: stats}
}
