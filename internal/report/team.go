package report

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/task"
	"github.com/taka-daredemo/JICA/internal/team"
)

func (s *Service) TeamWorkload(ctx context.Context) (*metrics.WorkloadSummary, error) {
	users, err := s.r.Team.ActiveMembers(ctx)
	if err != nil {
		return nil, wrap("listing active members", err)
	}

	w := metrics.SummarizeWorkload(users, s.th)

	return &w, nil
}

type TeamCounts struct {
	TotalMembers    int `json:"totalMembers"`
	ActiveMembers   int `json:"activeMembers"`
	InactiveMembers int `json:"inactiveMembers"`
}

type TeamStats struct {
	Tasks    metrics.TaskSummary        `json:"tasks"`
	Team     TeamCounts                 `json:"team"`
	Workload metrics.WorkloadStatistics `json:"workload"`
}

// TeamStats summarises every task regardless of due date together with team
// size and workload distribution.
func (s *Service) TeamStats(ctx context.Context) (*TeamStats, error) {
	now := s.clock()

	var (
		tasks  []*task.Task
		counts team.Counts
		users  []*team.User
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		tasks, err = s.r.Tasks.List(ctx, task.ListFilter{})
		return wrap("listing tasks", err)
	})
	g.Go(func() (err error) {
		counts, err = s.r.Team.Count(ctx)
		return wrap("counting team", err)
	})
	g.Go(func() (err error) {
		users, err = s.r.Team.ActiveMembers(ctx)
		return wrap("listing active members", err)
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TeamStats{
		Tasks: metrics.SummarizeTasks(tasks, now, s.th),
		Team: TeamCounts{
			TotalMembers:    counts.Total,
			ActiveMembers:   counts.Active,
			InactiveMembers: counts.Total - counts.Active,
		},
		Workload: metrics.SummarizeWorkload(users, s.th).Statistics,
	}, nil
}
