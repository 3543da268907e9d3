package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/report"
)

// DashboardModel shows this month's summary with a per-category budget chart.
type DashboardModel struct {
	CommonModel
	reports *report.Service
	loc     *time.Location

	dashboard *report.Dashboard
	overview  *report.BudgetOverview
	chart     barchart.Model

	loading bool
	err     error
}

func NewDashboardModel(reports *report.Service, loc *time.Location) DashboardModel {
	return DashboardModel{
		reports: reports,
		loc:     loc,
		chart:   barchart.New(60, 12),
		loading: true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.loading = false
		m.err = msg.err

		if msg.err == nil {
			m.dashboard, m.overview = msg.dashboard, msg.overview
			m.drawChart()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.drawChart()

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m *DashboardModel) drawChart() {
	if m.overview == nil {
		return
	}

	width := max(m.Width-8, 40)
	m.chart = barchart.New(width, 12)

	spentStyle := lipgloss.NewStyle().Foreground(colorWarning)
	remainingStyle := lipgloss.NewStyle().Foreground(colorOK)

	bars := make([]barchart.BarData, 0, len(m.overview.Categories))
	for _, c := range m.overview.Categories {
		bars = append(bars, barchart.BarData{
			Label: truncate(c.Name, 8),
			Values: []barchart.BarValue{
				{Name: "Spent", Value: c.Spent.InexactFloat64(), Style: spentStyle},
				{Name: "Remaining", Value: max(c.Remaining.InexactFloat64(), 0), Style: remainingStyle},
			},
		})
	}

	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m DashboardModel) View() string {
	if m.loading {
		return loadingView("dashboard")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	d := m.dashboard

	tasks := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Tasks this month", fmt.Sprintf("%d", d.Tasks.Total)),
		card("Completed", fmt.Sprintf("%d (%s)", d.Tasks.Completed, FormatPercent(d.Tasks.CompletionRate))),
		card("Overdue", lipgloss.NewStyle().Foreground(colorCritical).Render(fmt.Sprintf("%d", d.Tasks.Overdue))),
		card("Due this week", fmt.Sprintf("%d", d.Tasks.DueThisWeek)),
	)

	budget := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Budget", FormatAmount(d.Budget.TotalBudget)),
		card("Spent", FormatAmount(d.Budget.Spent)),
		card("Remaining", FormatAmount(d.Budget.Remaining)),
		card("Execution", FormatPercent(d.Budget.ExecutionRate)),
	)

	people := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Team", fmt.Sprintf("%d active / %d", d.Team.Active, d.Team.Total)),
		card("Farmers", fmt.Sprintf("%d (Y1 %d, Y2 %d, Y3 %d)", d.Farmers.Total, d.Farmers.Year1, d.Farmers.Year2, d.Farmers.Year3)),
		card("Next month", fmt.Sprintf("%d tasks, %d trainings", d.NextMonth.Tasks, d.NextMonth.Trainings)),
	)

	var top strings.Builder
	for _, t := range d.Tasks.ThisMonthTasks {
		assignee := "Unassigned"
		if t.Assignee != nil {
			assignee = t.Assignee.Name
		}

		fmt.Fprintf(&top, "  %s  %-8s %-30s %s\n", FormatDate(t.DueDate), t.Priority, truncate(t.Name, 30), assignee)
	}

	sections := []string{
		titleStyle.Render("Project Dashboard"),
		"",
		tasks,
		budget,
		people,
		"",
		titleStyle.Render("Budget by category") + lipgloss.NewStyle().Foreground(colorSubtle).Render("  (spent / remaining)"),
		m.chart.View(),
	}

	if top.Len() > 0 {
		sections = append(sections, "", titleStyle.Render("This month's priorities"), top.String())
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

type dashboardLoadedMsg struct {
	dashboard *report.Dashboard
	overview  *report.BudgetOverview
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.reports.Dashboard(ctx)
		if err != nil {
			return dashboardLoadedMsg{err: err}
		}

		fy := time.Now().In(m.loc).Year()

		o, err := m.reports.BudgetOverview(ctx, report.OverviewFilter{FiscalYear: &fy})

		return dashboardLoadedMsg{dashboard: d, overview: o, err: err}
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
