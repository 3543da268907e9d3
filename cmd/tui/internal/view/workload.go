package view

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/metrics"
	"github.com/taka-daredemo/JICA/internal/report"
)

// WorkloadModel shows active task counts per team member.
type WorkloadModel struct {
	CommonModel
	reports *report.Service

	summary *metrics.WorkloadSummary
	table   table.Model
	chart   barchart.Model

	loading bool
	err     error
}

func NewWorkloadModel(reports *report.Service) WorkloadModel {
	columns := []table.Column{
		{Title: "Name", Width: 20},
		{Title: "Role", Width: 16},
		{Title: "Active", Width: 8},
		{Title: "Completed", Width: 10},
		{Title: "Workload", Width: 12},
	}

	return WorkloadModel{
		reports: reports,
		table:   newTable(columns, 10),
		chart:   barchart.New(60, 10),
		loading: true,
	}
}

func (m WorkloadModel) Title() string     { return "Team Workload" }
func (m WorkloadModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m WorkloadModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m WorkloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case workloadLoadedMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err

		if m.err == nil {
			m.refresh()
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.refresh()

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

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func workloadColor(l metrics.WorkloadLevel) lipgloss.Color {
	switch l {
	case metrics.WorkloadOverloaded:
		return colorCritical
	case metrics.WorkloadHigh:
		return colorWarning
	case metrics.WorkloadNormal:
		return colorOK
	default:
		return colorInfo
	}
}

func (m *WorkloadModel) refresh() {
	if m.summary == nil {
		return
	}

	rows := make([]table.Row, 0, len(m.summary.Members))
	bars := make([]barchart.BarData, 0, len(m.summary.Members))

	for _, mw := range m.summary.Members {
		rows = append(rows, table.Row{
			mw.Name,
			mw.Role,
			fmt.Sprintf("%d", mw.ActiveTasks),
			fmt.Sprintf("%d", mw.CompletedTasks),
			string(mw.Workload),
		})

		bars = append(bars, barchart.BarData{
			Label: truncate(mw.Name, 8),
			Values: []barchart.BarValue{{
				Name:  mw.Name,
				Value: float64(mw.ActiveTasks),
				Style: lipgloss.NewStyle().Foreground(workloadColor(mw.Workload)),
			}},
		})
	}

	m.table.SetRows(rows)

	m.chart = barchart.New(max(m.Width-8, 40), 10)
	m.chart.PushAll(bars)
	m.chart.Draw()
}

func (m WorkloadModel) View() string {
	if m.loading {
		return loadingView("workload")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	st := m.summary.Statistics

	stats := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Members", fmt.Sprintf("%d", st.TotalMembers)),
		card("Active tasks", fmt.Sprintf("%d", st.TotalActiveTasks)),
		card("Average", fmt.Sprintf("%.1f", st.AvgWorkload)),
		card("Overloaded", lipgloss.NewStyle().Foreground(colorCritical).Render(fmt.Sprintf("%d", st.OverloadedCount))),
		card("High", fmt.Sprintf("%d", st.HighWorkloadCount)),
		card("Low", fmt.Sprintf("%d", st.LowCount)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		Render(m.table.View())

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Team Workload"),
		"",
		stats,
		"",
		tableView,
		"",
		m.chart.View(),
	))
}

type workloadLoadedMsg struct {
	summary *metrics.WorkloadSummary
	err     error
}

func (m WorkloadModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.reports.TeamWorkload(ctx)

		return workloadLoadedMsg{summary: s, err: err}
	}
}
