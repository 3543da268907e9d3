package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/alert"
	"github.com/taka-daredemo/JICA/internal/report"
)

// AlertsModel lists the current alerts, most severe first.
type AlertsModel struct {
	CommonModel
	reports *report.Service

	summary *alert.Summary
	cursor  int

	loading bool
	err     error
}

func NewAlertsModel(reports *report.Service) AlertsModel {
	return AlertsModel{reports: reports, loading: true}
}

func (m AlertsModel) Title() string     { return "Alerts" }
func (m AlertsModel) ShortHelp() string { return "Esc: back | ↑/↓: move | r: refresh" }

func (m AlertsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m AlertsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case alertsLoadedMsg:
		m.loading = false
		m.summary, m.err = msg.summary, msg.err
		m.cursor = 0

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.summary != nil && m.cursor < len(m.summary.Alerts)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m AlertsModel) View() string {
	if m.loading {
		return loadingView("alerts")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	s := m.summary

	counts := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Total", fmt.Sprintf("%d", s.Count)),
		card("Critical", severityStyle(alert.SeverityCritical).Render(fmt.Sprintf("%d", s.CriticalCount))),
		card("Warning", severityStyle(alert.SeverityWarning).Render(fmt.Sprintf("%d", s.WarningCount))),
		card("Info", severityStyle(alert.SeverityInfo).Render(fmt.Sprintf("%d", s.InfoCount))),
	)

	var list strings.Builder

	if len(s.Alerts) == 0 {
		list.WriteString(lipgloss.NewStyle().Foreground(colorOK).Render("No alerts. Everything is on track."))
	}

	for i, a := range s.Alerts {
		cursor := "  "
		if i == m.cursor {
			cursor = activeStyle("> ")
		}

		badge := severityStyle(a.Severity).Width(10).Render(strings.ToUpper(string(a.Severity)))
		kind := lipgloss.NewStyle().Foreground(colorSubtle).Width(10).Render(string(a.Type))

		fmt.Fprintf(&list, "%s%s%s%s\n", cursor, badge, kind, lipgloss.NewStyle().Bold(true).Render(a.Title))
		fmt.Fprintf(&list, "%s%s\n", strings.Repeat(" ", 22), a.Message)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Alerts"),
		"",
		counts,
		"",
		list.String(),
	))
}

type alertsLoadedMsg struct {
	summary *alert.Summary
	err     error
}

func (m AlertsModel) loadCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		s, err := m.reports.Alerts(ctx)

		return alertsLoadedMsg{summary: s, err: err}
	}
}
