package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/taka-daredemo/JICA/internal/alert"
)

const dbTimeout = 5 * time.Second

var (
	colorAccent   = lipgloss.Color("205")
	colorSubtle   = lipgloss.Color("240")
	colorCritical = lipgloss.Color("196")
	colorWarning  = lipgloss.Color("214")
	colorInfo     = lipgloss.Color("39")
	colorOK       = lipgloss.Color("46")
	colorSelected = lipgloss.Color("57")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	cardStyle  = lipgloss.NewStyle().
			Padding(0, 2).
			MarginRight(1).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(colorSubtle)
)

type CommonModel struct {
	Width  int
	Height int
}

type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// DbCtx returns a context with a standard timeout for database operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

// FormatAmount renders a yen amount with thousands separators and no minor
// units.
func FormatAmount(d decimal.Decimal) string {
	s := d.Round(0).Abs().StringFixed(0)

	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}

		b.WriteRune(r)
	}

	if d.Round(0).IsNegative() {
		return "-¥" + b.String()
	}

	return "¥" + b.String()
}

func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

func FormatPercent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(colorAccent).Render(s)
}

func severityStyle(s alert.Severity) lipgloss.Style {
	switch s {
	case alert.SeverityCritical:
		return lipgloss.NewStyle().Bold(true).Foreground(colorCritical)
	case alert.SeverityWarning:
		return lipgloss.NewStyle().Foreground(colorWarning)
	default:
		return lipgloss.NewStyle().Foreground(colorInfo)
	}
}

func errorView(err error) string {
	return lipgloss.NewStyle().Padding(2).Render(
		lipgloss.NewStyle().Foreground(colorCritical).Render(fmt.Sprintf("Error: %v", err)),
	)
}

func loadingView(what string) string {
	return lipgloss.NewStyle().Padding(2).Render("Loading " + what + "...")
}

func card(title, value string) string {
	return cardStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().Foreground(colorSubtle).Render(title),
			lipgloss.NewStyle().Bold(true).Render(value),
		),
	)
}

func newTable(columns []table.Column, height int) table.Model {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(colorSelected).
		Bold(false)

	return table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(height),
		table.WithStyles(s),
	)
}
