package view

import (
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/metrics"
)

// Timeframe is a predefined or custom date range selection.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = iota
	TimeframeLastMonth
	TimeframeNextMonth
	TimeframeThisQuarter
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

var timeframeLabels = [...]string{
	TimeframeThisMonth:   "This Month",
	TimeframeLastMonth:   "Last Month",
	TimeframeNextMonth:   "Next Month",
	TimeframeThisQuarter: "This Quarter",
	TimeframeThisYear:    "This Year",
	TimeframeAll:         "All Time",
	TimeframeCustom:      "Custom Range",
}

func (t Timeframe) String() string {
	if t < 0 || int(t) >= len(timeframeLabels) {
		return "Unknown"
	}

	return timeframeLabels[t]
}

// Range returns inclusive bounds for the predefined timeframes relative to
// now. TimeframeAll and TimeframeCustom yield zero times.
func (t Timeframe) Range(now time.Time) (time.Time, time.Time) {
	month := metrics.StartOfMonth(now)

	var start time.Time

	months := 1

	switch t {
	case TimeframeThisMonth:
		start = month
	case TimeframeLastMonth:
		start = month.AddDate(0, -1, 0)
	case TimeframeNextMonth:
		start = month.AddDate(0, 1, 0)
	case TimeframeThisQuarter:
		start, months = month.AddDate(0, -(int(now.Month()-1)%3), 0), 3
	case TimeframeThisYear:
		start, months = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), 12
	default:
		return time.Time{}, time.Time{}
	}

	return start, start.AddDate(0, months, 0).Add(-time.Nanosecond)
}

// TimeframeSelectedMsg is emitted once a valid range is chosen. Start and End
// are zero when All is set.
type TimeframeSelectedMsg struct {
	Start time.Time
	End   time.Time
	All   bool
}

func selected(start, end time.Time, all bool) tea.Cmd {
	return func() tea.Msg {
		return TimeframeSelectedMsg{Start: start, End: end, All: all}
	}
}

// TimeframePicker lists the predefined ranges and falls back to two date
// inputs for a custom range. Dates are read in loc.
type TimeframePicker struct {
	loc    *time.Location
	cursor Timeframe
	custom bool

	inputs [2]textinput.Model
	focus  int

	err error
}

func NewTimeframePicker(loc *time.Location) TimeframePicker {
	p := TimeframePicker{loc: loc}

	for i, prompt := range []string{"From: ", "To:   "} {
		in := textinput.New()
		in.Prompt = prompt
		in.Placeholder = time.DateOnly
		in.CharLimit = len(time.DateOnly)
		in.Width = len(time.DateOnly) + 2
		p.inputs[i] = in
	}

	return p
}

func (m TimeframePicker) Init() tea.Cmd {
	return nil
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)

	if !m.custom {
		if isKey {
			return m.updateList(keyMsg)
		}

		return m, nil
	}

	if isKey {
		switch keyMsg.String() {
		case "esc":
			m.custom, m.err = false, nil
			return m, nil
		case "tab", "shift+tab":
			cmd := m.focusInput(1 - m.focus)
			return m, cmd
		case "enter":
			start, end, err := m.customRange()
			if err != nil {
				m.err = err
				return m, nil
			}

			m.err = nil

			return m, selected(start, end, false)
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)

	return m, cmd
}

func (m TimeframePicker) updateList(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.cursor = max(m.cursor-1, TimeframeThisMonth)
	case "down", "j":
		m.cursor = min(m.cursor+1, TimeframeCustom)
	case "enter":
		switch m.cursor {
		case TimeframeCustom:
			m.custom = true
			cmd := m.focusInput(0)

			return m, cmd
		case TimeframeAll:
			return m, selected(time.Time{}, time.Time{}, true)
		}

		start, end := m.cursor.Range(time.Now().In(m.loc))

		return m, selected(start, end, false)
	}

	return m, nil
}

func (m *TimeframePicker) focusInput(i int) tea.Cmd {
	m.focus = i

	for j := range m.inputs {
		m.inputs[j].Blur()
	}

	return m.inputs[i].Focus()
}

func (m TimeframePicker) customRange() (time.Time, time.Time, error) {
	start, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.inputs[0].Value()), m.loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid start date, use YYYY-MM-DD")
	}

	end, err := time.ParseInLocation(time.DateOnly, strings.TrimSpace(m.inputs[1].Value()), m.loc)
	if err != nil {
		return time.Time{}, time.Time{}, errors.New("invalid end date, use YYYY-MM-DD")
	}

	if end.Before(start) {
		return time.Time{}, time.Time{}, errors.New("end date is before start date")
	}

	return start, metrics.EndOfDay(end), nil
}

func (m TimeframePicker) View() string {
	var b strings.Builder

	if m.custom {
		b.WriteString(titleStyle.Render("Custom range") + "\n\n")
		b.WriteString(m.inputs[0].View() + "\n" + m.inputs[1].View() + "\n\n")
		b.WriteString(lipgloss.NewStyle().Foreground(colorSubtle).Render("Enter: confirm | Tab: switch field | Esc: back"))
	} else {
		b.WriteString(titleStyle.Render("Timeframe") + "\n\n")

		for t := TimeframeThisMonth; t <= TimeframeCustom; t++ {
			if t == m.cursor {
				b.WriteString("> " + activeStyle(t.String()) + "\n")
			} else {
				b.WriteString("  " + t.String() + "\n")
			}
		}

		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorSubtle).Render("Enter: select | Esc: back"))
	}

	if m.err != nil {
		b.WriteString("\n\n" + lipgloss.NewStyle().Foreground(colorCritical).Render("Error: "+m.err.Error()))
	}

	return b.String()
}

// IsSelecting reports whether the picker is on the list rather than the
// custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return !m.custom
}

func (m *TimeframePicker) Reset() {
	m.custom = false
	m.cursor = TimeframeThisMonth
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].Reset()
	}
}
