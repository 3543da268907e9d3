package view

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/report"
)

type reportState int

const (
	reportStateForm reportState = iota
	reportStateGenerating
	reportStateResult
)

// ReportModel generates a monthly, quarterly or annual report.
type ReportModel struct {
	CommonModel
	reports *report.Service
	loc     *time.Location

	state   reportState
	form    *huh.Form
	spinner spinner.Model

	report *report.Report
	err    error
}

func NewReportModel(reports *report.Service, loc *time.Location) ReportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := ReportModel{
		reports: reports,
		loc:     loc,
		spinner: s,
	}
	m.form = m.buildForm()

	return m
}

func (m ReportModel) Title() string { return "Generate Report" }

func (m ReportModel) ShortHelp() string {
	if m.state == reportStateResult {
		return "Esc: back | n: new report"
	}

	return "Esc: back | Enter: confirm"
}

func (m ReportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ReportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.state {
	case reportStateForm:
		return m.updateForm(msg)
	case reportStateGenerating:
		return m.updateGenerating(msg)
	case reportStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				return m, Back
			case "n":
				m.state = reportStateForm
				m.form = m.buildForm()

				return m, m.form.Init()
			}
		}
	}

	return m, nil
}

func (m ReportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m, Back
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	req, err := m.periodRequest()
	if err != nil {
		m.state = reportStateResult
		m.err = err

		return m, nil
	}

	m.state = reportStateGenerating
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.generateCmd(req))
}

func (m ReportModel) updateGenerating(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(reportGeneratedMsg); ok {
		m.state = reportStateResult
		m.report, m.err = result.report, result.err

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ReportModel) periodRequest() (report.PeriodRequest, error) {
	typ, _ := m.form.Get("type").(report.PeriodType)
	req := report.PeriodRequest{Type: typ}

	year, err := strconv.Atoi(strings.TrimSpace(m.form.GetString("year")))
	if err != nil {
		return req, fmt.Errorf("invalid year: %s", m.form.GetString("year"))
	}

	req.Year = year

	raw := strings.TrimSpace(m.form.GetString("number"))
	if typ == report.Annual || raw == "" {
		return req, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return req, fmt.Errorf("invalid number: %s", raw)
	}

	if typ == report.Quarterly {
		req.Quarter = n
	} else {
		req.Month = n
	}

	return req, nil
}

func (m ReportModel) buildForm() *huh.Form {
	now := time.Now().In(m.loc)

	typ := report.Monthly
	year := strconv.Itoa(now.Year())
	number := strconv.Itoa(int(now.Month()))

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[report.PeriodType]().
				Key("type").
				Title("Report type").
				Options(
					huh.NewOption("Monthly", report.Monthly),
					huh.NewOption("Quarterly", report.Quarterly),
					huh.NewOption("Annual", report.Annual),
				).
				Value(&typ),
			huh.NewInput().
				Key("year").
				Title("Year").
				Value(&year),
			huh.NewInput().
				Key("number").
				Title("Month or quarter").
				Description("Ignored for annual reports").
				Value(&number),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ReportModel) View() string {
	switch m.state {
	case reportStateForm:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())
	case reportStateGenerating:
		return lipgloss.NewStyle().Padding(1).Render(m.spinner.View() + " Generating report...")
	}

	if m.err != nil {
		return errorView(m.err)
	}

	r := m.report

	header := titleStyle.Render(fmt.Sprintf("%s report  %s to %s",
		strings.ToUpper(string(r.Period.Type[:1]))+string(r.Period.Type[1:]),
		FormatDate(r.Period.StartDate.In(m.loc)),
		FormatDate(r.Period.EndDate.In(m.loc)),
	))

	tasks := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Tasks", fmt.Sprintf("%d", r.Tasks.Total)),
		card("Completed", fmt.Sprintf("%d (%s)", r.Tasks.Completed, FormatPercent(r.Tasks.CompletionRate))),
		card("In progress", fmt.Sprintf("%d", r.Tasks.InProgress)),
		card("Not started", fmt.Sprintf("%d", r.Tasks.NotStarted)),
		card("Overdue", fmt.Sprintf("%d", r.Tasks.Overdue)),
	)

	budget := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Budget", FormatAmount(r.Budget.TotalBudget)),
		card("Spent", FormatAmount(r.Budget.TotalSpent)),
		card("Remaining", FormatAmount(r.Budget.TotalRemaining)),
		card("Execution", FormatPercent(r.Budget.ExecutionRate)),
	)

	farmers := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Farmers", fmt.Sprintf("%d", r.Farmers.Total)),
		card("Y1 / Y2 / Y3", fmt.Sprintf("%d / %d / %d", r.Farmers.Year1, r.Farmers.Year2, r.Farmers.Year3)),
		card("Income target", fmt.Sprintf("%d of %d (%s)",
			r.Farmers.TargetAchievers, r.Farmers.TotalAnalyzed, FormatPercent(r.Farmers.TargetAchievementRate))),
	)

	training := lipgloss.JoinHorizontal(lipgloss.Top,
		card("Sessions", fmt.Sprintf("%d (%d completed)", r.Training.TotalSessions, r.Training.CompletedSessions)),
		card("Participants", fmt.Sprintf("%d", r.Training.TotalParticipants)),
		card("Avg attendance", FormatPercent(r.Training.AvgAttendanceRate)),
	)

	var categories strings.Builder
	for _, c := range r.Budget.Categories {
		fmt.Fprintf(&categories, "  %-24s %14s %14s %7s\n",
			truncate(c.Name, 24), FormatAmount(c.Spent), FormatAmount(c.TotalBudget), FormatPercent(c.ExecutionRate))
	}

	sections := []string{header, "", tasks, budget}
	if categories.Len() > 0 {
		sections = append(sections, categories.String())
	}

	sections = append(sections, farmers, training)

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

type reportGeneratedMsg struct {
	report *report.Report
	err    error
}

func (m ReportModel) generateCmd(req report.PeriodRequest) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		r, err := m.reports.Generate(ctx, report.Request{Period: req, Format: report.FormatJSON})

		return reportGeneratedMsg{report: r, err: err}
	}
}
