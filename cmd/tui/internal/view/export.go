package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/taka-daredemo/JICA/internal/export"
)

type exportStep int

const (
	exportStepEntity exportStep = iota
	exportStepTimeframe
	exportStepOutput
	exportStepRunning
	exportStepDone
)

const exportTimeout = 2 * time.Minute

// ExportModel writes an entity export to a CSV or JSON file on disk.
type ExportModel struct {
	CommonModel
	exportService *export.Service
	loc           *time.Location

	step    exportStep
	form    *huh.Form
	picker  TimeframePicker
	spinner spinner.Model

	entity export.Entity
	format export.Format
	dir    string
	rng    export.Range

	written exportWrittenMsg
}

func NewExportModel(svc *export.Service, loc *time.Location) ExportModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(colorAccent)

	m := ExportModel{
		exportService: svc,
		loc:           loc,
		picker:        NewTimeframePicker(loc),
		spinner:       sp,
		entity:        export.EntityTasks,
		format:        export.FormatCSV,
		dir:           "./exports",
	}
	m.form = m.entityForm()

	return m
}

func (m ExportModel) Title() string { return "Export Data" }

func (m ExportModel) ShortHelp() string {
	switch m.step {
	case exportStepRunning:
		return "Exporting..."
	case exportStepDone:
		return "Esc: back to menu"
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TimeframeSelectedMsg:
		m.rng = export.Range{}
		if !msg.All {
			m.rng = export.Range{From: &msg.Start, To: &msg.End}
		}

		return m.toOutput()

	case exportWrittenMsg:
		m.step = exportStepDone
		m.written = msg

		return m, nil

	case spinner.TickMsg:
		if m.step != exportStepRunning {
			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			switch m.step {
			case exportStepEntity, exportStepDone:
				return m, Back
			case exportStepTimeframe:
				if m.picker.IsSelecting() {
					return m, Back
				}
			case exportStepOutput:
				m.step = exportStepTimeframe
				m.picker.Reset()

				return m, nil
			}
		}
	}

	switch m.step {
	case exportStepEntity, exportStepOutput:
		return m.updateForm(msg)
	case exportStepTimeframe:
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.step == exportStepEntity {
		if e, ok := m.form.Get("entity").(export.Entity); ok {
			m.entity = e
		}

		// The farmer roster has no date to filter on.
		if m.entity == export.EntityFarmers {
			m.rng = export.Range{}
			return m.toOutput()
		}

		m.step = exportStepTimeframe
		m.picker.Reset()

		return m, nil
	}

	if f, ok := m.form.Get("format").(export.Format); ok {
		m.format = f
	}

	if dir := m.form.GetString("dir"); dir != "" {
		m.dir = dir
	}

	m.step = exportStepRunning

	return m, tea.Batch(m.spinner.Tick, m.writeCmd())
}

func (m ExportModel) toOutput() (tea.Model, tea.Cmd) {
	m.step = exportStepOutput
	m.form = m.outputForm()

	return m, m.form.Init()
}

func (m ExportModel) entityForm() *huh.Form {
	entity := m.entity

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[export.Entity]().
				Key("entity").
				Title("What to export").
				Options(
					huh.NewOption("Tasks", export.EntityTasks),
					huh.NewOption("Farmers", export.EntityFarmers),
					huh.NewOption("Payments", export.EntityPayments),
					huh.NewOption("Training sessions", export.EntityTraining),
				).
				Value(&entity),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) outputForm() *huh.Form {
	format, dir := m.format, m.dir

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[export.Format]().
				Key("format").
				Title("Format").
				Options(
					huh.NewOption("CSV (spreadsheet)", export.FormatCSV),
					huh.NewOption("JSON", export.FormatJSON),
				).
				Value(&format),
			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Description("Created when missing").
				Placeholder("./exports").
				Value(&dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) View() string {
	pad := lipgloss.NewStyle().Padding(1)

	switch m.step {
	case exportStepEntity, exportStepOutput:
		return pad.Render(m.form.View())
	case exportStepTimeframe:
		return pad.Render(m.picker.View())
	case exportStepRunning:
		return pad.Render(fmt.Sprintf("%s Exporting %s as %s...", m.spinner.View(), m.entity, m.format))
	}

	if m.written.err != nil {
		return errorView(m.written.err)
	}

	if m.written.rows == 0 {
		return pad.Render("No data to export")
	}

	return pad.Render(lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Bold(true).Foreground(colorOK).Render("Export complete"),
		"",
		fmt.Sprintf("%d %s record(s) written to", m.written.rows, m.entity),
		activeStyle(m.written.file),
	))
}

type exportWrittenMsg struct {
	file string
	rows int
	err  error
}

func (m ExportModel) writeCmd() tea.Cmd {
	entity, format, dir, rng := m.entity, m.format, m.dir, m.rng
	now := time.Now().In(m.loc)

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		data, err := m.exportService.Export(ctx, entity, rng)
		if err != nil {
			return exportWrittenMsg{err: err}
		}

		if data.Len() == 0 {
			return exportWrittenMsg{}
		}

		file := filepath.Join(dir, export.Filename(entity, format, now))
		if err := writeDataset(file, format, data); err != nil {
			return exportWrittenMsg{err: err}
		}

		return exportWrittenMsg{file: file, rows: data.Len()}
	}
}

func writeDataset(file string, format export.Format, data *export.Dataset) error {
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(file), err)
	}

	f, err := os.Create(file)
	if err != nil {
		return fmt.Errorf("creating %s: %w", file, err)
	}
	defer f.Close()

	if format == export.FormatJSON {
		b, err := data.MarshalJSON()
		if err != nil {
			return err
		}

		_, err = f.Write(b)

		return err
	}

	return data.WriteCSV(f)
}
