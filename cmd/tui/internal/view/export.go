package view

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/ledger/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	input   *filterInput
	path       *string
	defaultDir string
	form    *huh.Form
	spinner spinner.Model
	summary string
	errMsg  string
}

func NewExportModel(svc *export.Service, defaultDir string) ExportModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	in := newFilterInput(true)
	path := defaultDir

	groups := append(in.groups(true),
		huh.NewGroup(
			huh.NewInput().
				Key("path").
				Title("Output Path").
				Description("Directory will be created if it doesn't exist").
				Placeholder(defaultDir).
				Value(&path),
		),
	)

	return ExportModel{
		exportService: svc,
		input:         in,
		path:          &path,
		defaultDir:    defaultDir,
		form:          huh.NewForm(groups...).WithWidth(50).WithShowHelp(false),
		spinner:       s,
	}
}

func (m ExportModel) Title() string { return "Export Operations" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != exportStateExporting {
		return m, Back
	}

	switch m.state {
	case exportStateForm:
		return m.updateForm(msg)
	case exportStateExporting:
		return m.updateExporting(msg)
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

	m.state = exportStateExporting

	return m, tea.Batch(m.spinner.Tick, m.runExportCmd())
}

func (m ExportModel) updateExporting(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(exportResultMsg); ok {
		m.state = exportStateResult

		if result.err != nil {
			m.errMsg = errorText("export operations", result.err)
		}

		m.summary = result.body

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return pad.Render(titleStyle.Render(m.Title()) + "\n\n" + m.form.View())
	case exportStateExporting:
		return pad.Render(fmt.Sprintf("%s Exporting operations...", m.spinner.View()))
	case exportStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ExportModel) viewResult() string {
	if m.errMsg != "" {
		return pad.Render(m.errMsg)
	}

	return pad.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			successStyle.Bold(true).Render("Export Complete!"),
			"",
			m.summary,
		),
	)
}

type exportResultMsg struct {
	body string
	err  error
}

func (m ExportModel) runExportCmd() tea.Cmd {
	svc := m.exportService
	in := m.input
	path := *m.path
	if path == "" {
		path = m.defaultDir
	}

	return func() tea.Msg {
		filter, err := in.filter()
		if err != nil {
			return exportResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		res, err := svc.Export(ctx, filter, path)
		if err != nil {
			return exportResultMsg{err: err}
		}

		body := fmt.Sprintf("Written to %s\n\n%s", res.Path, svc.GenerateSummary(res.Operations))

		return exportResultMsg{body: body}
	}
}
