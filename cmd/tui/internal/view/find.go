package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

// FindModel asks for a filter and then browses the matching operations.
type FindModel struct {
	CommonModel
	operations *operation.Service
	perPage    int

	input    *filterInput
	form     *huh.Form
	results  *BrowseModel
	errorMsg string
}

func NewFindModel(svc *operation.Service, perPage int) FindModel {
	in := newFilterInput(false)

	return FindModel{
		operations: svc,
		perPage:    perPage,
		input:      in,
		form:       huh.NewForm(in.groups(false)...).WithWidth(50).WithShowHelp(false),
	}
}

func (m FindModel) Title() string { return "Find Operations" }

func (m FindModel) ShortHelp() string {
	if m.results != nil {
		return m.results.ShortHelp()
	}

	return "Esc: back | Enter: confirm"
}

func (m FindModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m FindModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.results != nil {
		next, cmd := m.results.Update(msg)
		results := next.(BrowseModel)
		m.results = &results

		return m, cmd
	}

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

	filter, err := m.input.filter()
	if err != nil {
		m.errorMsg = errorText("build filter", err)
		return m, nil
	}

	results := NewBrowseModel(m.operations, m.perPage, filter)
	m.results = &results

	return m, results.Init()
}

func (m FindModel) View() string {
	if m.results != nil {
		return m.results.View()
	}

	out := titleStyle.Render(m.Title()) + "\n\n" + m.form.View()
	if m.errorMsg != "" {
		out += "\n" + m.errorMsg
	}

	return pad.Render(out)
}
