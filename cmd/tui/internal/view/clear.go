package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

type ClearModel struct {
	CommonModel
	operations *operation.Service

	confirm *bool
	form    *huh.Form
	done    bool
	status  string
}

func NewClearModel(svc *operation.Service) ClearModel {
	confirm := new(bool)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete every operation in the ledger?").
				Affirmative("Yes").
				Negative("No").
				Value(confirm),
		),
	).WithShowHelp(false)

	return ClearModel{operations: svc, confirm: confirm, form: form}
}

func (m ClearModel) Title() string { return "Clear Ledger" }

func (m ClearModel) ShortHelp() string { return "Esc: back | Enter: confirm" }

func (m ClearModel) Init() tea.Cmd { return m.form.Init() }

type clearedMsg struct{ err error }

func (m ClearModel) clearCmd() tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		return clearedMsg{err: svc.Clear(ctx)}
	}
}

func (m ClearModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clearedMsg:
		m.done = true
		if msg.err != nil {
			m.status = errorText("clear ledger", msg.err)
		} else {
			m.status = successStyle.Render("Ledger cleared.")
		}

		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || (m.done && msg.Type == tea.KeyEnter) {
			return m, Back
		}
	}

	if m.done {
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if !*m.confirm {
		return m, Back
	}

	return m, m.clearCmd()
}

func (m ClearModel) View() string {
	body := m.form.View()
	if m.done {
		body = m.status
	}

	return pad.Render(titleStyle.Render(m.Title()) + "\n\n" + body + "\n\n" + faintStyle.Render(m.ShortHelp()))
}
