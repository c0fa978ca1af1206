package view

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ledger/internal/listing"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

type addInput struct {
	category    string
	amount      string
	description string
}

func (in *addInput) params() (operation.CreateParams, error) {
	category, err := operation.ParseCategory(in.category)
	if err != nil {
		return operation.CreateParams{}, err
	}

	amount, err := operation.ParseAmount(in.amount)
	if err != nil {
		return operation.CreateParams{}, err
	}

	return operation.CreateParams{
		Category:    category,
		Amount:      amount,
		Description: in.description,
	}, nil
}

// AddModel collects a new operation and stores it.
type AddModel struct {
	CommonModel
	operations *operation.Service

	input     *addInput
	descInput *huh.Input
	form      *huh.Form
	done   bool
	status string
}

func NewAddModel(svc *operation.Service) AddModel {
	in := &addInput{category: string(operation.CategoryIncome)}

	descInput := huh.NewInput().
		Key("description").
		Title("Description").
		CharLimit(operation.MaxDescriptionLen).
		Value(&in.description).
		Validate(operation.ValidateDescription)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&in.category),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Value(&in.amount).
				Validate(func(s string) error {
					_, err := operation.ParseAmount(s)
					return err
				}),
			descInput,
		),
	).WithWidth(60).WithShowHelp(false)

	return AddModel{
		operations: svc,
		input:      in,
		descInput:  descInput,
		form:       form,
	}
}

func (m AddModel) Title() string { return "Add Operation" }

func (m AddModel) ShortHelp() string {
	if m.done {
		return "Esc/Enter: back to menu"
	}

	return "Esc: back | Enter/Tab: navigate form"
}

func (m AddModel) Init() tea.Cmd {
	return tea.Batch(m.form.Init(), m.loadSuggestionsCmd())
}

type suggestionsMsg struct {
	suggestions []string
}

// loadSuggestionsCmd offers previously used descriptions as completions. Failures
// only cost the completions.
func (m AddModel) loadSuggestionsCmd() tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		suggestions, err := svc.Suggestions(ctx)
		if err != nil {
			slog.Warn("failed to load description suggestions", "error", err)
			return nil
		}

		return suggestionsMsg{suggestions: suggestions}
	}
}

func (m AddModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case suggestionsMsg:
		m.descInput.Suggestions(msg.suggestions)
		return m, nil
	case operationChangedMsg:
		m.done = true

		if msg.err != nil {
			m.status = errorText("add operation", msg.err)
		} else {
			m.status = successStyle.Render(msg.message)
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

	params, err := m.input.params()
	if err != nil {
		m.done = true
		m.status = errorText("add operation", err)

		return m, nil
	}

	return m, m.createCmd(params)
}

func (m AddModel) View() string {
	out := titleStyle.Render(m.Title()) + "\n\n"

	if m.done {
		out += m.status
	} else {
		out += m.form.View()
	}

	return pad.Render(out + "\n\n" + faintStyle.Render(m.ShortHelp()))
}

func (m AddModel) createCmd(params operation.CreateParams) tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if _, err := svc.Create(ctx, params); err != nil {
			return operationChangedMsg{err: err}
		}

		return operationChangedMsg{message: listing.MsgCreated}
	}
}
