package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ledger/internal/listing"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

type browseState int

const (
	browseStatePage browseState = iota
	browseStateDetail
	browseStateEdit
	browseStateDelete
)

type browseKeys struct {
	Prev   key.Binding
	Next   key.Binding
	Select key.Binding
	Modify key.Binding
	Delete key.Binding
	Back   key.Binding
}

func newBrowseKeys() browseKeys {
	return browseKeys{
		Prev:   key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p/←", "prev page")),
		Next:   key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("n/→", "next page")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("number+enter", "open (0 back)")),
		Modify: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "modify")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	}
}

// pageKeys and detailKeys implement help.KeyMap for the two browsing screens.
type (
	pageKeys   struct{ browseKeys }
	detailKeys struct{ browseKeys }
)

func (k pageKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Select, k.Back}
}

func (k pageKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Delete, k.Modify, k.Back}
}

func (k detailKeys) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

// editInput holds the modify form bindings. Empty values keep the current field.
type editInput struct {
	category    string
	amount      string
	description string
	confirm     bool
}

func (in *editInput) params() (operation.UpdateParams, error) {
	var params operation.UpdateParams

	if in.category != "" {
		category, err := operation.ParseCategory(in.category)
		if err != nil {
			return params, err
		}

		params.Category = &category
	}

	if strings.TrimSpace(in.amount) != "" {
		amount, err := operation.ParseAmount(in.amount)
		if err != nil {
			return params, err
		}

		params.Amount = &amount
	}

	if in.description != "" {
		description := in.description
		params.Description = &description
	}

	return params, nil
}

// BrowseModel pages through operations, optionally filtered, and lets the user open,
// modify or delete a single one.
type BrowseModel struct {
	CommonModel
	operations *operation.Service
	paginator  *listing.Paginator
	perPage    int
	filter     operation.Filter
	title      string

	state    browseState
	page     *listing.Page
	selected *operation.Operation
	choice   string
	form     *huh.Form
	edit     *editInput

	keys   browseKeys
	help   help.Model
	status string
}

func NewBrowseModel(svc *operation.Service, perPage int, filter operation.Filter) BrowseModel {
	title := "Operations"
	if filter != nil {
		title = "Search results: " + filter.String()
	}

	return BrowseModel{
		operations: svc,
		paginator:  listing.NewPaginator(svc),
		perPage:    perPage,
		filter:     filter,
		title:      title,
		keys:       newBrowseKeys(),
		help:       help.New(),
	}
}

func (m BrowseModel) Title() string { return m.title }

func (m BrowseModel) ShortHelp() string {
	switch m.state {
	case browseStatePage:
		return m.help.View(pageKeys{m.keys})
	case browseStateDetail:
		return m.help.View(detailKeys{m.keys})
	}

	return "Esc: cancel | Enter: confirm"
}

func (m BrowseModel) Init() tea.Cmd {
	return m.loadPageCmd(1)
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg:
		if msg.err != nil {
			m.status = errorText("list operations", msg.err)
			return m, nil
		}

		if msg.page.TotalPages > 0 && msg.page.Number > msg.page.TotalPages {
			return m, m.loadPageCmd(msg.page.TotalPages)
		}

		m.page = msg.page
		m.choice = ""

		return m, nil

	case operationLoadedMsg:
		if msg.err != nil {
			m.status = errorText("open operation", msg.err)
			return m, m.loadPageCmd(m.pageNumber())
		}

		m.selected = msg.op
		m.state = browseStateDetail

		return m, nil

	case operationChangedMsg:
		m.state = browseStatePage
		m.form = nil
		m.selected = nil

		if msg.err != nil {
			m.status = errorText("change operation", msg.err)
		} else {
			m.status = successStyle.Render(msg.message)
		}

		return m, m.loadPageCmd(m.pageNumber())

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.help.Width = msg.Width

		return m, nil
	}

	switch m.state {
	case browseStatePage:
		return m.updatePage(msg)
	case browseStateDetail:
		return m.updateDetail(msg)
	case browseStateEdit, browseStateDelete:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m BrowseModel) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.page == nil {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		return m, Back
	case key.Matches(keyMsg, m.keys.Prev):
		return m.navigate(listing.ActionPrev, m.page.Number-1)
	case key.Matches(keyMsg, m.keys.Next):
		return m.navigate(listing.ActionNext, m.page.Number+1)
	case key.Matches(keyMsg, m.keys.Select):
		return m.open()
	case keyMsg.Type == tea.KeyBackspace:
		if m.choice != "" {
			m.choice = m.choice[:len(m.choice)-1]
		}
	case keyMsg.Type == tea.KeyRunes && isDigits(keyMsg.Runes):
		m.choice += string(keyMsg.Runes)
	}

	return m, nil
}

func (m BrowseModel) navigate(action string, number int) (tea.Model, tea.Cmd) {
	if !m.page.Nav.Allows(action) {
		m.status = errorText("navigate", operation.ErrInvalidChoice)
		return m, nil
	}

	m.status = ""

	return m, m.loadPageCmd(number)
}

func (m BrowseModel) open() (tea.Model, tea.Cmd) {
	n, err := operation.ParseChoice(m.choice, len(m.page.Operations))
	m.choice = ""

	if err != nil {
		m.status = errorText("open operation", err)
		return m, nil
	}

	if n == 0 {
		return m, Back
	}

	op, ok := m.page.At(n)
	if !ok {
		m.status = errorText("open operation", operation.ErrInvalidChoice)
		return m, nil
	}

	m.status = ""

	return m, m.getCmd(op.ID)
}

func (m BrowseModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		m.state = browseStatePage
		m.selected = nil

		return m, nil
	case key.Matches(keyMsg, m.keys.Modify):
		m.edit = &editInput{}
		return m.startForm(browseStateEdit, buildEditForm(m.edit))
	case key.Matches(keyMsg, m.keys.Delete):
		m.edit = &editInput{}
		return m.startForm(browseStateDelete, buildDeleteForm(m.edit))
	}

	return m, nil
}

func (m BrowseModel) startForm(state browseState, form *huh.Form) (tea.Model, tea.Cmd) {
	m.form = form
	m.state = state

	return m, m.form.Init()
}

func buildEditForm(in *editInput) *huh.Form {
	categories := append([]huh.Option[string]{huh.NewOption("Keep current", "")}, categoryOptions()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("category").
				Title("Category").
				Options(categories...).
				Value(&in.category),
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Description("Leave empty to keep the current value").
				Value(&in.amount).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}

					_, err := operation.ParseAmount(s)

					return err
				}),
			huh.NewInput().
				Key("description").
				Title("Description").
				Description("Leave empty to keep the current value").
				Value(&in.description).
				Validate(func(s string) error {
					if s == "" {
						return nil
					}

					return operation.ValidateDescription(s)
				}),
		),
	).WithWidth(60).WithShowHelp(false)
}

func buildDeleteForm(in *editInput) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("confirm").
				Title("Delete this operation?").
				Affirmative("Yes").
				Negative("No").
				Value(&in.confirm),
		),
	).WithShowHelp(false)
}

func (m BrowseModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = browseStateDetail
		m.form = nil

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	if m.state == browseStateDelete {
		if !m.edit.confirm {
			m.state = browseStateDetail
			m.form = nil

			return m, nil
		}

		return m, m.deleteCmd(m.selected.ID)
	}

	params, err := m.edit.params()
	if err != nil {
		m.status = errorText("modify operation", err)
		m.state = browseStateDetail

		return m, nil
	}

	return m, m.updateCmd(m.selected.ID, params)
}

func (m BrowseModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(m.title) + "\n\n")

	switch m.state {
	case browseStatePage:
		if m.page == nil {
			b.WriteString("Loading operations...")
			break
		}

		b.WriteString(m.page.Text() + "\n")

		if m.choice != "" {
			b.WriteString("\nSelect an operation: " + m.choice + "\n")
		}
	case browseStateDetail:
		b.WriteString(listing.Detail(m.selected) + "\n")
	case browseStateEdit, browseStateDelete:
		b.WriteString(listing.Detail(m.selected) + "\n\n" + m.form.View())
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	b.WriteString("\n" + faintStyle.Render(m.ShortHelp()))

	return pad.Render(b.String())
}

func (m BrowseModel) pageNumber() int {
	if m.page == nil {
		return 1
	}

	return max(m.page.Number, 1)
}

func isDigits(runes []rune) bool {
	for _, r := range runes {
		if r < '0' || r > '9' {
			return false
		}
	}

	return len(runes) > 0
}

// Messages

type pageLoadedMsg struct {
	page *listing.Page
	err  error
}

func (m BrowseModel) loadPageCmd(number int) tea.Cmd {
	paginator := m.paginator
	req := listing.Request{Page: number, PerPage: m.perPage, Filter: m.filter}

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		page, err := paginator.Page(ctx, req)

		return pageLoadedMsg{page: page, err: err}
	}
}

type operationLoadedMsg struct {
	op  *operation.Operation
	err error
}

// getCmd reads the operation afresh so the detail screen never shows a stale or
// deleted record.
func (m BrowseModel) getCmd(id string) tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		op, err := svc.Get(ctx, id)

		return operationLoadedMsg{op: op, err: err}
	}
}

type operationChangedMsg struct {
	message string
	err     error
}

func (m BrowseModel) updateCmd(id string, params operation.UpdateParams) tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := svc.Update(ctx, id, params); err != nil {
			return operationChangedMsg{err: fmt.Errorf("modifying operation: %w", err)}
		}

		return operationChangedMsg{message: listing.MsgUpdated}
	}
}

func (m BrowseModel) deleteCmd(id string) tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		if err := svc.Delete(ctx, id); err != nil {
			return operationChangedMsg{err: fmt.Errorf("deleting operation: %w", err)}
		}

		return operationChangedMsg{message: listing.MsgDeleted}
	}
}
