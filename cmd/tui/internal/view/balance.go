package view

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/listing"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

type BalanceModel struct {
	CommonModel
	operations *operation.Service

	loaded  bool
	balance decimal.Decimal
	errMsg  string
}

func NewBalanceModel(svc *operation.Service) BalanceModel {
	return BalanceModel{operations: svc}
}

func (m BalanceModel) Title() string { return "Balance" }

func (m BalanceModel) ShortHelp() string { return "Esc/Enter: back to menu" }

func (m BalanceModel) Init() tea.Cmd {
	svc := m.operations

	return func() tea.Msg {
		ctx, cancel := StoreCtx()
		defer cancel()

		balance, err := svc.Balance(ctx)

		return balanceMsg{balance: balance, err: err}
	}
}

type balanceMsg struct {
	balance decimal.Decimal
	err     error
}

func (m BalanceModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case balanceMsg:
		m.loaded = true
		m.balance = msg.balance

		if msg.err != nil {
			m.errMsg = errorText("compute balance", msg.err)
		}
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
			return m, Back
		}
	}

	return m, nil
}

func (m BalanceModel) View() string {
	var body string

	switch {
	case !m.loaded:
		body = "Computing balance..."
	case m.errMsg != "":
		body = m.errMsg
	default:
		body = titleStyle.Render(listing.Balance(m.balance))
	}

	return pad.Render(body + "\n\n" + faintStyle.Render(m.ShortHelp()))
}
