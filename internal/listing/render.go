package listing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

const (
	Separator = "------------------------------------"
	NoResults = "No operations found."

	// DateTimeLayout is how operation timestamps are shown.
	DateTimeLayout = "02-01-2006 15:04:05"
)

// Confirmation messages shown after a successful change.
const (
	MsgCreated = "=== The operation has been successfully added. ==="
	MsgUpdated = "=== Operation successfully updated ==="
	MsgDeleted = "=== Operation successfully deleted ==="
)

func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// Text renders the page: every operation with its position, then the navigation bar.
func (p *Page) Text() string {
	var sb strings.Builder

	sb.WriteString(Separator + "\n")

	if len(p.Operations) == 0 {
		sb.WriteString(NoResults + "\n")
	}

	for i, op := range p.Operations {
		pos := fmt.Sprintf("%d", i+1)
		indent := strings.Repeat(" ", len(pos)+3)

		fmt.Fprintf(&sb, "%s - Date: %s\n", pos, op.CreatedAt.Format(DateTimeLayout))
		fmt.Fprintf(&sb, "%sCategory: %s\n", indent, op.Category)
		fmt.Fprintf(&sb, "%sAmount: %s\n", indent, FormatAmount(op.Amount))
		fmt.Fprintf(&sb, "%sDescription: %s\n", indent, op.Description)
		sb.WriteString(Separator + "\n")
	}

	sb.WriteString("\n" + p.NavBar())

	return sb.String()
}

// NavBar renders "prev   2/3   next", with "-" in place of unavailable actions.
func (p *Page) NavBar() string {
	prev, next := "-", "-"
	if p.Nav.Prev {
		prev = ActionPrev
	}

	if p.Nav.Next {
		next = ActionNext
	}

	return fmt.Sprintf("%s   %d/%d   %s", prev, p.Number, p.TotalPages, next)
}

// Detail renders a single operation.
func Detail(op *operation.Operation) string {
	return fmt.Sprintf(
		"%s\nDate: %s\nCategory: %s\nAmount: %s\nDescription: %s\n%s",
		Separator,
		op.CreatedAt.Format(DateTimeLayout),
		op.Category,
		FormatAmount(op.Amount),
		op.Description,
		Separator,
	)
}

func Balance(d decimal.Decimal) string {
	return fmt.Sprintf("=== Your balance: %s ===", FormatAmount(d))
}
