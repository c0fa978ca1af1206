package operation

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category represents the kind of ledger entry (income or expense).
type Category string

const (
	CategoryIncome  Category = "income"
	CategoryExpense Category = "expense"
)

// Operation is a single income or expense entry of the ledger.
type Operation struct {
	ID          string
	Category    Category
	Amount      decimal.Decimal
	Description string
	CreatedAt   time.Time
}

type CreateParams struct {
	// ID is optional. The store generates one when empty.
	ID          string
	Category    Category
	Amount      decimal.Decimal
	Description string
}

// UpdateParams carries the fields to change. A nil field keeps the stored value.
type UpdateParams struct {
	Category    *Category
	Amount      *decimal.Decimal
	Description *string
}

func (p UpdateParams) IsEmpty() bool {
	return p.Category == nil && p.Amount == nil && p.Description == nil
}

// Apply merges the present fields over op. ID and CreatedAt are never touched.
func (p UpdateParams) Apply(op *Operation) {
	if p.Category != nil {
		op.Category = *p.Category
	}

	if p.Amount != nil {
		op.Amount = *p.Amount
	}

	if p.Description != nil {
		op.Description = *p.Description
	}
}
