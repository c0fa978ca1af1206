package operation

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Filter narrows a listing down to a single field. A nil Filter matches everything.
//
// The set of filters is closed: CategoryFilter, AmountFilter and DateFilter.
type Filter interface {
	Match(op *Operation) bool
	String() string
	isFilter()
}

// CategoryFilter matches operations of exactly one category.
type CategoryFilter struct {
	Category Category
}

func (f CategoryFilter) Match(op *Operation) bool { return op.Category == f.Category }
func (f CategoryFilter) String() string          { return fmt.Sprintf("category = %s", f.Category) }
func (CategoryFilter) isFilter()                 {}

// AmountFilter matches operations with exactly the given amount.
type AmountFilter struct {
	Amount decimal.Decimal
}

func (f AmountFilter) Match(op *Operation) bool { return op.Amount.Equal(f.Amount) }
func (f AmountFilter) String() string          { return fmt.Sprintf("amount = %s", f.Amount) }
func (AmountFilter) isFilter()                 {}

// DateFilter matches operations created on the same calendar day as Day,
// whatever the time of day.
type DateFilter struct {
	Day time.Time
}

func (f DateFilter) Match(op *Operation) bool {
	y1, m1, d1 := op.CreatedAt.Date()
	y2, m2, d2 := f.Day.Date()

	return y1 == y2 && m1 == m2 && d1 == d2
}

func (f DateFilter) String() string { return fmt.Sprintf("date = %s", f.Day.Format(DateLayout)) }
func (DateFilter) isFilter()        {}

// Matches reports whether op passes filter. A nil filter always matches.
func Matches(filter Filter, op *Operation) bool {
	return filter == nil || filter.Match(op)
}
