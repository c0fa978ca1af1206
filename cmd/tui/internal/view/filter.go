package view

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

const (
	filterAll      = "all"
	filterCategory = "category"
	filterDate     = "date"
	filterAmount   = "amount"
)

// filterInput holds the form bindings for choosing an operation filter. It lives
// behind a pointer so the bindings survive model copies.
type filterInput struct {
	kind     string
	category string
	date     string
	amount   string
}

func newFilterInput(allowAll bool) *filterInput {
	in := &filterInput{kind: filterCategory, category: string(operation.CategoryIncome)}
	if allowAll {
		in.kind = filterAll
	}

	return in
}

// groups returns the form groups: the filter kind, then one value group per kind,
// shown only when that kind is chosen.
func (in *filterInput) groups(allowAll bool) []*huh.Group {
	kinds := []huh.Option[string]{
		huh.NewOption("Category", filterCategory),
		huh.NewOption("Date", filterDate),
		huh.NewOption("Amount", filterAmount),
	}

	if allowAll {
		kinds = append([]huh.Option[string]{huh.NewOption("All operations", filterAll)}, kinds...)
	}

	return []*huh.Group{
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Search by").
				Options(kinds...).
				Value(&in.kind),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Category").
				Options(categoryOptions()...).
				Value(&in.category),
		).WithHideFunc(func() bool { return in.kind != filterCategory }),
		huh.NewGroup(
			huh.NewInput().
				Title("Date").
				Placeholder("DD-MM-YYYY").
				Value(&in.date).
				Validate(func(s string) error {
					_, err := operation.ParseDate(s)
					return err
				}),
		).WithHideFunc(func() bool { return in.kind != filterDate }),
		huh.NewGroup(
			huh.NewInput().
				Title("Amount").
				Value(&in.amount).
				Validate(func(s string) error {
					_, err := operation.ParseAmount(s)
					return err
				}),
		).WithHideFunc(func() bool { return in.kind != filterAmount }),
	}
}

// filter builds the chosen filter. A nil filter means all operations.
func (in *filterInput) filter() (operation.Filter, error) {
	switch in.kind {
	case filterAll:
		return nil, nil
	case filterCategory:
		category, err := operation.ParseCategory(in.category)
		if err != nil {
			return nil, err
		}

		return operation.CategoryFilter{Category: category}, nil
	case filterDate:
		day, err := operation.ParseDate(in.date)
		if err != nil {
			return nil, err
		}

		return operation.DateFilter{Day: day}, nil
	case filterAmount:
		amount, err := operation.ParseAmount(in.amount)
		if err != nil {
			return nil, err
		}

		return operation.AmountFilter{Amount: amount}, nil
	}

	return nil, fmt.Errorf("%w: %q", operation.ErrInvalidChoice, in.kind)
}

func categoryOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Income", string(operation.CategoryIncome)),
		huh.NewOption("Expense", string(operation.CategoryExpense)),
	}
}
