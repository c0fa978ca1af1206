package listing

import (
	"context"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

const (
	ActionPrev = "prev"
	ActionNext = "next"
)

// Source provides the (optionally filtered) operations to paginate.
type Source interface {
	List(ctx context.Context, filter operation.Filter) ([]*operation.Operation, error)
}

type Paginator struct {
	src Source
}

func NewPaginator(src Source) *Paginator {
	return &Paginator{src: src}
}

type Request struct {
	Page    int // 1-based
	PerPage int
	Filter  operation.Filter
}

// Nav holds the navigation actions available from a page.
type Nav struct {
	Prev bool
	Next bool
}

// Actions returns the available actions in display order.
func (n Nav) Actions() []string {
	actions := make([]string, 0, 2)
	if n.Prev {
		actions = append(actions, ActionPrev)
	}

	if n.Next {
		actions = append(actions, ActionNext)
	}

	return actions
}

func (n Nav) Allows(action string) bool {
	switch action {
	case ActionPrev:
		return n.Prev
	case ActionNext:
		return n.Next
	}

	return false
}

type Page struct {
	Number     int
	PerPage    int
	Total      int
	TotalPages int
	Filter     operation.Filter
	Operations []*operation.Operation
	Nav        Nav
}

func (p *Paginator) Page(ctx context.Context, req Request) (*Page, error) {
	if req.PerPage < 1 {
		return nil, operation.ErrInvalidPerPage
	}

	ops, err := p.src.List(ctx, req.Filter)
	if err != nil {
		return nil, err
	}

	page := Paginate(ops, req.Page, req.PerPage)
	page.Filter = req.Filter

	return page, nil
}

// Paginate slices ops into the requested page. Pages outside the valid range are
// empty rather than an error, and so is every page when perPage is not positive.
func Paginate(ops []*operation.Operation, number, perPage int) *Page {
	total := len(ops)
	if perPage < 1 {
		return &Page{Number: number, PerPage: perPage, Total: total}
	}

	totalPages := (total + perPage - 1) / perPage

	page := &Page{
		Number:     number,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
		Nav: Nav{
			Prev: number > 1,
			Next: number < totalPages,
		},
	}

	start := (number - 1) * perPage
	if start < 0 || start >= total {
		return page
	}

	end := min(start+perPage, total)
	page.Operations = ops[start:end]

	return page
}

// IDs returns the ids of the operations on the page, in display order.
func (p *Page) IDs() []string {
	ids := make([]string, len(p.Operations))
	for i, op := range p.Operations {
		ids[i] = op.ID
	}

	return ids
}

// At returns the operation at a 1-based position on the page.
func (p *Page) At(position int) (*operation.Operation, bool) {
	if position < 1 || position > len(p.Operations) {
		return nil, false
	}

	return p.Operations[position-1], true
}
