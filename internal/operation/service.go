package operation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=operation
type Repository interface {
	ListOperations(ctx context.Context, filter Filter) ([]*Operation, error)
	GetOperation(ctx context.Context, id string) (*Operation, error)
	CreateOperation(ctx context.Context, op *Operation) error
	CreateOperations(ctx context.Context, ops []*Operation) error
	UpdateOperation(ctx context.Context, id string, params UpdateParams) error
	DeleteOperation(ctx context.Context, id string) error
	Reset(ctx context.Context) error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Operation, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	op := newOperation(params)
	if err := s.repo.CreateOperation(ctx, op); err != nil {
		return nil, translate(err, params.ID)
	}

	return op, nil
}

// CreateBatch validates every entry before storing any of them.
func (s *Service) CreateBatch(ctx context.Context, params []CreateParams) ([]*Operation, error) {
	if len(params) == 0 {
		return nil, nil
	}

	ops := make([]*Operation, len(params))

	for i, p := range params {
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		ops[i] = newOperation(p)
	}

	if err := s.repo.CreateOperations(ctx, ops); err != nil {
		return nil, translate(err, "")
	}

	return ops, nil
}

func (s *Service) Get(ctx context.Context, id string) (*Operation, error) {
	op, err := s.repo.GetOperation(ctx, id)
	if err != nil {
		return nil, translate(err, id)
	}

	return op, nil
}

func (s *Service) List(ctx context.Context, filter Filter) ([]*Operation, error) {
	return s.repo.ListOperations(ctx, filter)
}

func (s *Service) Update(ctx context.Context, id string, params UpdateParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	return translate(s.repo.UpdateOperation(ctx, id, params), id)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return translate(s.repo.DeleteOperation(ctx, id), id)
}

// Clear removes every operation from the ledger.
func (s *Service) Clear(ctx context.Context) error {
	return s.repo.Reset(ctx)
}

// Balance returns the sum of all incomes minus the sum of all expenses.
func (s *Service) Balance(ctx context.Context) (decimal.Decimal, error) {
	ops, err := s.repo.ListOperations(ctx, nil)
	if err != nil {
		return decimal.Zero, err
	}

	return Net(ops), nil
}

// Net adds incomes and subtracts expenses.
func Net(ops []*Operation) decimal.Decimal {
	net := decimal.Zero

	for _, op := range ops {
		switch op.Category {
		case CategoryIncome:
			net = net.Add(op.Amount)
		case CategoryExpense:
			net = net.Sub(op.Amount)
		}
	}

	return net
}

func newOperation(p CreateParams) *Operation {
	return &Operation{
		ID:          p.ID,
		Category:    p.Category,
		Amount:      p.Amount,
		Description: p.Description,
	}
}

// translate replaces storage-level errors with their Service counterparts.
func translate(err error, id string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrRecordNotFound):
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	case errors.Is(err, ErrRecordExists):
		return fmt.Errorf("%w: %s", ErrAlreadyExists, id)
	}

	return err
}
