package importer

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

// Creator stores a batch of operations at once.
type Creator interface {
	CreateBatch(ctx context.Context, params []operation.CreateParams) ([]*operation.Operation, error)
}

type Result struct {
	Profile    string
	Operations []*operation.Operation
	Skipped    int
}

type Service struct {
	parser  *Parser
	creator Creator
}

func NewService(creator Creator) *Service {
	return &Service{
		parser:  NewParser(),
		creator: creator,
	}
}

// Import parses r and stores every operation in it. Nothing is stored if any row is
// invalid.
func (s *Service) Import(ctx context.Context, r io.Reader) (*Result, error) {
	parsed, err := s.parser.Parse(r)
	if err != nil {
		return nil, err
	}

	result := &Result{Profile: parsed.Profile, Skipped: parsed.Skipped}

	if len(parsed.Params) == 0 {
		return result, nil
	}

	ops, err := s.creator.CreateBatch(ctx, parsed.Params)
	if err != nil {
		return nil, fmt.Errorf("storing imported operations: %w", err)
	}

	result.Operations = ops

	slog.InfoContext(ctx, "operations imported",
		"profile", parsed.Profile,
		"charset", parsed.Charset,
		"count", len(ops),
		"skipped", parsed.Skipped,
	)

	return result, nil
}
