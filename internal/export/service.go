package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/ledger/internal/listing"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

// Header is the first row of every exported file. The importer reads it back as the
// "ledger" profile.
var Header = []string{"date", "category", "amount", "description"}

// Result describes a written export.
type Result struct {
	Path       string
	Operations []*operation.Operation
}

// Service writes operations out as semicolon separated CSV files.
type Service struct {
	operations listing.Source
	now        func() time.Time
}

func NewService(operations listing.Source) *Service {
	return &Service{
		operations: operations,
		now:        time.Now,
	}
}

// Export writes the operations matching filter to a new file in outputDir.
func (s *Service) Export(ctx context.Context, filter operation.Filter, outputDir string) (*Result, error) {
	ops, err := s.operations.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(outputDir, fmt.Sprintf("operations_%s.csv", s.now().Format("20060102_150405")))

	if err := writeFile(path, ops); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "operations exported", "path", path, "count", len(ops), "filter", describe(filter))

	return &Result{Path: path, Operations: ops}, nil
}

func writeFile(path string, ops []*operation.Operation) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if err := w.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, op := range ops {
		row := []string{
			op.CreatedAt.Format(listing.DateTimeLayout),
			string(op.Category),
			listing.FormatAmount(op.Amount),
			op.Description,
		}

		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing operation %s: %w", op.ID, err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		return fmt.Errorf("writing file: %w", err)
	}

	return f.Close()
}

// GenerateSummary lists the operations one per line with signed amounts, followed by
// their net total.
func (s *Service) GenerateSummary(ops []*operation.Operation) string {
	var sb strings.Builder

	for _, op := range ops {
		sign := "-"
		if op.Category == operation.CategoryIncome {
			sign = "+"
		}

		fmt.Fprintf(&sb, "* %s | %s | %s%s\n",
			op.CreatedAt.Format("2006-01-02"), op.Description, sign, listing.FormatAmount(op.Amount))
	}

	fmt.Fprintf(&sb, "Total: %s\n", listing.FormatAmount(operation.Net(ops)))

	return sb.String()
}

func describe(filter operation.Filter) string {
	if filter == nil {
		return "none"
	}

	return filter.String()
}
