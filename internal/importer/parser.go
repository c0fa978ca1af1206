package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/ledger/internal/encoding"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

var ErrUnknownFormat = errors.New("no matching CSV format found")

// delimiters are tried in order until one yields a known header.
var delimiters = []rune{';', ','}

// Parsed is the outcome of reading one CSV file.
type Parsed struct {
	Profile string
	Charset enc.Charset
	Params  []operation.CreateParams
	// Skipped counts rows without an amount (blank lines, footers) and zero movements.
	Skipped int
}

// Parser reads CSV files into operation params. It detects the file encoding, the
// delimiter and the column layout by matching headers against known profiles.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) (*Parsed, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}

	for _, comma := range delimiters {
		rows, err := readRows(data, comma)
		if err != nil {
			continue
		}

		profile, cols, headerIdx := detectProfile(rows)
		if profile == nil {
			continue
		}

		parsed, err := parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
		if err != nil {
			return nil, err
		}

		parsed.Charset = charset

		return parsed, nil
	}

	return nil, fmt.Errorf("%w: expected description and amount columns", ErrUnknownFormat)
}

func readRows(data []byte, comma rune) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	return rows, nil
}

// detectProfile scans rows for a header that matches a known profile.
// It returns the profile, the header's column index and the header row index.
func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := newColIndex(row)

		for i := range profiles {
			if cols.matches(&profiles[i]) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

// parseRows turns data rows into params. headerRowNum is the 0-based header index, used
// to report 1-based file row numbers.
func parseRows(p *Profile, cols colIndex, rows [][]string, headerRowNum int) (*Parsed, error) {
	descIdx, _ := cols.find(p.DescCol)
	parsed := &Parsed{Profile: p.Name}

	for i, row := range rows {
		rowNum := headerRowNum + i + 2

		category, amount, ok, err := parseRowAmount(p, cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if !ok {
			parsed.Skipped++
			continue
		}

		params := operation.CreateParams{
			Category:    category,
			Amount:      amount,
			Description: cellValue(row, descIdx),
		}

		if err := params.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		parsed.Params = append(parsed.Params, params)
	}

	return parsed, nil
}

// parseRowAmount reports ok=false for rows that carry no movement.
func parseRowAmount(p *Profile, cols colIndex, row []string) (operation.Category, decimal.Decimal, bool, error) {
	switch p.AmountMode {
	case amountCategorised:
		amountIdx, _ := cols.find(p.AmountCol)
		categoryIdx, _ := cols.find(p.CategoryCol)

		return parseCategorised(cellValue(row, categoryIdx), cellValue(row, amountIdx))
	case amountSigned:
		amountIdx, _ := cols.find(p.AmountCol)

		return parseSigned(cellValue(row, amountIdx))
	case amountSplit:
		debitIdx, _ := cols.find(p.DebitCol)
		creditIdx, _ := cols.find(p.CreditCol)

		return parseSplit(cellValue(row, debitIdx), cellValue(row, creditIdx))
	}

	return "", decimal.Zero, false, nil
}

func parseCategorised(categoryCell, amountCell string) (operation.Category, decimal.Decimal, bool, error) {
	if amountCell == "" && categoryCell == "" {
		return "", decimal.Zero, false, nil
	}

	category, err := operation.ParseCategory(categoryCell)
	if err != nil {
		return "", decimal.Zero, false, err
	}

	amount, err := parseAmount(amountCell)
	if err != nil {
		return "", decimal.Zero, false, fmt.Errorf("%w: %q", operation.ErrInvalidAmount, amountCell)
	}

	return category, amount, true, nil
}

func parseSigned(cell string) (operation.Category, decimal.Decimal, bool, error) {
	amount, err := parseAmount(cell)
	if errors.Is(err, errEmptyAmount) {
		return "", decimal.Zero, false, nil
	}

	if err != nil {
		return "", decimal.Zero, false, fmt.Errorf("%w: %q", operation.ErrInvalidAmount, cell)
	}

	if amount.IsZero() {
		return "", decimal.Zero, false, nil
	}

	if amount.IsNegative() {
		return operation.CategoryExpense, amount.Neg(), true, nil
	}

	return operation.CategoryIncome, amount, true, nil
}

func parseSplit(debitCell, creditCell string) (operation.Category, decimal.Decimal, bool, error) {
	for _, side := range []struct {
		cell     string
		category operation.Category
	}{
		{debitCell, operation.CategoryExpense},
		{creditCell, operation.CategoryIncome},
	} {
		amount, err := parseAmount(side.cell)
		if errors.Is(err, errEmptyAmount) {
			continue
		}

		if err != nil {
			return "", decimal.Zero, false, fmt.Errorf("%w: %q", operation.ErrInvalidAmount, side.cell)
		}

		if !amount.IsZero() {
			return side.category, amount.Abs(), true, nil
		}
	}

	return "", decimal.Zero, false, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
