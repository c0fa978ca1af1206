package importer

import "strings"

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned is one signed column; negative values are expenses.
	amountSigned amountMode = iota
	// amountCategorised is an unsigned column next to an explicit category column.
	amountCategorised
	// amountSplit is separate debit and credit columns.
	amountSplit
)

// column lists the header names accepted for one field, compared case-insensitively.
type column []string

// Profile describes the column layout of a CSV file the importer understands.
type Profile struct {
	Name        string
	DescCol     column
	AmountMode  amountMode
	AmountCol   column // amountSigned and amountCategorised
	CategoryCol column // amountCategorised
	DebitCol    column // amountSplit
	CreditCol   column // amountSplit
}

func (p *Profile) requiredCols() []column {
	cols := []column{p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountCategorised:
		cols = append(cols, p.CategoryCol, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles are tried in order; more specific layouts come first.
var profiles = []Profile{
	{
		Name:        "ledger",
		DescCol:     column{"description"},
		AmountMode:  amountCategorised,
		AmountCol:   column{"amount"},
		CategoryCol: column{"category"},
	},
	{
		Name:       "card",
		DescCol:    column{"description", "descrição"},
		AmountMode: amountSplit,
		DebitCol:   column{"debit", "débito"},
		CreditCol:  column{"credit", "crédito"},
	},
	{
		Name:       "statement",
		DescCol:    column{"description", "descrição"},
		AmountMode: amountSigned,
		AmountCol:  column{"amount", "montante", "movimento"},
	},
}

// colIndex maps normalised header names to their index in the row.
type colIndex map[string]int

func newColIndex(row []string) colIndex {
	cols := make(colIndex)

	for i, cell := range row {
		name := normalise(cell)
		if _, seen := cols[name]; name != "" && !seen {
			cols[name] = i
		}
	}

	return cols
}

// find returns the index of the first accepted header name present in the row.
func (c colIndex) find(col column) (int, bool) {
	for _, name := range col {
		if i, ok := c[name]; ok {
			return i, true
		}
	}

	return -1, false
}

func (c colIndex) matches(p *Profile) bool {
	for _, col := range p.requiredCols() {
		if _, ok := c.find(col); !ok {
			return false
		}
	}

	return true
}

func normalise(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
