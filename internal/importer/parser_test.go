package importer_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/MrJamesThe3rd/ledger/internal/encoding"
	"github.com/MrJamesThe3rd/ledger/internal/importer"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
)

func parse(t *testing.T, in string) *importer.Parsed {
	t.Helper()

	parsed, err := importer.NewParser().Parse(strings.NewReader(in))
	require.NoError(t, err)

	return parsed
}

func assertAmount(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestParser_Ledger(t *testing.T) {
	csv := `date;category;amount;description
01-05-2024 10:30:00;income;14.00;salary
01-05-2024 10:31:00;expense;12.50;coffee
`

	parsed := parse(t, csv)
	assert.Equal(t, "ledger", parsed.Profile)
	require.Len(t, parsed.Params, 2)

	assert.Equal(t, operation.CategoryIncome, parsed.Params[0].Category)
	assertAmount(t, "14", parsed.Params[0].Amount)
	assert.Equal(t, "salary", parsed.Params[0].Description)

	assert.Equal(t, operation.CategoryExpense, parsed.Params[1].Category)
	assertAmount(t, "12.5", parsed.Params[1].Amount)
	assert.Empty(t, parsed.Params[1].ID)
}

func TestParser_LedgerCommaDelimited(t *testing.T) {
	csv := "Category,Amount,Description\nexpense,\"1.234,56\",rent\n"

	parsed := parse(t, csv)
	assert.Equal(t, "ledger", parsed.Profile)
	require.Len(t, parsed.Params, 1)
	assertAmount(t, "1234.56", parsed.Params[0].Amount)
}

func TestParser_Statement(t *testing.T) {
	csv := `Consultar saldos e movimentos à ordem - 31-01-2026
Saldo contabilístico;1.000,00 EUR

Data mov.;Data-valor;Descrição;Montante;Saldo contabilístico após movimento
30-01-2026;30-01-2026;INSTITUTO GESTAO;-588,74;48.825,46
09-01-2026;09-01-2026;TFI Wise;8.608,52;52.532,78
10-01-2026;10-01-2026;NOOP;0,00;52.532,78
Totais;;;;
`

	parsed := parse(t, csv)
	assert.Equal(t, "statement", parsed.Profile)
	assert.Equal(t, 2, parsed.Skipped)
	require.Len(t, parsed.Params, 2)

	assert.Equal(t, operation.CategoryExpense, parsed.Params[0].Category)
	assertAmount(t, "588.74", parsed.Params[0].Amount)
	assert.Equal(t, "INSTITUTO GESTAO", parsed.Params[0].Description)

	assert.Equal(t, operation.CategoryIncome, parsed.Params[1].Category)
	assertAmount(t, "8608.52", parsed.Params[1].Amount)
}

func TestParser_Card(t *testing.T) {
	csv := `Data ;Data valor ;Descrição ;Débito ;Crédito ;
16-12-2025 ;14-12-2025 ;PA GONDOMAR ;64,00 ; ;
16-12-2025 ;14-12-2025 ;REFUND AMAZON ;  ;25,00 ;
 ; ; ; ;;
`

	parsed := parse(t, csv)
	assert.Equal(t, "card", parsed.Profile)
	require.Len(t, parsed.Params, 2)

	assert.Equal(t, operation.CategoryExpense, parsed.Params[0].Category)
	assertAmount(t, "64", parsed.Params[0].Amount)
	assert.Equal(t, operation.CategoryIncome, parsed.Params[1].Category)
	assertAmount(t, "25", parsed.Params[1].Amount)
}

func TestParser_Windows1252(t *testing.T) {
	latin1, err := charmap.Windows1252.NewEncoder().Bytes([]byte("Descrição;Montante\nCAFÉ CENTRAL;-10,00\n"))
	require.NoError(t, err)

	parsed, err := importer.NewParser().Parse(bytes.NewReader(latin1))
	require.NoError(t, err)
	require.Len(t, parsed.Params, 1)

	assert.Equal(t, "CAFÉ CENTRAL", parsed.Params[0].Description)
	assert.NotEqual(t, encoding.UTF8, parsed.Charset)
}

func TestParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		csv     string
		wantErr error
		row     string
	}{
		{name: "Empty", csv: "", wantErr: importer.ErrUnknownFormat},
		{name: "NoKnownHeader", csv: "foo;bar\n1;2\n", wantErr: importer.ErrUnknownFormat},
		{name: "BadCategory", csv: "category;amount;description\ngift;1;x\n", wantErr: operation.ErrInvalidCategory, row: "row 2"},
		{name: "BadAmount", csv: "description;amount\nx;abc\n", wantErr: operation.ErrInvalidAmount, row: "row 2"},
		{name: "AmountTooLarge", csv: "description;amount\nok;1\nx;-1.000.000,01\n", wantErr: operation.ErrInvalidAmount, row: "row 3"},
		{name: "MissingDescription", csv: "description;amount\n;-10,00\n", wantErr: operation.ErrInvalidDescription, row: "row 2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser().Parse(strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, tt.wantErr)

			if tt.row != "" {
				assert.ErrorContains(t, err, tt.row)
			}
		})
	}
}

func TestParser_HeaderOnly(t *testing.T) {
	parsed := parse(t, "category;amount;description\n")
	assert.Empty(t, parsed.Params)
}
