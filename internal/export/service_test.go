package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/importer"
	"github.com/MrJamesThe3rd/ledger/internal/operation"
	"github.com/MrJamesThe3rd/ledger/internal/operation/store"
)

func newLedger(t *testing.T) *operation.Service {
	t.Helper()

	st := store.New(filepath.Join(t.TempDir(), "operations.json"))
	require.NoError(t, st.Init(context.Background()))

	return operation.NewService(st)
}

func fixedClock() time.Time {
	return time.Date(2024, 5, 1, 10, 30, 0, 0, time.Local)
}

func TestExportService_Export(t *testing.T) {
	ctx := context.Background()
	ledger := newLedger(t)

	_, err := ledger.CreateBatch(ctx, []operation.CreateParams{
		{Category: operation.CategoryIncome, Amount: decimal.NewFromInt(100), Description: "salary"},
		{Category: operation.CategoryExpense, Amount: decimal.RequireFromString("12.5"), Description: "coffee; large"},
		{Category: operation.CategoryExpense, Amount: decimal.NewFromInt(40), Description: "rent"},
	})
	require.NoError(t, err)

	svc := NewService(ledger)
	svc.now = fixedClock

	dir := filepath.Join(t.TempDir(), "exports")

	res, err := svc.Export(ctx, operation.CategoryFilter{Category: operation.CategoryExpense}, dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "operations_20240501_103000.csv"), res.Path)
	require.Len(t, res.Operations, 2)

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)

	created := res.Operations[0].CreatedAt.Format("02-01-2006 15:04:05")
	want := "date;category;amount;description\n" +
		created + ";expense;12.50;\"coffee; large\"\n" +
		created + ";expense;40.00;rent\n"
	assert.Equal(t, want, string(data))
}

func TestExportService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	source := newLedger(t)

	_, err := source.CreateBatch(ctx, []operation.CreateParams{
		{Category: operation.CategoryIncome, Amount: decimal.RequireFromString("1500.75"), Description: "salário"},
		{Category: operation.CategoryExpense, Amount: decimal.Zero, Description: "free sample"},
	})
	require.NoError(t, err)

	exporter := NewService(source)
	exporter.now = fixedClock

	res, err := exporter.Export(ctx, nil, t.TempDir())
	require.NoError(t, err)

	f, err := os.Open(res.Path)
	require.NoError(t, err)
	defer f.Close()

	target := newLedger(t)

	imported, err := importer.NewService(target).Import(ctx, f)
	require.NoError(t, err)
	assert.Equal(t, "ledger", imported.Profile)

	got, err := target.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)

	for i, op := range got {
		want := res.Operations[i]
		assert.Equal(t, want.Category, op.Category)
		assert.True(t, want.Amount.Equal(op.Amount))
		assert.Equal(t, want.Description, op.Description)
		assert.NotEqual(t, want.ID, op.ID)
	}
}

func TestExportService_GenerateSummary(t *testing.T) {
	day := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
	ops := []*operation.Operation{
		{Category: operation.CategoryIncome, Amount: decimal.NewFromInt(100), Description: "salary", CreatedAt: day},
		{Category: operation.CategoryExpense, Amount: decimal.RequireFromString("12.5"), Description: "coffee", CreatedAt: day},
	}

	want := "* 2024-05-01 | salary | +100.00\n" +
		"* 2024-05-01 | coffee | -12.50\n" +
		"Total: 87.50\n"

	assert.Equal(t, want, NewService(nil).GenerateSummary(ops))
}
