package store_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/ledger/internal/operation"
	"github.com/MrJamesThe3rd/ledger/internal/operation/store"
)

const fixtureID = "a5d569f8-3d3e-491d-a8b3-04996a89ed52"

func newStore(t *testing.T) *store.Store {
	t.Helper()

	s := store.New(filepath.Join(t.TempDir(), "operations.json"))
	require.NoError(t, s.Init(context.Background()))

	return s
}

func create(t *testing.T, s *store.Store, category operation.Category, amount string) *operation.Operation {
	t.Helper()

	op := &operation.Operation{
		Category:    category,
		Amount:      decimal.RequireFromString(amount),
		Description: "description",
	}
	require.NoError(t, s.CreateOperation(context.Background(), op))

	return op
}

func TestStore_CreateAndGet(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	before := time.Now().Truncate(time.Microsecond)

	op := create(t, s, operation.CategoryIncome, "14.25")

	_, err := uuid.Parse(op.ID)
	require.NoError(t, err)

	got, err := s.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, op.ID, got.ID)
	assert.Equal(t, operation.CategoryIncome, got.Category)
	assert.True(t, decimal.RequireFromString("14.25").Equal(got.Amount))
	assert.Equal(t, "description", got.Description)
	assert.False(t, got.CreatedAt.Before(before))
	assert.True(t, op.CreatedAt.Equal(got.CreatedAt))
}

func TestStore_GeneratedIDCollisionIsRetried(t *testing.T) {
	s := newStore(t)
	ids := []string{"first", "first", "first", "second"}
	s.SetIDGenerator(func() string {
		id := ids[0]
		ids = ids[1:]

		return id
	})

	a := create(t, s, operation.CategoryIncome, "1")
	b := create(t, s, operation.CategoryIncome, "2")

	assert.Equal(t, "first", a.ID)
	assert.Equal(t, "second", b.ID)

	all, err := s.ListOperations(context.Background(), nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestStore_SuppliedID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	op := &operation.Operation{ID: fixtureID, Category: operation.CategoryIncome, Amount: decimal.NewFromInt(666), Description: "test"}
	require.NoError(t, s.CreateOperation(ctx, op))
	assert.Equal(t, fixtureID, op.ID)

	dup := &operation.Operation{ID: fixtureID, Category: operation.CategoryExpense, Amount: decimal.NewFromInt(1), Description: "dup"}
	err := s.CreateOperation(ctx, dup)
	assert.ErrorIs(t, err, operation.ErrRecordExists)

	got, err := s.GetOperation(ctx, fixtureID)
	require.NoError(t, err)
	assert.Equal(t, "test", got.Description)
}

func TestStore_CreateOperations_AllOrNothing(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	existing := create(t, s, operation.CategoryIncome, "10")

	batch := []*operation.Operation{
		{Category: operation.CategoryExpense, Amount: decimal.NewFromInt(1), Description: "a"},
		{ID: existing.ID, Category: operation.CategoryExpense, Amount: decimal.NewFromInt(2), Description: "b"},
	}
	assert.ErrorIs(t, s.CreateOperations(ctx, batch), operation.ErrRecordExists)

	assert.Empty(t, batch[0].ID, "a failed batch must not touch the caller's operations")
	assert.True(t, batch[0].CreatedAt.IsZero())

	all, err := s.ListOperations(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	batch = []*operation.Operation{
		{Category: operation.CategoryExpense, Amount: decimal.NewFromInt(1), Description: "a"},
		{Category: operation.CategoryExpense, Amount: decimal.NewFromInt(2), Description: "b"},
	}
	require.NoError(t, s.CreateOperations(ctx, batch))

	all, err = s.ListOperations(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "a", all[1].Description)
	assert.Equal(t, "b", all[2].Description)
	assert.Equal(t, all[1].ID, batch[0].ID)
	assert.Equal(t, all[2].ID, batch[1].ID)
	assert.False(t, batch[1].CreatedAt.IsZero())
}

func TestStore_UpdateKeepsUnsetFields(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	op := create(t, s, operation.CategoryIncome, "666")
	category := operation.CategoryExpense

	require.NoError(t, s.UpdateOperation(ctx, op.ID, operation.UpdateParams{Category: &category}))

	got, err := s.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.Equal(t, operation.CategoryExpense, got.Category)
	assert.True(t, decimal.NewFromInt(666).Equal(got.Amount))
	assert.Equal(t, "description", got.Description)
	assert.True(t, op.CreatedAt.Equal(got.CreatedAt))

	zero := decimal.Zero
	require.NoError(t, s.UpdateOperation(ctx, op.ID, operation.UpdateParams{Amount: &zero}))

	got, err = s.GetOperation(ctx, op.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.IsZero())
}

func TestStore_MissingID(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	missing := "96395705-58cf-4806-ab40-b6b7c31f0b20"
	category := operation.CategoryIncome

	_, err := s.GetOperation(ctx, missing)
	assert.ErrorIs(t, err, operation.ErrRecordNotFound)

	assert.ErrorIs(t, s.UpdateOperation(ctx, missing, operation.UpdateParams{Category: &category}), operation.ErrRecordNotFound)
	assert.ErrorIs(t, s.DeleteOperation(ctx, missing), operation.ErrRecordNotFound)
}

func TestStore_Delete(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	a := create(t, s, operation.CategoryIncome, "1")
	b := create(t, s, operation.CategoryIncome, "2")
	c := create(t, s, operation.CategoryIncome, "3")

	require.NoError(t, s.DeleteOperation(ctx, b.ID))

	all, err := s.ListOperations(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, a.ID, all[0].ID)
	assert.Equal(t, c.ID, all[1].ID)

	_, err = s.GetOperation(ctx, b.ID)
	assert.ErrorIs(t, err, operation.ErrRecordNotFound)
}

func TestStore_Filters(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	day := time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local)
	clock := []time.Time{
		day.Add(30 * time.Minute),
		day.Add(23*time.Hour + 59*time.Minute),
		day.AddDate(0, 0, 1),
		day.Add(12 * time.Hour),
	}
	s.SetClock(func() time.Time {
		now := clock[0]
		clock = clock[1:]

		return now
	})

	create(t, s, operation.CategoryIncome, "14")
	create(t, s, operation.CategoryExpense, "23")
	create(t, s, operation.CategoryIncome, "500")
	create(t, s, operation.CategoryExpense, "14.0")

	incomes, err := s.ListOperations(ctx, operation.CategoryFilter{Category: operation.CategoryIncome})
	require.NoError(t, err)
	assert.Len(t, incomes, 2)

	for _, op := range incomes {
		assert.Equal(t, operation.CategoryIncome, op.Category)
	}

	fourteens, err := s.ListOperations(ctx, operation.AmountFilter{Amount: decimal.NewFromInt(14)})
	require.NoError(t, err)
	assert.Len(t, fourteens, 2)

	none, err := s.ListOperations(ctx, operation.AmountFilter{Amount: decimal.NewFromInt(9823)})
	require.NoError(t, err)
	assert.Empty(t, none)

	onDay, err := s.ListOperations(ctx, operation.DateFilter{Day: day})
	require.NoError(t, err)
	assert.Len(t, onDay, 3)
}

func TestStore_FileLayout(t *testing.T) {
	s := newStore(t)
	s.SetIDGenerator(func() string { return fixtureID })
	s.SetClock(func() time.Time { return time.Date(2024, 5, 1, 10, 30, 0, 123456000, time.Local) })

	create(t, s, operation.CategoryExpense, "12.5")

	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)

	want := `{
  "a5d569f8-3d3e-491d-a8b3-04996a89ed52": {
    "date": "2024-05-01T10:30:00.123456",
    "category": "expense",
    "amount": 12.5,
    "description": "description"
  }
}
`
	assert.Equal(t, want, string(data))

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")
}

func TestStore_ReadsKeyOrderAndOptionalFraction(t *testing.T) {
	path := filepath.Join(t.TempDir(), "operations.json")
	content := `{
  "z": {"date": "2024-01-02T03:04:05", "category": "income", "amount": 1, "description": "first"},
  "a": {"date": "2024-01-02T03:04:05.5", "category": "expense", "amount": 2.75, "description": "second"}
}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ops, err := store.New(path).ListOperations(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, "z", ops[0].ID)
	assert.Equal(t, "a", ops[1].ID)
	assert.Equal(t, 500*time.Millisecond, time.Duration(ops[1].CreatedAt.Nanosecond()))
}

func TestStore_Unavailable(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	missing := store.New(filepath.Join(dir, "missing.json"))
	_, err := missing.ListOperations(ctx, nil)
	assert.ErrorIs(t, err, operation.ErrStoreUnavailable)

	corruptPath := filepath.Join(dir, "corrupt.json")
	require.NoError(t, os.WriteFile(corruptPath, []byte(`{"x": {"date": `), 0o644))

	corrupt := store.New(corruptPath)
	_, err = corrupt.GetOperation(ctx, "x")
	assert.ErrorIs(t, err, operation.ErrStoreUnavailable)

	err = corrupt.CreateOperation(ctx, &operation.Operation{Category: operation.CategoryIncome, Description: "x"})
	assert.ErrorIs(t, err, operation.ErrStoreUnavailable)
}

func TestStore_RejectsInvalidRecords(t *testing.T) {
	valid := `"a": {"date": "2024-01-02T03:04:05", "category": "income", "amount": 100, "description": "salary"}`

	tests := []struct {
		name   string
		record string
	}{
		{name: "UnknownCategory", record: `{"date": "2024-01-02T03:04:05", "category": "bonus", "amount": 1, "description": "x"}`},
		{name: "NegativeAmount", record: `{"date": "2024-01-02T03:04:05", "category": "expense", "amount": -5000000, "description": "x"}`},
		{name: "AmountTooLarge", record: `{"date": "2024-01-02T03:04:05", "category": "income", "amount": 1000000.01, "description": "x"}`},
		{name: "TooManyDecimals", record: `{"date": "2024-01-02T03:04:05", "category": "income", "amount": 0.005, "description": "x"}`},
		{name: "EmptyDescription", record: `{"date": "2024-01-02T03:04:05", "category": "income", "amount": 1, "description": ""}`},
		{name: "DescriptionTooLong", record: `{"date": "2024-01-02T03:04:05", "category": "income", "amount": 1, "description": "` + strings.Repeat("x", 51) + `"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "operations.json")
			require.NoError(t, os.WriteFile(path, []byte(`{"b": `+tt.record+`, `+valid+`}`), 0o644))

			s := store.New(path)

			_, err := s.ListOperations(context.Background(), nil)
			assert.ErrorIs(t, err, operation.ErrStoreUnavailable)

			_, err = operation.NewService(s).Balance(context.Background())
			assert.ErrorIs(t, err, operation.ErrStoreUnavailable)
		})
	}
}

func TestStore_InitAndReset(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "operations.json")
	s := store.New(path)

	require.NoError(t, s.Init(ctx))
	create(t, s, operation.CategoryIncome, "1")

	require.NoError(t, s.Init(ctx), "init must not truncate an existing store")

	all, err := s.ListOperations(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, s.Reset(ctx))

	all, err = s.ListOperations(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, all)
}
