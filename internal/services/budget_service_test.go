package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/ledger/memory"
)

func seedMarchFixture(t *testing.T, store ledger.Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.CreateBudget(ctx, core.Budget{
		ID:       "b-food",
		Category: "Food",
		Limit:    core.Money{Cents: 3000},
		Period:   core.Monthly,
	}))

	txs := []core.Transaction{
		{ID: "t1", Description: "groceries", Amount: core.Money{Cents: 2500},
			Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 3, 5)},
		{ID: "t2", Description: "snacks", Amount: core.Money{Cents: 1500},
			Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 3, 8)},
		{ID: "t3", Description: "salary", Amount: core.Money{Cents: 200000},
			Type: core.Income, Category: "Salary", Date: core.NewDate(2024, 3, 1)},
	}
	for _, tx := range txs {
		require.NoError(t, store.CreateTransaction(ctx, tx))
	}
}

func TestCreateBudgetEnforcesUniqueness(t *testing.T) {
	store := memory.New()
	svc := NewBudgetService(store, core.MatchBudgetPeriod)
	ctx := context.Background()

	_, err := svc.CreateBudget(ctx, core.Budget{
		Category: "Food", Limit: core.Money{Cents: 3000}, Period: core.Monthly,
	})
	require.NoError(t, err)

	_, err = svc.CreateBudget(ctx, core.Budget{
		Category: "Food", Limit: core.Money{Cents: 5000}, Period: core.Monthly,
	})
	require.ErrorIs(t, err, ledger.ErrDuplicateBudget)

	// Same category with a different period is a distinct budget.
	_, err = svc.CreateBudget(ctx, core.Budget{
		Category: "Food", Limit: core.Money{Cents: 1000}, Period: core.Weekly,
	})
	require.NoError(t, err)
}

func TestBudgetReportMarchScenario(t *testing.T) {
	store := memory.New()
	seedMarchFixture(t, store)
	svc := NewBudgetService(store, core.MatchBudgetPeriod)

	ref := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	report, err := svc.Report(context.Background(), ref)
	require.NoError(t, err)
	require.Len(t, report, 1)

	p := report[0]
	require.Equal(t, int64(4000), p.Spent.Cents)
	require.Equal(t, 133, p.Percent)
	require.Equal(t, int64(-1000), p.Remaining.Cents)
	require.Equal(t, int64(1000), p.Overage.Cents)
}

func TestSimulateOverBudget(t *testing.T) {
	store := memory.New()
	seedMarchFixture(t, store)
	svc := NewBudgetService(store, core.MatchBudgetPeriod)

	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	sim, err := svc.Simulate(context.Background(), core.Money{Cents: 2500}, "Food", ref)
	require.NoError(t, err)
	require.Equal(t, core.OverBudget, sim.Outcome)
	require.Equal(t, int64(3500), sim.Overage.Cents)
}

func TestSimulateNoBudgetFound(t *testing.T) {
	store := memory.New()
	seedMarchFixture(t, store)
	svc := NewBudgetService(store, core.MatchBudgetPeriod)

	ref := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	sim, err := svc.Simulate(context.Background(), core.Money{Cents: 2500}, "Travel", ref)
	require.NoError(t, err)
	require.Equal(t, core.NoBudgetFound, sim.Outcome)
	require.Nil(t, sim.Budget)
}

func TestSimulateValidatesInput(t *testing.T) {
	svc := NewBudgetService(memory.New(), core.MatchBudgetPeriod)
	ref := time.Now()

	_, err := svc.Simulate(context.Background(), core.Money{Cents: 0}, "Food", ref)
	require.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = svc.Simulate(context.Background(), core.Money{Cents: 100}, "   ", ref)
	require.ErrorIs(t, err, core.ErrEmptyCategory)
}

func TestUpdateBudgetRoundTrip(t *testing.T) {
	store := memory.New()
	svc := NewBudgetService(store, core.MatchBudgetPeriod)
	ctx := context.Background()

	b, err := svc.CreateBudget(ctx, core.Budget{
		Category: "Food", Limit: core.Money{Cents: 3000}, Period: core.Monthly,
	})
	require.NoError(t, err)

	b.Limit = core.Money{Cents: 4500}
	require.NoError(t, svc.UpdateBudget(ctx, b))

	got, err := svc.GetBudget(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, int64(4500), got.Limit.Cents)
}
