package core

import (
	"testing"
	"time"
)

func simFixture() ([]Transaction, []Budget, time.Time) {
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),
		tx("Food", Expense, 1000, NewDate(2024, 2, 20)),
	}
	budgets := []Budget{
		{ID: "b1", Category: "Food", Limit: Money{Cents: 3000}, Period: Monthly},
	}
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	return txs, budgets, now
}

func TestSimulatePaymentOverBudget(t *testing.T) {
	txs, budgets, now := simFixture()

	// remaining = 30 - 40 = -10, so a 25 payment overshoots by 35
	sim := SimulatePayment(Money{Cents: 2500}, "Food", txs, budgets, now, MatchBudgetPeriod)
	if sim.Outcome != OverBudget {
		t.Fatalf("outcome = %s, want %s", sim.Outcome, OverBudget)
	}
	if sim.Remaining.Cents != -1000 {
		t.Errorf("remaining = %d, want -1000", sim.Remaining.Cents)
	}
	if sim.Overage.Cents != 3500 {
		t.Errorf("overage = %d, want 3500", sim.Overage.Cents)
	}
	if sim.Budget == nil || sim.Budget.ID != "b1" {
		t.Errorf("matched budget = %+v, want b1", sim.Budget)
	}
}

func TestSimulatePaymentWithinBudget(t *testing.T) {
	budgets := []Budget{
		{ID: "b1", Category: "Food", Limit: Money{Cents: 10000}, Period: Monthly},
	}
	txs := []Transaction{tx("Food", Expense, 4000, NewDate(2024, 3, 5))}
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sim := SimulatePayment(Money{Cents: 2500}, "Food", txs, budgets, now, MatchBudgetPeriod)
	if sim.Outcome != WithinBudget {
		t.Fatalf("outcome = %s, want %s", sim.Outcome, WithinBudget)
	}
	if sim.Remaining.Cents != 6000 {
		t.Errorf("remaining = %d, want 6000", sim.Remaining.Cents)
	}
	if sim.Overage.Cents != 0 {
		t.Errorf("overage = %d, want 0", sim.Overage.Cents)
	}
}

func TestSimulatePaymentNoBudgetFound(t *testing.T) {
	txs, budgets, now := simFixture()

	sim := SimulatePayment(Money{Cents: 2500}, "Travel", txs, budgets, now, MatchBudgetPeriod)
	if sim.Outcome != NoBudgetFound {
		t.Fatalf("outcome = %s, want %s", sim.Outcome, NoBudgetFound)
	}
	if sim.Budget != nil {
		t.Errorf("budget = %+v, want nil", sim.Budget)
	}
}

func TestSimulatePaymentExactRemainingIsWithin(t *testing.T) {
	budgets := []Budget{
		{ID: "b1", Category: "Food", Limit: Money{Cents: 5000}, Period: Monthly},
	}
	txs := []Transaction{tx("Food", Expense, 3000, NewDate(2024, 3, 5))}
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	sim := SimulatePayment(Money{Cents: 2000}, "Food", txs, budgets, now, MatchBudgetPeriod)
	if sim.Outcome != WithinBudget {
		t.Errorf("amount == remaining should be %s, got %s", WithinBudget, sim.Outcome)
	}
}

func TestSimulatePaymentMonthlyOnlyPolicy(t *testing.T) {
	budgets := []Budget{
		{ID: "b1", Category: "Food", Limit: Money{Cents: 5000}, Period: Weekly},
	}
	txs := []Transaction{}
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// Under the legacy policy a weekly budget is invisible to the check.
	sim := SimulatePayment(Money{Cents: 100}, "Food", txs, budgets, now, MatchMonthlyOnly)
	if sim.Outcome != NoBudgetFound {
		t.Errorf("legacy policy outcome = %s, want %s", sim.Outcome, NoBudgetFound)
	}

	// The default policy resolves the budget's own period.
	sim = SimulatePayment(Money{Cents: 100}, "Food", txs, budgets, now, MatchBudgetPeriod)
	if sim.Outcome != WithinBudget {
		t.Errorf("default policy outcome = %s, want %s", sim.Outcome, WithinBudget)
	}
	if sim.Interval.Start != NewDate(2024, 3, 4) {
		t.Errorf("weekly interval start = %v, want 2024-03-04", sim.Interval.Start)
	}
}

func TestSimulatePaymentIsReadOnly(t *testing.T) {
	txs, budgets, now := simFixture()
	before := len(txs)

	_ = SimulatePayment(Money{Cents: 2500}, "Food", txs, budgets, now, MatchBudgetPeriod)
	_ = SimulatePayment(Money{Cents: 2500}, "Food", txs, budgets, now, MatchBudgetPeriod)

	if len(txs) != before {
		t.Errorf("simulation must not record transactions")
	}
}
