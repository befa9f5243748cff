package core

import (
	"testing"
)

func tx(cat string, typ TransactionType, cents int64, d Date) Transaction {
	return Transaction{
		ID:          "t-" + cat,
		Description: "test",
		Amount:      Money{Cents: cents},
		Type:        typ,
		Category:    cat,
		Date:        d,
	}
}

func TestSpentInIntervalFilters(t *testing.T) {
	march := Interval{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),   // counts
		tx("Food", Expense, 1000, NewDate(2024, 2, 20)),  // outside interval
		tx("Food", Income, 9999, NewDate(2024, 3, 6)),    // income never contributes
		tx("Travel", Expense, 2500, NewDate(2024, 3, 7)), // other category
		tx("food", Expense, 500, NewDate(2024, 3, 8)),    // case-sensitive mismatch
	}

	spent, skipped := SpentInInterval(txs, "Food", march)
	if spent.Cents != 4000 {
		t.Errorf("spent = %d, want 4000", spent.Cents)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
}

func TestSpentInIntervalEmptyAndNoMatch(t *testing.T) {
	march := Interval{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}

	if spent, _ := SpentInInterval(nil, "Food", march); spent.Cents != 0 {
		t.Errorf("empty collection: spent = %d, want 0", spent.Cents)
	}

	txs := []Transaction{tx("Travel", Expense, 100, NewDate(2024, 3, 2))}
	if spent, _ := SpentInInterval(txs, "Food", march); spent.Cents != 0 {
		t.Errorf("no matching category: spent = %d, want 0", spent.Cents)
	}
}

func TestSpentInIntervalSkipsUnusableDates(t *testing.T) {
	march := Interval{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),
		tx("Food", Expense, 1234, Date{}), // failed parse upstream
	}
	spent, skipped := SpentInInterval(txs, "Food", march)
	if spent.Cents != 4000 {
		t.Errorf("spent = %d, want 4000 (bad record must not contribute)", spent.Cents)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
}

func TestSpentInIntervalIdempotent(t *testing.T) {
	march := Interval{Start: NewDate(2024, 3, 1), End: NewDate(2024, 3, 31)}
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),
		tx("Food", Expense, 999, NewDate(2024, 3, 9)),
	}
	a, _ := SpentInInterval(txs, "Food", march)
	b, _ := SpentInInterval(txs, "Food", march)
	if a != b {
		t.Errorf("two identical calls disagree: %v vs %v", a, b)
	}
}

func TestProgressPercent(t *testing.T) {
	tests := []struct {
		name  string
		spent int64
		limit int64
		want  int
	}{
		{"zero spent", 0, 10000, 0},
		{"at limit", 10000, 10000, 100},
		{"over limit is not clamped", 15000, 10000, 150},
		{"zero limit is defined as zero", 12345, 0, 0},
		{"negative limit treated like zero", 100, -50, 0},
		{"rounds half up", 335, 1000, 34},
		{"rounds down below half", 334, 1000, 33},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ProgressPercent(Money{Cents: tt.spent}, Money{Cents: tt.limit})
			if got != tt.want {
				t.Errorf("ProgressPercent(%d, %d) = %d, want %d", tt.spent, tt.limit, got, tt.want)
			}
		})
	}
}

func TestOverageAmount(t *testing.T) {
	if got := OverageAmount(Money{Cents: 4000}, Money{Cents: 3000}); got.Cents != 1000 {
		t.Errorf("overage = %d, want 1000", got.Cents)
	}
	if got := OverageAmount(Money{Cents: 2000}, Money{Cents: 3000}); got.Cents != 0 {
		t.Errorf("under budget overage = %d, want 0", got.Cents)
	}
}

// Scenario from the budgets view: 40 spent in March against a 30 monthly
// limit, with a February record that must not leak in.
func TestProgressForMarchFoodScenario(t *testing.T) {
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),
		tx("Food", Expense, 1000, NewDate(2024, 2, 20)),
	}
	b := Budget{ID: "b1", Category: "Food", Limit: Money{Cents: 3000}, Period: Monthly}
	now := NewDate(2024, 3, 10)

	p := ProgressFor(b, txs, now)
	if p.Spent.Cents != 4000 {
		t.Errorf("spent = %d, want 4000", p.Spent.Cents)
	}
	if p.Percent != 133 {
		t.Errorf("percent = %d, want 133", p.Percent)
	}
	if p.Overage.Cents != 1000 {
		t.Errorf("overage = %d, want 1000", p.Overage.Cents)
	}
	if p.Remaining.Cents != -1000 {
		t.Errorf("remaining = %d, want -1000", p.Remaining.Cents)
	}
}

func TestBuildMonthSummary(t *testing.T) {
	txs := []Transaction{
		tx("Food", Expense, 4000, NewDate(2024, 3, 5)),
		tx("Travel", Expense, 2000, NewDate(2024, 3, 6)),
		tx("Salary", Income, 100000, NewDate(2024, 3, 1)),
		tx("Food", Expense, 500, NewDate(2024, 4, 1)), // next month
	}
	s := BuildMonthSummary(txs, 2024, 3)
	if s.Income.Cents != 100000 {
		t.Errorf("income = %d, want 100000", s.Income.Cents)
	}
	if s.Expenses.Cents != 6000 {
		t.Errorf("expenses = %d, want 6000", s.Expenses.Cents)
	}
	if s.Balance.Cents != 94000 {
		t.Errorf("balance = %d, want 94000", s.Balance.Cents)
	}
	if len(s.ByCategory) != 2 || s.ByCategory[0].Name != "Food" {
		t.Errorf("by-category rows = %+v, want Food first", s.ByCategory)
	}
}
