package core

// SpentInInterval sums the amounts of the expense transactions that match the
// target category (exact, case-sensitive) and whose date falls inside the
// interval, endpoints included.
//
// Records whose date is unusable (zero value, typically a failed parse at the
// persistence boundary) are skipped rather than failing the whole
// aggregation; the second return value counts them so callers can surface a
// diagnostic. Income transactions and other categories never contribute.
//
// The function is pure: it reads only its parameters and never consults the
// system clock.
func SpentInInterval(txs []Transaction, category string, iv Interval) (Money, int) {
	var total int64
	skipped := 0
	for _, t := range txs {
		if t.Type != Expense || t.Category != category {
			continue
		}
		if t.Date.IsZero() {
			skipped++
			continue
		}
		if !iv.Contains(t.Date) {
			continue
		}
		total += t.Amount.Cents
	}
	return Money{Cents: total}, skipped
}

// ProgressPercent converts a spent/limit pair into an integer percentage,
// rounded half up. A non-positive limit yields 0 so the function stays total
// for malformed or freshly-created budgets; values over 100 are valid and
// signal over-budget.
func ProgressPercent(spent, limit Money) int {
	if limit.Cents <= 0 {
		return 0
	}
	return int((spent.Cents*100 + limit.Cents/2) / limit.Cents)
}

// OverageAmount returns spent-limit when spending exceeds the limit, zero
// otherwise.
func OverageAmount(spent, limit Money) Money {
	if spent.Cents > limit.Cents {
		return Money{Cents: spent.Cents - limit.Cents}
	}
	return Money{}
}

// BudgetProgress is one budget joined with its recomputed spending figures
// for the period instance containing the reference instant.
type BudgetProgress struct {
	Budget    Budget
	Interval  Interval
	Spent     Money
	Remaining Money // Limit - Spent; negative when over budget
	Overage   Money // positive part of Spent - Limit
	Percent   int
	Skipped   int // transactions ignored because of unusable dates
}

// ProgressFor recomputes one budget's spending against a transaction
// snapshot at the given reference instant.
func ProgressFor(b Budget, txs []Transaction, ref Date) BudgetProgress {
	iv := ResolvePeriod(b.Period, ref.Time)
	spent, skipped := SpentInInterval(txs, b.Category, iv)
	return BudgetProgress{
		Budget:    b,
		Interval:  iv,
		Spent:     spent,
		Remaining: Money{Cents: b.Limit.Cents - spent.Cents},
		Overage:   OverageAmount(spent, b.Limit),
		Percent:   ProgressPercent(spent, b.Limit),
		Skipped:   skipped,
	}
}

// BudgetReport recomputes every budget in the snapshot. Order follows the
// input slice.
func BudgetReport(budgets []Budget, txs []Transaction, ref Date) []BudgetProgress {
	out := make([]BudgetProgress, len(budgets))
	for i, b := range budgets {
		out[i] = ProgressFor(b, txs, ref)
	}
	return out
}
