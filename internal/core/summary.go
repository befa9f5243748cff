package core

import "sort"

// CategoryAmount represents an amount aggregated by category name.
type CategoryAmount struct {
	Name   string
	Amount Money
}

// MonthSummary is a compact dashboard summary for a specific year+month.
type MonthSummary struct {
	Year       int
	Month      int // 1-12
	Income     Money
	Expenses   Money
	Balance    Money // Income - Expenses
	ByCategory []CategoryAmount
	Skipped    int // records ignored because of unusable dates
}

// BuildMonthSummary aggregates a transaction snapshot for one calendar
// month. Per-category rows cover expenses only and are sorted by amount,
// largest first, with name as tiebreaker for stable output.
func BuildMonthSummary(txs []Transaction, year, month int) MonthSummary {
	s := MonthSummary{Year: year, Month: month}
	iv := Interval{
		Start: NewDate(year, month, 1),
		End:   NewDate(year, month+1, 0),
	}

	byCat := map[string]int64{}
	for _, t := range txs {
		if t.Date.IsZero() {
			s.Skipped++
			continue
		}
		if !iv.Contains(t.Date) {
			continue
		}
		switch t.Type {
		case Income:
			s.Income.Cents += t.Amount.Cents
		case Expense:
			s.Expenses.Cents += t.Amount.Cents
			byCat[t.Category] += t.Amount.Cents
		}
	}
	s.Balance = Money{Cents: s.Income.Cents - s.Expenses.Cents}

	for name, cents := range byCat {
		s.ByCategory = append(s.ByCategory, CategoryAmount{Name: name, Amount: Money{Cents: cents}})
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		if s.ByCategory[i].Amount.Cents != s.ByCategory[j].Amount.Cents {
			return s.ByCategory[i].Amount.Cents > s.ByCategory[j].Amount.Cents
		}
		return s.ByCategory[i].Name < s.ByCategory[j].Name
	})
	return s
}
