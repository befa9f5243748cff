package http

import (
	"fintrack/internal/core"
)

// Wire representations. Amounts travel both as decimal strings for display
// and as integer cents for arithmetic-safe clients.

type transactionJSON struct {
	ID          string `json:"id"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
}

func toTransactionJSON(t core.Transaction) transactionJSON {
	return transactionJSON{
		ID:          t.ID,
		Description: t.Description,
		Amount:      t.Amount.String(),
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        t.Date.Format(dateLayout),
	}
}

func toTransactionsJSON(txs []core.Transaction) []transactionJSON {
	out := make([]transactionJSON, len(txs))
	for i, t := range txs {
		out[i] = toTransactionJSON(t)
	}
	return out
}

type budgetJSON struct {
	ID         string `json:"id"`
	Category   string `json:"category"`
	Limit      string `json:"limit"`
	LimitCents int64  `json:"limit_cents"`
	Period     string `json:"period"`
}

func toBudgetJSON(b core.Budget) budgetJSON {
	return budgetJSON{
		ID:         b.ID,
		Category:   b.Category,
		Limit:      b.Limit.String(),
		LimitCents: b.Limit.Cents,
		Period:     string(b.Period),
	}
}

type intervalJSON struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type progressJSON struct {
	Budget         budgetJSON   `json:"budget"`
	Interval       intervalJSON `json:"interval"`
	Spent          string       `json:"spent"`
	SpentCents     int64        `json:"spent_cents"`
	RemainingCents int64        `json:"remaining_cents"`
	OverageCents   int64        `json:"overage_cents"`
	Percent        int          `json:"percent"`
	Skipped        int          `json:"skipped,omitempty"`
}

func toProgressJSON(p core.BudgetProgress) progressJSON {
	return progressJSON{
		Budget: toBudgetJSON(p.Budget),
		Interval: intervalJSON{
			Start: p.Interval.Start.Format(dateLayout),
			End:   p.Interval.End.Format(dateLayout),
		},
		Spent:          p.Spent.String(),
		SpentCents:     p.Spent.Cents,
		RemainingCents: p.Remaining.Cents,
		OverageCents:   p.Overage.Cents,
		Percent:        p.Percent,
		Skipped:        p.Skipped,
	}
}

type goalJSON struct {
	ID                 string `json:"id"`
	Description        string `json:"description"`
	TargetAmount       string `json:"target_amount"`
	TargetAmountCents  int64  `json:"target_amount_cents"`
	CurrentAmount      string `json:"current_amount"`
	CurrentAmountCents int64  `json:"current_amount_cents"`
	Deadline           string `json:"deadline,omitempty"`
	Achieved           bool   `json:"achieved"`
}

func toGoalJSON(g core.Goal) goalJSON {
	out := goalJSON{
		ID:                 g.ID,
		Description:        g.Description,
		TargetAmount:       g.TargetAmount.String(),
		TargetAmountCents:  g.TargetAmount.Cents,
		CurrentAmount:      g.CurrentAmount.String(),
		CurrentAmountCents: g.CurrentAmount.Cents,
		Achieved:           g.CurrentAmount.Cents >= g.TargetAmount.Cents,
	}
	if !g.Deadline.IsEmpty() {
		out.Deadline = g.Deadline.Format(dateLayout)
	}
	return out
}

type simulationJSON struct {
	Outcome        string        `json:"outcome"`
	Amount         string        `json:"amount"`
	AmountCents    int64         `json:"amount_cents"`
	Category       string        `json:"category"`
	Budget         *budgetJSON   `json:"budget,omitempty"`
	Interval       *intervalJSON `json:"interval,omitempty"`
	SpentCents     int64         `json:"spent_cents"`
	RemainingCents int64         `json:"remaining_cents"`
	OverageCents   int64         `json:"overage_cents"`
}

func toSimulationJSON(sim core.Simulation) simulationJSON {
	out := simulationJSON{
		Outcome:     string(sim.Outcome),
		Amount:      sim.Amount.String(),
		AmountCents: sim.Amount.Cents,
		Category:    sim.Category,
	}
	if sim.Budget != nil {
		b := toBudgetJSON(*sim.Budget)
		out.Budget = &b
		out.Interval = &intervalJSON{
			Start: sim.Interval.Start.Format(dateLayout),
			End:   sim.Interval.End.Format(dateLayout),
		}
		out.SpentCents = sim.Spent.Cents
		out.RemainingCents = sim.Remaining.Cents
		out.OverageCents = sim.Overage.Cents
	}
	return out
}

type categoryAmountJSON struct {
	Name        string `json:"name"`
	Amount      string `json:"amount"`
	AmountCents int64  `json:"amount_cents"`
}

type summaryJSON struct {
	Year          int                  `json:"year"`
	Month         int                  `json:"month"`
	Income        string               `json:"income"`
	IncomeCents   int64                `json:"income_cents"`
	Expenses      string               `json:"expenses"`
	ExpensesCents int64                `json:"expenses_cents"`
	Balance       string               `json:"balance"`
	BalanceCents  int64                `json:"balance_cents"`
	ByCategory    []categoryAmountJSON `json:"by_category"`
	Skipped       int                  `json:"skipped,omitempty"`
}

func toSummaryJSON(s core.MonthSummary) summaryJSON {
	out := summaryJSON{
		Year:          s.Year,
		Month:         s.Month,
		Income:        s.Income.String(),
		IncomeCents:   s.Income.Cents,
		Expenses:      s.Expenses.String(),
		ExpensesCents: s.Expenses.Cents,
		Balance:       s.Balance.String(),
		BalanceCents:  s.Balance.Cents,
		ByCategory:    make([]categoryAmountJSON, 0, len(s.ByCategory)),
		Skipped:       s.Skipped,
	}
	for _, c := range s.ByCategory {
		out.ByCategory = append(out.ByCategory, categoryAmountJSON{
			Name:        c.Name,
			Amount:      c.Amount.String(),
			AmountCents: c.Amount.Cents,
		})
	}
	return out
}
