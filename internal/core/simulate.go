package core

import "time"

// SimulationOutcome is the terminal classification of a payment check.
type SimulationOutcome string

const (
	NoBudgetFound SimulationOutcome = "no_budget_found"
	WithinBudget  SimulationOutcome = "within_budget"
	OverBudget    SimulationOutcome = "over_budget"
)

// PeriodPolicy selects which budget a simulation checks a payment against.
type PeriodPolicy string

const (
	// MatchBudgetPeriod resolves the matched budget's own configured period.
	// This is the default.
	MatchBudgetPeriod PeriodPolicy = "budget"

	// MatchMonthlyOnly only ever considers monthly budgets, the behavior a
	// previous revision of this application hard-coded. Kept selectable for
	// users who relied on it.
	MatchMonthlyOnly PeriodPolicy = "monthly"
)

func (p PeriodPolicy) Validate() error {
	switch p {
	case MatchBudgetPeriod, MatchMonthlyOnly:
		return nil
	default:
		return ErrInvalidPeriod
	}
}

// Simulation is the read-only result of checking a hypothetical payment
// against budget state. Nothing is recorded; running the same check twice
// with the same inputs yields the same result.
type Simulation struct {
	Outcome   SimulationOutcome
	Amount    Money
	Category  string
	Budget    *Budget // nil when Outcome is NoBudgetFound
	Interval  Interval
	Spent     Money
	Remaining Money // Limit - Spent at simulation time; may be negative
	Overage   Money // Amount - Remaining when the payment would overshoot
}

// SimulatePayment checks a proposed payment against the budget matching the
// category under the given policy.
//
// With no matching budget the payment is still considered simulated: the
// outcome is NoBudgetFound, reported as unchecked rather than as an error.
// Otherwise the budget's active interval is resolved at ref, spending is
// recomputed from the transaction snapshot, and the payment is classified
// WithinBudget when amount <= limit-spent, OverBudget otherwise with the
// overage amount filled in.
//
// Budget creation enforces (category, period) uniqueness, so the first match
// in store order is deterministic.
func SimulatePayment(amount Money, category string, txs []Transaction, budgets []Budget, ref time.Time, policy PeriodPolicy) Simulation {
	sim := Simulation{
		Outcome:  NoBudgetFound,
		Amount:   amount,
		Category: category,
	}

	var matched *Budget
	for i := range budgets {
		if budgets[i].Category != category {
			continue
		}
		if policy == MatchMonthlyOnly && budgets[i].Period != Monthly {
			continue
		}
		matched = &budgets[i]
		break
	}
	if matched == nil {
		return sim
	}

	iv := ResolvePeriod(matched.Period, ref)
	spent, _ := SpentInInterval(txs, category, iv)
	remaining := Money{Cents: matched.Limit.Cents - spent.Cents}

	sim.Budget = matched
	sim.Interval = iv
	sim.Spent = spent
	sim.Remaining = remaining

	if amount.Cents <= remaining.Cents {
		sim.Outcome = WithinBudget
		return sim
	}
	sim.Outcome = OverBudget
	sim.Overage = Money{Cents: amount.Cents - remaining.Cents}
	return sim
}
