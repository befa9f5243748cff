package services

import (
	"context"
	"fmt"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
	"fintrack/internal/planner"
)

// PlanService assembles a financial snapshot and asks the planner for a
// budget plan covering the month containing the reference instant.
type PlanService struct {
	store   ledger.Store
	planner planner.Planner
}

func NewPlanService(store ledger.Store, p planner.Planner) *PlanService {
	return &PlanService{store: store, planner: p}
}

// GeneratePlan builds the request from the current month's summary, budget
// consumption, and goals, then delegates to the planner.
func (s *PlanService) GeneratePlan(ctx context.Context, ref time.Time, notes string) (*planner.Plan, error) {
	req, err := s.buildRequest(ctx, ref, notes)
	if err != nil {
		return nil, err
	}
	plan, err := s.planner.GeneratePlan(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("generate plan: %w", err)
	}
	return plan, nil
}

func (s *PlanService) buildRequest(ctx context.Context, ref time.Time, notes string) (planner.PlanRequest, error) {
	txs, err := s.store.ListTransactionsByMonth(ctx, ref.Year(), int(ref.Month()))
	if err != nil {
		return planner.PlanRequest{}, fmt.Errorf("list month transactions: %w", err)
	}
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return planner.PlanRequest{}, fmt.Errorf("list budgets: %w", err)
	}
	allTxs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return planner.PlanRequest{}, fmt.Errorf("list transactions: %w", err)
	}
	goals, err := s.store.ListGoals(ctx)
	if err != nil {
		return planner.PlanRequest{}, fmt.Errorf("list goals: %w", err)
	}

	summary := core.BuildMonthSummary(txs, ref.Year(), int(ref.Month()))
	iv := core.ResolvePeriod(core.Monthly, ref)

	req := planner.PlanRequest{
		PeriodStart: iv.Start.Format("2006-01-02"),
		PeriodEnd:   iv.End.Format("2006-01-02"),
		Notes:       notes,
	}

	if summary.Income.Cents > 0 {
		req.Income = append(req.Income, planner.IncomeSource{
			Source:      "recorded income",
			AmountCents: summary.Income.Cents,
		})
	}
	for _, c := range summary.ByCategory {
		req.Expenses = append(req.Expenses, planner.ExpenseSnapshot{
			Category:    c.Name,
			AmountCents: c.Amount.Cents,
		})
	}
	for _, p := range core.BudgetReport(budgets, allTxs, core.DateOf(ref)) {
		req.Budgets = append(req.Budgets, planner.BudgetSnapshot{
			Category:   p.Budget.Category,
			Period:     string(p.Budget.Period),
			LimitCents: p.Budget.Limit.Cents,
			SpentCents: p.Spent.Cents,
			Percent:    p.Percent,
		})
	}
	for _, g := range goals {
		snap := planner.GoalSnapshot{
			Description:  g.Description,
			TargetCents:  g.TargetAmount.Cents,
			CurrentCents: g.CurrentAmount.Cents,
		}
		if !g.Deadline.IsEmpty() {
			snap.Deadline = g.Deadline.Format("2006-01-02")
		}
		req.Goals = append(req.Goals, snap)
	}

	return req, nil
}
