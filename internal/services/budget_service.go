package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// BudgetService manages budget definitions and the read-side computations
// built on them. Spending figures are never stored; every report and
// simulation recomputes from the live transaction collection.
type BudgetService struct {
	store  ledger.Store
	policy core.PeriodPolicy
}

func NewBudgetService(store ledger.Store, policy core.PeriodPolicy) *BudgetService {
	if policy == "" {
		policy = core.MatchBudgetPeriod
	}
	return &BudgetService{store: store, policy: policy}
}

func (s *BudgetService) CreateBudget(ctx context.Context, b core.Budget) (core.Budget, error) {
	b.ID = uuid.NewString()
	b.Category = core.NormalizeCategory(b.Category)
	if err := b.Validate(); err != nil {
		return core.Budget{}, err
	}
	if err := s.store.CreateBudget(ctx, b); err != nil {
		return core.Budget{}, err
	}
	return b, nil
}

func (s *BudgetService) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	return s.store.GetBudget(ctx, id)
}

func (s *BudgetService) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

func (s *BudgetService) UpdateBudget(ctx context.Context, b core.Budget) error {
	b.Category = core.NormalizeCategory(b.Category)
	if err := b.Validate(); err != nil {
		return err
	}
	return s.store.UpdateBudget(ctx, b)
}

func (s *BudgetService) DeleteBudget(ctx context.Context, id string) error {
	return s.store.DeleteBudget(ctx, id)
}

// Progress recomputes one budget's consumption at the reference instant.
func (s *BudgetService) Progress(ctx context.Context, id string, ref time.Time) (core.BudgetProgress, error) {
	b, err := s.store.GetBudget(ctx, id)
	if err != nil {
		return core.BudgetProgress{}, err
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return core.BudgetProgress{}, fmt.Errorf("list transactions: %w", err)
	}
	return core.ProgressFor(b, txs, core.DateOf(ref)), nil
}

// Report recomputes every budget's consumption at the reference instant.
func (s *BudgetService) Report(ctx context.Context, ref time.Time) ([]core.BudgetProgress, error) {
	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return core.BudgetReport(budgets, txs, core.DateOf(ref)), nil
}

// Simulate checks a hypothetical payment without recording anything.
func (s *BudgetService) Simulate(ctx context.Context, amount core.Money, category string, ref time.Time) (core.Simulation, error) {
	if err := amount.Validate(); err != nil {
		return core.Simulation{}, err
	}
	category = core.NormalizeCategory(category)
	if category == "" {
		return core.Simulation{}, core.ErrEmptyCategory
	}

	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return core.Simulation{}, fmt.Errorf("list budgets: %w", err)
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return core.Simulation{}, fmt.Errorf("list transactions: %w", err)
	}
	return core.SimulatePayment(amount, category, txs, budgets, ref, s.policy), nil
}
