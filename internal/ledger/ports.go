// Package ledger defines the store contracts the services and handlers are
// written against. Implementations receive materialized snapshots to the
// aggregation code as plain values; nothing in core reads ambient state.
package ledger

import (
	"context"
	"errors"

	"fintrack/internal/core"
)

var (
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateBudget is returned when creating a budget whose
	// (category, period) pair is already taken. Uniqueness is enforced at
	// creation so aggregation never has to arbitrate between duplicates.
	ErrDuplicateBudget = errors.New("budget already exists for category and period")
)

type (
	TransactionStore interface {
		CreateTransaction(ctx context.Context, t core.Transaction) error
		GetTransaction(ctx context.Context, id string) (core.Transaction, error)
		// ListTransactions returns the full live collection, newest first.
		ListTransactions(ctx context.Context) ([]core.Transaction, error)
		// ListTransactionsByMonth returns the records for one calendar month.
		ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error)
		DeleteTransaction(ctx context.Context, id string) error
	}

	BudgetStore interface {
		CreateBudget(ctx context.Context, b core.Budget) error
		GetBudget(ctx context.Context, id string) (core.Budget, error)
		// ListBudgets returns budgets in creation order, which makes
		// first-match lookups deterministic.
		ListBudgets(ctx context.Context) ([]core.Budget, error)
		UpdateBudget(ctx context.Context, b core.Budget) error
		DeleteBudget(ctx context.Context, id string) error
	}

	GoalStore interface {
		CreateGoal(ctx context.Context, g core.Goal) error
		GetGoal(ctx context.Context, id string) (core.Goal, error)
		ListGoals(ctx context.Context) ([]core.Goal, error)
		UpdateGoal(ctx context.Context, g core.Goal) error
		DeleteGoal(ctx context.Context, id string) error
	}

	// Store is the composed contract a full backend satisfies.
	Store interface {
		TransactionStore
		BudgetStore
		GoalStore
	}
)
