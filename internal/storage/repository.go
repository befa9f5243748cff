package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/ledger"

	_ "modernc.org/sqlite"
)

// SQLiteRepository is the local-first ledger store. Transactions carry a
// sync status so the worker can mirror them to the cloud copy later.
type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
}

var _ ledger.Store = (*SQLiteRepository)(nil)

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{
		db:      db,
		queries: New(db),
	}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t core.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	err := r.queries.insertTransaction(ctx, transactionRow{
		ID:          t.ID,
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Type:        string(t.Type),
		Category:    t.Category,
		Date:        t.Date.Format(dateLayout),
	})
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents)
	return nil
}

func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row, err := r.queries.getTransaction(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return r.toTransaction(ctx, row), nil
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.queries.listTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return r.toTransactions(ctx, rows), nil
}

func (r *SQLiteRepository) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	prefix := fmt.Sprintf("%04d-%02d", year, month)
	rows, err := r.queries.listTransactionsByMonth(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("list transactions by month: %w", err)
	}
	return r.toTransactions(ctx, rows), nil
}

func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id string) error {
	n, err := r.queries.softDeleteTransaction(ctx, id)
	if err != nil {
		return fmt.Errorf("soft delete transaction: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	slog.InfoContext(ctx, "Transaction soft deleted", "id", id)
	return nil
}

// GetPendingSyncTransactions returns transactions still waiting to be
// mirrored to the cloud copy.
func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.queries.listPendingSync(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("list pending sync transactions: %w", err)
	}
	return r.toTransactions(ctx, rows), nil
}

// MarkSynced records a successful cloud export.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	if err := r.queries.markTransactionSynced(ctx, id); err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

// MarkSyncError records a failed cloud export. The record stays readable;
// only the sync pipeline cares about the status.
func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	if err := r.queries.markTransactionSyncError(ctx, id); err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	slog.WarnContext(ctx, "Transaction marked with sync error", "id", id)
	return nil
}

func (r *SQLiteRepository) CreateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	err := r.queries.insertBudget(ctx, budgetRow{
		ID:         b.ID,
		Category:   b.Category,
		LimitCents: b.Limit.Cents,
		Period:     string(b.Period),
	})
	if isUniqueViolation(err) {
		return ledger.ErrDuplicateBudget
	}
	if err != nil {
		return fmt.Errorf("insert budget: %w", err)
	}
	slog.InfoContext(ctx, "Budget saved",
		"id", b.ID,
		"category", b.Category,
		"period", b.Period,
		"limit_cents", b.Limit.Cents)
	return nil
}

func (r *SQLiteRepository) GetBudget(ctx context.Context, id string) (core.Budget, error) {
	row, err := r.queries.getBudget(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Budget{}, fmt.Errorf("get budget: %w", err)
	}
	return toBudget(row), nil
}

func (r *SQLiteRepository) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := r.queries.listBudgets(ctx)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	out := make([]core.Budget, len(rows))
	for i, row := range rows {
		out[i] = toBudget(row)
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	n, err := r.queries.updateBudget(ctx, budgetRow{
		ID:         b.ID,
		Category:   b.Category,
		LimitCents: b.Limit.Cents,
		Period:     string(b.Period),
	})
	if isUniqueViolation(err) {
		return ledger.ErrDuplicateBudget
	}
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id string) error {
	n, err := r.queries.deleteBudget(ctx, id)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) CreateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	if err := r.queries.insertGoal(ctx, toGoalRow(g)); err != nil {
		return fmt.Errorf("insert goal: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetGoal(ctx context.Context, id string) (core.Goal, error) {
	row, err := r.queries.getGoal(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Goal{}, ledger.ErrNotFound
	}
	if err != nil {
		return core.Goal{}, fmt.Errorf("get goal: %w", err)
	}
	return r.toGoal(ctx, row), nil
}

func (r *SQLiteRepository) ListGoals(ctx context.Context) ([]core.Goal, error) {
	rows, err := r.queries.listGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	out := make([]core.Goal, len(rows))
	for i, row := range rows {
		out[i] = r.toGoal(ctx, row)
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g core.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	n, err := r.queries.updateGoal(ctx, toGoalRow(g))
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id string) error {
	n, err := r.queries.deleteGoal(ctx, id)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	if n == 0 {
		return ledger.ErrNotFound
	}
	return nil
}

// toTransaction maps a row to the domain type. A date that no longer parses
// is kept as a zero Date so the aggregation layer can skip and count it
// instead of the whole read failing on one bad record.
func (r *SQLiteRepository) toTransaction(ctx context.Context, row transactionRow) core.Transaction {
	t := core.Transaction{
		ID:          row.ID,
		Description: row.Description,
		Amount:      core.Money{Cents: row.AmountCents},
		Type:        core.TransactionType(row.Type),
		Category:    row.Category,
	}
	parsed, err := time.Parse(dateLayout, row.Date)
	if err != nil {
		slog.WarnContext(ctx, "Skipping unparseable transaction date",
			"id", row.ID,
			"date", row.Date,
			"error", err)
		return t
	}
	t.Date = core.Date{Time: parsed}
	return t
}

func (r *SQLiteRepository) toTransactions(ctx context.Context, rows []transactionRow) []core.Transaction {
	out := make([]core.Transaction, len(rows))
	for i, row := range rows {
		out[i] = r.toTransaction(ctx, row)
	}
	return out
}

func toBudget(row budgetRow) core.Budget {
	return core.Budget{
		ID:       row.ID,
		Category: row.Category,
		Limit:    core.Money{Cents: row.LimitCents},
		Period:   core.Period(row.Period),
	}
}

func toGoalRow(g core.Goal) goalRow {
	row := goalRow{
		ID:           g.ID,
		Description:  g.Description,
		TargetCents:  g.TargetAmount.Cents,
		CurrentCents: g.CurrentAmount.Cents,
	}
	if !g.Deadline.IsEmpty() {
		row.Deadline = sql.NullString{String: g.Deadline.Format(dateLayout), Valid: true}
	}
	return row
}

func (r *SQLiteRepository) toGoal(ctx context.Context, row goalRow) core.Goal {
	g := core.Goal{
		ID:            row.ID,
		Description:   row.Description,
		TargetAmount:  core.Money{Cents: row.TargetCents},
		CurrentAmount: core.Money{Cents: row.CurrentCents},
	}
	if row.Deadline.Valid {
		parsed, err := time.Parse(dateLayout, row.Deadline.String)
		if err != nil {
			slog.WarnContext(ctx, "Ignoring unparseable goal deadline",
				"id", row.ID,
				"deadline", row.Deadline.String,
				"error", err)
		} else {
			g.Deadline = core.Date{Time: parsed}
		}
	}
	return g
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
