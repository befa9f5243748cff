package storage

import (
	"context"
	"database/sql"
	"time"
)

// Queries wraps raw SQL access to the fintrack schema. Higher-level mapping
// to core types lives in SQLiteRepository.
type Queries struct {
	db *sql.DB
}

func New(db *sql.DB) *Queries {
	return &Queries{db: db}
}

// transactionRow mirrors the transactions table.
type transactionRow struct {
	ID          string
	Description string
	AmountCents int64
	Type        string
	Category    string
	Date        string
	Version     int64
	SyncStatus  string
	CreatedAt   time.Time
}

const dateLayout = "2006-01-02"

const transactionColumns = `id, description, amount_cents, type, category, date, version, sync_status, created_at`

func (q *Queries) insertTransaction(ctx context.Context, r transactionRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, amount_cents, type, category, date)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Description, r.AmountCents, r.Type, r.Category, r.Date)
	return err
}

func (q *Queries) getTransaction(ctx context.Context, id string) (transactionRow, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ? AND deleted_at IS NULL`, id)
	return scanTransaction(row)
}

func (q *Queries) listTransactions(ctx context.Context) ([]transactionRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE deleted_at IS NULL
		 ORDER BY date DESC, created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (q *Queries) listTransactionsByMonth(ctx context.Context, monthPrefix string) ([]transactionRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE deleted_at IS NULL AND date LIKE ?
		 ORDER BY date DESC, created_at DESC`, monthPrefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (q *Queries) softDeleteTransaction(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE transactions SET deleted_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND deleted_at IS NULL`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) listPendingSync(ctx context.Context, limit int64) ([]transactionRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions
		 WHERE deleted_at IS NULL AND sync_status = 'pending'
		 ORDER BY created_at ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (q *Queries) markTransactionSynced(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'synced', synced_at = CURRENT_TIMESTAMP WHERE id = ?`, id)
	return err
}

func (q *Queries) markTransactionSyncError(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = 'error' WHERE id = ?`, id)
	return err
}

func scanTransaction(row *sql.Row) (transactionRow, error) {
	var r transactionRow
	err := row.Scan(&r.ID, &r.Description, &r.AmountCents, &r.Type, &r.Category,
		&r.Date, &r.Version, &r.SyncStatus, &r.CreatedAt)
	return r, err
}

func collectTransactions(rows *sql.Rows) ([]transactionRow, error) {
	var out []transactionRow
	for rows.Next() {
		var r transactionRow
		if err := rows.Scan(&r.ID, &r.Description, &r.AmountCents, &r.Type, &r.Category,
			&r.Date, &r.Version, &r.SyncStatus, &r.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// budgetRow mirrors the budgets table.
type budgetRow struct {
	ID         string
	Category   string
	LimitCents int64
	Period     string
}

func (q *Queries) insertBudget(ctx context.Context, r budgetRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO budgets (id, category, limit_cents, period) VALUES (?, ?, ?, ?)`,
		r.ID, r.Category, r.LimitCents, r.Period)
	return err
}

func (q *Queries) getBudget(ctx context.Context, id string) (budgetRow, error) {
	var r budgetRow
	err := q.db.QueryRowContext(ctx,
		`SELECT id, category, limit_cents, period FROM budgets WHERE id = ?`, id).
		Scan(&r.ID, &r.Category, &r.LimitCents, &r.Period)
	return r, err
}

func (q *Queries) listBudgets(ctx context.Context) ([]budgetRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, category, limit_cents, period FROM budgets ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []budgetRow
	for rows.Next() {
		var r budgetRow
		if err := rows.Scan(&r.ID, &r.Category, &r.LimitCents, &r.Period); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) updateBudget(ctx context.Context, r budgetRow) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE budgets SET category = ?, limit_cents = ?, period = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, r.Category, r.LimitCents, r.Period, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) deleteBudget(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM budgets WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// goalRow mirrors the goals table.
type goalRow struct {
	ID           string
	Description  string
	TargetCents  int64
	CurrentCents int64
	Deadline     sql.NullString
}

func (q *Queries) insertGoal(ctx context.Context, r goalRow) error {
	_, err := q.db.ExecContext(ctx,
		`INSERT INTO goals (id, description, target_cents, current_cents, deadline)
		 VALUES (?, ?, ?, ?, ?)`,
		r.ID, r.Description, r.TargetCents, r.CurrentCents, r.Deadline)
	return err
}

func (q *Queries) getGoal(ctx context.Context, id string) (goalRow, error) {
	var r goalRow
	err := q.db.QueryRowContext(ctx,
		`SELECT id, description, target_cents, current_cents, deadline FROM goals WHERE id = ?`, id).
		Scan(&r.ID, &r.Description, &r.TargetCents, &r.CurrentCents, &r.Deadline)
	return r, err
}

func (q *Queries) listGoals(ctx context.Context) ([]goalRow, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT id, description, target_cents, current_cents, deadline FROM goals ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []goalRow
	for rows.Next() {
		var r goalRow
		if err := rows.Scan(&r.ID, &r.Description, &r.TargetCents, &r.CurrentCents, &r.Deadline); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (q *Queries) updateGoal(ctx context.Context, r goalRow) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`UPDATE goals SET description = ?, target_cents = ?, current_cents = ?, deadline = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`, r.Description, r.TargetCents, r.CurrentCents, r.Deadline, r.ID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) deleteGoal(ctx context.Context, id string) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM goals WHERE id = ?`, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
