package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/ledger"
)

// TransactionService orchestrates ledger writes across the store and AMQP.
type TransactionService struct {
	store      ledger.Store
	amqpClient *amqp.Client
}

func NewTransactionService(store ledger.Store, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      store,
		amqpClient: amqpClient,
	}
}

// CreateTransaction saves a transaction locally, publishes a sync message,
// and returns budget alerts the new record triggered.
func (s *TransactionService) CreateTransaction(ctx context.Context, t core.Transaction) (core.Transaction, []core.BudgetProgress, error) {
	t.ID = uuid.NewString()
	t.Category = core.NormalizeCategory(t.Category)
	if err := t.Validate(); err != nil {
		return core.Transaction{}, nil, err
	}

	if err := s.store.CreateTransaction(ctx, t); err != nil {
		return core.Transaction{}, nil, fmt.Errorf("save transaction: %w", err)
	}

	// Publish async sync message (non-blocking, version 1 for new record)
	if err := s.publishSyncMessage(ctx, t.ID, 1); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"id", t.ID, "error", err)
		// Don't fail the request - transaction is saved locally
	}

	alerts := s.evaluateAlerts(ctx, t)
	return t, alerts, nil
}

// evaluateAlerts recomputes the budgets covering the new expense and
// publishes an alert for each one now at or past its limit.
func (s *TransactionService) evaluateAlerts(ctx context.Context, t core.Transaction) []core.BudgetProgress {
	if t.Type != core.Expense {
		return nil
	}

	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list budgets for alert check", "error", err)
		return nil
	}
	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to list transactions for alert check", "error", err)
		return nil
	}

	var alerts []core.BudgetProgress
	for _, b := range budgets {
		if b.Category != t.Category {
			continue
		}
		progress := core.ProgressFor(b, txs, core.DateOf(time.Now()))
		if progress.Percent < 100 {
			continue
		}
		alerts = append(alerts, progress)

		if s.amqpClient == nil {
			continue
		}
		msg := &amqp.BudgetAlertMessage{
			BudgetID:   b.ID,
			Category:   b.Category,
			Period:     string(b.Period),
			SpentCents: progress.Spent.Cents,
			LimitCents: b.Limit.Cents,
			Percent:    progress.Percent,
		}
		if err := s.amqpClient.PublishBudgetAlert(ctx, msg); err != nil {
			slog.ErrorContext(ctx, "Failed to publish budget alert",
				"budget_id", b.ID, "error", err)
		}
	}
	return alerts
}

func (s *TransactionService) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	return s.store.GetTransaction(ctx, id)
}

func (s *TransactionService) ListTransactions(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListTransactions(ctx)
}

func (s *TransactionService) ListTransactionsByMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	return s.store.ListTransactionsByMonth(ctx, year, month)
}

// MonthSummary aggregates one calendar month of transactions.
func (s *TransactionService) MonthSummary(ctx context.Context, year, month int) (core.MonthSummary, error) {
	txs, err := s.store.ListTransactionsByMonth(ctx, year, month)
	if err != nil {
		return core.MonthSummary{}, fmt.Errorf("list month transactions: %w", err)
	}
	return core.BuildMonthSummary(txs, year, month), nil
}

// DeleteTransaction removes a transaction locally and publishes a delete
// message so downstream copies follow.
func (s *TransactionService) DeleteTransaction(ctx context.Context, id string) error {
	t, err := s.store.GetTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	if err := s.publishDeleteMessage(ctx, t); err != nil {
		slog.ErrorContext(ctx, "Failed to publish delete message",
			"id", id, "error", err)
		// Don't fail the request - transaction is deleted locally
	}
	return nil
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, id string, version int64) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id, version)
}

func (s *TransactionService) publishDeleteMessage(ctx context.Context, t core.Transaction) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping delete message")
		return nil
	}
	msg := &amqp.TransactionDeleteMessage{
		ID:          t.ID,
		Date:        t.Date.Format("2006-01-02"),
		Description: t.Description,
		AmountCents: t.Amount.Cents,
		Category:    t.Category,
	}
	return s.amqpClient.PublishTransactionDelete(ctx, msg)
}

// Close closes the AMQP connection if one is attached.
func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("amqp: %w", err)
		}
	}
	return nil
}
