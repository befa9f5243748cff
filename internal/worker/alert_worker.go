package worker

import (
	"context"
	"log/slog"

	"fintrack/internal/amqp"
)

// AlertWorker consumes budget alert messages. Alerts are logged as a
// durable audit trail; a notification channel can hang off this later.
type AlertWorker struct{}

func NewAlertWorker() *AlertWorker {
	return &AlertWorker{}
}

func (w *AlertWorker) HandleAlert(ctx context.Context, msg *amqp.BudgetAlertMessage) error {
	slog.WarnContext(ctx, "Budget limit reached",
		"budget_id", msg.BudgetID,
		"category", msg.Category,
		"period", msg.Period,
		"spent_cents", msg.SpentCents,
		"limit_cents", msg.LimitCents,
		"percent", msg.Percent)
	return nil
}
