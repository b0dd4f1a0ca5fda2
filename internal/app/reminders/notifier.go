package reminders

import (
	"context"
	"time"

	"assistant/internal/domain/reminder"

	"go.uber.org/zap"
)

// LogNotifier delivers reminders to the log.
type LogNotifier struct {
	Logger *zap.Logger
}

func (n LogNotifier) Notify(_ context.Context, r reminder.Reminder) error {
	if n.Logger == nil {
		return nil
	}
	fields := []zap.Field{zap.Int("reminder_id", r.ID), zap.String("text", r.Text)}
	if r.RemindAt != nil {
		fields = append(fields, zap.String("remind_at", r.RemindAt.Format(time.RFC3339)))
	}
	n.Logger.Info("reminder due", fields...)
	return nil
}
