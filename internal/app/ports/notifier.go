package ports

import (
	"context"

	"assistant/internal/domain/reminder"
)

type Notifier interface {
	Notify(ctx context.Context, r reminder.Reminder) error
}
