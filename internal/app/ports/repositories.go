package ports

import (
	"context"
	"time"

	"assistant/internal/domain/reminder"
	"assistant/internal/domain/task"
)

type TaskRepository interface {
	Add(ctx context.Context, description string) (task.Task, error)
	// Complete marks a task done. It returns ErrNotFound for unknown ids.
	Complete(ctx context.Context, id int) (task.Task, error)
	Get(ctx context.Context, id int) (task.Task, error)
	List(ctx context.Context) ([]task.Task, error)
	Clear(ctx context.Context) error
}

type ReminderRepository interface {
	Add(ctx context.Context, text string, remindAt *time.Time) (reminder.Reminder, error)
	Complete(ctx context.Context, id int) (reminder.Reminder, error)
	List(ctx context.Context) ([]reminder.Reminder, error)
	ListDue(ctx context.Context, now time.Time) ([]reminder.Reminder, error)
	MarkNotified(ctx context.Context, id int) error
}
