package reminders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"assistant/internal/app/ports"
	"assistant/internal/domain/reminder"

	"go.uber.org/zap"
)

var ErrEmptyText = errors.New("reminder text is required")

const reminderTimeLayout = "2006-01-02 15:04"

type UseCase struct {
	Repo      ports.ReminderRepository
	TxManager ports.TxManager
	Logger    *zap.Logger
}

func (u UseCase) Add(ctx context.Context, text string, remindAt *time.Time) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmptyText
	}
	var added reminder.Reminder
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		r, err := u.Repo.Add(txCtx, text, remindAt)
		if err != nil {
			return err
		}
		added = r
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("add reminder: %w", err)
	}
	u.logger().Info("reminder added", zap.Int("reminder_id", added.ID))
	if added.RemindAt == nil {
		return fmt.Sprintf("Reminder %d added: %s", added.ID, added.Text), nil
	}
	return fmt.Sprintf("Reminder %d added: %s at %s", added.ID, added.Text, added.RemindAt.Format(reminderTimeLayout)), nil
}

func (u UseCase) Delete(ctx context.Context, id int) (string, error) {
	var done reminder.Reminder
	err := u.runInTx(ctx, func(txCtx context.Context) error {
		r, err := u.Repo.Complete(txCtx, id)
		if err != nil {
			return err
		}
		done = r
		return nil
	})
	if errors.Is(err, ports.ErrNotFound) {
		return fmt.Sprintf("Reminder %d not found.", id), nil
	}
	if err != nil {
		return "", fmt.Errorf("delete reminder %d: %w", id, err)
	}
	return fmt.Sprintf("Reminder %d deleted: %s", done.ID, done.Text), nil
}

func (u UseCase) List(ctx context.Context) (string, error) {
	all, err := u.Snapshot(ctx)
	if err != nil {
		return "", err
	}
	return reminder.RenderList(all), nil
}

func (u UseCase) Snapshot(ctx context.Context) ([]reminder.Reminder, error) {
	all, err := u.Repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	return reminder.SortByID(all), nil
}

func (u UseCase) runInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if u.TxManager == nil {
		return fn(ctx)
	}
	return u.TxManager.RunInTx(ctx, fn)
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
