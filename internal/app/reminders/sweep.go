package reminders

import (
	"context"
	"fmt"
	"time"

	"assistant/internal/app/ports"

	"go.uber.org/zap"
)

// SweepUseCase fires reminders whose time has come. Each reminder is marked
// notified before delivery, so a failing notifier never fires it twice.
type SweepUseCase struct {
	Repo     ports.ReminderRepository
	Notifier ports.Notifier
	Logger   *zap.Logger
	Now      func() time.Time
}

func (u SweepUseCase) Execute(ctx context.Context) (int, error) {
	nowFn := u.Now
	if nowFn == nil {
		nowFn = time.Now
	}
	logger := u.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := nowFn()
	due, err := u.Repo.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("list due reminders: %w", err)
	}
	fired := 0
	for _, r := range due {
		if !r.Due(now) {
			continue
		}
		if err := u.Repo.MarkNotified(ctx, r.ID); err != nil {
			logger.Warn("mark reminder notified", zap.Int("reminder_id", r.ID), zap.Error(err))
			continue
		}
		if u.Notifier != nil {
			if err := u.Notifier.Notify(ctx, r); err != nil {
				logger.Warn("notify reminder", zap.Int("reminder_id", r.ID), zap.Error(err))
				continue
			}
		}
		fired++
	}
	return fired, nil
}
