package ports

import (
	"context"
	"time"

	"assistant/internal/domain/schedule"
)

type Calendar interface {
	InsertEvent(ctx context.Context, calendarID string, event schedule.Event) (schedule.Event, error)
	ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.Event, error)
}
