package scheduling

import (
	"context"
	"fmt"
	"strings"

	"assistant/internal/app/ports"
	"assistant/internal/domain/schedule"

	"go.uber.org/zap"
)

const defaultCalendarID = "primary"

type UseCase struct {
	Calendar   ports.Calendar
	CalendarID string
	Logger     *zap.Logger
}

func (u UseCase) Add(ctx context.Context, event schedule.Event) (string, error) {
	if err := event.Validate(); err != nil {
		return "", err
	}
	created, err := u.Calendar.InsertEvent(ctx, u.calendarID(), event)
	if err != nil {
		return "", fmt.Errorf("insert event: %w", err)
	}
	u.logger().Info("event created", zap.String("event_id", created.ID))
	if strings.TrimSpace(created.Link) == "" {
		return fmt.Sprintf("Event created: %s", created.Title), nil
	}
	return fmt.Sprintf("Event created: %s (%s)", created.Title, created.Link), nil
}

// View lists events in the range. An inverted range holds no events and is
// answered without calling the calendar.
func (u UseCase) View(ctx context.Context, r schedule.TimeRange) (string, error) {
	if r.Inverted() {
		return schedule.NoEventsBetween(r), nil
	}
	events, err := u.Calendar.ListEvents(ctx, u.calendarID(), r.Start, r.End)
	if err != nil {
		return "", fmt.Errorf("list events: %w", err)
	}
	if loc, err := schedule.LoadZone(r.TimeZone); err == nil {
		for i := range events {
			events[i].Start = events[i].Start.In(loc)
			events[i].End = events[i].End.In(loc)
		}
	}
	return schedule.RenderEvents(events), nil
}

func (u UseCase) calendarID() string {
	if strings.TrimSpace(u.CalendarID) == "" {
		return defaultCalendarID
	}
	return u.CalendarID
}

func (u UseCase) logger() *zap.Logger {
	if u.Logger == nil {
		return zap.NewNop()
	}
	return u.Logger
}
