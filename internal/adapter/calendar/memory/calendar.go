package memcalendar

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"assistant/internal/domain/schedule"
)

// Calendar keeps events per calendar id in process.
type Calendar struct {
	mu     sync.Mutex
	seq    int
	events map[string][]schedule.Event
}

func NewCalendar() *Calendar {
	return &Calendar{events: map[string][]schedule.Event{}}
}

func (c *Calendar) InsertEvent(_ context.Context, calendarID string, e schedule.Event) (schedule.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	e.ID = fmt.Sprintf("local-%d", c.seq)
	e.Link = "local://calendar/" + calendarID + "/" + e.ID
	c.events[calendarID] = append(c.events[calendarID], e)
	return e, nil
}

// ListEvents returns events overlapping [timeMin, timeMax), by start time.
func (c *Calendar) ListEvents(_ context.Context, calendarID string, timeMin, timeMax time.Time) ([]schedule.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []schedule.Event
	for _, e := range c.events[calendarID] {
		if e.End.After(timeMin) && e.Start.Before(timeMax) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out, nil
}
