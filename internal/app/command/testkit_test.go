package command

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"assistant/internal/app/ports"
	"assistant/internal/domain/intent"
	"assistant/internal/domain/schedule"
)

var fixedNow = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

type promptKind string

const (
	kindClassify promptKind = "classify"
	kindTask     promptKind = "task"
	kindSchedule promptKind = "schedule"
	kindReminder promptKind = "reminder"
	kindOther    promptKind = "other"
)

func kindOf(systemPrompt string) promptKind {
	switch {
	case strings.Contains(systemPrompt, `"classification"`):
		return kindClassify
	case strings.Contains(systemPrompt, "task_action"):
		return kindTask
	case strings.Contains(systemPrompt, "schedule_action"):
		return kindSchedule
	case strings.Contains(systemPrompt, "reminder_action"):
		return kindReminder
	default:
		return kindOther
	}
}

type scriptedCompleter struct {
	mu    sync.Mutex
	calls []promptKind
	fn    func(ctx context.Context, kind promptKind, userText string) (string, error)
}

func (c *scriptedCompleter) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	kind := kindOf(systemPrompt)
	c.mu.Lock()
	c.calls = append(c.calls, kind)
	c.mu.Unlock()
	return c.fn(ctx, kind, strings.Trim(userText, "`"))
}

func (c *scriptedCompleter) count(kind promptKind) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, k := range c.calls {
		if k == kind {
			n++
		}
	}
	return n
}

func (c *scriptedCompleter) total() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

type fakeModerator struct {
	verdict ports.ModerationVerdict
	err     error
	calls   int
}

func (m *fakeModerator) Moderate(context.Context, string) (ports.ModerationVerdict, error) {
	m.calls++
	return m.verdict, m.err
}

type fakeTasks struct {
	mu    sync.Mutex
	calls int
	added []string
	err   error
	block bool
	panic bool
}

func (f *fakeTasks) record() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeTasks) Add(ctx context.Context, description string) (string, error) {
	f.record()
	if f.panic {
		panic("boom")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	f.added = append(f.added, description)
	n := len(f.added)
	f.mu.Unlock()
	return "Task " + strconv.Itoa(n) + " added: " + description, nil
}

func (f *fakeTasks) Delete(_ context.Context, id int) (string, error) {
	f.record()
	return "Task " + strconv.Itoa(id) + " deleted", f.err
}

func (f *fakeTasks) Help(_ context.Context, id int) (string, error) {
	f.record()
	return "Steps for task " + strconv.Itoa(id), f.err
}

func (f *fakeTasks) List(context.Context) (string, error) {
	f.record()
	return "", f.err
}

type fakeReminders struct {
	mu       sync.Mutex
	calls    int
	lastText string
	lastAt   *time.Time
}

func (f *fakeReminders) Add(_ context.Context, text string, at *time.Time) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastText, f.lastAt = text, at
	return "Reminder 1 added: " + text, nil
}

func (f *fakeReminders) Delete(_ context.Context, id int) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "Reminder " + strconv.Itoa(id) + " deleted", nil
}

func (f *fakeReminders) List(context.Context) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return "No reminders available.", nil
}

type fakeCalendar struct {
	mu      sync.Mutex
	inserts int
	lists   int
	events  []schedule.Event
}

func (c *fakeCalendar) InsertEvent(_ context.Context, _ string, e schedule.Event) (schedule.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inserts++
	e.ID = "evt-1"
	e.Link = "https://calendar.example/evt-1"
	return e, nil
}

func (c *fakeCalendar) ListEvents(context.Context, string, time.Time, time.Time) ([]schedule.Event, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lists++
	return append([]schedule.Event(nil), c.events...), nil
}

type countingMetrics struct {
	mu       sync.Mutex
	outcomes []string
	items    int
}

func (m *countingMetrics) RecordOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *countingMetrics) RecordItem(intent.Category, intent.ItemStatus) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items++
}

var errUpstream = errors.New("upstream down")
