package reminder

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

const timeLayout = "2006-01-02 15:04"

type Reminder struct {
	ID        int        `json:"id"`
	Text      string     `json:"text"`
	RemindAt  *time.Time `json:"remind_at,omitempty"`
	Completed bool       `json:"completed"`
	Notified  bool       `json:"notified"`
}

// Due reports whether the reminder should fire at now.
func (r Reminder) Due(now time.Time) bool {
	if r.Completed || r.Notified || r.RemindAt == nil {
		return false
	}
	return !r.RemindAt.After(now)
}

// Book mirrors the task book: ids come from a counter that never goes back.
type Book struct {
	NextID    int
	Reminders map[int]Reminder
}

func NewBook() Book {
	return Book{NextID: 1, Reminders: map[int]Reminder{}}
}

func (b *Book) Add(text string, remindAt *time.Time) Reminder {
	if b.Reminders == nil {
		b.Reminders = map[int]Reminder{}
	}
	if b.NextID < 1 {
		b.NextID = 1
	}
	r := Reminder{ID: b.NextID, Text: strings.TrimSpace(text), RemindAt: remindAt}
	b.Reminders[r.ID] = r
	b.NextID++
	return r
}

func (b *Book) Complete(id int) (Reminder, bool) {
	r, ok := b.Reminders[id]
	if !ok {
		return Reminder{}, false
	}
	r.Completed = true
	b.Reminders[id] = r
	return r, true
}

func (b *Book) MarkNotified(id int) bool {
	r, ok := b.Reminders[id]
	if !ok {
		return false
	}
	r.Notified = true
	b.Reminders[id] = r
	return true
}

func (b Book) Sorted() []Reminder {
	out := make([]Reminder, 0, len(b.Reminders))
	for _, r := range b.Reminders {
		out = append(out, r)
	}
	return SortByID(out)
}

func SortByID(in []Reminder) []Reminder {
	out := append([]Reminder(nil), in...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

const EmptyListText = "No reminders available."

func Line(r Reminder) string {
	mark := "[ ]"
	if r.Completed {
		mark = "[x]"
	}
	if r.RemindAt == nil {
		return fmt.Sprintf("%d. %s %s", r.ID, r.Text, mark)
	}
	return fmt.Sprintf("%d. %s (%s) %s", r.ID, r.Text, r.RemindAt.Format(timeLayout), mark)
}

func RenderList(in []Reminder) string {
	if len(in) == 0 {
		return EmptyListText
	}
	lines := make([]string, 0, len(in))
	for _, r := range SortByID(in) {
		lines = append(lines, Line(r))
	}
	return strings.Join(lines, "\n")
}
