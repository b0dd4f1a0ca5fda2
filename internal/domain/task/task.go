package task

import (
	"fmt"
	"sort"
	"strings"
)

type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Book is the persisted task set. NextID only ever grows, so identifiers are
// never handed out twice, even after deletes or a clear.
type Book struct {
	NextID int
	Tasks  map[int]Task
}

func NewBook() Book {
	return Book{NextID: 1, Tasks: map[int]Task{}}
}

// Add assigns the next identifier to a new, open task.
func (b *Book) Add(description string) Task {
	if b.Tasks == nil {
		b.Tasks = map[int]Task{}
	}
	if b.NextID < 1 {
		b.NextID = 1
	}
	for id := range b.Tasks {
		if id >= b.NextID {
			b.NextID = id + 1
		}
	}
	t := Task{ID: b.NextID, Description: strings.TrimSpace(description)}
	b.Tasks[t.ID] = t
	b.NextID++
	return t
}

// Complete soft-deletes a task. The record stays addressable by its id.
func (b *Book) Complete(id int) (Task, bool) {
	t, ok := b.Tasks[id]
	if !ok {
		return Task{}, false
	}
	t.Completed = true
	b.Tasks[id] = t
	return t, true
}

func (b *Book) Clear() {
	b.Tasks = map[int]Task{}
}

func (b Book) Sorted() []Task {
	return SortByID(mapValues(b.Tasks))
}

func SortByID(tasks []Task) []Task {
	out := append([]Task(nil), tasks...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func mapValues(m map[int]Task) []Task {
	out := make([]Task, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}

const EmptyListText = "No tasks available."

// Line renders one task as "<id>. <description> [ ]", with [x] once completed.
func Line(t Task) string {
	mark := "[ ]"
	if t.Completed {
		mark = "[x]"
	}
	return fmt.Sprintf("%d. %s %s", t.ID, t.Description, mark)
}

func RenderList(tasks []Task) string {
	if len(tasks) == 0 {
		return EmptyListText
	}
	lines := make([]string, 0, len(tasks))
	for _, t := range SortByID(tasks) {
		lines = append(lines, Line(t))
	}
	return strings.Join(lines, "\n")
}
