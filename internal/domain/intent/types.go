package intent

import (
	"sort"
	"strings"
)

type Category string

const (
	CategoryTask     Category = "task"
	CategorySchedule Category = "schedule"
	CategoryReminder Category = "reminder"
)

func Categories() []Category {
	return []Category{CategoryTask, CategorySchedule, CategoryReminder}
}

// ParseCategory normalizes a classifier label. The bool is false for labels
// outside the closed set.
func ParseCategory(raw string) (Category, bool) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories() {
		if c == known {
			return c, true
		}
	}
	return c, false
}

type Kind string

const (
	KindAdd    Kind = "add"
	KindDelete Kind = "delete"
	KindHelp   Kind = "help"
	KindList   Kind = "list"
	KindView   Kind = "view"
)

// Item is one classified clause of a user command.
type Item struct {
	Category Category `json:"category"`
	Detail   string   `json:"detail"`
}

type Payload map[string]string

func (p Payload) Get(key string) string {
	if p == nil {
		return ""
	}
	return strings.TrimSpace(p[key])
}

// Keys returns the payload keys in a stable order, for logs.
func (p Payload) Keys() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// ActionRecord is the structured command resolved from one Item.
type ActionRecord struct {
	Category Category `json:"category"`
	Kind     Kind     `json:"kind"`
	Payload  Payload  `json:"payload"`
}

// Result is the text produced for one Item. It is never empty for a
// dispatched item: failures carry an explanatory message.
type Result struct {
	Text   string     `json:"text"`
	Status ItemStatus `json:"status"`
}

type ItemStatus string

const (
	StatusOK          ItemStatus = "ok"
	StatusParseError  ItemStatus = "parse_error"
	StatusUnsupported ItemStatus = "unsupported"
	StatusFailed      ItemStatus = "failed"
)
