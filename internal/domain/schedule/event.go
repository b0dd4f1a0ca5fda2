package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// LocalLayout is the wall-clock format the detail prompt asks the model for.
const LocalLayout = "2006-01-02T15:04:05"

const displayLayout = "2006-01-02 15:04"

var (
	ErrInvalidTime     = errors.New("invalid time")
	ErrInvalidTimeZone = errors.New("invalid time zone")
	ErrEmptyTitle      = errors.New("event title is required")
	ErrEndBeforeStart  = errors.New("event ends before it starts")
)

type Event struct {
	ID          string    `json:"id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	TimeZone    string    `json:"time_zone"`
	Link        string    `json:"link,omitempty"`
}

func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrEmptyTitle
	}
	if e.End.Before(e.Start) {
		return ErrEndBeforeStart
	}
	return nil
}

type TimeRange struct {
	Start    time.Time
	End      time.Time
	TimeZone string
}

// Inverted reports a range whose start is after its end. Such a range holds
// no events.
func (r TimeRange) Inverted() bool {
	return r.Start.After(r.End)
}

func LoadZone(name string) (*time.Location, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimeZone, name)
	}
	return loc, nil
}

// ParseLocal reads a wall-clock time in the named zone. RFC 3339 input with
// an explicit offset is accepted as well.
func ParseLocal(value, zone string) (time.Time, error) {
	value = strings.TrimSpace(value)
	loc, err := LoadZone(zone)
	if err != nil {
		return time.Time{}, err
	}
	if t, err := time.ParseInLocation(LocalLayout, value, loc); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTime, value)
}

const NoEventsText = "No events found."

func EventLine(e Event) string {
	return fmt.Sprintf("%s: %s", e.Start.Format(displayLayout), e.Title)
}

func RenderEvents(events []Event) string {
	if len(events) == 0 {
		return NoEventsText
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, EventLine(e))
	}
	return strings.Join(lines, "\n")
}

func NoEventsBetween(r TimeRange) string {
	return fmt.Sprintf("No events found between %s and %s.", r.Start.Format(displayLayout), r.End.Format(displayLayout))
}
