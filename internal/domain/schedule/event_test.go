package schedule

import (
	"errors"
	"testing"
	"time"
)

func TestParseLocal_UsesZone(t *testing.T) {
	got, err := ParseLocal("2025-01-02T15:00:00", "Europe/Athens")
	if err != nil {
		t.Fatalf("ParseLocal error: %v", err)
	}
	if got.Hour() != 15 || got.Location().String() != "Europe/Athens" {
		t.Fatalf("unexpected time %v", got)
	}
	_, offset := got.Zone()
	if offset != 2*60*60 {
		t.Fatalf("expected +02:00 in January, got offset %d", offset)
	}
}

func TestParseLocal_AcceptsRFC3339(t *testing.T) {
	got, err := ParseLocal("2025-01-02T13:00:00Z", "Europe/Athens")
	if err != nil {
		t.Fatalf("ParseLocal error: %v", err)
	}
	if got.Hour() != 15 {
		t.Fatalf("expected conversion into Athens time, got %v", got)
	}
}

func TestParseLocal_Errors(t *testing.T) {
	if _, err := ParseLocal("tomorrow", "UTC"); !errors.Is(err, ErrInvalidTime) {
		t.Fatalf("expected ErrInvalidTime, got %v", err)
	}
	if _, err := ParseLocal("2025-01-02T15:00:00", "Mars/Olympus"); !errors.Is(err, ErrInvalidTimeZone) {
		t.Fatalf("expected ErrInvalidTimeZone, got %v", err)
	}
}

func TestEventValidate(t *testing.T) {
	start := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	if err := (Event{Start: start, End: start}).Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got %v", err)
	}
	if err := (Event{Title: "x", Start: start, End: start.Add(-time.Hour)}).Validate(); !errors.Is(err, ErrEndBeforeStart) {
		t.Fatalf("expected ErrEndBeforeStart, got %v", err)
	}
	if err := (Event{Title: "x", Start: start, End: start.Add(time.Hour)}).Validate(); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestRenderEvents(t *testing.T) {
	if got := RenderEvents(nil); got != NoEventsText {
		t.Fatalf("empty render %q", got)
	}
	start := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	got := RenderEvents([]Event{{Title: "Meeting with John", Start: start}})
	if got != "2025-01-02 15:00: Meeting with John" {
		t.Fatalf("unexpected render %q", got)
	}
}

func TestTimeRangeInverted(t *testing.T) {
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	if (TimeRange{Start: start, End: start.Add(time.Hour)}).Inverted() {
		t.Fatalf("forward range reported inverted")
	}
	if !(TimeRange{Start: start.Add(time.Hour), End: start}).Inverted() {
		t.Fatalf("backward range not reported inverted")
	}
}
