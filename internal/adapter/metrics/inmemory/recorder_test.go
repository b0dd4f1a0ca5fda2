package inmemory

import (
	"testing"

	"assistant/internal/app/ports"
	"assistant/internal/domain/intent"
)

func TestRecorderSnapshot(t *testing.T) {
	r := NewRecorder()
	r.RecordOutcome(ports.OutcomeAggregated)
	r.RecordOutcome(ports.OutcomeAggregated)
	r.RecordOutcome(ports.OutcomeRefused)
	r.RecordItem(intent.CategoryTask, intent.StatusOK)
	r.RecordItem(intent.CategoryTask, intent.StatusParseError)
	r.RecordItem(intent.CategoryReminder, intent.StatusOK)

	s := r.Snapshot()
	if s.RequestTotal != 3 {
		t.Fatalf("expected total 3, got %d", s.RequestTotal)
	}
	if s.ByOutcome[ports.OutcomeAggregated] != 2 {
		t.Fatalf("expected aggregated 2, got %d", s.ByOutcome[ports.OutcomeAggregated])
	}
	if s.ItemTotal != 3 || s.ItemFailed != 1 {
		t.Fatalf("expected items 3/1, got %d/%d", s.ItemTotal, s.ItemFailed)
	}
	if s.ByItem["task.parse_error"] != 1 {
		t.Fatalf("expected task.parse_error count 1")
	}
}

func TestRecorderSnapshotIsCopy(t *testing.T) {
	r := NewRecorder()
	r.RecordOutcome(ports.OutcomeFailed)
	s := r.Snapshot()
	s.ByOutcome[ports.OutcomeFailed] = 99
	if r.Snapshot().ByOutcome[ports.OutcomeFailed] != 1 {
		t.Fatalf("snapshot shares state with recorder")
	}
}
