package metrics

import (
	"testing"

	"assistant/internal/adapter/metrics/inmemory"
	"assistant/internal/app/ports"
	"assistant/internal/domain/intent"
)

func TestMulti_FansOut(t *testing.T) {
	a, b := inmemory.NewRecorder(), inmemory.NewRecorder()
	m := Multi{a, b}
	m.RecordOutcome(ports.OutcomeRefused)
	m.RecordItem(intent.CategoryTask, intent.StatusOK)

	for i, r := range []*inmemory.Recorder{a, b} {
		s := r.Snapshot()
		if s.RequestTotal != 1 || s.ItemTotal != 1 {
			t.Fatalf("recorder %d missed events: %+v", i, s)
		}
	}
}
