package inmemory

import (
	"sync"

	"assistant/internal/domain/intent"
)

type Snapshot struct {
	RequestTotal uint64            `json:"request_total"`
	ByOutcome    map[string]uint64 `json:"by_outcome"`
	ItemTotal    uint64            `json:"item_total"`
	ItemFailed   uint64            `json:"item_failed"`
	ByItem       map[string]uint64 `json:"by_item"`
}

type Recorder struct {
	mu        sync.Mutex
	requests  uint64
	items     uint64
	failed    uint64
	byOutcome map[string]uint64
	byItem    map[string]uint64
}

func NewRecorder() *Recorder {
	return &Recorder{
		byOutcome: map[string]uint64{},
		byItem:    map[string]uint64{},
	}
}

func (r *Recorder) RecordOutcome(outcome string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests++
	r.byOutcome[outcome]++
}

// RecordItem counts one dispatched item under "<category>.<status>".
func (r *Recorder) RecordItem(category intent.Category, status intent.ItemStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items++
	if status != intent.StatusOK {
		r.failed++
	}
	r.byItem[string(category)+"."+string(status)]++
}

func (r *Recorder) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := Snapshot{
		RequestTotal: r.requests,
		ItemTotal:    r.items,
		ItemFailed:   r.failed,
		ByOutcome:    make(map[string]uint64, len(r.byOutcome)),
		ByItem:       make(map[string]uint64, len(r.byItem)),
	}
	for k, v := range r.byOutcome {
		out.ByOutcome[k] = v
	}
	for k, v := range r.byItem {
		out.ByItem[k] = v
	}
	return out
}

func (r *Recorder) SnapshotAny() any {
	return r.Snapshot()
}
