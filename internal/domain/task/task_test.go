package task

import (
	"strings"
	"testing"
)

func TestBook_AddAssignsMonotonicIDs(t *testing.T) {
	b := NewBook()
	first := b.Add("Buy milk")
	second := b.Add("Walk dog")
	if first.ID != 1 || second.ID != 2 {
		t.Fatalf("expected ids 1,2 got %d,%d", first.ID, second.ID)
	}
	if first.Completed {
		t.Fatalf("new task must be open")
	}
}

func TestBook_IDsNotReusedAfterDeleteOrClear(t *testing.T) {
	b := NewBook()
	b.Add("a")
	b.Add("b")
	if _, ok := b.Complete(2); !ok {
		t.Fatalf("complete 2 failed")
	}
	if got := b.Add("c").ID; got != 3 {
		t.Fatalf("expected id 3 after soft delete, got %d", got)
	}
	b.Clear()
	if got := b.Add("d").ID; got != 4 {
		t.Fatalf("expected id 4 after clear, got %d", got)
	}
}

func TestBook_AddRepairsStaleCounter(t *testing.T) {
	b := Book{NextID: 1, Tasks: map[int]Task{1: {ID: 1}, 5: {ID: 5}}}
	if got := b.Add("x").ID; got != 6 {
		t.Fatalf("expected id 6 past the highest stored id, got %d", got)
	}
}

func TestBook_CompleteKeepsRecord(t *testing.T) {
	b := NewBook()
	added := b.Add("Buy milk")
	done, ok := b.Complete(added.ID)
	if !ok || !done.Completed {
		t.Fatalf("expected completed task, got %+v ok=%v", done, ok)
	}
	if _, ok := b.Tasks[added.ID]; !ok {
		t.Fatalf("completed task must remain stored")
	}
	if _, ok := b.Complete(99); ok {
		t.Fatalf("expected missing id to report not found")
	}
}

func TestRenderList(t *testing.T) {
	if got := RenderList(nil); got != EmptyListText {
		t.Fatalf("empty list: got %q", got)
	}
	got := RenderList([]Task{
		{ID: 2, Description: "Walk dog", Completed: true},
		{ID: 1, Description: "Buy milk"},
	})
	lines := strings.Split(got, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", got)
	}
	if lines[0] != "1. Buy milk [ ]" {
		t.Fatalf("unexpected first line %q", lines[0])
	}
	if lines[1] != "2. Walk dog [x]" {
		t.Fatalf("unexpected second line %q", lines[1])
	}
}
